// Package v1 provides the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"
)

// EntityRouteHandler defines the methods every resource handler serves.
type EntityRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterEntityRoutes registers the standard CRUD routes for a resource.
//
// Usage:
//
//	handler := handlers.NewEntityHandler[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest](cfg)
//	RegisterEntityRoutes(api.Group("/clients"), handler)
func RegisterEntityRoutes(group *gin.RouterGroup, handler EntityRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
