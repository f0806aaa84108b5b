package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/filter"
	"boxfactory/internal/domain/pagination"
	"boxfactory/internal/infrastructure/http/v1/dto"
	"boxfactory/internal/infrastructure/storage"
)

// Service is the CRUD surface every entity service exposes.
type Service[T entity.Entity] interface {
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Create(ctx context.Context, e T) error
	Update(ctx context.Context, prev, next T) error
	Delete(ctx context.Context, entityID id.ID) error
	List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error)
}

// CreateRequest builds a new entity from a request body.
type CreateRequest[T any] interface {
	ToEntity() (T, error)
}

// UpdateRequest merges a request body over the stored entity.
type UpdateRequest[T any] interface {
	ApplyTo(prev T) (T, error)
}

// EntityConfig describes one resource.
type EntityConfig[T entity.Entity] struct {
	Service    Service[T]
	EntityName string
	Paging     pagination.Policy

	// Filters are the query parameters accepted as equality filters,
	// by API name ("status", "clientId").
	Filters []string

	// Search enables the "search" query parameter.
	Search bool
}

// EntityHandler serves list/get/create/update/delete for one resource.
// C and U are the create and update request bodies.
type EntityHandler[T entity.Entity, C CreateRequest[T], U UpdateRequest[T]] struct {
	BaseHandler
	service    Service[T]
	entityName string
	paging     pagination.Policy
	search     bool

	// fields maps API names to columns; it doubles as the sort whitelist
	fields  map[string]string
	filters []string
}

// NewEntityHandler creates a handler for cfg.
func NewEntityHandler[T entity.Entity, C CreateRequest[T], U UpdateRequest[T]](cfg EntityConfig[T]) *EntityHandler[T, C, U] {
	return &EntityHandler[T, C, U]{
		service:    cfg.Service,
		entityName: cfg.EntityName,
		paging:     cfg.Paging,
		search:     cfg.Search,
		fields:     storage.APIFields[T](),
		filters:    cfg.Filters,
	}
}

// List handles GET /<resource>.
func (h *EntityHandler[T, C, U]) List(c *gin.Context) {
	h.ListWhere(c)
}

// ListWhere lists with extra conditions ANDed to the query filters.
func (h *EntityHandler[T, C, U]) ListWhere(c *gin.Context, conds ...filter.Item) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"), c.Query("sort"), h.paging)

	orderBy, err := pagination.SortColumn(params.Sort, h.fields)
	if err != nil {
		h.Error(c, err)
		return
	}

	f := domain.ListFilter{
		OrderBy: orderBy,
		Limit:   params.Limit,
		Offset:  params.Offset(),
	}
	if h.search {
		f.Search = strings.TrimSpace(c.Query("search"))
	}

	queryConds, err := h.queryFilters(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	f = f.Where(append(queryConds, conds...)...)

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	window := pagination.ComputeWindow(params.Page, params.Limit, result.TotalCount)
	c.JSON(http.StatusOK, dto.ListResponse{
		Success:    true,
		Data:       result.Items,
		Pagination: dto.NewPaginationResponse(window),
		Count:      len(result.Items),
	})
}

// queryFilters reads the configured equality filters from the query string.
// Reference filters must be well-formed ids.
func (h *EntityHandler[T, C, U]) queryFilters(c *gin.Context) ([]filter.Item, error) {
	var out []filter.Item
	for _, name := range h.filters {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		column, ok := h.fields[name]
		if !ok {
			continue
		}
		var value any = raw
		if strings.HasSuffix(name, "Id") {
			parsed, err := id.Parse(raw)
			if err != nil {
				return nil, apperror.NewValidation("Invalid " + name).WithDetail(name, raw)
			}
			value = parsed
		}
		out = append(out, filter.Eq(column, value))
	}
	return out, nil
}

// Get handles GET /<resource>/:id.
func (h *EntityHandler[T, C, U]) Get(c *gin.Context) {
	entityID, ok := h.PathID(c, "id", h.entityName)
	if !ok {
		return
	}
	e, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Create handles POST /<resource>.
func (h *EntityHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}
	e, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// Update handles PUT /<resource>/:id as a partial merge.
func (h *EntityHandler[T, C, U]) Update(c *gin.Context) {
	entityID, ok := h.PathID(c, "id", h.entityName)
	if !ok {
		return
	}
	var req U
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	prev, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	next, err := req.ApplyTo(prev)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Update(ctx, prev, next); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, next)
}

// Delete handles DELETE /<resource>/:id.
func (h *EntityHandler[T, C, U]) Delete(c *gin.Context) {
	entityID, ok := h.PathID(c, "id", h.entityName)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}
	h.Deleted(c, h.entityName)
}
