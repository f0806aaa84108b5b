// Package catalog_repo provides PostgreSQL repositories for the reference
// catalogs: clients, branches, materials and products.
package catalog_repo

import (
	"boxfactory/internal/core/entity"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo is a postgres.BaseRepo whose list search matches the name column.
type BaseCatalogRepo[T entity.Entity] struct {
	*postgres.BaseRepo[T]
}

// NewBaseCatalogRepo creates a new base catalog repository over the "db"
// tags of S, where T is *S.
func NewBaseCatalogRepo[S any, T interface {
	*S
	entity.Entity
}](txManager *postgres.TxManager, tableName, entityName string) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		BaseRepo: postgres.NewBaseRepo[T](
			txManager,
			tableName,
			entityName,
			storage.ExtractDBColumns[S](),
			func() T { return T(new(S)) },
		).WithSearch("name"),
	}
}
