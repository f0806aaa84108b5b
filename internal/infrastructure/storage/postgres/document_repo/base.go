// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"boxfactory/internal/core/entity"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// BaseDocumentRepo is the shared CRUD for documents. Documents have no
// name column, so list search is disabled.
type BaseDocumentRepo[T entity.Entity] struct {
	*postgres.BaseRepo[T]
}

// NewBaseDocumentRepo creates a new base document repository over the
// "db" tags of S, where T is *S.
func NewBaseDocumentRepo[S any, T interface {
	*S
	entity.Entity
}](txManager *postgres.TxManager, tableName, entityName string) *BaseDocumentRepo[T] {
	return &BaseDocumentRepo[T]{
		BaseRepo: postgres.NewBaseRepo[T](
			txManager,
			tableName,
			entityName,
			storage.ExtractDBColumns[S](),
			func() T { return T(new(S)) },
		),
	}
}
