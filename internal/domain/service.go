// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"
	"time"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/core/tx"
	"boxfactory/pkg/logger"
)

// EntityService runs the write pipeline shared by every entity:
// field validation, before-hooks (reference checks, derived fields),
// persistence inside a transaction, then after-hooks.
type EntityService[T entity.Entity] struct {
	repo      Repository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]
	now       func() time.Time

	// entityName for error messages ("Client not found")
	entityName string
}

// ServiceConfig configures the entity service.
type ServiceConfig[T entity.Entity] struct {
	Repo       Repository[T]
	TxManager  tx.Manager
	EntityName string
	// Clock defaults to time.Now().UTC()
	Clock func() time.Time
}

// NewEntityService creates a new entity service.
func NewEntityService[T entity.Entity](cfg ServiceConfig[T]) *EntityService[T] {
	clock := cfg.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &EntityService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		now:        clock,
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *EntityService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the display name used in messages.
func (s *EntityService[T]) EntityName() string {
	return s.entityName
}

// Now returns the service clock reading.
func (s *EntityService[T]) Now() time.Time {
	return s.now()
}

// Repo exposes the underlying repository to entity-specific services.
func (s *EntityService[T]) Repo() Repository[T] {
	return s.repo
}

func (s *EntityService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *EntityService[T]) normalizeGetErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewDatabase("get "+s.entityName, err).WithDetail("id", entityID)
}

func (s *EntityService[T]) normalizeWriteErr(err error) error {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr
	}
	return apperror.NewDatabase("write "+s.entityName, err)
}

// Create validates and persists a new entity.
func (s *EntityService[T]) Create(ctx context.Context, entity T) error {
	// 1. Field invariants, all problems at once
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Reference checks and derived fields, first failure wins
	if err := s.hooks.RunBeforeCreate(ctx, entity); err != nil {
		return err
	}

	entity.StampCreated(s.now())

	// 3. Persist
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return s.normalizeWriteErr(err)
	}

	// 4. After-create hooks (outside transaction)
	if err := s.hooks.RunAfterCreate(ctx, entity); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "id", entity.GetID(), "error", err)
	}

	return nil
}

// GetByID retrieves entity by ID.
func (s *EntityService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID.String())
	}
	return entity, nil
}

// Update persists next, a merged copy of prev.
// prev must be the stored state the merge started from.
func (s *EntityService[T]) Update(ctx context.Context, prev, next T) error {
	if err := next.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.RunBeforeUpdate(ctx, prev, next); err != nil {
		return err
	}

	next.StampUpdated(s.now())

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, next); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, next.GetID().String())
		}
		return s.normalizeWriteErr(err)
	}

	if err := s.hooks.RunAfterUpdate(ctx, prev, next); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "id", next.GetID(), "error", err)
	}

	return nil
}

// Delete removes the entity. Dependents are left untouched.
func (s *EntityService[T]) Delete(ctx context.Context, entityID id.ID) error {
	// 1. Get entity first (for hooks)
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.RunBeforeDelete(ctx, entity); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, entityID.String())
		}
		return s.normalizeWriteErr(err)
	}

	if err := s.hooks.RunAfterDelete(ctx, entity); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "id", entityID, "error", err)
	}

	return nil
}

// List retrieves entities with filtering.
func (s *EntityService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	var result ListResult[T]
	err := tx.Read(ctx, s.txManager, func(ctx context.Context) error {
		var err error
		result, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return result, err
		}
		return result, apperror.NewDatabase("list "+s.entityName, err)
	}
	return result, nil
}

// Exists checks if entity exists.
func (s *EntityService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
