package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/filter"
	"boxfactory/internal/infrastructure/storage"
)

// BaseRepo provides CRUD over one table whose columns are the "db" tags of T.
// Embed it in entity repositories.
type BaseRepo[T entity.Entity] struct {
	txManager  *TxManager
	tableName  string
	entityName string
	selectCols []string
	validCols  map[string]struct{}
	newFn      func() T

	// searchCol is matched by ListFilter.Search; empty disables search
	searchCol string
}

// NewBaseRepo creates a new base repository.
func NewBaseRepo[T entity.Entity](
	txManager *TxManager,
	tableName, entityName string,
	selectCols []string,
	newFn func() T,
) *BaseRepo[T] {
	valid := make(map[string]struct{}, len(selectCols))
	for _, col := range selectCols {
		valid[col] = struct{}{}
	}
	return &BaseRepo[T]{
		txManager:  txManager,
		tableName:  tableName,
		entityName: entityName,
		selectCols: selectCols,
		validCols:  valid,
		newFn:      newFn,
	}
}

// WithSearch enables ListFilter.Search on col (ILIKE %term%).
func (r *BaseRepo[T]) WithSearch(col string) *BaseRepo[T] {
	r.searchCol = col
	return r
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the transaction in ctx or the pool.
func (r *BaseRepo[T]) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// TableName returns the table this repository writes to.
func (r *BaseRepo[T]) TableName() string {
	return r.tableName
}

// BaseSelect selects every mapped column.
func (r *BaseRepo[T]) BaseSelect() squirrel.SelectBuilder {
	return r.Builder().Select(r.selectCols...).From(r.tableName)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseRepo[T]) Create(ctx context.Context, e T) error {
	data := storage.StructToMap(e)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %T", e)
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(storage.Pick(data, r.selectCols)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapWriteError(r.tableName, r.entityName, "insert", err)
	}
	return nil
}

// updateQuery builds the optimistic-lock UPDATE for e.
func (r *BaseRepo[T]) updateQuery(e T) squirrel.UpdateBuilder {
	data := storage.StructToMap(e)
	return r.Builder().
		Update(r.tableName).
		SetMap(storage.Pick(data, r.selectCols, "id", "version", "created_at")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": e.GetID()}).
		Where(squirrel.Eq{"version": e.GetVersion()})
}

// Update modifies an existing entity when its version still matches.
// A miss is reported as NOT_FOUND when the row is gone, otherwise as a
// concurrent modification.
func (r *BaseRepo[T]) Update(ctx context.Context, e T) error {
	sql, args, err := r.updateQuery(e).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return MapWriteError(r.tableName, r.entityName, "update", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.Exists(ctx, e.GetID())
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound(r.entityName, e.GetID().String())
		}
		return apperror.NewConcurrentModification(r.entityName, e.GetID().String())
	}

	e.SetVersion(e.GetVersion() + 1)
	return nil
}

// GetByID retrieves entity by ID.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return r.FindOne(ctx, r.BaseSelect().Where(squirrel.Eq{"id": entityID}).Limit(1), entityID.String())
}

// FindOne runs q and scans a single row. ref is reported when nothing matches.
func (r *BaseRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder, ref string) (T, error) {
	e := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			var zero T
			return zero, apperror.NewNotFound(r.entityName, ref)
		}
		return e, fmt.Errorf("get %s: %w", r.tableName, err)
	}
	return e, nil
}

// Exists checks if entity exists.
func (r *BaseRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}

// Delete performs physical removal. Referencing rows are not touched.
func (r *BaseRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return MapWriteError(r.tableName, r.entityName, "delete", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID.String())
	}
	return nil
}

// List retrieves entities with filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Items:  make([]T, 0),
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q, err := r.filtered(f)
	if err != nil {
		return result, err
	}

	countSQL, countArgs, err := r.Builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count %s: %w", r.tableName, err)
	}

	q, err = r.paged(q, f)
	if err != nil {
		return result, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.tableName, err)
	}
	return result, nil
}

// filtered applies search and conditions to the base select.
func (r *BaseRepo[T]) filtered(f domain.ListFilter) (squirrel.SelectBuilder, error) {
	q := r.BaseSelect()
	if f.Search != "" && r.searchCol != "" {
		q = q.Where(squirrel.ILike{r.searchCol: "%" + f.Search + "%"})
	}
	return r.applyFilters(q, f.Conditions)
}

// paged adds ordering (with id as tiebreak) and the page window.
func (r *BaseRepo[T]) paged(q squirrel.SelectBuilder, f domain.ListFilter) (squirrel.SelectBuilder, error) {
	orderBy, err := r.parseOrderBy(f.OrderBy)
	if err != nil {
		return q, err
	}
	q = q.OrderBy(orderBy...)
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q, nil
}

// applyFilters translates conditions; columns are whitelisted against selectCols.
func (r *BaseRepo[T]) applyFilters(q squirrel.SelectBuilder, items []filter.Item) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		if _, ok := r.validCols[item.Field]; !ok {
			return q, apperror.NewValidation("Invalid filter field: " + item.Field)
		}

		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.Contains:
			q = q.Where(squirrel.ILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		default:
			return q, apperror.NewValidation("Invalid filter operator: " + string(item.Operator))
		}
	}
	return q, nil
}

// parseOrderBy supports "-field" for DESC. The column must be mapped.
func (r *BaseRepo[T]) parseOrderBy(orderBy string) ([]string, error) {
	if orderBy == "" {
		orderBy = domain.DefaultOrderBy
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	}

	field = strings.TrimSpace(field)
	if _, ok := r.validCols[field]; !ok {
		return nil, apperror.NewValidation("Invalid sort field: " + field).WithDetail("orderBy", orderBy)
	}

	if field == "id" {
		return []string{"id " + direction}, nil
	}
	return []string{field + " " + direction, "id " + direction}, nil
}
