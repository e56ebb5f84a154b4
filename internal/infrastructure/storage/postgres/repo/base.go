// Package repo provides PostgreSQL implementations of the domain
// repositories. All queries run through the shared TxManager so repository
// calls made inside a service transaction join it.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
	"storechain/internal/infrastructure/storage/postgres"
)

// BaseRepo provides common CRUD operations keyed by id with optimistic
// locking on the version column. Embed it in the entity repositories.
type BaseRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
	newFn      func() T
}

// NewBaseRepo creates a new base repository. entityName is the name used
// in NotFound errors, tableName the backing table.
func NewBaseRepo[T any](txm *postgres.TxManager, tableName, entityName string, newFn func() T) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		selectCols: postgres.ExtractDBColumns[T](),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseRepo[T]) Create(ctx context.Context, entity *T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return nil
}

// Update modifies an existing entity with optimistic locking. The version
// and updated_at columns are managed here, not by callers: the entity's
// current version is the lock predicate, the repo increments it and syncs it
// back on success.
func (r *BaseRepo[T]) Update(ctx context.Context, entity *T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	if _, ok := data["updated_at"]; ok {
		filtered["updated_at"] = time.Now().UTC()
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.entityName, entityID)
	}
	if v, ok := any(entity).(interface{ SetVersion(int) }); ok {
		v.SetVersion(version + 1)
	}
	return nil
}

func (r *BaseRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// getWhere scans the single row matching the builder into a fresh entity.
func (r *BaseRepo[T]) getWhere(ctx context.Context, q squirrel.SelectBuilder, notFoundKey string) (*T, error) {
	entity := r.newFn()

	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.entityName, notFoundKey)
		}
		return nil, fmt.Errorf("get %s: %w", r.tableName, err)
	}
	return &entity, nil
}

// GetByID retrieves entity by id.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (*T, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": entityID})
	return r.getWhere(ctx, q, entityID.String())
}

// GetForUpdate retrieves entity by id with a row lock. Must run inside a
// transaction.
func (r *BaseRepo[T]) GetForUpdate(ctx context.Context, entityID id.ID) (*T, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE")
	return r.getWhere(ctx, q, entityID.String())
}

// Delete removes the entity row. NotFound when nothing matched.
func (r *BaseRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID.String())
	}
	return nil
}

// Exists reports whether a row with the given id exists.
func (r *BaseRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return r.existsWhere(ctx, squirrel.Eq{"id": entityID})
}

func (r *BaseRepo[T]) existsWhere(ctx context.Context, pred any) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(r.tableName).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists %s: %w", r.tableName, err)
	}
	return true, nil
}

// ListIDs returns ids of all rows, oldest first.
func (r *BaseRepo[T]) ListIDs(ctx context.Context) ([]id.ID, error) {
	return r.listIDsWhere(ctx, nil)
}

func (r *BaseRepo[T]) listIDsWhere(ctx context.Context, pred any) ([]id.ID, error) {
	q := r.Builder().
		Select("id").
		From(r.tableName).
		OrderBy("id")
	if pred != nil {
		q = q.Where(pred)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list ids: %w", err)
	}

	var ids []id.ID
	if err := pgxscan.Select(ctx, r.querier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s ids: %w", r.tableName, err)
	}
	return ids, nil
}

// selectWhere scans all rows matching the builder.
func selectWhere[T any](ctx context.Context, r *BaseRepo[T], q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.tableName, err)
	}
	return items, nil
}

// deleteWhere removes all rows matching the predicate and returns the count.
func (r *BaseRepo[T]) deleteWhere(ctx context.Context, pred any) (int64, error) {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(pred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	return result.RowsAffected(), nil
}

// appendToSet appends memberID to the named uuid[] column of one row,
// keeping the set free of duplicates.
func (r *BaseRepo[T]) appendToSet(ctx context.Context, rowID id.ID, column string, memberID id.ID) error {
	sql := fmt.Sprintf(
		"UPDATE %s SET %s = array_append(array_remove(%s, $1), $1) WHERE id = $2",
		r.tableName, column, column,
	)
	result, err := r.querier(ctx).Exec(ctx, sql, memberID, rowID)
	if err != nil {
		return fmt.Errorf("append to %s.%s: %w", r.tableName, column, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, rowID.String())
	}
	return nil
}

// removeFromSet splices memberID out of the named uuid[] column of one row.
func (r *BaseRepo[T]) removeFromSet(ctx context.Context, rowID id.ID, column string, memberID id.ID) error {
	sql := fmt.Sprintf(
		"UPDATE %s SET %s = array_remove(%s, $1) WHERE id = $2",
		r.tableName, column, column,
	)
	result, err := r.querier(ctx).Exec(ctx, sql, memberID, rowID)
	if err != nil {
		return fmt.Errorf("remove from %s.%s: %w", r.tableName, column, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, rowID.String())
	}
	return nil
}
