// Package repository implements the data access layer for the application.
//
// The layer is built as three tiers: a generic Store over any entity type,
// a SoftDeleteStore over tombstoned entities, and per-entity repositories
// adding domain queries on top.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// defaultListLimit caps list queries when the caller does not pass a limit.
const defaultListLimit = 100

// ListOptions controls filtering, ordering and pagination for multi-row
// reads. Filters is an exact-match conjunction keyed by attribute name;
// unknown attribute names are silently ignored.
type ListOptions struct {
	Skip    int
	Limit   int
	Filters map[string]any
	OrderBy []string
}

// FieldUpdate is one per-id partial update applied by BulkUpdate.
type FieldUpdate struct {
	ID     uint
	Fields map[string]any
}

// Store is the generic persistence contract shared by all entities.
// Absence is a normal outcome: single-row reads return (nil, nil) when no
// row matches, and callers translate that into their own not-found handling.
type Store[T any] interface {
	Get(ctx context.Context, id uint) (*T, error)
	GetMulti(ctx context.Context, opts ListOptions) ([]T, error)
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id uint, updates map[string]any) (*T, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context, filters map[string]any) (int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	BulkCreate(ctx context.Context, entities []*T) error
	BulkUpdate(ctx context.Context, updates []FieldUpdate) (int64, error)
	BulkDelete(ctx context.Context, ids []uint) (int64, error)
}

// repository implements Store[T] on top of gorm.
type repository[T any] struct {
	db *gorm.DB

	schemaOnce sync.Once
	sch        *schema.Schema
	schemaErr  error
}

// NewStore returns a Store implementation bound to the given database.
func NewStore[T any](db *gorm.DB) Store[T] {
	return &repository[T]{db: db}
}

// model parses and caches the gorm schema for T.
func (r *repository[T]) model() (*schema.Schema, error) {
	r.schemaOnce.Do(func() {
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(new(T)); err != nil {
			r.schemaErr = err
			return
		}
		r.sch = stmt.Schema
	})
	return r.sch, r.schemaErr
}

// primaryKeyColumn returns the DB name of T's primary key column.
func (r *repository[T]) primaryKeyColumn() (string, error) {
	sch, err := r.model()
	if err != nil {
		return "", err
	}
	if sch.PrioritizedPrimaryField == nil {
		return "", fmt.Errorf("model %s has no primary key", sch.Name)
	}
	return sch.PrioritizedPrimaryField.DBName, nil
}

// applyFilters appends exact-match conditions for known attributes.
// Filter keys may be struct field names or DB column names; anything the
// schema does not know is dropped without error.
func (r *repository[T]) applyFilters(tx *gorm.DB, filters map[string]any) *gorm.DB {
	if len(filters) == 0 {
		return tx
	}
	sch, err := r.model()
	if err != nil {
		_ = tx.AddError(models.NewInternalError(err))
		return tx
	}
	for name, value := range filters {
		field := sch.LookUpField(name)
		if field == nil || field.DBName == "" {
			continue
		}
		tx = tx.Where(fmt.Sprintf("%s = ?", field.DBName), value)
	}
	return tx
}

// filterColumns maps a partial-update payload onto known DB columns,
// dropping unknown attribute names.
func (r *repository[T]) filterColumns(updates map[string]any) (map[string]any, error) {
	sch, err := r.model()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(updates))
	for name, value := range updates {
		field := sch.LookUpField(name)
		if field == nil || field.DBName == "" {
			continue
		}
		out[field.DBName] = value
	}
	return out, nil
}

func (r *repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &entity, nil
}

func (r *repository[T]) GetMulti(ctx context.Context, opts ListOptions) ([]T, error) {
	return r.getMulti(r.db.WithContext(ctx), opts)
}

// getMulti runs the shared list query against the given base query, so the
// soft-delete layer can reuse it with an unscoped base.
func (r *repository[T]) getMulti(tx *gorm.DB, opts ListOptions) ([]T, error) {
	tx = r.applyFilters(tx, opts.Filters)
	for _, order := range opts.OrderBy {
		tx = tx.Order(order)
	}
	if opts.Skip > 0 {
		tx = tx.Offset(opts.Skip)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var entities []T
	if err := tx.Limit(limit).Find(&entities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entities, nil
}

func (r *repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entities, nil
}

func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("record violates a uniqueness constraint")
		}
		return models.NewInternalError(err)
	}
	// Reload so server-generated fields (timestamps, defaults) are populated.
	// First uses the primary key now set on the entity.
	if err := r.db.WithContext(ctx).First(entity).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *repository[T]) Update(ctx context.Context, id uint, updates map[string]any) (*T, error) {
	entity, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, nil
	}

	fields, err := r.filterColumns(updates)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(entity).Updates(fields).Error; err != nil {
			if isUniqueConstraintError(err) {
				return nil, models.NewConflictError("record violates a uniqueness constraint")
			}
			return nil, models.NewInternalError(err)
		}
	}

	var fresh T
	if err := r.db.WithContext(ctx).First(&fresh, id).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &fresh, nil
}

// Delete removes the row regardless of any soft-delete tombstone; the
// soft-delete layer builds its permanent delete on this path.
func (r *repository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Delete(new(T), id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repository[T]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	tx := r.applyFilters(r.db.WithContext(ctx).Model(new(T)), filters)
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	pk, err := r.primaryKeyColumn()
	if err != nil {
		return false, models.NewInternalError(err)
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).
		Where(fmt.Sprintf("%s = ?", pk), id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *repository[T]) BulkCreate(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&entities).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("record violates a uniqueness constraint")
		}
		return models.NewInternalError(err)
	}
	for _, entity := range entities {
		if err := r.db.WithContext(ctx).First(entity).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

// BulkUpdate applies each per-id update inside one transaction and returns
// the number of updates targeted, which may exceed the rows actually changed.
func (r *repository[T]) BulkUpdate(ctx context.Context, updates []FieldUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	pk, err := r.primaryKeyColumn()
	if err != nil {
		return 0, models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			fields, err := r.filterColumns(u.Fields)
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				continue
			}
			if err := tx.Model(new(T)).
				Where(fmt.Sprintf("%s = ?", pk), u.ID).
				Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, models.NewConflictError("record violates a uniqueness constraint")
		}
		return 0, models.NewInternalError(err)
	}
	return int64(len(updates)), nil
}

func (r *repository[T]) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	pk, err := r.primaryKeyColumn()
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	res := r.db.WithContext(ctx).Unscoped().
		Where(fmt.Sprintf("%s IN ?", pk), ids).
		Delete(new(T))
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports
	// "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
