package repository

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// tombstoneColumn is the column convention shared by all soft-deletable
// entities (gorm.DeletedAt fields).
const tombstoneColumn = "deleted_at"

// SoftDeleteStore extends Store for entities carrying a deletion tombstone.
// The inherited single-row and multi-row reads already exclude tombstoned
// rows (gorm scopes every query on a DeletedAt model to live rows); this
// layer adds the explicit include-deleted reads and the tombstone lifecycle.
type SoftDeleteStore[T models.SoftDeletable] interface {
	Store[T]
	GetWithDeleted(ctx context.Context, id uint) (*T, error)
	ListWithDeleted(ctx context.Context, opts ListOptions) ([]T, error)
	SoftDelete(ctx context.Context, id uint) (bool, error)
	Restore(ctx context.Context, id uint) (*T, error)
	PermanentDelete(ctx context.Context, id uint) (bool, error)
}

type softDeleteRepository[T models.SoftDeletable] struct {
	*repository[T]
}

// NewSoftDeleteStore returns a SoftDeleteStore bound to the given database.
// The constraint on T makes soft delete a compile-time capability: entity
// types opt in by implementing models.SoftDeletable.
func NewSoftDeleteStore[T models.SoftDeletable](db *gorm.DB) SoftDeleteStore[T] {
	return &softDeleteRepository[T]{repository: &repository[T]{db: db}}
}

// GetWithDeleted looks up a row by id regardless of its tombstone.
func (r *softDeleteRepository[T]) GetWithDeleted(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Unscoped().First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &entity, nil
}

// ListWithDeleted is GetMulti without the live-rows scope.
func (r *softDeleteRepository[T]) ListWithDeleted(ctx context.Context, opts ListOptions) ([]T, error) {
	return r.getMulti(r.db.WithContext(ctx).Unscoped(), opts)
}

// SoftDelete stamps the tombstone on a live row. Returns false when the id
// does not name a live row.
func (r *softDeleteRepository[T]) SoftDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Restore clears the tombstone. It succeeds only when the row exists and is
// currently deleted; otherwise it returns (nil, nil).
func (r *softDeleteRepository[T]) Restore(ctx context.Context, id uint) (*T, error) {
	entity, err := r.GetWithDeleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil || !(*entity).IsDeleted() {
		return nil, nil
	}

	pk, err := r.primaryKeyColumn()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where(fmt.Sprintf("%s = ?", pk), id).
		Update(tombstoneColumn, nil).Error; err != nil {
		// A live row may have claimed the restored row's unique
		// identifiers while it sat tombstoned.
		if isUniqueConstraintError(err) {
			return nil, models.NewConflictError("record violates a uniqueness constraint")
		}
		return nil, models.NewInternalError(err)
	}

	return r.repository.Get(ctx, id)
}

// PermanentDelete removes the row for good, bypassing the live-rows scope
// by delegating to the base hard delete.
func (r *softDeleteRepository[T]) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	return r.repository.Delete(ctx, id)
}
