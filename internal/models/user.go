// Package models contains the domain entities persisted by the application.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SoftDeletable marks entity types that carry a deletion tombstone.
// Repositories that offer soft delete constrain their type parameter to this
// interface, so wiring a non-tombstoned entity into the soft-delete layer is
// a compile error rather than a runtime surprise.
type SoftDeletable interface {
	IsDeleted() bool
}

// User is an account holder. Email and username are unique among live
// (non-deleted) rows; the partial unique indexes enforcing that are created
// in the database package.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null;index" json:"email"`
	Username     string         `gorm:"size:50;not null;index" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Posts        []Post         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Roles        []Role         `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

// IsDeleted reports whether the user carries a deletion tombstone.
func (u User) IsDeleted() bool {
	return u.DeletedAt.Valid
}

// UserStatusCounts groups live users by their active flag.
type UserStatusCounts struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}
