package models

// Role is a named grant attached to users through the user_roles join table.
// Roles are never soft-deleted, so a plain unique index on the name is fine.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
	Users       []User `gorm:"many2many:user_roles" json:"-"`
}
