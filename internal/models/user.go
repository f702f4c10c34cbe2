// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a principal in the Inkwell application. Superuser is a
// process-wide privilege override, not an ownership relation.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"unique;not null" json:"username"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Posts       []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
