package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"unique;not null;size:80" json:"username"`
	Name         string     `gorm:"size:80" json:"name"`
	Email        string     `gorm:"unique;not null;size:120;index" json:"email"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	Role         string     `gorm:"size:20;default:'user'" json:"role"`
	ResetToken   string     `gorm:"size:512" json:"-"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Categories   []Category `gorm:"many2many:user_categories" json:"categories,omitempty"` // Subscriptions, drive link notifications
	Links        []Link     `gorm:"foreignKey:PostedByID" json:"links,omitempty"`
}
