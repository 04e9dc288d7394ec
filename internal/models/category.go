package models

import (
	"time"
)

type Category struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null;size:32" json:"name"`
	Slug       string    `gorm:"unique;not null;size:100;index" json:"slug"`
	ImageURL   string    `gorm:"type:text" json:"image_url"`
	ImageKey   string    `gorm:"size:255" json:"image_key"` // Object-store key, needed for deletes
	Content    string    `gorm:"type:text" json:"content"`
	PostedByID uint      `gorm:"index" json:"posted_by_id"`
	PostedBy   *User     `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
