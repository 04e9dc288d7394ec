package models

import (
	"time"
)

type Link struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"not null;size:255" json:"title"`
	Slug       string     `gorm:"unique;not null;size:255;index" json:"slug"`
	URL        string     `gorm:"not null;type:text" json:"url"`
	Type       string     `gorm:"size:20;default:'Free'" json:"type"`
	Medium     string     `gorm:"size:20;default:'Video'" json:"medium"`
	Clicks     int        `gorm:"default:0" json:"clicks"`
	Approved   bool       `gorm:"default:false;index" json:"approved"`
	PostedByID uint       `gorm:"index" json:"posted_by_id"`
	PostedBy   *User      `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`
	Categories []Category `gorm:"many2many:link_categories" json:"categories,omitempty"`
	CreatedAt  time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName overrides the table name used by Link to `links`
func (Link) TableName() string {
	return "links"
}
