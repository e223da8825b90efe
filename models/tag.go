package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag is a reusable label attached to blog details through BlogDetailTag.
type Tag struct {
	ID        uint64         `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Tag) TableName() string { return "tag" }
