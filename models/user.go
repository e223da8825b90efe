package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an author account. Blogs belong to a user; the API only ever
// exposes users as nested snapshots on blog responses.
type User struct {
	ID          uint64         `json:"id" gorm:"primaryKey"`
	Email       string         `json:"email" gorm:"size:255;uniqueIndex;not null"`
	DisplayName string         `json:"display_name" gorm:"size:255;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string { return "user" }
