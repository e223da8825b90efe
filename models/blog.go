package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog is the root of blog content shown on the marketing site. A blog may
// additionally carry at most one active BlogDetail (enforced in application
// code, not by a unique constraint).
type Blog struct {
	BlogID          uint64         `json:"blog_id" gorm:"column:blog_id;primaryKey"`
	UserID          uint64         `json:"user_id" gorm:"not null;index"`
	BlogImg         string         `json:"blog_img" gorm:"size:512"`
	BlogTitle       string         `json:"blog_title" gorm:"size:255;not null"`
	BlogDescription string         `json:"blog_description" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Blog) TableName() string { return "blog" }

// BlogWithAuthor is the read model for blog endpoints: the blog row plus an
// owner snapshot.
type BlogWithAuthor struct {
	BlogID          uint64       `json:"blog_id"`
	UserID          uint64       `json:"user_id"`
	User            UserSnapshot `json:"user"`
	BlogImg         string       `json:"blog_img"`
	BlogTitle       string       `json:"blog_title"`
	BlogDescription string       `json:"blog_description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
