package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogDetail is the aggregate root of an extended article. The numeric id
// never leaves the database layer as a lookup key; clients address a detail
// by its 16-character hash, generated once at creation.
type BlogDetail struct {
	ID                uint64         `json:"id" gorm:"primaryKey"`
	BlogID            uint64         `json:"blog_id" gorm:"not null;index"`
	Hash              string         `json:"hash" gorm:"size:255;uniqueIndex;not null"`
	DetailDescription string         `json:"detail_description" gorm:"type:text"`
	BlogMainHighlight string         `json:"blog_main_highlight" gorm:"type:text"`
	BlogPostWrapUp    string         `json:"blog_post_wrap_up" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

func (BlogDetail) TableName() string { return "blog_detail" }

// BlogDetailTag joins a detail to a tag. The unique pair index backs the
// idempotent insert: re-adding an existing pair is a no-op.
type BlogDetailTag struct {
	ID           uint64         `gorm:"primaryKey"`
	BlogDetailID uint64         `gorm:"not null;uniqueIndex:idx_blog_detail_tag_pair"`
	TagID        uint64         `gorm:"not null;uniqueIndex:idx_blog_detail_tag_pair"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (BlogDetailTag) TableName() string { return "blog_detail_tag" }

// BlogDetailImage is one image URL attached to a detail, ordered by insertion.
type BlogDetailImage struct {
	ID           uint64         `gorm:"primaryKey"`
	BlogDetailID uint64         `gorm:"not null;index"`
	BlogImgURL   string         `gorm:"column:blog_img_url;size:512;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (BlogDetailImage) TableName() string { return "blog_detail_img" }

// RelatedBlogPost links a detail to another blog (not another detail) as
// related reading.
type RelatedBlogPost struct {
	ID           uint64         `gorm:"primaryKey"`
	BlogDetailID uint64         `gorm:"not null;uniqueIndex:idx_related_blog_post_pair"`
	BlogID       uint64         `gorm:"not null;uniqueIndex:idx_related_blog_post_pair"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (RelatedBlogPost) TableName() string { return "related_blog_post" }
