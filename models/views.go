package models

import "time"

// TagRef, ImageRef and RelatedBlogRef are the association elements clients
// send when creating or patching a blog detail.
type TagRef struct {
	TagID int64 `json:"tag_id" validate:"required,gt=0"`
}

type ImageRef struct {
	BlogImgURL string `json:"blog_img_url" validate:"required,url"`
}

type RelatedBlogRef struct {
	BlogID int64 `json:"blog_id" validate:"required,gt=0"`
}

// BlogDetailInput is the writer's create input. The hash is generated by the
// caller before the transaction opens and never changes afterwards.
type BlogDetailInput struct {
	BlogID            int64
	Hash              string
	DetailDescription string
	BlogMainHighlight string
	BlogPostWrapUp    string
	Tags              []TagRef
	Images            []ImageRef
	RelatedBlogPosts  []RelatedBlogRef
}

// BlogDetailPatch is a sparse update. Nil means "leave untouched"; a non-nil
// pointer to an empty slice means "clear the whole set". The pointer
// indirection is what keeps "field absent" distinct from "field present and
// empty" after JSON decoding.
type BlogDetailPatch struct {
	BlogID            *int64
	DetailDescription *string
	BlogMainHighlight *string
	BlogPostWrapUp    *string
	Tags              *[]TagRef
	Images            *[]ImageRef
	RelatedBlogPosts  *[]RelatedBlogRef
}

// BlogSnapshot is the parent-blog portion of a detail aggregate.
type BlogSnapshot struct {
	BlogID          uint64 `json:"blog_id"`
	BlogImg         string `json:"blog_img"`
	BlogTitle       string `json:"blog_title"`
	BlogDescription string `json:"blog_description"`
}

// UserSnapshot is the owner portion of a detail or blog aggregate.
type UserSnapshot struct {
	UserID      uint64 `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// TagItem is one tag in an aggregate, sorted by name in responses.
type TagItem struct {
	TagID uint64 `json:"tag_id"`
	Name  string `json:"name"`
}

// ImageItem is one image URL in an aggregate, in insertion order.
type ImageItem struct {
	BlogImgURL string `json:"blog_img_url"`
}

// RelatedPostItem is one related blog in an aggregate, in insertion order.
type RelatedPostItem struct {
	BlogID    uint64 `json:"blog_id"`
	BlogTitle string `json:"blog_title"`
}

// BlogDetailAggregate is the composed read model for a blog detail: the root
// row, the parent blog and owner snapshots, and the three child collections.
type BlogDetailAggregate struct {
	ID                uint64            `json:"id"`
	Blog              BlogSnapshot      `json:"blog"`
	Hash              string            `json:"hash"`
	DetailDescription string            `json:"detail_description"`
	BlogMainHighlight string            `json:"blog_main_highlight"`
	BlogPostWrapUp    string            `json:"blog_post_wrap_up"`
	User              UserSnapshot      `json:"user"`
	Tags              []TagItem         `json:"tags"`
	Images            []ImageItem       `json:"images"`
	RelatedBlogPosts  []RelatedPostItem `json:"related_blog_posts"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// DeleteReceipt is returned by the cascading soft delete.
type DeleteReceipt struct {
	Deleted   bool      `json:"deleted"`
	ID        uint64    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
}
