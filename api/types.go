package api

import (
	"github.com/enat-care/enat/backend/models"
	"github.com/go-playground/validator/v10"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler       blogHandler
	blogDetailHandler blogDetailHandler
	tagHandler        tagHandler
	installHandler    installHandler
}

// validate is the shared request validator; handler payload structs carry
// the rules as struct tags.
var validate = validator.New()

type createBlogDetailRequest struct {
	BlogID            int64                   `json:"blog_id" validate:"required,gt=0"`
	DetailDescription string                  `json:"detail_description" validate:"required"`
	BlogMainHighlight string                  `json:"blog_main_highlight" validate:"required"`
	BlogPostWrapUp    string                  `json:"blog_post_wrap_up" validate:"required"`
	Tags              []models.TagRef         `json:"tags" validate:"required,min=1,dive"`
	Images            []models.ImageRef       `json:"images" validate:"required,min=1,dive"`
	RelatedBlogPost   []models.RelatedBlogRef `json:"related_blog_post" validate:"omitempty,dive"`
}

// updateBlogDetailRequest is the PATCH payload. Pointer fields keep "absent"
// distinct from "present and empty": a nil slice pointer leaves the set
// untouched, a pointer to an empty slice clears it. The legacy
// `related_blog_post` key is accepted alongside `related_blog_posts`.
type updateBlogDetailRequest struct {
	BlogID                *int64                   `json:"blog_id"`
	DetailDescription     *string                  `json:"detail_description"`
	BlogMainHighlight     *string                  `json:"blog_main_highlight"`
	BlogPostWrapUp        *string                  `json:"blog_post_wrap_up"`
	Tags                  *[]models.TagRef         `json:"tags"`
	Images                *[]models.ImageRef       `json:"images"`
	RelatedBlogPosts      *[]models.RelatedBlogRef `json:"related_blog_posts"`
	RelatedBlogPostLegacy *[]models.RelatedBlogRef `json:"related_blog_post"`
}

func (r updateBlogDetailRequest) toPatch() models.BlogDetailPatch {
	related := r.RelatedBlogPosts
	if related == nil {
		related = r.RelatedBlogPostLegacy
	}
	return models.BlogDetailPatch{
		BlogID:            r.BlogID,
		DetailDescription: r.DetailDescription,
		BlogMainHighlight: r.BlogMainHighlight,
		BlogPostWrapUp:    r.BlogPostWrapUp,
		Tags:              r.Tags,
		Images:            r.Images,
		RelatedBlogPosts:  related,
	}
}

type createBlogRequest struct {
	UserID          int64  `json:"user_id" validate:"required,gt=0"`
	BlogImg         string `json:"blog_img" validate:"required"`
	BlogTitle       string `json:"blog_title" validate:"required"`
	BlogDescription string `json:"blog_description" validate:"required"`
}

type updateBlogRequest struct {
	BlogImg         *string `json:"blog_img"`
	BlogTitle       *string `json:"blog_title"`
	BlogDescription *string `json:"blog_description"`
}
