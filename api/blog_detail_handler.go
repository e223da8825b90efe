package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/enat-care/enat/backend/database"
	"github.com/enat-care/enat/backend/errs"
	"github.com/enat-care/enat/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxHashLength = 255

type blogDetailHandler struct {
	responder      Responder
	logger         zerolog.Logger
	blogDetailRepo *database.BlogDetailRepo
}

func newBlogDetailHandler(blogDetailRepo *database.BlogDetailRepo) blogDetailHandler {
	logger := log.With().Str("handlerName", "blogDetailHandler").Logger()

	return blogDetailHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		blogDetailRepo: blogDetailRepo,
	}
}

// newUniqueHash derives the public 16-character lookup key from a random
// UUID. Generated once per detail; never regenerated afterwards.
func newUniqueHash() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// getAllBlogDetails retrieves every active blog detail with its associations.
func (h blogDetailHandler) getAllBlogDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogDetails, err := h.blogDetailRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog details", "blog_details", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog details retrieved successfully.", map[string]interface{}{
			"blog_details": blogDetails,
		})
	}
}

// getBlogDetail retrieves one blog detail by public hash.
func (h blogDetailHandler) getBlogDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash, ok := h.hashParam(w, r)
		if !ok {
			return
		}

		blogDetail, err := h.blogDetailRepo.FindByHash(hash)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog detail", "blog_detail", err))
			return
		}
		if blogDetail == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog detail"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog detail retrieved successfully.", map[string]interface{}{
			"blog_detail": blogDetail,
		})
	}
}

// createBlogDetail creates a detail with its tag, image and related-post
// associations in a single transaction.
func (h blogDetailHandler) createBlogDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request createBlogDetailRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog detail request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validate.Struct(request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(validationMessage(err)))
			return
		}

		input := models.BlogDetailInput{
			BlogID:            request.BlogID,
			Hash:              newUniqueHash(),
			DetailDescription: request.DetailDescription,
			BlogMainHighlight: request.BlogMainHighlight,
			BlogPostWrapUp:    request.BlogPostWrapUp,
			Tags:              request.Tags,
			Images:            request.Images,
			RelatedBlogPosts:  request.RelatedBlogPost,
		}

		blogDetail, err := h.blogDetailRepo.Create(input)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog detail", "blog_detail", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "Blog detail created successfully.", map[string]interface{}{
			"blog_detail": blogDetail,
		})
	}
}

// updateBlogDetail applies a sparse patch; provided association arrays
// replace the whole set, absent ones are left untouched.
func (h blogDetailHandler) updateBlogDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash, ok := h.hashParam(w, r)
		if !ok {
			return
		}

		var request updateBlogDetailRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog detail patch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		blogDetail, err := h.blogDetailRepo.UpdateByHash(hash, request.toPatch())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog detail", "blog_detail", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog detail updated successfully.", map[string]interface{}{
			"blog_detail": blogDetail,
		})
	}
}

// deleteBlogDetail soft-deletes a detail and all of its children.
func (h blogDetailHandler) deleteBlogDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash, ok := h.hashParam(w, r)
		if !ok {
			return
		}

		receipt, err := h.blogDetailRepo.DeleteByHash(hash)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog detail", "blog_detail", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog detail deleted successfully.", receipt)
	}
}

func (h blogDetailHandler) hashParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	hash := strings.TrimSpace(chi.URLParam(r, "blogDetailHash"))
	if hash == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("blog detail hash is required"))
		return "", false
	}
	if len(hash) > maxHashLength {
		h.responder.WriteError(w, errs.NewBadRequestError("blog detail hash must not exceed 255 characters"))
		return "", false
	}
	return hash, true
}
