package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/enat-care/enat/backend/database"
	"github.com/enat-care/enat/backend/errs"
	"github.com/enat-care/enat/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
}

func newBlogHandler(blogRepo *database.BlogRepo) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
	}
}

// getAllBlogs returns the newest posts for the home page listing.
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blogs", "blog", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blogs retrieved successfully.", map[string]interface{}{
			"blogs": blogs,
		})
	}
}

func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.blogIDParam(w, r)
		if !ok {
			return
		}

		blog, err := h.blogRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog retrieved successfully.", map[string]interface{}{
			"blog": blog,
		})
	}
}

func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request createBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validate.Struct(request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(validationMessage(err)))
			return
		}

		blog, err := h.blogRepo.Add(&models.Blog{
			UserID:          uint64(request.UserID),
			BlogImg:         request.BlogImg,
			BlogTitle:       request.BlogTitle,
			BlogDescription: request.BlogDescription,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog", "blog", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "Blog created successfully.", map[string]interface{}{
			"blog": blog,
		})
	}
}

func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.blogIDParam(w, r)
		if !ok {
			return
		}

		var request updateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog patch body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		updates := map[string]interface{}{}
		if request.BlogImg != nil {
			updates["blog_img"] = *request.BlogImg
		}
		if request.BlogTitle != nil {
			updates["blog_title"] = *request.BlogTitle
		}
		if request.BlogDescription != nil {
			updates["blog_description"] = *request.BlogDescription
		}
		if len(updates) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no updatable fields provided"))
			return
		}

		blog, err := h.blogRepo.Update(id, updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog", "blog", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog updated successfully.", map[string]interface{}{
			"blog": blog,
		})
	}
}

func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.blogIDParam(w, r)
		if !ok {
			return
		}

		if err := h.blogRepo.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog", "blog", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Blog deleted successfully.", map[string]interface{}{
			"blog_id": id,
		})
	}
}

func (h blogHandler) blogIDParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "blogID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.responder.WriteError(w, errs.NewBadRequestError("blog id must be a positive integer"))
		return 0, false
	}
	return id, true
}
