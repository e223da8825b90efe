package api

import (
	"net/http"

	"github.com/enat-care/enat/backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// getAllTags lists the tag vocabulary for editor pickers.
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tag", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Tags retrieved successfully.", map[string]interface{}{
			"tags": tags,
		})
	}
}
