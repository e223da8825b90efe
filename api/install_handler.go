package api

import (
	"net/http"

	"github.com/enat-care/enat/backend/database"
	"github.com/enat-care/enat/backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type installHandler struct {
	responder Responder
	logger    zerolog.Logger
	dsn       string
}

func newInstallHandler(dsn string) installHandler {
	logger := log.With().Str("handlerName", "installHandler").Logger()

	return installHandler{
		responder: NewResponder(logger),
		logger:    logger,
		dsn:       dsn,
	}
}

// install applies the embedded schema migrations. Safe to call repeatedly;
// an up-to-date schema is a no-op.
func (h installHandler) install() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Migrate(h.dsn); err != nil {
			h.logger.Error().Err(err).Msg("Migration run failed")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("database installation failed", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "Database schema installed successfully.", nil)
	}
}
