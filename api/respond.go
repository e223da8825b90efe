package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/enat-care/enat/backend/errs"
	"github.com/rs/zerolog"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const internalErrorMessage = "Something went wrong! Please try again later."

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteSuccess writes the success envelope with the given status code.
func (r Responder) WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	r.writeJSON(w, status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError maps the error onto the envelope. Typed *errs.ApiErr values
// carry their own status and a client-safe message; anything else is logged
// and reported as a generic 500 so internals never leak.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Error:   errorName(http.StatusInternalServerError),
			Message: internalErrorMessage,
		})
		return
	}

	message := apiErr.Error()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		// 5xx details stay in the logs.
		r.logger.Error().Str("cause", apiErr.GetFullError()).Msg("internal error")
		message = internalErrorMessage
	}

	r.writeJSON(w, apiErr.StatusCode, envelope{
		Success: false,
		Error:   errorName(apiErr.StatusCode),
		Message: message,
	})
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func errorName(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusNotFound:
		return "404 Not Found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Internal Server Error"
	}
}
