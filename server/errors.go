package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/service"
	"github.com/gaurav-prasanna/pagebrief/store"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// httpStatus maps an error to a status code and a stable error code.
func httpStatus(err error) (int, string) {
	if kind, ok := core.KindOf(err); ok {
		switch kind {
		case core.InvalidInput:
			return http.StatusBadRequest, kind.String()
		case core.AccessDenied, core.NotFound, core.InsufficientContent:
			return http.StatusUnprocessableEntity, kind.String()
		case core.FetchFailed, core.NetworkError:
			return http.StatusBadGateway, kind.String()
		case core.RenderInitFailed:
			return http.StatusInternalServerError, kind.String()
		}
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "summary_not_found"
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, "summarizer_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := httpStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && code == "internal" {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}
