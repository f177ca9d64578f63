package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gaurav-prasanna/pagebrief/auth"
	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/gaurav-prasanna/pagebrief/core/render"
	"github.com/gaurav-prasanna/pagebrief/core/summarize"
	"github.com/gaurav-prasanna/pagebrief/store"
)

const maxRequestBody = 1 << 20

type createRequest struct {
	URL string `json:"url" validate:"required,max=2048"`
}

type editRequest struct {
	SummaryText string `json:"summary_text" validate:"required,max=20000"`
}

type refineRequest struct {
	Mode string `json:"mode" validate:"required,oneof=shorter longer rewrite"`
}

type summaryResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	SummaryText string    `json:"summary_text"`
	Bullets     []string  `json:"bullets"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(rec *store.Record) summaryResponse {
	bullets := core.ParseBullets(rec.SummaryText)
	if bullets == nil {
		bullets = []string{}
	}
	return summaryResponse{
		ID:          rec.ID,
		URL:         rec.URL,
		Title:       rec.Title,
		SummaryText: rec.SummaryText,
		Bullets:     bullets,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !s.decode(w, r, &req) {
		return
	}
	rec, err := s.svc.Create(r.Context(), userID(r), req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(rec))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, &core.Error{Kind: core.InvalidInput, Cause: fmt.Errorf("bad limit %q", v)})
			return
		}
		limit = n
	}
	recs, err := s.svc.List(r.Context(), userID(r), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]summaryResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toResponse(&recs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"summaries": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !s.decode(w, r, &req) {
		return
	}
	rec, err := s.svc.Edit(r.Context(), userID(r), r.PathValue("id"), req.SummaryText)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if !s.decode(w, r, &req) {
		return
	}
	mode, err := summarize.ParseMode(req.Mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.svc.Refine(r.Context(), userID(r), r.PathValue("id"), mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := r.PathValue("id")
	data, err := s.svc.Render(r.Context(), userID(r), id, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == render.FormatPNG || format == render.FormatPDF {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="summary-%s.%s"`, id, format))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, &core.Error{Kind: core.InvalidInput, Cause: fmt.Errorf("malformed JSON body: %w", err)})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, r, &core.Error{Kind: core.InvalidInput, Cause: errors.New(validationMessage(err))})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("field %s failed %s validation", fe.Field(), fe.Tag())
	}
	return err.Error()
}

// userID is only called behind auth.Middleware.
func userID(r *http.Request) uuid.UUID {
	id, _ := auth.UserID(r.Context())
	return id
}
