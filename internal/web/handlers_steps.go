package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/JonMunkholm/droprows/internal/store"
	"github.com/JonMunkholm/droprows/internal/table"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SelectRequest is the body of POST /api/steps/{id}/select.
type SelectRequest struct {
	Rows      string `json:"rows"`
	FromInput bool   `json:"fromInput"`
}

// StepsResponse is the body of GET /api/steps.
type StepsResponse struct {
	Steps []store.Step `json:"steps"`
}

func stepID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: step id: %v", core.ErrBadRequest, err)
	}
	return id, nil
}

func (s *Server) handleListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := s.service.ListSteps(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if steps == nil {
		steps = []store.Step{}
	}
	writeJSON(w, r, http.StatusOK, StepsResponse{Steps: steps})
}

func (s *Server) handleCreateStep(w http.ResponseWriter, r *http.Request) {
	var stored params.Stored
	if err := decodeJSON(r, &stored); err != nil {
		s.respondError(w, r, err)
		return
	}

	step, err := s.service.CreateStep(r.Context(), stored)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/steps/"+step.ID.String())
	writeJSON(w, r, http.StatusCreated, step)
}

func (s *Server) handleGetStep(w http.ResponseWriter, r *http.Request) {
	id, err := stepID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	step, err := s.service.GetStep(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, step)
}

func (s *Server) handleUpdateStep(w http.ResponseWriter, r *http.Request) {
	id, err := stepID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var stored params.Stored
	if err := decodeJSON(r, &stored); err != nil {
		s.respondError(w, r, err)
		return
	}

	step, err := s.service.UpdateStep(r.Context(), id, stored)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, step)
}

func (s *Server) handleDeleteStep(w http.ResponseWriter, r *http.Request) {
	id, err := stepID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.DeleteStep(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectRows(w http.ResponseWriter, r *http.Request) {
	id, err := stepID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req SelectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	step, err := s.service.SelectRows(r.Context(), id, req.Rows, req.FromInput)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, step)
}

// handleRenderStep renders a JSON table body with the step's params.
func (s *Server) handleRenderStep(w http.ResponseWriter, r *http.Request) {
	id, err := stepID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Render.MaxUploadSize)
	var in table.Table
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	out, err := s.service.RenderStep(r.Context(), id, &in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeTable(w, r, &in, out)
}
