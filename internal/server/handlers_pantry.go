package server

import (
	"fmt"
	"net/http"
	"strings"

	"pantry/internal/api"
)

// handlePantry dispatches the /api/pantry collection by verb. The route is
// registered without a method pattern so that unsupported verbs can be
// answered with 405 and an Allow header instead of the mux default.
func (s *Server) handlePantry(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListItems(w, r)
	case http.MethodPost:
		s.handleCreateItem(w, r)
	case http.MethodDelete:
		s.handleDeleteItem(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		s.writeErrorReq(w, r, http.StatusMethodNotAllowed,
			methodNotAllowed(fmt.Errorf("method %s not allowed", r.Method)))
	}
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	// The draft is stored as submitted. Field validation is the
	// client's responsibility, matching the record store contract.
	var req api.ItemCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	item, err := s.service.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(fmt.Errorf("id is required")))
		return
	}

	// Store failures, including deletes of absent ids, are not
	// distinguished at this layer: anything the store rejects is a 500.
	if err := s.service.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
