package server

import (
	"net/http"

	"pantry/internal/api"
	"pantry/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountItems(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		DBPath:        s.dbPath,
		SchemaVersion: store.SchemaVersion(),
		TotalItems:    count,
	})
}
