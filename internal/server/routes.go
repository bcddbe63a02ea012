package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Pantry collection. Method dispatch happens inside the handler so
	// unsupported verbs get a 405 with an Allow header.
	mux.HandleFunc("/api/pantry", s.handlePantry)

	// Image uploads and blob serving.
	mux.HandleFunc("POST /api/pantry/images", s.handleUploadImage)
	mux.HandleFunc("GET /blobs/{key...}", s.handleGetBlob)

	return mux
}
