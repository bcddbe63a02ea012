package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"pantry/internal/api"
)

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if s.blobs == nil {
		s.writeServiceError(w, r, internalError(fmt.Errorf("blob store is not configured")))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.blobOpt.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.blobOpt.MultipartMaxMemory); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyMultipartError(err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(fmt.Errorf("image is required")))
		return
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	peek, _ := buffered.Peek(512)
	mediaType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mediaType == "" {
		mediaType = http.DetectContentType(peek)
	}

	if !s.mediaTypeAllowed(mediaType) {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequest(fmt.Errorf("media type %s is not allowed", mediaType)))
		return
	}

	result, err := s.blobs.Put(r.Context(), buffered, mediaType)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.log().Info("stored image blob", "key", result.Key, "size", result.SizeBytes)
	s.writeJSON(w, http.StatusCreated, api.ImageUploadResponse{
		URL:       result.URL,
		Key:       result.Key,
		SHA256:    result.SHA256,
		SizeBytes: result.SizeBytes,
	})
}

func (s *Server) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	if s.blobs == nil {
		s.writeServiceError(w, r, internalError(fmt.Errorf("blob store is not configured")))
		return
	}

	key := r.PathValue("key")
	rc, err := s.blobs.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.writeErrorReq(w, r, http.StatusNotFound, notFound(fmt.Errorf("blob not found")))
			return
		}
		s.writeStoreError(w, r, err)
		return
	}
	defer rc.Close()

	if mediaType := mime.TypeByExtension(path.Ext(key)); mediaType != "" {
		w.Header().Set("Content-Type", mediaType)
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.log().Error("stream blob", "key", key, "error", err)
	}
}

func (s *Server) mediaTypeAllowed(mediaType string) bool {
	if len(s.blobOpt.AllowedMediaTypes) == 0 {
		return true
	}
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	parsed = strings.ToLower(parsed)
	for _, allowed := range s.blobOpt.AllowedMediaTypes {
		if parsed == allowed {
			return true
		}
	}
	return false
}
