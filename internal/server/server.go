package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"pantry/internal/blobstore"
	"pantry/internal/store"
)

const (
	allowRemoteEnvKey = "PANTRY_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
)

// BlobOptions configures image upload handling.
type BlobOptions struct {
	MaxUploadBytes     int64
	MultipartMaxMemory int64
	AllowedMediaTypes  []string
}

// Server wraps HTTP handlers for the pantry API.
type Server struct {
	addr    string
	store   store.ItemStore
	blobs   blobstore.BlobStore
	service *PantryService
	logger  *slog.Logger
	dbPath  string
	blobOpt BlobOptions
}

// New creates a new server instance.
func New(addr string, itemStore store.ItemStore, blobs blobstore.BlobStore, dbPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		addr:    addr,
		store:   itemStore,
		blobs:   blobs,
		service: NewPantryService(itemStore),
		logger:  logger,
		dbPath:  dbPath,
		blobOpt: BlobOptions{
			MaxUploadBytes:     defaultUploadMaxBody,
			MultipartMaxMemory: defaultMultipartMemory,
		},
	}
}

// ConfigureBlobOptions overrides upload limits and media-type checks.
func (s *Server) ConfigureBlobOptions(opt BlobOptions) {
	if opt.MaxUploadBytes > 0 {
		s.blobOpt.MaxUploadBytes = opt.MaxUploadBytes
	}
	if opt.MultipartMaxMemory > 0 {
		s.blobOpt.MultipartMaxMemory = opt.MultipartMaxMemory
	}
	s.blobOpt.AllowedMediaTypes = opt.AllowedMediaTypes
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
