package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"pantry/internal/blobstore"
	"pantry/internal/config"
	"pantry/internal/server"
	"pantry/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the pantry API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			blobRoot := cfg.Blobs.Root
			if blobRoot == "" {
				blobRoot = filepath.Join(filepath.Dir(cfg.DBPath), ".pantry", "blobs")
			}
			bs, err := blobstore.NewLocalStore(blobRoot, cfg.APIURL)
			if err != nil {
				return err
			}

			srv := server.New(addr, st, bs, cfg.DBPath, logger)
			srv.ConfigureBlobOptions(server.BlobOptions{
				MaxUploadBytes:     cfg.Blobs.MaxUploadBytes,
				MultipartMaxMemory: cfg.Blobs.MultipartMaxMemory,
				AllowedMediaTypes:  cfg.Blobs.AllowedMediaTypes,
			})
			return srv.ListenAndServe()
		},
	}
}
