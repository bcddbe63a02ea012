package capture

import (
	"context"
	"os"
	"path/filepath"
)

// FileSource reads a user-chosen local file into an image payload.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-picker source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Capture reads and sniffs the file.
func (s *FileSource) Capture(ctx context.Context) (Payload, error) {
	var zero Payload
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return zero, err
	}

	payload := Payload{
		Data:      data,
		MediaType: sniffMediaType(data),
		Filename:  filepath.Base(s.Path),
	}
	if err := validatePayload(payload); err != nil {
		return zero, err
	}
	return payload, nil
}
