// Package capture produces encoded image payloads for new pantry items.
//
// Two interchangeable sources exist: a file picker that decodes a local
// file, and a single-shot camera that runs a configured capture command.
// Both hand back the same Payload shape; the pantry view keeps only the
// most recent capture.
package capture

import (
	"context"
	"fmt"
	"net/http"
)

// Payload is one self-contained encoded image.
type Payload struct {
	Data      []byte
	MediaType string
	Filename  string
}

// Source is the capture capability: produce an image payload on demand.
type Source interface {
	Capture(ctx context.Context) (Payload, error)
}

func sniffMediaType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}

func validatePayload(p Payload) error {
	if len(p.Data) == 0 {
		return fmt.Errorf("captured image is empty")
	}
	return nil
}
