package capture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CameraSource captures a single frame by running a configured command
// that writes one encoded image to stdout (fswebcam, libcamera-still,
// imagesnap and similar all support this). The command string is split
// on whitespace into program and arguments.
type CameraSource struct {
	Command string
}

// NewCameraSource creates a camera source for the given capture command.
func NewCameraSource(command string) *CameraSource {
	return &CameraSource{Command: command}
}

// Capture runs the capture command once and returns the frame.
func (s *CameraSource) Capture(ctx context.Context) (Payload, error) {
	var zero Payload

	fields := strings.Fields(s.Command)
	if len(fields) == 0 {
		return zero, fmt.Errorf("camera command is not configured")
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return zero, fmt.Errorf("camera capture: %w: %s", err, detail)
		}
		return zero, fmt.Errorf("camera capture: %w", err)
	}

	data := stdout.Bytes()
	mediaType := sniffMediaType(data)
	payload := Payload{
		Data:      data,
		MediaType: mediaType,
		Filename:  "capture" + extensionForSniffed(mediaType),
	}
	if err := validatePayload(payload); err != nil {
		return zero, err
	}
	return payload, nil
}

func extensionForSniffed(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".img"
	}
}
