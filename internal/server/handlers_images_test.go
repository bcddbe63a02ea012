package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"pantry/internal/api"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

func multipartImageBody(t *testing.T, content []byte, mediaType string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="shot.png"`)
	if mediaType != "" {
		header.Set("Content-Type", mediaType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestUploadImageAndFetchBlob(t *testing.T) {
	srv := newPantryTestServer(t)

	body, contentType := multipartImageBody(t, pngBytes, "image/png")
	req := httptest.NewRequest(http.MethodPost, "/api/pantry/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var resp api.ImageUploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if resp.Key == "" || resp.URL == "" {
		t.Fatalf("expected key and url, got %+v", resp)
	}
	if resp.SizeBytes != int64(len(pngBytes)) {
		t.Fatalf("expected size %d, got %d", len(pngBytes), resp.SizeBytes)
	}

	blobReq := httptest.NewRequest(http.MethodGet, "/blobs/"+resp.Key, nil)
	blobW := httptest.NewRecorder()
	srv.routes().ServeHTTP(blobW, blobReq)
	if blobW.Code != http.StatusOK {
		t.Fatalf("expected 200 from blob fetch, got %d", blobW.Code)
	}
	got, err := io.ReadAll(blobW.Body)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if !bytes.Equal(got, pngBytes) {
		t.Fatal("blob content mismatch")
	}
	if contentType := blobW.Header().Get("Content-Type"); contentType != "image/png" {
		t.Fatalf("expected image/png content type, got %q", contentType)
	}
}

func TestUploadImageSniffsMissingContentType(t *testing.T) {
	srv := newPantryTestServer(t)
	srv.ConfigureBlobOptions(BlobOptions{AllowedMediaTypes: []string{"image/png"}})

	body, contentType := multipartImageBody(t, pngBytes, "")
	req := httptest.NewRequest(http.MethodPost, "/api/pantry/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected sniffed png to be accepted, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestUploadImageRejectsDisallowedMediaType(t *testing.T) {
	srv := newPantryTestServer(t)
	srv.ConfigureBlobOptions(BlobOptions{AllowedMediaTypes: []string{"image/png"}})

	body, contentType := multipartImageBody(t, []byte("plain text"), "text/plain")
	req := httptest.NewRequest(http.MethodPost, "/api/pantry/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestUploadImageRequiresImageField(t *testing.T) {
	srv := newPantryTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("other", "value"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/pantry/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGetBlobAbsentKey(t *testing.T) {
	srv := newPantryTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/blobs/ab/absentkey.png", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
}
