package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry/internal/models"
)

func newStubServer(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), mux
}

func TestClientListItems(t *testing.T) {
	client, mux := newStubServer(t)
	mux.HandleFunc("GET /api/pantry", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Item{
			{ID: "pi-ab12", Name: "Rice", Quantity: 2},
		})
	})

	items, err := client.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "pi-ab12" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestClientCreateItem(t *testing.T) {
	client, mux := newStubServer(t)
	mux.HandleFunc("POST /api/pantry", func(w http.ResponseWriter, r *http.Request) {
		var req ItemCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Item{
			ID:       "pi-new1",
			Name:     req.Name,
			Quantity: req.Quantity,
			ImageURL: req.ImageURL,
		})
	})

	item, err := client.CreateItem(context.Background(), ItemCreateRequest{
		Name:     "Rice",
		Quantity: 2,
		ImageURL: "https://example.com/y.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID != "pi-new1" || item.Name != "Rice" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestClientDeleteItemSendsIDQuery(t *testing.T) {
	client, mux := newStubServer(t)
	var gotID string
	mux.HandleFunc("DELETE /api/pantry", func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteItem(context.Background(), "pi-ab12"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotID != "pi-ab12" {
		t.Fatalf("expected id query pi-ab12, got %q", gotID)
	}
}

func TestClientUploadImage(t *testing.T) {
	client, mux := newStubServer(t)
	mux.HandleFunc("POST /api/pantry/images", func(w http.ResponseWriter, r *http.Request) {
		mediaType := r.Header.Get("Content-Type")
		if !strings.HasPrefix(mediaType, "multipart/form-data") {
			t.Fatalf("expected multipart request, got %q", mediaType)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image field: %v", err)
		}
		defer file.Close()
		if header.Filename != "shot.jpg" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		if partType := header.Header.Get("Content-Type"); partType != "image/jpeg" {
			t.Fatalf("unexpected part content type: %q", partType)
		}
		data, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ImageUploadResponse{
			URL:       "http://127.0.0.1:7343/blobs/ab/key.jpg",
			Key:       "ab/key.jpg",
			SizeBytes: int64(len(data)),
		})
	})

	resp, err := client.UploadImage(context.Background(), strings.NewReader("jpeg bytes"), "shot.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.Key != "ab/key.jpg" {
		t.Fatalf("unexpected key: %q", resp.Key)
	}
	if resp.SizeBytes != int64(len("jpeg bytes")) {
		t.Fatalf("unexpected size: %d", resp.SizeBytes)
	}
}

func TestClientDecodesErrorResponses(t *testing.T) {
	client, mux := newStubServer(t)
	mux.HandleFunc("DELETE /api/pantry", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "delete pantry item: item not found", Code: "store_error"})
	})

	err := client.DeleteItem(context.Background(), "pi-none")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "item not found") {
		t.Fatalf("expected decoded error message, got %v", err)
	}
}

func TestHTTPTimeoutFromEnv(t *testing.T) {
	t.Setenv(httpTimeoutEnvKey, "")
	if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %v", got)
	}
	t.Setenv(httpTimeoutEnvKey, "30")
	if got := httpTimeoutFromEnv(); got.Seconds() != 30 {
		t.Fatalf("expected 30s, got %v", got)
	}
	t.Setenv(httpTimeoutEnvKey, "2m")
	if got := httpTimeoutFromEnv(); got.Minutes() != 2 {
		t.Fatalf("expected 2m, got %v", got)
	}
	t.Setenv(httpTimeoutEnvKey, "bogus")
	if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
		t.Fatalf("expected default for bogus value, got %v", got)
	}
}
