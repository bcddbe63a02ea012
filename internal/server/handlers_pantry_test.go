package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"pantry/internal/api"
	"pantry/internal/blobstore"
	"pantry/internal/models"
	"pantry/internal/store"
)

func newPantryTestServer(t *testing.T) *Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "pantry-test.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	bs, err := blobstore.NewLocalStore(filepath.Join(t.TempDir(), "blobs"), "http://127.0.0.1:7343")
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}

	return New("127.0.0.1:0", st, bs, dbPath, nil)
}

func createTestItem(t *testing.T, srv *Server, name string, quantity int) models.Item {
	t.Helper()

	body, err := json.Marshal(api.ItemCreateRequest{
		Name:     name,
		Quantity: quantity,
		ImageURL: "https://example.com/y.jpg",
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/pantry", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var item models.Item
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return item
}

func TestListItemsEmptyStore(t *testing.T) {
	srv := newPantryTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestCreateItemAssignsID(t *testing.T) {
	srv := newPantryTestServer(t)

	item := createTestItem(t, srv, "Rice", 2)
	if item.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if item.Name != "Rice" || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.ImageURL != "https://example.com/y.jpg" {
		t.Fatalf("unexpected image url: %q", item.ImageURL)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from list, got %d", w.Code)
	}
	var items []models.Item
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected listed item %s, got %+v", item.ID, items)
	}
}

func TestCreateItemStoresDraftAsSubmitted(t *testing.T) {
	srv := newPantryTestServer(t)

	// Validation is a client concern: an empty draft is still stored.
	item := createTestItem(t, srv, "", 0)
	if item.ID == "" {
		t.Fatal("expected server-assigned id")
	}
}

func TestCreateItemRejectsMalformedJSON(t *testing.T) {
	srv := newPantryTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pantry", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestDeleteItem(t *testing.T) {
	srv := newPantryTestServer(t)
	item := createTestItem(t, srv, "Rice", 2)

	req := httptest.NewRequest(http.MethodDelete, "/api/pantry?id="+item.ID, nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", w.Code, w.Body.String())
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	listW := httptest.NewRecorder()
	srv.routes().ServeHTTP(listW, listReq)
	var items []models.Item
	if err := json.Unmarshal(listW.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	for _, got := range items {
		if got.ID == item.ID {
			t.Fatalf("item %s still listed after delete", item.ID)
		}
	}
}

func TestDeleteItemAbsentID(t *testing.T) {
	srv := newPantryTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/pantry?id=pi-none", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for absent id, got %d (%s)", w.Code, w.Body.String())
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error == "" {
		t.Fatal("expected error message in response")
	}
}

func TestDeleteItemMissingID(t *testing.T) {
	srv := newPantryTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/pantry", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestPantryUnsupportedMethod(t *testing.T) {
	srv := newPantryTestServer(t)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		req := httptest.NewRequest(method, "/api/pantry", nil)
		w := httptest.NewRecorder()
		srv.routes().ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d (%s)", method, w.Code, w.Body.String())
		}
		if allow := w.Header().Get("Allow"); allow != "GET, POST, DELETE" {
			t.Fatalf("%s: unexpected Allow header %q", method, allow)
		}
	}
}

func TestHealthAndInfo(t *testing.T) {
	srv := newPantryTestServer(t)
	createTestItem(t, srv, "Rice", 2)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", w.Code)
	}

	infoReq := httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	infoW := httptest.NewRecorder()
	srv.routes().ServeHTTP(infoW, infoReq)
	if infoW.Code != http.StatusOK {
		t.Fatalf("expected 200 from info, got %d (%s)", infoW.Code, infoW.Body.String())
	}
	var info api.InfoResponse
	if err := json.Unmarshal(infoW.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.TotalItems != 1 {
		t.Fatalf("expected 1 item, got %d", info.TotalItems)
	}
	if info.SchemaVersion != store.SchemaVersion() {
		t.Fatalf("expected schema version %d, got %d", store.SchemaVersion(), info.SchemaVersion)
	}
}
