package api

// ItemCreateRequest defines the payload for creating a pantry item.
// It mirrors the stored shape minus the server-assigned id.
type ItemCreateRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"imageUrl"`
}

// ImageUploadResponse is the response from POST /api/pantry/images.
type ImageUploadResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

// InfoResponse is the response from GET /v1/info.
type InfoResponse struct {
	DBPath        string `json:"db_path"`
	SchemaVersion int    `json:"schema_version"`
	TotalItems    int    `json:"total_items"`
}

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
