package documents

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/isanahealth/practice-api/internal/auth"
	"github.com/isanahealth/practice-api/pkg/logging"
)

// Store is the slice of the app state store the documents handler consumes.
type Store interface {
	Documents() []Document
	DocumentsForClient(clientID string) []Document
	DocumentsForSession(sessionID string) []Document
	AddDocument(ctx context.Context, up *Upload, body io.Reader) (*Document, error)
	RemoveDocument(ctx context.Context, id string) error
}

// Handler handles HTTP requests for documents
type Handler struct {
	store    Store
	maxBytes int64
	logger   *logging.Logger
}

// NewHandler creates a new documents handler
func NewHandler(store Store, maxBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, maxBytes: maxBytes, logger: logger}
}

// ListDocumentsResponse is the response for listing documents
type ListDocumentsResponse struct {
	Documents []Document `json:"documents"`
	Count     int        `json:"count"`
}

// List handles GET /documents with optional client_id or session_id filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var list []Document
	switch {
	case q.Get("client_id") != "":
		list = h.store.DocumentsForClient(q.Get("client_id"))
	case q.Get("session_id") != "":
		list = h.store.DocumentsForSession(q.Get("session_id"))
	default:
		list = h.store.Documents()
	}
	writeJSON(w, http.StatusOK, ListDocumentsResponse{Documents: list, Count: len(list)})
}

// Upload handles POST /documents as a multipart form. The file part is named
// "file"; client_ids and session_ids are comma-separated form values.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	up := &Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		ClientIDs:   splitIDs(r.FormValue("client_ids")),
		SessionIDs:  splitIDs(r.FormValue("session_ids")),
	}
	if up.ContentType == "" {
		up.ContentType = "application/octet-stream"
	}

	doc, err := h.store.AddDocument(r.Context(), up, file)
	if err != nil {
		h.writeError(w, "failed to upload document", err)
		return
	}

	h.logger.Info("document created", "id", doc.ID, "name", doc.Name, "size", doc.FileSize)
	writeJSON(w, http.StatusCreated, doc)
}

// Delete handles DELETE /documents/{documentID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")
	if err := h.store.RemoveDocument(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, auth.ErrAuthRequired):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrEmptyFile):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error(msg, "error", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
