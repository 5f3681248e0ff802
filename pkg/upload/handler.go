package upload

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/facet-ui/facet/internal/errors"
)

// Config tunes the upload handler.
type Config struct {
	// MaxFileSize caps the accepted file size in bytes. Default 10MB.
	MaxFileSize int64

	// AllowedTypes whitelists MIME types. Empty allows everything. A type
	// ending in "/*" matches the whole top-level class.
	AllowedTypes []string

	// FieldName is the multipart form field to read. Default "file".
	FieldName string
}

// DefaultConfig returns the handler defaults.
func DefaultConfig() Config {
	return Config{
		MaxFileSize: 10 << 20,
		FieldName:   "file",
	}
}

// Handler returns an http.Handler accepting multipart uploads into store.
// Mount it on the server router:
//
//	srv.Router().Post("/facet/upload", upload.Handler(store))
//
// On success it responds with {"temp_id": "..."}; the application claims the
// file from an event handler using that id.
func Handler(store Store) http.Handler {
	return HandlerWithConfig(store, DefaultConfig())
}

// HandlerWithConfig returns an upload handler with explicit configuration.
func HandlerWithConfig(store Store, cfg Config) http.Handler {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 << 20
	}
	if cfg.FieldName == "" {
		cfg.FieldName = "file"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Cap the body before parsing so an oversized request can't buffer.
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxFileSize)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if stderrors.As(err, &maxErr) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "malformed multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile(cfg.FieldName)
		if err != nil {
			http.Error(w, "no file provided", http.StatusBadRequest)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !typeAllowed(cfg.AllowedTypes, contentType) {
			http.Error(w, "unsupported file type", http.StatusUnsupportedMediaType)
			return
		}

		tempID, err := store.Save(r.Context(), header.Filename, contentType, file)
		if err != nil {
			if errors.HasCode(err, errors.CodeUploadTooLarge) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "upload failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"temp_id": tempID})
	})
}

// typeAllowed reports whether contentType matches the whitelist.
func typeAllowed(allowed []string, contentType string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, t := range allowed {
		if t == contentType {
			return true
		}
		if class, ok := strings.CutSuffix(t, "/*"); ok &&
			strings.HasPrefix(contentType, class+"/") {
			return true
		}
	}
	return false
}

// Expiry is the default lifetime of unclaimed uploads.
const Expiry = time.Hour
