package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartBody(t *testing.T, field, filename, contentType, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(textPartHeader(field, filename, contentType))
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func textPartHeader(field, filename, contentType string) map[string][]string {
	return map[string][]string{
		"Content-Disposition": {`form-data; name="` + field + `"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	}
}

func TestHandlerAcceptsUpload(t *testing.T) {
	store := NewMemStore(0)
	handler := Handler(store)

	body, contentType := multipartBody(t, "file", "doc.txt", "text/plain", "contents")
	req := httptest.NewRequest(http.MethodPost, "/facet/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON response: %v", err)
	}
	id := resp["temp_id"]
	if id == "" {
		t.Fatal("response has no temp_id")
	}

	f, err := store.Claim(context.Background(), id)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	defer f.Close()
	if f.Filename != "doc.txt" {
		t.Errorf("Filename = %q, want doc.txt", f.Filename)
	}
}

func TestHandlerRejectsNonPost(t *testing.T) {
	handler := Handler(NewMemStore(0))
	req := httptest.NewRequest(http.MethodGet, "/facet/upload", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandlerRejectsMissingFile(t *testing.T) {
	handler := Handler(NewMemStore(0))
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("other", "value")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/facet/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerRejectsOversizedBody(t *testing.T) {
	store := NewMemStore(0)
	handler := HandlerWithConfig(store, Config{MaxFileSize: 64})

	body, contentType := multipartBody(t, "file", "big.bin", "application/octet-stream",
		strings.Repeat("x", 1024))
	req := httptest.NewRequest(http.MethodPost, "/facet/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
	if got := store.Len(); got != 0 {
		t.Errorf("store holds %d files, want 0", got)
	}
}

func TestHandlerRejectsDisallowedType(t *testing.T) {
	handler := HandlerWithConfig(NewMemStore(0), Config{
		MaxFileSize:  1 << 20,
		AllowedTypes: []string{"image/*", "application/pdf"},
	})

	body, contentType := multipartBody(t, "file", "run.sh", "text/x-shellscript", "#!/bin/sh")
	req := httptest.NewRequest(http.MethodPost, "/facet/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestTypeAllowed(t *testing.T) {
	allowed := []string{"image/*", "application/pdf"}
	cases := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"application/pdf", true},
		{"text/html", false},
		{"application/octet-stream", false},
	}
	for _, tc := range cases {
		if got := typeAllowed(allowed, tc.contentType); got != tc.want {
			t.Errorf("typeAllowed(%q) = %v, want %v", tc.contentType, got, tc.want)
		}
	}
	if !typeAllowed(nil, "anything/at-all") {
		t.Error("empty whitelist rejected a type")
	}
}
