package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"time"
)

// File is a claimed upload.
type File struct {
	// ID is the temp id the file was claimed by.
	ID string

	// Filename is the original client-side filename.
	Filename string

	// ContentType is the MIME type reported by the client.
	ContentType string

	// Size is the stored size in bytes.
	Size int64

	// Path is the local filesystem path. Set by DiskStore.
	Path string

	// URL is a presigned remote URL. Set by S3Store.
	URL string

	// Reader streams the file contents. Closing it releases the underlying
	// storage.
	Reader io.ReadCloser
}

// Close closes the file reader if open.
func (f *File) Close() error {
	if f.Reader != nil {
		return f.Reader.Close()
	}
	return nil
}

// Store is an upload storage backend.
type Store interface {
	// Save stores an incoming file and returns its temp id.
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)

	// Claim retrieves a stored file and consumes the temp entry. A second
	// claim of the same id fails.
	Claim(ctx context.Context, tempID string) (*File, error)

	// Cleanup removes entries older than maxAge.
	Cleanup(ctx context.Context, maxAge time.Duration) error
}

// Sweep runs store.Cleanup on an interval until ctx is done.
func Sweep(ctx context.Context, store Store, interval, maxAge time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := store.Cleanup(ctx, maxAge); err != nil {
				logger.Error("upload cleanup failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func newTempID() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
