package upload

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/facet-ui/facet/internal/errors"
)

// MemStore keeps uploads in process memory. Suitable for tests and small
// single-instance apps; everything is lost on restart.
type MemStore struct {
	maxSize int64

	mu    sync.Mutex
	files map[string]*memFile
}

type memFile struct {
	filename    string
	contentType string
	data        []byte
	created     time.Time
}

// NewMemStore creates an in-memory store. maxSize limits each file's size in
// bytes; 0 means unlimited.
func NewMemStore(maxSize int64) *MemStore {
	return &MemStore{
		maxSize: maxSize,
		files:   make(map[string]*memFile),
	}
}

func (s *MemStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if s.maxSize > 0 {
		n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
		if err != nil {
			return "", err
		}
		if n > s.maxSize {
			return "", errors.New(errors.CodeUploadTooLarge)
		}
	} else if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}

	id := newTempID()
	s.mu.Lock()
	s.files[id] = &memFile{
		filename:    filename,
		contentType: contentType,
		data:        buf.Bytes(),
		created:     time.Now(),
	}
	s.mu.Unlock()
	return id, nil
}

func (s *MemStore) Claim(ctx context.Context, tempID string) (*File, error) {
	s.mu.Lock()
	mf, ok := s.files[tempID]
	if ok {
		delete(s.files, tempID)
	}
	s.mu.Unlock()
	if !ok {
		return nil, errors.New(errors.CodeUploadNotFound).
			WithMessagef("upload %q not found", tempID)
	}
	return &File{
		ID:          tempID,
		Filename:    mf.filename,
		ContentType: mf.contentType,
		Size:        int64(len(mf.data)),
		Reader:      io.NopCloser(bytes.NewReader(mf.data)),
	}, nil
}

func (s *MemStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, mf := range s.files {
		if mf.created.Before(cutoff) {
			delete(s.files, id)
		}
	}
	return nil
}

// Len returns the number of unclaimed uploads.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
