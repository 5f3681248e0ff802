package upload

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/facet-ui/facet/internal/errors"
)

// DiskStore spools uploads to a local directory. Metadata rides alongside
// each file in a .meta sidecar, so unclaimed uploads survive a restart.
type DiskStore struct {
	dir     string
	maxSize int64

	mu    sync.Mutex
	files map[string]*diskMeta
}

type diskMeta struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDiskStore creates a store rooted at dir, creating it if needed. maxSize
// limits each file's size in bytes; 0 means unlimited.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{
		dir:     dir,
		maxSize: maxSize,
		files:   make(map[string]*diskMeta),
	}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	id := newTempID()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	written, err := io.Copy(f, src)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return "", errors.New(errors.CodeUploadTooLarge)
	}

	meta := &diskMeta{
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
		CreatedAt:   time.Now(),
	}
	if err := s.writeMeta(id, meta); err != nil {
		os.Remove(path)
		return "", err
	}
	s.mu.Lock()
	s.files[id] = meta
	s.mu.Unlock()
	return id, nil
}

func (s *DiskStore) Claim(ctx context.Context, tempID string) (*File, error) {
	s.mu.Lock()
	meta, ok := s.files[tempID]
	if ok {
		delete(s.files, tempID)
	}
	s.mu.Unlock()

	if !ok {
		// Entry may predate this process; fall back to the sidecar.
		var err error
		meta, err = s.readMeta(tempID)
		if err != nil {
			return nil, errors.New(errors.CodeUploadNotFound).
				WithMessagef("upload %q not found", tempID)
		}
	}

	path := filepath.Join(s.dir, tempID)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeUploadNotFound).
			WithMessagef("upload %q not found", tempID)
	}
	return &File{
		ID:          tempID,
		Filename:    meta.Filename,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		Path:        path,
		Reader: &removeOnClose{
			File:  f,
			paths: []string{path, s.metaPath(tempID)},
		},
	}, nil
}

func (s *DiskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	for id, meta := range s.files {
		if meta.CreatedAt.Before(cutoff) {
			delete(s.files, id)
			os.Remove(filepath.Join(s.dir, id))
			os.Remove(s.metaPath(id))
		}
	}
	s.mu.Unlock()

	// Orphans from previous processes are removed by modification time.
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
	return nil
}

func (s *DiskStore) metaPath(id string) string {
	return filepath.Join(s.dir, id+".meta")
}

func (s *DiskStore) writeMeta(id string, meta *diskMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(s.metaPath(id), data, 0o644)
}

func (s *DiskStore) readMeta(id string) (*diskMeta, error) {
	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, err
	}
	var meta diskMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// removeOnClose deletes the spooled file and its sidecar once the caller is
// done reading.
type removeOnClose struct {
	*os.File
	paths []string
}

func (r *removeOnClose) Close() error {
	err := r.File.Close()
	for _, p := range r.paths {
		os.Remove(p)
	}
	return err
}
