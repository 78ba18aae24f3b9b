package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes blobs to a directory served by the HTTP shell
// under /media. Development driver; production uses S3.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStore) Put(_ context.Context, key, contentType string, body io.Reader) (Upload, error) {
	mt, err := MediaTypeFor(contentType)
	if err != nil {
		return Upload{}, err
	}

	f, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return Upload{}, err
	}
	tmp := f.Name()

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return Upload{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return Upload{}, err
	}

	dst := filepath.Join(s.dir, key)
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return Upload{}, err
	}

	return Upload{
		URL:       s.baseURL + "/" + key,
		MediaType: mt,
	}, nil
}

// Dir is the directory the HTTP shell should serve as /media.
func (s *LocalStore) Dir() string { return s.dir }
