package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driftroom/driftroom/internal/domain"
)

// TestLocalStorePut checks that a blob lands on disk under its key and
// that the returned URL and media type follow from the content type.
func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalStore(dir, "http://localhost:8080/media")
	if err != nil {
		t.Fatalf("Couldn't create the local store: %+v", err)
	}

	up, err := store.Put(context.Background(), "abc123.png", "image/png", strings.NewReader("fake-png-bytes"))
	if err != nil {
		t.Fatalf("Couldn't store the blob: %+v", err)
	}

	if want, got := "http://localhost:8080/media/abc123.png", up.URL; want != got {
		t.Errorf("Invalid blob URL: expected '%s' but got '%s'", want, got)
	}
	if want, got := domain.MediaImage, up.MediaType; want != got {
		t.Errorf("Invalid media type: expected '%s' but got '%s'", want, got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
	if err != nil {
		t.Fatalf("Couldn't read back the stored blob: %+v", err)
	}
	if want, got := "fake-png-bytes", string(data); want != got {
		t.Errorf("Invalid stored contents: expected '%s' but got '%s'", want, got)
	}
}

// TestLocalStoreRejectsUnknownType checks the content-type gate.
func TestLocalStoreRejectsUnknownType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/media")
	if err != nil {
		t.Fatalf("Couldn't create the local store: %+v", err)
	}

	_, err = store.Put(context.Background(), "x.bin", "application/octet-stream", strings.NewReader("junk"))
	if !errors.Is(err, ErrUnsupportedContentType) {
		t.Errorf("An unsupported content type was not rejected: got '%+v'", err)
	}
}

// TestMediaTypeFor checks the MIME to media-type mapping.
func TestMediaTypeFor(t *testing.T) {
	cases := []struct {
		contentType string
		want        domain.MediaType
		ok          bool
	}{
		{"image/jpeg", domain.MediaImage, true},
		{"image/webp", domain.MediaImage, true},
		{"video/mp4", domain.MediaVideo, true},
		{"video/webm", domain.MediaVideo, true},
		{"text/html", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, err := MediaTypeFor(c.contentType)
		if c.ok && err != nil {
			t.Errorf("'%s' was rejected: %+v", c.contentType, err)
		} else if !c.ok && err == nil {
			t.Errorf("'%s' was accepted as '%s'", c.contentType, got)
		} else if got != c.want {
			t.Errorf("Invalid media type for '%s': expected '%s' but got '%s'", c.contentType, c.want, got)
		}
	}
}
