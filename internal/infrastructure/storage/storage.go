// Package storage is the media blob store boundary. The chat core
// never uploads anything itself; it only ever consumes the {URL,
// MediaType} pair a store hands back.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/driftroom/driftroom/internal/domain"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

// Upload is the result handed back to the client, which echoes it
// inside subsequent chat payloads.
type Upload struct {
	URL       string           `json:"url"`
	MediaType domain.MediaType `json:"type"`
}

type BlobStore interface {
	// Put stores the blob and returns its public URL and coarse media
	// type. key is a server-generated name; contentType is the
	// client-declared MIME type, already validated.
	Put(ctx context.Context, key, contentType string, body io.Reader) (Upload, error)
}

// contentTypes maps accepted MIME types to the media type the chat
// protocol carries.
var contentTypes = map[string]domain.MediaType{
	"image/jpeg": domain.MediaImage,
	"image/png":  domain.MediaImage,
	"image/gif":  domain.MediaImage,
	"image/webp": domain.MediaImage,
	"video/mp4":  domain.MediaVideo,
	"video/webm": domain.MediaVideo,
}

func MediaTypeFor(contentType string) (domain.MediaType, error) {
	mt, ok := contentTypes[contentType]
	if !ok {
		return "", ErrUnsupportedContentType
	}
	return mt, nil
}
