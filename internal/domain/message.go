package domain

import "time"

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Sender labels as each recipient sees them. The self marker is
// reserved: AnonLabel can never produce it, so the sender's own echo is
// always distinguishable from everyone else's copy.
const (
	SelfLabel   = "you"
	SystemLabel = "system"

	anonPrefix    = "anon-"
	anonLabelRuns = 8
)

// Message is transient fan-out state. It is never stored and exists
// only for the duration of one routing call.
type Message struct {
	SenderConnID    string
	Text            string
	MediaURL        string
	MediaType       MediaType
	ServerTimestamp time.Time
}

// NewMessage validates and stamps an inbound chat payload. The server
// clock is the only timestamp authority; client timestamps are ignored.
func NewMessage(senderConnID, text, mediaURL, mediaType string, now time.Time) (*Message, error) {
	if text == "" && mediaURL == "" {
		return nil, ErrEmptyMessage
	}

	var mt MediaType
	if mediaURL != "" {
		var err error
		mt, err = ParseMediaType(mediaType)
		if err != nil {
			return nil, err
		}
	}

	return &Message{
		SenderConnID:    senderConnID,
		Text:            text,
		MediaURL:        mediaURL,
		MediaType:       mt,
		ServerTimestamp: now,
	}, nil
}

func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaImage, MediaVideo:
		return MediaType(s), nil
	default:
		return "", ErrBadMediaType
	}
}

// AnonLabel derives the stable anonymized identity other members see
// for a connection. Distinct from SelfLabel and SystemLabel by
// construction.
func AnonLabel(connID string) string {
	tail := connID
	if len(tail) > anonLabelRuns {
		tail = tail[:anonLabelRuns]
	}
	return anonPrefix + tail
}
