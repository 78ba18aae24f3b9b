package domain

import (
	"errors"
	"testing"
	"time"
)

// TestNewMessage checks validation and server-side stamping of chat
// payloads.
func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	m, err := NewMessage("conn-1", "hello", "", "", now)
	if err != nil {
		t.Fatalf("Couldn't build a plain text message: %+v", err)
	}
	if want, got := "hello", m.Text; want != got {
		t.Errorf("Invalid text: expected '%s' but got '%s'", want, got)
	}
	if want, got := now, m.ServerTimestamp; !got.Equal(want) {
		t.Errorf("Invalid timestamp: expected '%v' but got '%v'", want, got)
	}

	// Media-only messages are valid.
	m, err = NewMessage("conn-1", "", "http://host/media/a.png", "image", now)
	if err != nil {
		t.Fatalf("Couldn't build a media-only message: %+v", err)
	}
	if want, got := MediaImage, m.MediaType; want != got {
		t.Errorf("Invalid media type: expected '%s' but got '%s'", want, got)
	}

	// Neither text nor media is a rejection.
	_, err = NewMessage("conn-1", "", "", "", now)
	if !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Empty message was not rejected: got '%+v'", err)
	}

	// Media with a bogus type is a rejection.
	_, err = NewMessage("conn-1", "", "http://host/media/a.bin", "archive", now)
	if !errors.Is(err, ErrBadMediaType) {
		t.Errorf("Bad media type was not rejected: got '%+v'", err)
	}
}

// TestAnonLabel checks that the anonymized identity can never collide
// with the reserved self/system markers.
func TestAnonLabel(t *testing.T) {
	if want, got := "anon-6f1d9c2e", AnonLabel("6f1d9c2e-0000-4000-8000-000000000000"); want != got {
		t.Errorf("Invalid anon label: expected '%s' but got '%s'", want, got)
	}
	if want, got := "anon-ab", AnonLabel("ab"); want != got {
		t.Errorf("Invalid anon label for a short id: expected '%s' but got '%s'", want, got)
	}

	if got := AnonLabel(SelfLabel); got == SelfLabel {
		t.Errorf("Anon label collided with the self marker: '%s'", got)
	}
	if got := AnonLabel(SystemLabel); got == SystemLabel {
		t.Errorf("Anon label collided with the system marker: '%s'", got)
	}
}
