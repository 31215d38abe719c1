package feed

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		OccurredAt: time.Date(2026, 4, 18, 14, 30, 12, 345678000, time.UTC),
		ID:         9182,
	}

	decoded, err := DecodeCursor(EncodeCursor(original))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.ID != original.ID {
		t.Fatalf("id changed: %d vs %d", decoded.ID, original.ID)
	}
	if decoded.OccurredAt.UnixMicro() != original.OccurredAt.UnixMicro() {
		t.Fatalf("timestamp changed: %v vs %v", decoded.OccurredAt, original.OccurredAt)
	}
}

func TestCursorTruncatesToMicroseconds(t *testing.T) {
	withNanos := Cursor{
		OccurredAt: time.Date(2026, 4, 18, 14, 30, 12, 345678912, time.UTC),
		ID:         1,
	}

	decoded, err := DecodeCursor(EncodeCursor(withNanos))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := decoded.OccurredAt.Nanosecond() % 1000; got != 0 {
		t.Fatalf("expected microsecond precision, got %d trailing nanos", got)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"not base64":       "!!!",
		"empty":            "",
		"random text":      base64.RawURLEncoding.EncodeToString([]byte("hello world")),
		"wrong version":    base64.RawURLEncoding.EncodeToString([]byte("v2:123:456")),
		"missing field":    base64.RawURLEncoding.EncodeToString([]byte("v1:123")),
		"extra field":      base64.RawURLEncoding.EncodeToString([]byte("v1:123:456:789")),
		"non-numeric time": base64.RawURLEncoding.EncodeToString([]byte("v1:abc:456")),
		"non-numeric id":   base64.RawURLEncoding.EncodeToString([]byte("v1:123:xyz")),
		"negative id":      base64.RawURLEncoding.EncodeToString([]byte("v1:123:-7")),
	}
	for name, token := range cases {
		if _, err := DecodeCursor(token); !errors.Is(err, ErrInvalidCursor) {
			t.Fatalf("%s: expected ErrInvalidCursor, got %v", name, err)
		}
	}
}
