package feed

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidCursor is returned for any cursor that did not come from
// EncodeCursor: wrong encoding, wrong version, malformed fields.
var ErrInvalidCursor = errors.New("feed: invalid cursor")

const cursorVersion = "v1"

// Cursor marks an exclusive resume position in (OccurredAt, ID)
// descending order: the next page starts strictly after this pair.
type Cursor struct {
	OccurredAt time.Time
	ID         int64
}

// EncodeCursor renders an opaque page token. Timestamps are truncated to
// microseconds to match what the store persists, so a decoded cursor
// compares equal to the row it was built from.
func EncodeCursor(c Cursor) string {
	raw := fmt.Sprintf("%s:%d:%d", cursorVersion, c.OccurredAt.UnixMicro(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by EncodeCursor. Anything else
// fails with ErrInvalidCursor.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 || parts[0] != cursorVersion {
		return Cursor{}, ErrInvalidCursor
	}
	usec, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id < 0 {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{OccurredAt: time.UnixMicro(usec).UTC(), ID: id}, nil
}
