package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestUnixMicroRoundTrip(t *testing.T) {
	in := time.Date(2026, 7, 4, 15, 30, 45, 123456789, time.UTC)
	got := unixMicroToTime(timeToUnixMicro(in))

	want := in.Truncate(time.Microsecond)
	if !got.Equal(want) {
		t.Fatalf("round trip mismatch: got %s, want %s", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %s", got.Location())
	}
}

func TestUnixMicroNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*60*60)
	in := time.Date(2026, 7, 4, 22, 30, 45, 0, zone)

	if got := timeToUnixMicro(in); got != in.UTC().UnixMicro() {
		t.Fatalf("zoned time not normalized: %d", got)
	}
}

func TestTimePtrToNullUnixMicro(t *testing.T) {
	if v := timePtrToNullUnixMicro(nil); v.Valid {
		t.Fatalf("nil time must map to null")
	}

	in := time.Date(2026, 7, 4, 15, 30, 45, 0, time.UTC)
	v := timePtrToNullUnixMicro(&in)
	if !v.Valid || v.Int64 != in.UnixMicro() {
		t.Fatalf("unexpected null int: %+v", v)
	}

	out := nullUnixMicroToTimePtr(v)
	if out == nil || !out.Equal(in) {
		t.Fatalf("unexpected time ptr: %v", out)
	}
	if back := nullUnixMicroToTimePtr(sql.NullInt64{}); back != nil {
		t.Fatalf("null must map back to nil, got %v", back)
	}
}

func TestPtrToNullString(t *testing.T) {
	if v := ptrToNullString(nil); v.Valid {
		t.Fatalf("nil string must map to null")
	}

	empty := ""
	if v := ptrToNullString(&empty); v.Valid {
		t.Fatalf("empty string must map to null")
	}

	name := "Ada Byrne"
	v := ptrToNullString(&name)
	if !v.Valid || v.String != name {
		t.Fatalf("unexpected null string: %+v", v)
	}

	out := nullStringToPtr(v)
	if out == nil || *out != name {
		t.Fatalf("unexpected string ptr: %v", out)
	}
	if back := nullStringToPtr(sql.NullString{}); back != nil {
		t.Fatalf("null must map back to nil, got %v", back)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("connection reset")) {
		t.Fatalf("expected false for unrelated error")
	}
}
