package postgres

import (
	"database/sql"
	"time"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// Event timestamps are stored as unix microseconds so ordering and cursor
// comparisons are exact integer math.

func timeToUnixMicro(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func unixMicroToTime(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}

func timePtrToNullUnixMicro(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: timeToUnixMicro(*t), Valid: true}
}

func nullUnixMicroToTimePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := unixMicroToTime(v.Int64)
	return &t
}

func ptrToNullString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
