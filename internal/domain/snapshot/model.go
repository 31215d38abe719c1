// Package snapshot holds the frozen copies of catalog data that a round
// plays against. Snapshots are immutable once written; later edits to the
// live course catalog never leak into an already started round.
package snapshot

import "time"

type CourseSnapshot struct {
	ID        string
	RoundID   string
	CourseID  string
	Name      string
	City      string
	Country   string
	HoleCount int
	CreatedAt time.Time
}

type TeeSnapshot struct {
	ID               string
	CourseSnapshotID string
	TeeBoxID         string
	Name             string
	Par              int
	Yards            int
	Rating           float64
	Slope            int
	CreatedAt        time.Time
}

type HoleSnapshot struct {
	ID            string
	TeeSnapshotID string
	HoleID        string
	Number        int
	Par           int
	Yards         int
	StrokeIndex   int
	CreatedAt     time.Time
}
