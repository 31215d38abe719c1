package score

import "time"

// Event is one append-only scoring action. Events are never updated in
// place; a correction is a new event for the same hole, and the latest
// event per (participant, hole) wins.
type Event struct {
	ID            string
	RoundID       string
	ParticipantID string
	HoleNumber    int
	Strokes       int
	RecordedBy    string
	RecordedAt    time.Time
}

// HoleScore is the per-hole read model derived from the event stream.
type HoleScore struct {
	RoundID       string
	ParticipantID string
	HoleNumber    int
	Strokes       int
	UpdatedAt     time.Time
}

// Card aggregates a participant's finished scorecard.
type Card struct {
	ParticipantID string
	TotalStrokes  int
	HolesPlayed   int
	Scores        []HoleScore
}
