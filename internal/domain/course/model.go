package course

import "time"

// Course, TeeBox and Hole are the live catalog models. Rounds never
// reference them after start; they are copied into round-scoped snapshots.
type Course struct {
	ID        string
	Name      string
	City      string
	Country   string
	HoleCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeeBox struct {
	ID       string
	CourseID string
	Name     string
	Par      int
	Yards    int
	Rating   float64
	Slope    int
}

type Hole struct {
	ID          string
	TeeBoxID    string
	Number      int
	Par         int
	Yards       int
	StrokeIndex int
}
