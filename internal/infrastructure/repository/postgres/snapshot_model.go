package postgres

import "time"

type courseSnapshotTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	RoundPublicID  string    `db:"round_public_id"`
	CoursePublicID string    `db:"course_public_id"`
	Name           string    `db:"name"`
	City           string    `db:"city"`
	Country        string    `db:"country"`
	HoleCount      int       `db:"hole_count"`
	CreatedAt      time.Time `db:"created_at"`
}

type courseSnapshotInsertModel struct {
	PublicID       string    `db:"public_id"`
	RoundPublicID  string    `db:"round_public_id"`
	CoursePublicID string    `db:"course_public_id"`
	Name           string    `db:"name"`
	City           string    `db:"city"`
	Country        string    `db:"country"`
	HoleCount      int       `db:"hole_count"`
	CreatedAt      time.Time `db:"created_at"`
}

type teeSnapshotTableModel struct {
	ID                     int64     `db:"id"`
	PublicID               string    `db:"public_id"`
	CourseSnapshotPublicID string    `db:"course_snapshot_public_id"`
	TeeBoxPublicID         string    `db:"tee_box_public_id"`
	Name                   string    `db:"name"`
	Par                    int       `db:"par"`
	Yards                  int       `db:"yards"`
	Rating                 float64   `db:"rating"`
	Slope                  int       `db:"slope"`
	CreatedAt              time.Time `db:"created_at"`
}

type teeSnapshotInsertModel struct {
	PublicID               string    `db:"public_id"`
	CourseSnapshotPublicID string    `db:"course_snapshot_public_id"`
	TeeBoxPublicID         string    `db:"tee_box_public_id"`
	Name                   string    `db:"name"`
	Par                    int       `db:"par"`
	Yards                  int       `db:"yards"`
	Rating                 float64   `db:"rating"`
	Slope                  int       `db:"slope"`
	CreatedAt              time.Time `db:"created_at"`
}

type holeSnapshotTableModel struct {
	ID                  int64     `db:"id"`
	PublicID            string    `db:"public_id"`
	TeeSnapshotPublicID string    `db:"tee_snapshot_public_id"`
	HolePublicID        string    `db:"hole_public_id"`
	Number              int       `db:"number"`
	Par                 int       `db:"par"`
	Yards               int       `db:"yards"`
	StrokeIndex         int       `db:"stroke_index"`
	CreatedAt           time.Time `db:"created_at"`
}

type holeSnapshotInsertModel struct {
	PublicID            string    `db:"public_id"`
	TeeSnapshotPublicID string    `db:"tee_snapshot_public_id"`
	HolePublicID        string    `db:"hole_public_id"`
	Number              int       `db:"number"`
	Par                 int       `db:"par"`
	Yards               int       `db:"yards"`
	StrokeIndex         int       `db:"stroke_index"`
	CreatedAt           time.Time `db:"created_at"`
}
