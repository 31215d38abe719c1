package postgres

type scoreEventTableModel struct {
	ID                  int64  `db:"id"`
	PublicID            string `db:"public_id"`
	RoundPublicID       string `db:"round_public_id"`
	ParticipantPublicID string `db:"participant_public_id"`
	HoleNumber          int    `db:"hole_number"`
	Strokes             int    `db:"strokes"`
	RecordedBy          string `db:"recorded_by"`
	RecordedAt          int64  `db:"recorded_at"`
}

type scoreEventInsertModel struct {
	PublicID            string `db:"public_id"`
	RoundPublicID       string `db:"round_public_id"`
	ParticipantPublicID string `db:"participant_public_id"`
	HoleNumber          int    `db:"hole_number"`
	Strokes             int    `db:"strokes"`
	RecordedBy          string `db:"recorded_by"`
	RecordedAt          int64  `db:"recorded_at"`
}

type holeScoreTableModel struct {
	ID                  int64  `db:"id"`
	RoundPublicID       string `db:"round_public_id"`
	ParticipantPublicID string `db:"participant_public_id"`
	HoleNumber          int    `db:"hole_number"`
	Strokes             int    `db:"strokes"`
	UpdatedAt           int64  `db:"updated_at"`
}

type holeScoreInsertModel struct {
	RoundPublicID       string `db:"round_public_id"`
	ParticipantPublicID string `db:"participant_public_id"`
	HoleNumber          int    `db:"hole_number"`
	Strokes             int    `db:"strokes"`
	UpdatedAt           int64  `db:"updated_at"`
}
