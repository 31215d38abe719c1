package round

import "time"

// Status is the round lifecycle state. The only legal transitions are
// draft|scheduled -> starting -> live -> finished, plus delete from draft.
// Backward transitions are never allowed.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusStarting  Status = "starting"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusStarting, StatusLive, StatusFinished:
		return true
	}
	return false
}

// Editable reports whether course/tee selection may still change.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusScheduled
}

type ParticipantRole string

const (
	RoleOwner  ParticipantRole = "owner"
	RoleScorer ParticipantRole = "scorer"
	RolePlayer ParticipantRole = "player"
)

func (r ParticipantRole) Valid() bool {
	switch r {
	case RoleOwner, RoleScorer, RolePlayer:
		return true
	}
	return false
}

type Round struct {
	ID             string
	OwnerProfileID string
	Status         Status
	// CourseID and PendingTeeBoxID reference the live catalog and are
	// mutable only while Status.Editable(). Once started, the frozen
	// snapshot set is authoritative.
	CourseID        string
	PendingTeeBoxID string
	ScheduledFor    *time.Time
	StartedAt       *time.Time
	FinishedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Participant belongs to exactly one round. ProfileID is nil for guests;
// guests never appear in the social feed. TeeSnapshotID is assigned when
// the round starts.
type Participant struct {
	ID            string
	RoundID       string
	ProfileID     *string
	DisplayName   string
	Role          ParticipantRole
	TeeSnapshotID *string
	CreatedAt     time.Time
}

func (p Participant) IsGuest() bool {
	return p.ProfileID == nil || *p.ProfileID == ""
}
