package feed

import "time"

type ItemType string

const (
	TypeUserPost    ItemType = "user_post"
	TypeRoundPlayed ItemType = "round_played"
	TypeHoleEvent   ItemType = "hole_event"
	TypeAchievement ItemType = "achievement"
)

func (t ItemType) Valid() bool {
	switch t {
	case TypeUserPost, TypeRoundPlayed, TypeHoleEvent, TypeAchievement:
		return true
	}
	return false
}

type Audience string

const (
	AudienceFollowers Audience = "followers"
	AudiencePrivate   Audience = "private"
)

type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
	VisibilityRemoved Visibility = "removed"
)

// Item is one feed entry. ID is a monotonically increasing database
// sequence so (OccurredAt, ID) gives a total order. GroupKey dedupes
// generator output: at most one visible item may exist per key.
type Item struct {
	ID             int64
	Type           ItemType
	ActorProfileID string
	RoundID        *string
	GroupKey       *string
	Audience       Audience
	Visibility     Visibility
	Payload        []byte
	OccurredAt     time.Time
	CreatedAt      time.Time
}

// SubjectRole tags how a profile relates to the item it is a subject of.
type SubjectRole string

const SubjectRolePlayer SubjectRole = "player"

// Subject links an item to a profile it is about, beyond the actor. The
// same profile may appear under several roles; (item, profile, role) is
// unique.
type Subject struct {
	ItemID    int64
	ProfileID string
	Role      SubjectRole
}

// SubjectProfileIDs extracts the deduplicated profile ids of a subject set,
// preserving first-seen order.
func SubjectProfileIDs(subjects []Subject) []string {
	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		if _, ok := seen[s.ProfileID]; ok {
			continue
		}
		seen[s.ProfileID] = struct{}{}
		out = append(out, s.ProfileID)
	}
	return out
}

// Delivery is one (item, viewer) row in the fan-out index. Unique per
// pair so replayed fan-out is idempotent.
type Delivery struct {
	ItemID    int64
	ViewerID  string
	CreatedAt time.Time
}

// Page is one slice of a viewer's feed in (OccurredAt, ID) descending
// order. NextCursor is empty on the last page.
type Page struct {
	Items      []Item
	NextCursor string
}
