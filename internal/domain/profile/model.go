package profile

import "time"

// Principal is the identity resolved from a bearer token by the account
// service. ProfileID is the stable identifier used everywhere else.
type Principal struct {
	ProfileID string
	Email     string
}

type Profile struct {
	ID          string
	DisplayName string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Follow records that Follower sees Followee's followers-audience feed items.
type Follow struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}
