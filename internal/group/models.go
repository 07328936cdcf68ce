package group

import "time"

type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Membership struct {
	MemberID string    `json:"member_id"`
	GroupID  string    `json:"group_id"`
	IsAdmin  bool      `json:"is_admin"`
	Nickname *string   `json:"nickname"`
	JoinedAt time.Time `json:"joined_at"`
}

// MembershipDetail nests the minimal member shape for group listings.
type MembershipDetail struct {
	Membership
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
}

// LargeGroup includes the group's routes, one level deep.
type LargeGroup struct {
	Group
	Routes []RouteSummary `json:"routes"`
}

type RouteSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
