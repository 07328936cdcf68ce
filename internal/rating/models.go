package rating

import "time"

type Rating struct {
	ID           string    `json:"id"`
	MemberID     string    `json:"member_id"`
	RouteID      *string   `json:"route_id"`
	AttractionID *string   `json:"attraction_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// WriteRating never carries the acting member; that is derived from the
// authenticated caller.
type WriteRating struct {
	RouteID      *string `json:"route_id"`
	AttractionID *string `json:"attraction_id"`
	Rating       int     `json:"rating"`
	Comment      string  `json:"comment"`
}
