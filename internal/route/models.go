package route

import "time"

type Route struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Verified         bool      `json:"verified"`
	Public           bool      `json:"public"`
	StartingPointLat float64   `json:"starting_point_lat"`
	StartingPointLon float64   `json:"starting_point_lon"`
	PublicationDate  time.Time `json:"publication_date"`
	MemberID         *string   `json:"member_id"`
	GroupID          *string   `json:"group_id"`
}

// WriteRoute is the write payload. UserID carries an ACCOUNT id; the
// service resolves the member aggregate from it.
type WriteRoute struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Verified         bool    `json:"verified"`
	Public           bool    `json:"public"`
	StartingPointLat float64 `json:"starting_point_lat"`
	StartingPointLon float64 `json:"starting_point_lon"`
	UserID           *string `json:"user_id"`
	GroupID          *string `json:"group_id"`
}

type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type GroupInfo struct {
	Name string `json:"name"`
}

type SmallRoute struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Verified    bool       `json:"verified"`
	Author      *Author    `json:"author"`
	Group       *GroupInfo `json:"group"`
}

type OrderedAttraction struct {
	AttractionID string `json:"attraction_id"`
	Name         string `json:"name"`
	OrderNumber  int    `json:"order_number"`
}

type LargeRoute struct {
	Route
	Author      *Author             `json:"author"`
	Group       *GroupInfo          `json:"group"`
	Attractions []OrderedAttraction `json:"attractions"`
}
