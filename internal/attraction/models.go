package attraction

import "time"

type Attraction struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	GeneralDescription string  `json:"general_description"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Image struct {
	ID      string    `json:"id"`
	Path    string    `json:"image_path"`
	TakenAt time.Time `json:"taken_at"`
}

// RatingView is the minimal rating shape nested in the large projection.
type RatingView struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Username string `json:"username"`
}

// LargeAttraction carries images and tags one level deep. The ratings
// collection is attached separately through the injected filter, never
// cached.
type LargeAttraction struct {
	Attraction
	Images  []Image      `json:"images"`
	Tags    []Tag        `json:"tags"`
	Ratings []RatingView `json:"ratings"`
}
