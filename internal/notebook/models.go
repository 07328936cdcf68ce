package notebook

import "time"

type Status struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

type Notebook struct {
	ID            string     `json:"id"`
	RouteID       string     `json:"route_id"`
	MemberID      string     `json:"member_id"`
	StatusID      int        `json:"status_id"`
	Status        string     `json:"status"`
	Title         string     `json:"title"`
	Note          string     `json:"note"`
	DateStarted   time.Time  `json:"date_started"`
	DateCompleted *time.Time `json:"date_completed"`
}

// WriteNotebook never carries the acting member; that is derived from the
// authenticated caller.
type WriteNotebook struct {
	RouteID  string `json:"route_id"`
	StatusID int    `json:"status_id"`
	Title    string `json:"title"`
	Note     string `json:"note"`
}

type SmallNotebook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

// LargeNotebook nests the minimal route and member shapes.
type LargeNotebook struct {
	Notebook
	RouteTitle       string `json:"route_title"`
	RouteDescription string `json:"route_description"`
	MemberUsername   string `json:"member_username"`
}

type Image struct {
	ID      string    `json:"id"`
	Path    string    `json:"image_path"`
	TakenAt time.Time `json:"taken_at"`
}
