package member

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SmallUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SmallMember is the nestable projection: identifying fields only.
type SmallMember struct {
	User         SmallUser  `json:"user"`
	ProfilePhoto string     `json:"profile_photo"`
	BirthDate    *time.Time `json:"birth_date"`
}

// LargeMember walks the relationship graph one level deep.
type LargeMember struct {
	User         User              `json:"user"`
	ProfilePhoto string            `json:"profile_photo"`
	BirthDate    *time.Time        `json:"birth_date"`
	Groups       []GroupMembership `json:"groups"`
	Routes       []RouteSummary    `json:"routes"`
	Ratings      []RatingSummary   `json:"ratings"`
	Notebooks    []NotebookSummary `json:"notebooks"`
}

type GroupMembership struct {
	GroupName string  `json:"group_name"`
	IsAdmin   bool    `json:"is_admin"`
	Nickname  *string `json:"nickname"`
}

type RouteSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RatingSummary struct {
	Rating         int     `json:"rating"`
	Comment        string  `json:"comment"`
	RouteTitle     *string `json:"route_title"`
	AttractionName *string `json:"attraction_name"`
}

type NotebookSummary struct {
	Title  string `json:"title"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

type RegisterUser struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	PasswordCheck string `json:"password_check"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
}

type RegisterRequest struct {
	User         RegisterUser `json:"user"`
	ProfilePhoto string       `json:"profile_photo"`
	BirthDate    *time.Time   `json:"birth_date"`
}

type UpdateUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type UpdateRequest struct {
	User         *UpdateUser `json:"user"`
	ProfilePhoto string      `json:"profile_photo"`
	BirthDate    *time.Time  `json:"birth_date"`
}

type ChangePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}
