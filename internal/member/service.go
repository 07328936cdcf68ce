package member

import (
	"context"
	"errors"

	"backend-sparrow/internal/auth"
	"backend-sparrow/internal/db"

	"github.com/google/uuid"
)

// ErrNoMemberProfile is returned when an account id resolves to no member
// aggregate. Callers surface it instead of proceeding with a null reference.
var ErrNoMemberProfile = errors.New("no member profile for account")

type Service struct {
	db           db.Querier
	defaultPhoto string
}

func NewService(db db.Querier, defaultPhoto string) *Service {
	return &Service{db: db, defaultPhoto: defaultPhoto}
}

// Resolve maps an account id to its member aggregate id, failing loudly
// when the account has no member row.
func Resolve(ctx context.Context, q db.Querier, accountID string) (string, error) {
	var memberID string
	err := q.QueryRow(ctx, `
		SELECT user_id FROM members WHERE user_id=$1
	`, accountID).Scan(&memberID)
	if err != nil {
		return "", ErrNoMemberProfile
	}
	return memberID, nil
}

// Register creates the user row and its member row inside one transaction,
// so a failure on either side leaves no orphan.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (SmallMember, error) {
	if req.User.Email == "" {
		return SmallMember{}, errors.New("email is required")
	}
	if req.User.Username == "" {
		return SmallMember{}, errors.New("username is required")
	}
	if req.User.Password != req.User.PasswordCheck {
		return SmallMember{}, errors.New("passwords must match")
	}
	if err := auth.ValidatePassword(req.User.Password); err != nil {
		return SmallMember{}, err
	}

	hash, err := auth.HashPassword(req.User.Password)
	if err != nil {
		return SmallMember{}, err
	}

	photo := req.ProfilePhoto
	if photo == "" {
		photo = s.defaultPhoto
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return SmallMember{}, err
	}
	defer tx.Rollback(ctx)

	userID := uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, first_name, last_name, email)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, userID, req.User.Username, hash, req.User.FirstName, req.User.LastName, req.User.Email)
	if err != nil {
		return SmallMember{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO members (user_id, profile_photo, birth_date)
		VALUES ($1,$2,$3)
	`, userID, photo, req.BirthDate)
	if err != nil {
		return SmallMember{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return SmallMember{}, err
	}

	return SmallMember{
		User: SmallUser{
			ID:        userID,
			Username:  req.User.Username,
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
		},
		ProfilePhoto: photo,
		BirthDate:    req.BirthDate,
	}, nil
}

func (s *Service) List(ctx context.Context) ([]SmallMember, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name, m.profile_photo, m.birth_date
		FROM members m
		JOIN users u ON u.id = m.user_id
		ORDER BY u.username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []SmallMember
	for rows.Next() {
		var m SmallMember
		if err := rows.Scan(&m.User.ID, &m.User.Username, &m.User.FirstName, &m.User.LastName, &m.ProfilePhoto, &m.BirthDate); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// Get assembles the large projection: full user fields plus one level of
// nested minimal shapes for groups, routes, ratings and notebooks.
func (s *Service) Get(ctx context.Context, id string) (LargeMember, error) {
	row := s.db.QueryRow(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name, u.email, u.created_at,
		       m.profile_photo, m.birth_date
		FROM members m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id=$1
	`, id)

	var lm LargeMember
	if err := row.Scan(&lm.User.ID, &lm.User.Username, &lm.User.FirstName, &lm.User.LastName,
		&lm.User.Email, &lm.User.CreatedAt, &lm.ProfilePhoto, &lm.BirthDate); err != nil {
		return LargeMember{}, err
	}

	var err error
	if lm.Groups, err = s.memberGroups(ctx, id); err != nil {
		return LargeMember{}, err
	}
	if lm.Routes, err = s.memberRoutes(ctx, id); err != nil {
		return LargeMember{}, err
	}
	if lm.Ratings, err = s.memberRatings(ctx, id); err != nil {
		return LargeMember{}, err
	}
	if lm.Notebooks, err = s.memberNotebooks(ctx, id); err != nil {
		return LargeMember{}, err
	}
	return lm, nil
}

// Update writes the nested user sub-fields and the member fields as two
// scoped operations under one transaction boundary.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (LargeMember, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return LargeMember{}, err
	}
	defer tx.Rollback(ctx)

	if req.User != nil {
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET username   = COALESCE(NULLIF($2,''), username),
			    first_name = COALESCE(NULLIF($3,''), first_name),
			    last_name  = COALESCE(NULLIF($4,''), last_name),
			    email      = COALESCE(NULLIF($5,''), email)
			WHERE id=$1
		`, id, req.User.Username, req.User.FirstName, req.User.LastName, req.User.Email)
		if err != nil {
			return LargeMember{}, err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE members
		SET profile_photo = COALESCE(NULLIF($2,''), profile_photo),
		    birth_date    = COALESCE($3, birth_date)
		WHERE user_id=$1
	`, id, req.ProfilePhoto, req.BirthDate)
	if err != nil {
		return LargeMember{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return LargeMember{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	// users row cascades to the member row and every owned aggregate
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

// ChangePassword verifies the current password before validating and
// storing the new one. Any failure leaves the stored hash untouched.
func (s *Service) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	var hash string
	if err := s.db.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE id=$1
	`, id).Scan(&hash); err != nil {
		return err
	}

	if !auth.CheckPassword(hash, req.Password) {
		return errors.New("incorrect password")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, id, newHash)
	return err
}

func (s *Service) memberGroups(ctx context.Context, id string) ([]GroupMembership, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.name, gm.is_admin, gm.nickname
		FROM group_members gm
		JOIN groups g ON g.id = gm.group_id
		WHERE gm.member_id=$1
		ORDER BY g.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []GroupMembership
	for rows.Next() {
		var g GroupMembership
		if err := rows.Scan(&g.GroupName, &g.IsAdmin, &g.Nickname); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *Service) memberRoutes(ctx context.Context, id string) ([]RouteSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT title, description
		FROM routes WHERE member_id=$1
		ORDER BY publication_date
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []RouteSummary
	for rows.Next() {
		var r RouteSummary
		if err := rows.Scan(&r.Title, &r.Description); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) memberRatings(ctx context.Context, id string) ([]RatingSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.rating, r.comment, rt.title, a.name
		FROM ratings r
		LEFT JOIN routes rt ON rt.id = r.route_id
		LEFT JOIN attractions a ON a.id = r.attraction_id
		WHERE r.member_id=$1
		ORDER BY r.created_at DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []RatingSummary
	for rows.Next() {
		var r RatingSummary
		if err := rows.Scan(&r.Rating, &r.Comment, &r.RouteTitle, &r.AttractionName); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

func (s *Service) memberNotebooks(ctx context.Context, id string) ([]NotebookSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT n.title, n.note, st.label
		FROM notebooks n
		JOIN statuses st ON st.id = n.status_id
		WHERE n.member_id=$1
		ORDER BY n.date_started DESC, n.date_completed DESC, n.title
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notebooks []NotebookSummary
	for rows.Next() {
		var n NotebookSummary
		if err := rows.Scan(&n.Title, &n.Note, &n.Status); err != nil {
			return nil, err
		}
		notebooks = append(notebooks, n)
	}
	return notebooks, nil
}
