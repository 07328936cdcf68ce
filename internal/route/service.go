package route

import (
	"context"
	"errors"

	"backend-sparrow/internal/db"
	"backend-sparrow/internal/member"

	"github.com/google/uuid"
)

var (
	ErrOwnership         = errors.New("exactly one of user_id and group_id must be set")
	ErrAttractionOnRoute = errors.New("attraction is already on this route")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// resolveOwner enforces the exclusive-or ownership rule and maps the
// supplied account id to its member aggregate.
func (s *Service) resolveOwner(ctx context.Context, userID, groupID *string) (*string, *string, error) {
	if (userID == nil) == (groupID == nil) {
		return nil, nil, ErrOwnership
	}
	if userID == nil {
		return nil, groupID, nil
	}
	memberID, err := member.Resolve(ctx, s.db, *userID)
	if err != nil {
		return nil, nil, err
	}
	return &memberID, nil, nil
}

func (s *Service) CreateRoute(ctx context.Context, req WriteRoute) (Route, error) {
	memberID, groupID, err := s.resolveOwner(ctx, req.UserID, req.GroupID)
	if err != nil {
		return Route{}, err
	}

	r := Route{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Description:      req.Description,
		Verified:         req.Verified,
		Public:           req.Public,
		StartingPointLat: req.StartingPointLat,
		StartingPointLon: req.StartingPointLon,
		MemberID:         memberID,
		GroupID:          groupID,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, title, description, verified, public, starting_point_lat, starting_point_lon, member_id, group_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING publication_date
	`, r.ID, r.Title, r.Description, r.Verified, r.Public, r.StartingPointLat, r.StartingPointLon, r.MemberID, r.GroupID)
	if err := row.Scan(&r.PublicationDate); err != nil {
		return Route{}, err
	}
	return r, nil
}

// UpdateRoute revalidates ownership like create does. publication_date is
// set once at creation and never rewritten here.
func (s *Service) UpdateRoute(ctx context.Context, id string, req WriteRoute) (Route, error) {
	memberID, groupID, err := s.resolveOwner(ctx, req.UserID, req.GroupID)
	if err != nil {
		return Route{}, err
	}

	var r Route
	row := s.db.QueryRow(ctx, `
		SELECT id, title, description, verified, public, starting_point_lat, starting_point_lon, publication_date, member_id, group_id
		FROM routes WHERE id=$1
	`, id)
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Verified, &r.Public,
		&r.StartingPointLat, &r.StartingPointLon, &r.PublicationDate, &r.MemberID, &r.GroupID); err != nil {
		return Route{}, err
	}

	if req.Title != "" {
		r.Title = req.Title
	}
	if req.Description != "" {
		r.Description = req.Description
	}
	r.Verified = req.Verified
	r.Public = req.Public
	if req.StartingPointLat != 0 {
		r.StartingPointLat = req.StartingPointLat
	}
	if req.StartingPointLon != 0 {
		r.StartingPointLon = req.StartingPointLon
	}
	r.MemberID = memberID
	r.GroupID = groupID

	_, err = s.db.Exec(ctx, `
		UPDATE routes
		SET title=$2, description=$3, verified=$4, public=$5,
		    starting_point_lat=$6, starting_point_lon=$7, member_id=$8, group_id=$9
		WHERE id=$1
	`, r.ID, r.Title, r.Description, r.Verified, r.Public, r.StartingPointLat, r.StartingPointLon, r.MemberID, r.GroupID)
	if err != nil {
		return Route{}, err
	}
	return r, nil
}

func (s *Service) ListRoutes(ctx context.Context) ([]SmallRoute, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.title, r.description, r.verified,
		       u.id, u.username, u.first_name, u.last_name, g.name
		FROM routes r
		LEFT JOIN users u ON u.id = r.member_id
		LEFT JOIN groups g ON g.id = r.group_id
		ORDER BY r.publication_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []SmallRoute
	for rows.Next() {
		var sr SmallRoute
		var authorID, username, firstName, lastName, groupName *string
		if err := rows.Scan(&sr.ID, &sr.Title, &sr.Description, &sr.Verified,
			&authorID, &username, &firstName, &lastName, &groupName); err != nil {
			return nil, err
		}
		if authorID != nil {
			sr.Author = &Author{ID: *authorID, Username: *username, FirstName: *firstName, LastName: *lastName}
		}
		if groupName != nil {
			sr.Group = &GroupInfo{Name: *groupName}
		}
		routes = append(routes, sr)
	}
	return routes, nil
}

func (s *Service) GetRoute(ctx context.Context, id string) (LargeRoute, error) {
	row := s.db.QueryRow(ctx, `
		SELECT r.id, r.title, r.description, r.verified, r.public,
		       r.starting_point_lat, r.starting_point_lon, r.publication_date, r.member_id, r.group_id,
		       u.id, u.username, u.first_name, u.last_name, g.name
		FROM routes r
		LEFT JOIN users u ON u.id = r.member_id
		LEFT JOIN groups g ON g.id = r.group_id
		WHERE r.id=$1
	`, id)

	var lr LargeRoute
	var authorID, username, firstName, lastName, groupName *string
	if err := row.Scan(&lr.ID, &lr.Title, &lr.Description, &lr.Verified, &lr.Public,
		&lr.StartingPointLat, &lr.StartingPointLon, &lr.PublicationDate, &lr.MemberID, &lr.GroupID,
		&authorID, &username, &firstName, &lastName, &groupName); err != nil {
		return LargeRoute{}, err
	}
	if authorID != nil {
		lr.Author = &Author{ID: *authorID, Username: *username, FirstName: *firstName, LastName: *lastName}
	}
	if groupName != nil {
		lr.Group = &GroupInfo{Name: *groupName}
	}

	attractions, err := s.routeAttractions(ctx, id)
	if err != nil {
		return LargeRoute{}, err
	}
	lr.Attractions = attractions
	return lr, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	return err
}

// AddAttraction appends one attraction with the next order number.
func (s *Service) AddAttraction(ctx context.Context, routeID, attractionID string) (OrderedAttraction, error) {
	var order int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(order_number),0)+1 FROM route_attractions WHERE route_id=$1
	`, routeID).Scan(&order)
	if err != nil {
		return OrderedAttraction{}, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO route_attractions (route_id, attraction_id, order_number)
		VALUES ($1,$2,$3)
	`, routeID, attractionID, order)
	if err != nil {
		if db.UniqueViolation(err) {
			return OrderedAttraction{}, ErrAttractionOnRoute
		}
		return OrderedAttraction{}, err
	}
	return OrderedAttraction{AttractionID: attractionID, OrderNumber: order}, nil
}

// SetAttractions replaces the whole ordered list in one transaction.
func (s *Service) SetAttractions(ctx context.Context, routeID string, attractionIDs []string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM route_attractions WHERE route_id=$1`, routeID); err != nil {
		return err
	}
	for i, attractionID := range attractionIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO route_attractions (route_id, attraction_id, order_number)
			VALUES ($1,$2,$3)
		`, routeID, attractionID, i+1)
		if err != nil {
			if db.UniqueViolation(err) {
				return ErrAttractionOnRoute
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Service) routeAttractions(ctx context.Context, routeID string) ([]OrderedAttraction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ra.attraction_id, a.name, ra.order_number
		FROM route_attractions ra
		JOIN attractions a ON a.id = ra.attraction_id
		WHERE ra.route_id=$1
		ORDER BY ra.order_number
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attractions []OrderedAttraction
	for rows.Next() {
		var oa OrderedAttraction
		if err := rows.Scan(&oa.AttractionID, &oa.Name, &oa.OrderNumber); err != nil {
			return nil, err
		}
		attractions = append(attractions, oa)
	}
	return attractions, nil
}
