package rating

import (
	"context"
	"errors"

	"backend-sparrow/internal/db"
	"backend-sparrow/internal/member"

	"github.com/google/uuid"
)

var ErrTarget = errors.New("exactly one of route_id and attraction_id must be set")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreateRating targets exactly one of route/attraction. The acting member
// is resolved from the caller's account id, never from the body.
func (s *Service) CreateRating(ctx context.Context, accountID string, req WriteRating) (Rating, error) {
	if (req.RouteID == nil) == (req.AttractionID == nil) {
		return Rating{}, ErrTarget
	}

	memberID, err := member.Resolve(ctx, s.db, accountID)
	if err != nil {
		return Rating{}, err
	}

	r := Rating{
		ID:           uuid.NewString(),
		MemberID:     memberID,
		RouteID:      req.RouteID,
		AttractionID: req.AttractionID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO ratings (id, member_id, route_id, attraction_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, r.ID, r.MemberID, r.RouteID, r.AttractionID, r.Rating, r.Comment)
	if err := row.Scan(&r.CreatedAt); err != nil {
		return Rating{}, err
	}
	return r, nil
}

func (s *Service) UpdateRating(ctx context.Context, id string, req WriteRating) (Rating, error) {
	if (req.RouteID == nil) == (req.AttractionID == nil) {
		return Rating{}, ErrTarget
	}

	var r Rating
	err := s.db.QueryRow(ctx, `
		UPDATE ratings
		SET route_id=$2, attraction_id=$3, rating=$4, comment=$5
		WHERE id=$1
		RETURNING id, member_id, route_id, attraction_id, rating, comment, created_at
	`, id, req.RouteID, req.AttractionID, req.Rating, req.Comment).
		Scan(&r.ID, &r.MemberID, &r.RouteID, &r.AttractionID, &r.Rating, &r.Comment, &r.CreatedAt)
	if err != nil {
		return Rating{}, err
	}
	return r, nil
}

func (s *Service) DeleteRating(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM ratings WHERE id=$1`, id)
	return err
}

func (s *Service) RouteRatings(ctx context.Context, routeID string) ([]Rating, error) {
	return s.list(ctx, `
		SELECT id, member_id, route_id, attraction_id, rating, comment, created_at
		FROM ratings WHERE route_id=$1
		ORDER BY created_at DESC
	`, routeID)
}

func (s *Service) AttractionRatings(ctx context.Context, attractionID string) ([]Rating, error) {
	return s.list(ctx, `
		SELECT id, member_id, route_id, attraction_id, rating, comment, created_at
		FROM ratings WHERE attraction_id=$1
		ORDER BY created_at DESC
	`, attractionID)
}

func (s *Service) MemberRatings(ctx context.Context, memberID string) ([]Rating, error) {
	return s.list(ctx, `
		SELECT id, member_id, route_id, attraction_id, rating, comment, created_at
		FROM ratings WHERE member_id=$1
		ORDER BY created_at DESC
	`, memberID)
}

func (s *Service) list(ctx context.Context, query, arg string) ([]Rating, error) {
	rows, err := s.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.ID, &r.MemberID, &r.RouteID, &r.AttractionID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}
