package group

import (
	"context"
	"errors"

	"backend-sparrow/internal/db"

	"github.com/google/uuid"
)

var ErrAlreadyMember = errors.New("member already belongs to this group")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateGroup(ctx context.Context, input Group) (Group, error) {
	input.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO groups (id, name, description)
		VALUES ($1,$2,$3)
	`, input.ID, input.Name, input.Description)
	if err != nil {
		return Group{}, err
	}
	return input, nil
}

func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description FROM groups ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (LargeGroup, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description FROM groups WHERE id=$1
	`, id)

	var lg LargeGroup
	if err := row.Scan(&lg.ID, &lg.Name, &lg.Description); err != nil {
		return LargeGroup{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT title, description
		FROM routes WHERE group_id=$1
		ORDER BY publication_date
	`, id)
	if err != nil {
		return LargeGroup{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var r RouteSummary
		if err := rows.Scan(&r.Title, &r.Description); err != nil {
			return LargeGroup{}, err
		}
		lg.Routes = append(lg.Routes, r)
	}
	return lg, nil
}

func (s *Service) UpdateGroup(ctx context.Context, id string, patch Group) (Group, error) {
	var g Group
	err := s.db.QueryRow(ctx, `
		SELECT id, name, description FROM groups WHERE id=$1
	`, id).Scan(&g.ID, &g.Name, &g.Description)
	if err != nil {
		return Group{}, err
	}

	if patch.Name != "" {
		g.Name = patch.Name
	}
	if patch.Description != "" {
		g.Description = patch.Description
	}

	_, err = s.db.Exec(ctx, `
		UPDATE groups SET name=$2, description=$3 WHERE id=$1
	`, g.ID, g.Name, g.Description)
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM groups WHERE id=$1`, id)
	return err
}

// AddMembership inserts one membership row. A second row for the same
// (member, group) pair is rejected, not upserted.
func (s *Service) AddMembership(ctx context.Context, groupID, memberID string, isAdmin bool, nickname *string) (Membership, error) {
	m := Membership{
		MemberID: memberID,
		GroupID:  groupID,
		IsAdmin:  isAdmin,
		Nickname: nickname,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO group_members (member_id, group_id, is_admin, nickname)
		VALUES ($1,$2,$3,$4)
		RETURNING joined_at
	`, memberID, groupID, isAdmin, nickname)
	if err := row.Scan(&m.JoinedAt); err != nil {
		if db.UniqueViolation(err) {
			return Membership{}, ErrAlreadyMember
		}
		return Membership{}, err
	}
	return m, nil
}

func (s *Service) Memberships(ctx context.Context, groupID string) ([]MembershipDetail, error) {
	rows, err := s.db.Query(ctx, `
		SELECT gm.member_id, gm.group_id, gm.is_admin, gm.nickname, gm.joined_at,
		       u.username, m.profile_photo
		FROM group_members gm
		JOIN members m ON m.user_id = gm.member_id
		JOIN users u ON u.id = gm.member_id
		WHERE gm.group_id=$1
		ORDER BY gm.joined_at
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []MembershipDetail
	for rows.Next() {
		var m MembershipDetail
		if err := rows.Scan(&m.MemberID, &m.GroupID, &m.IsAdmin, &m.Nickname, &m.JoinedAt, &m.Username, &m.ProfilePhoto); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (s *Service) RemoveMembership(ctx context.Context, groupID, memberID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM group_members WHERE group_id=$1 AND member_id=$2
	`, groupID, memberID)
	return err
}
