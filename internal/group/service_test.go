package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

var errQuery = errors.New("query error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestCreateAndUpdateGroup(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectExec(`INSERT INTO groups`).
		WithArgs(pgxmock.AnyArg(), "Hikers", "mountain lovers").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	g, err := svc.CreateGroup(context.Background(), Group{Name: "Hikers", Description: "mountain lovers"})
	if err != nil || g.ID == "" {
		t.Fatalf("create group: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, description FROM groups`).
		WithArgs(g.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description"}).
			AddRow(g.ID, "Hikers", "mountain lovers"))
	mock.ExpectExec(`UPDATE groups`).
		WithArgs(g.ID, "Trail Hikers", "mountain lovers").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := svc.UpdateGroup(context.Background(), g.ID, Group{Name: "Trail Hikers"})
	if err != nil || updated.Name != "Trail Hikers" {
		t.Fatalf("update group: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetGroupWithRoutes(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`SELECT id, name, description FROM groups`).
		WithArgs("group-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description"}).
			AddRow("group-1", "Hikers", "desc"))
	mock.ExpectQuery(`SELECT title, description`).
		WithArgs("group-1").
		WillReturnRows(pgxmock.NewRows([]string{"title", "description"}).
			AddRow("Ridge Loop", "steep"))

	lg, err := svc.GetGroup(context.Background(), "group-1")
	if err != nil || len(lg.Routes) != 1 {
		t.Fatalf("get group: %v", err)
	}
}

func TestListGroups(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`SELECT id, name, description FROM groups`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description"}).
			AddRow("group-1", "Hikers", "desc"))

	groups, err := svc.ListGroups(context.Background())
	if err != nil || len(groups) != 1 {
		t.Fatalf("list groups: %v", err)
	}
}

func TestDeleteGroup(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectExec(`DELETE FROM groups`).
		WithArgs("group-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := svc.DeleteGroup(context.Background(), "group-1"); err != nil {
		t.Fatalf("delete group: %v", err)
	}
}

func TestAddMembership(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	nickname := "trailblazer"
	mock.ExpectQuery(`INSERT INTO group_members`).
		WithArgs("member-1", "group-1", true, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"joined_at"}).AddRow(time.Now()))

	m, err := svc.AddMembership(context.Background(), "group-1", "member-1", true, &nickname)
	if err != nil || !m.IsAdmin {
		t.Fatalf("add membership: %v", err)
	}
}

func TestAddMembershipDuplicateRejected(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`INSERT INTO group_members`).
		WithArgs("member-1", "group-1", false, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.AddMembership(context.Background(), "group-1", "member-1", false, nil)
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestMemberships(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`SELECT gm.member_id, gm.group_id, gm.is_admin, gm.nickname, gm.joined_at`).
		WithArgs("group-1").
		WillReturnRows(pgxmock.NewRows([]string{"member_id", "group_id", "is_admin", "nickname", "joined_at", "username", "profile_photo"}).
			AddRow("member-1", "group-1", true, nil, time.Now(), "ana", "photo.jpeg"))

	members, err := svc.Memberships(context.Background(), "group-1")
	if err != nil || len(members) != 1 || members[0].Username != "ana" {
		t.Fatalf("memberships: %v", err)
	}
}

func TestRemoveMembership(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectExec(`DELETE FROM group_members`).
		WithArgs("group-1", "member-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := svc.RemoveMembership(context.Background(), "group-1", "member-1"); err != nil {
		t.Fatalf("remove membership: %v", err)
	}
}

func TestMembershipsQueryError(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`SELECT gm.member_id`).
		WithArgs("group-err").
		WillReturnError(errQuery)

	if _, err := svc.Memberships(context.Background(), "group-err"); err == nil {
		t.Fatalf("expected error")
	}
}
