package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

var errQuery = errors.New("query error")

func TestLoginMissingFields(t *testing.T) {
	svc := NewService("secret", nil)
	if _, _, err := svc.Login(context.Background(), LoginRequest{Username: "ana"}); err == nil {
		t.Fatalf("expected error for missing password")
	}
	if _, _, err := svc.Login(context.Background(), LoginRequest{Password: "pw"}); err == nil {
		t.Fatalf("expected error for missing username")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, password_hash`).
		WithArgs("ghost").
		WillReturnError(errQuery)

	svc := NewService("secret", mock)
	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected generic credentials error, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpass1"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, password_hash`).
		WithArgs("ana").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", string(hash)))

	svc := NewService("secret", mock)
	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "wrongpass1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected generic credentials error, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpass1"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, password_hash`).
		WithArgs("ana").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", string(hash)))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("secret", mock)
	userID, tokens, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "rightpass1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if userID != "user-1" || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("unexpected login result")
	}

	parsed, err := svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil || parsed != "user-1" {
		t.Fatalf("access token round trip failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService("secret", mock)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tokens, err := svc.GenerateTokens(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).
			AddRow("user-1", time.Now().Add(time.Hour)))

	userID, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken)
	if err != nil || userID != "user-1" {
		t.Fatalf("refresh validation failed: %v", err)
	}
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService("secret", mock)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tokens, err := svc.GenerateTokens(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).
			AddRow("user-1", time.Now().Add(-time.Hour)))

	if _, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	svc := NewService("secret", nil)
	if _, err := svc.ValidateAccessToken("not-a-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Fatalf("expected length error")
	}
	if err := ValidatePassword("12345678"); err == nil {
		t.Fatalf("expected numeric error")
	}
	if err := ValidatePassword("longenough1"); err != nil {
		t.Fatalf("expected valid password: %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("longenough1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "longenough1") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "different1") {
		t.Fatalf("expected mismatch")
	}
}
