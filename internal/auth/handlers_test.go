package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginHandlerMissingFields(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret", nil))

	body, _ := json.Marshal(LoginRequest{Username: "ana"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestLoginHandlerGenericFailure(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, password_hash`).
		WithArgs("ghost").
		WillReturnError(errQuery)

	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret", mock))

	body, _ := json.Marshal(LoginRequest{Username: "ghost", Password: "whatever1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginHandlerSuccess(t *testing.T) {
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

	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret", mock))

	body, _ := json.Marshal(LoginRequest{Username: "ana", Password: "rightpass1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRefreshHandlerMissingToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret", nil))

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}
