package notebook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func newApp(mock pgxmock.PgxPoolIface) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/notebook"), NewService(mock), authAs("user-1"))
	return app
}

func TestCreateNotebookHandler(t *testing.T) {
	fixedToday(t)
	mock := newMock(t)
	app := newApp(mock)

	expectResolve(mock, "user-1")
	expectStatusLabel(mock, 1, "Planned")
	mock.ExpectExec(`INSERT INTO notebooks`).
		WithArgs(pgxmock.AnyArg(), "route-1", "user-1", 1, "Carpathian trip", "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body, _ := json.Marshal(WriteNotebook{RouteID: "route-1", StatusID: 1, Title: "Carpathian trip"})
	req := httptest.NewRequest(http.MethodPost, "/notebook/list", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create notebook status: %v", err)
	}
}

func TestCreateNotebookHandlerMissingFields(t *testing.T) {
	mock := newMock(t)
	app := newApp(mock)

	req := httptest.NewRequest(http.MethodPost, "/notebook/list", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestUpdateNotebookHandlerMissingStatus(t *testing.T) {
	mock := newMock(t)
	app := newApp(mock)

	req := httptest.NewRequest(http.MethodPut, "/notebook/detail/nb-1", bytes.NewReader([]byte(`{"title":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestStatusesHandler(t *testing.T) {
	mock := newMock(t)
	app := newApp(mock)

	mock.ExpectQuery(`SELECT id, label FROM statuses`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "label"}).
			AddRow(1, "Planned").
			AddRow(3, "Completed"))

	req := httptest.NewRequest(http.MethodGet, "/notebook/statuses", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("statuses status: %v", err)
	}

	var statuses []Status
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("unexpected body: %+v", statuses)
	}
}

func TestAddNotebookImageHandler(t *testing.T) {
	mock := newMock(t)
	app := newApp(mock)

	mock.ExpectExec(`INSERT INTO images`).
		WithArgs(pgxmock.AnyArg(), "summit.jpeg", "nb-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body, _ := json.Marshal(map[string]string{"image_path": "summit.jpeg"})
	req := httptest.NewRequest(http.MethodPost, "/notebook/detail/nb-1/images", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("add image status: %v", err)
	}
}
