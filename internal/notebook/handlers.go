package notebook

import (
	"errors"
	"time"

	"backend-sparrow/internal/auth"
	"backend-sparrow/internal/member"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/list", authMiddleware, func(c *fiber.Ctx) error {
		var req WriteNotebook
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.RouteID == "" || req.StatusID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "route_id and status_id required")
		}
		n, err := svc.CreateNotebook(c.Context(), auth.CallerID(c), req)
		if err != nil {
			return writeError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	})

	r.Get("/list", func(c *fiber.Ctx) error {
		notebooks, err := svc.ListNotebooks(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(notebooks)
	})

	r.Get("/detail/:id", func(c *fiber.Ctx) error {
		n, err := svc.GetNotebook(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "notebook not found")
		}
		return c.JSON(n)
	})

	r.Put("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req WriteNotebook
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.StatusID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "status_id required")
		}
		n, err := svc.UpdateNotebook(c.Context(), c.Params("id"), auth.CallerID(c), req)
		if err != nil {
			return writeError(err)
		}
		return c.JSON(n)
	})

	r.Delete("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteNotebook(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/detail/:id/images", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Path    string    `json:"image_path"`
			TakenAt time.Time `json:"taken_at"`
		}
		if err := c.BodyParser(&body); err != nil || body.Path == "" {
			return fiber.NewError(fiber.StatusBadRequest, "image_path required")
		}
		if body.TakenAt.IsZero() {
			body.TakenAt = time.Now()
		}
		img, err := svc.AddImage(c.Context(), c.Params("id"), body.Path, body.TakenAt)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(img)
	})

	r.Get("/statuses", func(c *fiber.Ctx) error {
		statuses, err := svc.Statuses(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(statuses)
	})
}

// RegisterStatusRoutes exposes the status vocabulary under its own prefix.
func RegisterStatusRoutes(r fiber.Router, svc *Service) {
	r.Get("/list", func(c *fiber.Ctx) error {
		statuses, err := svc.Statuses(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(statuses)
	})
}

func writeError(err error) error {
	if errors.Is(err, member.ErrNoMemberProfile) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
