package route

import (
	"errors"

	"backend-sparrow/internal/member"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/list", authMiddleware, func(c *fiber.Ctx) error {
		var req WriteRoute
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		rt, err := svc.CreateRoute(c.Context(), req)
		if err != nil {
			return writeError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(rt)
	})

	r.Get("/list", func(c *fiber.Ctx) error {
		routes, err := svc.ListRoutes(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/detail/:id", func(c *fiber.Ctx) error {
		rt, err := svc.GetRoute(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(rt)
	})

	r.Put("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req WriteRoute
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		rt, err := svc.UpdateRoute(c.Context(), c.Params("id"), req)
		if err != nil {
			return writeError(err)
		}
		return c.JSON(rt)
	})

	r.Delete("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteRoute(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/detail/:id/attractions", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			AttractionID string `json:"attraction_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.AttractionID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "attraction_id required")
		}
		oa, err := svc.AddAttraction(c.Context(), c.Params("id"), body.AttractionID)
		if err != nil {
			return writeError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(oa)
	})

	r.Put("/detail/:id/attractions", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			AttractionIDs []string `json:"attraction_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := svc.SetAttractions(c.Context(), c.Params("id"), body.AttractionIDs); err != nil {
			return writeError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func writeError(err error) error {
	switch {
	case errors.Is(err, ErrOwnership),
		errors.Is(err, ErrAttractionOnRoute),
		errors.Is(err, member.ErrNoMemberProfile):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
