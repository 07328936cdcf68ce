package rating

import (
	"errors"

	"backend-sparrow/internal/auth"
	"backend-sparrow/internal/member"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/list", authMiddleware, func(c *fiber.Ctx) error {
		var req WriteRating
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		rt, err := svc.CreateRating(c.Context(), auth.CallerID(c), req)
		if err != nil {
			return writeError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(rt)
	})

	r.Put("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req WriteRating
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		rt, err := svc.UpdateRating(c.Context(), c.Params("id"), req)
		if err != nil {
			return writeError(err)
		}
		return c.JSON(rt)
	})

	r.Delete("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteRating(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/route/:id", func(c *fiber.Ctx) error {
		ratings, err := svc.RouteRatings(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(ratings)
	})

	r.Get("/attraction/:id", func(c *fiber.Ctx) error {
		ratings, err := svc.AttractionRatings(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(ratings)
	})

	r.Get("/member/:id", func(c *fiber.Ctx) error {
		ratings, err := svc.MemberRatings(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(ratings)
	})
}

func writeError(err error) error {
	switch {
	case errors.Is(err, ErrTarget), errors.Is(err, member.ErrNoMemberProfile):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
