package group

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/list", authMiddleware, func(c *fiber.Ctx) error {
		var req Group
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		g, err := svc.CreateGroup(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	})

	r.Get("/list", func(c *fiber.Ctx) error {
		groups, err := svc.ListGroups(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(groups)
	})

	r.Get("/detail/:id", func(c *fiber.Ctx) error {
		g, err := svc.GetGroup(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "group not found")
		}
		return c.JSON(g)
	})

	r.Put("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Group
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		g, err := svc.UpdateGroup(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(g)
	})

	r.Delete("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteGroup(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/detail/:id/members", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			MemberID string  `json:"member_id"`
			IsAdmin  bool    `json:"is_admin"`
			Nickname *string `json:"nickname"`
		}
		if err := c.BodyParser(&body); err != nil || body.MemberID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "member_id required")
		}
		m, err := svc.AddMembership(c.Context(), c.Params("id"), body.MemberID, body.IsAdmin, body.Nickname)
		if err != nil {
			if errors.Is(err, ErrAlreadyMember) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	})

	r.Get("/detail/:id/members", func(c *fiber.Ctx) error {
		members, err := svc.Memberships(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(members)
	})

	r.Delete("/detail/:id/members/:memberID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.RemoveMembership(c.Context(), c.Params("id"), c.Params("memberID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
