package member

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// registration is the only unauthenticated write
	r.Post("/list", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		created, err := svc.Register(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/list", func(c *fiber.Ctx) error {
		members, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(members)
	})

	r.Get("/detail/:id", func(c *fiber.Ctx) error {
		m, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "member not found")
		}
		return c.JSON(m)
	})

	r.Put("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		m, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(m)
	})

	r.Delete("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/change-password/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req ChangePasswordRequest
		if err := c.BodyParser(&req); err != nil || req.Password == "" || req.NewPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "password and new_password required")
		}
		if err := svc.ChangePassword(c.Context(), c.Params("id"), req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
