package attraction

import (
	"errors"
	"strconv"
	"time"

	"backend-sparrow/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// listAttractions narrows the listing to a radius around a point when
// the lat/lon query params are present.
func listAttractions(c *fiber.Ctx, svc *Service) ([]Attraction, error) {
	latParam, lonParam := c.Query("lat"), c.Query("lon")
	if latParam == "" && lonParam == "" {
		attractions, err := svc.ListAttractions(c.Context())
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return attractions, nil
	}

	lat, latErr := strconv.ParseFloat(latParam, 64)
	lon, lonErr := strconv.ParseFloat(lonParam, 64)
	if latErr != nil || lonErr != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "lat and lon must be valid coordinates")
	}
	radiusKm := 50.0
	if radiusParam := c.Query("radius_km"); radiusParam != "" {
		radius, err := strconv.ParseFloat(radiusParam, 64)
		if err != nil || radius <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "radius_km must be a positive number")
		}
		radiusKm = radius
	}

	attractions, err := svc.ListNearby(c.Context(), lat, lon, radiusKm)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return attractions, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/list", authMiddleware, func(c *fiber.Ctx) error {
		var req Attraction
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		a, err := svc.CreateAttraction(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	r.Get("/list", func(c *fiber.Ctx) error {
		attractions, err := listAttractions(c, svc)
		if err != nil {
			return err
		}
		return c.JSON(attractions)
	})

	r.Get("/detail/:id", func(c *fiber.Ctx) error {
		a, err := svc.GetAttraction(c.Context(), c.Params("id"), auth.CallerID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "attraction not found")
		}
		return c.JSON(a)
	})

	r.Put("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Attraction
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		a, err := svc.UpdateAttraction(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(a)
	})

	r.Delete("/detail/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteAttraction(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/detail/:id/tags", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		tag, err := svc.AddTag(c.Context(), c.Params("id"), body.Name)
		if err != nil {
			if errors.Is(err, ErrTagOnAttraction) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(tag)
	})

	r.Delete("/detail/:id/tags/:tagID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.RemoveTag(c.Context(), c.Params("id"), c.Params("tagID")); err != nil {
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
}
