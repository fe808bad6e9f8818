package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"imagehub/internal/service"
)

// ImagesByDate handles GET /date/:day/images, returning records for every
// image captured on the given day ordinal.
func ImagesByDate(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := strconv.ParseInt(c.Params("day"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DAY", "invalid day")
		}

		recs, err := svc.ImagesByDate(c.UserContext(), day)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(recs)
	}
}

// LatestDate handles GET /date/latest, returning the most recent capture
// date across all stored images.
func LatestDate(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := svc.LatestDate(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no images stored")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"date": day})
	}
}
