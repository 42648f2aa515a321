package controllers

import (
	"errors"
	"strconv"
	"time"

	"learntrack/backend/config"
	"learntrack/backend/services"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses. Anything that is not a
// validation or not-found error is logged and answered with fallback.
func respondError(c *fiber.Ctx, logger *utils.Logger, err error, fallback string) error {
	var validation *services.ValidationError
	var missing *services.NotFoundError
	switch {
	case errors.As(err, &validation):
		return utils.BadRequest(c, validation.Message)
	case errors.As(err, &missing):
		return utils.NotFound(c, missing.Error())
	}

	logger.Error(fallback,
		"error", err,
		"method", c.Method(),
		"path", c.Path(),
	)
	return utils.InternalServerError(c, fallback)
}

// location is the configured timezone. LoadConfig has already rejected bad
// values, so a failure here falls back to local time.
func location(cfg *config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// dateRange reads the startDate and endDate query parameters. A plain
// YYYY-MM-DD endDate covers that whole day.
func dateRange(c *fiber.Ctx, loc *time.Location) (start, end *time.Time, err error) {
	start, err = utils.ParseOptionalDate(c.Query("startDate"), loc)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid startDate")
	}

	raw := c.Query("endDate")
	end, err = utils.ParseOptionalDate(raw, loc)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid endDate")
	}
	if end != nil && len(raw) == len("2006-01-02") {
		endOfDay := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &endOfDay
	}
	return start, end, nil
}

// queryLimit parses a positive integer query parameter, returning 0 when it
// is absent.
func queryLimit(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be a positive integer")
	}
	return n, nil
}

func badRequestFrom(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.Error(c, fe.Code, fe.Message)
	}
	return utils.BadRequest(c, err.Error())
}
