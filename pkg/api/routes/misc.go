package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/planner/pkg/timetable"
)

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok": true,
	})
}

func APIVersion(repository *timetable.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		datasetVersion := ""
		if dataset, err := repository.Current(); err == nil {
			datasetVersion = dataset.Version
		}

		return c.JSON(fiber.Map{
			"version": "v0.1",
			"dataset": datasetVersion,
		})
	}
}

func notLoaded(c *fiber.Ctx, err error) error {
	c.SendStatus(fiber.StatusServiceUnavailable)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
