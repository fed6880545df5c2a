package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/planner/pkg/timetable"
)

// DataRouter exposes the raw dataset documents the same way they're written to disk
func DataRouter(router fiber.Router, repository *timetable.Repository) {
	router.Get("/:name", func(c *fiber.Ctx) error {
		dataset, err := repository.Current()
		if err != nil {
			return notLoaded(c, err)
		}

		name := strings.TrimSuffix(c.Params("name"), ".json")

		document, exists := dataset.Document(name)
		if !exists {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Unknown data document",
			})
		}

		return c.JSON(document)
	})
}
