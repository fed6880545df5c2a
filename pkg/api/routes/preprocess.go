package routes

import (
	"fmt"
	"strings"

	"github.com/adjust/rmq/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/dataimporter/formats/gtfs"
	"github.com/travigo/planner/pkg/dataimporter/manager"
	"github.com/travigo/planner/pkg/timetable"
)

type PreprocessSettings struct {
	InputDirectory string
	DataDirectory  string

	// Notify is optional, when set other planners are told about the new dataset
	Notify rmq.Connection
}

type preprocessRequest struct {
	InDirectory       string `json:"in_dir"`
	IncludeRouteTypes []int  `json:"include_route_types"`
}

func PreprocessRouter(router fiber.Router, repository *timetable.Repository, settings PreprocessSettings) {
	router.Post("/", func(c *fiber.Ctx) error {
		var request preprocessRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&request); err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Request body should be JSON",
				})
			}
		}

		inDirectory := request.InDirectory
		if inDirectory == "" {
			inDirectory = settings.InputDirectory
		}

		if missing := gtfs.MissingFiles(inDirectory); len(missing) > 0 {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": fmt.Sprintf("Required GTFS files are missing from %s: %s", inDirectory, strings.Join(missing, ", ")),
			})
		}

		dataset, err := manager.Preprocess(c.UserContext(), manager.PreprocessOptions{
			Input:             inDirectory,
			Output:            settings.DataDirectory,
			IncludeRouteTypes: request.IncludeRouteTypes,
			Notify:            settings.Notify,
		})
		if err != nil {
			log.Error().Err(err).Str("in", inDirectory).Msg("Preprocess failed")

			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		repository.Swap(dataset)

		return c.JSON(fiber.Map{
			"ok":      true,
			"stats":   dataset.Stats,
			"out_dir": settings.DataDirectory,
		})
	})
}
