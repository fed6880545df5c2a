package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/indexer"
	"github.com/travigo/planner/pkg/timetable"
)

type stopResponse struct {
	ID string `json:"id"`
	*ctdf.Stop
}

func StopsRouter(router fiber.Router, repository *timetable.Repository) {
	router.Get("/", listStops(repository))
	router.Get("/search", searchStops(repository))
	router.Get("/:identifier", getStop(repository))
}

func listStops(repository *timetable.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dataset, err := repository.Current()
		if err != nil {
			return notLoaded(c, err)
		}

		stops := []stopResponse{}
		for _, stop := range dataset.AllStops() {
			stops = append(stops, stopResponse{ID: stop.ID, Stop: stop})
		}

		return c.JSON(stops)
	}
}

func searchStops(repository *timetable.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter name is required",
			})
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil || limit <= 0 {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter limit should be a positive integer",
			})
		}

		results, err := indexer.SearchStops(c.UserContext(), name, limit)
		if err == nil {
			return c.JSON(results)
		} else if !errors.Is(err, indexer.ErrSearchUnavailable) {
			log.Error().Err(err).Str("name", name).Msg("Stop search failed, using timetable")
		}

		dataset, err := repository.Current()
		if err != nil {
			return notLoaded(c, err)
		}

		return c.JSON(indexer.SearchDataset(dataset, name, limit))
	}
}

func getStop(repository *timetable.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dataset, err := repository.Current()
		if err != nil {
			return notLoaded(c, err)
		}

		identifier := c.Params("identifier")
		stop := dataset.Stop(identifier)

		if stop == nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find Stop matching Stop Identifier",
			})
		}

		return c.JSON(stopResponse{ID: identifier, Stop: stop})
	}
}
