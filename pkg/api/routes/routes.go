package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
)

type routeResponse struct {
	ID string `json:"id"`
	*ctdf.Route
}

func RoutesRouter(router fiber.Router, repository *timetable.Repository) {
	router.Get("/:identifier", getRoute(repository))
}

func getRoute(repository *timetable.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dataset, err := repository.Current()
		if err != nil {
			return notLoaded(c, err)
		}

		identifier := c.Params("identifier")
		route := dataset.Route(identifier)

		if route == nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find Route matching Route Identifier",
			})
		}

		return c.JSON(routeResponse{ID: identifier, Route: route})
	}
}
