package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/plancache"
	"github.com/travigo/planner/pkg/planner"
	"github.com/travigo/planner/pkg/timetable"
)

type plannerHandlers struct {
	planner *planner.Planner
	cache   *plancache.Cache
}

// PlannerRouter serves itineraries, cache may be nil
func PlannerRouter(router fiber.Router, itineraryPlanner *planner.Planner, cache *plancache.Cache) {
	handlers := &plannerHandlers{
		planner: itineraryPlanner,
		cache:   cache,
	}

	router.Post("/plan", handlers.postPlan)
	router.Get("/:origin/:destination", handlers.getPlanBetweenStops)
	router.Get("/:origin/:destination/compare", handlers.getPlanComparison)
}

func (h *plannerHandlers) postPlan(c *fiber.Ctx) error {
	var query planner.Query
	if err := c.BodyParser(&query); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"found":   false,
			"message": "Request body should be a JSON plan query",
		})
	}

	itinerary, err := h.plan(c.UserContext(), query)
	if err != nil {
		return planError(c, err)
	}

	return c.JSON(itinerary)
}

func (h *plannerHandlers) getPlanBetweenStops(c *fiber.Ctx) error {
	detail, ok := detailGroups(c.Query("detail", "detailed"))
	if !ok {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter detail should be basic or detailed",
		})
	}

	itinerary, err := h.plan(c.UserContext(), queryFromRequest(c))
	if err != nil {
		return planError(c, err)
	}

	itineraryReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: detail,
	}, itinerary)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Itinerary",
		})
	}

	return c.JSON(itineraryReduced)
}

func (h *plannerHandlers) getPlanComparison(c *fiber.Ctx) error {
	detail, ok := detailGroups(c.Query("detail", "detailed"))
	if !ok {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter detail should be basic or detailed",
		})
	}

	itineraries, err := h.planner.PlanAlternatives(c.UserContext(), queryFromRequest(c))
	if err != nil {
		return planError(c, err)
	}

	response := fiber.Map{}
	for criterion, itinerary := range itineraries {
		itineraryReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: detail,
		}, itinerary)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Itinerary",
			})
		}

		response[string(criterion)] = itineraryReduced
	}

	return c.JSON(response)
}

func (h *plannerHandlers) plan(ctx context.Context, query planner.Query) (*ctdf.Itinerary, error) {
	if h.cache == nil {
		return h.planner.Plan(ctx, query)
	}

	query, err := query.Normalise()
	if err != nil {
		return nil, err
	}

	dataset, err := h.planner.Repository.Current()
	if err != nil {
		return nil, err
	}

	cacheKey := plancache.Key(dataset.Version, query)
	if itinerary, hit := h.cache.Get(ctx, cacheKey); hit {
		return itinerary, nil
	}

	itinerary, err := h.planner.PlanDataset(ctx, dataset, query)
	if err != nil {
		return nil, err
	}

	if err := h.cache.Set(ctx, cacheKey, itinerary); err != nil {
		log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache itinerary")
	}

	return itinerary, nil
}

func queryFromRequest(c *fiber.Ctx) planner.Query {
	return planner.Query{
		Origin:      c.Params("origin"),
		Destination: c.Params("destination"),
		Date:        c.Query("date"),
		DepartAfter: c.Query("depart_after"),
		Optimize:    c.Query("optimize"),
	}
}

func detailGroups(detail string) ([]string, bool) {
	switch detail {
	case "basic":
		return []string{"basic"}, true
	case "detailed":
		return []string{"detailed"}, true
	}

	return nil, false
}

func planError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, planner.ErrInvalidQuery):
		c.SendStatus(fiber.StatusBadRequest)
	case errors.Is(err, timetable.ErrNotLoaded):
		c.SendStatus(fiber.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Msg("Failed to plan itinerary")
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"found":   false,
		"message": err.Error(),
	})
}
