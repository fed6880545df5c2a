package api

import (
	"github.com/adjust/rmq/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/planner/pkg/api/routes"
	"github.com/travigo/planner/pkg/plancache"
	"github.com/travigo/planner/pkg/planner"
	"github.com/travigo/planner/pkg/timetable"
)

type Options struct {
	Repository *timetable.Repository
	Planner    *planner.Planner

	// Optional redis backed itinerary cache
	Cache *plancache.Cache

	DataDirectory  string
	InputDirectory string

	QueueConnection rmq.Connection

	// Preprocessing requires a valid token when AuthDomain is set
	AuthDomain   string
	AuthAudience string
}

func NewApp(options Options) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("health", routes.Health)
	group.Get("version", routes.APIVersion(options.Repository))

	routes.PlannerRouter(group.Group("/planner"), options.Planner, options.Cache)

	routes.StopsRouter(group.Group("/stops"), options.Repository)
	routes.RoutesRouter(group.Group("/routes"), options.Repository)

	routes.DataRouter(group.Group("/data"), options.Repository)

	preprocessSettings := routes.PreprocessSettings{
		InputDirectory: options.InputDirectory,
		DataDirectory:  options.DataDirectory,
		Notify:         options.QueueConnection,
	}
	if options.AuthDomain != "" {
		routes.PreprocessRouter(group.Group("/preprocess", EnsureValidToken(options.AuthDomain, options.AuthAudience)), options.Repository, preprocessSettings)
	} else {
		routes.PreprocessRouter(group.Group("/preprocess"), options.Repository, preprocessSettings)
	}

	return webApp
}

func SetupServer(listen string, options Options) error {
	return NewApp(options).Listen(listen)
}
