package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/database"
	"github.com/travigo/planner/pkg/elastic_client"
	"github.com/travigo/planner/pkg/events"
	"github.com/travigo/planner/pkg/plancache"
	"github.com/travigo/planner/pkg/planner"
	"github.com/travigo/planner/pkg/redis_client"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/travigo/planner/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the itinerary planner web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "data",
						Value: "gtfs-out",
						Usage: "Directory holding the processed timetable",
					},
					&cli.StringFlag{
						Name:  "in",
						Value: "resources",
						Usage: "GTFS input directory used to bootstrap a missing timetable",
					},
					&cli.StringFlag{
						Name:  "source",
						Value: timetable.SourceKindFile,
						Usage: "Where to load the timetable from (file or mongo)",
					},
					&cli.IntFlag{
						Name:  "stream-cache",
						Value: 8,
						Usage: "Number of per date connection streams kept in memory",
					},
				},
				Action: func(c *cli.Context) error {
					env := util.GetEnvironmentVariables()

					if c.String("source") == timetable.SourceKindMongo {
						if err := database.Connect(); err != nil {
							return err
						}
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					repository := timetable.NewRepository()

					err := Bootstrap(c.Context, repository, BootstrapOptions{
						SourceKind:     c.String("source"),
						DataDirectory:  c.String("data"),
						InputDirectory: c.String("in"),
					})
					if err != nil {
						return err
					}

					options := Options{
						Repository:     repository,
						Planner:        planner.NewPlanner(repository, planner.NewStreamCache(c.Int("stream-cache"))),
						DataDirectory:  c.String("data"),
						InputDirectory: c.String("in"),
						AuthDomain:     env["AUTH0_DOMAIN"],
						AuthAudience:   env["AUTH0_AUDIENCE"],
					}

					if env["TRAVIGO_REDIS_ADDRESS"] != "" {
						if err := redis_client.Connect(); err != nil {
							log.Fatal().Err(err).Msg("Failed to connect to Redis")
						}

						options.Cache = plancache.New(redis_client.Client, plancache.DefaultExpiration)
						options.QueueConnection = redis_client.QueueConnection

						// Announced datasets are reloaded from this instance's own source
						source, err := timetable.NewSource(c.String("source"), c.String("data"))
						if err != nil {
							return err
						}

						_, err = events.StartDatasetConsumer(redis_client.QueueConnection, &events.DatasetConsumer{
							Repository: repository,
							SourceFor: func(event ctdf.DatasetImportedEvent) timetable.Source {
								return source
							},
						})
						if err != nil {
							return err
						}
					}

					return SetupServer(c.String("listen"), options)
				},
			},
		},
	}
}
