package dataimporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/database"
	"github.com/travigo/planner/pkg/dataimporter/manager"
	"github.com/travigo/planner/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & convert GTFS feeds into planner timetables",
		Subcommands: []*cli.Command{
			{
				Name:  "preprocess",
				Usage: "Convert a local GTFS feed",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "in",
						Value: "resources",
						Usage: "GTFS directory or zip archive",
					},
				}, outputFlags()...),
				Action: func(c *cli.Context) error {
					options, err := preprocessOptions(c)
					if err != nil {
						return err
					}
					options.Input = c.String("in")

					_, err = manager.Preprocess(c.Context, options)
					return err
				},
			},
			{
				Name:  "dataset",
				Usage: "Import a registered dataset",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "repeat",
						Usage: "Repeat the import every refresh interval of the dataset",
					},
				}, outputFlags()...),
				Action: func(c *cli.Context) error {
					options, err := preprocessOptions(c)
					if err != nil {
						return err
					}

					dataset, err := manager.GetDataset(c.String("id"))
					if err != nil {
						return err
					}

					for {
						startTime := time.Now()

						_, err := manager.ImportDataset(c.Context, &dataset, options)
						if err != nil {
							return err
						}

						if !c.Bool("repeat") {
							break
						}

						repeatDuration, err := dataset.RefreshDuration(startTime)
						if err != nil {
							return err
						}
						if repeatDuration <= 0 {
							return fmt.Errorf("dataset %s has no refresh interval", dataset.Identifier)
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							select {
							case <-c.Context.Done():
								return nil
							case <-time.After(waitTime):
							}
						}
					}

					return nil
				},
			},
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Value: "gtfs-out",
			Usage: "Directory to write the processed timetable to",
		},
		&cli.StringFlag{
			Name:  "route-types",
			Usage: "Comma separated GTFS route types to keep (default 2,3)",
		},
		&cli.BoolFlag{
			Name:  "mongo",
			Usage: "Also store the timetable in MongoDB",
		},
		&cli.BoolFlag{
			Name:  "notify",
			Usage: "Announce the new timetable to running planners over redis",
		},
	}
}

func preprocessOptions(c *cli.Context) (manager.PreprocessOptions, error) {
	routeTypes, err := ParseRouteTypes(c.String("route-types"))
	if err != nil {
		return manager.PreprocessOptions{}, err
	}

	options := manager.PreprocessOptions{
		Output:            c.String("out"),
		IncludeRouteTypes: routeTypes,
		StoreInMongo:      c.Bool("mongo"),
	}

	if options.StoreInMongo {
		if err := database.Connect(); err != nil {
			return options, err
		}
	}

	if c.Bool("notify") {
		if err := redis_client.Connect(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		options.Notify = redis_client.QueueConnection
	}

	return options, nil
}

// ParseRouteTypes reads a comma separated list of GTFS route types
func ParseRouteTypes(value string) ([]int, error) {
	var routeTypes []int

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		routeType, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid route type %q", part)
		}
		routeTypes = append(routeTypes, routeType)
	}

	return routeTypes, nil
}
