package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/api"
	"github.com/travigo/planner/pkg/dataimporter"
	"github.com/travigo/planner/pkg/indexer"
	"github.com/travigo/planner/pkg/planner"
	"github.com/travigo/planner/pkg/util"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("TRAVIGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if util.EnvironmentFlag("TRAVIGO_DEBUG") {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "planner",
		Description: "Public transport itinerary planner over GTFS timetables",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			dataimporter.RegisterCLI(),
			indexer.RegisterCLI(),
			planner.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
