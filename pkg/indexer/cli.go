package indexer

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/elastic_client"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "indexer",
		Usage: "Indexes data into Elasticsearch",
		Subcommands: []*cli.Command{
			{
				Name:  "stops",
				Usage: "do an index of the Stops",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data",
						Value: "gtfs-out",
						Usage: "Directory holding the processed timetable",
					},
				},
				Action: func(c *cli.Context) error {
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					source := &timetable.DirectorySource{Directory: c.String("data")}
					dataset, err := source.Load(c.Context)
					if err != nil {
						return err
					}

					if err := IndexStops(c.Context, dataset); err != nil {
						return err
					}

					log.Info().Msg("Index queue emptied")

					return nil
				},
			},
		},
	}
}
