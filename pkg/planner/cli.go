package planner

import (
	"encoding/json"
	"fmt"

	"github.com/kr/pretty"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Plan a single itinerary against a processed timetable",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data",
				Value: "gtfs-out",
				Usage: "Directory holding the processed timetable",
			},
			&cli.StringFlag{
				Name:     "origin",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "destination",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "date",
				Required: true,
				Usage:    "Service date, YYYY-MM-DD or YYYYMMDD",
			},
			&cli.StringFlag{
				Name:  "depart-after",
				Usage: "Earliest departure, HH:MM or HH:MM:SS",
			},
			&cli.StringFlag{
				Name:  "optimize",
				Value: string(CriterionEarliestArrival),
				Usage: "earliest_arrival (time) or fewest_transfers (transfers)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Dump the itinerary as a Go value instead of JSON",
			},
		},
		Action: func(c *cli.Context) error {
			repository := timetable.NewRepository()
			if err := repository.Load(c.Context, &timetable.DirectorySource{Directory: c.String("data")}); err != nil {
				return err
			}

			itinerary, err := NewPlanner(repository, nil).Plan(c.Context, Query{
				Origin:      c.String("origin"),
				Destination: c.String("destination"),
				Date:        c.String("date"),
				DepartAfter: c.String("depart-after"),
				Optimize:    c.String("optimize"),
			})
			if err != nil {
				return err
			}

			if c.Bool("debug") {
				pretty.Println(itinerary)
				return nil
			}

			output, err := json.MarshalIndent(itinerary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(output))

			return nil
		},
	}
}
