package planner

import (
	"errors"
	"fmt"

	"github.com/travigo/planner/pkg/util"
)

var ErrInvalidQuery = errors.New("invalid query")

type Criterion string

const (
	CriterionEarliestArrival Criterion = "earliest_arrival"
	CriterionFewestTransfers Criterion = "fewest_transfers"
)

// ParseCriterion accepts the canonical names as well as the short "time" and "transfers" forms.
// An empty value means earliest arrival.
func ParseCriterion(value string) (Criterion, error) {
	switch value {
	case "", "time", string(CriterionEarliestArrival):
		return CriterionEarliestArrival, nil
	case "transfers", string(CriterionFewestTransfers):
		return CriterionFewestTransfers, nil
	}

	return "", fmt.Errorf("%w: unknown optimize criterion %q", ErrInvalidQuery, value)
}

type Query struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	DepartAfter string `json:"depart_after"`
	Optimize    string `json:"optimize"`
}

// Normalise validates the query and returns it with the date, departure time and criterion in
// canonical form
func (q Query) Normalise() (Query, error) {
	request, err := q.validate()
	if err != nil {
		return Query{}, err
	}

	q.Date = request.Date
	q.Optimize = string(request.Criterion)
	if q.DepartAfter != "" {
		q.DepartAfter = util.FormatClockMinutes(request.Bound)
	}

	return q, nil
}

// request is a validated Query
type request struct {
	Origin      string
	Destination string
	Date        string
	Bound       int
	Criterion   Criterion
}

func (q Query) validate() (request, error) {
	if q.Origin == "" || q.Destination == "" || q.Date == "" {
		return request{}, fmt.Errorf("%w: origin, destination and date are required", ErrInvalidQuery)
	}

	date, err := util.NormaliseServiceDate(q.Date)
	if err != nil {
		return request{}, fmt.Errorf("%w: %s", ErrInvalidQuery, err)
	}

	bound := 0
	if q.DepartAfter != "" {
		var ok bool
		bound, ok = util.ParseClockMinutes(q.DepartAfter)
		if !ok || bound >= 24*60 {
			return request{}, fmt.Errorf("%w: invalid departure time %q", ErrInvalidQuery, q.DepartAfter)
		}
	}

	criterion, err := ParseCriterion(q.Optimize)
	if err != nil {
		return request{}, err
	}

	return request{
		Origin:      q.Origin,
		Destination: q.Destination,
		Date:        date,
		Bound:       bound,
		Criterion:   criterion,
	}, nil
}
