package exercise

import (
	"context"
	"fmt"
	"io"
	"time"

	as "github.com/aerospike/aerospike-client-go/v7"

	"github.com/aerospike-workshop/exercises/pkg/fixture"
	"github.com/aerospike-workshop/exercises/pkg/geo"
	"github.com/aerospike-workshop/exercises/pkg/record"
)

// Sydney is the point both geo queries are centred on.
var Sydney = geo.NewLocation(151.20732, -33.86785)

const searchRadius = 150000 // metres

type geoQueries struct{}

func init() {
	Register(geoQueries{})
}

func (geoQueries) Name() string  { return "geo" }
func (geoQueries) Title() string { return "Geo" }

// Prepare creates the geo indexes and loads the sample data sets that are
// not stored yet.
func Prepare(ctx context.Context, s *Session) (fixture.Loaded, error) {
	for _, spec := range fixture.Indexes {
		if err := s.EnsureIndex(ctx, spec); err != nil {
			return fixture.Loaded{}, err
		}
	}
	defer s.measure(opLoad, time.Now())
	return fixture.NewLoader(s.DB, s.Config.DataDir, s.Config.LoadRate, s.Out).LoadAll(ctx)
}

func (geoQueries) Run(ctx context.Context, s *Session) error {
	if _, err := Prepare(ctx, s); err != nil {
		return err
	}

	stmt := s.DB.NewStatement(fixture.AirportSet, "ICAO", "IATA", "name", "city", "country")
	if err := stmt.SetFilter(as.NewGeoWithinRadiusFilter(fixture.LocationBin, Sydney.X, Sydney.Y, searchRadius)); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Airports:")
	if err := s.queryAndPrint(ctx, stmt, record.PrintAirport); err != nil {
		return err
	}

	stmt = s.DB.NewStatement(fixture.RegionSet, "name", "type")
	if err := stmt.SetFilter(as.NewGeoRegionsContainingPointFilter(fixture.RegionBin, Sydney.GeoJSON())); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Regions:")
	return s.queryAndPrint(ctx, stmt, record.PrintBins)
}

// queryAndPrint prints every record matched by stmt followed by the match
// count and the time the query took.
func (s *Session) queryAndPrint(ctx context.Context, stmt *as.Statement, printRecord func(io.Writer, *as.Record)) error {
	start := time.Now()
	records, err := s.QueryAll(ctx, stmt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	for _, rec := range records {
		printRecord(s.Out, rec)
		fmt.Fprintln(s.Out)
	}
	fmt.Fprintf(s.Out, "Found %d records in %d ms\n", len(records), elapsed.Milliseconds())
	return nil
}
