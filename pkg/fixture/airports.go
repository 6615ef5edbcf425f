package fixture

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/pingcap/errors"

	"github.com/aerospike-workshop/exercises/pkg/geo"
)

// Airport is one row of airports.csv (OpenFlights layout).
type Airport struct {
	ID        int64
	Name      string
	City      string
	Country   string
	IATA      string
	ICAO      string
	Location  geo.Location
	Elevation int64
	Region    string
}

// Column positions in airports.csv.
const (
	colID = iota
	colName
	colCity
	colCountry
	colIATA
	colICAO
	colLat
	colLon
	colElevation
	colTimezone
	colDST
	colRegion

	minAirportColumns
)

// Key is the user key an airport is stored under.
func (a *Airport) Key() string {
	return a.IATA + ":" + a.ICAO
}

// Bins returns the record bins of the airport, with its position written
// to locationBin as a GeoJSON point.
func (a *Airport) Bins(locationBin string) as.BinMap {
	return as.BinMap{
		"id":        a.ID,
		"name":      a.Name,
		"city":      a.City,
		"country":   a.Country,
		"IATA":      a.IATA,
		"ICAO":      a.ICAO,
		locationBin: as.NewGeoJSONValue(a.Location.GeoJSON()),
		"elevation": a.Elevation,
		"region":    a.Region,
	}
}

// ReadAirports parses every row of an airports CSV file.
func ReadAirports(r io.Reader) ([]*Airport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var airports []*Airport
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return airports, nil
		}
		if err != nil {
			return nil, errors.Annotatef(err, "airports line %d", line)
		}
		a, err := parseAirport(row)
		if err != nil {
			return nil, errors.Annotatef(err, "airports line %d", line)
		}
		airports = append(airports, a)
	}
}

func parseAirport(row []string) (*Airport, error) {
	if len(row) < minAirportColumns {
		return nil, errors.Errorf("expected at least %d columns, got %d", minAirportColumns, len(row))
	}
	id, err := strconv.ParseInt(strings.TrimSpace(row[colID]), 10, 64)
	if err != nil {
		return nil, errors.Annotate(err, "id")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[colLat]), 64)
	if err != nil {
		return nil, errors.Annotate(err, "latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[colLon]), 64)
	if err != nil {
		return nil, errors.Annotate(err, "longitude")
	}
	elevation, err := strconv.ParseInt(strings.TrimSpace(row[colElevation]), 10, 64)
	if err != nil {
		return nil, errors.Annotate(err, "elevation")
	}
	return &Airport{
		ID:        id,
		Name:      row[colName],
		City:      row[colCity],
		Country:   row[colCountry],
		IATA:      row[colIATA],
		ICAO:      row[colICAO],
		Location:  geo.NewLocation(lon, lat),
		Elevation: elevation,
		Region:    row[colRegion],
	}, nil
}
