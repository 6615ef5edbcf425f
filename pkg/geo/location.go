package geo

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pingcap/errors"
)

// Location is a point given as longitude (X) and latitude (Y), the order
// GeoJSON uses for coordinates.
type Location struct {
	X float64
	Y float64
}

// NewLocation creates a location from longitude and latitude.
func NewLocation(lon, lat float64) Location {
	return Location{X: lon, Y: lat}
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

const pointType = "Point"

// GeoJSON encodes l as a GeoJSON Point geometry.
func (l Location) GeoJSON() string {
	b, _ := json.Marshal(geoJSONPoint{Type: pointType, Coordinates: []float64{l.X, l.Y}})
	return string(b)
}

// ParseGeoJSONPoint decodes a GeoJSON Point geometry.
func ParseGeoJSONPoint(s string) (Location, error) {
	var p geoJSONPoint
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return Location{}, errors.Annotate(err, "parse GeoJSON point")
	}
	if p.Type != pointType {
		return Location{}, errors.Errorf("GeoJSON type %q is not a Point", p.Type)
	}
	if len(p.Coordinates) != 2 {
		return Location{}, errors.Errorf("GeoJSON point needs 2 coordinates, got %d", len(p.Coordinates))
	}
	return Location{X: p.Coordinates[0], Y: p.Coordinates[1]}, nil
}

// DistanceTo returns the planar distance between l and other in degrees.
func (l Location) DistanceTo(other Location) float64 {
	return math.Hypot(other.X-l.X, other.Y-l.Y)
}

// PartWay returns the location partway along the straight line from l to
// destination. If the two coincide l is returned.
func (l Location) PartWay(partway float64, destination Location) Location {
	wholeway := l.DistanceTo(destination)
	if wholeway == 0 {
		return l
	}
	portion := partway / wholeway
	return Location{
		X: l.X + portion*(destination.X-l.X),
		Y: l.Y + portion*(destination.Y-l.Y),
	}
}

func (l Location) String() string {
	return fmt.Sprintf("[% 1.3f % 1.3f]", l.X, l.Y)
}
