package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeoJSON(t *testing.T) {
	sydney := NewLocation(151.20732, -33.86785)
	require.Equal(t, `{"type":"Point","coordinates":[151.20732,-33.86785]}`, sydney.GeoJSON())

	l, err := ParseGeoJSONPoint(sydney.GeoJSON())
	require.Nil(t, err)
	require.Equal(t, sydney, l)

	l, err = ParseGeoJSONPoint(`{ "type": "Point", "coordinates": [-0.5, 10] }`)
	require.Nil(t, err)
	require.Equal(t, NewLocation(-0.5, 10), l)
}

func TestParseGeoJSONPointErrors(t *testing.T) {
	_, err := ParseGeoJSONPoint(`not json`)
	require.NotNil(t, err)
	_, err = ParseGeoJSONPoint(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`)
	require.NotNil(t, err)
	_, err = ParseGeoJSONPoint(`{"type":"Point","coordinates":[1]}`)
	require.NotNil(t, err)
}

func TestDistanceTo(t *testing.T) {
	l1 := NewLocation(-.5, -.5)
	l2 := NewLocation(.5, .5)
	require.InDelta(t, math.Sqrt2, l1.DistanceTo(l2), 1e-12)
	require.Equal(t, l1.DistanceTo(l2), l2.DistanceTo(l1))
	require.Equal(t, 0.0, l1.DistanceTo(l1))
}

func TestPartWay(t *testing.T) {
	from := NewLocation(0, 0)
	to := NewLocation(3, 4)

	mid := from.PartWay(2.5, to)
	require.InDelta(t, 1.5, mid.X, 1e-12)
	require.InDelta(t, 2.0, mid.Y, 1e-12)

	require.Equal(t, to, from.PartWay(5, to))
	require.Equal(t, from, from.PartWay(1, from))
}

func TestString(t *testing.T) {
	require.Equal(t, "[ 1.500 -2.250]", NewLocation(1.5, -2.25).String())
}
