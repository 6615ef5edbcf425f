package fixture

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/stretchr/testify/require"

	"github.com/aerospike-workshop/exercises/pkg/db"
	"github.com/aerospike-workshop/exercises/pkg/geo"
	"github.com/aerospike-workshop/exercises/pkg/testutil"
)

func TestReadAirports(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", AirportsFile))
	require.Nil(t, err)
	defer f.Close()

	airports, err := ReadAirports(f)
	require.Nil(t, err)
	require.Len(t, airports, 10)

	var syd *Airport
	for _, a := range airports {
		if a.Key() == "SYD:YSSY" {
			syd = a
		}
	}
	require.NotNil(t, syd)
	require.Equal(t, int64(3361), syd.ID)
	require.Equal(t, "Sydney Kingsford Smith International Airport", syd.Name)
	require.Equal(t, "Sydney", syd.City)
	require.Equal(t, "Australia", syd.Country)
	require.Equal(t, int64(21), syd.Elevation)
	require.Equal(t, "Australia/Sydney", syd.Region)
	require.InDelta(t, 151.177, syd.Location.X, 1e-3)
	require.InDelta(t, -33.946, syd.Location.Y, 1e-3)
}

func TestAirportBins(t *testing.T) {
	a := &Airport{ID: 1, Name: "n", IATA: "AAA", ICAO: "BBBB", Location: geo.NewLocation(1, 2), Elevation: 10}
	bins := a.Bins(LocationBin)
	require.Equal(t, as.NewGeoJSONValue(`{"type":"Point","coordinates":[1,2]}`), bins[LocationBin])
	require.Equal(t, "AAA", bins["IATA"])
	require.Equal(t, int64(10), bins["elevation"])
	require.Len(t, bins, 9)
}

func TestReadAirportsErrors(t *testing.T) {
	_, err := ReadAirports(strings.NewReader(`1,"a","b","c","D","E",1,2`))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "line 1")

	_, err = ReadAirports(strings.NewReader(`x,"a","b","c","D","E",1,2,3,4,"U","tz"`))
	require.NotNil(t, err)

	airports, err := ReadAirports(strings.NewReader(""))
	require.Nil(t, err)
	require.Empty(t, airports)
}

func TestReadCountry(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", CountriesDir, "ZWE.json"))
	require.Nil(t, err)
	defer f.Close()

	country, err := ReadCountry(f)
	require.Nil(t, err)
	require.Equal(t, "ZWE", country.ID)
	require.Equal(t, "Zimbabwe", country.Name)
	require.Equal(t, RegionCountry, country.Type)
	require.True(t, strings.HasPrefix(country.Geometry, `{"type":"Polygon"`))
}

func TestReadCountryErrors(t *testing.T) {
	_, err := ReadCountry(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	require.NotNil(t, err)
	_, err = ReadCountry(strings.NewReader(`{"type":"FeatureCollection"}`))
	require.NotNil(t, err)
	_, err = ReadCountry(strings.NewReader(`{`))
	require.NotNil(t, err)
	_, err = ReadCountry(strings.NewReader(`{"features":[{"id":"X","properties":{"name":"x"}}]}`))
	require.NotNil(t, err)
}

func TestReadCities(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", CitiesFile))
	require.Nil(t, err)
	defer f.Close()

	cities, err := ReadCities(f)
	require.Nil(t, err)
	require.Len(t, cities, 4)
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		require.Equal(t, RegionCity, c.Type)
		require.Empty(t, c.ID)
		require.NotEmpty(t, c.Geometry)
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"SYDNEY", "LONDON", "LONDON", "TORSHAVN"}, names)

	_, err = ReadCities(strings.NewReader(`{"features":[{"properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`))
	require.NotNil(t, err)
}

func TestLoaderLoadAll(t *testing.T) {
	cfg := testutil.ClusterConfig(t)
	d, err := db.Open(context.Background(), cfg)
	require.Nil(t, err)
	defer d.Close()
	ctx := context.Background()

	out := &bytes.Buffer{}
	l := NewLoader(d, "testdata", 100, out)
	_, err = l.LoadAll(ctx)
	require.Nil(t, err)

	for set, probe := range map[string]string{AirportSet: airportProbe, RegionSet: countryProbe} {
		key, err := d.Key(set, probe)
		require.Nil(t, err)
		ok, err := d.Exists(ctx, key)
		require.Nil(t, err)
		require.True(t, ok, "%s/%s", set, probe)
	}

	// A second load finds the probes and writes nothing.
	loaded, err := l.LoadAll(ctx)
	require.Nil(t, err)
	require.Equal(t, Loaded{}, loaded)
}

func TestLoaderMissingFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(nil, dir, 0, ioutil.Discard)

	_, err := l.open(AirportsFile)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), filepath.Join(dir, AirportsFile))

	_, err = l.countryFiles()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), filepath.Join(dir, CountriesDir))

	require.Nil(t, os.Mkdir(filepath.Join(dir, CountriesDir), 0755))
	require.Nil(t, os.WriteFile(filepath.Join(dir, CountriesDir, "NOR.json"), []byte("{}"), 0644))
	require.Nil(t, os.WriteFile(filepath.Join(dir, CountriesDir, "README"), []byte("x"), 0644))
	paths, err := l.countryFiles()
	require.Nil(t, err)
	require.Equal(t, []string{filepath.Join(dir, CountriesDir, "NOR.json")}, paths)
}

func TestFixturePolicy(t *testing.T) {
	base := as.NewWritePolicy(0, 300)
	base.SendKey = true
	p := fixturePolicy(base)
	require.Equal(t, uint32(fixtureExpiration), p.Expiration)
	require.True(t, p.SendKey)
}

// mapEntries reads a map bin whether the client returned it as a map or as
// ordered pairs.
func mapEntries(v interface{}) map[interface{}]interface{} {
	switch m := v.(type) {
	case map[interface{}]interface{}:
		return m
	case []as.MapPair:
		out := make(map[interface{}]interface{}, len(m))
		for _, p := range m {
			out[p.Key] = p.Value
		}
		return out
	}
	return nil
}

func TestLoaderCities(t *testing.T) {
	cfg := testutil.ClusterConfig(t)
	d, err := db.Open(context.Background(), cfg)
	require.Nil(t, err)
	defer d.Close()
	ctx := context.Background()

	// Start from an empty name index so the city numbering is known.
	for _, name := range []string{"SYDNEY", "LONDON", "TORSHAVN"} {
		key, err := d.Key(NameIndexSet, name)
		require.Nil(t, err)
		_, err = d.Delete(ctx, key)
		require.Nil(t, err)
	}
	cityKey, err := d.Key(RegionSet, cityProbe)
	require.Nil(t, err)
	_, err = d.Delete(ctx, cityKey)
	require.Nil(t, err)

	n, err := NewLoader(d, "testdata", 0, ioutil.Discard).LoadCities(ctx)
	require.Nil(t, err)
	require.Equal(t, 4, n)

	digests := make(map[string][]byte)
	for _, id := range []string{"SYDNEY:1", "LONDON:1", "LONDON:2", "TORSHAVN:1"} {
		key, err := d.Key(RegionSet, id)
		require.Nil(t, err)
		rec, err := d.Get(ctx, key)
		require.Nil(t, err)
		require.NotNil(t, rec, id)
		require.Equal(t, RegionCity, rec.Bins["type"])
		digests[id] = key.Digest()
	}

	indexKey, err := d.Key(NameIndexSet, "LONDON")
	require.Nil(t, err)
	rec, err := d.Get(ctx, indexKey)
	require.Nil(t, err)
	require.NotNil(t, rec)
	require.Equal(t, 2, rec.Bins[IndexCounterBin])
	ids := mapEntries(rec.Bins[IndexMapBin])
	require.NotNil(t, ids, "%T", rec.Bins[IndexMapBin])
	require.Len(t, ids, 2)
	require.Equal(t, digests["LONDON:1"], ids["LONDON:1"])
	require.Equal(t, digests["LONDON:2"], ids["LONDON:2"])
}

func TestCounterValue(t *testing.T) {
	n, ok := counterValue(3)
	require.True(t, ok)
	require.Equal(t, 3, n)

	n, ok = counterValue(as.OpResults{nil, 4})
	require.True(t, ok)
	require.Equal(t, 4, n)

	_, ok = counterValue(as.OpResults{})
	require.False(t, ok)
	_, ok = counterValue("3")
	require.False(t, ok)
}
