package fixture

import (
	"io"
	"io/ioutil"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/pingcap/errors"
	"github.com/tidwall/gjson"
)

// Region types.
const (
	RegionCountry = "country"
	RegionCity    = "city"
)

// Region is a named area whose outline is a GeoJSON geometry.
type Region struct {
	ID       string
	Name     string
	Type     string
	Geometry string
}

// Bins returns the record bins of the region, with its geometry written to
// regionBin.
func (r *Region) Bins(regionBin string) as.BinMap {
	return as.BinMap{
		"id":      r.ID,
		"name":    r.Name,
		"type":    r.Type,
		regionBin: as.NewGeoJSONValue(r.Geometry),
	}
}

func readFeatures(r io.Reader) ([]gjson.Result, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid GeoJSON document")
	}
	features := gjson.GetBytes(data, "features")
	if !features.IsArray() {
		return nil, errors.New("GeoJSON document has no features array")
	}
	return features.Array(), nil
}

// ReadCountry reads a country FeatureCollection. Only the first feature is
// used: its id, properties.name and geometry.
func ReadCountry(r io.Reader) (*Region, error) {
	features, err := readFeatures(r)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, errors.New("country has no features")
	}
	f := features[0]
	country := &Region{
		ID:       f.Get("id").String(),
		Name:     f.Get("properties.name").String(),
		Type:     RegionCountry,
		Geometry: f.Get("geometry").Raw,
	}
	if country.ID == "" {
		return nil, errors.New("country feature has no id")
	}
	if country.Geometry == "" {
		return nil, errors.Errorf("country %s has no geometry", country.ID)
	}
	return country, nil
}

// ReadCities reads a FeatureCollection of cities named by properties.NAME.
// The returned regions have no ID: the loader numbers cities sharing a name.
func ReadCities(r io.Reader) ([]*Region, error) {
	features, err := readFeatures(r)
	if err != nil {
		return nil, err
	}
	cities := make([]*Region, 0, len(features))
	for i, f := range features {
		city := &Region{
			Name:     f.Get("properties.NAME").String(),
			Type:     RegionCity,
			Geometry: f.Get("geometry").Raw,
		}
		if city.Name == "" {
			return nil, errors.Errorf("city feature %d has no NAME", i)
		}
		if city.Geometry == "" {
			return nil, errors.Errorf("city %s has no geometry", city.Name)
		}
		cities = append(cities, city)
	}
	return cities, nil
}
