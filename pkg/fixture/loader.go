package fixture

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/docker/go-units"
	"github.com/juju/ratelimit"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/aerospike-workshop/exercises/pkg/db"
	"github.com/aerospike-workshop/exercises/pkg/util"
)

// Sets and bins the geo fixtures are stored in.
const (
	AirportSet   = "airport"
	RegionSet    = "region"
	NameIndexSet = "name-index"

	LocationBin = "geo-location"
	RegionBin   = "geo-region"

	IndexCounterBin = "index-counter"
	IndexMapBin     = "index-bin"
)

// Indexes are the geo indexes the airport and region queries run against.
var Indexes = []db.IndexSpec{
	{Set: AirportSet, Name: "geoLocation", Bin: LocationBin, Type: as.GEO2DSPHERE, Collection: as.ICT_DEFAULT},
	{Set: RegionSet, Name: "geoRegion", Bin: RegionBin, Type: as.GEO2DSPHERE, Collection: as.ICT_DEFAULT},
}

// Files and probe keys. A data set counts as loaded when its probe key
// exists.
const (
	AirportsFile = "airports.csv"
	CountriesDir = "countries"
	CitiesFile   = "cities.geo.json"
	countryExt   = ".json"
	airportProbe = "SYD:YSSY"
	countryProbe = "ZWE"
	cityProbe    = "TORSHAVN:1"
)

// fixtureExpiration is the TTL of the sample data records, in seconds.
const fixtureExpiration = 600

// Loaded counts the records written by a load.
type Loaded struct {
	Airports  int
	Countries int
	Cities    int
}

// Loader writes the sample data found in a data directory. A data set is
// skipped when its probe key already exists.
type Loader struct {
	db     *db.DB
	dir    string
	out    io.Writer
	bucket *ratelimit.Bucket
}

// NewLoader creates a loader reading from dir. rate limits the number of
// writes per second, 0 means unlimited.
func NewLoader(d *db.DB, dir string, rate int64, out io.Writer) *Loader {
	l := &Loader{db: d, dir: dir, out: out}
	if rate > 0 {
		l.bucket = ratelimit.NewBucketWithRate(float64(rate), rate)
	}
	return l
}

// fixturePolicy is base with the fixture expiration.
func fixturePolicy(base *as.WritePolicy) *as.WritePolicy {
	base.Expiration = fixtureExpiration
	return base
}

func (l *Loader) writePolicy() *as.WritePolicy {
	return fixturePolicy(l.db.WritePolicy())
}

func (l *Loader) wait(ctx context.Context) error {
	if l.bucket != nil {
		l.bucket.Wait(1)
	}
	return ctx.Err()
}

func (l *Loader) exists(ctx context.Context, set, probe string) (bool, error) {
	key, err := l.db.Key(set, probe)
	if err != nil {
		return false, err
	}
	return l.db.Exists(ctx, key)
}

func (l *Loader) open(name string) (*os.File, error) {
	path := filepath.Join(l.dir, name)
	if !util.FileExists(path) {
		return nil, errors.Errorf("data file %s not found", path)
	}
	size, err := util.GetFileSize(path)
	if err != nil {
		return nil, err
	}
	log.Info("reading data file", zap.String("path", path), zap.String("size", units.HumanSize(float64(size))))
	f, err := os.Open(path)
	return f, errors.Trace(err)
}

// LoadAll loads airports, countries and cities.
func (l *Loader) LoadAll(ctx context.Context) (Loaded, error) {
	var (
		loaded Loaded
		err    error
	)
	if loaded.Airports, err = l.LoadAirports(ctx); err != nil {
		return loaded, err
	}
	if loaded.Countries, err = l.LoadCountries(ctx); err != nil {
		return loaded, err
	}
	if loaded.Cities, err = l.LoadCities(ctx); err != nil {
		return loaded, err
	}
	return loaded, nil
}

// LoadAirports stores every airport of airports.csv keyed by IATA:ICAO.
func (l *Loader) LoadAirports(ctx context.Context) (int, error) {
	if ok, err := l.exists(ctx, AirportSet, airportProbe); err != nil || ok {
		return 0, err
	}
	f, err := l.open(AirportsFile)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	airports, err := ReadAirports(f)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, a := range airports {
		if err := l.wait(ctx); err != nil {
			return count, err
		}
		key, err := l.db.Key(AirportSet, a.Key())
		if err != nil {
			return count, err
		}
		if err := l.db.Put(ctx, l.writePolicy(), key, a.Bins(LocationBin)); err != nil {
			return count, err
		}
		count++
	}
	fmt.Fprintf(l.out, "Loaded: %d airports\n", count)
	return count, nil
}

// LoadCountries stores the outline of every countries/*.json file keyed by
// its feature id.
func (l *Loader) LoadCountries(ctx context.Context) (int, error) {
	if ok, err := l.exists(ctx, RegionSet, countryProbe); err != nil || ok {
		return 0, err
	}
	paths, err := l.countryFiles()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, path := range paths {
		country, err := l.readCountry(path)
		if err != nil {
			return count, err
		}
		if err := l.wait(ctx); err != nil {
			return count, err
		}
		key, err := l.db.Key(RegionSet, country.ID)
		if err != nil {
			return count, err
		}
		if err := l.db.Put(ctx, l.writePolicy(), key, country.Bins(RegionBin)); err != nil {
			return count, err
		}
		count++
	}
	fmt.Fprintf(l.out, "Loaded: %d countries\n", count)
	return count, nil
}

func (l *Loader) countryFiles() ([]string, error) {
	dir := filepath.Join(l.dir, CountriesDir)
	if !util.DirExists(dir) {
		return nil, errors.Errorf("data directory %s not found", dir)
	}
	return util.ListFiles(dir, countryExt)
}

func (l *Loader) readCountry(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	country, err := ReadCountry(f)
	return country, errors.Annotatef(err, "country %s", path)
}

// counterValue reads the integer a counter bin holds after an increment.
// When the server answers every operation the last result is the read.
func counterValue(v interface{}) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case as.OpResults:
		if len(v) > 0 {
			return counterValue(v[len(v)-1])
		}
	}
	return 0, false
}

// LoadCities stores every city of cities.geo.json. Cities share names, so
// each is keyed <name>:<n> where n comes from a per-name counter in the
// name-index set. The name-index record also maps every id to the digest
// of its region record.
func (l *Loader) LoadCities(ctx context.Context) (int, error) {
	if ok, err := l.exists(ctx, RegionSet, cityProbe); err != nil || ok {
		return 0, err
	}
	f, err := l.open(CitiesFile)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	cities, err := ReadCities(f)
	if err != nil {
		return 0, err
	}

	mapPolicy := as.NewMapPolicy(as.MapOrder.KEY_ORDERED, as.MapWriteMode.UPDATE)
	count := 0
	for _, city := range cities {
		if err := l.wait(ctx); err != nil {
			return count, err
		}
		indexKey, err := l.db.Key(NameIndexSet, city.Name)
		if err != nil {
			return count, err
		}
		rec, err := l.db.Operate(ctx, l.writePolicy(), indexKey,
			as.AddOp(as.NewBin(IndexCounterBin, 1)),
			as.GetBinOp(IndexCounterBin))
		if err != nil {
			return count, err
		}
		n, ok := counterValue(rec.Bins[IndexCounterBin])
		if !ok {
			return count, errors.Errorf("unexpected %s value %v for %s", IndexCounterBin, rec.Bins[IndexCounterBin], city.Name)
		}
		city.ID = fmt.Sprintf("%s:%d", city.Name, n)

		recordKey, err := l.db.Key(RegionSet, city.ID)
		if err != nil {
			return count, err
		}
		if err := l.db.Put(ctx, l.writePolicy(), recordKey, city.Bins(RegionBin)); err != nil {
			return count, err
		}
		if _, err := l.db.Operate(ctx, l.writePolicy(), indexKey,
			as.MapPutOp(mapPolicy, IndexMapBin, city.ID, recordKey.Digest())); err != nil {
			return count, err
		}
		count++
	}
	fmt.Fprintf(l.out, "Loaded: %d cities\n", count)
	return count, nil
}
