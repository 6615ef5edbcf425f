package exercise

import (
	"context"
	"fmt"

	as "github.com/aerospike/aerospike-client-go/v7"

	"github.com/aerospike-workshop/exercises/pkg/db"
)

const (
	mapsSet       = "mapss"
	mapBin        = "map-of-things"
	mapKeyIndex   = "mapKeyIndex"
	mapValueIndex = "mapValueIndex"

	mapRecords = 100
	mapEntries = 100
	mapProbe   = "dogs7"
)

type maps struct{}

func init() {
	Register(maps{})
}

func (maps) Name() string  { return "maps" }
func (maps) Title() string { return "Maps" }

// bookingMap is a flat booking row stored as a single map bin.
func bookingMap() map[interface{}]interface{} {
	return map[interface{}]interface{}{
		"ersionsnummer":     1,
		"ieferant":          "B",
		"eisebeginn":        "016-10-11",
		"eiseende":          "016-10-11",
		"bflughafen_Hin":    "AH",
		"nkunfsthafen_Hin":  "CN",
		"luglinie_Hin":      "B",
		"bflugzeit_Hin":     925,
		"nkunftszeit_Hin":   1720,
		"bflugzeit_Rueck":   0,
		"nkunftszeit_Rueck": 0,
		"lugnummer_Hin":     385,
		"aehrung":           "UR",
		"reis":              861.0,
		"nfant_Preis":       126,
		"lter_von_1":        2,
		"lter_bis_1":        11,
		"reis_Kinderstufe1": 61,
		"lter_von_2":        0,
		"lter_bis_2":        0,
		"otelkategorie":     0,
		"eisetypkürzel":     "F",
		"eisetyp_Langtext":  "ur Flug",
	}
}

// mapValues returns the map stored in record i: dogs<j> maps to i*j and
// mice<j> to i+j.
func mapValues(i int) map[interface{}]interface{} {
	m := make(map[interface{}]interface{}, 2*mapEntries)
	for j := 0; j < mapEntries; j++ {
		m[fmt.Sprintf("dogs%d", j)] = i * j
		m[fmt.Sprintf("mice%d", j)] = i + j
	}
	return m
}

func (maps) Run(ctx context.Context, s *Session) error {
	wp := s.DB.WritePolicy()
	key, err := s.DB.Key(mapsSet, "a-record-with-a-map")
	if err != nil {
		return err
	}
	if err = s.Put(ctx, key, as.BinMap{mapBin: bookingMap()}); err != nil {
		return err
	}
	rec, err := s.Get(ctx, key, mapBin)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	mapPolicy := as.NewMapPolicy(as.MapOrder.KEY_ORDERED, as.MapWriteMode.UPDATE)
	if _, err = s.Operate(ctx, wp, key, as.MapPutOp(mapPolicy, mapBin, "cat", 7)); err != nil {
		return err
	}
	if rec, err = s.Get(ctx, key, mapBin); err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	if _, err = s.Operate(ctx, wp, key, as.MapPutItemsOp(mapPolicy, mapBin, map[interface{}]interface{}{
		"dogs": 1,
		"mice": "B",
	})); err != nil {
		return err
	}
	if rec, err = s.Get(ctx, key, mapBin); err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	rec, err = s.Operate(ctx, wp, key,
		as.MapRemoveByKeyOp(mapBin, "dogs", as.MapReturnType.KEY),
		as.MapSizeOp(mapBin),
	)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	for i := 0; i < mapRecords; i++ {
		k, err := s.DB.Key(mapsSet, fmt.Sprintf("a-record-with-a-map-%d", i))
		if err != nil {
			return err
		}
		if err = s.Put(ctx, k, as.BinMap{mapBin: mapValues(i)}); err != nil {
			return err
		}
	}

	for _, spec := range []db.IndexSpec{
		{Set: mapsSet, Name: mapKeyIndex, Bin: mapBin, Type: as.STRING, Collection: as.ICT_MAPKEYS},
		{Set: mapsSet, Name: mapValueIndex, Bin: mapBin, Type: as.NUMERIC, Collection: as.ICT_MAPVALUES},
	} {
		if err = s.EnsureIndex(ctx, spec); err != nil {
			return err
		}
	}

	stmt := s.DB.NewStatement(mapsSet)
	if err = stmt.SetFilter(as.NewContainsRangeFilter(mapBin, as.ICT_MAPVALUES, rangeBegin, rangeEnd)); err != nil {
		return err
	}
	keys, err := s.QueryKeys(ctx, stmt)
	if err != nil {
		return err
	}
	s.PrintKeys(fmt.Sprintf("Records with map values between %d and %d:", rangeBegin, rangeEnd), keys)

	stmt = s.DB.NewStatement(mapsSet)
	if err = stmt.SetFilter(as.NewContainsFilter(mapBin, as.ICT_MAPKEYS, mapProbe)); err != nil {
		return err
	}
	if keys, err = s.QueryKeys(ctx, stmt); err != nil {
		return err
	}
	s.PrintKeys(fmt.Sprintf("Records with map keys equal to %s:", mapProbe), keys)
	return nil
}
