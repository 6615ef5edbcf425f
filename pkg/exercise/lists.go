package exercise

import (
	"context"
	"fmt"
	"math/rand"

	as "github.com/aerospike/aerospike-client-go/v7"

	"github.com/aerospike-workshop/exercises/pkg/db"
)

const (
	listsSet  = "lists"
	listBin   = "list-of-things"
	listIndex = "listBinIndex"

	listRecords = 100
	listLength  = 100
	listSeed    = 300
	listMin     = 250
	listSpread  = 200

	rangeBegin = 300
	rangeEnd   = 350
)

type lists struct{}

func init() {
	Register(lists{})
}

func (lists) Name() string  { return "lists" }
func (lists) Title() string { return "Lists" }

// listValues returns n values in [listMin, listMin+listSpread).
func listValues(r *rand.Rand, n int) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = listMin + r.Int63n(listSpread)
	}
	return values
}

func (lists) Run(ctx context.Context, s *Session) error {
	wp := s.DB.WritePolicy()
	key, err := s.DB.Key(listsSet, "a-record-with-a-list")
	if err != nil {
		return err
	}
	if err = s.Put(ctx, key, as.BinMap{listBin: []int64{234, 921, 877}}); err != nil {
		return err
	}
	rec, err := s.Get(ctx, key, listBin)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	rec, err = s.Operate(ctx, wp, key,
		as.ListAppendOp(listBin, 99),
		as.GetBinOp(listBin),
	)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	if _, err = s.Operate(ctx, wp, key, as.ListAppendOp(listBin, 55, 77)); err != nil {
		return err
	}
	if rec, err = s.Get(ctx, key, listBin); err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	// The bin holds both results: the popped value and the new size.
	rec, err = s.Operate(ctx, wp, key,
		as.ListPopOp(listBin, -1),
		as.ListSizeOp(listBin),
	)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	if err = s.EnsureIndex(ctx, db.IndexSpec{
		Set:        listsSet,
		Name:       listIndex,
		Bin:        listBin,
		Type:       as.NUMERIC,
		Collection: as.ICT_LIST,
	}); err != nil {
		return err
	}

	r := rand.New(rand.NewSource(listSeed))
	for i := 0; i < listRecords; i++ {
		k, err := s.DB.Key(listsSet, fmt.Sprintf("a-record-with-a-list-%d", i))
		if err != nil {
			return err
		}
		if err = s.Put(ctx, k, as.BinMap{listBin: listValues(r, listLength)}); err != nil {
			return err
		}
	}

	stmt := s.DB.NewStatement(listsSet)
	if err = stmt.SetFilter(as.NewContainsRangeFilter(listBin, as.ICT_LIST, rangeBegin, rangeEnd)); err != nil {
		return err
	}
	keys, err := s.QueryKeys(ctx, stmt)
	if err != nil {
		return err
	}
	s.PrintKeys(fmt.Sprintf("Records with values between %d and %d:", rangeBegin, rangeEnd), keys)
	return nil
}
