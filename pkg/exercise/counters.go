package exercise

import (
	"context"

	as "github.com/aerospike/aerospike-client-go/v7"
)

const (
	countersSet = "counters"
	catCountBin = "cat-counter"
	dogCountBin = "dog-counter"
)

type counters struct{}

func init() {
	Register(counters{})
}

func (counters) Name() string  { return "counters" }
func (counters) Title() string { return "Counters" }

// Run increments one counter bin, then two bins of another record in a
// single operate, then decrements one of them. Every operate also reads
// the record back.
func (counters) Run(ctx context.Context, s *Session) error {
	key, err := s.DB.Key(countersSet, "a-record-with-one-counter")
	if err != nil {
		return err
	}
	rec, err := s.Operate(ctx, nil, key,
		as.AddOp(as.NewBin(catCountBin, 1)),
		as.GetOp(),
	)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	key, err = s.DB.Key(countersSet, "a-record-with-two-counters")
	if err != nil {
		return err
	}
	rec, err = s.Operate(ctx, nil, key,
		as.AddOp(as.NewBin(catCountBin, 3)),
		as.AddOp(as.NewBin(dogCountBin, 2)),
		as.GetOp(),
	)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)

	rec, err = s.Operate(ctx, nil, key,
		as.AddOp(as.NewBin(catCountBin, -1)),
		as.GetOp(),
	)
	if err != nil {
		return err
	}
	s.PrintRecord(key, rec)
	return nil
}
