package exercise

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	as "github.com/aerospike/aerospike-client-go/v7"

	"github.com/aerospike-workshop/exercises/config"
	"github.com/aerospike-workshop/exercises/pkg/db"
	"github.com/aerospike-workshop/exercises/pkg/measurement"
	"github.com/aerospike-workshop/exercises/pkg/record"
	"github.com/aerospike-workshop/exercises/pkg/util"
)

// Exercise is one workshop program.
type Exercise interface {
	// Name is the command the exercise is run with.
	Name() string
	// Title is shown in the banner printed before the exercise runs.
	Title() string
	Run(ctx context.Context, s *Session) error
}

var (
	mu        sync.RWMutex
	exercises = make(map[string]Exercise)
)

// Register makes an exercise available by name. It panics on a duplicate.
func Register(e Exercise) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := exercises[e.Name()]; ok {
		panic(fmt.Sprintf("exercise %s is already registered", e.Name()))
	}
	exercises[e.Name()] = e
}

// Get returns the exercise registered under name, or nil.
func Get(name string) Exercise {
	mu.RLock()
	defer mu.RUnlock()
	return exercises[name]
}

// Names returns the registered exercise names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(exercises))
	for name := range exercises {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Banner is the line printed before an exercise runs.
func Banner(e Exercise) string {
	return fmt.Sprintf("***** %s in Aerospike *****", e.Title())
}

// Session is what an exercise runs against: a connected database, the
// config it was opened with, the writer results are printed to and the
// latency measurer every call is recorded in.
type Session struct {
	DB      *db.DB
	Config  *config.Config
	Out     io.Writer
	Measure *measurement.Measurer
}

// NewSession creates a session printing to out.
func NewSession(d *db.DB, cfg *config.Config, out io.Writer) *Session {
	return &Session{
		DB:      d,
		Config:  cfg,
		Out:     out,
		Measure: measurement.New(),
	}
}

// Operation names used in measurements.
const (
	opPut     = "put"
	opGet     = "get"
	opOperate = "operate"
	opQuery   = "query"
	opIndex   = "index"
	opLoad    = "load"
)

func (s *Session) measure(op string, start time.Time) {
	s.Measure.Measure(op, time.Since(start))
}

// Put writes bins under key with the session write policy.
func (s *Session) Put(ctx context.Context, key *as.Key, bins as.BinMap) error {
	defer s.measure(opPut, time.Now())
	return s.DB.Put(ctx, nil, key, bins)
}

// Get reads the named bins of key.
func (s *Session) Get(ctx context.Context, key *as.Key, binNames ...string) (*as.Record, error) {
	defer s.measure(opGet, time.Now())
	return s.DB.Get(ctx, key, binNames...)
}

// Operate runs ops on key in one round trip.
func (s *Session) Operate(ctx context.Context, policy *as.WritePolicy, key *as.Key, ops ...*as.Operation) (*as.Record, error) {
	defer s.measure(opOperate, time.Now())
	return s.DB.Operate(ctx, policy, key, ops...)
}

// EnsureIndex creates the index described by spec if it is missing.
func (s *Session) EnsureIndex(ctx context.Context, spec db.IndexSpec) error {
	defer s.measure(opIndex, time.Now())
	_, err := s.DB.EnsureIndex(ctx, spec)
	return err
}

// QueryAll runs stmt and returns every record it streams back.
func (s *Session) QueryAll(ctx context.Context, stmt *as.Statement) ([]*as.Record, error) {
	defer s.measure(opQuery, time.Now())
	var records []*as.Record
	err := s.DB.Query(ctx, nil, stmt, func(rec *as.Record) error {
		records = append(records, rec)
		return nil
	})
	return records, err
}

// QueryKeys runs stmt and returns the distinct user keys of the matching
// records in sorted order. A record matched through several elements of a
// collection bin is reported once.
func (s *Session) QueryKeys(ctx context.Context, stmt *as.Statement) ([]string, error) {
	records, err := s.QueryAll(ctx, stmt)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(records))
	keys := make([]string, 0, len(records))
	for _, rec := range records {
		k := record.UserKey(rec.Key)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// PrintRecord prints key and rec.
func (s *Session) PrintRecord(key *as.Key, rec *as.Record) {
	record.PrintRecord(s.Out, key, rec)
}

// PrintKeys prints a titled list of user keys in the configured output
// style.
func (s *Session) PrintKeys(title string, keys []string) {
	fmt.Fprintf(s.Out, "\n%s\n", title)
	if s.Config.Output == util.OutputStylePlain {
		for _, k := range keys {
			fmt.Fprintf(s.Out, "\t%s\n", k)
		}
		return
	}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k})
	}
	util.Render(s.Out, s.Config.Output, []string{"Key"}, rows)
}

// PrintSummary prints the latency of every operation the session ran.
func (s *Session) PrintSummary() {
	style := s.Config.Output
	if style == util.OutputStylePlain {
		style = util.OutputStyleTable
	}
	s.Measure.Output(s.Out, style)
}
