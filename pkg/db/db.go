package db

import (
	"context"
	"time"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aerospike-client-go/v7/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/aerospike-workshop/exercises/config"
)

// DB is a connected session bound to one namespace.
type DB struct {
	client      *as.Client
	ns          string
	writePolicy *as.WritePolicy
}

// Open connects to the seed node in cfg. When cfg.ConnectRetries is positive
// failed attempts are retried with exponential backoff.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	policy := as.NewClientPolicy()
	policy.Timeout = cfg.Timeout.Duration

	var client *as.Client
	connect := func() error {
		c, err := as.NewClientWithPolicy(policy, cfg.Host, cfg.Port)
		if err != nil {
			if c != nil {
				c.Close()
			}
			return err
		}
		if !c.IsConnected() {
			c.Close()
			return errors.Errorf("no connection to %s:%d", cfg.Host, cfg.Port)
		}
		client = c
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.ConnectRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn("connect failed, retrying",
			zap.String("host", cfg.Host), zap.Int("port", cfg.Port),
			zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(connect, b, notify); err != nil {
		return nil, errors.Annotatef(err, "connect %s:%d", cfg.Host, cfg.Port)
	}
	log.Info("connected", zap.String("host", cfg.Host), zap.Int("port", cfg.Port), zap.String("namespace", cfg.Namespace))

	writePolicy := as.NewWritePolicy(0, cfg.ExpirationSeconds())
	writePolicy.SendKey = true
	return &DB{
		client:      client,
		ns:          cfg.Namespace,
		writePolicy: writePolicy,
	}, nil
}

// Close closes the client connection.
func (db *DB) Close() {
	db.client.Close()
}

// Namespace returns the namespace every key of the session lives in.
func (db *DB) Namespace() string {
	return db.ns
}

// Client exposes the underlying client for calls the session doesn't wrap.
func (db *DB) Client() *as.Client {
	return db.client
}

// WritePolicy returns a copy of the session write policy: the user key is
// stored with the record and the configured expiration applies.
func (db *DB) WritePolicy() *as.WritePolicy {
	p := *db.writePolicy
	return &p
}

// Key builds a key in the session namespace.
func (db *DB) Key(set string, userKey interface{}) (*as.Key, error) {
	key, err := as.NewKey(db.ns, set, userKey)
	if err != nil {
		return nil, errors.Annotatef(err, "key %s/%s/%v", db.ns, set, userKey)
	}
	return key, nil
}

// Put writes bins under key. A nil policy uses the session write policy.
func (db *DB) Put(ctx context.Context, policy *as.WritePolicy, key *as.Key, bins as.BinMap) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if policy == nil {
		policy = db.writePolicy
	}
	if err := db.client.Put(policy, key, bins); err != nil {
		return errors.Annotatef(err, "put %v", key)
	}
	return nil
}

// Get reads the named bins of key, or all bins when none are named. A missing
// record is returned as nil without error.
func (db *DB) Get(ctx context.Context, key *as.Key, binNames ...string) (*as.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := db.client.Get(nil, key, binNames...)
	if err != nil {
		if err.Matches(types.KEY_NOT_FOUND_ERROR) {
			return nil, nil
		}
		return nil, errors.Annotatef(err, "get %v", key)
	}
	return rec, nil
}

// Exists reports whether a record is stored under key.
func (db *DB) Exists(ctx context.Context, key *as.Key) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := db.client.Exists(nil, key)
	if err != nil {
		return false, errors.Annotatef(err, "exists %v", key)
	}
	return ok, nil
}

// Operate executes ops on key atomically in a single round trip. A nil
// policy uses the client default, which doesn't store the user key.
func (db *DB) Operate(ctx context.Context, policy *as.WritePolicy, key *as.Key, ops ...*as.Operation) (*as.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := db.client.Operate(policy, key, ops...)
	if err != nil {
		return nil, errors.Annotatef(err, "operate %v", key)
	}
	return rec, nil
}

// Delete removes the record under key and reports whether it existed.
func (db *DB) Delete(ctx context.Context, key *as.Key) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	existed, err := db.client.Delete(db.writePolicy, key)
	if err != nil {
		return false, errors.Annotatef(err, "delete %v", key)
	}
	return existed, nil
}

// NewStatement returns a statement over set in the session namespace.
func (db *DB) NewStatement(set string, binNames ...string) *as.Statement {
	return as.NewStatement(db.ns, set, binNames...)
}

// Query executes stmt and calls fn for every record of the result stream.
// The recordset is closed on return, including when ctx is cancelled or fn
// fails.
func (db *DB) Query(ctx context.Context, policy *as.QueryPolicy, stmt *as.Statement, fn func(*as.Record) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rs, err := db.client.Query(policy, stmt)
	if err != nil {
		return errors.Annotatef(err, "query %s/%s", stmt.Namespace, stmt.SetName)
	}
	defer rs.Close()

	results := rs.Results()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return nil
			}
			if res.Err != nil {
				return errors.Annotatef(res.Err, "query %s/%s", stmt.Namespace, stmt.SetName)
			}
			if err := fn(res.Record); err != nil {
				return err
			}
		}
	}
}

// Info sends an info command to the first node of the cluster and returns
// the response value.
func (db *DB) Info(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	nodes := db.client.GetNodes()
	if len(nodes) == 0 {
		return "", errors.New("no nodes in cluster")
	}
	resp, err := nodes[0].RequestInfo(as.NewInfoPolicy(), command)
	if err != nil {
		return "", errors.Annotatef(err, "info %s", command)
	}
	return resp[command], nil
}
