package testutil

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/aerospike-workshop/exercises/config"
)

const (
	envHost = "AEROSPIKE_HOST"
	envPort = "AEROSPIKE_PORT"
	envNs   = "AEROSPIKE_NAMESPACE"
)

// ClusterConfig returns a config pointing at the cluster named by the
// AEROSPIKE_HOST environment variable. Tests that need a live server are
// skipped when it is not set.
func ClusterConfig(t *testing.T) *config.Config {
	t.Helper()
	host := os.Getenv(envHost)
	if host == "" {
		t.Skipf("%s not set, skipping test against a live cluster", envHost)
	}
	cfg := config.NewDefaultConfig()
	cfg.Host = host
	if p := os.Getenv(envPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			t.Fatalf("invalid %s %q: %v", envPort, p, err)
		}
		cfg.Port = port
	}
	if ns := os.Getenv(envNs); ns != "" {
		cfg.Namespace = ns
	}
	cfg.Expiration = config.NewDuration(time.Minute)
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}
