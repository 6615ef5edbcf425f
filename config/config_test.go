package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/magiconair/properties"
	"github.com/stretchr/testify/require"

	"github.com/aerospike-workshop/exercises/pkg/prop"
	"github.com/aerospike-workshop/exercises/pkg/util"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "workshop.toml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.Nil(t, cfg.Validate())
	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "test", cfg.Namespace)
	require.Equal(t, 500*time.Millisecond, cfg.Timeout.Duration)
	require.Equal(t, uint32(300), cfg.ExpirationSeconds())
	require.Equal(t, util.OutputStylePlain, cfg.Output)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
host = "10.0.0.7"
namespace = "bar"
timeout = "2s"
expiration = 60000
load-rate = 50

[log]
level = "debug"
`)
	cfg := NewDefaultConfig()
	require.Nil(t, cfg.LoadFile(path))
	require.Equal(t, "10.0.0.7", cfg.Host)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "bar", cfg.Namespace)
	require.Equal(t, 2*time.Second, cfg.Timeout.Duration)
	require.Equal(t, uint32(60), cfg.ExpirationSeconds())
	require.Equal(t, int64(50), cfg.LoadRate)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NotNil(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.toml")))

	err := NewDefaultConfig().LoadFile(writeConfig(t, "hots = \"x\"\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "hots")

	require.NotNil(t, NewDefaultConfig().LoadFile(writeConfig(t, "port = 70000\n")))
	require.NotNil(t, NewDefaultConfig().LoadFile(writeConfig(t, "timeout = \"soon\"\n")))
}

func TestApplyProperties(t *testing.T) {
	p := properties.NewProperties()
	p.Set(prop.Host, "db.local")
	p.Set(prop.Port, "3100")
	p.Set(prop.Expiration, "10m")
	p.Set(prop.Timeout, "250")
	p.Set(prop.OutputStyle, util.OutputStyleTable)
	p.Set(prop.LogFile, "workshop.log")

	cfg := NewDefaultConfig()
	require.Nil(t, cfg.ApplyProperties(p))
	require.Equal(t, "db.local", cfg.Host)
	require.Equal(t, 3100, cfg.Port)
	require.Equal(t, uint32(600), cfg.ExpirationSeconds())
	require.Equal(t, 250*time.Millisecond, cfg.Timeout.Duration)
	require.Equal(t, util.OutputStyleTable, cfg.Output)
	require.Equal(t, "workshop.log", cfg.Log.File.Filename)

	require.Nil(t, cfg.ApplyProperties(nil))

	p = properties.NewProperties()
	p.Set(prop.Timeout, "later")
	require.NotNil(t, NewDefaultConfig().ApplyProperties(p))

	p = properties.NewProperties()
	p.Set(prop.OutputStyle, "xml")
	require.NotNil(t, NewDefaultConfig().ApplyProperties(p))
}

func TestValidate(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Host = " " },
		func(c *Config) { c.Port = -1 },
		func(c *Config) { c.Namespace = "" },
		func(c *Config) { c.Expiration = NewDuration(-time.Second) },
		func(c *Config) { c.LoadRate = -5 },
		func(c *Config) { c.ConnectRetries = -1 },
	} {
		cfg := NewDefaultConfig()
		mutate(cfg)
		require.NotNil(t, cfg.Validate())
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	require.Nil(t, d.UnmarshalText([]byte("1500")))
	require.Equal(t, 1500*time.Millisecond, d.Duration)
	require.Nil(t, d.UnmarshalText([]byte("1m30s")))
	require.Equal(t, 90*time.Second, d.Duration)
	require.NotNil(t, d.UnmarshalText([]byte("1x")))

	text, err := NewDuration(time.Second).MarshalText()
	require.Nil(t, err)
	require.Equal(t, "1s", string(text))
}
