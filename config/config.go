package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"

	"github.com/aerospike-workshop/exercises/pkg/prop"
	"github.com/aerospike-workshop/exercises/pkg/util"
)

// Config holds the connection parameters and knobs shared by every exercise.
type Config struct {
	Host      string   `toml:"host" json:"host"`
	Port      int      `toml:"port" json:"port"`
	Namespace string   `toml:"namespace" json:"namespace"`
	Timeout   Duration `toml:"timeout" json:"timeout"`

	// Expiration is the TTL applied to records written by the exercises.
	Expiration Duration `toml:"expiration" json:"expiration"`

	// DataDir holds airports.csv, cities.geo.json and countries/*.json.
	DataDir string `toml:"data-dir" json:"data-dir"`
	// LoadRate caps fixture writes per second, 0 means unlimited.
	LoadRate int64 `toml:"load-rate" json:"load-rate"`
	// ConnectRetries is the number of extra connection attempts.
	ConnectRetries int `toml:"connect-retries" json:"connect-retries"`

	Output string `toml:"output" json:"output"`

	Log log.Config `toml:"log" json:"log"`
}

const (
	defaultHost       = "127.0.0.1"
	defaultPort       = 3000
	defaultNamespace  = "test"
	defaultTimeout    = 500 * time.Millisecond
	defaultExpiration = 300 * time.Second
	defaultDataDir    = "data"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
)

func getLogLevel() (logLevel string) {
	logLevel = defaultLogLevel
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

// NewDefaultConfig returns the configuration every workshop program starts
// from: a single local node and the "test" namespace.
func NewDefaultConfig() *Config {
	return &Config{
		Host:       defaultHost,
		Port:       defaultPort,
		Namespace:  defaultNamespace,
		Timeout:    NewDuration(defaultTimeout),
		Expiration: NewDuration(defaultExpiration),
		DataDir:    defaultDataDir,
		Output:     util.OutputStylePlain,
		Log: log.Config{
			Level:  getLogLevel(),
			Format: defaultLogFormat,
		},
	}
}

// LoadFile overlays the TOML file at path onto c. Unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Annotatef(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Errorf("config %s contains undefined items: %s", path, strings.Join(keys, ", "))
	}
	return c.Adjust()
}

// ApplyProperties overrides fields with the name=value properties given on
// the command line or in property files.
func (c *Config) ApplyProperties(p *properties.Properties) error {
	if p == nil {
		return nil
	}
	c.Host = p.GetString(prop.Host, c.Host)
	c.Port = p.GetInt(prop.Port, c.Port)
	c.Namespace = p.GetString(prop.Namespace, c.Namespace)
	c.DataDir = p.GetString(prop.DataDir, c.DataDir)
	c.LoadRate = p.GetInt64(prop.LoadRate, c.LoadRate)
	c.ConnectRetries = p.GetInt(prop.ConnectRetries, c.ConnectRetries)
	c.Output = p.GetString(prop.OutputStyle, c.Output)
	c.Log.Level = p.GetString(prop.LogLevel, c.Log.Level)
	c.Log.File.Filename = p.GetString(prop.LogFile, c.Log.File.Filename)

	for name, d := range map[string]*Duration{
		prop.Timeout:    &c.Timeout,
		prop.Expiration: &c.Expiration,
	} {
		v, ok := p.Get(name)
		if !ok {
			continue
		}
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return errors.Annotatef(err, "property %s", name)
		}
	}
	return c.Adjust()
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}

func adjustDuration(v *Duration, defValue time.Duration) {
	if v.Duration == 0 {
		v.Duration = defValue
	}
}

// Adjust fills zero values left by a partial config file with defaults.
func (c *Config) Adjust() error {
	adjustString(&c.Host, defaultHost)
	adjustString(&c.Namespace, defaultNamespace)
	adjustString(&c.DataDir, defaultDataDir)
	adjustString(&c.Output, util.OutputStylePlain)
	adjustString(&c.Log.Level, getLogLevel())
	adjustString(&c.Log.Format, defaultLogFormat)
	adjustDuration(&c.Timeout, defaultTimeout)
	adjustDuration(&c.Expiration, defaultExpiration)
	if c.Port == 0 {
		c.Port = defaultPort
	}
	return c.Validate()
}

// Validate checks that the config can be used to open a session.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("namespace must not be empty")
	}
	if c.Timeout.Duration < 0 {
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Expiration.Duration < 0 {
		return errors.Errorf("expiration must not be negative, got %s", c.Expiration)
	}
	if c.LoadRate < 0 {
		return errors.Errorf("load-rate must not be negative, got %d", c.LoadRate)
	}
	if c.ConnectRetries < 0 {
		return errors.Errorf("connect-retries must not be negative, got %d", c.ConnectRetries)
	}
	if !util.IsOutputStyle(c.Output) {
		return errors.Errorf("unknown output style %q", c.Output)
	}
	return nil
}

// ExpirationSeconds is the record TTL in the unit the server expects.
func (c *Config) ExpirationSeconds() uint32 {
	return uint32(c.Expiration.Duration / time.Second)
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{host:%s port:%d ns:%s timeout:%s expiration:%s data-dir:%s}",
		c.Host, c.Port, c.Namespace, c.Timeout, c.Expiration, c.DataDir)
}
