package config

import (
	"strconv"
	"time"

	"github.com/pingcap/errors"
)

// Duration wraps time.Duration so it can be written as "500ms" in TOML.
// A bare integer is read as milliseconds.
type Duration struct {
	time.Duration
}

// NewDuration creates a Duration from time.Duration.
func NewDuration(duration time.Duration) Duration {
	return Duration{Duration: duration}
}

// MarshalText returns the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalText parses a TOML string into a duration.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		d.Duration = time.Duration(ms) * time.Millisecond
		return nil
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return errors.Annotatef(err, "invalid duration %q", s)
	}
	d.Duration = duration
	return nil
}
