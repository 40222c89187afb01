package shm

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	internalshm "github.com/srediag/stately/internal/shm"
)

// Config holds counter creation parameters.
type Config struct {
	Name    string // region name, a single path element
	Dir     string // directory holding the region; defaults to /dev/shm
	Create  bool   // create the region instead of opening an existing one
	Initial int64  // value stored when the region is created
	Meter   metric.Meter
	Tracer  trace.Tracer
}

// DefaultConfig returns a Config opening a region under /dev/shm.
func DefaultConfig() *Config {
	return &Config{
		Dir: internalshm.DefaultDir,
	}
}

// VerifyConfig checks cfg before any region is touched.
func VerifyConfig(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if cfg.Name == "" || cfg.Name == "." || cfg.Name == ".." || strings.ContainsRune(cfg.Name, '/') {
		return fmt.Errorf("%w: %q", ErrInvalidName, cfg.Name)
	}
	return nil
}

func (c *Config) mapOptions() internalshm.MapOptions {
	return internalshm.MapOptions{
		Name:   c.Name,
		Dir:    c.Dir,
		Size:   regionSize,
		Create: c.Create,
	}
}
