package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/srediag/stately/adapter"
	"github.com/srediag/stately/api"
	"github.com/srediag/stately/internal/coop"
	"github.com/srediag/stately/pkg/concurrency"
	"github.com/srediag/stately/pkg/shm"
)

var (
	errInvalidConfig = errors.New("invalid stress config")
	// ErrLostUpdates means the final value differs from the sum of deltas.
	ErrLostUpdates = errors.New("final value does not match applied deltas")
)

// Config selects the counter and the load applied to it.
type Config struct {
	Impl     string
	Contexts int
	Ops      int
	Workers  int
	Listen   string
	ShmDir   string
	ShmName  string
}

func defaultConfig() *Config {
	return &Config{
		Impl:     "atomic",
		Contexts: 100,
		Ops:      1000,
		ShmDir:   shm.DefaultConfig().Dir,
		ShmName:  "stately-stress",
	}
}

// Validate checks c.
func (c *Config) Validate() error {
	switch c.Impl {
	case "atomic", "mutex", "loop", "shm", "coop":
	default:
		return fmt.Errorf("%w: unknown impl %q", errInvalidConfig, c.Impl)
	}
	if c.Contexts <= 0 || c.Ops <= 0 || c.Workers <= 0 {
		return fmt.Errorf("%w: contexts, ops and workers must be positive", errInvalidConfig)
	}
	return nil
}

// Result describes a completed run.
type Result struct {
	Cell    string
	Final   int64
	Elapsed time.Duration
}

// opDelta is the change operation k of a context applies.
func opDelta(k int) int64 {
	switch k % 4 {
	case 0:
		return 1
	case 1:
		return -1
	case 2:
		return 3
	default:
		return 2
	}
}

// apply issues operation k against c, cycling through every operation kind.
func apply(c api.Counter, k int) {
	switch k % 4 {
	case 0:
		c.Increment()
	case 1:
		c.Decrement()
	case 2:
		c.AddAndGet(3)
	default:
		concurrency.Update(c, func(v int64) int64 { return v + 2 })
	}
}

func expected(cfg *Config) int64 {
	var perContext int64
	for k := 0; k < cfg.Ops; k++ {
		perContext += opDelta(k)
	}
	return perContext * int64(cfg.Contexts)
}

func openCounter(ctx context.Context, cfg *Config) (api.Counter, func(), error) {
	switch cfg.Impl {
	case "mutex":
		return concurrency.NewMutexCounter(0), func() {}, nil
	case "loop":
		return concurrency.NewLoopCounter(concurrency.NewAtomicCounter(0)), func() {}, nil
	case "shm":
		scfg := shm.DefaultConfig()
		scfg.Dir = cfg.ShmDir
		scfg.Name = cfg.ShmName
		scfg.Create = true
		scfg.Meter = otel.Meter("stately-stress")
		scfg.Tracer = otel.Tracer("stately-stress")
		c, err := shm.Open(ctx, scfg)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {
			if err := c.Close(); err != nil {
				log.Warnf("close %s: %v", scfg.Name, err)
			}
			if err := shm.Remove(context.Background(), scfg); err != nil {
				log.Warnf("remove %s: %v", scfg.Name, err)
			}
		}, nil
	default:
		return concurrency.NewAtomicCounter(0), func() {}, nil
	}
}

// Run applies cfg.Contexts x cfg.Ops operations to a fresh counter and
// verifies the result.
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	counter, closeCounter, err := openCounter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s counter: %w", cfg.Impl, err)
	}
	defer closeCounter()

	inflight := concurrency.NewAtomicCounter(0)
	if cfg.Listen != "" {
		stop, err := serve(cfg, counter, inflight)
		if err != nil {
			return nil, err
		}
		defer stop()
	}

	start := time.Now()
	if cfg.Impl == "coop" {
		err = runCooperative(cfg, counter)
	} else {
		err = runPool(ctx, cfg, counter, inflight)
	}
	if err != nil {
		return nil, err
	}
	res := &Result{
		Cell:    concurrency.Implementation,
		Final:   counter.Get(),
		Elapsed: time.Since(start),
	}
	if want := expected(cfg); res.Final != want {
		return res, fmt.Errorf("%w: got %d, want %d", ErrLostUpdates, res.Final, want)
	}
	return res, nil
}

func runPool(ctx context.Context, cfg *Config, c api.Counter, inflight api.Counter) error {
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return fmt.Errorf("worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Contexts; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			inflight.Increment()
			defer inflight.Decrement()
			for k := 0; k < cfg.Ops; k++ {
				apply(c, k)
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("submit: %w", err)
		}
	}
	wg.Wait()
	log.Debugf("pool finished, %d workers still running", pool.Running())
	return nil
}

func runCooperative(cfg *Config, c api.Counter) error {
	s := coop.New()
	defer s.Close()
	for i := 0; i < cfg.Contexts; i++ {
		k := 0
		if err := s.Spawn(coop.Repeat(cfg.Ops, func() {
			apply(c, k)
			k++
		})); err != nil {
			return err
		}
	}
	if err := s.Run(); err != nil {
		return err
	}
	log.Debugf("cooperative run took %d turns", s.Turns())
	return nil
}

func serve(cfg *Config, counter, inflight api.Counter) (func(), error) {
	collector := adapter.NewCounterCollector("stately_stress_counter_value", "Counters driven by stately-stress.")
	if err := collector.Add(cfg.Impl, counter); err != nil {
		return nil, err
	}
	if err := collector.Add("inflight", inflight); err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector); err != nil {
		return nil, err
	}

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutines", healthcheck.GoroutineCountCheck(cfg.Workers+1000))
	health.AddReadinessCheck("inflight", adapter.CounterCheck(inflight, 0, int64(cfg.Workers)))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", health)

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("serve: %v", err)
		}
	}()
	log.Infof("serving metrics and health on %s", ln.Addr())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
