// Command stately-stress hammers one counter from many concurrent execution
// contexts and checks that no update was lost.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/srediag/stately/internal/logger"
)

var log = logger.New("stately-stress", os.Stderr)

func main() {
	cfg := defaultConfig()
	flag.StringVar(&cfg.Impl, "impl", cfg.Impl, "counter implementation: atomic, mutex, loop, shm or coop")
	flag.IntVar(&cfg.Contexts, "contexts", cfg.Contexts, "number of concurrent execution contexts")
	flag.IntVar(&cfg.Ops, "ops", cfg.Ops, "operations issued by each context")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker pool size (default: logical CPUs)")
	flag.StringVar(&cfg.Listen, "listen", "", "serve /metrics, /live and /ready on this address")
	flag.StringVar(&cfg.ShmDir, "shm-dir", cfg.ShmDir, "directory for the shm implementation")
	flag.StringVar(&cfg.ShmName, "shm-name", cfg.ShmName, "region name for the shm implementation")
	logLevel := flag.Int("log-level", logger.Level(), "log level, 0 (trace) to 5 (silent)")
	flag.Parse()
	logger.SetLevel(*logLevel)

	if cfg.Workers <= 0 {
		n, err := cpu.Counts(true)
		if err != nil || n <= 0 {
			log.Warnf("cannot count CPUs, using 1 worker: %v", err)
			n = 1
		}
		cfg.Workers = n
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("invalid flags: %v", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := Run(ctx, cfg)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	log.Warnf("impl=%s cell=%s contexts=%d ops=%d workers=%d final=%d elapsed=%s",
		cfg.Impl, res.Cell, cfg.Contexts, cfg.Ops, cfg.Workers, res.Final, res.Elapsed)
}
