package shm

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/stately/adapter"
	"github.com/srediag/stately/api"
	"github.com/srediag/stately/internal/logger"
	internalshm "github.com/srediag/stately/internal/shm"
)

// Region layout: magic uint32 | version uint32 | value int64.
const (
	regionMagic   uint32 = 0x594c5453 // "STLY" little endian
	regionVersion uint32 = 1

	magicOffset   = 0
	versionOffset = 4
	valueOffset   = 8
	regionSize    = 16
)

var (
	_ api.SharedCounter = (*Counter)(nil)

	shmLogger = logger.New("shm", nil)
)

// Counter is an api.Counter stored in a shared memory region. All of its
// operations are atomic across every process mapping the region. A Counter
// must not be used after Close.
type Counter struct {
	name   string
	region *internalshm.MappedRegion
	cell   *int64
	tracer trace.Tracer
	reg    metric.Registration

	closeOnce sync.Once
	closeErr  error
}

// Open creates or opens the counter region described by cfg.
//
// When cfg.Create is set the region must not exist yet; it is initialised to
// cfg.Initial before its header is published, so an opener never sees a
// partly written counter. Opening an existing region checks its header and
// returns ErrBadRegion on mismatch.
func Open(ctx context.Context, cfg *Config) (_ *Counter, err error) {
	if err := VerifyConfig(cfg); err != nil {
		return nil, err
	}
	tracer := cfg.Tracer
	if tracer != nil {
		var span trace.Span
		ctx, span = tracer.Start(ctx, "shm.Open", trace.WithAttributes(
			attribute.String("shm.name", cfg.Name),
			attribute.Bool("shm.create", cfg.Create),
		))
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
	}

	region, err := internalshm.MapRegion(ctx, cfg.mapOptions())
	if err != nil {
		return nil, err
	}
	c, err := bind(cfg, region)
	if err != nil {
		if uerr := internalshm.UnmapRegion(ctx, region); uerr != nil {
			shmLogger.Warnf("unmap %s after failed open: %v", region.Path, uerr)
		}
		if region.Created {
			if rerr := internalshm.RemoveRegion(ctx, cfg.mapOptions()); rerr != nil {
				shmLogger.Warnf("remove %s after failed open: %v", region.Path, rerr)
			}
		}
		return nil, err
	}
	c.tracer = tracer
	if cfg.Meter != nil {
		c.reg, err = adapter.RegisterOTelGauge(cfg.Meter, "stately.shm.counter.value",
			"Current value of a shared memory counter.", c, attribute.String("shm.name", cfg.Name))
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("register gauge: %w", err)
		}
	}
	shmLogger.Infof("opened counter %s created=%v", region.Path, region.Created)
	return c, nil
}

func bind(cfg *Config, region *internalshm.MappedRegion) (*Counter, error) {
	magic, err := internalshm.Uint32At(region.Addr, magicOffset)
	if err != nil {
		return nil, err
	}
	version, err := internalshm.Uint32At(region.Addr, versionOffset)
	if err != nil {
		return nil, err
	}
	cell, err := internalshm.Int64At(region.Addr, valueOffset)
	if err != nil {
		return nil, err
	}
	if region.Created {
		atomic.StoreInt64(cell, cfg.Initial)
		internalshm.AtomicStoreUint32(version, regionVersion)
		internalshm.AtomicStoreUint32(magic, regionMagic)
	} else {
		if m := internalshm.AtomicLoadUint32(magic); m != regionMagic {
			return nil, fmt.Errorf("%w: magic %#x", ErrBadRegion, m)
		}
		if v := internalshm.AtomicLoadUint32(version); v != regionVersion {
			return nil, fmt.Errorf("%w: version %d", ErrBadRegion, v)
		}
	}
	return &Counter{
		name:   cfg.Name,
		region: region,
		cell:   cell,
	}, nil
}

// Name returns the region name.
func (c *Counter) Name() string { return c.name }

func (c *Counter) Increment() { atomic.AddInt64(c.cell, 1) }

func (c *Counter) Decrement() { atomic.AddInt64(c.cell, -1) }

func (c *Counter) AddAndGet(delta int32) int64 { return atomic.AddInt64(c.cell, int64(delta)) }

func (c *Counter) CompareAndSet(expected, new int64) bool {
	return atomic.CompareAndSwapInt64(c.cell, expected, new)
}

func (c *Counter) Get() int64 { return atomic.LoadInt64(c.cell) }

func (c *Counter) Set(v int64) { atomic.StoreInt64(c.cell, v) }

func (c *Counter) String() string { return strconv.FormatInt(c.Get(), 10) }

// Close unmaps the region. The region itself, and its value, persist until
// Remove. Close is idempotent.
func (c *Counter) Close() error {
	c.closeOnce.Do(func() {
		ctx := context.Background()
		if c.tracer != nil {
			var span trace.Span
			ctx, span = c.tracer.Start(ctx, "shm.Close", trace.WithAttributes(attribute.String("shm.name", c.name)))
			defer span.End()
		}
		if c.reg != nil {
			if err := c.reg.Unregister(); err != nil {
				shmLogger.Warnf("unregister gauge for %s: %v", c.name, err)
			}
		}
		c.closeErr = internalshm.UnmapRegion(ctx, c.region)
		c.cell = nil
	})
	return c.closeErr
}

// Remove deletes the region named by cfg. Mappings that are still open keep
// working until they are closed.
func Remove(ctx context.Context, cfg *Config) error {
	if err := VerifyConfig(cfg); err != nil {
		return err
	}
	return internalshm.RemoveRegion(ctx, cfg.mapOptions())
}
