// Package shm provides an atomic counter whose cell lives in shared memory,
// so that separate processes mapping the same region share one counter.
//
// This package is instrumented with OpenTelemetry metrics and tracing (OTel Go SDK v1.30.0).
//
// Example usage:
//
//	cfg := shm.DefaultConfig()
//	cfg.Name = "requests"
//	cfg.Create = true
//	c, err := shm.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//	c.Increment()
//
// Platform-specific helpers are in internal/shm. Only Linux has a backend;
// Open returns ErrUnsupported elsewhere.
package shm
