package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/stately/api"
)

// CounterCheck returns a health check that fails while c is outside
// [min, max]. It suits gauges such as in-flight requests.
func CounterCheck(c api.Counter, min, max int64) healthcheck.Check {
	return func() error {
		v := c.Get()
		if v < min || v > max {
			return fmt.Errorf("counter value %d outside [%d, %d]", v, min, max)
		}
		return nil
	}
}
