//go:build !stately_cooperative

package annotation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalIsolationAcrossGoroutines(t *testing.T) {
	const (
		goroutines = 100
		ops        = 1000
	)
	l := NewLocal[int](nil)
	var wg sync.WaitGroup
	results := make([]int, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := WithContextID(context.Background())
			for k := 0; k < ops; k++ {
				v, err := l.Get(ctx)
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, l.Set(ctx, v+1))
			}
			results[i], _ = l.Get(ctx)
			l.Release(ctx)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		assert.Equal(t, ops, r, "goroutine %d", i)
	}
	assert.Zero(t, l.Len())
}

func TestContextIDsAreUnique(t *testing.T) {
	const n = 1000
	ids := make(chan ContextID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ok := ContextIDFrom(WithContextID(context.Background()))
			assert.True(t, ok)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)
	seen := make(map[ContextID]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
	_, ok := ContextIDFrom(context.Background())
	assert.False(t, ok)
}
