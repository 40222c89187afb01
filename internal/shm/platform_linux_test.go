//go:build linux

package shm

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRegionSharedBetweenMappings(t *testing.T) {
	ctx := context.Background()
	opts := MapOptions{Name: "region", Dir: t.TempDir(), Size: 16, Create: true}

	r1, err := MapRegion(ctx, opts)
	require.NoError(t, err)
	defer func() { assert.NoError(t, UnmapRegion(ctx, r1)) }()
	assert.True(t, r1.Created)

	opts.Create = false
	r2, err := MapRegion(ctx, opts)
	require.NoError(t, err)
	defer func() { assert.NoError(t, UnmapRegion(ctx, r2)) }()
	assert.False(t, r2.Created)

	p1, err := Int64At(r1.Addr, 8)
	require.NoError(t, err)
	p2, err := Int64At(r2.Addr, 8)
	require.NoError(t, err)

	atomic.AddInt64(p1, 41)
	atomic.AddInt64(p2, 1)
	assert.Equal(t, int64(42), atomic.LoadInt64(p1))
	assert.Equal(t, int64(42), atomic.LoadInt64(p2))
}

func TestMapRegionErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := MapOptions{Name: "dup", Dir: dir, Size: 16, Create: true}

	r, err := MapRegion(ctx, opts)
	require.NoError(t, err)
	defer func() { assert.NoError(t, UnmapRegion(ctx, r)) }()

	_, err = MapRegion(ctx, opts)
	assert.ErrorIs(t, err, ErrExists)

	opts.Create = false
	opts.Size = 32
	_, err = MapRegion(ctx, opts)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = MapRegion(ctx, MapOptions{Name: "missing", Dir: dir, Size: 16})
	assert.ErrorIs(t, err, os.ErrNotExist)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = MapRegion(cctx, MapOptions{Name: "cancelled", Dir: dir, Size: 16, Create: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoveRegion(t *testing.T) {
	ctx := context.Background()
	opts := MapOptions{Name: "gone", Dir: t.TempDir(), Size: 16, Create: true}
	r, err := MapRegion(ctx, opts)
	require.NoError(t, err)

	require.NoError(t, RemoveRegion(ctx, opts))
	_, err = os.Stat(filepath.Join(opts.Dir, opts.Name))
	assert.True(t, os.IsNotExist(err))

	// The mapping outlives the file.
	p, err := Int64At(r.Addr, 0)
	require.NoError(t, err)
	atomic.StoreInt64(p, 9)
	assert.Equal(t, int64(9), atomic.LoadInt64(p))
	require.NoError(t, UnmapRegion(ctx, r))
	assert.NoError(t, UnmapRegion(ctx, r))

	assert.Error(t, RemoveRegion(ctx, opts))
}

func TestCanCreateOnDevShm(t *testing.T) {
	// Only /dev/shm is checked; other paths always pass.
	assert.True(t, canCreateOnDevShm(math.MaxUint64, "sdffafds"))

	stat, err := disk.Usage(DefaultDir)
	if err != nil {
		t.Skipf("no %s: %v", DefaultDir, err)
	}
	assert.True(t, canCreateOnDevShm(0, DefaultDir+"/xxx"))
	assert.False(t, canCreateOnDevShm(stat.Total+1, DefaultDir+"/yyy"))
}
