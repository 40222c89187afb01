//go:build linux

package shm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

// MapRegion maps or creates a shared memory region (Linux implementation).
// Creation fails with ErrExists if the region is already present.
func MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(opts.dir(), opts.Name)
	flags := unix.O_RDWR | unix.O_CLOEXEC
	if opts.Create {
		flags |= unix.O_CREAT | unix.O_EXCL
		if !canCreateOnDevShm(uint64(opts.Size), path) {
			return nil, fmt.Errorf("%w: path %s size %d", ErrNoSpace, path, opts.Size)
		}
	}
	fd, err := unix.Open(path, flags, 0600)
	if err != nil {
		if errors.Is(err, unix.EEXIST) {
			return nil, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// The mapping keeps the file alive; the descriptor is not needed past mmap.
	defer func() { _ = unix.Close(fd) }()

	if opts.Create {
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			_ = unix.Unlink(path)
			return nil, fmt.Errorf("ftruncate: %w", err)
		}
	} else {
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			return nil, fmt.Errorf("fstat: %w", err)
		}
		if st.Size != int64(opts.Size) {
			return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrSizeMismatch, path, st.Size, opts.Size)
		}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		if opts.Create {
			_ = unix.Unlink(path)
		}
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{
		Addr:    addr,
		Path:    path,
		Created: opts.Create,
	}, nil
}

// UnmapRegion unmaps the shared memory region (Linux implementation). The
// backing file stays until RemoveRegion.
func UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	if err := unix.Munmap(region.Addr); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	region.Addr = nil
	return nil
}

// RemoveRegion unlinks the backing file. Existing mappings stay valid.
func RemoveRegion(ctx context.Context, opts MapOptions) error {
	path := filepath.Join(opts.dir(), opts.Name)
	if err := unix.Unlink(path); err != nil {
		return fmt.Errorf("unlink %s: %w", path, err)
	}
	return nil
}

// canCreateOnDevShm only checks regions under /dev/shm; other directories
// always report true.
func canCreateOnDevShm(size uint64, path string) bool {
	if !strings.HasPrefix(path, DefaultDir+"/") {
		return true
	}
	stat, err := disk.Usage(DefaultDir)
	if err != nil {
		return false
	}
	return stat.Free >= size
}
