// Package countertest holds the behavioural suite every api.Counter
// implementation must pass.
package countertest

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/srediag/stately/api"
)

// Factory returns a new counter holding initial. The test cleans nothing up;
// factories that own resources register their own t.Cleanup.
type Factory func(t *testing.T, initial int64) api.Counter

// Suite checks the single-context contract of a Counter.
type Suite struct {
	suite.Suite
	New Factory
}

func (s *Suite) counter(initial int64) api.Counter {
	return s.New(s.T(), initial)
}

func (s *Suite) TestInitialValue() {
	s.Equal(int64(0), s.counter(0).Get())
	s.Equal(int64(-42), s.counter(-42).Get())
	s.Equal(int64(math.MaxInt64), s.counter(math.MaxInt64).Get())
}

func (s *Suite) TestIncrementDecrement() {
	c := s.counter(10)
	c.Increment()
	c.Increment()
	s.Equal(int64(12), c.Get())
	c.Decrement()
	s.Equal(int64(11), c.Get())
}

func (s *Suite) TestAddAndGetReturnsNewValue() {
	c := s.counter(5)
	r := c.AddAndGet(7)
	s.Equal(int64(12), r)
	s.Equal(r, c.Get())

	r = c.AddAndGet(-20)
	s.Equal(int64(-8), r)
	s.Equal(r, c.Get())

	s.Equal(int64(-8), c.AddAndGet(0))
}

func (s *Suite) TestAddAndGetExtremeDeltas() {
	c := s.counter(0)
	s.Equal(int64(math.MaxInt32), c.AddAndGet(math.MaxInt32))
	s.Equal(int64(-1), c.AddAndGet(math.MinInt32))
}

func (s *Suite) TestCompareAndSet() {
	c := s.counter(3)
	s.True(c.CompareAndSet(3, 9))
	s.Equal(int64(9), c.Get())

	s.False(c.CompareAndSet(3, 100))
	s.Equal(int64(9), c.Get())

	s.True(c.CompareAndSet(9, 9))
	s.Equal(int64(9), c.Get())
}

func (s *Suite) TestFailedCompareAndSetHasNoSideEffects() {
	c := s.counter(77)
	for i := 0; i < 10; i++ {
		s.False(c.CompareAndSet(76, int64(i)))
		s.Equal(int64(77), c.Get())
	}
}

func (s *Suite) TestWraparound() {
	c := s.counter(math.MaxInt64)
	c.Increment()
	s.Equal(int64(math.MinInt64), c.Get())

	c.Decrement()
	s.Equal(int64(math.MaxInt64), c.Get())

	c.Set(math.MaxInt64 - 1)
	s.Equal(int64(math.MinInt64), c.AddAndGet(2))
}

func (s *Suite) TestSet() {
	c := s.counter(1)
	c.Set(-500)
	s.Equal(int64(-500), c.Get())
	s.True(c.CompareAndSet(-500, 0))
}

// Run runs Suite against f.
func Run(t *testing.T, f Factory) {
	suite.Run(t, &Suite{New: f})
}

// Contention sizes: Goroutines execution contexts each issuing Ops operations.
var (
	Goroutines = 100
	Ops        = 1000
)

// ConcurrentSuite checks linearizability of a Counter shared by many
// goroutines. It is meaningless for cooperative builds.
type ConcurrentSuite struct {
	suite.Suite
	New Factory
}

func (s *ConcurrentSuite) spawn(fn func(i int)) {
	var wg sync.WaitGroup
	for i := 0; i < Goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}

func (s *ConcurrentSuite) TestNoLostUpdates() {
	c := s.New(s.T(), 0)
	s.spawn(func(int) {
		for k := 0; k < Ops; k++ {
			c.Increment()
		}
	})
	s.Equal(int64(Goroutines*Ops), c.Get())
}

func (s *ConcurrentSuite) TestMixedOperationsSumToDeltas() {
	c := s.New(s.T(), 0)
	var want atomic.Int64
	s.spawn(func(i int) {
		r := rand.New(rand.NewSource(int64(i)))
		var local int64
		for k := 0; k < Ops; k++ {
			switch r.Intn(3) {
			case 0:
				c.Increment()
				local++
			case 1:
				c.Decrement()
				local--
			default:
				d := int32(r.Intn(2001) - 1000)
				c.AddAndGet(d)
				local += int64(d)
			}
		}
		want.Add(local)
	})
	s.Equal(want.Load(), c.Get())
}

func (s *ConcurrentSuite) TestCompareAndSetUnderContention() {
	c := s.New(s.T(), 0)
	var wins atomic.Int64
	s.spawn(func(int) {
		for k := 0; k < Ops; k++ {
			old := c.Get()
			if c.CompareAndSet(old, old+1) {
				wins.Add(1)
			}
		}
	})
	// Each winning CAS moved the value by one; losing ones moved nothing.
	s.Equal(wins.Load(), c.Get())
}

func (s *ConcurrentSuite) TestAddAndGetResultsAreDistinct() {
	c := s.New(s.T(), 0)
	results := make([][]int64, Goroutines)
	s.spawn(func(i int) {
		out := make([]int64, 0, Ops)
		for k := 0; k < Ops; k++ {
			out = append(out, c.AddAndGet(1))
		}
		results[i] = out
	})
	seen := make(map[int64]struct{}, Goroutines*Ops)
	for _, out := range results {
		for _, r := range out {
			_, dup := seen[r]
			s.Require().False(dup, "value %d returned twice", r)
			seen[r] = struct{}{}
		}
	}
	s.Len(seen, Goroutines*Ops)
}

// RunConcurrent runs ConcurrentSuite against f.
func RunConcurrent(t *testing.T, f Factory) {
	suite.Run(t, &ConcurrentSuite{New: f})
}
