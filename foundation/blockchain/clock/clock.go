// Package clock provides the time sources used to stamp blocks.
package clock

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// Clock represents the behavior required to read the current time in the
// unit used by block timestamps.
type Clock interface {
	Now() uint256.Int
}

// =============================================================================

// System reads the wall clock as milliseconds since the Unix epoch. The
// readings never move backwards even if the wall clock does.
type System struct {
	mu   sync.Mutex
	last uint64
}

// NewSystem constructs a wall clock time source.
func NewSystem() *System {
	return &System{}
}

// Now returns the current time in milliseconds.
func (s *System) Now() uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := uint64(time.Now().UTC().UnixMilli())
	if ms < s.last {
		ms = s.last
	}
	s.last = ms

	return *uint256.NewInt(ms)
}

// =============================================================================

// Sequence is a deterministic time source. Every read returns a value one
// step larger than the previous read.
type Sequence struct {
	mu   sync.Mutex
	next uint256.Int
	step uint256.Int
}

// NewSequence constructs a clock whose first reading is start. A zero step
// is treated as one so readings are always strictly increasing.
func NewSequence(start uint64, step uint64) *Sequence {
	if step == 0 {
		step = 1
	}

	return &Sequence{
		next: *uint256.NewInt(start),
		step: *uint256.NewInt(step),
	}
}

// Now returns the next value in the sequence.
func (s *Sequence) Now() uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.next
	s.next.Add(&s.next, &s.step)

	return now
}
