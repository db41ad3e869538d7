// Package dice provides the uniform integer rolls generation draws from.
package dice

import (
	"fmt"
	"math/rand"
	"time"
)

// Roller draws uniform integers over inclusive ranges.
type Roller interface {
	Roll(lo, hi int) int
}

// Rand is a Roller backed by a seeded math/rand source.
type Rand struct {
	seed int64
	rng  *rand.Rand
}

// NewRand creates a Roller for the given seed. A seed of 0 means a
// time-based seed is chosen; Seed reports the one actually used.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Roll returns a value in [lo, hi]. An empty range returns lo.
func (r *Rand) Roll(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// Script replays a fixed sequence of rolls. It is used to pin generation
// to an exact path in tests.
type Script struct {
	rolls []int
	next  int
}

// NewScript creates a Script that returns rolls in order.
func NewScript(rolls ...int) *Script {
	return &Script{rolls: rolls}
}

// Roll returns the next scripted value. It panics when the script is
// exhausted or the value falls outside [lo, hi], since either means the
// caller's path diverged from the one the script was written for.
func (s *Script) Roll(lo, hi int) int {
	if s.next >= len(s.rolls) {
		panic(fmt.Sprintf("dice: script exhausted after %d rolls", len(s.rolls)))
	}
	v := s.rolls[s.next]
	if v < lo || v > hi {
		panic(fmt.Sprintf("dice: scripted roll %d (#%d) outside [%d,%d]", v, s.next, lo, hi))
	}
	s.next++
	return v
}

// Remaining returns how many scripted rolls have not been used.
func (s *Script) Remaining() int {
	return len(s.rolls) - s.next
}
