//
// connectfour - a perfect-play Connect Four solver written in Go
//
// MIT License
//
// Copyright (c) 2024 the connectfour contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements a fixed-size, direct-mapped
// cache of bounded negamax scores keyed by exact position key. The
// Table is deliberately lossy: on a colliding index it always
// overwrites, and the caller can only trust a read whose stored key
// matches exactly. This keeps every operation branchless and
// cache-local; there is no chaining, no LRU, nothing to maintain.
//
// Table is not safe for concurrent use. It is owned by exactly one
// Solver for the duration of one solve, the same contract the chess
// engine this package is modeled on places on its own transposition
// table.
package transpositiontable

import (
	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/go-connectfour/solver/internal/logging"
)

var out = message.NewPrinter(language.English)

// Two prime sizes appear across revisions of the solver this table is
// modeled on. SmallSize trades hit rate for a 64 MiB table; LargeSize
// (the default) is the 128 MiB table of the latest revision. Both are
// primes close to a power of two so that the low bits of a key, which
// correlate strongly with which column was played last, are spread
// across the table.
const (
	SmallSize = 8_388_593
	LargeSize = 16_777_259

)

// sentinelKey is stored in every unused slot. No legal position can
// produce it: a key is current-player-stones plus occupied-mask, and
// the occupied mask never sets a bit above column 6's gutter bit (bit
// 48), so every real key is far smaller than the full 55-bit field the
// packed entry reserves for it.
var sentinelKey = uint64(1)<<55 - 1

// Bound records whether a stored score is an upper or a lower bound on
// the true score; the table does not store exact values as such.
type Bound uint8

const (
	// UpperBound means the true score is <= the stored score.
	UpperBound Bound = iota
	// LowerBound means the true score is >= the stored score.
	LowerBound
)

func (b Bound) String() string {
	if b == UpperBound {
		return "upper"
	}
	return "lower"
}

// entry packs a 55-bit key, a 1-bit bound tag and an 8-bit signed
// score into one 64-bit word.
type entry uint64

const (
	scoreBits = 8
	boundBit  = scoreBits
	keyShift  = scoreBits + 1
)

func packEntry(key uint64, bound Bound, score int) entry {
	unsignedScore := uint64(uint8(int8(score)))
	word := key<<keyShift | uint64(bound)<<boundBit | unsignedScore
	return entry(word)
}

func (e entry) key() uint64 { return uint64(e) >> keyShift }

func (e entry) bound() Bound { return Bound((uint64(e) >> boundBit) & 1) }

func (e entry) score() int { return int(int8(uint64(e) & 0xFF)) }

// Table is the transposition table itself.
type Table struct {
	log   *logging.Logger
	data  []entry
	size  uint64
	stats Stats
}

// Stats counts table usage for diagnostics and the spec's
// with-TT-vs-without-TT node-count comparison.
type Stats struct {
	Puts   uint64
	Probes uint64
	Hits   uint64
	Misses uint64
}

// New creates a table with the given number of slots. Use SmallSize or
// LargeSize unless a specific capacity is required; size need not be
// prime, but a prime close to a power of two gives the best spread.
func New(size uint64) *Table {
	t := &Table{
		log:  myLogging.Get("tt"),
		size: size,
	}
	t.data = make([]entry, size)
	sentinel := packEntry(sentinelKey, UpperBound, 0)
	for i := range t.data {
		t.data[i] = sentinel
	}
	t.log.Debugf(out.Sprintf("transposition table allocated: %d entries (%d bytes)", size, size*8))
	return t
}

func (t *Table) index(key uint64) uint64 { return key % t.size }

// Set stores bound for the position identified by key, unconditionally
// overwriting whatever already occupies that slot.
func (t *Table) Set(key uint64, bound Bound, score int) {
	t.stats.Puts++
	t.data[t.index(key)] = packEntry(key, bound, score)
}

// Get returns the bound stored for key, or ok=false if the slot is
// empty or holds a different position's entry.
func (t *Table) Get(key uint64) (bound Bound, score int, ok bool) {
	t.stats.Probes++
	e := t.data[t.index(key)]
	if e.key() != key {
		t.stats.Misses++
		return 0, 0, false
	}
	t.stats.Hits++
	return e.bound(), e.score(), true
}

// Clear resets every slot to the empty sentinel and zeroes the stats.
func (t *Table) Clear() {
	sentinel := packEntry(sentinelKey, UpperBound, 0)
	for i := range t.data {
		t.data[i] = sentinel
	}
	t.stats = Stats{}
}

// StatsSnapshot returns a copy of the current usage counters.
func (t *Table) StatsSnapshot() Stats { return t.stats }
