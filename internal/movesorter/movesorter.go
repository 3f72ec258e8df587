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

// Package movesorter provides a tiny fixed-capacity priority list used
// by the solver to order the at most seven candidate moves of a node
// by a cheap threat heuristic. It allocates nothing: the backing array
// is stack-resident in the caller's Sorter value.
package movesorter

import "github.com/go-connectfour/solver/internal/board"

// capacity is the maximum number of columns a Connect Four board has,
// and therefore the maximum number of candidate moves at any node.
const capacity = board.Width

type entry struct {
	moveMask uint64
	score    int
}

// Sorter holds candidate moves in ascending score order so that Next
// can pop the highest-scoring entry off the tail in O(1). Add is O(k)
// insertion sort, which is cheap for k <= 7.
type Sorter struct {
	entries [capacity]entry
	size    int
}

// Add inserts a candidate move, keeping entries sorted ascending by
// score. Ties keep the relative order already achieved by previous
// Add calls that scored equal, which lets the caller control
// tie-breaking purely through insertion order.
func (s *Sorter) Add(moveMask uint64, score int) {
	pos := s.size
	for pos > 0 && s.entries[pos-1].score > score {
		s.entries[pos] = s.entries[pos-1]
		pos--
	}
	s.entries[pos] = entry{moveMask: moveMask, score: score}
	s.size++
}

// Next pops and returns the highest-scoring remaining move. ok is
// false once the sorter is drained.
func (s *Sorter) Next() (moveMask uint64, ok bool) {
	if s.size == 0 {
		return 0, false
	}
	s.size--
	return s.entries[s.size].moveMask, true
}

// Len reports how many candidates remain.
func (s *Sorter) Len() int { return s.size }
