package movesorter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainOrderHighestScoreFirst(t *testing.T) {
	var s Sorter
	s.Add(0x1, 3)
	s.Add(0x2, 7)
	s.Add(0x3, 1)

	first, ok := s.Next()
	assert.True(t, ok)
	assert.EqualValues(t, 0x2, first)

	second, _ := s.Next()
	assert.EqualValues(t, 0x1, second)

	third, _ := s.Next()
	assert.EqualValues(t, 0x3, third)

	_, ok = s.Next()
	assert.False(t, ok)
}

// TestReverseColumnOrderFeedsCenterFirstOnTies reproduces the solver's
// node-ordering setup: columns are iterated in reverse preference order
// [6,0,5,1,4,2,3] and added to the sorter, so that among equal scores
// the center column (3) was inserted last and therefore drained first.
func TestReverseColumnOrderFeedsCenterFirstOnTies(t *testing.T) {
	preference := [7]int{3, 2, 4, 1, 5, 0, 6}
	var s Sorter
	for i := len(preference) - 1; i >= 0; i-- {
		col := preference[i]
		s.Add(uint64(1)<<uint(col), 0) // identical heuristic score for every move
	}
	drained := make([]int, 0, 7)
	for {
		mask, ok := s.Next()
		if !ok {
			break
		}
		col := 0
		for mask != 1 {
			mask >>= 1
			col++
		}
		drained = append(drained, col)
	}
	assert.Equal(t, []int{3, 2, 4, 1, 5, 0, 6}, drained)
}

func TestLenTracksRemaining(t *testing.T) {
	var s Sorter
	assert.Equal(t, 0, s.Len())
	s.Add(1, 0)
	s.Add(2, 0)
	assert.Equal(t, 2, s.Len())
	s.Next()
	assert.Equal(t, 1, s.Len())
}
