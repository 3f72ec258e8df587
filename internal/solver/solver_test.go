package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-connectfour/solver/internal/board"
	"github.com/go-connectfour/solver/internal/transpositiontable"
)

func TestSolveEmptyBoardIsFirstPlayerWin(t *testing.T) {
	if testing.Short() {
		t.Skip("solving the empty board searches the full opening tree with no book; skipped under -short")
	}
	s := New(transpositiontable.SmallSize)
	sol, err := s.Solve(context.Background(), board.Empty())
	require.NoError(t, err)
	assert.Equal(t, Solved, sol.Kind)
	assert.Equal(t, 1, sol.Score)
}

// TestSolveDrawBoard fills all 42 cells so that every column alternates
// colours and the columns' bottom colours run X X O O X X O; no row,
// column or diagonal ever holds four of one colour, so the full board
// is a draw.
func TestSolveDrawBoard(t *testing.T) {
	s := New(transpositiontable.SmallSize)
	b, err := board.FromText("133113311331" + "244224422442" + "577557755775" + "666666")
	require.NoError(t, err)
	require.True(t, b.IsFull())
	require.False(t, b.IsWin())
	sol, err := s.Solve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, Draw, sol.Kind)
}

func TestSolveDetectsImmediateVictory(t *testing.T) {
	s := New(transpositiontable.SmallSize)
	b := board.Empty()
	var err error
	for _, col := range []int{3, 2, 3, 2, 3, 2, 3} {
		b, err = b.MakeMove(col)
		require.NoError(t, err)
		if b.IsWin() {
			break
		}
	}
	require.True(t, b.IsWin())
	sol, err := s.Solve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, Victory, sol.Kind)
}

func TestSolveReturnsImmediateWinWithMaxScore(t *testing.T) {
	s := New(transpositiontable.SmallSize)
	b := board.Empty()
	var err error
	for _, col := range []int{3, 2, 3, 2, 3, 2} {
		b, err = b.MakeMove(col)
		require.NoError(t, err)
	}
	require.True(t, b.HasImmediateWin())
	sol, err := s.Solve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, Solved, sol.Kind)
	assert.Equal(t, (board.Squares+1-b.FilledCount())/2, sol.Score)
}

func TestSolveIsDeterministicAcrossTables(t *testing.T) {
	b := board.Empty()
	var err error
	for _, col := range []int{3, 4, 2, 4, 3} {
		b, err = b.MakeMove(col)
		require.NoError(t, err)
	}
	withTT := New(transpositiontable.SmallSize)
	noTT := New(transpositiontable.SmallSize)
	noTT.useTT = false

	want, err := withTT.Solve(context.Background(), b)
	require.NoError(t, err)
	got, err := noTT.Solve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, want.Score, got.Score)
}

func TestSolveHonorsCancellation(t *testing.T) {
	s := New(transpositiontable.SmallSize)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Solve(ctx, board.Empty())
	assert.Error(t, err)
}

func TestBisectionAgreesWithWideWindowSearch(t *testing.T) {
	b := board.Empty()
	var err error
	for _, col := range []int{3, 3, 4, 4} {
		b, err = b.MakeMove(col)
		require.NoError(t, err)
	}
	bisect := New(transpositiontable.SmallSize)
	wide := New(transpositiontable.SmallSize)
	wide.useBisect = false

	want, err := bisect.Solve(context.Background(), b)
	require.NoError(t, err)
	got, err := wide.Solve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, want.Score, got.Score)
}
