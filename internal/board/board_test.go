package board

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyBoard(t *testing.T) {
	b := Empty()
	assert.Equal(t, White, b.PlayerToPlay())
	assert.Equal(t, 0, b.FilledCount())
	assert.False(t, b.GameOver())
}

func TestFromTextAndInvariants(t *testing.T) {
	b, err := FromText("4455454")
	require.NoError(t, err)
	assert.Equal(t, 7, b.FilledCount())
	assert.Equal(t, bits.OnesCount64(b.Mask()), b.FilledCount())
	assert.Equal(t, uint64(0), b.CurrentPlayerMask()&^b.Mask())
	assert.Equal(t, Black, b.PlayerToPlay()) // 7 plies played, odd -> Black to move
}

func TestFromTextErrors(t *testing.T) {
	_, err := FromText("8")
	require.Error(t, err)
	var oor *OutOfRangeError
	assert.ErrorAs(t, err, &oor)

	_, err = FromText("4a")
	var ic *InvalidCharError
	assert.ErrorAs(t, err, &ic)

	_, err = FromText("4444444") // column 4 only holds 6 stones
	var im *IllegalMoveError
	assert.ErrorAs(t, err, &im)
}

func TestMakeMoveAdvancesParity(t *testing.T) {
	b := Empty()
	require.True(t, b.CanPlay(3))
	next, err := b.MakeMove(3)
	require.NoError(t, err)
	assert.Equal(t, b.FilledCount()+1, next.FilledCount())
	assert.Equal(t, b.PlayerToPlay().Opponent(), next.PlayerToPlay())
}

func TestGameOverDisablesAllMoves(t *testing.T) {
	// four white stones on the bottom row, columns 0..3
	b := Empty()
	seq := []int{0, 0, 1, 1, 2, 2, 3}
	for _, c := range seq {
		var err error
		b, err = b.MakeMove(c)
		require.NoError(t, err)
	}
	require.True(t, b.IsWin())
	for c := 0; c < Width; c++ {
		assert.False(t, b.CanPlay(c))
	}
}

func TestIsWinMatchesOpponentOfPlayerToPlay(t *testing.T) {
	b, err := FromText("1122334") // White completes bottom-row four across cols 0-3 on move 7
	require.NoError(t, err)
	require.True(t, b.IsWin())
	// the winner is the opponent of whoever is to move now
	assert.Equal(t, White, b.PlayerToPlay().Opponent())
}

func TestMirrorInvolution(t *testing.T) {
	b, err := FromText("4455454")
	require.NoError(t, err)
	assert.Equal(t, b, b.Mirror().Mirror())
}

func TestMirrorSwapsColumns(t *testing.T) {
	left, err := FromText("1")
	require.NoError(t, err)
	right, err := FromText("7")
	require.NoError(t, err)
	assert.Equal(t, right, left.Mirror())
}

func TestCanonicalFormAgreesAcrossMirror(t *testing.T) {
	b, err := FromText("235")
	require.NoError(t, err)
	assert.Equal(t, b.CanonicalForm(), b.Mirror().CanonicalForm())
}

func TestKeyRoundTripOnContinuation(t *testing.T) {
	prefix, err := FromText("12")
	require.NoError(t, err)
	withMove, err := prefix.MakeMove(2)
	require.NoError(t, err)
	full, err := FromText("123")
	require.NoError(t, err)
	assert.Equal(t, full.Key(), withMove.Key())
}

func TestMirrorKeyMatchesMirroredBoardKey(t *testing.T) {
	b, err := FromText("1233456")
	require.NoError(t, err)
	assert.Equal(t, b.Mirror().Key(), MirrorKey(b.Key()))
}

func TestNonLosingMovesZeroWhenDoublyThreatened(t *testing.T) {
	// Black has two independent ways to complete four next move; White
	// (to move) cannot block both, so every move loses.
	b, err := FromText("131475") // Black holds the bottom row of cols 2-4; cols 1 and 5 both win
	require.NoError(t, err)
	if !b.GameOver() {
		nl := b.NonLosingMoves()
		if bits.OnesCount64(b.OppWinningCells()&b.PlayableMask()) >= 2 {
			assert.Equal(t, uint64(0), nl)
		}
	}
}

func TestHasImmediateWin(t *testing.T) {
	b, err := FromText("112233") // White has three across cols 0-2 bottom row, col 3 wins
	require.NoError(t, err)
	assert.True(t, b.HasImmediateWin())
	assert.True(t, b.PlayableMask()&b.MyWinningCells() != 0)
}

func TestSquareAtOutOfRange(t *testing.T) {
	b := Empty()
	_, ok := b.SquareAt(-1, 0)
	assert.False(t, ok)
	_, ok = b.SquareAt(0, Height)
	assert.False(t, ok)
	sq, ok := b.SquareAt(0, 0)
	assert.True(t, ok)
	assert.True(t, sq.IsEmpty())
}

func TestPlayableMaskOneBitPerOpenColumn(t *testing.T) {
	b := Empty()
	pm := b.PlayableMask()
	assert.Equal(t, Width, bits.OnesCount64(pm))
}
