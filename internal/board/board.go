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

// Package board implements the bitboard position representation for a
// standard 7 column by 6 row Connect Four board: move making, win
// detection, threat enumeration and the horizontal-mirror symmetry used
// by the opening book.
//
// Cells are laid out column-major with a one-bit gutter row above each
// column: column c occupies bits [c*7, c*7+5] and bit c*7+6 is always
// zero. The gutter makes vertical, horizontal and both diagonal
// directions detectable by uniform shifts of H+1, H, H+2 and 1.
package board

import (
	"math/bits"
	"strings"
)

// Board geometry. Fixed at compile time; the solver does not support
// other board sizes.
const (
	Width   = 7
	Height  = 6
	Squares = Width * Height

	h1 = Height + 1 // vertical shift used for horizontal runs
	h2 = Height + 2 // shift used for one diagonal
)

// bottom has the lowest bit of every column set.
// boardMask has every legal cell set.
var (
	bottom    = columnBottoms()
	boardMask = bottom * ((uint64(1) << Height) - 1)
)

func columnBottoms() uint64 {
	var m uint64
	for c := 0; c < Width; c++ {
		m |= uint64(1) << uint(c*h1)
	}
	return m
}

func topMask(col int) uint64 {
	return uint64(1) << uint(Height-1+col*h1)
}

func bottomMask(col int) uint64 {
	return uint64(1) << uint(col*h1)
}

// Player is one of the two sides. White always moves on even plies.
type Player uint8

const (
	White Player = iota
	Black
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	if p == White {
		return "White"
	}
	return "Black"
}

// Square is the read-only projection of one cell of the board.
type Square int8

const (
	EmptySquare Square = -1
	TakenWhite  Square = Square(White)
	TakenBlack  Square = Square(Black)
)

// IsEmpty reports whether the square holds no stone.
func (s Square) IsEmpty() bool { return s == EmptySquare }

// Player returns the occupant of a non-empty square.
func (s Square) Player() Player { return Player(s) }

func (s Square) String() string {
	switch s {
	case EmptySquare:
		return "."
	case TakenWhite:
		return "X"
	default:
		return "O"
	}
}

// Board is an immutable Connect Four position. The zero value is the
// empty board. Values are small and copyable; there is no hidden
// sharing between two Board values.
type Board struct {
	currentPlayer uint64 // stones of the side to move
	mask          uint64 // all occupied cells
	filled        int    // number of stones on the board, 0..Squares
}

// Empty returns the starting position.
func Empty() Board { return Board{} }

// PlayerToPlay returns White iff an even number of stones have been
// played.
func (b Board) PlayerToPlay() Player {
	if b.filled%2 == 0 {
		return White
	}
	return Black
}

// FilledCount returns the number of stones played so far.
func (b Board) FilledCount() int { return b.filled }

// Mask returns the raw occupied-cell bitmask. Exposed for the
// transposition table and opening book, which key positions directly.
func (b Board) Mask() uint64 { return b.mask }

// CurrentPlayerMask returns the raw bitmask of the side-to-move's stones.
func (b Board) CurrentPlayerMask() uint64 { return b.currentPlayer }

// CanPlay reports whether col is a legal move: in range, not full, and
// the game is not already over.
func (b Board) CanPlay(col int) bool {
	if col < 0 || col >= Width {
		return false
	}
	return b.mask&topMask(col) == 0 && !b.GameOver()
}

// MakeMove returns the position after dropping a stone into col. It
// fails with an IllegalMoveError if CanPlay(col) is false.
func (b Board) MakeMove(col int) (Board, error) {
	if !b.CanPlay(col) {
		return Board{}, &IllegalMoveError{Column: col, Index: -1}
	}
	moveMask := (b.mask + bottomMask(col)) &^ b.mask
	return b.MakeMoveFromMask(moveMask), nil
}

// MakeMoveFromMask plays a single pre-validated, single-bit playable
// square. The caller must guarantee the mask has exactly one bit set
// and that bit is currently playable; no validation is performed.
func (b Board) MakeMoveFromMask(moveMask uint64) Board {
	return Board{
		currentPlayer: b.currentPlayer ^ b.mask,
		mask:          b.mask | moveMask,
		filled:        b.filled + 1,
	}
}

// IsWin reports whether the side that made the last move (the opponent
// of the side to play now) has completed a four-in-a-row.
func (b Board) IsWin() bool {
	lastMover := b.mask ^ b.currentPlayer
	return hasFour(lastMover)
}

func hasFour(pm uint64) bool {
	for _, d := range [4]uint{1, Height, h1, h2} {
		t := pm & (pm >> d)
		if t&(t>>(2*d)) != 0 {
			return true
		}
	}
	return false
}

// IsFull reports whether the board has no empty cells left.
func (b Board) IsFull() bool { return b.filled == Squares }

// GameOver reports whether the position is terminal: someone has won
// or the board is full.
func (b Board) GameOver() bool { return b.IsWin() || b.IsFull() }

// PlayableMask returns a bitmask with exactly the lowest empty cell of
// every non-full column set.
func (b Board) PlayableMask() uint64 {
	return (bottom + b.mask) & boardMask
}

// winningCellsFor returns every empty cell that would complete a
// four-in-a-row for the player occupying playerBits, given the overall
// occupied mask occupied.
func winningCellsFor(playerBits, occupied uint64) uint64 {
	var r uint64

	// vertical
	r |= (playerBits << 1) & (playerBits << 2) & (playerBits << 3)

	// horizontal and both diagonals share the same shape
	for _, d := range [3]uint{h1, Height, h2} {
		one := playerBits >> d
		two := one & (playerBits >> (2 * d))
		r |= two & (playerBits >> (3 * d))
		r |= two & (playerBits << d)

		one = playerBits << d
		two = one & (playerBits << (2 * d))
		r |= two & (playerBits << (3 * d))
		r |= two & (playerBits >> d)
	}

	return r & (boardMask &^ occupied)
}

// MyWinningCells returns the empty cells that would complete a
// four-in-a-row for the side to move.
func (b Board) MyWinningCells() uint64 {
	return winningCellsFor(b.currentPlayer, b.mask)
}

// OppWinningCells returns the empty cells that would complete a
// four-in-a-row for the opponent of the side to move.
func (b Board) OppWinningCells() uint64 {
	return winningCellsFor(b.currentPlayer^b.mask, b.mask)
}

// HasImmediateWin reports whether the side to move can complete a
// four-in-a-row with its next move.
func (b Board) HasImmediateWin() bool {
	return b.PlayableMask()&b.MyWinningCells() != 0
}

// OpponentThreatCount returns the number of winning cells available to
// the opponent of the side to move; used as the move-ordering
// heuristic.
func (b Board) OpponentThreatCount() int {
	return bits.OnesCount64(b.OppWinningCells())
}

// NonLosingMoves returns the subset of PlayableMask that does not
// immediately hand the opponent a winning reply. A return value of 0
// means the side to move is already lost: either the opponent threatens
// at least two playable winning squares, which one move cannot both
// block, or every remaining move fills the cell directly below an
// opponent winning square.
func (b Board) NonLosingMoves() uint64 {
	possible := b.PlayableMask()
	opp := b.OppWinningCells()
	forced := opp & possible
	if forced != 0 {
		if forced&(forced-1) != 0 {
			return 0
		}
		possible = forced
	}
	return possible &^ (opp >> 1)
}

// mirrorWord reflects the 7-bit-wide column chunks of w about the
// board's vertical center line. Because each column occupies an
// isolated 7-bit field (6 data bits plus a always-zero gutter bit),
// this operation is valid whether w is a mask, a player bitmask, or a
// packed key: the gutter bit absorbs any carry from key = player +
// mask within a column, so no carry ever crosses between columns.
func mirrorWord(w uint64) uint64 {
	var r uint64
	for col := 0; col < Width; col++ {
		target := Width - 1 - col
		chunk := w & (uint64(0x7f) << uint(col*h1))
		shift := (target - col) * h1
		if shift >= 0 {
			r |= chunk << uint(shift)
		} else {
			r |= chunk >> uint(-shift)
		}
	}
	return r
}

// Mirror returns the horizontal reflection of b: column c swaps with
// column Width-1-c.
func (b Board) Mirror() Board {
	return Board{
		currentPlayer: mirrorWord(b.currentPlayer),
		mask:          mirrorWord(b.mask),
		filled:        b.filled,
	}
}

// Key returns the injective position encoding used by the
// transposition table and opening book: current-player stones plus
// occupied mask. This is not a hash; distinct reachable positions
// never collide.
func (b Board) Key() uint64 { return b.currentPlayer + b.mask }

// MirrorKey returns the Key of the horizontal mirror of whatever
// position produced k, computed directly on the packed word.
func MirrorKey(k uint64) uint64 { return mirrorWord(k) }

// CanonicalForm returns b or its mirror, whichever has the smaller Key.
// Canonical form is a pure function of the position: the opening book
// stores only canonical representatives and reconstructs both
// orientations at load time.
func (b Board) CanonicalForm() Board {
	m := b.Mirror()
	if m.Key() < b.Key() {
		return m
	}
	return b
}

// SquareAt returns the occupant of (col, row), or ok=false if the
// coordinates are outside the 7x6 grid.
func (b Board) SquareAt(col, row int) (sq Square, ok bool) {
	if col < 0 || col >= Width || row < 0 || row >= Height {
		return EmptySquare, false
	}
	cellMask := uint64(1) << uint(col*h1+row)
	if b.mask&cellMask == 0 {
		return EmptySquare, true
	}
	if b.currentPlayer&cellMask != 0 {
		return Square(b.PlayerToPlay()), true
	}
	return Square(b.PlayerToPlay().Opponent()), true
}

// String renders the board as a 6-row by 7-column grid, top row first,
// for debugging and log output. This is not the out-of-scope graphical
// renderer; it exists so a position is readable in a log line.
func (b Board) String() string {
	var sb strings.Builder
	for row := Height - 1; row >= 0; row-- {
		for col := 0; col < Width; col++ {
			sq, _ := b.SquareAt(col, row)
			sb.WriteString(sq.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FromText replays the column sequence given by digits '1'..'7' from
// the empty board and returns the resulting position. See the
// *Error types for the distinct failure modes.
func FromText(digits string) (Board, error) {
	b := Empty()
	for i, ch := range digits {
		if b.GameOver() {
			return Board{}, &OverflowError{Index: i}
		}
		if ch < '0' || ch > '9' {
			return Board{}, &InvalidCharError{Char: ch, Index: i}
		}
		digit := int(ch - '0')
		if digit < 1 || digit > Width {
			return Board{}, &OutOfRangeError{Digit: digit, Index: i}
		}
		col := digit - 1
		next, err := b.MakeMove(col)
		if err != nil {
			return Board{}, &IllegalMoveError{Column: col, Index: i}
		}
		b = next
	}
	return b, nil
}
