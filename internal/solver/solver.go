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

// Package solver implements the perfect-play negamax/alpha-beta search
// with a null-window bisection driver on top. A Solver owns one
// transposition table and is not safe for concurrent Solve calls; the
// running semaphore below enforces that the same way the search
// engine this package is modeled on serializes entry into its own
// run loop.
package solver

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/go-connectfour/solver/internal/board"
	"github.com/go-connectfour/solver/internal/config"
	"github.com/go-connectfour/solver/internal/logging"
	"github.com/go-connectfour/solver/internal/movesorter"
	"github.com/go-connectfour/solver/internal/transpositiontable"
)

// columnOrder is iterated in reverse so the center column is always
// added to the move sorter last, and therefore drained first among
// moves of equal heuristic score.
var columnOrder = [board.Width]int{3, 2, 4, 1, 5, 0, 6}

// Solution is the outcome of solving one position.
type Solution struct {
	// Kind distinguishes a trivial Draw/Victory from a fully Solved
	// position; Score and NodesExplored are only meaningful when Kind
	// is Solved.
	Kind          Kind
	Score         int
	NodesExplored uint64
}

// Kind enumerates the three shapes a Solution can take.
type Kind int

const (
	// Draw means the board was already full without a four-in-a-row:
	// neither side can move.
	Draw Kind = iota
	// Victory means the side that just moved already completed a
	// four-in-a-row; board.IsWin reports true before the side to move
	// makes another move.
	Victory
	// Solved carries an exact minimax score and the node count the
	// search spent to prove it.
	Solved
)

func (k Kind) String() string {
	switch k {
	case Draw:
		return "draw"
	case Victory:
		return "victory"
	case Solved:
		return "solved"
	default:
		return "unknown"
	}
}

// Solver holds one transposition table and serializes Solve calls
// against it.
type Solver struct {
	log       *logging.Logger
	tt        *transpositiontable.Table
	useTT     bool
	useBisect bool
	running   *semaphore.Weighted
}

// New creates a Solver with a freshly allocated transposition table of
// the given size. Pass config.Settings.Solver.TTSizeEntries for the
// process-wide default.
func New(ttSize uint64) *Solver {
	return &Solver{
		log:       logging.Get("solver"),
		tt:        transpositiontable.New(ttSize),
		useTT:     config.Settings.Solver.UseTT,
		useBisect: config.Settings.Solver.UseNullWindow,
		running:   semaphore.NewWeighted(1),
	}
}

// Solve computes the perfect-play outcome of b from the perspective of
// the side to move. It blocks until complete or ctx is cancelled; a
// cancelled context yields an error rather than a Solution, since a
// partially searched position has no valid score.
func (s *Solver) Solve(ctx context.Context, b board.Board) (Solution, error) {
	if err := s.running.Acquire(ctx, 1); err != nil {
		return Solution{}, err
	}
	defer s.running.Release(1)

	if b.IsWin() {
		return Solution{Kind: Victory}, nil
	}
	if b.IsFull() {
		return Solution{Kind: Draw}, nil
	}

	var nodes uint64
	var score int
	if b.HasImmediateWin() {
		score = (board.Squares + 1 - b.FilledCount()) / 2
	} else {
		var err error
		score, err = s.search(ctx, b, &nodes)
		if err != nil {
			return Solution{}, err
		}
	}
	s.log.Debugf("solved position (filled=%d) score=%d nodes=%d", b.FilledCount(), score, nodes)
	return Solution{Kind: Solved, Score: score, NodesExplored: nodes}, nil
}

// Reset clears the transposition table so the next Solve starts cold.
// A Solver is ordinarily reused across many Solve calls (e.g. while
// building an opening book) precisely so the table stays warm; call
// Reset only when that reuse would be misleading, such as between
// independent benchmark runs.
func (s *Solver) Reset() { s.tt.Clear() }

// Stats returns the transposition table's usage counters.
func (s *Solver) Stats() transpositiontable.Stats { return s.tt.StatsSnapshot() }

// search runs the outer null-window bisection driver described in the
// search loop this solver is modeled on: instead of one full-window
// negamax call, it narrows [min, max] one null-window probe at a time,
// which in practice explores far fewer nodes than a single wide-window
// search.
func (s *Solver) search(ctx context.Context, b board.Board, nodes *uint64) (int, error) {
	min := -(board.Squares - b.FilledCount()) / 2
	max := (board.Squares + 1 - b.FilledCount()) / 2

	if !s.useBisect {
		return s.negamax(ctx, b, min, max, nodes)
	}

	for min < max {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		med := min + (max-min)/2
		if med <= 0 && min/2 < med {
			med = min / 2
		} else if med >= 0 && max/2 > med {
			med = max / 2
		}
		r, err := s.negamax(ctx, b, med, med+1, nodes)
		if err != nil {
			return 0, err
		}
		if r <= med {
			max = r
		} else {
			min = r
		}
	}
	return min, nil
}

// negamax is the recursive alpha-beta core. The returned value v is
// not clamped to the window: v <= alpha means the true score is at
// most v, v >= beta means it is at least v, and alpha < v < beta means
// v is exact. A beta cutoff returns the child's score itself, which
// may lie above beta.
func (s *Solver) negamax(ctx context.Context, b board.Board, alpha, beta int, nodes *uint64) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	*nodes++

	possible := b.NonLosingMoves()
	if possible == 0 {
		// every reply lets the opponent complete a four-in-a-row
		return -(board.Squares - b.FilledCount()) / 2, nil
	}
	if b.FilledCount() >= board.Squares-2 {
		return 0, nil // no one can win from here: forced draw
	}

	min := -(board.Squares - 2 - b.FilledCount()) / 2
	if alpha < min {
		alpha = min
		if alpha >= beta {
			return alpha, nil
		}
	}
	max := (board.Squares - 1 - b.FilledCount()) / 2
	if beta > max {
		beta = max
		if alpha >= beta {
			return beta, nil
		}
	}

	key := b.Key()
	if s.useTT {
		if bound, value, ok := s.tt.Get(key); ok {
			switch bound {
			case transpositiontable.UpperBound:
				if beta > value {
					beta = value
					if alpha >= beta {
						return beta, nil
					}
				}
			case transpositiontable.LowerBound:
				if alpha < value {
					alpha = value
					if alpha >= beta {
						return alpha, nil
					}
				}
			}
		}
	}

	var sorter movesorter.Sorter
	for i := len(columnOrder) - 1; i >= 0; i-- {
		col := columnOrder[i]
		moveMask := columnFullMask(col) & possible
		if moveMask == 0 {
			continue
		}
		next := b.MakeMoveFromMask(moveMask)
		sorter.Add(moveMask, next.OpponentThreatCount())
	}

	for {
		moveMask, ok := sorter.Next()
		if !ok {
			break
		}
		next := b.MakeMoveFromMask(moveMask)
		score, err := s.negamax(ctx, next, -beta, -alpha, nodes)
		if err != nil {
			return 0, err
		}
		score = -score
		if score >= beta {
			if s.useTT {
				s.tt.Set(key, transpositiontable.LowerBound, score)
			}
			return score, nil
		}
		if score > alpha {
			alpha = score
		}
	}

	if s.useTT {
		s.tt.Set(key, transpositiontable.UpperBound, alpha)
	}
	return alpha, nil
}

// columnFullMask covers every one of a column's Height data bits,
// matching Board::column_mask in the reference implementation; ANDing
// it against a "possible" bitboard (which has exactly one playable bit
// per open column) isolates that column's one playable cell.
func columnFullMask(col int) uint64 {
	return ((uint64(1) << board.Height) - 1) << (uint(col) * (board.Height + 1))
}
