/*
 * connectfour - a perfect-play Connect Four solver written in Go
 *
 * MIT License
 *
 * Copyright (c) 2024 the connectfour contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package testsuite drives the Solver against test set files: plain
// text files of newline-delimited "position score" pairs, one per
// line, where position is a string of 1-indexed column digits and
// score is the expected perfect-play result. This is the Connect Four
// analogue of the EPD-driven chess test suites the engine this package
// is modeled on runs against its own search.
package testsuite

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/go-connectfour/solver/internal/board"
	"github.com/go-connectfour/solver/internal/logging"
	"github.com/go-connectfour/solver/internal/solver"
)

var out = message.NewPrinter(language.English)
var log = logging.Get("testsuite")

// Case is one parsed line of a test set.
type Case struct {
	Line     int
	Position string
	Expected int
}

// Result is the outcome of running one Case.
type Result struct {
	Case     Case
	Got      int
	Nodes    uint64
	Duration time.Duration
	Err      error
}

// Passed reports whether the solver's score matched the expected
// score and no error occurred.
func (r Result) Passed() bool { return r.Err == nil && r.Got == r.Expected }

// Summary aggregates a full suite run.
type Summary struct {
	Total       int
	Passed      int
	Failed      int
	Errored     int
	TotalNodes  uint64
	TotalTime   time.Duration
	FailedCases []Result
}

// AverageDuration returns the mean wall-clock time spent solving a
// single case, or zero if no cases ran.
func (s Summary) AverageDuration() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Total)
}

// AverageNodes returns the mean node count explored per case, or zero
// if no cases ran.
func (s Summary) AverageNodes() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.TotalNodes) / float64(s.Total)
}

// ParseCases reads r line by line, skipping blank lines, expecting
// "<position> <score>" whitespace-separated pairs.
func ParseCases(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("testsuite: line %d: expected \"position score\", got %q", lineNo, line)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("testsuite: line %d: bad score %q: %w", lineNo, fields[1], err)
		}
		cases = append(cases, Case{Line: lineNo, Position: fields[0], Expected: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// LoadFile reads and parses a test set from path.
func LoadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCases(f)
}

// Run solves every case with s, reusing s (and its transposition
// table) across the whole suite the way the reference benchmark does,
// and returns the aggregate Summary.
func Run(ctx context.Context, s *solver.Solver, cases []Case) Summary {
	var sum Summary
	for _, c := range cases {
		b, err := board.FromText(c.Position)
		if err != nil {
			sum.Total++
			sum.Errored++
			sum.FailedCases = append(sum.FailedCases, Result{Case: c, Err: err})
			log.Errorf(out.Sprintf("line %d: %v", c.Line, err))
			continue
		}

		start := time.Now()
		sol, err := s.Solve(ctx, b)
		elapsed := time.Since(start)

		res := Result{Case: c, Duration: elapsed}
		sum.Total++
		sum.TotalTime += elapsed
		if err != nil {
			sum.Errored++
			res.Err = err
			sum.FailedCases = append(sum.FailedCases, res)
			continue
		}

		res.Got = sol.Score
		res.Nodes = sol.NodesExplored
		sum.TotalNodes += sol.NodesExplored

		if res.Passed() {
			sum.Passed++
		} else {
			sum.Failed++
			sum.FailedCases = append(sum.FailedCases, res)
		}
	}
	log.Infof(out.Sprintf("%d/%d passed, avg %v/position, avg %.1f nodes/position",
		sum.Passed, sum.Total, sum.AverageDuration(), sum.AverageNodes()))
	return sum
}
