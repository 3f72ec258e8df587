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

// Package openingbook enumerates every reachable position at a fixed
// ply, solves each one exactly and persists the (key, score) pairs so
// a player can look up perfect moves near the start of the game
// without running the search live. Positions that are horizontal
// mirrors of each other are deduplicated before solving: only the
// canonical (lexicographically smaller) board of each mirror pair is
// searched, and both its key and its mirror key are installed on
// load.
package openingbook

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/go-connectfour/solver/internal/board"
	"github.com/go-connectfour/solver/internal/logging"
	"github.com/go-connectfour/solver/internal/solver"
	"github.com/go-connectfour/solver/internal/util"
)

var out = message.NewPrinter(language.English)
var log = logging.Get("openingbook")

// fileMagic and fileVersion identify the on-disk packed-word format
// written by Save. Bumping fileVersion is required for any change to
// the entry encoding so Load can refuse an incompatible file cleanly
// instead of misinterpreting its bytes.
const (
	fileMagic   uint32 = 0x4334424b // "C4BK"
	fileVersion uint32 = 1
)

// Entry is one solved opening position.
type Entry struct {
	Key   uint64
	Score int
}

// enumerate returns the canonical (mirror-deduplicated) form of every
// position reachable after exactly ply moves from the empty board.
// Game-over positions are skipped: the book only ever needs to answer
// "what should I play next", which is moot once the game has ended.
func enumerate(ply int) []board.Board {
	seen := make(map[uint64]struct{})
	var result []board.Board

	var walk func(b board.Board)
	walk = func(b board.Board) {
		if b.FilledCount() == ply {
			canon := b.CanonicalForm()
			if _, ok := seen[canon.Key()]; ok {
				return
			}
			seen[canon.Key()] = struct{}{}
			result = append(result, canon)
			return
		}
		for col := 0; col < board.Width; col++ {
			if !b.CanPlay(col) {
				continue
			}
			next, err := b.MakeMove(col)
			if err != nil {
				continue
			}
			if next.GameOver() {
				continue
			}
			walk(next)
		}
	}
	walk(board.Empty())

	sort.Slice(result, func(i, j int) bool { return result[i].Key() < result[j].Key() })
	return result
}

// Build enumerates and solves every canonical position at ply, using
// workers concurrent solvers (one transposition table per worker, so
// no locking is needed on the hot path). Progress is logged every 100
// positions when logProgress is true, mirroring the "average duration,
// remaining" estimate the reference book builder prints.
func Build(ctx context.Context, ply int, workers int, ttSize uint64, logProgress bool) ([]Entry, error) {
	positions := enumerate(ply)
	if logProgress {
		log.Infof(out.Sprintf("%d canonical positions generated at ply %d, solving with %d workers", len(positions), ply, workers))
	}

	entries := make([]Entry, len(positions))
	var solved int64
	var mu sync.Mutex
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	perWorker := (len(positions) + workers - 1) / workers
	if perWorker == 0 {
		perWorker = 1
	}
	for w := 0; w < workers; w++ {
		lo := w * perWorker
		if lo >= len(positions) {
			break
		}
		hi := util.Min(lo+perWorker, len(positions))
		g.Go(func() error {
			s := solver.New(ttSize)
			for i := lo; i < hi; i++ {
				sol, err := s.Solve(gctx, positions[i])
				if err != nil {
					return err
				}
				score := sol.Score
				entries[i] = Entry{Key: positions[i].Key(), Score: score}

				if logProgress {
					mu.Lock()
					solved++
					n := solved
					mu.Unlock()
					if n%100 == 0 {
						elapsed := time.Since(start)
						avg := elapsed / time.Duration(n)
						remaining := avg * time.Duration(int64(len(positions))-n)
						log.Infof(out.Sprintf("solved %d/%d, avg %v/position, %v remaining", n, len(positions), avg, remaining))
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save writes entries to path as a versioned header followed by one
// packed 64-bit word per entry: key<<8 | uint8(score). The header
// fields are big-endian; the payload words are little-endian, matching
// the reference implementation's bincode output so a book built here
// and one built there agree byte-for-byte on the word payload.
func Save(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return &BookIOError{Path: path, Op: "save", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.BigEndian, fileMagic); err != nil {
		return &BookIOError{Path: path, Op: "save", Err: err}
	}
	if err := binary.Write(w, binary.BigEndian, fileVersion); err != nil {
		return &BookIOError{Path: path, Op: "save", Err: err}
	}
	if err := binary.Write(w, binary.BigEndian, uint64(len(entries))); err != nil {
		return &BookIOError{Path: path, Op: "save", Err: err}
	}
	for _, e := range entries {
		word := packEntry(e.Key, e.Score)
		if err := binary.Write(w, binary.LittleEndian, word); err != nil {
			return &BookIOError{Path: path, Op: "save", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &BookIOError{Path: path, Op: "save", Err: err}
	}
	return nil
}

func packEntry(key uint64, score int) uint64 {
	return key<<8 | uint64(uint8(int8(score)))
}

func unpackEntry(word uint64) (key uint64, score int) {
	key = word >> 8
	score = int(int8(uint8(word & 0xff)))
	return key, score
}

// Book is an in-memory lookup table loaded from a saved file, indexed
// by both a position's key and its mirror key so a lookup never has to
// canonicalize the query position first.
type Book struct {
	table map[uint64]int
}

// NumberOfEntries returns how many (key, score) pairs the book holds,
// counting both a position's key and its mirror key separately.
func (b *Book) NumberOfEntries() int { return len(b.table) }

// Lookup returns the perfect-play score for a position's key, or
// ok=false if the book has no entry for it (ply too deep, or the
// position is unreachable from the empty board in that many moves).
func (b *Book) Lookup(key uint64) (score int, ok bool) {
	score, ok = b.table[key]
	return score, ok
}

// Load reads a file written by Save. path is resolved via
// util.ResolveFile first, so a bare filename (e.g. from config.toml's
// CachePath) is found whether the process is run from the repo root,
// next to the installed binary, or from the user's home directory; a
// path that ResolveFile can't find is passed through unchanged so the
// subsequent os.Open still reports the original, unresolved path in
// its error.
func Load(path string) (*Book, error) {
	if resolved, err := util.ResolveFile(path); err == nil {
		path = resolved
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &BookIOError{Path: path, Op: "load", Err: err}
	}
	defer f.Close()
	b, err := loadFrom(f)
	if err != nil {
		return nil, &BookIOError{Path: path, Op: "load", Err: err}
	}
	return b, nil
}

func loadFrom(r io.Reader) (*Book, error) {
	br := bufio.NewReader(r)
	var magic, version uint32
	if err := binary.Read(br, binary.BigEndian, &magic); err != nil {
		return nil, err
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("bad magic %#x", magic)
	}
	if err := binary.Read(br, binary.BigEndian, &version); err != nil {
		return nil, err
	}
	if version != fileVersion {
		return nil, fmt.Errorf("unsupported version %d", version)
	}
	var count uint64
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return nil, err
	}

	table := make(map[uint64]int, count*2)
	for i := uint64(0); i < count; i++ {
		var word uint64
		if err := binary.Read(br, binary.LittleEndian, &word); err != nil {
			return nil, err
		}
		key, score := unpackEntry(word)
		table[key] = score
		table[board.MirrorKey(key)] = score
	}
	return &Book{table: table}, nil
}

// cacheEnvelope is what SaveCache/LoadCache gob-encode: a flat map is
// cheap to serialize and, unlike the packed-word file, survives a
// round trip without needing to re-derive mirror keys.
type cacheEnvelope struct {
	Table map[uint64]int
}

// SaveCache gob-encodes the loaded book to path, the same binary cache
// strategy the reference engine uses to avoid reparsing its book file
// on every startup.
func SaveCache(path string, b *Book) error {
	f, err := os.Create(path)
	if err != nil {
		return &BookIOError{Path: path, Op: "save-cache", Err: err}
	}
	defer f.Close()
	enc := gob.NewEncoder(f)
	if err := enc.Encode(cacheEnvelope{Table: b.table}); err != nil {
		return &BookIOError{Path: path, Op: "save-cache", Err: err}
	}
	return nil
}

// LoadCache reads a file written by SaveCache. path is resolved via
// util.ResolveFile the same way Load resolves its path.
func LoadCache(path string) (*Book, error) {
	if resolved, err := util.ResolveFile(path); err == nil {
		path = resolved
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &BookIOError{Path: path, Op: "load-cache", Err: err}
	}
	defer f.Close()
	var env cacheEnvelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, &BookIOError{Path: path, Op: "load-cache", Err: err}
	}
	return &Book{table: env.Table}, nil
}
