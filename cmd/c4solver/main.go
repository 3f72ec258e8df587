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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/go-connectfour/solver/internal/board"
	"github.com/go-connectfour/solver/internal/config"
	"github.com/go-connectfour/solver/internal/logging"
	"github.com/go-connectfour/solver/internal/openingbook"
	"github.com/go-connectfour/solver/internal/solver"
	"github.com/go-connectfour/solver/internal/testsuite"
	"github.com/go-connectfour/solver/internal/util"
)

var out = message.NewPrinter(language.English)
var log = logging.Get("main")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "solve":
		runSolve(os.Args[2:])
	case "build-book":
		runBuildBook(os.Args[2:])
	case "testsuite":
		runTestsuite(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: c4solver <solve|build-book|testsuite> [flags]")
}

func commonFlags(fs *flag.FlagSet) (configFile *string, cpuProfile *bool) {
	configFile = fs.String("config", "./config.toml", "path to configuration settings file")
	cpuProfile = fs.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof while running")
	return
}

func startProfile(enabled bool) interface{ Stop() } {
	if !enabled {
		return noopStopper{}
	}
	return profile.Start(profile.CPUProfile, profile.ProfilePath("."))
}

type noopStopper struct{}

func (noopStopper) Stop() {}

func runSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	configFile, cpuProfile := commonFlags(fs)
	ttSize := fs.Uint64("ttsize", 0, "transposition table size in entries (0 = use config default)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: c4solver solve [flags] <position>")
		os.Exit(2)
	}

	config.ConfFile = *configFile
	config.Setup()
	logging.Level = config.LoggingLevel()

	defer startProfile(*cpuProfile).Stop()

	size := *ttSize
	if size == 0 {
		size = config.Settings.Solver.TTSizeEntries
	}

	b, err := board.FromText(fs.Arg(0))
	if err != nil {
		log.Errorf(out.Sprintf("invalid position: %v", err))
		os.Exit(1)
	}

	s := solver.New(size)
	sol, err := s.Solve(context.Background(), b)
	if err != nil {
		log.Errorf(out.Sprintf("solve failed: %v", err))
		os.Exit(1)
	}

	switch sol.Kind {
	case solver.Draw:
		fmt.Println("draw")
	case solver.Victory:
		fmt.Println("victory (already decided)")
	case solver.Solved:
		fmt.Printf("score=%d nodes=%d\n", sol.Score, sol.NodesExplored)
	}
}

func runBuildBook(args []string) {
	fs := flag.NewFlagSet("build-book", flag.ExitOnError)
	configFile, cpuProfile := commonFlags(fs)
	ply := fs.Int("ply", 0, "book depth in plies (0 = use config default)")
	output := fs.String("out", "", "output file (empty = use config cache path)")
	workers := fs.Int("workers", runtime.NumCPU(), "number of concurrent solver workers")
	verbose := fs.Bool("v", true, "log progress while solving")
	_ = fs.Parse(args)

	config.ConfFile = *configFile
	config.Setup()
	logging.Level = config.LoggingLevel()

	defer startProfile(*cpuProfile).Stop()

	depth := *ply
	if depth == 0 {
		depth = config.Settings.Book.DefaultPly
	}
	depth = util.Clamp(depth, 1, board.Squares)

	path := *output
	if path == "" {
		path = config.Settings.Book.CachePath
	}

	entries, err := openingbook.Build(context.Background(), depth, util.Max(1, *workers), config.Settings.Solver.TTSizeEntries, *verbose)
	if err != nil {
		log.Errorf(out.Sprintf("build failed: %v", err))
		os.Exit(1)
	}
	if err := openingbook.Save(path, entries); err != nil {
		log.Errorf(out.Sprintf("save failed: %v", err))
		os.Exit(1)
	}
	log.Infof(out.Sprintf("wrote %d entries to %s", len(entries), path))
}

func runTestsuite(args []string) {
	fs := flag.NewFlagSet("testsuite", flag.ExitOnError)
	configFile, cpuProfile := commonFlags(fs)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: c4solver testsuite [flags] <path>")
		os.Exit(2)
	}

	config.ConfFile = *configFile
	config.Setup()
	logging.Level = config.LoggingLevel()

	defer startProfile(*cpuProfile).Stop()

	cases, err := testsuite.LoadFile(fs.Arg(0))
	if err != nil {
		log.Errorf(out.Sprintf("could not load test set: %v", err))
		os.Exit(1)
	}

	s := solver.New(config.Settings.Solver.TTSizeEntries)
	summary := testsuite.Run(context.Background(), s, cases)
	fmt.Printf("%d/%d passed, %d failed, %d errored, avg %v/position\n",
		summary.Passed, summary.Total, summary.Failed, summary.Errored, summary.AverageDuration())
	if summary.Failed > 0 || summary.Errored > 0 {
		os.Exit(1)
	}
}
