package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-connectfour/solver/internal/transpositiontable"
)

func resetForTest() {
	initialized = false
	Settings = conf{
		Solver: solverConfiguration{
			UseTT:         true,
			TTSizeEntries: transpositiontable.LargeSize,
			UseNullWindow: true,
		},
		Book: bookConfiguration{
			DefaultPly: 10,
			CachePath:  "./opening_book.cache",
		},
		Log: logConfiguration{
			Level: "INFO",
		},
	}
}

func TestSetupFallsBackOnMissingFile(t *testing.T) {
	resetForTest()
	ConfFile = filepath.Join(t.TempDir(), "does-not-exist.toml")
	Setup()
	assert.True(t, Settings.Solver.UseTT)
	assert.EqualValues(t, transpositiontable.LargeSize, Settings.Solver.TTSizeEntries)
	assert.Equal(t, 10, Settings.Book.DefaultPly)
}

func TestSetupOverlaysFile(t *testing.T) {
	resetForTest()
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[Solver]\nUseTT = false\nTTSizeEntries = 8388593\n\n[Book]\nDefaultPly = 12\n"
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	ConfFile = path
	Setup()
	assert.False(t, Settings.Solver.UseTT)
	assert.EqualValues(t, transpositiontable.SmallSize, Settings.Solver.TTSizeEntries)
	assert.Equal(t, 12, Settings.Book.DefaultPly)
	assert.Equal(t, "./opening_book.cache", Settings.Book.CachePath)
}

func TestSetupIsIdempotent(t *testing.T) {
	resetForTest()
	ConfFile = filepath.Join(t.TempDir(), "missing.toml")
	Setup()
	Settings.Solver.UseTT = false
	Setup()
	assert.False(t, Settings.Solver.UseTT)
}
