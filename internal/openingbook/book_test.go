package openingbook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-connectfour/solver/internal/board"
	"github.com/go-connectfour/solver/internal/transpositiontable"
)

func TestEnumerateDeduplicatesMirrors(t *testing.T) {
	positions := enumerate(2)
	seen := make(map[uint64]bool)
	for _, p := range positions {
		assert.Equal(t, p, p.CanonicalForm(), "enumerate must only return canonical boards")
		assert.False(t, seen[p.Key()], "duplicate canonical key %d", p.Key())
		seen[p.Key()] = true
	}
	assert.NotEmpty(t, positions)
}

func TestEnumerateSkipsGameOverPositions(t *testing.T) {
	for _, p := range enumerate(1) {
		assert.False(t, p.GameOver())
	}
}

func TestBuildSaveLoadRoundTrip(t *testing.T) {
	entries, err := Build(context.Background(), 2, 2, transpositiontable.SmallSize, false)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, Save(path, entries))

	loaded, err := Load(path)
	require.NoError(t, err)

	for _, e := range entries {
		score, ok := loaded.Lookup(e.Key)
		require.True(t, ok)
		assert.Equal(t, e.Score, score)

		mirrorScore, ok := loaded.Lookup(board.MirrorKey(e.Key))
		require.True(t, ok)
		assert.Equal(t, e.Score, mirrorScore)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 0}, 0o644))
	_, err := Load(path)
	require.Error(t, err)
	var bookErr *BookIOError
	assert.ErrorAs(t, err, &bookErr)
	assert.Equal(t, "load", bookErr.Op)
}

func TestLoadMissingFileReturnsBookIOError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"))
	var bookErr *BookIOError
	assert.ErrorAs(t, err, &bookErr)
}

func TestCacheRoundTrip(t *testing.T) {
	entries, err := Build(context.Background(), 1, 1, transpositiontable.SmallSize, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, Save(path, entries))
	book, err := Load(path)
	require.NoError(t, err)

	cachePath := filepath.Join(t.TempDir(), "book.cache")
	require.NoError(t, SaveCache(cachePath, book))

	reloaded, err := LoadCache(cachePath)
	require.NoError(t, err)
	assert.Equal(t, book.NumberOfEntries(), reloaded.NumberOfEntries())
}
