package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyricyear/config"
	"lyricyear/models"
	"lyricyear/services"
)

type stubSource struct {
	lyrics string
}

func (s stubSource) ArtistID(context.Context, string) (int, error) { return 1, nil }

func (s stubSource) Albums(context.Context, int) ([]models.Album, error) {
	return []models.Album{{ID: 10, Name: "Escape", ReleaseDate: "2001-5"}}, nil
}

func (s stubSource) Tracks(context.Context, int) ([]models.Track, error) {
	return []models.Track{{ID: 100}}, nil
}

func (s stubSource) Lyrics(context.Context, int) (string, error) { return s.lyrics, nil }

func stubOpener(lyrics string, opened *bool) sourceOpener {
	return func(*config.Config) (services.Source, func() error, error) {
		*opened = true
		return stubSource{lyrics: lyrics}, func() error { return nil }, nil
	}
}

func lines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRun_FetchAndPivot(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{OutputDir: root}
	var opened bool

	err := run(context.Background(), cfg, options{
		artist:   "hiders",
		fetch:    true,
		word:     "run",
		allWords: true,
		top:      1,
	}, stubOpener("Run Run Hide", &opened))
	require.NoError(t, err)
	assert.True(t, opened)

	assert.ElementsMatch(t, []string{"run, 2", "hide, 1"},
		lines(t, filepath.Join(root, "hiders", "by_year", "2001.csv")))
	assert.Equal(t, []string{"2001, 2"}, lines(t, filepath.Join(root, "hiders", "by_word", "run.csv")))
	assert.Equal(t, []string{"2001, 1"}, lines(t, filepath.Join(root, "hiders", "by_word", "hide.csv")))
}

func TestRun_MissingArtistHasNoEffect(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{OutputDir: root}
	var opened bool

	err := run(context.Background(), cfg, options{fetch: true, allWords: true}, stubOpener("x", &opened))
	require.NoError(t, err)
	assert.False(t, opened)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_NothingRequested(t *testing.T) {
	var opened bool
	err := run(context.Background(), &config.Config{OutputDir: t.TempDir()},
		options{artist: "hiders"}, stubOpener("x", &opened))
	require.NoError(t, err)
	assert.False(t, opened)
}

func TestOpenSource_RequiresAPIKey(t *testing.T) {
	_, _, err := openSource(&config.Config{})
	require.Error(t, err)
}

func TestOpenSource_WithCache(t *testing.T) {
	cfg := &config.Config{
		Musixmatch: config.MusixmatchConfig{APIKey: "k", BaseURL: "http://localhost/"},
		CachePath:  filepath.Join(t.TempDir(), "cache", "lyrics.db"),
	}

	src, closeFn, err := openSource(cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &services.CachedSource{}, src)
	assert.FileExists(t, cfg.CachePath)
}
