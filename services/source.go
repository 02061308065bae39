package services

import (
	"context"

	"lyricyear/cache"
)

// CachedSource serves lyrics from a LyricsCache and falls through to the
// wrapped Source on a miss. Catalog lookups are not cached.
type CachedSource struct {
	Source
	cache *cache.LyricsCache
}

func NewCachedSource(src Source, c *cache.LyricsCache) *CachedSource {
	return &CachedSource{Source: src, cache: c}
}

func (s *CachedSource) Lyrics(ctx context.Context, trackID int) (string, error) {
	if entry, ok := s.cache.Get(trackID); ok {
		return entry.Lyrics, nil
	}

	lyrics, err := s.Source.Lyrics(ctx, trackID)
	if err != nil {
		return "", err
	}

	s.cache.Set(trackID, lyrics, lyrics != "")
	return lyrics, nil
}
