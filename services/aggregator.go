package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"lyricyear/models"
)

type Aggregator struct {
	source         Source
	ignoredPhrases []string
}

func NewAggregator(source Source, ignoredPhrases []string) *Aggregator {
	return &Aggregator{
		source:         source,
		ignoredPhrases: ignoredPhrases,
	}
}

// WordCountByYear counts every lyric word of the artist's albums, bucketed by
// release year. Albums are deduplicated by exact name: the first album seen
// with a given name is counted, later ones are skipped. Any provider error
// aborts the run.
func (a *Aggregator) WordCountByYear(ctx context.Context, artistName string) (models.YearCounts, error) {
	logger := log.WithFields(log.Fields{
		"component": "aggregator",
		"run_id":    uuid.NewString(),
		"artist":    artistName,
	})

	artistID, err := a.source.ArtistID(ctx, artistName)
	if err != nil {
		return nil, err
	}

	albums, err := a.source.Albums(ctx, artistID)
	if err != nil {
		return nil, err
	}
	logger.Infof("%d albums listed", len(albums))

	results := make(models.YearCounts)
	seen := make(map[string]bool)

	for _, album := range albums {
		year, err := ParseYear(album.ReleaseDate)
		if err != nil {
			return nil, errors.Wrapf(err, "album %q", album.Name)
		}

		if seen[album.Name] {
			logger.WithField("album", album.Name).Debug("skipping already processed album")
			continue
		}
		seen[album.Name] = true

		logger.WithFields(log.Fields{"album": album.Name, "year": year}).
			Infof("Processing: %s (%s)", album.Name, year)

		tracks, err := a.source.Tracks(ctx, album.ID)
		if err != nil {
			return nil, err
		}

		counts, ok := results[year]
		if !ok {
			counts = make(models.WordCounts)
			results[year] = counts
		}

		for _, track := range tracks {
			lyrics, err := a.source.Lyrics(ctx, track.ID)
			if err != nil {
				return nil, err
			}
			for _, word := range Tokenize(lyrics, a.ignoredPhrases...) {
				counts[word]++
			}
		}
	}

	logger.Infof("%d year buckets", len(results))
	return results, nil
}
