package main

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lyricyear/cache"
	"lyricyear/config"
	"lyricyear/services"
	"lyricyear/store"
)

type options struct {
	artist     string
	fetch      bool
	word       string
	allWords   bool
	top        int
	configPath string
	outputDir  string
}

// sourceOpener builds the provider for a fetch; the returned func releases it.
type sourceOpener func(cfg *config.Config) (services.Source, func() error, error)

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "lyricyear",
		Short:        "Count an artist's lyric words by release year",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			setupLogging(cfg.Log)

			if opts.outputDir != "" {
				cfg.OutputDir = opts.outputDir
			}

			return run(cmd.Context(), cfg, opts, openSource)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.artist, "artist", "a", "", "artist name")
	flags.BoolVarP(&opts.fetch, "fetch", "f", false, "fetch lyrics and write by-year counts")
	flags.StringVarP(&opts.word, "word", "w", "", "write the by-word file for one word")
	flags.BoolVar(&opts.allWords, "all-words", false, "write by-word files for every word seen")
	flags.IntVar(&opts.top, "top", 0, "log the N most frequent words per year after a fetch")
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "output directory (overrides OUTPUT_DIR)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, opts options, open sourceOpener) error {
	if !opts.fetch && opts.word == "" && !opts.allWords {
		log.Info("nothing to do; pass --fetch, --word or --all-words")
		return nil
	}
	if opts.artist == "" {
		log.Error("artist name is required (--artist)")
		return nil
	}

	st := store.New(cfg.OutputDir)

	if opts.fetch {
		if err := fetch(ctx, cfg, st, opts, open); err != nil {
			return err
		}
	}

	if opts.word != "" {
		if err := pivot(st, opts.artist, []string{opts.word}); err != nil {
			return err
		}
	}

	if opts.allWords {
		words, err := st.ListWordsFromAllYears(opts.artist)
		if err != nil {
			return err
		}
		log.Infof("writing by-word files for %d words", len(words))
		if err := pivot(st, opts.artist, words); err != nil {
			return err
		}
	}

	return nil
}

func fetch(ctx context.Context, cfg *config.Config, st *store.Store, opts options, open sourceOpener) error {
	src, closeSource, err := open(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	counts, err := services.NewAggregator(src, cfg.IgnoredPhrases).WordCountByYear(ctx, opts.artist)
	if err != nil {
		return errors.Wrapf(err, "count words for %s", opts.artist)
	}

	if err := st.WriteCountToFile(counts, opts.artist); err != nil {
		return err
	}
	log.Infof("wrote %d year files to %s", len(counts), st.YearDir(opts.artist))

	if opts.top > 0 {
		years := make([]string, 0, len(counts))
		for year := range counts {
			years = append(years, year)
		}
		sort.Strings(years)

		for _, year := range years {
			for i, wc := range services.TopWords(counts[year], opts.top) {
				log.WithField("year", year).Infof("%d. %s (%d)", i+1, wc.Word, wc.Count)
			}
		}
	}
	return nil
}

func pivot(st *store.Store, artist string, words []string) error {
	reports, err := st.WordCountByWord(artist, words)
	if err != nil {
		return err
	}
	for _, r := range reports {
		log.WithField("word", r.Word).Debugf("%s: %d years, %d files skipped, %d lines skipped",
			r.OutputPath, r.Matches(), r.SkippedFiles(), r.SkippedLines())
	}
	return nil
}

func openSource(cfg *config.Config) (services.Source, func() error, error) {
	if cfg.Musixmatch.APIKey == "" {
		return nil, nil, errors.New("MUSIXMATCH_API_KEY is required to fetch")
	}

	var src services.Source = services.NewMusixmatch(cfg.Musixmatch)
	if cfg.CachePath == "" {
		return src, func() error { return nil }, nil
	}

	lyricsCache, err := cache.New(cfg.CachePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cache init failed")
	}

	total, found := lyricsCache.Stats()
	log.WithField("component", "cache").Infof("%d entries, %d with lyrics", total, found)

	return services.NewCachedSource(src, lyricsCache), lyricsCache.Close, nil
}
