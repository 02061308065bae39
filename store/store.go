// Package store persists per-year word counts as flat "word, count" files
// and pivots them into per-word "year, count" files.
//
// Layout under the root directory:
//
//	[<artist>/]by_year/<year>.csv
//	<artist>/by_word/<word>.csv
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"lyricyear/models"
)

const (
	yearDirName = "by_year"
	wordDirName = "by_word"
	fileExt     = ".csv"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// YearDir is the by-year directory; an empty artist name is not namespaced.
func (s *Store) YearDir(artistName string) string {
	return filepath.Join(s.root, artistName, yearDirName)
}

func (s *Store) WordDir(artistName string) string {
	return filepath.Join(s.root, artistName, wordDirName)
}

// WriteCountToFile writes one <year>.csv per bucket, replacing existing files.
// Commas are dropped from words so every line splits cleanly. Lines follow map
// iteration order. A failure mid-write leaves the current file truncated.
func (s *Store) WriteCountToFile(counts models.YearCounts, artistName string) error {
	dir := s.YearDir(artistName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	for year, words := range counts {
		path := filepath.Join(dir, year+fileExt)
		if err := writeYearFile(path, words); err != nil {
			return err
		}
		log.WithFields(log.Fields{"component": "store", "year": year}).
			Debugf("wrote %d words to %s", len(words), path)
	}
	return nil
}

func writeYearFile(path string, words models.WordCounts) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for word, count := range words {
		fmt.Fprintf(w, "%s, %d\n", strings.ReplaceAll(word, ",", ""), count)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

// WordCountByWord writes <word>.csv under the by-word directory for every
// word, listing "year, count" for each year file that contains the word.
// Unreadable year files and malformed lines are skipped and reported in the
// returned PivotReport values rather than failing the pivot.
func (s *Store) WordCountByWord(artistName string, words []string) ([]models.PivotReport, error) {
	files, err := s.loadYearFiles(artistName)
	if err != nil {
		return nil, err
	}

	dir := s.WordDir(artistName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}

	reports := make([]models.PivotReport, 0, len(words))
	for _, word := range words {
		path := filepath.Join(dir, SanitizeFilename(word)+fileExt)
		report, err := writeWordFile(path, word, files)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func writeWordFile(path, word string, files []yearFile) (models.PivotReport, error) {
	report := models.PivotReport{
		Word:       word,
		OutputPath: path,
		Files:      make([]models.FileScan, 0, len(files)),
	}

	f, err := os.Create(path)
	if err != nil {
		return report, errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, yf := range files {
		scan := yf.scan
		if scan.Err == nil {
			for _, e := range yf.entries {
				if e.Word != word {
					continue
				}
				fmt.Fprintf(w, "%s, %d\n", yf.scan.Year, e.Count)
				scan.Matches++
			}
		}
		report.Files = append(report.Files, scan)
	}

	if err := w.Flush(); err != nil {
		return report, errors.Wrapf(err, "write %s", path)
	}
	return report, f.Close()
}

// SanitizeFilename keeps letters, digits, underscores and apostrophes.
// Distinct words may map to the same name; the last one written wins.
func SanitizeFilename(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' {
			return r
		}
		return -1
	}, word)
}
