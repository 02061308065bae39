package store

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"lyricyear/models"
)

var errNotYearFile = errors.New("not a year file")

// yearFile is one by-year file parsed in full, so that a pivot over many
// words reads every file once.
type yearFile struct {
	scan    models.FileScan
	entries []models.WordCount
}

// ListWordsFromAllYears returns every distinct word found in the artist's
// year files, sorted. Unreadable files and malformed lines are ignored.
func (s *Store) ListWordsFromAllYears(artistName string) ([]string, error) {
	files, err := s.loadYearFiles(artistName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, yf := range files {
		for _, e := range yf.entries {
			seen[e.Word] = struct{}{}
		}
	}

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}

func (s *Store) loadYearFiles(artistName string) ([]yearFile, error) {
	dir := s.YearDir(artistName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	logger := log.WithField("component", "store")
	files := make([]yearFile, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		yf := yearFile{scan: models.FileScan{
			Path: path,
			Year: strings.TrimSuffix(entry.Name(), fileExt),
		}}

		if !strings.HasSuffix(entry.Name(), fileExt) {
			yf.scan.Err = errNotYearFile
		} else {
			yf.entries, yf.scan.SkippedLines, yf.scan.Err = readYearFile(path)
		}

		if yf.scan.Err != nil {
			logger.Debugf("skipping %s: %v", path, yf.scan.Err)
			yf.entries = nil
		}
		files = append(files, yf)
	}
	return files, nil
}

// readYearFile returns the well-formed lines of a year file and the number
// of lines it could not parse.
func readYearFile(path string) ([]models.WordCount, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var entries []models.WordCount
	skipped := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		wc, ok := parseLine(scanner.Text())
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, wc)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return entries, skipped, nil
}

func parseLine(line string) (models.WordCount, bool) {
	line = strings.TrimSuffix(line, "\r")
	word, rawCount, ok := strings.Cut(line, ",")
	if !ok || word == "" {
		return models.WordCount{}, false
	}

	count, err := strconv.Atoi(strings.TrimSpace(rawCount))
	if err != nil {
		return models.WordCount{}, false
	}
	return models.WordCount{Word: word, Count: count}, true
}
