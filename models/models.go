package models

type Album struct {
	ID          int    `json:"album_id"`
	Name        string `json:"album_name"`
	ReleaseDate string `json:"album_release_date"`
}

type Track struct {
	ID      int    `json:"track_id"`
	Name    string `json:"track_name"`
	AlbumID int    `json:"album_id"`
}

// WordCounts maps a lowercase token to the number of times it occurred.
type WordCounts map[string]int

// YearCounts maps a year bucket to the word counts of every album resolved to it.
type YearCounts map[string]WordCounts

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FileScan is the outcome of scanning one year file during a pivot.
// Err is set when the whole file was skipped.
type FileScan struct {
	Path         string
	Year         string
	Matches      int
	SkippedLines int
	Err          error
}

type PivotReport struct {
	Word       string
	OutputPath string
	Files      []FileScan
}

func (r PivotReport) SkippedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

func (r PivotReport) SkippedLines() int {
	n := 0
	for _, f := range r.Files {
		n += f.SkippedLines
	}
	return n
}

func (r PivotReport) Matches() int {
	n := 0
	for _, f := range r.Files {
		n += f.Matches
	}
	return n
}
