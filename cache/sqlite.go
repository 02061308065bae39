package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LyricsCache stores lyrics bodies keyed by provider track id.
type LyricsCache struct {
	db *sql.DB
	mu sync.RWMutex
}

type Entry struct {
	Lyrics string
	Found  bool
}

func New(dbPath string) (*LyricsCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create cache directory %s", dir)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "open cache")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS lyrics (
			track_id   INTEGER PRIMARY KEY,
			lyrics     TEXT,
			found      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create lyrics table")
	}

	log.WithField("component", "cache").Infof("SQLite initialized at %s", dbPath)
	return &LyricsCache{db: db}, nil
}

func (c *LyricsCache) Get(trackID int) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var lyrics sql.NullString
	var found int

	err := c.db.QueryRow(
		"SELECT lyrics, found FROM lyrics WHERE track_id = ?", trackID,
	).Scan(&lyrics, &found)
	if err != nil {
		return nil, false
	}

	return &Entry{
		Lyrics: lyrics.String,
		Found:  found == 1,
	}, true
}

func (c *LyricsCache) Set(trackID int, lyrics string, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	foundInt := 0
	if found {
		foundInt = 1
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO lyrics (track_id, lyrics, found) VALUES (?, ?, ?)`,
		trackID, lyrics, foundInt,
	)
	if err != nil {
		log.WithField("component", "cache").Warnf("write error: %v", err)
	}
}

func (c *LyricsCache) Stats() (total int, found int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.db.QueryRow("SELECT COUNT(*) FROM lyrics").Scan(&total); err != nil {
		log.WithField("component", "cache").Warnf("stats error: %v", err)
	}
	if err := c.db.QueryRow("SELECT COUNT(*) FROM lyrics WHERE found = 1").Scan(&found); err != nil {
		log.WithField("component", "cache").Warnf("stats error: %v", err)
	}
	return
}

func (c *LyricsCache) Close() error {
	return c.db.Close()
}
