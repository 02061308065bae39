package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"lyricyear/config"
	"lyricyear/models"
)

var (
	ErrArtistNotFound   = errors.New("artist not found")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Source is the catalog and lyrics provider the aggregator reads from.
type Source interface {
	ArtistID(ctx context.Context, name string) (int, error)
	Albums(ctx context.Context, artistID int) ([]models.Album, error)
	Tracks(ctx context.Context, albumID int) ([]models.Track, error)
	Lyrics(ctx context.Context, trackID int) (string, error)
}

// Musixmatch talks to the Musixmatch ws/1.1 API.
type Musixmatch struct {
	baseURL  string
	apiKey   string
	pageSize int
	client   *http.Client
}

func NewMusixmatch(cfg config.MusixmatchConfig) *Musixmatch {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Musixmatch{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/") + "/",
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type mxmEnvelope struct {
	Message struct {
		Header struct {
			StatusCode int `json:"status_code"`
		} `json:"header"`
		Body json.RawMessage `json:"body"`
	} `json:"message"`
}

// request performs one API call and returns the envelope status code and body.
func (m *Musixmatch) request(ctx context.Context, method string, params url.Values) (int, json.RawMessage, error) {
	params.Set("apikey", m.apiKey)
	apiURL := m.baseURL + method + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "musixmatch %s", method)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "musixmatch %s request failed", method)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "musixmatch %s read body", method)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, nil, errors.Wrapf(ErrUnexpectedStatus, "musixmatch %s: HTTP %d", method, resp.StatusCode)
	}

	var env mxmEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return 0, nil, errors.Wrapf(err, "musixmatch %s parse error", method)
	}

	return env.Message.Header.StatusCode, env.Message.Body, nil
}

// call is request for methods where anything but a 200 envelope is fatal.
func (m *Musixmatch) call(ctx context.Context, method string, params url.Values, out any) error {
	status, body, err := m.request(ctx, method, params)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return errors.Wrapf(ErrUnexpectedStatus, "musixmatch %s: status_code %d", method, status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "musixmatch %s parse error", method)
	}
	return nil
}

// ArtistID returns the id of the first search hit. Ambiguous names resolve
// to whatever the provider ranks first.
func (m *Musixmatch) ArtistID(ctx context.Context, name string) (int, error) {
	var body struct {
		ArtistList []struct {
			Artist struct {
				ID   int    `json:"artist_id"`
				Name string `json:"artist_name"`
			} `json:"artist"`
		} `json:"artist_list"`
	}

	if err := m.call(ctx, "artist.search", url.Values{"q_artist": {name}}, &body); err != nil {
		return 0, err
	}

	if len(body.ArtistList) == 0 {
		return 0, errors.Wrap(ErrArtistNotFound, name)
	}

	artist := body.ArtistList[0].Artist
	log.WithField("component", "musixmatch").Infof("found artist: %s (ID: %d)", artist.Name, artist.ID)
	return artist.ID, nil
}

// Albums returns a single page of the artist's albums.
func (m *Musixmatch) Albums(ctx context.Context, artistID int) ([]models.Album, error) {
	var body struct {
		AlbumList []struct {
			Album models.Album `json:"album"`
		} `json:"album_list"`
	}

	params := url.Values{
		"artist_id": {strconv.Itoa(artistID)},
		"page_size": {strconv.Itoa(m.pageSize)},
	}
	if err := m.call(ctx, "artist.albums.get", params, &body); err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(body.AlbumList))
	for _, a := range body.AlbumList {
		albums = append(albums, a.Album)
	}
	return albums, nil
}

func (m *Musixmatch) Tracks(ctx context.Context, albumID int) ([]models.Track, error) {
	var body struct {
		TrackList []struct {
			Track models.Track `json:"track"`
		} `json:"track_list"`
	}

	params := url.Values{"album_id": {strconv.Itoa(albumID)}}
	if err := m.call(ctx, "album.tracks.get", params, &body); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(body.TrackList))
	for _, t := range body.TrackList {
		tracks = append(tracks, t.Track)
	}
	return tracks, nil
}

// Lyrics returns "" when the provider has no lyrics for the track, whatever
// the envelope status. Only transport and HTTP failures are errors.
func (m *Musixmatch) Lyrics(ctx context.Context, trackID int) (string, error) {
	status, raw, err := m.request(ctx, "track.lyrics.get", url.Values{"track_id": {strconv.Itoa(trackID)}})
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return "", nil
	}

	var body struct {
		Lyrics *struct {
			Body string `json:"lyrics_body"`
		} `json:"lyrics"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		if status != http.StatusOK {
			return "", nil
		}
		return "", errors.Wrap(err, "musixmatch track.lyrics.get parse error")
	}

	if body.Lyrics == nil {
		return "", nil
	}
	return unescape(body.Lyrics.Body), nil
}

// unescape decodes character references only; anything that looks like
// markup is lyric text and stays as is.
func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}
