package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"sutra/models"
)

const maxPayloadBytes = 2 << 20

// ErrNoMatch is returned when the upstream answers Response:"False", which is
// how the OMDb API signals "nothing found" with a 200 status.
var ErrNoMatch = errors.New("upstream reported no match")

// StatusError carries a non-2xx upstream status. A 401 means the daily key
// quota is exhausted and is not worth retrying.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb status %d", e.Code)
}

// Client is a thin OMDb API wrapper. Transient failures are retried up to
// three times; quota exhaustion (401) aborts immediately.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, httpc: httpc}
}

// omdbPayload is the single envelope OMDb uses for every endpoint.
type omdbPayload struct {
	Response     string `json:"Response"`
	Error        string `json:"Error"`
	TotalResults string `json:"totalResults"`
	TotalSeasons string `json:"totalSeasons"`

	Search []omdbEntry `json:"Search"`

	omdbEntry

	Plot       string          `json:"Plot"`
	Rated      string          `json:"Rated"`
	Released   string          `json:"Released"`
	Runtime    string          `json:"Runtime"`
	Genre      string          `json:"Genre"`
	Director   string          `json:"Director"`
	Writer     string          `json:"Writer"`
	Actors     string          `json:"Actors"`
	Language   string          `json:"Language"`
	Country    string          `json:"Country"`
	Awards     string          `json:"Awards"`
	Ratings    []omdbRating    `json:"Ratings"`
	IMDBRating string          `json:"imdbRating"`
	IMDBVotes  string          `json:"imdbVotes"`
	Metascore  string          `json:"Metascore"`
	BoxOffice  string          `json:"BoxOffice"`
	Production string          `json:"Production"`
	Website    string          `json:"Website"`
	Episodes   []omdbEpisode   `json:"Episodes"`
}

type omdbEntry struct {
	IMDBID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type omdbRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type omdbEpisode struct {
	Title      string `json:"Title"`
	Released   string `json:"Released"`
	Episode    string `json:"Episode"`
	IMDBRating string `json:"imdbRating"`
	IMDBID     string `json:"imdbID"`
}

func (c *Client) get(ctx context.Context, params url.Values) (*omdbPayload, error) {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "/?" + params.Encode()

	payload, err := retry.DoWithData(func() (*omdbPayload, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &StatusError{Code: resp.StatusCode}
		}

		var p omdbPayload
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&p); err != nil {
			return nil, fmt.Errorf("decode omdb payload: %w", err)
		}
		return &p, nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
				return false
			}
			return true
		}),
	)
	if err != nil {
		return nil, err
	}

	if payload.Response == "False" {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, payload.Error)
	}
	return payload, nil
}

// Search queries the s= endpoint. mediaType may be empty, "movie" or "series".
func (c *Client) Search(ctx context.Context, query, mediaType string, page int) (*models.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))
	if mediaType != "" {
		params.Set("type", mediaType)
	}

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	search := make([]models.Media, 0, len(payload.Search))
	for _, e := range payload.Search {
		search = append(search, e.toMedia())
	}
	total := payload.TotalResults
	if total == "" {
		total = "0"
	}
	return &models.SearchResult{Search: search, TotalResults: total, Page: page}, nil
}

// Details fetches a full record by IMDb ID with the long plot.
func (c *Client) Details(ctx context.Context, imdbID string) (*models.Media, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	return payload.toDetailedMedia(), nil
}

// ByTitle fetches a full record by exact title, optionally pinned to a year.
func (c *Client) ByTitle(ctx context.Context, title, year string) (*models.Media, error) {
	params := url.Values{}
	params.Set("t", title)
	params.Set("plot", "full")
	if year != "" {
		params.Set("y", year)
	}

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	return payload.toDetailedMedia(), nil
}

// Season fetches the episode listing for one season of a series.
func (c *Client) Season(ctx context.Context, imdbID string, season int) (*models.Season, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("Season", strconv.Itoa(season))

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	episodes := make([]models.Episode, 0, len(payload.Episodes))
	for _, ep := range payload.Episodes {
		episodes = append(episodes, models.Episode{
			Title:      ep.Title,
			Released:   ep.Released,
			Episode:    ep.Episode,
			IMDBRating: ep.IMDBRating,
			IMDBID:     ep.IMDBID,
		})
	}
	total := payload.TotalSeasons
	if total == "" {
		total = "1"
	}
	return &models.Season{Season: season, TotalSeasons: total, Episodes: episodes}, nil
}

func (e omdbEntry) toMedia() models.Media {
	return models.Media{
		IMDBID:    e.IMDBID,
		Title:     e.Title,
		Year:      e.Year,
		MediaType: normalizeType(e.Type),
		Poster:    e.Poster,
	}
}

func (p *omdbPayload) toDetailedMedia() *models.Media {
	m := p.omdbEntry.toMedia()
	m.Plot = p.Plot
	m.Rated = p.Rated
	m.Released = p.Released
	m.Runtime = p.Runtime
	m.Genre = p.Genre
	m.Director = p.Director
	m.Writer = p.Writer
	m.Actors = p.Actors
	m.Language = p.Language
	m.Country = p.Country
	m.Awards = p.Awards
	m.IMDBRating = p.IMDBRating
	m.IMDBVotes = p.IMDBVotes
	m.Metascore = p.Metascore
	m.BoxOffice = p.BoxOffice
	m.Production = p.Production
	m.Website = p.Website
	m.TotalSeasons = p.TotalSeasons
	for _, r := range p.Ratings {
		m.Ratings = append(m.Ratings, models.Rating{Source: r.Source, Value: r.Value})
	}
	return &m
}

// normalizeType folds OMDb's type values into the three the app understands.
func normalizeType(t string) string {
	switch t {
	case "movie":
		return "movie"
	case "series":
		return "series"
	default:
		return "anime"
	}
}
