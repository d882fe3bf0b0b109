package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Metadata MetadataSettings `json:"metadata"`
	Proxies  ProxySettings    `json:"proxies"`
	Scrapers ScraperSettings  `json:"scrapers"`
	Feed     FeedSettings     `json:"feed"`
	Cache    CacheSettings    `json:"cache"`
	Storage  StorageSettings  `json:"storage"`
	Log      LogConfig        `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type MetadataSettings struct {
	BaseURL string `json:"baseUrl"`
	APIKey  string `json:"apiKey"`
}

// ProxySettings lists the CORS passthrough endpoints tried in order when a
// target refuses direct fetches. Each entry is a prefix the encoded target
// URL is appended to.
type ProxySettings struct {
	Endpoints         []string `json:"endpoints"`
	AttemptTimeoutSec int      `json:"attemptTimeoutSec"`
}

type ScraperSettings struct {
	RedditEnabled     bool   `json:"redditEnabled"`
	NewsEnabled       bool   `json:"newsEnabled"`
	YouTubeEnabled    bool   `json:"youtubeEnabled"`
	DeviantArtEnabled bool   `json:"deviantartEnabled"`
	Country           string `json:"country"` // availability lookups, ISO 3166-1 alpha-2
	UserAgent         string `json:"userAgent"`
}

// FeedSettings controls the aggregator's optional variety sampling. A zero
// Seed keeps reclassification disabled so the feed is deterministic.
type FeedSettings struct {
	MemeRatio    float64 `json:"memeRatio"`
	FanArtRatio  float64 `json:"fanArtRatio"`
	Seed         int64   `json:"seed"`
	TimeoutSec   int     `json:"timeoutSec"`   // aggregate budget
	AdapterSec   int     `json:"adapterSec"`   // per-adapter budget
}

type CacheSettings struct {
	AvailabilityTTLHours int `json:"availabilityTtlHours"`
}

type StorageSettings struct {
	Directory string `json:"directory"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultProxyEndpoints are the public CORS relays tried in order.
var DefaultProxyEndpoints = []string{
	"https://api.allorigins.win/raw?url=",
	"https://api.codetabs.com/v1/proxy?quest=",
	"https://corsproxy.io/?",
	"https://thingproxy.freeboard.io/fetch/",
}

// DefaultSettings returns the configuration written on first run.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Host: "0.0.0.0", Port: 8485},
		Metadata: MetadataSettings{
			BaseURL: "https://www.omdbapi.com/",
			APIKey:  "",
		},
		Proxies: ProxySettings{
			Endpoints:         append([]string(nil), DefaultProxyEndpoints...),
			AttemptTimeoutSec: 8,
		},
		Scrapers: ScraperSettings{
			RedditEnabled:     true,
			NewsEnabled:       true,
			YouTubeEnabled:    true,
			DeviantArtEnabled: true,
			Country:           "US",
			UserAgent:         "sutra/1.0 (media discovery)",
		},
		Feed: FeedSettings{
			MemeRatio:   0.2,
			FanArtRatio: 0.2,
			Seed:        0,
			TimeoutSec:  20,
			AdapterSec:  10,
		},
		Cache:   CacheSettings{AvailabilityTTLHours: 24},
		Storage: StorageSettings{Directory: "data"},
		Log: LogConfig{
			MaxSize:    20,
			MaxAge:     14,
			MaxBackups: 3,
		},
	}
}

// Manager loads and saves the settings file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures the parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk or creates defaults if missing.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}

	// Backfill defaults for settings introduced after the config was written.
	if len(s.Proxies.Endpoints) == 0 {
		s.Proxies.Endpoints = append([]string(nil), DefaultProxyEndpoints...)
	}
	if s.Proxies.AttemptTimeoutSec <= 0 {
		s.Proxies.AttemptTimeoutSec = 8
	}
	if strings.TrimSpace(s.Metadata.BaseURL) == "" {
		s.Metadata.BaseURL = "https://www.omdbapi.com/"
	}
	if strings.TrimSpace(s.Scrapers.Country) == "" {
		s.Scrapers.Country = "US"
	}
	if strings.TrimSpace(s.Scrapers.UserAgent) == "" {
		s.Scrapers.UserAgent = "sutra/1.0 (media discovery)"
	}
	if s.Cache.AvailabilityTTLHours <= 0 {
		s.Cache.AvailabilityTTLHours = 24
	}
	if s.Feed.TimeoutSec <= 0 {
		s.Feed.TimeoutSec = 20
	}
	if s.Feed.AdapterSec <= 0 {
		s.Feed.AdapterSec = 10
	}
	if strings.TrimSpace(s.Storage.Directory) == "" {
		s.Storage.Directory = "data"
	}

	return s, nil
}

// Save writes settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}

	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
