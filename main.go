package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"sutra/api"
	"sutra/config"
	"sutra/handlers"
	"sutra/services/availability"
	"sutra/services/feed"
	"sutra/services/lists"
	"sutra/services/metadata"
	"sutra/services/proxy"
	"sutra/services/scraper"
	"sutra/services/watchlist"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("🚀 Sutra Backend Starting...")

	configPath := os.Getenv("SUTRA_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// File logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	if settings.Metadata.APIKey == "" {
		log.Println("Warning: no metadata API key configured; the builtin dataset will answer every request")
	}

	if err := os.MkdirAll(settings.Storage.Directory, 0o755); err != nil {
		log.Fatalf("failed to create storage directory: %v", err)
	}

	// Proxy chain and source adapters
	fetcher := proxy.New(
		settings.Proxies.Endpoints,
		time.Duration(settings.Proxies.AttemptTimeoutSec)*time.Second,
		settings.Scrapers.UserAgent,
		nil,
	)

	reddit := scraper.NewRedditAdapter(fetcher, settings.Scrapers.UserAgent, nil)
	var adapters []scraper.Adapter
	if settings.Scrapers.RedditEnabled {
		adapters = append(adapters, reddit)
	}
	if settings.Scrapers.NewsEnabled {
		adapters = append(adapters, scraper.NewNewsAdapter(fetcher))
	}
	youtube := scraper.NewYouTubeAdapter(fetcher)
	if settings.Scrapers.YouTubeEnabled {
		adapters = append(adapters, youtube)
	}
	deviantart := scraper.NewDeviantArtAdapter(fetcher)
	if settings.Scrapers.DeviantArtEnabled {
		adapters = append(adapters, deviantart)
	}

	// Services
	feedOpts := feed.Options{
		MemeRatio:      settings.Feed.MemeRatio,
		FanArtRatio:    settings.Feed.FanArtRatio,
		AdapterTimeout: time.Duration(settings.Feed.AdapterSec) * time.Second,
		Timeout:        time.Duration(settings.Feed.TimeoutSec) * time.Second,
	}
	if settings.Feed.Seed != 0 {
		feedOpts.Rand = rand.New(rand.NewSource(settings.Feed.Seed))
	}
	feedSvc := feed.New(adapters, reddit, feedOpts)

	metadataSvc := metadata.New(
		metadata.NewClient(settings.Metadata.BaseURL, settings.Metadata.APIKey, nil),
		youtube,
	)

	availabilitySvc := availability.New(
		scraper.NewJustWatchAdapter(fetcher),
		time.Duration(settings.Cache.AvailabilityTTLHours)*time.Hour,
	)

	listsSvc, err := lists.New(settings.Storage.Directory, metadata.BuiltinTitles())
	if err != nil {
		log.Fatalf("failed to init list store: %v", err)
	}
	watchlistSvc, err := watchlist.New(settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to init watchlist store: %v", err)
	}

	router := api.NewRouter(api.Handlers{
		Metadata:     handlers.NewMetadataHandler(metadataSvc),
		Feed:         handlers.NewFeedHandler(feedSvc, metadataSvc, deviantart),
		Availability: handlers.NewAvailabilityHandler(availabilitySvc),
		Lists:        handlers.NewListsHandler(listsSvc),
		Watchlist:    handlers.NewWatchlistHandler(watchlistSvc),
	})

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("🛑 Shutdown signal received, cleaning up...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("✅ Shutdown complete")
}
