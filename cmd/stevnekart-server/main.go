package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mkleiven/stevnekart/internal/dataset"
	"github.com/mkleiven/stevnekart/internal/logger"
	"github.com/mkleiven/stevnekart/internal/scraper"
	"github.com/mkleiven/stevnekart/internal/server"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

var (
	addr        = flag.String("addr", envOr("STEVNEKART_ADDR", ":8080"), "Listen address (or env: STEVNEKART_ADDR)")
	datasetURL  = flag.String("dataset-url", envOr("STEVNEKART_DATASET_URL", dataset.DefaultURL), "Range dataset URL (or env: STEVNEKART_DATASET_URL)")
	noScrape    = flag.Bool("no-terminliste", false, "Skip scraping the terminliste for real stevner")
	verbose     = flag.Bool("verbose", false, "Enable debug logging")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	if *verbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	raw, err := dataset.NewWithURL(*datasetURL).Fetch()
	if err != nil {
		logger.Error("dataset load failed", logger.Fields{"url": *datasetURL}, err)
		os.Exit(1)
	}

	if !*noScrape {
		byBane, err := scraper.New().FetchStevner()
		if err != nil {
			logger.Warn("terminliste scrape failed", logger.Fields{"error": err.Error()})
		} else {
			scraper.Attach(raw, byBane)
		}
	}

	ranges := skytebane.Normalize(raw)
	logger.Info("dataset loaded", logger.Fields{
		"source": *datasetURL,
		"ranges": len(ranges),
	})

	router := server.New(ranges).Router()
	logger.Info("server starting", logger.Fields{"addr": *addr})
	if err := router.Run(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
