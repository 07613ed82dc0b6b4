package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/analyzer"
	"github.com/veritasmainapp/VERITAS-AI/internal/cache"
	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/fetch"
	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/llm"
	"github.com/veritasmainapp/VERITAS-AI/pkg/utils"
)

// Command line flags
var (
	urlFlag     = flag.String("url", "", "Product link to analyze")
	showHistory = flag.Bool("history", false, "Print recorded scans and exit")
	jsonOut     = flag.Bool("json", false, "Print results as JSON")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	store, err := history.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize history store")
	}

	ctx := context.Background()

	if *showHistory {
		if err := printHistory(ctx, store); err != nil {
			logger.WithError(err).Fatal("Failed to load history")
		}
		return
	}

	if *urlFlag == "" {
		fmt.Fprintln(os.Stderr, "Please paste a link first.")
		flag.Usage()
		os.Exit(2)
	}

	// A one-shot scan needs working vendor credentials up front.
	if err := cfg.ValidateFetch(); err != nil {
		logger.WithError(err).Fatal("Scraper configuration invalid")
	}
	if err := cfg.ValidateLLM(); err != nil {
		logger.WithError(err).Fatal("Verdict model configuration invalid")
	}

	fetcher, err := fetch.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize page fetcher")
	}

	provider, err := llm.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize verdict provider")
	}

	verdictCache, err := cache.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize verdict cache")
	}
	defer verdictCache.Close()

	service := analyzer.NewService(fetcher, provider, store, verdictCache, logger)

	entry, cached, err := service.Analyze(ctx, *urlFlag)
	if err != nil {
		logger.WithError(err).Fatal("Scan failed")
	}

	if *jsonOut {
		printJSON(entry)
		return
	}

	result := entry.FullData
	fmt.Printf("%s\n", result.ProductName)
	fmt.Printf("Score: %d/100  [%s]\n", result.Score, result.VerdictBadge)
	fmt.Printf("\n%s\n", result.VerdictSummary)
	fmt.Printf("\nThe Marketing Claim:  %s\n", result.MarketingClaim)
	fmt.Printf("The Reality Check:    %s\n", result.RealityCheck)
	fmt.Printf("Reddit Consensus:     %s\n", result.RedditConsensus)
	fmt.Printf("\nRecorded %s as %s\n", entry.Timestamp, entry.ID)
	if cached {
		fmt.Println("(served from cache)")
	}
}

func printHistory(ctx context.Context, store history.Store) error {
	entries, err := store.Load(ctx)
	if err != nil {
		return err
	}

	if *jsonOut {
		printJSON(entries)
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("Nothing scanned yet.")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s  %-40s %s\n", entry.Timestamp, entry.Summary(), entry.ID)
	}
	return nil
}

func printJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
