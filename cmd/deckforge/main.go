// deckforge analyzes Magic deck lists and recommends cards, either as
// a one-shot CLI or as a local API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mtgkit/deckforge/internal/api"
	"github.com/mtgkit/deckforge/internal/cards/cardcache"
	"github.com/mtgkit/deckforge/internal/cards/scryfall"
	"github.com/mtgkit/deckforge/internal/charts"
	"github.com/mtgkit/deckforge/internal/config"
	"github.com/mtgkit/deckforge/internal/deck"
	"github.com/mtgkit/deckforge/internal/export"
	"github.com/mtgkit/deckforge/internal/recommend"
	"github.com/mtgkit/deckforge/internal/storage"
	"github.com/mtgkit/deckforge/internal/storage/repository"
	"github.com/mtgkit/deckforge/internal/version"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(os.Args[2:])
	case "recommend":
		runRecommend(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "service":
		runServiceCommand()
	case "version":
		fmt.Println(version.GetVersion())
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Usage: deckforge <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze    Analyze a deck list file")
	fmt.Println("  recommend  Recommend cards for a deck list file")
	fmt.Println("  serve      Run the local API server")
	fmt.Println("  service    Manage the API server as an OS service")
	fmt.Println("  version    Print the version")
}

// newEngine builds the card service stack and engine from config.
func newEngine(cfg *config.Config) (*recommend.Engine, *cardcache.Service) {
	client := scryfall.NewClientWithDelay(cfg.RequestDelay())
	cache := cardcache.NewWithTTL(client, cfg.CacheTTL())
	return recommend.New(cache), cache
}

// loadDeckFile parses a deck list from a file, or stdin for "-".
func loadDeckFile(path string) (*deck.Deck, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open deck list: %w", err)
		}
		defer f.Close()
		r = f
	}
	d, err := deck.ParseDeckList(r)
	if err != nil {
		return nil, err
	}
	if path != "-" {
		d.Name = filepath.Base(path)
	}
	return d, nil
}

// hydrateDeck fills in card data for name-only deck entries.
func hydrateDeck(ctx context.Context, source recommend.CardSource, d *deck.Deck) {
	for i := range d.Cards {
		if d.Cards[i].Card.TypeLine != "" {
			continue
		}
		card, ok := source.GetByName(ctx, d.Cards[i].Card.Name)
		if !ok {
			log.Printf("warning: card %q not found, analyzing with name only", d.Cards[i].Card.Name)
			continue
		}
		card.Normalize()
		d.Cards[i].Card = *card
	}
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	file := fs.String("file", "-", "Deck list file (- for stdin)")
	format := fs.String("format", "", "Deck format (defaults to config)")
	chartDir := fs.String("charts", "", "Directory to write curve and health charts (optional)")
	exportPath := fs.String("export", "", "Write the analysis to a file (.csv or .json)")
	_ = fs.Parse(args)

	cfg := mustLoadConfig()
	engine, cache := newEngine(cfg)

	d, err := loadDeckFile(*file)
	if err != nil {
		log.Fatalf("deckforge: %v", err)
	}
	d.Format = pickFormat(*format, cfg)

	ctx := context.Background()
	hydrateDeck(ctx, cache, d)

	an := engine.Analyze(d)
	printAnalysis(os.Stdout, d, an)

	if *exportPath != "" {
		format, err := export.ParseFormat("", *exportPath)
		if err != nil {
			log.Fatalf("deckforge: %v", err)
		}
		opts := export.Options{Format: format, FilePath: *exportPath, PrettyJSON: true, Overwrite: true}
		if err := export.WriteAnalysis(an, opts); err != nil {
			log.Fatalf("deckforge: %v", err)
		}
		fmt.Printf("\nAnalysis written to %s\n", *exportPath)
	}

	if *chartDir != "" {
		if err := os.MkdirAll(*chartDir, 0o755); err != nil {
			log.Fatalf("deckforge: failed to create chart directory: %v", err)
		}
		curvePath := filepath.Join(*chartDir, "curve.html")
		if err := charts.RenderManaCurve(an, charts.DefaultChartConfig(), curvePath); err != nil {
			log.Fatalf("deckforge: %v", err)
		}
		healthPath := filepath.Join(*chartDir, "health.html")
		if err := charts.RenderHealth(an, charts.DefaultChartConfig(), healthPath); err != nil {
			log.Fatalf("deckforge: %v", err)
		}
		fmt.Printf("\nCharts written to %s and %s\n", curvePath, healthPath)
	}
}

func runRecommend(args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	file := fs.String("file", "-", "Deck list file (- for stdin)")
	format := fs.String("format", "", "Deck format (defaults to config)")
	count := fs.Int("count", 0, "Number of recommendations (defaults to config)")
	collectionFile := fs.String("collection", "", "Collection export JSON (optional)")
	exportPath := fs.String("export", "", "Write results to a file (.csv or .json)")
	exportFormat := fs.String("export-format", "", "Export format, csv or json (defaults to file extension)")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	_ = fs.Parse(args)

	cfg := mustLoadConfig()
	engine, cache := newEngine(cfg)

	d, err := loadDeckFile(*file)
	if err != nil {
		log.Fatalf("deckforge: %v", err)
	}
	d.Format = pickFormat(*format, cfg)

	var collection deck.Collection
	if *collectionFile != "" {
		collection, err = storage.LoadCollectionFile(*collectionFile)
		if err != nil {
			log.Fatalf("deckforge: %v", err)
		}
	}

	n := *count
	if n <= 0 {
		n = cfg.App.DefaultCount
	}

	ctx := context.Background()
	hydrateDeck(ctx, cache, d)

	var onProgress recommend.ProgressFunc
	if !*quiet {
		onProgress = func(label string, count, total int, _ []recommend.SmartRecommendation) {
			fmt.Fprintf(os.Stderr, "%-24s %d/%d\n", label, count, total)
		}
	}

	recs := engine.RecommendWithProgress(ctx, d, collection, n, d.Format, onProgress)
	printRecommendations(os.Stdout, recs)

	if *exportPath != "" {
		format, err := export.ParseFormat(*exportFormat, *exportPath)
		if err != nil {
			log.Fatalf("deckforge: %v", err)
		}
		opts := export.Options{Format: format, FilePath: *exportPath, PrettyJSON: true, Overwrite: true}
		if err := export.WriteRecommendations(recs, opts); err != nil {
			log.Fatalf("deckforge: %v", err)
		}
		fmt.Printf("\nResults written to %s\n", *exportPath)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 0, "API port (defaults to config)")
	dbPath := fs.String("db", "", "Database path (defaults to config)")
	_ = fs.Parse(args)

	cfg := mustLoadConfig()
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.DatabasePath = *dbPath
	}

	if err := serve(cfg); err != nil {
		log.Fatalf("deckforge: %v", err)
	}
}

// serve runs the API server until interrupted. The service wrapper
// reuses it.
func serve(cfg *config.Config) error {
	path, err := cfg.DatabasePath()
	if err != nil {
		return err
	}

	dbCfg := storage.DefaultConfig(path)
	dbCfg.AutoMigrate = true
	db, err := storage.Open(dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	decks := repository.NewDeckRepository(db.Conn())
	collection := repository.NewCollectionRepository(db.Conn())
	engine, cache := newEngine(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Storage.CollectionFile != "" {
		watcher := storage.NewCollectionWatcher(cfg.Storage.CollectionFile, collection)
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("collection watcher stopped: %v", err)
			}
		}()
	}

	server := api.NewServer(&api.Config{
		Port:           cfg.API.Port,
		AllowedOrigins: cfg.API.AllowedOrigins,
	}, engine, cache, decks, collection)
	server.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Stop(shutdownCtx)
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("deckforge: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("deckforge: invalid config: %v", err)
	}
	return cfg
}

func pickFormat(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.App.DefaultFormat
}
