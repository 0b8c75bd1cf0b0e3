package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"ca-survey/internal/ledger"
	"ca-survey/internal/render"
	"ca-survey/internal/survey"
)

func main() {
	configPath := flag.String("config", "", "YAML survey config (flags override it)")
	cfg := survey.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if *configPath != "" {
		loaded, err := survey.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
		// Explicit flags win over the file.
		flag.Visit(func(f *flag.Flag) {
			_ = applyFlag(&cfg, f.Name, f.Value.String())
		})
	}

	store, err := ledger.NewStore(cfg.Ledger, cfg.LedgerPath)
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := store.Init(ctx); err != nil {
		log.Fatalf("init ledger: %v", err)
	}
	defer func() {
		if err := ledger.CloseIfSupported(store); err != nil {
			log.Printf("close ledger: %v", err)
		}
	}()

	runner := survey.NewRunner(cfg.Output)
	runner.Renderer = &render.GIFRenderer{Scale: cfg.Scale, Delay: cfg.Delay}
	runner.Ledger = store
	runner.MarkBoring = cfg.MarkBoring
	runner.Sidecars = cfg.Sidecars

	fmt.Printf("Surveying %d trials (%d workers) into %s\n", cfg.Trials, cfg.Workers, cfg.Output)
	start := time.Now()
	summary, err := runner.Survey(ctx, cfg)
	if err != nil {
		log.Printf("survey stopped: %v", err)
	}
	fmt.Printf("\nDone in %s: %d trials, %d rendered, %d skipped, %d boring, %d failed\n",
		time.Since(start).Round(time.Millisecond), summary.Trials, summary.Rendered, summary.Skipped, summary.Boring, summary.Failed)
}

// applyFlag replays one command-line flag onto cfg.
func applyFlag(cfg *survey.Config, name, value string) error {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	cfg.Bind(fs)
	if fs.Lookup(name) == nil {
		return nil
	}
	return fs.Set(name, value)
}
