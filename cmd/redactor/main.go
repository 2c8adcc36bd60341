// Command redactor runs the German PII anonymization service: a JSON API
// with a review dashboard, or one-shot anonymization of a text or file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/digimosa/pii-redact/internal/config"
	"github.com/digimosa/pii-redact/internal/extractor"
	"github.com/digimosa/pii-redact/internal/ner"
	"github.com/digimosa/pii-redact/internal/pipeline"
	"github.com/digimosa/pii-redact/internal/server"
	"github.com/digimosa/pii-redact/internal/storage"
	"github.com/digimosa/pii-redact/internal/whitelist"
)

func main() {
	serve := flag.Bool("serve", false, "Start the API server and dashboard")
	port := flag.String("port", "", "Port for the API server (overrides config)")
	text := flag.String("text", "", "Anonymize a single text and print the result")
	file := flag.String("file", "", "Anonymize a .txt/.pdf/.xlsx file and print the results")
	workers := flag.Int("workers", 0, "Number of concurrent workers (default: auto)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *port != "" {
		cfg.Port = *port
	}
	cfg.Verbose = cfg.Verbose || *verbose

	recognizer, err := buildRecognizer(cfg)
	if err != nil {
		slog.Error("ner backend unavailable", "error", err)
		os.Exit(1)
	}

	wl, err := whitelist.New(cfg.WhitelistPath)
	if err != nil {
		slog.Warn("could not load whitelist, continuing without", "error", err)
		wl = nil
	}

	p, err := pipeline.New(cfg, recognizer, wl)
	if err != nil {
		slog.Error("failed to initialize pipeline", "error", err)
		os.Exit(1)
	}

	switch {
	case *text != "":
		runBatch(p, []string{*text})
	case *file != "":
		ex, err := extractor.ForFile(*file)
		if err != nil {
			slog.Error("unsupported file", "path", *file, "error", err)
			os.Exit(1)
		}
		units, err := ex.Extract(*file)
		if err != nil {
			slog.Error("extraction failed", "path", *file, "error", err)
			os.Exit(1)
		}
		runBatch(p, units)
	case *serve:
		var store *storage.Store
		if cfg.AuditDBPath != "" {
			store, err = storage.Open(cfg.AuditDBPath)
			if err != nil {
				slog.Error("failed to open audit database", "path", cfg.AuditDBPath, "error", err)
				os.Exit(1)
			}
		}
		srv := server.New(cfg, p, wl, store)
		addr := ":" + cfg.Port
		slog.Info("starting server", "addr", addr, "workers", cfg.Workers)
		if err := srv.Start(addr); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	default:
		fmt.Println("No action specified.")
		fmt.Println("Use -serve to start the API server and dashboard.")
		fmt.Println("Use -text or -file for one-shot anonymization.")
		flag.PrintDefaults()
	}
}

// buildRecognizer picks the NER backend: an external model server when
// configured (checked with a ping so a dead backend fails fast), the
// built-in rule recognizer otherwise.
func buildRecognizer(cfg *config.Config) (ner.Recognizer, error) {
	if cfg.NERBackendURL == "" {
		return ner.NewRuleRecognizer(), nil
	}
	client := ner.NewHTTPRecognizer(cfg.NERBackendURL, cfg.NERModel)
	if err := client.Ping(); err != nil {
		return nil, err
	}
	slog.Info("using ner model backend", "url", cfg.NERBackendURL, "model", cfg.NERModel)
	return client, nil
}

func runBatch(p *pipeline.Pipeline, texts []string) {
	results, err := p.ProcessBatch(texts)
	if err != nil {
		slog.Error("batch failed", "error", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		slog.Error("encoding results failed", "error", err)
		os.Exit(1)
	}
}
