// Command extract runs the local extraction pipeline on a single syllabus
// file and prints the events as JSON. Useful for debugging pattern coverage
// without a server or a database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coursetrack/syllabus-tracker/internal/extract"
	"github.com/coursetrack/syllabus-tracker/internal/ingest"
	"github.com/coursetrack/syllabus-tracker/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	year := flag.Int("year", 0, "default year for bare month-day dates (0 = current year)")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "extract [-year YYYY] <syllabus.pdf|syllabus.txt>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	proc := pipeline.NewProcessor(pipeline.Config{Backend: pipeline.BackendLocal},
		extract.NewLocalExtractor(*year, logger), nil, logger).
		WithReader(ingest.NewDocumentReader(logger))

	events, _, err := proc.ExtractFromDocument(context.Background(), data, filepath.Ext(path))
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
