package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/outofforest/logger"
	"github.com/outofforest/mass"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/loader"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/queries"
	"github.com/JosLopes/LI3-sub000/query"
)

func main() {
	ctx := logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig))
	if err := run(ctx, os.Args[1:]); err != nil {
		logger.Get(ctx).Error("Run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	// Optional; env values are defaults only, arguments win.
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("flightdb", pflag.ContinueOnError)
	interactive := flags.BoolP("interactive", "i", false, "read queries from stdin")
	outputDir := flags.String("output", envOr("FLIGHTDB_OUTPUT", "."),
		"directory receiving per-query output files")
	if err := flags.Parse(args); err != nil {
		return errors.WithStack(err)
	}

	positional := flags.Args()
	datasetDir := os.Getenv("FLIGHTDB_DATASET")
	if len(positional) > 0 {
		datasetDir = positional[0]
	}
	if datasetDir == "" {
		return errors.New("dataset directory required")
	}

	db, err := loader.Load(ctx, loader.Config{Dir: datasetDir})
	if err != nil {
		return err
	}

	registry, err := queries.NewRegistry()
	if err != nil {
		return err
	}
	parser := query.NewParser(query.ParserConfig{
		Registry:     registry,
		MassInstance: mass.New[query.Instance](1024),
	})

	if *interactive {
		return runInteractive(ctx, db, parser)
	}
	if len(positional) < 2 {
		return errors.New("query file required")
	}
	return runBatch(ctx, db, parser, positional[1], *outputDir)
}

// runBatch answers every query of the file with one output file per line.
func runBatch(
	ctx context.Context, db *database.Database, parser *query.Parser, queryFile, outputDir string,
) error {
	text, err := os.ReadFile(queryFile)
	if err != nil {
		return errors.WithStack(err)
	}

	log := logger.Get(ctx)
	list := &query.List{}
	for i, line := range strings.Split(string(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		instance, err := parser.Parse(line, uint32(i+1))
		if err != nil {
			log.Warn("Query discarded", zap.Error(err))
			continue
		}
		list.Append(instance)
	}

	factory, err := output.NewFileFactory(outputDir)
	if err != nil {
		return err
	}
	dispatcher := query.NewDispatcher(query.DispatcherConfig{
		DB:        db,
		NewWriter: factory.Writer,
	})
	return dispatcher.Dispatch(ctx, list)
}

// runInteractive answers one query per stdin line on stdout until quit or EOF.
func runInteractive(ctx context.Context, db *database.Database, parser *query.Parser) error {
	log := logger.Get(ctx)
	dispatcher := query.NewDispatcher(query.DispatcherConfig{
		DB: db,
		NewWriter: func(_ uint32, _ bool) (output.Writer, error) {
			// Plain queries answer formatted on a terminal; the F suffix
			// already selects the formatted writer, so promote the rest.
			return output.NewWriter(os.Stdout, true), nil
		},
	})

	scanner := bufio.NewScanner(os.Stdin)
	var line uint32
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" {
			return nil
		}
		line++
		instance, err := parser.Parse(text, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		list := &query.List{}
		list.Append(instance)
		if err := dispatcher.Dispatch(ctx, list); err != nil {
			log.Error("Dispatch failed", zap.Error(err))
		}
	}
	return errors.WithStack(scanner.Err())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
