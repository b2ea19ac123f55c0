package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brensch/blokus/config"
	"github.com/brensch/blokus/logging"
	"github.com/brensch/blokus/report"
)

func main() {
	env := config.Load()

	dir := flag.String("dir", env.OutDir, "Root directory of exported parquet batches")
	shapes := flag.Bool("shapes", true, "Also print shape usage per agent")
	timeout := flag.Duration("timeout", time.Minute, "Query timeout")
	logLevel := flag.String("log-level", env.LogLevel, "Log level")
	flag.Parse()

	closer, err := logging.Setup(logging.Options{Level: *logLevel, Pretty: env.LogPretty, File: env.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	summaries, err := report.Summarize(ctx, *dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("summarize failed")
	}
	if len(summaries) == 0 {
		log.Warn().Str("dir", *dir).Msg("no finished games found")
		return
	}
	if err := report.Format(os.Stdout, summaries); err != nil {
		log.Fatal().Err(err).Msg("format failed")
	}

	if !*shapes {
		return
	}
	usage, err := report.Shapes(ctx, *dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("shape usage failed")
	}
	fmt.Println()
	if err := report.FormatShapes(os.Stdout, usage); err != nil {
		log.Fatal().Err(err).Msg("format failed")
	}
}
