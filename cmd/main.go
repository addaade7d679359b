package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"textnorm/internal/config"
	"textnorm/internal/service"
)

// batchSize is the number of lines cleaned in parallel before output is
// flushed.
const batchSize = 512

func main() {
	configPath := flag.String("config", os.Getenv("TEXTNORM_CONFIG"), "path to the YAML configuration")
	mode := flag.String("mode", "normalize", "normalize, correct or compound")
	workers := flag.Int("workers", 0, "parallel workers for normalize (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := service.NewBuilder(cfg, nil, logger)
	if err != nil {
		logger.Error("init error", "error", err)
		os.Exit(1)
	}
	n, err := b.Build(ctx)
	if err != nil {
		logger.Error("init error", "error", err)
		os.Exit(1)
	}

	if *workers <= 0 {
		*workers = cfg.Cleaner.Workers
	}

	var process func(ctx context.Context, lines []string) ([]string, error)
	switch *mode {
	case "normalize":
		process = func(ctx context.Context, lines []string) ([]string, error) {
			return n.Cleaner.CleanLines(ctx, lines, *workers)
		}
	case "correct":
		process = perLine(n.Pipeline.Process)
	case "compound":
		maxEd := cfg.Spelling.MaxEditDistance
		process = perLine(func(line string) string {
			return n.Lexicon.Compound(strings.ToLower(strings.TrimSpace(line)), maxEd).Term
		})
	default:
		logger.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}

	if err := run(ctx, os.Stdin, os.Stdout, process); err != nil {
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

// run reads lines from r in batches and writes one output line per input
// line to w.
func run(ctx context.Context, r io.Reader, w io.Writer, process func(context.Context, []string) ([]string, error)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	out := bufio.NewWriter(w)
	defer out.Flush()

	batch := make([]string, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		res, err := process(ctx, batch)
		if err != nil {
			return err
		}
		for _, line := range res {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		batch = batch[:0]
		return out.Flush()
	}

	for sc.Scan() {
		batch = append(batch, sc.Text())
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return flush()
}

func perLine(fn func(string) string) func(context.Context, []string) ([]string, error) {
	return func(ctx context.Context, lines []string) ([]string, error) {
		out := make([]string, len(lines))
		for i, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = fn(line)
		}
		return out, nil
	}
}
