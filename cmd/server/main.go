package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"textnorm/internal/config"
	"textnorm/internal/customdict"
	"textnorm/internal/lexicon"
	"textnorm/internal/server"
	"textnorm/internal/service"
)

func main() {
	configPath := flag.String("config", os.Getenv("TEXTNORM_CONFIG"), "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		words server.WordStore
		src   lexicon.WordSource
	)
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		dict := customdict.New(client, cfg.Language.String())
		words, src = dict, dict
		logger.Info("custom dictionary enabled", "addr", cfg.Redis.Addr, "key", dict.Key())
	}

	b, err := service.NewBuilder(cfg, src, logger)
	if err != nil {
		logger.Error("init error", "error", err)
		os.Exit(1)
	}
	srv, err := server.New(ctx, b.Build, words, logger)
	if err != nil {
		logger.Error("init error", "error", err)
		os.Exit(1)
	}

	if err := srv.ListenAndServe(ctx, cfg.Server); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
