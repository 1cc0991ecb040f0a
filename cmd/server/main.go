// Command server exposes the mecab-ko tagger as a REST API.
//
// Endpoints (GET with ?text=…&drop_space=… or POST {"text":…,"drop_space":…}):
//
//	/api/parse   tokens with decoded features; ?format=mecab for mecab's text output
//	/api/pos     surface and part-of-speech pairs
//	/api/morphs  surfaces only
//	/api/nouns   surfaces tagged as nouns
//	/healthz
//
// Responses are JSON, or CBOR when the request accepts application/cbor.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	mecab "github.com/mecab-ko/mecab-go"
)

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newTagger(cfg Config, logger *zap.Logger) (*mecab.Tagger, error) {
	opts := []mecab.Option{mecab.WithLogger(logger)}
	if cfg.MecabPath != "" {
		opts = append(opts, mecab.WithEngine(&mecab.CommandEngine{Path: cfg.MecabPath, DicPath: cfg.DicPath}))
	} else {
		opts = append(opts, mecab.WithDicPath(cfg.DicPath))
	}
	return mecab.New(opts...)
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dicPath := flag.String("dicpath", "", "mecab-ko-dic directory (overrides config)")
	mecabPath := flag.String("mecab", "", "use this mecab executable as the engine (overrides config)")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dicPath != "" {
		cfg.DicPath = *dicPath
	}
	if *mecabPath != "" {
		cfg.MecabPath = *mecabPath
	}
	cfg.Debug = cfg.Debug || *debug

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	tagger, err := newTagger(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create tagger", zap.Error(err))
	}
	defer tagger.Close()
	logger.Info("tagger ready", zap.String("dicpath", cfg.DicPath), zap.String("mecab_path", cfg.MecabPath))

	srv := newServer(tagger, logger)
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, srv.handler(cfg.AllowedOrigins)); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
