package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/automatic"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/display"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/results"
	"github.com/domino14/hangman/server"
	"github.com/domino14/hangman/shell"
)

var (
	GitVersion string
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func newDisplay(cfg *config.Config) (*display.Display, error) {
	name := cfg.GetString(config.ConfigDisplay)
	if name == "" {
		name = "simple"
		if cfg.GetBool(config.ConfigBaseline) {
			name = "none"
		}
	}
	lvl, err := display.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return display.New(lvl, os.Stdout, cfg.GetBool(config.ConfigClock)), nil
}

func newRecorder(ctx context.Context, cfg *config.Config) (results.Recorder, error) {
	var recs results.Multi
	if path := cfg.GetString(config.ConfigResultsDB); path != "" {
		db, err := results.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		recs = append(recs, db)
	}
	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		nc, err := results.ConnectNATS(url, cfg.GetString(config.ConfigNatsSubject))
		if err != nil {
			recs.Close()
			return nil, err
		}
		recs = append(recs, nc)
	}
	return recs, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Str("version", GitVersion).Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("exiting")
		stop()
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	disp, err := newDisplay(cfg)
	if err != nil {
		return err
	}
	corpus, err := lexicon.Get(cfg)
	if err != nil {
		return err
	}
	rec, err := newRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer rec.Close()

	session := automatic.NewSession(cfg, corpus,
		automatic.WithDisplay(disp), automatic.WithRecorder(rec))

	if addr := cfg.GetString(config.ConfigHTTPAddr); addr != "" {
		go func() {
			log.Info().Str("addr", addr).Msg("serving http")
			if err := server.New(session).Start(addr); err != nil {
				log.Error().Err(err).Msg("http server stopped")
			}
		}()
	}

	secrets, err := automatic.Secrets(cfg, corpus)
	if err != nil {
		return err
	}
	if len(secrets) > 0 {
		_, err := session.PlayAll(ctx, secrets)
		return err
	}

	sc, err := shell.NewShellController(ctx, session)
	if err != nil {
		return err
	}
	sig := make(chan os.Signal, 1)
	go sc.Loop(sig)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	return nil
}
