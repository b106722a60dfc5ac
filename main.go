// main.go
//
// Entrypoint for the terminal hangman game.
// Responsibilities:
//   - Load .env and environment config, apply command-line overrides.
//   - Route zerolog output away from stdout, which belongs to the game.
//   - Open the store, word lists and log directory, then run the session.
//   - Optionally serve the read-only stats view alongside the game.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/display"
	"github.com/robalobadob/hangman/internal/gamelog"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	httpAddr := flag.String("http", cfg.HTTPAddr, "serve the read-only stats view on this address")
	logFile := flag.String("log", cfg.LogFile, `diagnostic log file ("-" for stderr)`)
	resetStats := flag.Bool("reset-stats", false, "zero the saved statistics before playing")
	flag.Parse()
	cfg.HTTPAddr, cfg.LogFile = *httpAddr, *logFile

	closeLog, err := setupLogging(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(2)
	}
	defer closeLog()

	if err := run(cfg, *resetStats); err != nil {
		log.Error().Err(err).Msg("hangman exited")
		fmt.Fprintln(os.Stderr, "error:", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, resetStats bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := words.Load(cfg.WordsDir)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	log.Info().Int("words", catalog.Count()).Strs("categories", catalog.Categories()).Msg("word lists loaded")

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if resetStats {
		if err := st.ResetStats(ctx); err != nil {
			return fmt.Errorf("reset stats: %w", err)
		}
		log.Info().Msg("statistics reset")
	}

	if cfg.HTTPAddr != "" {
		srv := httpserver.New(httpserver.Options{
			Store:      st,
			Words:      catalog,
			DailySalt:  cfg.DailySalt,
			CORSOrigin: cfg.CORSOrigin,
		})
		go func() {
			if err := srv.Start(cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Str("addr", cfg.HTTPAddr).Msg("stats server exited")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sess, err := session.New(session.Deps{
		In:        os.Stdin,
		Display:   display.New(os.Stdout, cfg.Colorless() || !term.IsTerminal(int(os.Stdout.Fd()))),
		Words:     catalog,
		Store:     st,
		Logs:      gamelog.New(cfg.LogDir),
		DailySalt: cfg.DailySalt,
	})
	if err != nil {
		return err
	}

	err = sess.Run(ctx)
	if ctx.Err() != nil {
		log.Info().Msg("interrupted")
		return nil
	}
	return err
}

// openStore opens the configured statistics backend.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Store == config.StoreMemory {
		log.Info().Msg("using in-memory store")
		return store.NewMemoryStore(), nil
	}
	st, err := store.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	log.Info().Str("path", cfg.DBPath).Msg("using sqlite store")
	return st, nil
}

// setupLogging points the global zerolog logger at path, or at stderr when
// path is "-". The returned func closes the log file.
func setupLogging(level, path string) (func(), error) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var out io.Writer
	closeFn := func() {}
	if path == "-" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closeFn, nil
}
