package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/tabledb/internal/config"
	"github.com/leengari/tabledb/internal/logging"
	"github.com/leengari/tabledb/internal/repl"
	"github.com/leengari/tabledb/internal/search"
	"github.com/leengari/tabledb/internal/session"
	"github.com/leengari/tabledb/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	loadFile := flag.String("load", "", "Table file to load at startup (relative to data_dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeFn := logging.SetupLogger(logging.Options{
		Level:  cfg.Log.Level,
		SeqURL: cfg.Log.SeqURL,
		Output: os.Stderr,
	})
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting tabledb...", "data_dir", cfg.DataDir)

	sess := session.New(logger)
	sess.AddObserver(search.NewLoggingObserver(logger))

	if *loadFile != "" {
		path := cfg.ResolvePath(*loadFile)
		t, err := storage.LoadTable(path)
		if err != nil {
			slog.Error("failed to load table", "path", path, "error", err)
			closeFn()
			os.Exit(1)
		}
		sess.Replace(t)
	}

	r := repl.New(sess, cfg, os.Stdout, logger)
	if err := repl.Start(r); err != nil {
		slog.Error("repl failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	slog.Info("Shutting down")
}
