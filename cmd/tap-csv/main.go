package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"tapcsv/pkg/config"
	"tapcsv/pkg/singer"
	"tapcsv/pkg/tap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPaths  []string
	catalogPath  string
	statePath    string
	logPath      string
	discoverMode bool
	aboutMode    bool
	verbose      bool
)

func cmdLineParse() {
	pflag.StringArrayVarP(&configPaths, "config", "c", nil, "path to a JSON or YAML settings file, may be repeated")
	pflag.BoolVarP(&discoverMode, "discover", "d", false, "print the catalog and exit")
	pflag.StringVar(&catalogPath, "catalog", "", "path to a catalog selecting streams and properties")
	pflag.StringVarP(&statePath, "state", "s", "", "path to a state file to pass through")
	pflag.BoolVar(&aboutMode, "about", false, "print tap information and the settings schema")
	pflag.StringVarP(&logPath, "log", "l", "", "path to log file. Default is stderr")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) logging")
	pflag.Parse()
}

func main() {
	cmdLineParse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		env.LogLevel = slog.LevelDebug
	}

	var output io.Writer = os.Stderr
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file %q: %v", logPath, err)
		}
		defer f.Close()
		output = f
	}
	slog.SetDefault(configureLogger(env, output))

	if err := run(ctx); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			slog.Error("Invalid configuration", "source", cfgErr.Source, "error", cfgErr.Err)
		} else {
			slog.Error("Tap failed", "error", err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if aboutMode {
		return printJSON(tap.NewAbout(version))
	}

	cfg, err := config.Load(configPaths...)
	if err != nil {
		return err
	}
	t := tap.New(cfg, tap.WithLogger(slog.Default()))

	if discoverMode {
		catalog, err := t.Catalog(ctx)
		if err != nil {
			return err
		}
		return printJSON(catalog)
	}

	var catalog *singer.Catalog
	if catalogPath != "" {
		if catalog, err = singer.LoadCatalog(catalogPath); err != nil {
			return err
		}
	}
	state := singer.NewState()
	if statePath != "" {
		if state, err = singer.LoadState(statePath); err != nil {
			return err
		}
	}

	start := time.Now()
	stats, err := t.Sync(ctx, singer.NewWriter(os.Stdout), catalog, state)
	if err != nil {
		return err
	}
	var total int64
	for _, s := range stats {
		total += s.Records
	}
	slog.Info("Sync completed", "streams", len(stats), "records", total, "duration", time.Since(start))
	return nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(b))
	return err
}

func configureLogger(env config.Env, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     env.LogLevel,
		AddSource: env.LogAddSource,
	}

	var handler slog.Handler
	switch env.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = tint.NewHandler(out, &tint.Options{
			Level:      env.LogLevel,
			AddSource:  env.LogAddSource,
			TimeFormat: time.Kitchen,
			NoColor:    out != os.Stderr,
		})
	}
	return slog.New(handler)
}
