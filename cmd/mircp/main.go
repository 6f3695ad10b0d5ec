package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"mircp/internal/config"
	"mircp/internal/engine"
	"mircp/internal/event"
	"mircp/internal/stats"
	"mircp/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		workers     int
		quiet       bool
		verbose     bool
		noProgress  bool
		dryRun      bool
		showVersion bool
		logFile     string
	)

	rootCmd := &cobra.Command{
		Use:   "mircp --workers N [flags] <source> <target>",
		Short: "Parallel directory mirror with live progress",
		Long: `mircp recursively replicates a directory tree using a fixed pool of
concurrent copy workers. Files already present at the target are
skipped, so re-running on a partial mirror only copies what is missing.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "mircp %s\n", version)
				return nil
			}

			src, dst := args[0], args[1]

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &workers, &quiet, &noProgress)

			// Worker count is required and must be positive; reject it
			// before any scanning or directory creation happens.
			if !cmd.Flags().Changed("workers") && cfg.Defaults.Workers == nil {
				return fmt.Errorf("--workers is required (positive integer)")
			}
			if workers < 1 {
				return fmt.Errorf("--workers must be at least 1 (got %d)", workers)
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			if dryRun {
				slog.Info("dry run mode")
			}

			// Set up context with signal handling. Workers check for
			// cancellation between files.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// The collector's start timestamp anchors the elapsed-time
			// report; create it before scanning begins.
			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				DstRoot:    dst,
				Workers:    workers,
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
			})

			slog.Debug("starting mirror",
				"src", src,
				"dst", dst,
				"workers", workers,
			)

			// Run the presenter (progress aggregator) in the background
			// and the engine in the foreground. Closing the event
			// channel after the engine returns guarantees the presenter
			// terminates even when failed copies keep the received
			// count below the scan total.
			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(events)
			}()

			result := engine.Run(ctx, engine.Config{
				Src:     src,
				Dst:     dst,
				Workers: workers,
				DryRun:  dryRun,
				Events:  events,
				Stats:   collector,
			})
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if !quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
				fmt.Fprintf(os.Stderr, "elapsed time: %s\n", ui.FormatElapsed(result.Stats.Elapsed))
			}

			if result.Err != nil {
				slog.Error("mirror failed", "error", result.Err)
				if result.Stats.FilesCopied > 0 || result.Stats.FilesSkipped > 0 {
					return &exitError{code: 1} // partial failure
				}
				return &exitError{code: 2} // nothing transferred
			}

			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().
		IntVarP(&workers, "workers", "n", 0, "number of copy workers (required, >= 1)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the live progress display")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify files without copying")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not
// explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	workers *int,
	quiet *bool,
	noProgress *bool,
) {
	if !cmd.Flags().Changed("workers") && defaults.Workers != nil {
		*workers = *defaults.Workers
	}
	if !cmd.Flags().Changed("quiet") && defaults.Quiet != nil {
		*quiet = *defaults.Quiet
	}
	if !cmd.Flags().Changed("no-progress") && defaults.NoProgress != nil {
		*noProgress = *defaults.NoProgress
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
