package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/flowspec/packages/config"
	"github.com/abdul-hamid-achik/flowspec/packages/flowfile"
	"github.com/abdul-hamid-achik/flowspec/packages/httpres"
	"github.com/abdul-hamid-achik/flowspec/packages/metrics"
	"github.com/abdul-hamid-achik/flowspec/packages/output"
	"github.com/abdul-hamid-achik/flowspec/packages/runner"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run API flow tests",
	Long: `Run API flows defined in .flow.yaml files.

Examples:
  flowspec run api.flow.yaml
  flowspec run ./flows/
  flowspec run api.flow.yaml --bail -v
  flowspec run ./flows/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	configFlag      string
	verboseFlag     int // 0=off, 1=-v, 2=-vv
	bailFlag        bool
	noColorFlag     bool
	timeoutFlag     int
	insecureFlag    bool
	concurrencyFlag int
	watchFlag       bool
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("FLOWSPEC_CONFIG", ""), "Path to config file (env: FLOWSPEC_CONFIG)")
	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("FLOWSPEC_BAIL", false), "Stop on first failure (env: FLOWSPEC_BAIL)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("FLOWSPEC_NO_COLOR", false), "Disable colored output (env: FLOWSPEC_NO_COLOR)")
	runCmd.Flags().IntVar(&timeoutFlag, "timeout", getEnvInt("FLOWSPEC_TIMEOUT", 0), "Request timeout in milliseconds (env: FLOWSPEC_TIMEOUT)")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("FLOWSPEC_INSECURE", false), "Disable SSL certificate validation (env: FLOWSPEC_INSECURE)")
	runCmd.Flags().IntVar(&concurrencyFlag, "concurrency", getEnvInt("FLOWSPEC_CONCURRENCY", 0), "Concurrent requests for parallel suites (env: FLOWSPEC_CONCURRENCY)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-run tests")
}

func runCommand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .flow.yaml files found")
	}

	formatter := output.NewConsoleFormatter(
		output.WithVerbose(verboseFlag > 0),
		output.WithNoColor(cfg.GetNoColor()),
	)

	client := httpres.NewClient(
		httpres.WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond),
		httpres.WithFollowRedirects(cfg.GetFollowRedirects()),
		httpres.WithValidateSSL(cfg.GetValidateSSL()),
		httpres.WithDefaultHeaders(cfg.Headers),
	)

	runAll := func() int {
		failed := 0
		for _, file := range files {
			f, err := flowfile.ParseFile(file)
			if err != nil {
				formatter.FormatError(fmt.Errorf("parsing %s: %w", file, err))
				failed++
				continue
			}

			rec := metrics.NewRecorder()
			host := runner.NewLocal(
				runner.WithBail(cfg.GetBail()),
				runner.WithRecorder(rec),
			)
			b := runner.New(host, runner.WithConcurrency(cfg.Concurrency))
			flowfile.Register(b, f, client)

			result := host.Run(ctx)
			formatter.FormatResult(result)
			formatter.FormatMetrics(rec)
			failed += result.Failed
		}
		return failed
	}

	failed := runAll()

	if !watchFlag {
		if failed > 0 {
			os.Exit(1)
		}
		return nil
	}

	return watchAndRerun(ctx, cmd, args, files, formatter, runAll)
}

func watchAndRerun(ctx context.Context, cmd *cobra.Command, args, files []string, formatter *output.ConsoleFormatter, runAll func() int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				formatter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
			}
			watchedDirs[dir] = true
		}
	}

	// Also watch the original args if they're directories
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && isFlowFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running tests...\n\n", event.Name)
					runAll()
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

// loadRunConfig loads the config file and layers flag overrides on top.
func loadRunConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := &config.Config{
		Timeout:     timeoutFlag,
		Concurrency: concurrencyFlag,
	}
	if bailFlag {
		overrides.Bail = config.BoolPtr(true)
	}
	if noColorFlag {
		overrides.NoColor = config.BoolPtr(true)
	}
	if insecureFlag {
		overrides.ValidateSSL = config.BoolPtr(false)
	}
	if verboseFlag > 0 {
		overrides.Verbose = config.BoolPtr(true)
	}

	return cfg.Merge(overrides), nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isFlowFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			files = append(files, arg)
		}
	}

	return files, nil
}

func isFlowFile(path string) bool {
	return strings.HasSuffix(path, ".flow.yaml") || strings.HasSuffix(path, ".flow.yml")
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
