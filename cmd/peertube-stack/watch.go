package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lex00/wetwire-peertube-go/internal/config"
	"github.com/lex00/wetwire-peertube-go/internal/validation"
)

// newWatchCmd creates the "watch" subcommand for re-rendering on input changes.
func newWatchCmd(o *rootOptions) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the template when its inputs change",
		Long: `Watch monitors the configuration file, the boot script and the env file and
re-renders the template whenever one of them changes.

The watch command:
- Runs the structural checks on each change
- Writes the template if they pass (unless --check-only)
- Debounces rapid changes to avoid excessive rebuilds

Examples:
    peertube-stack watch -o peertube.json
    peertube-stack watch --user-data ./user_data.sh --check-only
    peertube-stack watch --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, o, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.checkOnly, "check-only", false, "Only run the structural checks, skip writing the template")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

type watchOptions struct {
	checkOnly    bool
	debounce     time.Duration
	outputFormat string
	outputFile   string
}

// watchedFiles returns the absolute paths of the inputs that affect the template.
func watchedFiles(o *rootOptions) ([]string, error) {
	candidates := []string{o.configFile, o.userDataFile, o.envFile}
	if o.configFile == "" {
		candidates[0] = config.DefaultFile
	}
	if o.userDataFile == "" {
		if cfg, err := config.Load(o.configFile); err == nil && cfg.UserDataFile != "" {
			path := cfg.UserDataFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(filepath.Dir(candidates[0]), path)
			}
			candidates = append(candidates, path)
		}
	}

	var files []string
	seen := make(map[string]bool)
	for _, f := range candidates {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}
	return files, nil
}

// runWatch monitors the input files and re-renders on changes until ctx is done.
func runWatch(ctx context.Context, o *rootOptions, opts watchOptions, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	files, err := watchedFiles(o)
	if err != nil {
		return fmt.Errorf("failed to resolve inputs: %w", err)
	}

	// Watch the parent directories so editors that replace files are seen.
	inputs := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		inputs[f] = true
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	for _, f := range files {
		fmt.Fprintf(w, "Watching: %s\n", f)
	}

	fmt.Fprintln(w, "Running initial build...")
	rebuild(ctx, o, opts, w)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Fprintln(w, "\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !inputs[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Fprintf(w, "\n[%s] Change detected, rebuilding...\n", time.Now().Format("15:04:05"))
			rebuild(ctx, o, opts, w)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.log.Warn("watch error", zap.Error(err))

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Fprintln(w, "\nStopping watch...")
			return nil
		}
	}
}

// rebuild renders and checks the template, reporting problems without stopping the watch.
func rebuild(ctx context.Context, o *rootOptions, opts watchOptions, w io.Writer) bool {
	p, profile, err := o.buildPlan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build error: %v\n", err)
		return false
	}

	result, err := validation.Validate(p, profile, validation.Options{SkipCfnLint: true, Logger: o.log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Check error: %v\n", err)
		return false
	}
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
		fmt.Fprintln(w, "Checks failed, skipping output")
		return false
	}
	fmt.Fprintln(w, "Checks passed")

	if opts.checkOnly {
		return true
	}

	if err := writeTemplate(w, p, opts.outputFormat, opts.outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		return false
	}
	if opts.outputFile == "" {
		return true
	}
	fmt.Fprintf(w, "Build successful, wrote %s (%d resources)\n", opts.outputFile, len(p.Resources()))
	return true
}
