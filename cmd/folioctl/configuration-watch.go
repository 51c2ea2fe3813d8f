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

	"github.com/doodlesbykumbi/folio/pkg/config"
)

// configurationWatchCmd represents the configuration watch command
var configurationWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Validate the config file every time it changes",
	Long: `Watch folio.yml and validate it whenever it is written.

Each change prints the attributes that differ from the previous valid
configuration, or the validation error. A running server does not reload
its configuration; restart it to apply changes.

Example:
  folioctl configuration watch`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := watchConfiguration(ctx, cmd.OutOrStdout(), cfg.ConfigFilePath()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationWatchCmd)
}

// watchConfiguration reports every change to the file at path until ctx is done.
// The parent directory is watched so that editors replacing the file are seen.
func watchConfiguration(ctx context.Context, w io.Writer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	current := loadAndReport(w, path, nil)
	_, _ = fmt.Fprintf(w, "Watching %s for changes\n", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			_, _ = fmt.Fprintf(w, "[%s] %s changed\n", time.Now().Format(time.RFC3339), path)
			if next := loadAndReport(w, path, current); next != nil {
				current = next
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(w, "Watcher error: %v\n", err)
		case <-ctx.Done():
			return nil
		}
	}
}

// loadAndReport loads and validates path, printing the outcome and the
// differences from previous. It returns nil if the configuration is invalid.
func loadAndReport(w io.Writer, path string, previous *config.FolioConfig) *config.FolioConfig {
	cfg, err := config.LoadFile(path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		_, _ = fmt.Fprintf(w, "Configuration is invalid: %v\n", err)
		return nil
	}

	if previous == nil {
		_, _ = fmt.Fprintln(w, "Configuration is valid.")
		return cfg
	}

	changes := diffAttributes(previous.Attributes(), cfg.Attributes())
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(w, "Configuration is valid; no attributes changed.")
		return cfg
	}
	_, _ = fmt.Fprintln(w, "Configuration is valid; changed attributes:")
	for _, c := range changes {
		_, _ = fmt.Fprintf(w, "  %s: %q -> %q\n", c.name, c.from, c.to)
	}
	return cfg
}

type attributeChange struct {
	name     string
	from, to string
}

// diffAttributes lists attributes whose value differs, in the order of next.
func diffAttributes(prev, next []config.Attribute) []attributeChange {
	old := make(map[string]string, len(prev))
	for _, a := range prev {
		old[a.Name] = a.Value
	}

	var changes []attributeChange
	for _, a := range next {
		if from, ok := old[a.Name]; !ok || from != a.Value {
			changes = append(changes, attributeChange{name: a.Name, from: from, to: a.Value})
		}
	}
	return changes
}
