package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/folio/pkg/config"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the folio server to be ready",
	Long: `Wait for the folio server to be ready by polling the health endpoint.

This command will repeatedly check /health until it responds successfully
or the maximum number of retries is reached.

Example:
  folioctl wait
  folioctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		url := fmt.Sprintf("http://localhost:%d/health", port)
		if err := waitForServer(cmd.Context(), cmd.OutOrStdout(), url, retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPort(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func defaultPort() int {
	if cfg, err := config.Load(); err == nil {
		return cfg.Port
	}
	return 8070
}

func waitForServer(ctx context.Context, w io.Writer, url string, retries int, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client := &http.Client{Timeout: 2 * time.Second}

	_, _ = fmt.Fprintln(w, "Waiting for folio to be ready...")

	for i := 0; i < retries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 300 {
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprintln(w, "folio is ready!")
				return nil
			}
		}

		_, _ = fmt.Fprint(w, ".")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	_, _ = fmt.Fprintln(w)
	return fmt.Errorf("folio is not ready after %d attempts", retries)
}
