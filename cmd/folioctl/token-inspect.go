package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/folio/pkg/config"
	"github.com/doodlesbykumbi/folio/pkg/token"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Work with bearer tokens",
	Long:  `Work with bearer tokens issued by the folio server.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand inspect")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var tokenInspectCmd = &cobra.Command{
	Use:   "inspect <token>",
	Short: "Verify a bearer token and print its claims",
	Long: `Verify a bearer token with the configured FOLIO_TOKEN_SECRET and print
its claims. A "Bearer " prefix is accepted.

Example:
  folioctl token inspect eyJhbGciOi...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		secret, err := cfg.TokenSecret()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		tokens, err := token.NewService(secret, token.WithTTL(cfg.TokenTTL), token.WithIssuer(cfg.TokenIssuer))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		if err := inspectToken(cmd.OutOrStdout(), tokens, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Token rejected: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenInspectCmd)
}

type inspectedClaims struct {
	Subject   string `json:"sub"`
	ID        string `json:"jti,omitempty"`
	IssuedAt  string `json:"iat,omitempty"`
	ExpiresAt string `json:"exp"`
	ExpiresIn string `json:"expires_in"`
}

func inspectToken(w io.Writer, tokens *token.Service, raw string) error {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}

	claims, err := tokens.Verify(raw)
	if err != nil {
		return err
	}

	out := inspectedClaims{
		Subject:   claims.Subject,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.UTC().Format(time.RFC3339),
		ExpiresIn: time.Until(claims.ExpiresAt).Round(time.Second).String(),
	}
	if !claims.IssuedAt.IsZero() {
		out.IssuedAt = claims.IssuedAt.UTC().Format(time.RFC3339)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
