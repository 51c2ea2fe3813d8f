package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// secretLength is the number of random bytes in a generated signing secret.
const secretLength = 48

// secretCmd represents the secret command
var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage the token signing secret",
	Long:  `Manage the token signing secret`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'secret' requires a subcommand generate")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// secretGenerateCmd represents the secret generate command
var secretGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a token signing secret",
	Long: `
Generate a token signing secret

Use this command to generate a new Base64-encoded random secret. Once generated,
place it in the environment of the folio server. Every bearer token is signed
with it; rotating it signs out every user.

Example:

$ export FOLIO_TOKEN_SECRET="$(folioctl secret generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		secret, err := generateSecret()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate secret: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprint(cmd.OutOrStdout(), secret)
	},
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretGenerateCmd)
}

func generateSecret() (string, error) {
	b := make([]byte, secretLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.Strict().EncodeToString(b), nil
}
