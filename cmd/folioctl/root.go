package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folioctl",
	Short: "Run and operate the folio portfolio API",
	Long: `folioctl runs the folio API server and the operator tasks around it:
database migrations, configuration inspection, secrets, and user roles.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
