package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "juniorcars",
	Short: "JuniorCars marketing site and CMS backend",
	Long: `juniorcars runs the JuniorCars marketing website together with its
headless CMS API and admin UI.

Examples:

  juniorcars serve
  juniorcars seed
`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}
