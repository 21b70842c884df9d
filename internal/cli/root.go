package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pkgsum",
		Short: "Parse pkg_summary(5) package metadata streams",
		Long: `Pkgsum reads pkg_summary(5) data from a file or standard input and
decodes it into typed package records.

Compressed input (gzip, xz, zstd) is decompressed transparently, PGP-signed
input can be verified against a public keyring, and parsed records can be
loaded into a SQLite database.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewParseCmd())
	rootCmd.AddCommand(NewLoadCmd())

	return rootCmd
}
