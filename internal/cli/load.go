package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/pkgsum/internal/models"
	"github.com/ralt/pkgsum/internal/store"
)

// NewLoadCmd creates the load command
func NewLoadCmd() *cobra.Command {
	var config models.IngestConfig

	cmd := &cobra.Command{
		Use:   "load [file]",
		Short: "Parse a pkg_summary stream and load it into SQLite",
		Long: `Reads pkg_summary(5) data from the given file (or standard input),
parses it into package records and inserts the accepted records into a
SQLite database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				config.InputPath = args[0]
			}

			stream, err := runIngest(&config)
			if err != nil {
				return err
			}

			report := stream.Report()
			logrus.Infof("parsed %d package records (%d rejected)", report.Accepted, report.Rejected)

			st, err := store.New(config.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Insert(cmd.Context(), stream.Drain())
			if err != nil {
				return err
			}

			logrus.Infof("loaded %d packages into %s", n, st.Path())
			return nil
		},
	}

	addIngestFlags(cmd, &config)
	cmd.Flags().StringVar(&config.DBPath, "db", "pkgsum.db", "Path to the SQLite database")

	return cmd
}
