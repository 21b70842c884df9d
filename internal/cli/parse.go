package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ralt/pkgsum/internal/models"
	"github.com/ralt/pkgsum/internal/summary"
	"github.com/ralt/pkgsum/internal/utils"
	"github.com/ralt/pkgsum/internal/verifier"
)

// NewParseCmd creates the parse command
func NewParseCmd() *cobra.Command {
	var config models.IngestConfig

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a pkg_summary stream and report the result",
		Long: `Reads pkg_summary(5) data from the given file (or standard input),
parses it into package records and reports how many records were accepted
and rejected. Rejected records and skipped fields are logged with their
reasons.`,
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

			if config.List {
				for _, sum := range stream.Entries() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", sum.Pkgname, sum.Comment)
				}
			}
			return nil
		},
	}

	addIngestFlags(cmd, &config)
	cmd.Flags().BoolVarP(&config.List, "list", "l", false, "Print one line per accepted package")

	return cmd
}

// addIngestFlags registers the flags shared by parse and load
func addIngestFlags(cmd *cobra.Command, config *models.IngestConfig) {
	cmd.Flags().StringVar(&config.Checksum, "cksum", "", "Expected checksum of the raw input (algo:hexdigest)")
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG public keyring for verification")
	cmd.Flags().StringVarP(&config.SignaturePath, "signature", "s", "", "Path to armored detached signature")
}

// runIngest reads, verifies, decompresses and parses the configured input,
// returning the finished stream.
func runIngest(config *models.IngestConfig) (*summary.Stream, error) {
	data, err := readInput(config.InputPath)
	if err != nil {
		return nil, err
	}

	if config.Checksum != "" {
		if err := utils.VerifyChecksum(data, config.Checksum); err != nil {
			return nil, err
		}
		logrus.Debug("checksum verified")
	}

	if config.GPGKeyPath != "" {
		data, err = verifyInput(config, data)
		if err != nil {
			return nil, err
		}
		logrus.Debug("signature verified")
	}

	r, err := utils.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	stream := summary.NewStream()
	if _, err := io.Copy(stream, r); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return stream, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// verifyInput checks the input's PGP signature. With a detached signature
// the input is returned as-is; cleartext-signed input is replaced by the
// signed payload.
func verifyInput(config *models.IngestConfig, data []byte) ([]byte, error) {
	v, err := verifier.NewGPGVerifier(config.GPGKeyPath)
	if err != nil {
		return nil, err
	}

	if config.SignaturePath != "" {
		sig, err := os.ReadFile(config.SignaturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read signature: %w", err)
		}
		if err := v.VerifyDetached(data, sig); err != nil {
			return nil, err
		}
		return data, nil
	}

	return v.VerifyCleartext(data)
}
