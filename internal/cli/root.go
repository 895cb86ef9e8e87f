// Package cli wires the gridref command tree: format, batch, and config.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/osgb/gridref/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// cfg holds the configuration loaded in PersistentPreRunE before any
// subcommand runs.
var cfg *config.Config //nolint:gochecknoglobals // Loaded once per invocation

// NewRootCmd creates the root Cobra command for the gridref CLI.
// It loads configuration, sets up logging, and registers the format, batch,
// and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gridref",
		Short:        "Ordnance Survey grid reference converter",
		Long:         "gridref converts British National Grid (EPSG:27700) coordinates to Ordnance Survey alphanumeric grid references",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")

			var err error
			if path != "" {
				cfg, err = config.LoadFrom(path)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (default ~/.gridref/config.yaml)")
	cmd.AddCommand(newFormatCmd(), newBatchCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Six-figure reference for a point in central London
  gridref format 532100 181300

  # Four-figure reference with spaces
  gridref format 532100 181300 --figures 4 --spaces

  # Convert a CSV of easting,northing rows
  gridref batch --input coords.csv --output refs.csv

  # Initialize configuration
  gridref config init`
