package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osgb/gridref/internal/osgrid"
)

// newFormatCmd creates the format command converting a single coordinate pair.
func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <easting> <northing>",
		Short: "Convert one coordinate pair to a grid reference",
		Long: `Converts a single easting/northing pair in British National Grid metres
(EPSG:27700) to an Ordnance Survey grid reference.

The figure count sets precision: 0 names the 100km square alone, 6 gives the
conventional 100m reference, 10 gives full 1m precision.`,
		Example: `  # Conventional six-figure reference
  gridref format 532100 181300

  # 100km square letters only
  gridref format 532100 181300 --figures 0

  # Variable precision with spaces
  gridref format 530000 181000 --variable --spaces`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			easting, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid easting %q: %w", args[0], err)
			}
			northing, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid northing %q: %w", args[1], err)
			}

			ref, err := osgrid.Format(easting, northing, formatOptions(cmd))
			if err != nil {
				return err
			}

			logger.Debug().
				Int("easting", easting).
				Int("northing", northing).
				Str("gridref", ref).
				Msg("converted coordinate")

			cmd.Println(ref)
			return nil
		},
	}

	addFormatFlags(cmd)
	return cmd
}

// addFormatFlags registers the formatting flags shared by format and batch.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Int("figures", osgrid.DefaultFigures, "total easting+northing digits (even, 0-10)")
	cmd.Flags().Bool("variable", false, "trim trailing zeros for variable precision")
	cmd.Flags().Bool("spaces", false, "separate letters, easting, and northing with spaces")
}

// formatOptions resolves formatter options from config defaults and flags.
// Explicitly set flags win over the config file.
func formatOptions(cmd *cobra.Command) osgrid.Options {
	opts := cfg.FormatOptions()

	if cmd.Flags().Changed("figures") {
		opts.Figures, _ = cmd.Flags().GetInt("figures")
	}
	if cmd.Flags().Changed("variable") {
		opts.Variable, _ = cmd.Flags().GetBool("variable")
	}
	if cmd.Flags().Changed("spaces") {
		opts.Spaces, _ = cmd.Flags().GetBool("spaces")
	}

	return opts
}
