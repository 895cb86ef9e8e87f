package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osgb/gridref/internal/engine/batch"
	"github.com/osgb/gridref/internal/osgrid"
)

// batchResult accumulates row counts across batches.
type batchResult struct {
	converted int
	skipped   int
}

// newBatchCmd creates the batch command for bulk CSV conversion.
func newBatchCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		batchSize  int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert a CSV of coordinate pairs",
		Long: `Reads CSV rows of easting,northing (a header row is detected and skipped)
and writes easting,northing,gridref rows. Rows that do not parse as integer
coordinates are skipped and counted in the summary.`,
		Example: `  # File to file
  gridref batch --input coords.csv --output refs.csv

  # Pipe through stdin/stdout with eight figures
  cat coords.csv | gridref batch --figures 8 > refs.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := formatOptions(cmd)

			// Reject a bad figure count before reading any input.
			if _, err := osgrid.Format(0, 0, opts); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			result, err := convertRows(cmd.Context(), in, out, opts, batchSize)
			if err != nil {
				return err
			}

			renderBatchSummary(cmd.ErrOrStderr(), result, isTerminal(os.Stderr))
			return nil
		},
	}

	addFormatFlags(cmd)
	cmd.Flags().StringVar(&inputPath, "input", "", "input CSV path (default stdin)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output CSV path (default stdout)")
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultSize, "rows per processing batch (1-1000)")

	return cmd
}

// convertRows streams CSV records through the batch processor. Sequential
// processing keeps output rows aligned with input order.
func convertRows(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	opts osgrid.Options,
	batchSize int,
) (batchResult, error) {
	var result batchResult

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return result, fmt.Errorf("read input: %w", err)
	}

	// A non-numeric first row is treated as a header.
	if len(records) > 0 {
		if _, _, err := parseRecord(records[0]); err != nil {
			records = records[1:]
		}
	}
	if len(records) == 0 {
		return result, nil
	}

	processor, err := batch.NewProcessor[[]string](batchSize)
	if err != nil {
		return result, err
	}
	processor.WithProgress(func(progress *batch.Progress) {
		processed, total := progress.Items()
		logger.Debug().Int("processed", processed).Int("total", total).Msg("batch progress")
	})

	writer := csv.NewWriter(out)
	callback := func(_ context.Context, rows [][]string, _ int) error {
		for _, row := range rows {
			easting, northing, err := parseRecord(row)
			if err != nil {
				result.skipped++
				logger.Warn().Strs("row", row).Err(err).Msg("skipping unparseable row")
				continue
			}

			ref, err := osgrid.Format(easting, northing, opts)
			if err != nil {
				return err
			}

			record := []string{strconv.Itoa(easting), strconv.Itoa(northing), ref}
			if err := writer.Write(record); err != nil {
				return err
			}
			result.converted++
		}
		return nil
	}

	if err := processor.Process(ctx, records, callback); err != nil {
		return result, err
	}

	writer.Flush()
	return result, writer.Error()
}

// parseRecord extracts integer easting/northing from a CSV record.
func parseRecord(record []string) (easting, northing int, err error) {
	if len(record) < 2 {
		return 0, 0, fmt.Errorf("expected easting,northing, got %d fields", len(record))
	}

	easting, err = strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("easting %q: %w", record[0], err)
	}
	northing, err = strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("northing %q: %w", record[1], err)
	}

	return easting, northing, nil
}
