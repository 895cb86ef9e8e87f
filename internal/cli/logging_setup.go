package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/osgb/gridref/internal/logging"
)

// Environment overrides applied on top of the config file.
const (
	envLogLevel  = "GRIDREF_LOG_LEVEL"
	envLogFormat = "GRIDREF_LOG_FORMAT"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) error {
	loggingCfg := cfg.Logging.ToLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.Output = logging.OutputStderr
		loggingCfg.File = ""
	}

	if envLevel := os.Getenv(envLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(envLogFormat); envFormat != "" {
		loggingCfg.Format = envFormat
	}

	base, err := logging.New(loggingCfg)
	if err != nil {
		return err
	}
	logger = logging.ComponentLogger(base, "cli")

	cmd.SetContext(logger.WithContext(cmd.Context()))
	logger.Debug().Str("command", cmd.Name()).Msg("command started")

	return nil
}
