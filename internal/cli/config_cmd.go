package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/osgb/gridref/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

// newConfigInitCmd creates the config init command, which writes a config
// file with default values.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create ~/.gridref/config.yaml
  gridref config init

  # Overwrite an existing file
  gridref config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := config.New()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				target.SetPath(path)
			}

			if !force {
				if _, err := os.Stat(target.Path()); err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", target.Path(), err)
				}
			}

			if err := target.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", target.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// newConfigShowCmd creates the config show command, which prints the
// effective configuration as YAML.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal configuration: %w", err)
			}

			cmd.Printf("# %s\n%s", cfg.Path(), data)
			return nil
		},
	}
}
