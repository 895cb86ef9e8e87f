package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osgb/gridref/internal/config"
	"github.com/osgb/gridref/internal/osgrid"
)

// executeWithConfig runs the root command with args against the config file
// at configPath, returning stdout and the execution error.
func executeWithConfig(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, configPath)

	root := NewRootCmd("test")
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// execute runs the root command with args and an isolated, empty config.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), "config.yaml"), args...)
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "six figure default", args: []string{"format", "532100", "181300"}, want: "TQ321813\n"},
		{name: "four figure", args: []string{"format", "532100", "181300", "--figures", "4"}, want: "TQ3281\n"},
		{name: "letters only", args: []string{"format", "532100", "181300", "--figures", "0"}, want: "TQ\n"},
		{name: "spaces", args: []string{"format", "532100", "181300", "--spaces"}, want: "TQ 321 813\n"},
		{name: "variable", args: []string{"format", "530000", "181000", "--variable"}, want: "TQ3081\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCommandErrors(t *testing.T) {
	t.Run("odd figures", func(t *testing.T) {
		_, err := execute(t, "format", "532100", "181300", "--figures", "5")
		require.ErrorIs(t, err, osgrid.ErrInvalidFigures)
	})

	t.Run("non-integer easting", func(t *testing.T) {
		_, err := execute(t, "format", "east", "181300")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid easting")
	})

	t.Run("non-integer northing", func(t *testing.T) {
		_, err := execute(t, "format", "532100", "north")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid northing")
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := execute(t, "format", "532100")
		require.Error(t, err)
	})
}

func TestFormatCommandUsesConfigDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  figures: 4\n  spaces: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	got, err := executeWithConfig(t, configPath, "format", "532100", "181300")
	require.NoError(t, err)
	assert.Equal(t, "TQ 32 81\n", got)

	// Explicit flags still win over the file.
	got, err = executeWithConfig(t, configPath, "format", "532100", "181300", "--figures", "6")
	require.NoError(t, err)
	assert.Equal(t, "TQ 321 813\n", got)
}

func TestFormatCommandRejectsInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output:\n  figures: 3\n"), 0o600))

	_, err := executeWithConfig(t, configPath, "format", "532100", "181300")
	require.ErrorIs(t, err, osgrid.ErrInvalidFigures)
}
