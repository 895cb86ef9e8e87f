// Command gridref converts British National Grid (EPSG:27700) coordinates
// to Ordnance Survey alphanumeric grid references.
package main

import (
	"os"

	"github.com/osgb/gridref/internal/cli"
	"github.com/osgb/gridref/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps failure to a process exit code.
// Cobra prints the error itself, so run only translates it.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
