// Package main is the entry point for the wxstory CLI and server.
package main

import (
	"os"

	"wxstory/internal/cli"
)

// version is set at build time via ldflags.
var version = "0.2.0"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
