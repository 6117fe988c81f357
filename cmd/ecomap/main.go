// Package main provides the entry point for the ecomap CLI tool.
package main

import "github.com/openecomap/ecomap/cmd/ecomap/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
