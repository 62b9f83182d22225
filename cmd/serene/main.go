// Package main is the single-binary entrypoint for Serene.
package main

import "github.com/serene-app/serene/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
