// RackGen: Piperack Structural Model Generator
//
// A command-line tool that generates piperack frames from a parametric
// configuration, classifies every member, attaches tier loads, searches
// lightest adequate profiles per member group and exports the results.
//
// Build:
//   go build -o rackgen ./cmd/rackgen
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o rackgen.exe ./cmd/rackgen
//   GOOS=darwin  GOARCH=arm64 go build -o rackgen-darwin ./cmd/rackgen

package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
