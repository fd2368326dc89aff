// Package main is the entry point for the clusterplay CLI.
//
// Usage:
//
//	clusterplay [flags] <command> [flags]
//
// Commands:
//
//	kmeans  - step k-means (manually or on a timer) and print each phase
//	dbscan  - run DBSCAN and print labels and core flags
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mpraski/clusterplay/cmd/clusterplay/commands"
)

func main() {
	if err := commands.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
