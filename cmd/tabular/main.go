package main

import (
	"context"
	"fmt"
	"os"
)

// ============================================================================
// TABULAR CLI — Describe and filter user datasets
// ============================================================================

const version = "0.1.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
