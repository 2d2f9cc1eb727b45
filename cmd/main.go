// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package main is the entry point for the rdls-template CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GFDRR/rdls-spreadsheet-template/cmd/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
