// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rdls-template",
		Short: "Generate xlsx data-entry templates for the Risk Data Library Standard",
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a yaml configuration file")

	registerCreateTemplateCmd(rootCmd)
	registerVersionCmd(rootCmd)

	return rootCmd
}
