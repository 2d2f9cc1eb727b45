// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package commands

import (
	"fmt"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/version"
	"github.com/spf13/cobra"
)

func registerVersionCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Info())
		},
	}
	parent.AddCommand(cmd)
}
