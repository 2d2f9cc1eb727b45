// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package cmdctx

import (
	"errors"
	"fmt"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/config"
	"github.com/spf13/cobra"
)

// FromCommand extracts the configuration from a cobra.Command's context.
// Returns nil if no configuration is stored.
func FromCommand(cmd *cobra.Command) *config.Config {
	return From(cmd.Context())
}

// RequireFromCommand extracts the configuration from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*config.Config, error) {
	cfg := FromCommand(cmd)
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// PreRunLoad is a PersistentPreRunE function that loads the configuration
// named by the --config flag (or the built-in defaults) and stores it in the
// command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd.SetContext(With(cmd.Context(), cfg))
	return nil
}
