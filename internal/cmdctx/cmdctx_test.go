// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package cmdctx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/cmdctx"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(configPath string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", configPath, "")
	cmd.SetContext(context.Background())
	return cmd
}

func TestPreRunLoadDefaults(t *testing.T) {
	cmd := newTestCmd("")

	require.NoError(t, cmdctx.PreRunLoad(cmd, nil))

	cfg := cmdctx.FromCommand(cmd)
	require.NotNil(t, cfg)
	assert.Equal(t, config.Default(), cfg)
}

func TestPreRunLoadFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_rows: 50\n"), 0o600))

	cmd := newTestCmd(path)
	require.NoError(t, cmdctx.PreRunLoad(cmd, nil))

	cfg := cmdctx.FromCommand(cmd)
	require.NotNil(t, cfg)
	assert.Equal(t, 50, cfg.InputRows)
	assert.Equal(t, config.DefaultSchemaURL, cfg.SchemaURL, "unset fields keep their defaults")
}

func TestPreRunLoadMissingFile(t *testing.T) {
	cmd := newTestCmd(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, cmdctx.PreRunLoad(cmd, nil))
}

func TestPreRunLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_rows: -1\n"), 0o600))

	cmd := newTestCmd(path)
	err := cmdctx.PreRunLoad(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_rows")
}

func TestRequireFromCommandNotLoaded(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetContext(context.Background())

	_, err := cmdctx.RequireFromCommand(cmd)
	assert.Error(t, err)
}
