// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package commands_test

import (
	"testing"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := commands.NewRootCmd()
	assert.Equal(t, "rdls-template", root.Use)
	require.NotNil(t, root.PersistentFlags().Lookup("config"))

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "create-template")
	assert.Contains(t, names, "version")
}

func TestCreateTemplateFlags(t *testing.T) {
	root := commands.NewRootCmd()
	cmd, _, err := root.Find([]string{"create-template"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		shorthand string
	}{
		{"component", "c"},
		{"schema", "s"},
		{"output", "o"},
		{"wkt", ""},
		{"interactive", "i"},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "flag --%s", tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand, "flag --%s", tt.name)
	}
}
