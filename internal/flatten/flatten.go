// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package flatten drives the external flatten-tool CLI and reads the
// per-sheet CSV templates it produces.
package flatten

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCommand is the flatten-tool executable looked up on PATH.
const DefaultCommand = "flatten-tool"

// Runner invokes flatten-tool's create-template subcommand.
type Runner struct {
	// Command overrides the executable name; empty means DefaultCommand.
	Command string
	// MainSheet is the sheet the schema root flattens into.
	MainSheet string
	// RollupField is the field kept on parent sheets for rolled-up arrays.
	RollupField string
	// TruncationLength limits generated sheet-name length.
	TruncationLength int
}

// Sheet is one flattened entity sheet and its column paths, in CSV order.
type Sheet struct {
	Name    string
	Columns []string
}

func (r *Runner) command() string {
	if r.Command != "" {
		return r.Command
	}
	return DefaultCommand
}

func (r *Runner) args(schemaPath, outDir string) []string {
	return []string{
		"create-template",
		"-s", schemaPath,
		"-f", "csv",
		"-m", r.MainSheet,
		"-o", outDir,
		"-r", r.RollupField,
		"--truncation-length", strconv.Itoa(r.TruncationLength),
	}
}

// CreateTemplate runs flatten-tool against the schema file, writing one CSV
// per sheet into outDir. The tool's stderr is included in any error.
func (r *Runner) CreateTemplate(ctx context.Context, schemaPath, outDir string) error {
	cmd := exec.CommandContext(ctx, r.command(), r.args(schemaPath, outDir)...) //nolint:gosec // fixed subcommand, caller-controlled paths
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s create-template: %w: %s", r.command(), err, msg)
		}
		return fmt.Errorf("%s create-template: %w", r.command(), err)
	}
	return nil
}

// ReadSheets reads the column-path header of every CSV in dir. Sheets come
// back in file-name order, which fixes the discovery order of sheets missing
// from the configured priority list.
func ReadSheets(dir string) ([]Sheet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var sheets []Sheet
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".csv")
		columns, err := readHeader(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Columns: columns})
	}
	return sheets, nil
}

func readHeader(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the temp dir listing
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	return header, nil
}

// RemoveContents deletes everything inside dir, best-effort. Failures are
// reported through logf per entry and never abort the caller.
func RemoveContents(dir string, logf func(format string, args ...any)) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logf("failed to list %s: %v", dir, err)
		}
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			logf("failed to delete %s: %v", path, err)
		}
	}
}
