// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package config holds the template generator configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSchemaURL is the published RDLS schema the template is built from.
const DefaultSchemaURL = "https://rdl-standard.readthedocs.io/en/dev/rdls_schema.json"

// Config controls schema acquisition, sheet layout and workbook output.
// All fields have working defaults; a yaml file can override any of them.
type Config struct {
	// SchemaURL is where the RDLS JSON Schema is fetched from.
	SchemaURL string `yaml:"schema_url"`

	// OutputDir is the directory the workbook is written to.
	OutputDir string `yaml:"output_dir"`

	// MainSheet is the root sheet name passed to flatten-tool.
	MainSheet string `yaml:"main_sheet"`

	// Components are the top-level schema sections a template can be
	// restricted to.
	Components []string `yaml:"components"`

	// SheetOrder fixes the order of sheets in the workbook. Sheets must be
	// listed parents-first: cross-sheet identifier references only look at
	// sheets earlier in this list. Sheets produced by flatten-tool but not
	// listed here are appended at the end with a warning.
	SheetOrder []string `yaml:"sheet_order"`

	// Palette maps a sheet-name prefix to a tab colour. Keys are truncated
	// to TruncationLength before lookup, mirroring flatten-tool's sheet
	// name truncation.
	Palette map[string]string `yaml:"palette"`

	// TruncationLength is the sheet-name length limit passed to flatten-tool.
	TruncationLength int `yaml:"truncation_length"`

	// InputRows is the number of data-entry rows below the header block.
	InputRows int `yaml:"input_rows"`
}

// Default returns the built-in configuration for the RDLS standard.
func Default() *Config {
	return &Config{
		SchemaURL:  DefaultSchemaURL,
		OutputDir:  "templates",
		MainSheet:  "datasets",
		Components: []string{"hazard", "exposure", "vulnerability", "loss"},
		SheetOrder: []string{
			"datasets",
			"attributions",
			"sources",
			"referenced_by",
			"spatial_gazetteerEntries",
			"resources",
			"hazard_event_sets",
			"hazard_event_sets_hazards",
			"hazard_event_sets_spatial_gazet",
			"hazard_event_sets_events",
			"hazard_event_sets_events_footpr",
			"exposure_cost",
			"vulnerabil_cost",
			"vulnerabil_spatial_gazetteerEnt",
			"loss_cost",
			"links",
		},
		Palette: map[string]string{
			"resources":     "#0b3860",
			"hazard":        "#1a6eff",
			"exposure":      "#989bff",
			"vulnerability": "#f9d6ff",
			"loss":          "#c57082",
		},
		TruncationLength: 10,
		InputRows:        1000,
	}
}

// Load reads a Config from a yaml file, overlaying the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// HasComponent reports whether name is one of the configured components.
func (c *Config) HasComponent(name string) bool {
	for _, comp := range c.Components {
		if comp == name {
			return true
		}
	}
	return false
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.SchemaURL == "" {
		return errors.New("schema_url must be set")
	}
	if c.MainSheet == "" {
		return errors.New("main_sheet must be set")
	}
	if len(c.Components) == 0 {
		return errors.New("components must not be empty")
	}
	if c.TruncationLength <= 0 {
		return errors.New("truncation_length must be positive")
	}
	if c.InputRows <= 0 {
		return errors.New("input_rows must be positive")
	}
	for i, sheet := range c.SheetOrder {
		if sheet == "" {
			return fmt.Errorf("sheet_order entry %d is empty", i)
		}
	}
	return nil
}
