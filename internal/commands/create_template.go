// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/cmdctx"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/codelist"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/fetch"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/flatten"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/jschema"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/mapping"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/prompts"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/template"
	"github.com/GFDRR/rdls-spreadsheet-template/internal/workbook"
	"github.com/spf13/cobra"
)

// tempDirName holds the schema and flatten-tool output during a run.
const tempDirName = ".temp"

const docsURL = "https://docs.riskdatalibrary.org/"

type createTemplateOptions struct {
	component   string
	schemaURL   string
	output      string
	wkt         bool
	interactive bool
}

func registerCreateTemplateCmd(parent *cobra.Command) {
	opts := &createTemplateOptions{}

	cmd := &cobra.Command{
		Use:   "create-template",
		Short: "Build an xlsx data-entry template from the RDLS schema",
		Long: `Build an xlsx data-entry template from the RDLS schema.

The schema is fetched, flattened into per-entity sheets with flatten-tool,
and rendered as a formatted workbook with field guidance, codelist
dropdowns and cross-sheet identifier validation.`,
		Example: `  # Full template covering every component
  rdls-template create-template

  # Hazard-only template
  rdls-template create-template --component hazard

  # Pick the component interactively
  rdls-template create-template -i

  # Geometry fields as well-known-text entry columns
  rdls-template create-template --wkt`,
		PersistentPreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateTemplate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.component, "component", "c", "", "Schema component to restrict the template to")
	cmd.Flags().StringVarP(&opts.schemaURL, "schema", "s", "", "Schema URL (overrides the configuration)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (overrides the configuration)")
	cmd.Flags().BoolVar(&opts.wkt, "wkt", false, "Render geometry fields as well-known-text entry columns")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose the component interactively")

	parent.AddCommand(cmd)
}

func runCreateTemplate(cmd *cobra.Command, opts *createTemplateOptions) error {
	cfg, err := cmdctx.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	if opts.schemaURL != "" {
		cfg.SchemaURL = opts.schemaURL
	}
	if opts.output != "" {
		cfg.OutputDir = opts.output
	}

	component := opts.component
	if opts.interactive && component == "" {
		if component, err = prompts.SelectComponent(cfg.Components); err != nil {
			return err
		}
	}
	if component != "" && !cfg.HasComponent(component) {
		return fmt.Errorf("unknown component %q (available: %s)",
			component, strings.Join(cfg.Components, ", "))
	}

	ctx := cmd.Context()

	fmt.Printf("Fetching schema from %s\n", cfg.SchemaURL)
	body, err := fetch.New().Get(ctx, cfg.SchemaURL)
	if err != nil {
		return fmt.Errorf("fetching schema: %w", err)
	}
	schema, keyOrder, err := jschema.Parse(body)
	if err != nil {
		return err
	}
	jschema.PruneComponents(schema, cfg.Components, component)
	jschema.PatchClassificationScheme(schema)

	if err := os.MkdirAll(tempDirName, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", tempDirName, err)
	}
	defer cleanupTempDir()

	schemaPath := filepath.Join(tempDirName, "schema.json")
	if err := jschema.WriteFile(schemaPath, schema); err != nil {
		return err
	}

	runner := &flatten.Runner{
		MainSheet:        cfg.MainSheet,
		RollupField:      "id",
		TruncationLength: cfg.TruncationLength,
	}
	fmt.Println("Flattening schema")
	if err := runner.CreateTemplate(ctx, schemaPath, tempDirName); err != nil {
		return err
	}
	sheets, err := flatten.ReadSheets(tempDirName)
	if err != nil {
		return err
	}

	table, err := mapping.Build(schema, keyOrder)
	if err != nil {
		return err
	}
	codes, err := codelist.NewClient(cfg.SchemaURL)
	if err != nil {
		return err
	}

	builder := &template.Builder{
		Metadata:   table,
		Priority:   cfg.SheetOrder,
		InputRows:  cfg.InputRows,
		FetchCodes: codes.Codes,
		WKT:        opts.wkt,
	}
	tpl, err := builder.Build(ctx, sheets)
	if err != nil {
		return err
	}
	for _, warning := range tpl.Warnings {
		prompts.PrintWarning(warning)
	}

	name := component
	if name == "" {
		name = "full"
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.OutputDir, err)
	}
	outPath := filepath.Join(cfg.OutputDir, name+".xlsx")

	writer := &workbook.Writer{
		Title:            templateTitle(component),
		DocsURL:          docsURL,
		Palette:          cfg.Palette,
		TruncationLength: cfg.TruncationLength,
		InputRows:        cfg.InputRows,
	}
	if err := writer.Write(tpl, outPath); err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Schema", Value: cfg.SchemaURL},
		{Label: "Component", Value: name},
		{Label: "Sheets", Value: strconv.Itoa(len(tpl.Sheets))},
		{Label: "Template", Value: outPath},
	}, "Template created")
	return nil
}

func templateTitle(component string) string {
	if component == "" {
		return "Risk Data Library Standard template"
	}
	return fmt.Sprintf("Risk Data Library Standard %s template", component)
}

// cleanupTempDir empties and removes the working directory, best-effort:
// a stale temp dir is an annoyance, not a failed run.
func cleanupTempDir() {
	flatten.RemoveContents(tempDirName, func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	})
	if err := os.Remove(tempDirName); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to remove %s: %v\n", tempDirName, err)
	}
}
