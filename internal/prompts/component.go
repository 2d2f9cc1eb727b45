// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package prompts

import "github.com/charmbracelet/huh"

// SelectComponent asks which schema component to build a template for.
// An empty return value means the full template.
func SelectComponent(components []string) (string, error) {
	options := make([]huh.Option[string], 0, len(components)+1)
	options = append(options, huh.NewOption("Full template (all components)", ""))
	for _, c := range components {
		options = append(options, huh.NewOption(c, c))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Component").
				Description("Restrict the template to one risk data component").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
