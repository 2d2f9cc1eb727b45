// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package template

// Order arranges the sheet names found in flatten-tool output by the
// configured priority list. Priority entries absent from found are dropped;
// found names missing from the priority list are appended at the end in
// discovery order and returned as unlisted so the caller can warn. The
// priority order is what makes identifier linking work: parents must come
// before children.
func Order(found, priority []string) (ordered, unlisted []string) {
	inFound := make(map[string]bool, len(found))
	for _, name := range found {
		inFound[name] = true
	}

	listed := make(map[string]bool, len(priority))
	for _, name := range priority {
		listed[name] = true
		if inFound[name] {
			ordered = append(ordered, name)
		}
	}

	for _, name := range found {
		if !listed[name] {
			ordered = append(ordered, name)
			unlisted = append(unlisted, name)
		}
	}
	return ordered, unlisted
}
