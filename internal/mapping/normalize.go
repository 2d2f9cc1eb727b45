// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package mapping

import "strings"

// arrayIndexToken is the literal segment flatten-tool inserts for array
// positions in column paths.
const arrayIndexToken = "0"

// Normalize strips array index segments from a flattened column path, so
// "resources/0/id" and the schema path "resources/id" share one metadata
// key. Only whole segments equal to the index token are removed; a segment
// like "f0" or "10" is left alone.
func Normalize(path string) string {
	segments := strings.Split(path, "/")
	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment != arrayIndexToken {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, "/")
}
