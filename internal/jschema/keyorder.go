// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

package jschema

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// ExtractKeyOrder parses raw JSON and extracts the order of keys for all
// "properties" objects. Result keys are dotted document paths, e.g.
// "properties" for the root and "$defs.Resource.properties" for a definition.
func ExtractKeyOrder(data []byte) (map[string][]string, error) {
	result := make(map[string][]string)
	var extract func(dec *json.Decoder, path string)
	extract = func(dec *json.Decoder, path string) {
		token, err := dec.Token()
		if err != nil {
			return
		}
		if t, ok := token.(json.Delim); ok {
			if t == '{' {
				var keys []string
				for dec.More() {
					keyToken, err := dec.Token()
					if err != nil {
						return
					}
					key, ok := keyToken.(string)
					if !ok {
						continue
					}
					keys = append(keys, key)
					var newPath string
					if path == "" {
						newPath = key
					} else {
						newPath = path + "." + key
					}
					extract(dec, newPath)
				}
				_, _ = dec.Token()
				if strings.HasSuffix(path, "properties") || path == "properties" {
					result[path] = keys
				}
			} else if t == '[' {
				for dec.More() {
					extract(dec, path)
				}
				_, _ = dec.Token()
			}
		}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	extract(dec, "")
	return result, nil
}

// OrderedKeys returns the names of props in their original document order.
// path addresses the containing "properties" object, in the dotted form used
// by ExtractKeyOrder. When the path was not captured (the node was
// synthesized after parsing) the names are sorted for determinism. Captured
// names no longer present in the map are skipped.
func OrderedKeys(keyOrder map[string][]string, path string, props map[string]*jsonschema.Schema) []string {
	if order, ok := keyOrder[path]; ok {
		result := make([]string, 0, len(order))
		for _, key := range order {
			if _, exists := props[key]; exists {
				result = append(result, key)
			}
		}
		return result
	}

	keys := make([]string, 0, len(props))
	for name := range props {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
