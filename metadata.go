// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pandocreader

import (
	"encoding/json"
	"sort"
	"strings"
)

// KeyRule renames a lower-cased metadata key. When is optional; a nil When
// matches every value.
type KeyRule struct {
	From string
	To   string
	When func(value any) bool
}

func (r KeyRule) matches(key string, value any) bool {
	if key != r.From {
		return false
	}
	return r.When == nil || r.When(value)
}

// DefaultKeyRules returns the rules applied when none are configured: a list
// of authors under "author" is stored as "authors".
func DefaultKeyRules() []KeyRule {
	return []KeyRule{
		{From: "author", To: "authors", When: isList},
	}
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

// parseMetadata decodes the JSON emitted by the metadata template.
func parseMetadata(path, out string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, &MetadataError{Path: path, Err: err}
	}
	return raw, nil
}

// normalizeMetadata lower-cases keys and applies the first matching rule per
// key. A rule is skipped when its target key is already present, so explicit
// metadata is never overwritten by a renamed key. Values are kept as decoded.
// Keys are visited in sorted order so that case-colliding keys resolve
// deterministically.
func normalizeMetadata(raw map[string]any, rules []KeyRule) map[string]any {
	keys := make([]string, 0, len(raw))
	present := make(map[string]bool, len(raw))
	for k := range raw {
		keys = append(keys, k)
		present[strings.ToLower(k)] = true
	}
	sort.Strings(keys)

	out := make(map[string]any, len(raw))
	for _, k := range keys {
		value := raw[k]
		key := strings.ToLower(k)
		for _, rule := range rules {
			if rule.matches(key, value) {
				if !present[rule.To] {
					key = rule.To
				}
				break
			}
		}
		out[key] = value
	}
	return out
}
