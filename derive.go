// Copyright 2026 The parampath Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parampath

import (
	"slices"
	"strings"
)

// Derive appends the non-negated conditions to every pattern as a
// query-string fragment and returns the resulting pattern set.
//
// Rules:
//
//   - Negated conditions are dropped: they express parameter absence and
//     have no positive query rendering.
//   - Each retained condition renders as "name" or "name=value"; fragments
//     are joined with "&" in the order the conditions appear.
//   - When no condition renders (none given, or all negated), the input
//     patterns are returned as a verbatim copy: same members, same order.
//   - Otherwise each pattern gets the fragment appended, with "?" as the
//     separator unless the pattern already contains "?", in which case "&"
//     is used. The result is a fresh slice, deduplicated and sorted.
//
// Names and values are inserted verbatim; no URL-encoding is applied.
// Derive never mutates its inputs and is safe for concurrent use. A nil
// slice is treated as empty.
func Derive(patterns []string, conditions []Condition) []string {
	fragment := queryFragment(conditions)
	if fragment == "" {
		return slices.Clone(patterns)
	}

	derived := make([]string, 0, len(patterns))
	for _, p := range patterns {
		derived = append(derived, appendFragment(p, fragment))
	}
	slices.Sort(derived)
	return slices.Compact(derived)
}

// queryFragment renders the non-negated conditions in order, joined with "&".
func queryFragment(conditions []Condition) string {
	var b strings.Builder
	for _, c := range conditions {
		if c.Negated {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(c.Fragment())
	}
	return b.String()
}

// appendFragment joins pattern and fragment with "?", or with "&" when the
// pattern already carries a query string.
func appendFragment(pattern, fragment string) string {
	if strings.Contains(pattern, "?") {
		return pattern + "&" + fragment
	}
	return pattern + "?" + fragment
}
