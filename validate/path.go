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

package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pattern validation errors
var (
	ErrPatternEmpty              = errors.New("pattern cannot be empty")
	ErrPatternNoLeadingSlash     = errors.New("pattern must start with '/'")
	ErrPatternDuplicateParameter = errors.New("duplicate path parameter")
	ErrPatternInvalidParameter   = errors.New("invalid path parameter format")
)

// validParameterNamePattern validates parameter names: ^[a-zA-Z0-9._-]+$
// Per OpenAPI spec, parameter names should be alphanumeric with dots, underscores, and hyphens
var validParameterNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidatePattern validates a registered route pattern before it is used to
// derive documented paths.
//
// It accepts both router-style (:param) and OpenAPI-style ({param}) syntax;
// providers normalize to OpenAPI format. Only the path portion is checked:
// anything after the first '?' is a derived or literal query fragment and is
// ignored, since derived patterns must compose.
//
// Validation checks:
//   - Non-empty path portion
//   - Path starts with '/'
//   - Valid path parameter syntax (:param or {param})
//   - No duplicate path parameters
//   - Parameter names match [a-zA-Z0-9._-]+
//   - Properly paired braces in {param} syntax
//
// Returns an error if validation fails.
func ValidatePattern(pattern string) error {
	path, _, _ := strings.Cut(pattern, "?")

	if path == "" {
		return ErrPatternEmpty
	}

	if !strings.HasPrefix(path, "/") {
		return ErrPatternNoLeadingSlash
	}

	// Track seen parameters to detect duplicates
	params := make(map[string]bool)

	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}

		var paramName string

		// Check for :param syntax (router-style)
		if after, ok := strings.CutPrefix(seg, ":"); ok {
			paramName = after
			if paramName == "" {
				return fmt.Errorf("%w: empty parameter name in segment ':%s'", ErrPatternInvalidParameter, seg)
			}

			if !validParameterNamePattern.MatchString(paramName) {
				return fmt.Errorf("%w: parameter name '%s' must match pattern [a-zA-Z0-9._-]+", ErrPatternInvalidParameter, paramName)
			}
		}

		// Check for {param} syntax (OpenAPI-style)
		if strings.Contains(seg, "{") || strings.Contains(seg, "}") {
			// Must have both opening and closing braces
			if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
				return fmt.Errorf("%w: mismatched braces in segment '%s' (use ':param' or '{param}')", ErrPatternInvalidParameter, seg)
			}

			paramName = strings.TrimPrefix(strings.TrimSuffix(seg, "}"), "{")
			if paramName == "" {
				return fmt.Errorf("%w: empty parameter name in segment '{}'", ErrPatternInvalidParameter)
			}

			// Check for nested or malformed braces
			if strings.Contains(paramName, "{") || strings.Contains(paramName, "}") {
				return fmt.Errorf("%w: parameter name cannot contain braces: '%s'", ErrPatternInvalidParameter, seg)
			}

			if !validParameterNamePattern.MatchString(paramName) {
				return fmt.Errorf("%w: parameter name '%s' must match pattern [a-zA-Z0-9._-]+", ErrPatternInvalidParameter, paramName)
			}
		}

		// Check for duplicate parameters
		if paramName != "" {
			if params[paramName] {
				return fmt.Errorf("%w: '%s' appears multiple times", ErrPatternDuplicateParameter, paramName)
			}
			params[paramName] = true
		}
	}

	return nil
}
