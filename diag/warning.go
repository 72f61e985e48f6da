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

package diag

import (
	"fmt"
	"strings"
)

// Warning represents an informational, non-fatal issue found while deriving
// path variants or patching a document.
//
// Warnings are ADVISORY ONLY and never break execution. Use errors for
// issues that must stop the process.
type Warning interface {
	// Code returns the warning identifier.
	// Compare with Warn* constants for type-safe checks.
	Code() WarningCode

	// Path returns the affected path key or route ("PUT /items/{id}").
	Path() string

	// Message returns a human-readable description.
	Message() string

	// Category returns the warning's category for grouping.
	Category() WarningCategory

	// String returns a formatted representation.
	String() string
}

// WarningCode identifies a specific warning type.
// Use the Warn* constants for type-safe comparisons.
type WarningCode string

// String returns the code as a string.
func (c WarningCode) String() string {
	return string(c)
}

// Category returns the code's category.
func (c WarningCode) Category() WarningCategory {
	switch {
	case strings.HasPrefix(string(c), "PATCH_"):
		return CategoryPatch
	case strings.HasPrefix(string(c), "DECLARE_"):
		return CategoryDeclaration
	default:
		return CategoryUnknown
	}
}

// Patch Warnings (document did not match the declared routes)
const (
	// WarnPatchPathMissing indicates a mapping's base path has no entry in
	// the document.
	WarnPatchPathMissing WarningCode = "PATCH_PATH_MISSING"

	// WarnPatchOperationMissing indicates the base path entry exists but has
	// no operation for the mapping's method.
	WarnPatchOperationMissing WarningCode = "PATCH_OPERATION_MISSING"

	// WarnPatchVariantCollision indicates a derived path overwrote an
	// operation already present under that key.
	WarnPatchVariantCollision WarningCode = "PATCH_VARIANT_COLLISION"
)

// Declaration Warnings (the declarations themselves are questionable)
const (
	// WarnDeclareNoVisibleChange indicates a mapping declared conditions but
	// none of them render (all negated), so its documented path is unchanged.
	WarnDeclareNoVisibleChange WarningCode = "DECLARE_NO_VISIBLE_CHANGE"

	// WarnDeclareUnmatchedRoute indicates a variant declaration matched no
	// registered route.
	WarnDeclareUnmatchedRoute WarningCode = "DECLARE_UNMATCHED_ROUTE"
)

// WarningCategory groups related warning types.
type WarningCategory string

const (
	// CategoryUnknown for unrecognized warning codes.
	CategoryUnknown WarningCategory = "unknown"

	// CategoryPatch for mismatches between declared routes and the document.
	// The document is still produced, minus the affected variants.
	CategoryPatch WarningCategory = "patch"

	// CategoryDeclaration for variant declarations that have no effect.
	CategoryDeclaration WarningCategory = "declaration"
)

// String returns the category as a string.
func (c WarningCategory) String() string {
	return string(c)
}

// Warnings is a collection of Warning with helper methods.
// Warnings are informational and never break execution.
type Warnings []Warning

// Has returns true if any warning matches the given code.
func (ws Warnings) Has(code WarningCode) bool {
	for _, w := range ws {
		if w.Code() == code {
			return true
		}
	}
	return false
}

// HasCategory returns true if any warning is in the given category.
func (ws Warnings) HasCategory(cat WarningCategory) bool {
	for _, w := range ws {
		if w.Category() == cat {
			return true
		}
	}
	return false
}

// FilterCategory returns warnings in the given category.
func (ws Warnings) FilterCategory(cat WarningCategory) Warnings {
	result := make(Warnings, 0, len(ws))
	for _, w := range ws {
		if w.Category() == cat {
			result = append(result, w)
		}
	}
	return result
}

// Each calls fn for each warning.
func (ws Warnings) Each(fn func(Warning)) {
	for _, w := range ws {
		fn(w)
	}
}

// Codes returns all unique warning codes in this collection, in first-seen
// order.
func (ws Warnings) Codes() []WarningCode {
	seen := make(map[WarningCode]struct{}, len(ws))
	codes := make([]WarningCode, 0, len(ws))
	for _, w := range ws {
		if _, ok := seen[w.Code()]; !ok {
			seen[w.Code()] = struct{}{}
			codes = append(codes, w.Code())
		}
	}
	return codes
}

// String returns a formatted string of all warnings.
func (ws Warnings) String() string {
	if len(ws) == 0 {
		return "no warnings"
	}
	var s strings.Builder
	fmt.Fprintf(&s, "%d warning(s):", len(ws))
	for i, w := range ws {
		fmt.Fprintf(&s, "\n  [%d] %s", i+1, w.String())
	}
	return s.String()
}

// warning is the concrete implementation of the Warning interface.
type warning struct {
	code    WarningCode
	path    string
	message string
}

func (w *warning) Code() WarningCode {
	return w.code
}

func (w *warning) Path() string {
	return w.path
}

func (w *warning) Message() string {
	return w.message
}

func (w *warning) Category() WarningCategory {
	return w.code.Category()
}

func (w *warning) String() string {
	return fmt.Sprintf("[%s] %s at %s: %s", w.code.Category(), w.code, w.path, w.message)
}

// NewWarning creates a new Warning instance.
func NewWarning(code WarningCode, path, message string) Warning {
	return &warning{
		code:    code,
		path:    path,
		message: message,
	}
}
