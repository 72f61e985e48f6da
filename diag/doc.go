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

/*
Package diag provides diagnostic types for path-variant derivation and
document patching.

Warnings are informational, non-fatal issues: a variant declared for a path
the document doesn't contain, a derived path overwriting an existing entry,
a negated-only condition set that leaves a path unchanged. They never stop
patching; strict mode turns the patch-category ones into errors instead.

# Checking Warnings

	warnings, err := patcher.Apply(doc, mappings)
	if err != nil {
	    return err
	}
	if warnings.Has(diag.WarnPatchPathMissing) {
	    log.Printf("some declared routes are not in the document:\n%s",
	        warnings.FilterCategory(diag.CategoryPatch))
	}
*/
package diag
