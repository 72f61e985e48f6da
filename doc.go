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
Package parampath derives documented path variants for routes that share a
URL path but are distinguished only by query-parameter match conditions.

Documentation generators key operations by path. Two handlers registered at
PUT /containers/{containerId}, one matching the query parameter "enabled"
and one matching its absence, collide into a single documented entry and one
of them silently disappears. parampath renders the distinguishing conditions
into the documented path so every variant survives:

	/containers/{containerId}            condition "!enabled" (negated, not rendered)
	/containers/{containerId}?enabled    condition "enabled"

# Deriving Patterns

The core is [Derive], a pure function over patterns and conditions:

	parampath.Derive([]string{"/items/{id}"}, parampath.MustConditions("enabled"))
	// ["/items/{id}?enabled"]

	parampath.Derive([]string{"/items/{id}"}, parampath.MustConditions("mode=fast", "!debug"))
	// ["/items/{id}?mode=fast"]

Negated conditions never render; when nothing renders the patterns come back
unchanged. Fragments keep declaration order by default; [OrderByName] sorts
them. A pattern that already carries a query string composes with "&".

[Provider] packages the same behavior as a [PatternProvider]: it normalizes
registered patterns to OpenAPI syntax (":id" becomes "{id}") through a base
provider and then appends each mapping's conditions. [DefaultProvider] is
that base on its own, the condition-blind behavior being overridden.

# Patching a Document

[Patcher] applies derived patterns to an OpenAPI 3 document: for each
mapping, the operation documented under the base path moves to the derived
keys, cloned and disambiguated when one base operation fans out to several
variants. A sibling variant that renders no fragment, like the negated one
above, keeps the base entry documented.

	patcher := parampath.MustNewPatcher()
	warnings, err := patcher.Apply(doc, mappings)

Mismatches between declared routes and the document are warnings by default
(see the diag package) and errors with WithStrict(true).

# Declaring Variants

Mappings come from three sources: literals via [NewMapping], a YAML manifest
(the manifest package), or a live router through the ginroutes and
echoroutes adapter packages. All of them produce [Mapping] values; the
deriver itself only ever sees the [RouteMapping] interface.

The command-line front end ties the manifest and patcher together:

	parampath -spec openapi.json -routes routes.yaml -out patched.yaml
*/
package parampath
