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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	t.Run("no conditions returns the patterns unchanged", func(t *testing.T) {
		t.Parallel()

		patterns := []string{"/containers/{id}", "/admin/containers/{id}"}
		assert.Equal(t, patterns, Derive(patterns, nil))
	})

	t.Run("unchanged means verbatim: order and duplicates survive", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/b", "/a", "/b"}, nil)
		assert.Equal(t, []string{"/b", "/a", "/b"}, got)
	})

	t.Run("the returned copy is independent of the input", func(t *testing.T) {
		t.Parallel()

		patterns := []string{"/a", "/b"}
		got := Derive(patterns, nil)
		got[0] = "/mutated"
		assert.Equal(t, []string{"/a", "/b"}, patterns)
	})

	t.Run("negated conditions leave the patterns unchanged", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/{id}"}, MustConditions("!enabled", "!debug"))
		assert.Equal(t, []string{"/{id}"}, got)
	})

	t.Run("presence condition appends the bare name", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/{id}"}, MustConditions("enabled"))
		assert.Equal(t, []string{"/{id}?enabled"}, got)
	})

	t.Run("valued condition appends name equals value", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/{id}"}, MustConditions("enabled=false"))
		assert.Equal(t, []string{"/{id}?enabled=false"}, got)
	})

	t.Run("fragments join in declaration order", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/items/{id}"}, MustConditions("zeta", "alpha=1"))
		assert.Equal(t, []string{"/items/{id}?zeta&alpha=1"}, got)
	})

	t.Run("negated conditions drop out in place", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/items/{id}"}, MustConditions("a", "!b", "c=1"))
		assert.Equal(t, []string{"/items/{id}?a&c=1"}, got)
	})

	t.Run("pattern with a query joins with ampersand", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/items/{id}?enabled"}, MustConditions("mode=fast"))
		assert.Equal(t, []string{"/items/{id}?enabled&mode=fast"}, got)
	})

	t.Run("derived set is sorted and deduplicated", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/b", "/a", "/b"}, MustConditions("enabled"))
		assert.Equal(t, []string{"/a?enabled", "/b?enabled"}, got)
	})

	t.Run("inputs are never mutated", func(t *testing.T) {
		t.Parallel()

		patterns := []string{"/b", "/a"}
		conditions := MustConditions("enabled", "!debug")
		Derive(patterns, conditions)
		assert.Equal(t, []string{"/b", "/a"}, patterns)
		assert.Equal(t, MustConditions("enabled", "!debug"), conditions)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		t.Parallel()

		patterns := []string{"/b", "/a"}
		conditions := MustConditions("enabled", "mode=fast")
		first := Derive(patterns, conditions)
		for range 10 {
			assert.Equal(t, first, Derive(patterns, conditions))
		}
	})

	t.Run("nil patterns derive to empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Derive(nil, MustConditions("enabled")))
		assert.Empty(t, Derive(nil, nil))
	})

	t.Run("values pass through unencoded", func(t *testing.T) {
		t.Parallel()

		got := Derive([]string{"/search"}, MustConditions("q=a b"))
		assert.Equal(t, []string{"/search?q=a b"}, got)
	})
}
