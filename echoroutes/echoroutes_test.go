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

package echoroutes_test

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-pep1/parampath"
	"github.com/j-pep1/parampath/diag"
	"github.com/j-pep1/parampath/echoroutes"
)

func testServer() *echo.Echo {
	handler := func(echo.Context) error { return nil }

	e := echo.New()
	e.GET("/items/:id", handler)
	e.PUT("/containers/:containerId", handler)
	e.GET("/health", handler)
	return e
}

func TestMappings(t *testing.T) {
	t.Parallel()

	t.Run("maps every registered route once by default", func(t *testing.T) {
		t.Parallel()

		mappings, warnings := echoroutes.Mappings(testServer())
		assert.Empty(t, warnings)
		require.Len(t, mappings, 3)

		// Sorted by path, then method.
		assert.Equal(t, []string{"/containers/:containerId"}, mappings[0].Paths)
		assert.Equal(t, "PUT", mappings[0].Method)
		assert.Equal(t, []string{"/health"}, mappings[1].Paths)
		assert.Equal(t, []string{"/items/:id"}, mappings[2].Paths)

		for _, m := range mappings {
			assert.Empty(t, m.Params)
		}
	})

	t.Run("expands declared variants to one mapping per set", func(t *testing.T) {
		t.Parallel()

		mappings, warnings := echoroutes.Mappings(testServer(),
			echoroutes.WithVariants("PUT /containers/:containerId",
				parampath.MustConditions("enabled"),
				parampath.MustConditions("enabled=false"),
			),
		)
		assert.Empty(t, warnings)
		require.Len(t, mappings, 4)

		assert.Equal(t, "PUT", mappings[0].Method)
		assert.Equal(t, parampath.MustConditions("enabled"), mappings[0].Params)
		assert.Equal(t, "PUT", mappings[1].Method)
		assert.Equal(t, parampath.MustConditions("enabled=false"), mappings[1].Params)
	})

	t.Run("unmatched declaration warns and maps nothing", func(t *testing.T) {
		t.Parallel()

		mappings, warnings := echoroutes.Mappings(testServer(),
			echoroutes.WithVariants("DELETE /nope", parampath.MustConditions("force")),
		)
		require.Len(t, mappings, 3)
		require.Len(t, warnings, 1)
		assert.Equal(t, diag.WarnDeclareUnmatchedRoute, warnings[0].Code())
		assert.Equal(t, "DELETE /nope", warnings[0].Path())
	})

	t.Run("empty server maps to nothing", func(t *testing.T) {
		t.Parallel()

		mappings, warnings := echoroutes.Mappings(echo.New())
		assert.Empty(t, mappings)
		assert.Empty(t, warnings)
	})
}
