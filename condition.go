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
	"encoding/json"
	"fmt"
	"strings"
)

// Condition expresses a query-parameter requirement attached to a route
// mapping: the request must (or, when negated, must not) carry the named
// parameter, optionally with a specific value.
//
// Condition is a comparable value type. Construct conditions with
// [ParseCondition] or as struct literals; the deriver performs no validation
// of names or values beyond what the parser enforces.
type Condition struct {
	// Name is the query parameter name.
	Name string

	// Value is the required parameter value. Only meaningful when HasValue
	// is true; a condition without a value requires mere presence.
	Value string

	// HasValue distinguishes "enabled" (presence) from "enabled=" (empty value).
	HasValue bool

	// Negated inverts the condition: the parameter must be absent, or must
	// not equal Value. Negated conditions never appear in derived paths.
	Negated bool
}

// ParseCondition parses a single condition expression.
//
// The grammar follows the host-framework convention for parameter match
// conditions:
//
//	"name"         parameter must be present
//	"!name"        parameter must be absent
//	"name=value"   parameter must equal value
//	"name!=value"  parameter must not equal value
//
// The first '=' wins: "!name=value" parses as a parameter literally named
// "!name" with a value, not as a negation.
func ParseCondition(expr string) (Condition, error) {
	if expr == "" {
		return Condition{}, ErrEmptyExpression
	}

	if i := strings.Index(expr, "="); i >= 0 {
		c := Condition{Value: expr[i+1:], HasValue: true}
		name := expr[:i]
		if before, ok := strings.CutSuffix(name, "!"); ok {
			c.Negated = true
			name = before
		}
		if name == "" {
			return Condition{}, fmt.Errorf("%w: %q", ErrEmptyConditionName, expr)
		}
		c.Name = name
		return c, nil
	}

	var c Condition
	name := expr
	if after, ok := strings.CutPrefix(name, "!"); ok {
		c.Negated = true
		name = after
	}
	if name == "" {
		return Condition{}, fmt.Errorf("%w: %q", ErrEmptyConditionName, expr)
	}
	c.Name = name
	return c, nil
}

// ParseConditions parses each expression in order.
// It fails on the first malformed expression.
func ParseConditions(exprs ...string) ([]Condition, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	conds := make([]Condition, 0, len(exprs))
	for _, expr := range exprs {
		c, err := ParseCondition(expr)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// MustConditions is like [ParseConditions] but panics on a malformed
// expression. Intended for wiring code with literal expressions.
func MustConditions(exprs ...string) []Condition {
	conds, err := ParseConditions(exprs...)
	if err != nil {
		panic(err)
	}
	return conds
}

// Fragment renders the condition as a query-string fragment: the bare name,
// or "name=value" when a value is set. Negation is not rendered; callers
// filter negated conditions before rendering.
func (c Condition) Fragment() string {
	if c.HasValue {
		return c.Name + "=" + c.Value
	}
	return c.Name
}

// String returns the condition in expression form. For conditions built by
// [ParseCondition] it round-trips the original expression.
func (c Condition) String() string {
	switch {
	case c.Negated && c.HasValue:
		return c.Name + "!=" + c.Value
	case c.Negated:
		return "!" + c.Name
	default:
		return c.Fragment()
	}
}

// MarshalJSON encodes the condition as its expression string.
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a condition from its expression string.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var expr string
	if err := json.Unmarshal(data, &expr); err != nil {
		return err
	}

	parsed, err := ParseCondition(expr)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
