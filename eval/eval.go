// Package eval executes the declaration programs produced by the compiler.
//
// A program is one declaration per line, `declare <CellId> = <expression>;`,
// in dependency order. Expressions are evaluated with expr-lang; min and max
// are its built-ins, and / is float division, so 10/100 is 0.1.
//
// Each Context is an isolated environment: construct one per program run
// and discard it afterwards, so repeated conversions stay independent and
// side-effect free.
package eval

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
)

// declPattern matches one program line: declare <CellId> = <expression>;
var declPattern = regexp.MustCompile(`^declare\s+([A-Z]+\d+)\s*=\s*(.*);$`)

// Context holds the values bound by executed declarations.
type Context struct {
	vars map[string]any
}

// NewContext returns an empty evaluation context.
func NewContext() *Context {
	return &Context{vars: make(map[string]any)}
}

// Execute runs every declaration in program, in order. Each bound value is
// visible to later declarations. A failing line leaves its identifier
// unbound and execution continues, so one broken cell never hides the rest;
// all failures are reported in the returned error.
func (c *Context) Execute(program string) error {
	var errs []error
	for i, line := range strings.Split(program, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := declPattern.FindStringSubmatch(line)
		if m == nil {
			errs = append(errs, fmt.Errorf("line %d: not a declaration: %q", i+1, line))
			continue
		}
		v, err := expr.Eval(m[2], c.vars)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: computing %s: %w", i+1, m[1], err))
			continue
		}
		c.vars[m[1]] = v
	}
	return errors.Join(errs...)
}

// Value returns the bound value of a declared identifier. Identifiers whose
// declaration failed, or that were never declared, report an error.
func (c *Context) Value(name string) (any, error) {
	v, ok := c.vars[name]
	if !ok {
		return nil, fmt.Errorf("no value for %s", name)
	}
	return v, nil
}
