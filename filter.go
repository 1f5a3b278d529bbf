package inlay

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter excludes hints matching any of a set of boolean expressions.
//
// Expressions see three variables:
//
//	name      the declared name
//	kind      "variable", "constant", "function" or "range"
//	typeName  the rendered type
//
// e.g. `kind == "constant"` or `len(typeName) > 40 || name startsWith "err"`.
type Filter struct {
	sources  []string
	programs []*vm.Program
}

// filterEnv returns the environment used for both compiling and running.
func filterEnv(name string, kind DeclarationKind, typ string) map[string]any {
	return map[string]any{
		"name":     name,
		"kind":     kind.String(),
		"typeName": typ,
	}
}

// CompileFilter compiles exclusion expressions. Blank expressions are ignored;
// no expressions yield a nil Filter, which excludes nothing.
func CompileFilter(exprs []string) (*Filter, error) {
	f := &Filter{}
	env := filterEnv("", DeclNone, "")

	for _, src := range exprs {
		if strings.TrimSpace(src) == "" {
			continue
		}

		program, err := expr.Compile(src, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile exclude expression %q: %w", src, err)
		}

		f.sources = append(f.sources, src)
		f.programs = append(f.programs, program)
	}

	if len(f.programs) == 0 {
		return nil, nil //nolint:nilnil // nil filter excludes nothing
	}

	return f, nil
}

// Sources returns the expressions the filter was compiled from.
func (f *Filter) Sources() []string {
	if f == nil {
		return nil
	}

	return f.sources
}

// Excludes reports whether a hint for the given declaration should be dropped.
// Evaluation errors do not exclude.
func (f *Filter) Excludes(name string, kind DeclarationKind, typ string) bool {
	if f == nil {
		return false
	}

	env := filterEnv(name, kind, typ)

	for _, program := range f.programs {
		out, err := expr.Run(program, env)
		if err != nil {
			continue
		}

		if excluded, ok := out.(bool); ok && excluded {
			return true
		}
	}

	return false
}
