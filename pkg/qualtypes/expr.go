package qualtypes

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// ExprType is a qualifier type whose condition values are CEL boolean
// expressions evaluated against the single variable "context" (the
// qualifier's current string context value). It supplements the literal,
// territory, and language qualifier types the teacher ported, covering
// conditions too irregular for an enumerated or hierarchical match — e.g.
// `context.startsWith("beta-")` or `int(context) >= 18`. Grounded on
// Azure-eno's CEL environment (internal/cel/cel.go), which evaluates
// resource-filter expressions the same way: compile once, evaluate many
// times against a small variable set.
type ExprType struct {
	*Base
	env *cel.Env

	mu      sync.Mutex
	compile map[string]cel.Program // memoized compiled condition expressions
}

// NewExprType builds an ExprType with a CEL environment exposing a single
// string variable, "context".
func NewExprType(name string) (*ExprType, error) {
	if name == "" {
		name = "expr"
	}
	env, err := cel.NewEnv(cel.Variable("context", cel.StringType))
	if err != nil {
		return nil, fmt.Errorf("expr qualifier type %q: building CEL environment: %w", name, err)
	}
	return &ExprType{
		Base:    NewBase(name, false),
		env:     env,
		compile: map[string]cel.Program{},
	}, nil
}

func (et *ExprType) program(expr string) (cel.Program, error) {
	et.mu.Lock()
	defer et.mu.Unlock()
	if prgm, ok := et.compile[expr]; ok {
		return prgm, nil
	}
	ast, iss := et.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	checked, iss := et.env.Check(ast)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	if checked.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("expr qualifier type: expression %q must evaluate to bool, got %s", expr, checked.OutputType())
	}
	prgm, err := et.env.Program(checked)
	if err != nil {
		return nil, err
	}
	et.compile[expr] = prgm
	return prgm, nil
}

// IsValidConditionValue reports whether value compiles as a boolean CEL
// expression over the "context" variable.
func (et *ExprType) IsValidConditionValue(value string) bool {
	_, err := et.program(value)
	return err == nil
}

// IsValidContextValue accepts any string; the expression decides relevance.
func (et *ExprType) IsValidContextValue(value string) bool { return true }

// Matches evaluates the condition expression with "context" bound to
// contextValue, returning PerfectMatch if it evaluates true, NoMatch
// otherwise (including on a compile or evaluation error).
func (et *ExprType) Matches(conditionValue, contextValue string, operator Operator) MatchScore {
	switch operator {
	case OperatorAlways:
		return PerfectMatch
	case OperatorNever:
		return NoMatch
	case OperatorMatches:
		prgm, err := et.program(conditionValue)
		if err != nil {
			return NoMatch
		}
		out, _, err := prgm.Eval(map[string]any{"context": contextValue})
		if err != nil {
			return NoMatch
		}
		if b, ok := out.Value().(bool); ok && b {
			return PerfectMatch
		}
		return NoMatch
	default:
		return NoMatch
	}
}
