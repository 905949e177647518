package validate

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// ValidateBooleanCondition implements the do-while/while half of spec.md
// §4.11's condition rule (MISRA 14.4): a comparison, logical operator,
// negation, `bool` literal, or a statically `bool`-typed expression.
// Anything else is *NonBooleanCondition*.
func ValidateBooleanCondition(cond ast.Expr, res *typeresolve.Resolver) error {
	if isBooleanShaped(cond, res) {
		return nil
	}
	return errors.New(errors.PhaseValidate, errors.KindNonBooleanCondition).
		Detail("condition must be boolean-producing").
		Build()
}

func isBooleanShaped(e ast.Expr, res *typeresolve.Resolver) bool {
	switch v := e.(type) {
	case *ast.Binary:
		switch v.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return true
		}
		return false
	case *ast.Unary:
		return v.Op == "!"
	case *ast.Literal:
		return v.Kind == ast.LiteralBool
	default:
		t, ok := res.Resolve(e)
		return ok && t == typeinfo.Bool
	}
}
