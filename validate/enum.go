// Package validate implements the standalone MISRA/ADR checks spec.md §4.11
// groups as "Validators": enum assignment, switch/ternary/do-while
// condition shape, critical-section early exit, include-directive
// restrictions, and the array-bounds check literal.ValidateIndexInBounds
// already provides. Grounded on the teacher's (*wasm.Module).Validate in
// wasm/validate.go: one entry point per concern, each a short first-fail
// check rather than an aggregated multi-error report — ternary's own three
// checks live inline in exprgen.generateConditional instead, since that's
// the natural call site for a node ExpressionGenerator already walks.
package validate

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/typeinfo"
)

// ValidateEnumAssignment implements EnumAssignmentValidator (spec.md §4.11):
// accepts `TargetEnum.MEMBER`, `this.Enum.MEMBER`, `global.Enum.MEMBER`, and
// `Scope.Enum.MEMBER` qualified forms, where the second-to-last identifier
// in the chain must name targetEnumType and the last must be one of its
// members; rejects integer literals (*IntegerToEnum*) and any other enum's
// member (*NonEnumToEnum*).
func ValidateEnumAssignment(targetEnumType string, rhs ast.Expr, symbols typeinfo.SymbolTable) error {
	if lit, ok := rhs.(*ast.Literal); ok {
		switch lit.Kind {
		case ast.LiteralDecimal, ast.LiteralHex, ast.LiteralBinary:
			return errors.New(errors.PhaseValidate, errors.KindIntegerToEnum).
				Detail("cannot assign an integer literal to enum %q", targetEnumType).
				Build()
		}
	}

	idents, ok := flattenIdentChain(rhs)
	if !ok || len(idents) < 2 {
		return errors.New(errors.PhaseValidate, errors.KindNonEnumToEnum).
			Detail("expected a %s.MEMBER reference, got an unsupported expression", targetEnumType).
			Build()
	}

	enumName := idents[len(idents)-2]
	member := idents[len(idents)-1]
	if enumName != targetEnumType {
		return errors.New(errors.PhaseValidate, errors.KindNonEnumToEnum).
			Detail("cannot assign %s.%s to a %s-typed target", enumName, member, targetEnumType).
			Build()
	}

	if members, ok := symbols.EnumMembers(targetEnumType); ok {
		found := false
		for _, m := range members {
			if m == member {
				found = true
				break
			}
		}
		if !found {
			return errors.New(errors.PhaseValidate, errors.KindNonEnumToEnum).
				Detail("%q is not a member of enum %q", member, targetEnumType).
				Build()
		}
	}

	return nil
}

// flattenIdentChain walks an Ident/Member/Scoped tree into its dotted
// identifier list, leftmost root first. Returns ok=false for any other
// expression shape.
func flattenIdentChain(e ast.Expr) ([]string, bool) {
	switch v := e.(type) {
	case *ast.Ident:
		return []string{v.Name}, true
	case *ast.Scoped:
		return flattenIdentChain(v.X)
	case *ast.Member:
		base, ok := flattenIdentChain(v.X)
		if !ok {
			return nil, false
		}
		return append(base, v.Name), true
	default:
		return nil, false
	}
}
