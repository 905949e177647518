// Package declgen implements VariableDeclHelper and the function-signature
// half of DeclarationGenerators (spec.md §4.10): orchestrating modifier
// resolution, string/array specializations, zero-initialization, and the
// array-literal size-inference interaction with ExpressionGenerator.
// Grounded on the teacher's handler.LocalGetHandler family
// (asyncify/internal/handler/variable.go) for the "one small struct per
// declaration concern, a single Handle-shaped entry point" layout, adapted
// from WASM local/global bookkeeping to C-Next source declarations.
package declgen

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
)

// ModifierInput carries the facts VariableModifierBuilder needs to produce
// canonical-order modifier text.
type ModifierInput struct {
	IsConst    bool
	IsVolatile bool
	IsAtomic   bool
	IsExtern   bool
	IsTopLevel bool
	HasInit    bool
	CppMode    bool
}

// BuildModifiers resolves the canonical `extern const volatile` prefix
// (spec.md §4.10): extern is added for a top-level const only in C++ mode,
// or in C mode when there is no initializer (MISRA 8.5's single-definition
// rule otherwise requires the initializer to live in exactly one
// translation unit); atomic and volatile are mutually exclusive.
func BuildModifiers(in ModifierInput) (string, error) {
	if in.IsAtomic && in.IsVolatile {
		return "", errors.New(errors.PhaseDecl, errors.KindModifierConflict).
			Detail("a declaration may not be both atomic and volatile").
			Build()
	}

	extern := in.IsExtern
	if in.IsTopLevel && in.IsConst {
		if in.CppMode || !in.HasInit {
			extern = true
		}
	}

	var out string
	if extern {
		out += "extern "
	}
	if in.IsConst {
		out += "const "
	}
	if in.IsAtomic {
		out += "_Atomic "
	} else if in.IsVolatile {
		out += "volatile "
	}
	return out, nil
}

// modifierInputFromDecl reads a ModifierInput out of a parsed declaration.
func modifierInputFromDecl(d *ast.VarDecl, isTopLevel, cppMode bool) ModifierInput {
	return ModifierInput{
		IsConst:    d.IsConst,
		IsVolatile: d.IsVolatile,
		IsAtomic:   d.IsAtomic,
		IsExtern:   d.IsExtern,
		IsTopLevel: isTopLevel,
		HasInit:    d.Init != nil,
		CppMode:    cppMode,
	}
}
