// Package exprgen implements ExpressionGenerator (spec.md §4.6): walks the
// expression tree and emits C/C++ text for each node, consulting naming,
// scope, and typeresolve for the decisions that depend on symbol-table
// facts rather than local syntax. Grounded on the teacher's
// component/type_resolver.go and engine/canon_lower.go: a type-switch
// dispatcher over a small closed expression tree, generation state threaded
// through explicitly rather than carried on the nodes themselves.
package exprgen

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/argshape"
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/naming"
	"github.com/jlaustill/c-next/scope"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// Generator walks ast.Expr trees and emits C/C++ expression text.
type Generator struct {
	Ctx     *gencontext.Context
	Symbols typeinfo.SymbolTable
	Globals *typeinfo.Registry
	Naming  *naming.Resolver
	Scope   *scope.Accessor
	Res     *typeresolve.Resolver
	CppMode bool
}

// New returns a Generator. globals holds file-scope variable types; it is
// kept separate from ctx.Locals() because EnterFunction replaces the
// function-local registry on every call.
func New(ctx *gencontext.Context, symbols typeinfo.SymbolTable, globals *typeinfo.Registry, lang naming.Lang) *Generator {
	g := &Generator{
		Ctx:     ctx,
		Symbols: symbols,
		Globals: globals,
		Naming:  naming.New(symbols, ctx.CurrentScope, lang),
		Scope:   scope.New(symbols, ctx.CurrentScope),
		CppMode: lang == naming.LangCpp,
	}
	g.Res = typeresolve.New(typeresolve.Env{
		Registry:   ctx.Locals(),
		Parameters: parametersOf(ctx),
		Symbols:    symbols,
	})
	return g
}

func parametersOf(ctx *gencontext.Context) map[string]typeinfo.ParameterInfo {
	// ctx has no bulk accessor for its parameter map (only single-name
	// lookup via Parameter), so the resolver's Env.Parameters stays empty
	// here; identifier-level parameter resolution goes through
	// ctx.Parameter directly in generateIdent instead of through Env.
	return map[string]typeinfo.ParameterInfo{}
}

// Generate emits C/C++ text for expr.
func (g *Generator) Generate(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.generateLiteral(e)
	case *ast.Ident:
		return g.generateIdent(e)
	case *ast.Member:
		return g.generateChainExpr(e)
	case *ast.Scoped:
		return g.generateChainExpr(e)
	case *ast.Unary:
		return g.generateUnary(e)
	case *ast.Binary:
		return g.generateBinary(e)
	case *ast.Call:
		return g.generateCall(e)
	case *ast.ArrayLiteral:
		return g.generateArrayLiteral(e)
	case *ast.Conditional:
		return g.generateConditional(e)
	case *ast.SizeofExpr:
		return g.generateSizeof(e)
	case *ast.Index:
		return g.generateIndex(e)
	default:
		return "", errors.New(errors.PhaseExpr, errors.KindUnsupported).
			Detail("unsupported expression node %T", expr).
			Build()
	}
}

// generateIdent implements the §4.6 resolution order: currentParameters (with
// §4.9 dereference), then localVariables, then scope members, then globals.
func (g *Generator) generateIdent(e *ast.Ident) (string, error) {
	name := e.Name

	if p, ok := g.Ctx.Parameter(name); ok {
		return argshape.Dereference(name, p.Lifecycle, p.IsCallbackPointerPrimitive, g.CppMode), nil
	}

	if _, ok := g.Ctx.Locals().Lookup(name); ok {
		if err := g.Scope.ValidateBareIdentifier(name, true); err != nil {
			return "", err
		}
		return name, nil
	}

	if g.Ctx.CurrentScope != "" {
		if members, ok := g.Symbols.ScopeMembers(g.Ctx.CurrentScope); ok && members[name] {
			return naming.MangleScopeMember(g.Ctx.CurrentScope, name), nil
		}
	}

	if g.Globals != nil {
		if _, ok := g.Globals.Lookup(name); ok {
			return name, nil
		}
	}

	return "", errors.New(errors.PhaseExpr, errors.KindUnsupported).
		Path(name).
		Detail("unresolved identifier %q", name).
		Build()
}

// generateUnary emits a prefix operator.
func (g *Generator) generateUnary(e *ast.Unary) (string, error) {
	x, err := g.Generate(e.X)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", e.Op, x), nil
}

// generateBinary emits an infix expression, casting the right operand to the
// left's type when the two are integers of equal width and differing
// signedness, and validating shift amounts (spec.md §4.6).
func (g *Generator) generateBinary(e *ast.Binary) (string, error) {
	lhs, err := g.Generate(e.X)
	if err != nil {
		return "", err
	}
	rhs, err := g.Generate(e.Y)
	if err != nil {
		return "", err
	}

	if e.Op == "<<" || e.Op == ">>" {
		if lt, ok := g.Res.Resolve(e.X); ok {
			if err := g.validateShiftAmount(lt, e.Y); err != nil {
				return "", err
			}
		}
	}

	// Widening a narrower operand needs no explicit cast (C's usual
	// arithmetic conversions already promote it); a sign mismatch at
	// matching width does, since MISRA 10.1/10.4 treats signed/unsigned
	// as distinct essential types even when the bit pattern is compatible.
	if lt, lok := g.Res.Resolve(e.X); lok {
		if rt, rok := g.Res.Resolve(e.Y); rok {
			if isCastableBinaryOp(e.Op) && typeresolve.IsIntegerType(lt) && typeresolve.IsIntegerType(rt) &&
				typeresolve.Width(lt) == typeresolve.Width(rt) && typeresolve.IsSignConversion(lt, rt) {
				rhs = typeresolve.Wrap(rhs, lt, g.CppMode)
			}
		}
	}

	return fmt.Sprintf("(%s %s %s)", lhs, e.Op, rhs), nil
}

func isCastableBinaryOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return false
	}
	return true
}

// validateShiftAmount implements TypeValidator.validateShiftAmount when the
// shift amount folds to a compile-time constant (spec.md §4.6/§4.11).
func (g *Generator) validateShiftAmount(leftType typeinfo.BaseType, shiftExpr ast.Expr) error {
	v, ok := literal.AsInt(shiftExpr)
	if !ok {
		return nil
	}
	if v < 0 {
		return errors.New(errors.PhaseExpr, errors.KindNegativeShift).
			Detail("shift amount %d is negative", v).
			Build()
	}
	if v >= typeresolve.Width(leftType) {
		return errors.New(errors.PhaseExpr, errors.KindShiftExceedsWidth).
			Detail("shift amount %d exceeds the %d-bit width of the shifted operand", v, typeresolve.Width(leftType)).
			Build()
	}
	return nil
}

// generateCall emits `callee(args...)`. Pointer/reference shaping of
// individual arguments against a known callee signature is layered on top
// by argshape at the orchestration level; this generic path renders the
// plain expression text for each argument.
func (g *Generator) generateCall(e *ast.Call) (string, error) {
	calleeText, err := g.calleeText(e.Callee)
	if err != nil {
		return "", err
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		s, err := g.Generate(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return fmt.Sprintf("%s(%s)", calleeText, strings.Join(args, ", ")), nil
}

func (g *Generator) calleeText(callee ast.Expr) (string, error) {
	switch c := callee.(type) {
	case *ast.Ident:
		return c.Name, nil
	case *ast.Member, *ast.Scoped:
		return g.Generate(c)
	default:
		return "", errors.New(errors.PhaseExpr, errors.KindUnsupported).
			Detail("unsupported call callee expression %T", callee).
			Build()
	}
}

// generateArrayLiteral implements `[e1, e2, ...]` and the fill-all `[v*]`
// form, recording lastArrayInitCount/lastArrayFillValue for the declaration
// emitter (spec.md §4.6, §4.10).
func (g *Generator) generateArrayLiteral(e *ast.ArrayLiteral) (string, error) {
	if e.FillAll {
		v, err := g.Generate(e.FillElem)
		if err != nil {
			return "", err
		}
		g.Ctx.SetLastArrayFillValue(v)
		return fmt.Sprintf("{%s}", v), nil
	}

	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		s, err := g.Generate(el)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	g.Ctx.SetLastArrayInitCount(len(parts))
	return "{" + strings.Join(parts, ", ") + "}", nil
}

// generateConditional implements the ternary, validating its constraints
// inline (spec.md §4.11): non-boolean condition, nested ternary in a
// branch, and a function call in the condition are all rejected.
func (g *Generator) generateConditional(e *ast.Conditional) (string, error) {
	if _, isCall := e.Cond.(*ast.Call); isCall {
		return "", errors.New(errors.PhaseValidate, errors.KindFunctionCallInCondition).
			Detail("ternary condition may not contain a function call").
			Build()
	}
	if !g.isBooleanExpr(e.Cond) {
		return "", errors.New(errors.PhaseValidate, errors.KindNonBooleanCondition).
			Detail("ternary condition must be boolean-producing").
			Build()
	}
	if _, nested := e.Then.(*ast.Conditional); nested {
		return "", errors.New(errors.PhaseValidate, errors.KindNestedTernary).
			Detail("nested ternary in the then-branch is not allowed").
			Build()
	}
	if _, nested := e.Else.(*ast.Conditional); nested {
		return "", errors.New(errors.PhaseValidate, errors.KindNestedTernary).
			Detail("nested ternary in the else-branch is not allowed").
			Build()
	}

	cond, err := g.Generate(e.Cond)
	if err != nil {
		return "", err
	}
	then, err := g.Generate(e.Then)
	if err != nil {
		return "", err
	}
	els, err := g.Generate(e.Else)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s ? %s : %s)", cond, then, els), nil
}

func (g *Generator) isBooleanExpr(e ast.Expr) bool {
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
		t, ok := g.Res.Resolve(e)
		return ok && t == typeinfo.Bool
	}
}

// generateSizeof implements `sizeof(expr)`, rejecting sizeof of an array
// parameter (it has decayed to a pointer, so sizeof would be wrong) and of
// an expression shape with no well-defined object representation.
func (g *Generator) generateSizeof(e *ast.SizeofExpr) (string, error) {
	switch x := e.X.(type) {
	case *ast.Ident:
		if p, ok := g.Ctx.Parameter(x.Name); ok && p.IsArray {
			return "", errors.New(errors.PhaseExpr, errors.KindSizeofArrayParameter).
				Path(x.Name).
				Detail("sizeof(%s) measures a pointer, not the original array", x.Name).
				Build()
		}
	case *ast.Call:
		return "", errors.New(errors.PhaseExpr, errors.KindUnsupportedSizeofExpression).
			Detail("sizeof of a function call result is not supported").
			Build()
	}
	inner, err := g.Generate(e.X)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sizeof(%s)", inner), nil
}

// generateIndex emits a single-subscript read `x[a]` or, for the two-
// argument bit-range read form, the equivalent shift/mask expression (the
// inverse of the INTEGER_BIT_RANGE write lowering in the `lower` package).
func (g *Generator) generateIndex(e *ast.Index) (string, error) {
	x, err := g.Generate(e.X)
	if err != nil {
		return "", err
	}
	switch len(e.Args) {
	case 1:
		idx, err := g.Generate(e.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", x, idx), nil
	case 2:
		start, err := g.Generate(e.Args[0])
		if err != nil {
			return "", err
		}
		width, err := g.Generate(e.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("((%s >> (%s)) & ((1U << (%s)) - 1U))", x, start, width), nil
	default:
		return "", errors.New(errors.PhaseExpr, errors.KindUnsupported).
			Detail("subscript group with %d expressions is not supported in an rvalue position", len(e.Args)).
			Build()
	}
}
