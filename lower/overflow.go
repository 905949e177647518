package lower

import (
	"fmt"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// lowerOverflowClamp implements OVERFLOW_CLAMP (SPEC_FULL.md §4 decision 2):
// widen into the next larger signed intermediate, compute, then clamp into
// the target's [TYPE_MIN, TYPE_MAX] range before narrowing back. Float
// targets fall through to SIMPLE, per spec.md §4.5.
func lowerOverflowClamp(in Input) (Result, error) {
	if typeresolve.IsFloatType(in.TargetType.BaseType) {
		return lowerSimple(in)
	}

	op, err := arithOp(in.Op)
	if err != nil {
		return Result{}, err
	}

	wide := widenedType(in.TargetType.BaseType)
	wideC := typeresolve.CTypeName(wide)
	targetC := typeresolve.CTypeName(in.TargetType.BaseType)
	minMacro, maxMacro := limitMacros(in.TargetType.BaseType)

	tmp := in.Ctx.NextTempName()
	extra := []string{
		fmt.Sprintf("%s %s = (%s)%s %s (%s)(%s);", wideC, tmp, wideC, in.LHSText, op, wideC, in.RHS),
		fmt.Sprintf("%s = (%s < %s) ? %s : ((%s > %s) ? %s : (%s)%s);",
			tmp, tmp, minMacro, minMacro, tmp, maxMacro, maxMacro, wideC, tmp),
	}
	stmt := fmt.Sprintf("%s = (%s)%s;", in.LHSText, targetC, tmp)
	return Result{Stmt: stmt, Extra: extra}, nil
}

// lowerOverflowWrap implements OVERFLOW_WRAP: native modular arithmetic on
// the (necessarily unsigned, for defined wraparound) target type, wrapped
// by the same promoted-source/target cast every lowering applies.
func lowerOverflowWrap(in Input) (Result, error) {
	op, err := arithOp(in.Op)
	if err != nil {
		return Result{}, err
	}
	targetC := typeresolve.CTypeName(in.TargetType.BaseType)
	stmt := fmt.Sprintf("%s = (%s)((%s)%s %s (%s)(%s));",
		in.LHSText, targetC, targetC, in.LHSText, op, targetC, in.RHS)
	return Result{Stmt: stmt}, nil
}

func arithOp(op ast.Operator) (string, error) {
	switch op {
	case ast.OpAddAssign:
		return "+", nil
	case ast.OpSubAssign:
		return "-", nil
	case ast.OpMulAssign:
		return "*", nil
	case ast.OpDivAssign:
		return "/", nil
	default:
		return "", fmt.Errorf("overflow lowering: unsupported operator %v", op)
	}
}

// widenedType returns the next larger signed intermediate type used to
// compute an overflow-clamped result without itself overflowing.
func widenedType(t typeinfo.BaseType) typeinfo.BaseType {
	switch t {
	case typeinfo.U8, typeinfo.I8, typeinfo.U16, typeinfo.I16:
		return typeinfo.I32
	default:
		return typeinfo.I64
	}
}

// limitMacros returns the stdint.h limit macro pair for t's own range (the
// clamp bounds, not the widened intermediate's).
func limitMacros(t typeinfo.BaseType) (min, max string) {
	switch t {
	case typeinfo.U8:
		return "0", "UINT8_MAX"
	case typeinfo.U16:
		return "0", "UINT16_MAX"
	case typeinfo.U32:
		return "0", "UINT32_MAX"
	case typeinfo.U64:
		return "0", "UINT64_MAX"
	case typeinfo.I8:
		return "INT8_MIN", "INT8_MAX"
	case typeinfo.I16:
		return "INT16_MIN", "INT16_MAX"
	case typeinfo.I32:
		return "INT32_MIN", "INT32_MAX"
	case typeinfo.I64:
		return "INT64_MIN", "INT64_MAX"
	default:
		return "0", "0"
	}
}
