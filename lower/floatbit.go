package lower

import (
	"fmt"

	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// lowerFloatBit implements FLOAT_BIT / FLOAT_BIT_RANGE (spec.md §4.5):
// a shadow unsigned-integer variable is declared once per generation
// context, refreshed from var via memcpy unless already current, bit-
// written using the integer-bit rule, then copied back into var. Requires
// the function body (fails *FloatBitAtGlobalScope* at file scope).
func lowerFloatBit(in Input, isRange bool) (Result, error) {
	if !in.Ctx.InFunctionBody() {
		return Result{}, errors.New(errors.PhaseLower, errors.KindFloatBitAtGlobalScope).
			Detail("float bit write to %q outside a function body", in.LHSText).
			Build()
	}

	in.Ctx.RequireInclude("string")
	in.Ctx.RequireInclude("float_static_assert")

	shadowType := floatShadowType(in.TargetType.BaseType)
	shadow, isNewShadow := in.Ctx.FloatShadowName(in.LHSText)

	var extra []string
	if isNewShadow {
		extra = append(extra, fmt.Sprintf("%s %s;", shadowType, shadow))
	}
	if !in.Ctx.ShadowCurrent(shadow) {
		extra = append(extra, fmt.Sprintf("memcpy(&%s, &%s, sizeof(%s));", shadow, in.LHSText, in.LHSText))
	}

	shadowTypeInfo := in.TargetType
	shadowTypeInfo.BaseType = shadowBaseType(in.TargetType.BaseType)

	var bitStmt string
	if isRange {
		r, err := lowerIntegerBitRange(Input{
			LHSText: shadow, TargetType: shadowTypeInfo,
			RHS: in.RHS, RHSType: in.RHSType, BitExprs: in.BitExprs, BitWidth: in.BitWidth,
		})
		if err != nil {
			return Result{}, err
		}
		bitStmt = r.Stmt
	} else {
		r, err := lowerIntegerBit(Input{
			LHSText: shadow, TargetType: shadowTypeInfo,
			RHS: in.RHS, RHSType: in.RHSType, BitExprs: in.BitExprs,
		})
		if err != nil {
			return Result{}, err
		}
		bitStmt = r.Stmt
	}
	extra = append(extra, bitStmt)
	extra = append(extra, fmt.Sprintf("memcpy(&%s, &%s, sizeof(%s));", in.LHSText, shadow, in.LHSText))
	in.Ctx.SetShadowCurrent(shadow, true)

	// The last line (writing var back) is the statement of record; everything
	// before it is setup the caller must emit first.
	stmt := extra[len(extra)-1]
	return Result{Stmt: stmt, Extra: extra[:len(extra)-1]}, nil
}

func floatShadowType(t typeinfo.BaseType) string {
	return typeresolve.CTypeName(shadowBaseType(t))
}

// shadowBaseType picks the unsigned integer type matching a float's width.
func shadowBaseType(t typeinfo.BaseType) typeinfo.BaseType {
	switch t {
	case typeinfo.F64, typeinfo.F96:
		return typeinfo.U64
	default:
		return typeinfo.U32
	}
}
