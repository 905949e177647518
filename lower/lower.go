// Package lower implements AssignmentLowerer (spec.md §4.5): one emitter
// per assign.Kind, each producing a single C statement (plus, for multi-
// line lowerings, the setup lines that precede it in Result.Extra) from an
// already-classified target and an already-generated RHS expression string. Grounded on the
// teacher's engine/canon_lower.go: a fast-path dispatch over a tagged kind,
// each case a short, self-contained emission function rather than a method
// on a class hierarchy.
package lower

import (
	"fmt"

	"github.com/jlaustill/c-next/assign"
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// Input is everything one Lower call needs: the classified target, its
// emitted lhs text (already separator-resolved via the naming package), its
// type, and the already-generated RHS text with expectedType already
// applied during its own generation.
type Input struct {
	Ctx        *gencontext.Context
	Kind       assign.Kind
	Target     ast.LValue
	LHSText    string
	TargetType typeinfo.TypeInfo
	Op         ast.Operator
	RHS        string
	RHSType    typeinfo.BaseType
	Symbols    typeinfo.SymbolTable
	CppMode    bool

	// BitExprs are the already-generated subscript expression texts for
	// bit/bit-range/array-index lowerings, in source order.
	BitExprs []string
	// BitWidth is the compile-time-known width for a *_RANGE lowering, or
	// bitmap-field width; 0 means not known at compile time (the mask is
	// then built from a generated expression instead of a folded literal).
	BitWidth int
	// FieldOffset is a bitmap field's bit offset, for BITMAP_FIELD_* and
	// REGISTER_MEMBER_BITMAP_FIELD lowerings.
	FieldOffset int
}

// Result is one lowering's output: Stmt is the primary statement; Extra
// holds any statements that must precede it (shadow declarations, memcpy
// sequences, temp declarations).
type Result struct {
	Stmt  string
	Extra []string
}

// Lower dispatches on in.Kind and returns the emitted statement(s).
func Lower(in Input) (Result, error) {
	switch in.Kind {
	case assign.Simple, assign.ThisMember, assign.GlobalMember,
		assign.ThisArray, assign.GlobalArray, assign.MemberChain:
		return lowerSimple(in)

	case assign.IntegerBit:
		return lowerIntegerBit(in)
	case assign.IntegerBitRange:
		return lowerIntegerBitRange(in)
	case assign.RegisterBit, assign.ScopedRegisterBit:
		return lowerIntegerBit(in)
	case assign.RegisterBitRange, assign.ScopedRegisterBitRange:
		return lowerIntegerBitRange(in)

	case assign.FloatBit:
		return lowerFloatBit(in, false)
	case assign.FloatBitRange:
		return lowerFloatBit(in, true)

	case assign.BitmapFieldSingleBit, assign.BitmapFieldMultiBit,
		assign.RegisterMemberBitmapField, assign.ScopedRegisterMemberBitmapField,
		assign.StructMemberBitmapField, assign.BitmapArrayElementField:
		return lowerBitmapField(in)

	case assign.AtomicRMW:
		return lowerAtomicRMW(in)
	case assign.OverflowClamp:
		return lowerOverflowClamp(in)
	case assign.OverflowWrap:
		return lowerOverflowWrap(in)

	case assign.StringSimple, assign.StringStructField:
		return lowerStringSimple(in)
	case assign.StringConcat:
		return lowerStringConcat(in)
	case assign.StringSubstring:
		return lowerStringSubstring(in)

	case assign.ArrayElement, assign.MultiDimArrayElement:
		return lowerArrayElement(in)
	case assign.ArraySlice:
		return lowerArraySlice(in)
	case assign.ArrayElementBit:
		return lowerArrayElementBit(in)

	default:
		return Result{}, errors.New(errors.PhaseLower, errors.KindUnsupported).
			Detail("no lowering registered for kind %v", in.Kind).
			Build()
	}
}

func lowerSimple(in Input) (Result, error) {
	rhs := castedRHS(in)
	return Result{Stmt: fmt.Sprintf("%s = %s;", in.LHSText, rhs)}, nil
}

// castedRHS applies NarrowingCastHelper.wrap when the RHS's resolved type
// needs a cast into the target base type (wider, or non-bool into bool). A
// value of the target's own width is emitted unchanged; the bit lowerings
// wrap their own int-promoted expressions with the promoted source type.
func castedRHS(in Input) string {
	if in.RHSType == typeinfo.Unknown {
		return in.RHS
	}
	if !typeresolve.NeedsCast(in.RHSType, in.TargetType.BaseType) {
		return in.RHS
	}
	return typeresolve.Wrap(in.RHS, in.TargetType.BaseType, in.CppMode)
}

// unsignedCType returns the C type name used for the U(...) cast in bit
// lowerings: the unsigned type matching the target variable's width.
func unsignedCType(t typeinfo.TypeInfo) string {
	u := typeresolve.UnsignedEquivalent(t.BaseType)
	if u == t.BaseType && !typeresolve.IsUnsignedType(t.BaseType) {
		// bool or other non-integer root: default to the widest safe mask type.
		return "uint32_t"
	}
	return typeresolve.CTypeName(u)
}

