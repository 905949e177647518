package lower

import (
	"fmt"

	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// lowerIntegerBit implements spec.md §4.5's INTEGER_BIT / REGISTER_BIT rule:
//   var = (var & ~(1U << bit)) | ((U(rhs) & 1U) << bit);
// The whole read-modify-write expression is itself int-promoted (via ~/<</|)
// and gets wrapped back to the target's own type before assignment.
func lowerIntegerBit(in Input) (Result, error) {
	bit := in.BitExprs[0]
	u := unsignedCType(in.TargetType)
	bitexpr := fmt.Sprintf("((%s & ~(1U << (%s))) | (((%s)(%s) & 1U) << (%s)))",
		in.LHSText, bit, u, in.RHS, bit)
	rhs := typeresolve.WrapIfNeeded(bitexpr, typeinfo.I32, in.TargetType.BaseType, in.CppMode)
	return Result{Stmt: fmt.Sprintf("%s = %s;", in.LHSText, rhs)}, nil
}

// lowerIntegerBitRange implements INTEGER_BIT_RANGE / REGISTER_BIT_RANGE:
//   var = (var & ~(mask << start)) | ((U(rhs) & mask) << start);
// mask folds to a literal when width is compile-time known.
func lowerIntegerBitRange(in Input) (Result, error) {
	start := in.BitExprs[0]
	var mask string
	if in.BitWidth > 0 {
		mask = fmt.Sprintf("0x%XU", (uint64(1)<<uint(in.BitWidth))-1)
	} else {
		width := in.BitExprs[1]
		mask = fmt.Sprintf("((1U << (%s)) - 1U)", width)
	}
	u := unsignedCType(in.TargetType)
	bitexpr := fmt.Sprintf("((%s & ~(%s << (%s))) | (((%s)(%s) & %s) << (%s)))",
		in.LHSText, mask, start, u, in.RHS, mask, start)
	rhs := typeresolve.WrapIfNeeded(bitexpr, typeinfo.I32, in.TargetType.BaseType, in.CppMode)
	return Result{Stmt: fmt.Sprintf("%s = %s;", in.LHSText, rhs)}, nil
}

// lowerBitmapField implements BITMAP_FIELD_SINGLE_BIT / BITMAP_FIELD_MULTI_BIT
// / *_REGISTER_MEMBER_BITMAP_FIELD / STRUCT_MEMBER_BITMAP_FIELD /
// BITMAP_ARRAY_ELEMENT_FIELD: identical shape to the integer-bit-range rule,
// using the field's offset/width from the symbol table instead of a
// user-written subscript.
func lowerBitmapField(in Input) (Result, error) {
	mask := fmt.Sprintf("0x%XU", (uint64(1)<<uint(in.BitWidth))-1)
	u := unsignedCType(in.TargetType)
	bitexpr := fmt.Sprintf("((%s & ~(%s << %d)) | (((%s)(%s) & %s) << %d))",
		in.LHSText, mask, in.FieldOffset, u, in.RHS, mask, in.FieldOffset)
	rhs := typeresolve.WrapIfNeeded(bitexpr, typeinfo.I32, in.TargetType.BaseType, in.CppMode)
	return Result{Stmt: fmt.Sprintf("%s = %s;", in.LHSText, rhs)}, nil
}
