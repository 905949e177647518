package typeresolve

import (
	"fmt"

	"github.com/jlaustill/c-next/typeinfo"
)

// CTypeName maps a BaseType to its emitted C type name (stdint.h names, per
// spec.md §6's C89 + stdint/stdbool/stdatomic output mode).
func CTypeName(t typeinfo.BaseType) string {
	switch t {
	case typeinfo.U8:
		return "uint8_t"
	case typeinfo.U16:
		return "uint16_t"
	case typeinfo.U32:
		return "uint32_t"
	case typeinfo.U64:
		return "uint64_t"
	case typeinfo.I8:
		return "int8_t"
	case typeinfo.I16:
		return "int16_t"
	case typeinfo.I32:
		return "int32_t"
	case typeinfo.I64:
		return "int64_t"
	case typeinfo.F32:
		return "float"
	case typeinfo.F64:
		return "double"
	case typeinfo.F96:
		return "long double"
	case typeinfo.Bool:
		return "bool"
	case typeinfo.Char:
		return "char"
	default:
		return "int"
	}
}

// ParseBaseType maps a declaration's source-level type name (spec.md §3's
// "u8..u64, i8..i64, f32/f64/f96, bool, ISR, char") to its BaseType tag. Any
// other name is a user type (struct/enum/bitmap/external), reported as
// typeinfo.UserType with ok=true so callers can still record the name.
func ParseBaseType(name string) (typeinfo.BaseType, bool) {
	switch name {
	case "u8":
		return typeinfo.U8, true
	case "u16":
		return typeinfo.U16, true
	case "u32":
		return typeinfo.U32, true
	case "u64":
		return typeinfo.U64, true
	case "i8":
		return typeinfo.I8, true
	case "i16":
		return typeinfo.I16, true
	case "i32":
		return typeinfo.I32, true
	case "i64":
		return typeinfo.I64, true
	case "f32":
		return typeinfo.F32, true
	case "f64":
		return typeinfo.F64, true
	case "f96":
		return typeinfo.F96, true
	case "bool":
		return typeinfo.Bool, true
	case "char":
		return typeinfo.Char, true
	case "ISR":
		return typeinfo.ISR, true
	case "":
		return typeinfo.Unknown, false
	default:
		return typeinfo.UserType, true
	}
}

// promote implements the C integer-promotion rule spec.md §4.2 requires
// NarrowingCastHelper to apply before emitting a binary-bitwise expression:
// operands narrower than 32-bit signed promote to `int`.
func promote(t typeinfo.BaseType) typeinfo.BaseType {
	switch t {
	case typeinfo.U8, typeinfo.I8, typeinfo.U16, typeinfo.I16, typeinfo.Bool:
		return typeinfo.I32
	default:
		return t
	}
}

// Promote exports the C integer-promotion rule.
func Promote(t typeinfo.BaseType) typeinfo.BaseType { return promote(t) }

// NeedsCast reports whether a value of type src requires a cast to be
// assigned into tgt (spec.md §4.2): true if tgt is bool and src isn't, or if
// width(src) > width(tgt).
func NeedsCast(src, tgt typeinfo.BaseType) bool {
	if tgt == typeinfo.Bool && src != typeinfo.Bool {
		return true
	}
	return Width(src) > Width(tgt)
}

// Wrap produces the MISRA-10.3/10.5-compliant cast text around expr, per
// spec.md §4.2's two cases.
func Wrap(expr string, tgt typeinfo.BaseType, cppMode bool) string {
	if tgt == typeinfo.Bool {
		return fmt.Sprintf("((%s) != 0U)", expr)
	}
	tname := CTypeName(tgt)
	if cppMode {
		return fmt.Sprintf("static_cast<%s>(%s)", tname, expr)
	}
	return fmt.Sprintf("(%s)%s", tname, expr)
}

// WrapIfNeeded wraps expr in a cast to tgt only when NeedsCast(src, tgt) is
// true; this is the helper AssignmentLowerer calls for every integer-lowered
// RHS (spec.md §4.5: "All integer-lowered expressions on the RHS are
// wrapped by NarrowingCastHelper.wrap using the promoted source type and
// target base type").
func WrapIfNeeded(expr string, src, tgt typeinfo.BaseType, cppMode bool) string {
	promoted := promote(src)
	if !NeedsCast(promoted, tgt) {
		return expr
	}
	return Wrap(expr, tgt, cppMode)
}

// UnsignedEquivalent returns the unsigned C type matching var's width, used
// by INTEGER_BIT/INTEGER_BIT_RANGE lowering ("U" in spec.md §4.5).
func UnsignedEquivalent(t typeinfo.BaseType) typeinfo.BaseType {
	switch t {
	case typeinfo.I8:
		return typeinfo.U8
	case typeinfo.I16:
		return typeinfo.U16
	case typeinfo.I32:
		return typeinfo.U32
	case typeinfo.I64:
		return typeinfo.U64
	default:
		return t
	}
}

// LiteralSuffix returns the MISRA-7.2 integer-literal suffix ("U", "ULL",
// or "") for an unsigned literal assigned into tgt.
func LiteralSuffix(tgt typeinfo.BaseType) string {
	switch tgt {
	case typeinfo.U8, typeinfo.U16, typeinfo.U32:
		return "U"
	case typeinfo.U64:
		return "ULL"
	default:
		return ""
	}
}
