// Package literal implements compile-time constant folding for array
// dimensions, shift amounts, and literal-fits-type checks (spec.md §2
// LiteralEvaluator, ArrayDimensionParser). There is no ecosystem library in
// the example pack for C-like integer-literal parsing with width/sign
// validation, so this is built on the standard library (strconv), following
// the teacher's own numeric-parsing idiom (linker/namespace.go's
// hand-rolled ParseVersion avoids strconv too, for the same reason: the
// grammar — here `^-?\d+$` / `^0[xX][0-9a-fA-F]+$` / `^0[bB][01]+$` — is
// narrower than what strconv.ParseInt's full syntax accepts).
package literal

import (
	"strconv"
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/typeinfo"
)

// Form is the lexical literal form (spec.md §6).
type Form int

const (
	FormDecimal Form = iota
	FormHex
	FormBinary
)

// Value is a folded literal: its numeric value, the form it was written in,
// and an explicit type suffix if present (e.g. "u8" in `200u8`).
type Value struct {
	Form     Form
	Signed   int64
	Unsigned uint64
	IsSigned bool
	Suffix   string
}

// Evaluate parses literal text per the lexical grammar in spec.md §6 and
// folds it to a Value. It does not validate range against a target type —
// see Fits for that.
func Evaluate(text string) (Value, error) {
	suffix := ""
	body := text
	if idx := suffixIndex(text); idx >= 0 {
		suffix = text[idx:]
		body = text[:idx]
	}

	switch {
	case strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X"):
		u, err := strconv.ParseUint(body[2:], 16, 64)
		if err != nil {
			return Value{}, parseErr(text, err)
		}
		return Value{Form: FormHex, Unsigned: u, Suffix: suffix}, nil

	case strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B"):
		u, err := strconv.ParseUint(body[2:], 2, 64)
		if err != nil {
			return Value{}, parseErr(text, err)
		}
		return Value{Form: FormBinary, Unsigned: u, Suffix: suffix}, nil

	default:
		s, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			// Decimal literals are never negative-prefixed past the sign
			// char per the grammar, but very large unsigned decimals (no
			// sign) may still overflow int64 while fitting uint64.
			if u, uerr := strconv.ParseUint(body, 10, 64); uerr == nil {
				return Value{Form: FormDecimal, Unsigned: u, Suffix: suffix}, nil
			}
			return Value{}, parseErr(text, err)
		}
		return Value{Form: FormDecimal, Signed: s, IsSigned: true, Suffix: suffix}, nil
	}
}

func suffixIndex(text string) int {
	for _, suf := range []string{"u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64"} {
		if strings.HasSuffix(text, suf) {
			return len(text) - len(suf)
		}
	}
	return -1
}

func parseErr(text string, cause error) *errors.Error {
	return errors.New(errors.PhaseLiteral, errors.KindLiteralOutOfRange).
		Detail("cannot parse literal %q", text).
		Cause(cause).
		Build()
}

// bounds for each base integer type: [min, max] as the widest representable
// range, used by Fits.
func bounds(t typeinfo.BaseType) (min int64, max uint64, signed bool, ok bool) {
	switch t {
	case typeinfo.U8:
		return 0, 1<<8 - 1, false, true
	case typeinfo.U16:
		return 0, 1<<16 - 1, false, true
	case typeinfo.U32:
		return 0, 1<<32 - 1, false, true
	case typeinfo.U64:
		return 0, 1<<64 - 1, false, true
	case typeinfo.I8:
		return -1 << 7, 1<<7 - 1, true, true
	case typeinfo.I16:
		return -1 << 15, 1<<15 - 1, true, true
	case typeinfo.I32:
		return -1 << 31, 1<<31 - 1, true, true
	case typeinfo.I64:
		return -1 << 63, 1<<63 - 1, true, true
	default:
		return 0, 0, false, false
	}
}

// Fits validates that v is representable in target's range (spec.md §4.1
// validateLiteralFitsType, *LiteralOutOfRange*).
func Fits(v Value, target typeinfo.BaseType) error {
	min, max, _, ok := bounds(target)
	if !ok {
		return nil // non-integer targets are out of scope for this check
	}

	if v.IsSigned {
		if v.Signed < min || (v.Signed >= 0 && uint64(v.Signed) > max) {
			return outOfRange(v, target)
		}
		return nil
	}
	if v.Unsigned > max {
		return outOfRange(v, target)
	}
	return nil
}

func outOfRange(v Value, target typeinfo.BaseType) *errors.Error {
	return errors.New(errors.PhaseLiteral, errors.KindLiteralOutOfRange).
		Detail("literal does not fit in %s", target).
		Build()
}

// FitsWidth is the bit-width counterpart of Fits, for bitmap/bit-range
// width checks: does v fit in an unsigned field of the given bit width
// (spec.md §4.5 BitmapFieldOverflow)?
func FitsWidth(v Value, width int) bool {
	if width <= 0 || width >= 64 {
		return true
	}
	maxVal := uint64(1)<<uint(width) - 1
	u := v.Unsigned
	if v.IsSigned {
		if v.Signed < 0 {
			return false
		}
		u = uint64(v.Signed)
	}
	return u <= maxVal
}

// AsConstExpr attempts to fold an expression to a literal integer Value at
// compile time, for use in array dimensions, shift amounts, and bit-range
// widths. Only literal and unary-minus-of-literal nodes fold; anything else
// returns ok=false (meaning: not a compile-time constant, defer the check to
// runtime or skip it, per spec.md's "compile-time check whenever both
// dimension and index fold to literals").
func AsConstExpr(e ast.Expr) (Value, bool) {
	switch n := e.(type) {
	case *ast.Literal:
		v, err := Evaluate(n.Text)
		if err != nil {
			return Value{}, false
		}
		return v, true
	case *ast.Unary:
		if n.Op != "-" {
			return Value{}, false
		}
		v, ok := AsConstExpr(n.X)
		if !ok {
			return Value{}, false
		}
		if v.IsSigned {
			v.Signed = -v.Signed
		} else {
			v.IsSigned = true
			v.Signed = -int64(v.Unsigned)
		}
		return v, true
	default:
		return Value{}, false
	}
}

// AsInt is a convenience that returns a folded constant as a plain int,
// truncated, for dimension/index comparisons.
func AsInt(e ast.Expr) (int, bool) {
	v, ok := AsConstExpr(e)
	if !ok {
		return 0, false
	}
	if v.IsSigned {
		return int(v.Signed), true
	}
	return int(v.Unsigned), true
}
