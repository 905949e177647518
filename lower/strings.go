package lower

import (
	"fmt"

	"github.com/jlaustill/c-next/errors"
)

// lowerStringSimple implements STRING_SIMPLE / STRING_STRUCT_FIELD
// (spec.md §4.5): `strncpy(dst, src, N); dst[N] = '\0';`.
func lowerStringSimple(in Input) (Result, error) {
	in.Ctx.RequireInclude("string")
	n := in.TargetType.StringCapacity
	extra := []string{
		fmt.Sprintf("strncpy(%s, %s, %d);", in.LHSText, in.RHS, n),
	}
	stmt := fmt.Sprintf("%s[%d] = '\\0';", in.LHSText, n)
	return Result{Stmt: stmt, Extra: extra}, nil
}

// lowerStringConcat implements STRING_CONCAT: `strncpy(dst, L, N);
// strncat(dst, R, N - strlen(dst)); dst[N] = '\0';`. Requires a function
// body (*StringConcatAtGlobalScope*); BitExprs[0]/[1] carry the already-
// generated left/right operand text.
func lowerStringConcat(in Input) (Result, error) {
	if !in.Ctx.InFunctionBody() {
		return Result{}, errors.New(errors.PhaseLower, errors.KindStringConcatAtGlobalScope).
			Detail("string concatenation into %q outside a function body", in.LHSText).
			Build()
	}
	if len(in.BitExprs) != 2 {
		return Result{}, errors.New(errors.PhaseLower, errors.KindUnsupported).
			Detail("STRING_CONCAT requires exactly two operands").
			Build()
	}
	in.Ctx.RequireInclude("string")
	n := in.TargetType.StringCapacity
	left, right := in.BitExprs[0], in.BitExprs[1]
	extra := []string{
		fmt.Sprintf("strncpy(%s, %s, %d);", in.LHSText, left, n),
		fmt.Sprintf("strncat(%s, %s, (size_t)(%d) - strlen(%s));", in.LHSText, right, n, in.LHSText),
	}
	stmt := fmt.Sprintf("%s[%d] = '\\0';", in.LHSText, n)
	return Result{Stmt: stmt, Extra: extra}, nil
}

// lowerStringSubstring implements STRING_SUBSTRING (`dst <- src[start,
// length]`): `strncpy(dst, src + start, length); dst[length] = '\0';`.
// BitExprs holds [src, start, length].
func lowerStringSubstring(in Input) (Result, error) {
	if len(in.BitExprs) != 3 {
		return Result{}, errors.New(errors.PhaseLower, errors.KindUnsupported).
			Detail("STRING_SUBSTRING requires src, start, and length operands").
			Build()
	}
	in.Ctx.RequireInclude("string")
	src, start, length := in.BitExprs[0], in.BitExprs[1], in.BitExprs[2]
	extra := []string{
		fmt.Sprintf("strncpy(%s, %s + (%s), (size_t)(%s));", in.LHSText, src, start, length),
	}
	stmt := fmt.Sprintf("%s[%s] = '\\0';", in.LHSText, length)
	return Result{Stmt: stmt, Extra: extra}, nil
}
