package lower

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// lowerArrayElement implements ARRAY_ELEMENT / MULTI_DIM_ARRAY_ELEMENT:
// a plain C index chain `arr[i][j]... = rhs;`. Compile-time bounds checks
// (when indices fold to literals) happen earlier, in the literal package,
// against the declared dimensions.
func lowerArrayElement(in Input) (Result, error) {
	idx := indexChain(in.LHSText, in.BitExprs)
	rhs := castedRHS(in)
	return Result{Stmt: fmt.Sprintf("%s = %s;", idx, rhs)}, nil
}

// lowerArraySlice implements ARRAY_SLICE (`arr[start, length] <- rhs`) as a
// bounded element-wise copy loop using a run-unique index variable, since C
// has no native array-slice assignment.
func lowerArraySlice(in Input) (Result, error) {
	if len(in.BitExprs) != 2 {
		return Result{}, fmt.Errorf("ARRAY_SLICE requires start and length subscript expressions")
	}
	start, length := in.BitExprs[0], in.BitExprs[1]
	i := in.Ctx.NextTempName()
	extra := []string{
		fmt.Sprintf("for (size_t %s = 0U; %s < (size_t)(%s); %s++) {", i, i, length, i),
		fmt.Sprintf("    %s[(size_t)(%s) + %s] = %s[%s];", in.LHSText, start, i, in.RHS, i),
	}
	stmt := "}"
	return Result{Stmt: stmt, Extra: extra}, nil
}

// lowerArrayElementBit implements ARRAY_ELEMENT_BIT: a bit write into an
// integer array element, combining array indexing with the integer-bit
// formula. BitExprs holds the array index steps followed by the trailing
// bit index.
func lowerArrayElementBit(in Input) (Result, error) {
	if len(in.BitExprs) < 2 {
		return Result{}, fmt.Errorf("ARRAY_ELEMENT_BIT requires at least one array index plus a bit index")
	}
	arrayIdx := in.BitExprs[: len(in.BitExprs)-1]
	bit := in.BitExprs[len(in.BitExprs)-1]
	elem := indexChain(in.LHSText, arrayIdx)
	u := unsignedCType(in.TargetType)
	bitexpr := fmt.Sprintf("((%s & ~(1U << (%s))) | (((%s)(%s) & 1U) << (%s)))",
		elem, bit, u, in.RHS, bit)
	rhs := typeresolve.WrapIfNeeded(bitexpr, typeinfo.I32, in.TargetType.BaseType, in.CppMode)
	return Result{Stmt: fmt.Sprintf("%s = %s;", elem, rhs)}, nil
}

func indexChain(root string, indices []string) string {
	var b strings.Builder
	b.WriteString(root)
	for _, idx := range indices {
		b.WriteByte('[')
		b.WriteString(idx)
		b.WriteByte(']')
	}
	return b.String()
}
