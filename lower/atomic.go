package lower

import (
	"fmt"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/typeresolve"
)

// lowerAtomicRMW implements ATOMIC_RMW (spec.md §4.5, SPEC_FULL.md §4
// decision 1): `+=`, `-=`, `&=`, `|=`, `^=` map to the matching C11
// atomic_fetch_*_explicit call; `*=` and `/=` have no atomic RMW primitive
// and lower to an explicit compare-exchange retry loop.
func lowerAtomicRMW(in Input) (Result, error) {
	in.Ctx.RequireInclude("stdatomic")

	switch in.Op {
	case ast.OpAddAssign:
		return atomicFetchOp(in, "atomic_fetch_add_explicit")
	case ast.OpSubAssign:
		return atomicFetchOp(in, "atomic_fetch_sub_explicit")
	case ast.OpAndAssign:
		return atomicFetchOp(in, "atomic_fetch_and_explicit")
	case ast.OpOrAssign:
		return atomicFetchOp(in, "atomic_fetch_or_explicit")
	case ast.OpXorAssign:
		return atomicFetchOp(in, "atomic_fetch_xor_explicit")
	case ast.OpMulAssign:
		return atomicCompareExchangeLoop(in, "*")
	case ast.OpDivAssign:
		return atomicCompareExchangeLoop(in, "/")
	default:
		return Result{}, nil
	}
}

func atomicFetchOp(in Input, fn string) (Result, error) {
	stmt := fmt.Sprintf("(void)%s(&%s, %s, memory_order_seq_cst);", fn, in.LHSText, in.RHS)
	return Result{Stmt: stmt}, nil
}

// atomicCompareExchangeLoop emits the C11 load/compute/CAS retry sequence
// for the two compound operators with no dedicated atomic RMW primitive.
func atomicCompareExchangeLoop(in Input, op string) (Result, error) {
	expected := in.Ctx.NextTempName()
	desired := in.Ctx.NextTempName()
	cType := typeresolve.CTypeName(in.TargetType.BaseType)

	extra := []string{
		fmt.Sprintf("%s %s = atomic_load_explicit(&%s, memory_order_seq_cst);", cType, expected, in.LHSText),
		fmt.Sprintf("%s %s;", cType, desired),
		"do {",
		fmt.Sprintf("    %s = %s %s (%s);", desired, expected, op, in.RHS),
		fmt.Sprintf("} while (!atomic_compare_exchange_weak_explicit(&%s, &%s, %s, memory_order_seq_cst, memory_order_seq_cst));",
			in.LHSText, expected, desired),
	}
	return Result{Stmt: extra[len(extra)-1], Extra: extra[:len(extra)-1]}, nil
}
