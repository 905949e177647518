package literal

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
)

// ParseArrayDimensions folds a declaration's dimension expressions into the
// TypeInfo.ArrayDimensions representation: 0 means unknown/unsized at that
// rank (spec.md §3). Only the first dimension may be empty (grammar-imposed
// size-inference exception, spec.md §4.10); an empty dimension elsewhere is
// a *CStyleArrayDeclaration* error.
func ParseArrayDimensions(dims []ast.Expr) ([]int, error) {
	out := make([]int, len(dims))
	for i, d := range dims {
		if d == nil {
			if i != 0 {
				return nil, errors.New(errors.PhaseLiteral, errors.KindCStyleArrayDeclaration).
					Detail("dimension %d empty; only the first dimension may be size-inferred", i).
					Build()
			}
			out[i] = 0
			continue
		}
		n, ok := AsInt(d)
		if !ok || n < 0 {
			return nil, errors.New(errors.PhaseLiteral, errors.KindCStyleArrayDeclaration).
				Detail("dimension %d is not a compile-time non-negative constant", i).
				Build()
		}
		out[i] = n
	}
	return out, nil
}

// ResolveInferredSize fills in dimension 0 from an element count discovered
// while generating the initializer expression (spec.md §4.10: "the
// declaration emitter infers [N] when the dimension was empty and element
// count > 0").
func ResolveInferredSize(dims []int, elementCount int) ([]int, error) {
	if len(dims) == 0 {
		return dims, nil
	}
	if dims[0] != 0 {
		return dims, nil
	}
	if elementCount <= 0 {
		return nil, errors.New(errors.PhaseLiteral, errors.KindArraySizeMismatch).
			Detail("cannot infer array size: no initializer element count available").
			Build()
	}
	out := append([]int(nil), dims...)
	out[0] = elementCount
	return out, nil
}

// ValidateElementCount checks a literal initializer's element count against
// a (non-inferred) declared dimension (spec.md §4.10 *ArraySizeMismatch*).
func ValidateElementCount(declared, actual int) error {
	if declared != 0 && actual != declared {
		return errors.New(errors.PhaseLiteral, errors.KindArraySizeMismatch).
			Detail("array literal has %d elements, declared size is %d", actual, declared).
			Build()
	}
	return nil
}

// ValidateIndexInBounds performs the compile-time bounds check spec.md §4.5
// and §4.11 require whenever both dimension and index fold to literals.
// When the dimension is 0 (unsized/unknown) or the index doesn't fold, no
// check is performed (runtime or external validation territory).
func ValidateIndexInBounds(dimSize int, index ast.Expr) error {
	if dimSize <= 0 {
		return nil
	}
	idx, ok := AsInt(index)
	if !ok {
		return nil
	}
	if idx < 0 || idx >= dimSize {
		return errors.New(errors.PhaseLiteral, errors.KindArrayIndexOutOfBounds).
			Detail("index %d out of bounds for array of size %d", idx, dimSize).
			Build()
	}
	return nil
}
