// Package errors provides the closed, structured error taxonomy used by the
// C-Next code-generation core.
//
// Errors are categorized by Phase (which pipeline stage raised them) and Kind
// (the specific rule violated — MISRA casting rule, bitmap overflow, scope
// visibility, …). Every Kind constant except KindUnsupported names one row of
// the specification's error table; KindUnsupported covers input shapes the
// generator has no rule for. Propagation is always fatal to the
// current generate() call; there is no local recovery.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLower, errors.KindBitmapFieldOverflow).
//		Path("flags", "Mode").
//		Detail("value 19 does not fit in 4-bit field").
//		Build()
//
// All errors implement the standard error interface and support errors.Is.
package errors
