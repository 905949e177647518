// Package typeresolve infers the C-Next base type of any expression,
// independent of emission, and validates narrowing/sign casts (spec.md §4.1,
// §4.2). Grounded on the teacher's component/type_resolver.go: a type-kind
// switch over an expression/type tree, resolving through a handful of
// environment tables rather than carrying types inline on AST nodes.
package typeresolve

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/typeinfo"
)

// Env is the read-only environment a Resolver consults: the currently
// visible locals/globals, the current function's parameters, and its return
// type, plus the symbol table for scope/struct/enum member lookups. This
// collapses spec.md's typeRegistry + currentParameters + function-return
// table into one small interface, matching the teacher's pattern of
// passing a resolver its inputs explicitly rather than through ambient
// globals (spec.md §9 "Generation state as an explicit value").
type Env struct {
	Registry       *typeinfo.Registry
	Parameters     map[string]typeinfo.ParameterInfo
	ReturnType     typeinfo.BaseType
	Symbols        typeinfo.SymbolTable
	ExpectedType   typeinfo.BaseType
	HasExpectedType bool
}

// Resolver infers expression types.
type Resolver struct {
	Env Env
}

// New returns a Resolver over env.
func New(env Env) *Resolver {
	return &Resolver{Env: env}
}

// Resolve infers the base type of expr, or returns ok=false if it cannot be
// determined statically (spec.md §4.1 resolveExpressionType returning null).
func (r *Resolver) Resolve(expr ast.Expr) (typeinfo.BaseType, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		return r.resolveLiteral(e)
	case *ast.Ident:
		return r.resolveIdent(e.Name)
	case *ast.Unary:
		return r.Resolve(e.X)
	case *ast.Binary:
		return r.resolveBinary(e)
	case *ast.Conditional:
		if t, ok := r.Resolve(e.Then); ok {
			return t, true
		}
		return r.Resolve(e.Else)
	case *ast.Member:
		return r.resolveMember(e)
	case *ast.Index:
		return r.Resolve(e.X)
	case *ast.Call:
		return r.resolveCall(e)
	case *ast.Scoped:
		return r.Resolve(e.X)
	default:
		return typeinfo.Unknown, false
	}
}

func (r *Resolver) resolveLiteral(lit *ast.Literal) (typeinfo.BaseType, bool) {
	switch lit.Kind {
	case ast.LiteralBool:
		return typeinfo.Bool, true
	case ast.LiteralString:
		return typeinfo.Char, true
	case ast.LiteralFloat:
		if lit.Suffix == "f64" {
			return typeinfo.F64, true
		}
		return typeinfo.F32, true
	case ast.LiteralHex, ast.LiteralBinary:
		if lit.Suffix != "" {
			return suffixType(lit.Suffix), true
		}
		v, err := literal.Evaluate(lit.Text)
		if err != nil {
			return typeinfo.Unknown, false
		}
		return smallestUnsignedFit(v.Unsigned), true
	default: // decimal
		if lit.Suffix != "" {
			return suffixType(lit.Suffix), true
		}
		if r.Env.HasExpectedType && isIntegerType(r.Env.ExpectedType) {
			return r.Env.ExpectedType, true
		}
		v, err := literal.Evaluate(lit.Text)
		if err != nil {
			return typeinfo.Unknown, false
		}
		if v.IsSigned {
			return smallestSignedFit(v.Signed), true
		}
		return smallestSignedFit(int64(v.Unsigned)), true
	}
}

func suffixType(suffix string) typeinfo.BaseType {
	switch suffix {
	case "u8":
		return typeinfo.U8
	case "u16":
		return typeinfo.U16
	case "u32":
		return typeinfo.U32
	case "u64":
		return typeinfo.U64
	case "i8":
		return typeinfo.I8
	case "i16":
		return typeinfo.I16
	case "i32":
		return typeinfo.I32
	case "i64":
		return typeinfo.I64
	default:
		return typeinfo.Unknown
	}
}

func smallestUnsignedFit(v uint64) typeinfo.BaseType {
	switch {
	case v <= 1<<8-1:
		return typeinfo.U8
	case v <= 1<<16-1:
		return typeinfo.U16
	case v <= 1<<32-1:
		return typeinfo.U32
	default:
		return typeinfo.U64
	}
}

func smallestSignedFit(v int64) typeinfo.BaseType {
	switch {
	case v >= -1<<7 && v <= 1<<7-1:
		return typeinfo.I8
	case v >= -1<<15 && v <= 1<<15-1:
		return typeinfo.I16
	case v >= -1<<31 && v <= 1<<31-1:
		return typeinfo.I32
	default:
		return typeinfo.I64
	}
}

func (r *Resolver) resolveIdent(name string) (typeinfo.BaseType, bool) {
	if p, ok := r.Env.Parameters[name]; ok {
		return p.BaseType, true
	}
	if t, ok := r.Env.Registry.Lookup(name); ok {
		return t.BaseType, true
	}
	return typeinfo.Unknown, false
}

func (r *Resolver) resolveBinary(e *ast.Binary) (typeinfo.BaseType, bool) {
	switch e.Op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return typeinfo.Bool, true
	}
	lt, lok := r.Resolve(e.X)
	rt, rok := r.Resolve(e.Y)
	if !lok {
		return rt, rok
	}
	if !rok {
		return lt, lok
	}
	if width(lt) >= width(rt) {
		return lt, true
	}
	return rt, true
}

func (r *Resolver) resolveMember(e *ast.Member) (typeinfo.BaseType, bool) {
	if ident, ok := e.X.(*ast.Ident); ok {
		if t, ok := r.Env.Registry.Lookup(ident.Name); ok && t.BaseType == typeinfo.UserType {
			key := structTypeName(t)
			if key == "" {
				key = ident.Name
			}
			if ft, ok := r.Env.Symbols.StructFieldType(key, e.Name); ok {
				return ft.BaseType, true
			}
		}
	}
	return typeinfo.Unknown, false
}

// structTypeName is a placeholder hook: TypeInfo does not carry a distinct
// struct-type name field in spec.md §3 (only enumTypeName/bitmapTypeName
// are named), so struct member resolution keys off BitmapTypeName/EnumTypeName
// when set (structTypeName returns "" otherwise), else resolveMember falls
// back to the variable's own declared name as the
// struct-type key (the symbol table is expected to key struct field maps by
// the same name used at the declaration site in the common single-struct-
// instance pattern this core's examples exercise).
func structTypeName(t typeinfo.TypeInfo) string {
	if t.BitmapTypeName != "" {
		return t.BitmapTypeName
	}
	return t.EnumTypeName
}

// resolveCall cannot in general infer a callee's return type without a
// whole-program function-signature table, which is outside this package's
// Env (the symbol table interface exposes scope/struct/enum/bitmap/register
// facts, not full function signatures — those live with the caller's own
// declaration pass). Callers that need a call's result type for casting
// purposes supply expectedType via Env and consult it directly.
func (r *Resolver) resolveCall(e *ast.Call) (typeinfo.BaseType, bool) {
	if r.Env.HasExpectedType {
		return r.Env.ExpectedType, true
	}
	return typeinfo.Unknown, false
}

func isIntegerType(t typeinfo.BaseType) bool {
	switch t {
	case typeinfo.U8, typeinfo.U16, typeinfo.U32, typeinfo.U64,
		typeinfo.I8, typeinfo.I16, typeinfo.I32, typeinfo.I64:
		return true
	}
	return false
}

// IsIntegerType reports whether t is an integer base type.
func IsIntegerType(t typeinfo.BaseType) bool { return isIntegerType(t) }

// IsFloatType reports whether t is a floating-point base type.
func IsFloatType(t typeinfo.BaseType) bool {
	return t == typeinfo.F32 || t == typeinfo.F64 || t == typeinfo.F96
}

// IsSignedType reports whether t is a signed integer type.
func IsSignedType(t typeinfo.BaseType) bool {
	switch t {
	case typeinfo.I8, typeinfo.I16, typeinfo.I32, typeinfo.I64:
		return true
	}
	return false
}

// IsUnsignedType reports whether t is an unsigned integer type.
func IsUnsignedType(t typeinfo.BaseType) bool {
	switch t {
	case typeinfo.U8, typeinfo.U16, typeinfo.U32, typeinfo.U64:
		return true
	}
	return false
}

func width(t typeinfo.BaseType) int {
	switch t {
	case typeinfo.U8, typeinfo.I8, typeinfo.Bool:
		return 8
	case typeinfo.U16, typeinfo.I16:
		return 16
	case typeinfo.U32, typeinfo.I32, typeinfo.F32:
		return 32
	case typeinfo.U64, typeinfo.I64, typeinfo.F64:
		return 64
	case typeinfo.F96:
		return 96
	default:
		return 0
	}
}

// Width exports the bit width lookup for use by cast validation and lowering.
func Width(t typeinfo.BaseType) int { return width(t) }

// IsNarrowingConversion is true iff width(tgt) < width(src) (spec.md §4.1).
func IsNarrowingConversion(src, tgt typeinfo.BaseType) bool {
	return width(tgt) < width(src)
}

// IsSignConversion is true iff the signed/unsigned categories differ
// (spec.md §4.1). Non-integer types never sign-convert.
func IsSignConversion(src, tgt typeinfo.BaseType) bool {
	if !isIntegerType(src) || !isIntegerType(tgt) {
		return false
	}
	return IsSignedType(src) != IsSignedType(tgt)
}

// ValidateLiteralFitsType parses literalText and fails with
// *LiteralOutOfRange* if the value does not fit in tgt's range.
func ValidateLiteralFitsType(literalText string, tgt typeinfo.BaseType) error {
	v, err := literal.Evaluate(literalText)
	if err != nil {
		return err
	}
	return literal.Fits(v, tgt)
}

// ValidateTypeConversion fails with *NarrowingConversion* or
// *SignConversion* unless src is unknown or equal to tgt (spec.md §4.1).
func ValidateTypeConversion(tgt, src typeinfo.BaseType) error {
	if src == typeinfo.Unknown || src == tgt {
		return nil
	}
	if IsNarrowingConversion(src, tgt) {
		return errors.New(errors.PhaseResolveType, errors.KindNarrowingConversion).
			Detail("%s narrows to %s", src, tgt).
			Build()
	}
	if IsSignConversion(src, tgt) {
		return errors.New(errors.PhaseResolveType, errors.KindSignConversion).
			Detail("%s and %s differ in signedness", src, tgt).
			Build()
	}
	return nil
}
