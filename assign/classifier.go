package assign

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/typeinfo"
)

// Context is the classifier's input: spec.md §4.4's AssignmentContext.
// ResolvedBaseIdentifier and ResolvedTarget are precomputed by the caller
// (the generation driver), since resolving the root identifier's TypeInfo
// may itself require walking scope-qualified prefixes the classifier has no
// business re-deriving.
type Context struct {
	Target                  ast.LValue
	Op                      ast.Operator
	Value                   ast.Expr
	ResolvedBaseIdentifier  string
	ResolvedTarget          typeinfo.TypeInfo
	CurrentScope            string
	Symbols                 typeinfo.SymbolTable
}

// Classify applies spec.md §4.4's twelve ordered rules and returns the
// matching Kind. It is pure with respect to generation state.
func Classify(c Context) Kind {
	idents := c.Target.Idents
	t := c.ResolvedTarget

	// Rule 1: special compound on a simple identifier.
	if c.Op.IsCompound() && len(idents) == 1 && len(c.Target.Subscripts) == 0 {
		if t.IsAtomic {
			return AtomicRMW
		}
		isInteger := isIntegerBase(t.BaseType)
		if isInteger && t.OverflowBehavior == typeinfo.OverflowClamp {
			return OverflowClamp
		}
		if isInteger && t.OverflowBehavior == typeinfo.OverflowWrap {
			return OverflowWrap
		}
		// else fall through to later rules.
	}

	// Rule 2: bitmap field on a simple identifier — Idents = [ident, field].
	if len(idents) == 2 && len(c.Target.Subscripts) == 0 && t.IsBitmap {
		if fields, ok := c.Symbols.BitmapFields(t.BitmapTypeName); ok {
			if f, ok := findField(fields, idents[1]); ok {
				if f.Width == 1 {
					return BitmapFieldSingleBit
				}
				return BitmapFieldMultiBit
			}
		}
		// named field not in bitmapFields: fall through per spec.md §4.4 note.
	}

	// Rule 3: bitmap array element field — Idents = [ident, field], one
	// subscript group at ident 0, root isBitmap && isArray.
	if len(idents) == 2 && t.IsBitmap && t.IsArray {
		if steps, ok := c.Target.Subscripts[0]; ok && len(steps) == 1 {
			if _, ok := c.Symbols.BitmapFields(t.BitmapTypeName); ok {
				return BitmapArrayElementField
			}
		}
	}

	// Rule 4: register member bitmap field — chain REG.MEMBER.field.
	if len(idents) == 3 && c.Symbols.KnownRegisters()[idents[0]] {
		regMember := idents[0] + "_" + idents[1]
		if bitmapType, ok := c.Symbols.RegisterMemberType(regMember); ok {
			if _, isBitmap := c.Symbols.BitmapFields(bitmapType); isBitmap {
				if c.Target.Prefix == ast.ScopeThis {
					return ScopedRegisterMemberBitmapField
				}
				return RegisterMemberBitmapField
			}
		}
	}

	// Rule 5: struct member bitmap field — root is a struct variable, member
	// is a bitmap-typed field, trailing field.
	if len(idents) == 3 {
		if ft, ok := c.Symbols.StructFieldType(c.ResolvedBaseIdentifier, idents[1]); ok && ft.IsBitmap {
			if _, ok := c.Symbols.BitmapFields(ft.BitmapTypeName); ok {
				return StructMemberBitmapField
			}
		}
	}

	// Rule 6: integer/float bit writes on a simple identifier.
	if len(idents) == 1 && !t.IsArray {
		if steps, ok := c.Target.Subscripts[0]; ok && len(steps) == 1 {
			n := len(steps[0].Args)
			isFloat := isFloatBase(t.BaseType)
			isInteger := isIntegerBase(t.BaseType)
			switch {
			case isInteger && n == 1:
				return IntegerBit
			case isInteger && n == 2:
				return IntegerBitRange
			case isFloat && n == 1:
				return FloatBit
			case isFloat && n == 2:
				return FloatBitRange
			}
		}
	}

	// Rule 7: register bit writes — REG.MEMBER[...].
	if len(idents) == 2 && c.Symbols.KnownRegisters()[idents[0]] {
		if steps, ok := c.Target.Subscripts[1]; ok && len(steps) == 1 {
			n := len(steps[0].Args)
			scoped := c.Target.Prefix == ast.ScopeThis
			switch {
			case n == 1 && scoped:
				return ScopedRegisterBit
			case n == 1:
				return RegisterBit
			case n == 2 && scoped:
				return ScopedRegisterBitRange
			case n == 2:
				return RegisterBitRange
			}
		}
	}

	// Rule 8: string writes.
	if len(idents) == 1 && t.IsString {
		switch rhs := c.Value.(type) {
		case *ast.Binary:
			if rhs.Op == "+" {
				return StringConcat
			}
		case *ast.Index:
			if len(rhs.Args) == 2 {
				return StringSubstring
			}
		}
		return StringSimple
	}
	if len(idents) == 2 && len(c.Target.Subscripts) == 0 {
		if ft, ok := c.Symbols.StructFieldType(c.ResolvedBaseIdentifier, idents[1]); ok && ft.IsString {
			return StringStructField
		}
	}

	// Rule 9: array writes.
	if steps, ok := c.Target.Subscripts[0]; ok && t.IsArray {
		rank := t.Rank()
		switch {
		case len(steps) == 1 && len(steps[0].Args) == 2 && rank == 1:
			return ArraySlice
		case len(steps) == rank && rank == 1:
			return ArrayElement
		case len(steps) == rank && rank > 1:
			return MultiDimArrayElement
		case len(steps) == rank+1 && rank >= 1 && isIntegerBase(elementBase(t)):
			return ArrayElementBit
		}
	}

	// Rule 10: prefix patterns.
	if c.Target.Prefix == ast.ScopeGlobal {
		if t.IsArray {
			return GlobalArray
		}
		if len(idents) >= 2 {
			return GlobalMember
		}
	}
	if c.Target.Prefix == ast.ScopeThis {
		if t.IsArray {
			return ThisArray
		}
		if len(idents) >= 2 {
			return ThisMember
		}
	}

	// Rule 11: member chain not otherwise classified.
	if len(idents) >= 2 {
		return MemberChain
	}

	// Rule 12: fallback.
	return Simple
}

func findField(fields []typeinfo.BitmapFieldInfo, name string) (typeinfo.BitmapFieldInfo, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return typeinfo.BitmapFieldInfo{}, false
}

func isIntegerBase(t typeinfo.BaseType) bool {
	switch t {
	case typeinfo.U8, typeinfo.U16, typeinfo.U32, typeinfo.U64,
		typeinfo.I8, typeinfo.I16, typeinfo.I32, typeinfo.I64:
		return true
	}
	return false
}

func isFloatBase(t typeinfo.BaseType) bool {
	return t == typeinfo.F32 || t == typeinfo.F64 || t == typeinfo.F96
}

// elementBase approximates the element base type of an array TypeInfo. The
// symbol table does not carry a distinct element-TypeInfo field separate
// from the array variable's own BaseType (spec.md §3's TypeInfo describes
// the whole variable, array-ness included), so the declared BaseType is the
// element type directly.
func elementBase(t typeinfo.TypeInfo) typeinfo.BaseType {
	return t.BaseType
}
