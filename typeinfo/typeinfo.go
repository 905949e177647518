// Package typeinfo is the central mutable store of variable, parameter, and
// type facts (spec.md §3 TypeInfo / ParameterInfo / GenerationState's
// typeRegistry). It models cross-references into the symbol table as string
// keys rather than owning pointers, per the arena/index design note in
// spec.md §9 — grounded on the teacher's index-into-arena handles
// (component/internal/arena: AnyTypeID is a tagged index, never an owning
// pointer).
package typeinfo

// BaseType is a C-Next primitive tag. Modeled as a small closed byte enum
// with a String method, the same shape the teacher uses for its core wasm
// value-type enum (api.ValueType) — the pattern is reused here without the
// wazero dependency itself, since no wasm value type exists in this domain.
type BaseType byte

const (
	Unknown BaseType = iota
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	F96
	Bool
	Char
	ISR
	UserType
)

func (t BaseType) String() string {
	switch t {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case F96:
		return "f96"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case ISR:
		return "ISR"
	case UserType:
		return "<user>"
	default:
		return "<unknown>"
	}
}

// OverflowBehavior selects the lowering strategy for compound assignment on
// an integer target (spec.md §4.4 rule 1).
type OverflowBehavior int

const (
	OverflowNone OverflowBehavior = iota
	OverflowWrap
	OverflowClamp
	OverflowError
)

// TypeInfo is the canonical description of a named value's type (spec.md §3).
type TypeInfo struct {
	BaseType         BaseType
	BitWidth         int
	IsArray          bool
	IsConst          bool
	IsEnum           bool
	IsBitmap         bool
	IsString         bool
	IsAtomic         bool
	IsPointer        bool
	IsParameter      bool
	IsExternalCppType bool
	ArrayDimensions  []int // 0 means unknown/unsized at that rank
	EnumTypeName     string
	BitmapTypeName   string
	StringCapacity   int
	OverflowBehavior OverflowBehavior
}

// Rank returns the declared array rank.
func (t TypeInfo) Rank() int { return len(t.ArrayDimensions) }

// Clone returns an independent copy; callers never receive aliased records
// (spec.md §3 ownership rule).
func (t TypeInfo) Clone() TypeInfo {
	cp := t
	if t.ArrayDimensions != nil {
		cp.ArrayDimensions = append([]int(nil), t.ArrayDimensions...)
	}
	return cp
}

// ParameterLifecycle classifies how a parameter is passed, per ADR-006.
type ParameterLifecycle int

const (
	NormalByReference ParameterLifecycle = iota
	PassByValue
	CallbackPointerPrimitive
)

// ParameterInfo is a TypeInfo plus a lifecycle flag (spec.md §3).
type ParameterInfo struct {
	TypeInfo
	Lifecycle               ParameterLifecycle
	IsCallbackPointerPrimitive bool
	IsModified               bool // filled in by callgraph.Analyzer
}
