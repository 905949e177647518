package typeinfo

// SymbolKind tags what kind of entity a SymbolTable overload names.
type SymbolKind int

const (
	KindFunction SymbolKind = iota
	KindStruct
	KindClass
	KindEnum
	KindBitmap
	KindRegister
	KindNamespace
	KindType
)

// SourceLanguage tags which front-end produced a symbol.
type SourceLanguage int

const (
	LangCNext SourceLanguage = iota
	LangC
	LangCpp
)

// RegisterAccess is a register member's access modifier.
type RegisterAccess int

const (
	AccessReadOnly RegisterAccess = iota
	AccessWriteOnly
	AccessReadWrite
)

// BitmapFieldInfo is one named bitfield of a bitmap type.
type BitmapFieldInfo struct {
	Name   string
	Offset int
	Width  int
}

// CallbackTypeInfo describes a nominal function-pointer typedef.
type CallbackTypeInfo struct {
	ReturnType string
	Params     []TypeInfo
}

// Symbol is one named overload set member.
type Symbol struct {
	Name           string
	Kind           SymbolKind
	SourceLanguage SourceLanguage
}

// SymbolTable is the read-only facts store populated by the (out-of-scope)
// symbol collector. The code-generation core never mutates it; every lookup
// returns a copy or a value type, never an aliased pointer into the table's
// internals (spec.md §3 ownership rule).
type SymbolTable interface {
	Lookup(name string) ([]Symbol, bool)

	KnownScopes() map[string]bool
	KnownRegisters() map[string]bool
	KnownStructs() map[string]bool
	KnownBitmaps() map[string]bool
	KnownEnums() map[string]bool

	ScopeMembers(scope string) (map[string]bool, bool)
	ScopeMemberVisibility(scope, member string) (public bool, ok bool)

	BitmapFields(bitmapType string) ([]BitmapFieldInfo, bool)
	BitmapBitWidth(bitmapType string) (int, bool)

	RegisterMemberAccess(regMember string) (RegisterAccess, bool)
	RegisterMemberType(regMember string) (bitmapType string, ok bool)

	CallbackType(typedefName string) (CallbackTypeInfo, bool)
	EnumMembers(enumType string) ([]string, bool)

	// StructFieldType resolves a struct's field to its TypeInfo, used when
	// classifying STRUCT_MEMBER_BITMAP_FIELD and MEMBER_CHAIN targets.
	StructFieldType(structType, field string) (TypeInfo, bool)
}
