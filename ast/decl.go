package ast

// VarDecl is a variable or parameter declaration as written in source, prior
// to any modifier/type resolution.
type VarDecl struct {
	Pos            Pos
	Name           string
	BaseType       string // "u8".."u64", "i8".."i64", "f32", "f64", "f96", "bool", "char", or a user-type name
	ArrayDims      []Expr // empty dimension slots parse as nil entries (size inference)
	StringCapacity Expr   // non-nil for `string<N>`
	IsUnsizedString bool
	Init           Expr // nil if uninitialized
	IsConst        bool
	IsVolatile     bool
	IsExtern       bool
	IsAtomic       bool
	OverflowMode   string // "", "wrap", "clamp", "error"
}

// Param is a function parameter as written in source.
type Param struct {
	Pos      Pos
	Name     string
	BaseType string
	IsArray  bool
	ArrayDims []Expr
	IsString bool
	StringCapacity Expr
	IsConst  bool
	IsCallback bool
	CallbackTypeName string
}

// FuncDecl is a function definition.
type FuncDecl struct {
	Pos        Pos
	Name       string
	Scope      string // enclosing scope name, or "" at file scope
	Params     []Param
	ReturnType string
	Body       *Block
	Calls      []CallSite // pre-pass: direct calls made from this function's body
}

// CallSite records one call edge for CallGraphAnalyzer (spec.md §4.3): the
// callee name and, for each argument that is a bare parameter of the caller,
// which formal parameter index of the callee it binds to.
type CallSite struct {
	Callee         string
	ArgParamNames  map[int]string // argIndex -> caller's bare parameter name, only for bare-identifier args
}
