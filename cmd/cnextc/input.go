// Command cnextc is the batch CLI driver for the code-generation core
// (spec.md §6's external interface), replacing the teacher's bubbletea
// wasm-component explorer (cmd/run/interactive.go) with a flag-based,
// non-interactive one: read one JSON document describing an already-parsed
// AST and symbol table, run Generate, write the emitted source and report
// diagnostics. The lexer/parser that would normally produce this AST from
// `.cnx` source text is out of scope (spec.md §1); this package's JSON
// schema is a stand-in wire format for that front-end's output, not part of
// the language's own surface.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/codegen"
	"github.com/jlaustill/c-next/typeinfo"
)

// document is the top-level JSON shape cnextc reads.
type document struct {
	Globals   []varDeclJSON `json:"globals"`
	Functions []funcDeclJSON `json:"functions"`
	Symbols   symbolTableJSON `json:"symbols"`
}

type varDeclJSON struct {
	Name            string     `json:"name"`
	BaseType        string     `json:"baseType"`
	ArrayDims       []exprJSON `json:"arrayDims"`
	StringCapacity  *exprJSON  `json:"stringCapacity"`
	IsUnsizedString bool       `json:"isUnsizedString"`
	Init            *exprJSON  `json:"init"`
	IsConst         bool       `json:"isConst"`
	IsVolatile      bool       `json:"isVolatile"`
	IsExtern        bool       `json:"isExtern"`
	IsAtomic        bool       `json:"isAtomic"`
	OverflowMode    string     `json:"overflowMode"`
}

type paramJSON struct {
	Name             string     `json:"name"`
	BaseType         string     `json:"baseType"`
	IsArray          bool       `json:"isArray"`
	ArrayDims        []exprJSON `json:"arrayDims"`
	IsString         bool       `json:"isString"`
	StringCapacity   *exprJSON  `json:"stringCapacity"`
	IsConst          bool       `json:"isConst"`
	IsCallback       bool       `json:"isCallback"`
	CallbackTypeName string     `json:"callbackTypeName"`
}

type funcDeclJSON struct {
	Name       string        `json:"name"`
	Scope      string        `json:"scope"`
	Params     []paramJSON   `json:"params"`
	ReturnType string        `json:"returnType"`
	Body       []stmtJSON    `json:"body"`
}

// exprJSON is a tagged union over the expression grammar ast.Expr models.
type exprJSON struct {
	Kind string `json:"kind"`

	// lit
	Text   string `json:"text,omitempty"`
	Suffix string `json:"suffix,omitempty"`
	Lit    string `json:"litKind,omitempty"`

	// ident / member / scoped
	Name   string    `json:"name,omitempty"`
	X      *exprJSON `json:"x,omitempty"`
	Prefix string    `json:"prefix,omitempty"`

	// unary / binary
	Op string    `json:"op,omitempty"`
	Y  *exprJSON `json:"y,omitempty"`

	// call / index
	Callee *exprJSON  `json:"callee,omitempty"`
	Args   []exprJSON `json:"args,omitempty"`

	// conditional
	Cond *exprJSON `json:"cond,omitempty"`
	Then *exprJSON `json:"then,omitempty"`
	Else *exprJSON `json:"else,omitempty"`

	// array literal
	Elems    []exprJSON `json:"elems,omitempty"`
	FillAll  bool       `json:"fillAll,omitempty"`
	FillElem *exprJSON  `json:"fillElem,omitempty"`
}

type subscriptGroupJSON struct {
	Args []exprJSON `json:"args"`
}

type lvalueJSON struct {
	Prefix     string                           `json:"prefix"`
	Idents     []string                         `json:"idents"`
	Subscripts map[string][]subscriptGroupJSON `json:"subscripts"`
}

type switchCaseJSON struct {
	Values       []exprJSON `json:"values"`
	IsDefault    bool       `json:"isDefault"`
	DefaultCount int        `json:"defaultCount"`
	Body         []stmtJSON `json:"body"`
}

// stmtJSON is a tagged union over the statement grammar ast.Stmt models.
type stmtJSON struct {
	Kind string `json:"kind"`

	Decl *varDeclJSON `json:"decl,omitempty"`
	X    *exprJSON    `json:"x,omitempty"`

	Target *lvalueJSON `json:"target,omitempty"`
	Op     string      `json:"op,omitempty"`
	Value  *exprJSON   `json:"value,omitempty"`

	Cond *exprJSON  `json:"cond,omitempty"`
	Then []stmtJSON `json:"then,omitempty"`
	Else *stmtJSON  `json:"else,omitempty"`
	Body []stmtJSON `json:"body,omitempty"`

	Selector *exprJSON        `json:"selector,omitempty"`
	Cases    []switchCaseJSON `json:"cases,omitempty"`
}

func decodeDocument(r io.Reader) (document, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return document{}, fmt.Errorf("decode input: %w", err)
	}
	return doc, nil
}

func (d document) toUnit() (codegen.Unit, error) {
	globals := make([]*ast.VarDecl, 0, len(d.Globals))
	for _, g := range d.Globals {
		decl, err := g.toAST()
		if err != nil {
			return codegen.Unit{}, fmt.Errorf("global %q: %w", g.Name, err)
		}
		globals = append(globals, decl)
	}

	funcs := make([]*ast.FuncDecl, 0, len(d.Functions))
	for _, f := range d.Functions {
		fn, err := f.toAST()
		if err != nil {
			return codegen.Unit{}, fmt.Errorf("function %q: %w", f.Name, err)
		}
		funcs = append(funcs, fn)
	}

	return codegen.Unit{Globals: globals, Functions: funcs}, nil
}

func (v varDeclJSON) toAST() (*ast.VarDecl, error) {
	dims, err := exprSlice(v.ArrayDims)
	if err != nil {
		return nil, err
	}
	init, err := v.Init.toASTOrNil()
	if err != nil {
		return nil, err
	}
	capacity, err := v.StringCapacity.toASTOrNil()
	if err != nil {
		return nil, err
	}
	return &ast.VarDecl{
		Name:            v.Name,
		BaseType:        v.BaseType,
		ArrayDims:       dims,
		StringCapacity:  capacity,
		IsUnsizedString: v.IsUnsizedString,
		Init:            init,
		IsConst:         v.IsConst,
		IsVolatile:      v.IsVolatile,
		IsExtern:        v.IsExtern,
		IsAtomic:        v.IsAtomic,
		OverflowMode:    v.OverflowMode,
	}, nil
}

func (p paramJSON) toAST() (ast.Param, error) {
	dims, err := exprSlice(p.ArrayDims)
	if err != nil {
		return ast.Param{}, err
	}
	capacity, err := p.StringCapacity.toASTOrNil()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{
		Name:             p.Name,
		BaseType:         p.BaseType,
		IsArray:          p.IsArray,
		ArrayDims:        dims,
		IsString:         p.IsString,
		StringCapacity:   capacity,
		IsConst:          p.IsConst,
		IsCallback:       p.IsCallback,
		CallbackTypeName: p.CallbackTypeName,
	}, nil
}

func (f funcDeclJSON) toAST() (*ast.FuncDecl, error) {
	params := make([]ast.Param, 0, len(f.Params))
	for _, p := range f.Params {
		pp, err := p.toAST()
		if err != nil {
			return nil, err
		}
		params = append(params, pp)
	}
	body, err := stmtSlice(f.Body)
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{
		Name:       f.Name,
		Scope:      f.Scope,
		Params:     params,
		ReturnType: f.ReturnType,
		Body:       &ast.Block{Stmts: body},
	}, nil
}

func exprSlice(in []exprJSON) ([]ast.Expr, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]ast.Expr, len(in))
	for i, e := range in {
		conv, err := e.toAST()
		if err != nil {
			return nil, err
		}
		out[i] = conv
	}
	return out, nil
}

func (e *exprJSON) toASTOrNil() (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	return e.toAST()
}

func (e exprJSON) toAST() (ast.Expr, error) {
	switch e.Kind {
	case "lit":
		kind, err := literalKindOf(e.Lit)
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Text: e.Text, Suffix: e.Suffix, Kind: kind}, nil

	case "ident":
		return &ast.Ident{Name: e.Name}, nil

	case "member":
		x, err := e.X.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Member{X: x, Name: e.Name}, nil

	case "scoped":
		prefix, err := scopePrefixOf(e.Prefix)
		if err != nil {
			return nil, err
		}
		x, err := e.X.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Scoped{Prefix: prefix, X: x}, nil

	case "unary":
		x, err := e.X.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: e.Op, X: x}, nil

	case "binary":
		x, err := e.X.toAST()
		if err != nil {
			return nil, err
		}
		y, err := e.Y.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: e.Op, X: x, Y: y}, nil

	case "call":
		callee, err := e.Callee.toAST()
		if err != nil {
			return nil, err
		}
		args, err := exprSlice(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Callee: callee, Args: args}, nil

	case "index":
		x, err := e.X.toAST()
		if err != nil {
			return nil, err
		}
		args, err := exprSlice(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Index{X: x, Args: args}, nil

	case "conditional":
		cond, err := e.Cond.toAST()
		if err != nil {
			return nil, err
		}
		then, err := e.Then.toAST()
		if err != nil {
			return nil, err
		}
		els, err := e.Else.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Cond: cond, Then: then, Else: els}, nil

	case "sizeof":
		x, err := e.X.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.SizeofExpr{X: x}, nil

	case "array":
		elems, err := exprSlice(e.Elems)
		if err != nil {
			return nil, err
		}
		fill, err := e.FillElem.toASTOrNil()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Elems: elems, FillAll: e.FillAll, FillElem: fill}, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", e.Kind)
	}
}

func literalKindOf(s string) (ast.LiteralKind, error) {
	switch s {
	case "", "decimal":
		return ast.LiteralDecimal, nil
	case "hex":
		return ast.LiteralHex, nil
	case "binary":
		return ast.LiteralBinary, nil
	case "bool":
		return ast.LiteralBool, nil
	case "string":
		return ast.LiteralString, nil
	case "float":
		return ast.LiteralFloat, nil
	default:
		return 0, fmt.Errorf("unknown literal kind %q", s)
	}
}

func scopePrefixOf(s string) (ast.ScopePrefix, error) {
	switch s {
	case "", "none":
		return ast.PrefixNone, nil
	case "this":
		return ast.PrefixThis, nil
	case "global":
		return ast.PrefixGlobal, nil
	default:
		return 0, fmt.Errorf("unknown scope prefix %q", s)
	}
}

func scopeOf(s string) (ast.Scope, error) {
	switch s {
	case "", "none":
		return ast.ScopeNone, nil
	case "this":
		return ast.ScopeThis, nil
	case "global":
		return ast.ScopeGlobal, nil
	default:
		return 0, fmt.Errorf("unknown scope %q", s)
	}
}

func operatorOf(s string) (ast.Operator, error) {
	switch s {
	case "=":
		return ast.OpAssign, nil
	case "+=":
		return ast.OpAddAssign, nil
	case "-=":
		return ast.OpSubAssign, nil
	case "*=":
		return ast.OpMulAssign, nil
	case "/=":
		return ast.OpDivAssign, nil
	case "%=":
		return ast.OpModAssign, nil
	case "&=":
		return ast.OpAndAssign, nil
	case "|=":
		return ast.OpOrAssign, nil
	case "^=":
		return ast.OpXorAssign, nil
	case "<<=":
		return ast.OpShlAssign, nil
	case ">>=":
		return ast.OpShrAssign, nil
	default:
		return 0, fmt.Errorf("unknown assignment operator %q", s)
	}
}

func (l lvalueJSON) toAST() (ast.LValue, error) {
	prefix, err := scopeOf(l.Prefix)
	if err != nil {
		return ast.LValue{}, err
	}
	var subs map[int][]ast.SubscriptGroup
	if len(l.Subscripts) > 0 {
		subs = make(map[int][]ast.SubscriptGroup, len(l.Subscripts))
		for key, groups := range l.Subscripts {
			idx, err := subscriptKeyOf(key)
			if err != nil {
				return ast.LValue{}, err
			}
			out := make([]ast.SubscriptGroup, len(groups))
			for i, g := range groups {
				args, err := exprSlice(g.Args)
				if err != nil {
					return ast.LValue{}, err
				}
				out[i] = ast.SubscriptGroup{Args: args}
			}
			subs[idx] = out
		}
	}
	return ast.LValue{Prefix: prefix, Idents: l.Idents, Subscripts: subs}, nil
}

func subscriptKeyOf(key string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(key, "%d", &n); err != nil {
		return 0, fmt.Errorf("subscript key %q is not an integer: %w", key, err)
	}
	return n, nil
}

func stmtSlice(in []stmtJSON) ([]ast.Stmt, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]ast.Stmt, len(in))
	for i, s := range in {
		conv, err := s.toAST()
		if err != nil {
			return nil, err
		}
		out[i] = conv
	}
	return out, nil
}

func (s stmtJSON) toAST() (ast.Stmt, error) {
	switch s.Kind {
	case "vardecl":
		decl, err := s.Decl.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.VarDeclStmt{Decl: decl}, nil

	case "expr":
		x, err := s.X.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil

	case "assign":
		target, err := s.Target.toAST()
		if err != nil {
			return nil, err
		}
		op, err := operatorOf(s.Op)
		if err != nil {
			return nil, err
		}
		value, err := s.Value.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Target: target, Op: op, Value: value}, nil

	case "if":
		cond, err := s.Cond.toAST()
		if err != nil {
			return nil, err
		}
		then, err := stmtSlice(s.Then)
		if err != nil {
			return nil, err
		}
		var elseStmt ast.Stmt
		if s.Else != nil {
			elseStmt, err = s.Else.toAST()
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStmt{Cond: cond, Then: &ast.Block{Stmts: then}, Else: elseStmt}, nil

	case "while":
		cond, err := s.Cond.toAST()
		if err != nil {
			return nil, err
		}
		body, err := stmtSlice(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: &ast.Block{Stmts: body}}, nil

	case "dowhile":
		cond, err := s.Cond.toAST()
		if err != nil {
			return nil, err
		}
		body, err := stmtSlice(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStmt{Cond: cond, Body: &ast.Block{Stmts: body}}, nil

	case "switch":
		sel, err := s.Selector.toAST()
		if err != nil {
			return nil, err
		}
		cases := make([]ast.SwitchCase, len(s.Cases))
		for i, c := range s.Cases {
			values, err := exprSlice(c.Values)
			if err != nil {
				return nil, err
			}
			body, err := stmtSlice(c.Body)
			if err != nil {
				return nil, err
			}
			cases[i] = ast.SwitchCase{
				Values:       values,
				IsDefault:    c.IsDefault,
				DefaultCount: c.DefaultCount,
				Body:         &ast.Block{Stmts: body},
			}
		}
		return &ast.SwitchStmt{Selector: sel, Cases: cases}, nil

	case "return":
		value, err := s.Value.toASTOrNil()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Value: value}, nil

	case "critical":
		body, err := stmtSlice(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.CriticalSection{Body: &ast.Block{Stmts: body}}, nil

	case "block":
		body, err := stmtSlice(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: body}, nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", s.Kind)
	}
}

// typeInfoJSON mirrors the handful of typeinfo.TypeInfo fields the symbol
// table's field/member lookups need to describe.
type typeInfoJSON struct {
	BaseType       string `json:"baseType"`
	IsArray        bool   `json:"isArray"`
	IsConst        bool   `json:"isConst"`
	IsBitmap       bool   `json:"isBitmap"`
	IsString       bool   `json:"isString"`
	BitmapTypeName string `json:"bitmapTypeName"`
}

func (t typeInfoJSON) toTypeInfo() (typeinfo.TypeInfo, error) {
	base, err := baseTypeOf(t.BaseType)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	return typeinfo.TypeInfo{
		BaseType:       base,
		IsArray:        t.IsArray,
		IsConst:        t.IsConst,
		IsBitmap:       t.IsBitmap,
		IsString:       t.IsString,
		BitmapTypeName: t.BitmapTypeName,
	}, nil
}

func baseTypeOf(s string) (typeinfo.BaseType, error) {
	switch s {
	case "", "u8":
		return typeinfo.U8, nil
	case "u16":
		return typeinfo.U16, nil
	case "u32":
		return typeinfo.U32, nil
	case "u64":
		return typeinfo.U64, nil
	case "i8":
		return typeinfo.I8, nil
	case "i16":
		return typeinfo.I16, nil
	case "i32":
		return typeinfo.I32, nil
	case "i64":
		return typeinfo.I64, nil
	case "f32":
		return typeinfo.F32, nil
	case "f64":
		return typeinfo.F64, nil
	case "f96":
		return typeinfo.F96, nil
	case "bool":
		return typeinfo.Bool, nil
	case "char":
		return typeinfo.Char, nil
	default:
		return typeinfo.UserType, nil
	}
}
