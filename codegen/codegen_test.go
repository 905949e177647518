package codegen

import (
	"strings"
	"testing"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/exprgen"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/naming"
	"github.com/jlaustill/c-next/typeinfo"
)

// fakeSymbols is a minimal typeinfo.SymbolTable double. Most tests only need
// a handful of entries populated; zero values report "unknown".
type fakeSymbols struct {
	registers    map[string]bool
	bitmapFields map[string][]typeinfo.BitmapFieldInfo
	regMember    map[string]string
	structField  map[string]typeinfo.TypeInfo
}

func (f fakeSymbols) Lookup(name string) ([]typeinfo.Symbol, bool) { return nil, false }
func (f fakeSymbols) KnownScopes() map[string]bool                { return nil }
func (f fakeSymbols) KnownRegisters() map[string]bool             { return f.registers }
func (f fakeSymbols) KnownStructs() map[string]bool               { return nil }
func (f fakeSymbols) KnownBitmaps() map[string]bool               { return nil }
func (f fakeSymbols) KnownEnums() map[string]bool                 { return nil }
func (f fakeSymbols) ScopeMembers(scope string) (map[string]bool, bool) { return nil, false }
func (f fakeSymbols) ScopeMemberVisibility(scope, member string) (bool, bool) {
	return true, true
}
func (f fakeSymbols) BitmapFields(t string) ([]typeinfo.BitmapFieldInfo, bool) {
	fields, ok := f.bitmapFields[t]
	return fields, ok
}
func (f fakeSymbols) BitmapBitWidth(t string) (int, bool) { return 0, false }
func (f fakeSymbols) RegisterMemberAccess(regMember string) (typeinfo.RegisterAccess, bool) {
	return 0, false
}
func (f fakeSymbols) RegisterMemberType(regMember string) (string, bool) {
	t, ok := f.regMember[regMember]
	return t, ok
}
func (f fakeSymbols) CallbackType(name string) (typeinfo.CallbackTypeInfo, bool) {
	return typeinfo.CallbackTypeInfo{}, false
}
func (f fakeSymbols) EnumMembers(t string) ([]string, bool) { return nil, false }
func (f fakeSymbols) StructFieldType(structType, field string) (typeinfo.TypeInfo, bool) {
	t, ok := f.structField[structType+"."+field]
	return t, ok
}

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func intLit(text string) *ast.Literal {
	return &ast.Literal{Text: text, Kind: ast.LiteralDecimal}
}

// newTestFuncGen builds a funcGen with one entered function scope (so
// ctx.Locals() is non-nil) and an exprgen.Generator sharing that context.
func newTestFuncGen(symbols fakeSymbols, locals map[string]typeinfo.TypeInfo) (*funcGen, *gencontext.Context) {
	ctx := gencontext.New(gencontext.Options{})
	ctx.EnterFunction("test", typeinfo.U8, map[string]typeinfo.ParameterInfo{})
	for name, t := range locals {
		ctx.Locals().DeclareLocal(name, t)
	}
	globals := typeinfo.NewRegistry()
	exprs := exprgen.New(ctx, symbols, globals, naming.LangC)
	return &funcGen{
		ctx:     ctx,
		exprs:   exprs,
		decl:    nil,
		symbols: symbols,
		globals: globals,
		cppMode: false,
	}, ctx
}

func TestGenerateAssignmentStmtSimple(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, map[string]typeinfo.TypeInfo{
		"level": {BaseType: typeinfo.U8},
	})
	st := &ast.Assignment{
		Target: ast.LValue{Idents: []string{"level"}},
		Op:     ast.OpAssign,
		Value:  intLit("3"),
	}
	text, err := g.generateAssignmentStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(text), "level = 3U;"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerateAssignmentStmtConstRejected(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, map[string]typeinfo.TypeInfo{
		"level": {BaseType: typeinfo.U8, IsConst: true},
	})
	st := &ast.Assignment{
		Target: ast.LValue{Idents: []string{"level"}},
		Op:     ast.OpAssign,
		Value:  intLit("3"),
	}
	if _, err := g.generateAssignmentStmt(st, 1); err == nil {
		t.Fatal("expected an error assigning to a const variable")
	}
}

func TestGenerateAssignmentStmtIntegerBit(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, map[string]typeinfo.TypeInfo{
		"flags": {BaseType: typeinfo.U8},
	})
	st := &ast.Assignment{
		Target: ast.LValue{
			Idents:     []string{"flags"},
			Subscripts: map[int][]ast.SubscriptGroup{0: {{Args: []ast.Expr{intLit("2")}}}},
		},
		Op:    ast.OpAssign,
		Value: intLit("1"),
	}
	text, err := g.generateAssignmentStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "flags") {
		t.Errorf("expected flags in output, got %q", text)
	}
}

func TestGenerateAssignmentStmtBitmapField(t *testing.T) {
	symbols := fakeSymbols{
		bitmapFields: map[string][]typeinfo.BitmapFieldInfo{
			"StatusBits": {{Name: "ready", Offset: 0, Width: 1}},
		},
	}
	g, _ := newTestFuncGen(symbols, map[string]typeinfo.TypeInfo{
		"status": {BaseType: typeinfo.U8, IsBitmap: true, BitmapTypeName: "StatusBits"},
	})
	st := &ast.Assignment{
		Target: ast.LValue{Idents: []string{"status", "ready"}},
		Op:     ast.OpAssign,
		Value:  intLit("1"),
	}
	text, err := g.generateAssignmentStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "status") {
		t.Errorf("expected status in output, got %q", text)
	}
}

func TestGenerateAssignmentStmtGlobalMemberUsesSecondIdentType(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, nil)
	g.globals.DeclareGlobal("counter", typeinfo.TypeInfo{BaseType: typeinfo.U32})

	st := &ast.Assignment{
		Target: ast.LValue{Prefix: ast.ScopeGlobal, Idents: []string{"Motor", "counter"}},
		Op:     ast.OpAssign,
		Value:  intLit("5"),
	}
	text, err := g.generateAssignmentStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "5") {
		t.Errorf("got %q", text)
	}
}

func TestGenerateStmtIfElse(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, map[string]typeinfo.TypeInfo{
		"flag": {BaseType: typeinfo.Bool},
	})
	st := &ast.IfStmt{
		Cond: ident("flag"),
		Then: &ast.Block{Stmts: []ast.Stmt{
			&ast.Assignment{Target: ast.LValue{Idents: []string{"flag"}}, Op: ast.OpAssign, Value: &ast.Literal{Text: "false", Kind: ast.LiteralBool}},
		}},
		Else: &ast.Block{Stmts: []ast.Stmt{
			&ast.Assignment{Target: ast.LValue{Idents: []string{"flag"}}, Op: ast.OpAssign, Value: &ast.Literal{Text: "true", Kind: ast.LiteralBool}},
		}},
	}
	text, err := g.generateStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "if (flag) {") || !strings.Contains(text, "} else {") {
		t.Errorf("got %q", text)
	}
}

func TestGenerateStmtWhile(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, map[string]typeinfo.TypeInfo{
		"running": {BaseType: typeinfo.Bool},
	})
	st := &ast.WhileStmt{
		Cond: ident("running"),
		Body: &ast.Block{},
	}
	text, err := g.generateStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(text), "while (running) {") {
		t.Errorf("got %q", text)
	}
}

func TestGenerateStmtCriticalSection(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, map[string]typeinfo.TypeInfo{
		"counter": {BaseType: typeinfo.U32},
	})
	st := &ast.CriticalSection{
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.Assignment{Target: ast.LValue{Idents: []string{"counter"}}, Op: ast.OpAddAssign, Value: intLit("1")},
		}},
	}
	text, err := g.generateStmt(st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "__disable_irq();") || !strings.Contains(text, "__enable_irq();") {
		t.Errorf("expected irq guard, got %q", text)
	}
}

func TestGenerateStmtCriticalSectionRejectsReturn(t *testing.T) {
	g, _ := newTestFuncGen(fakeSymbols{}, nil)
	st := &ast.CriticalSection{
		Body: &ast.Block{Stmts: []ast.Stmt{&ast.ReturnStmt{}}},
	}
	if _, err := g.generateStmt(st, 1); err == nil {
		t.Fatal("expected an error for a return inside a critical section")
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	unit := Unit{
		Globals: []*ast.VarDecl{
			{Name: "ticks", BaseType: "u32"},
		},
		Functions: []*ast.FuncDecl{
			{
				Name:       "tick",
				ReturnType: "bool",
				Params:     []ast.Param{{Name: "amount", BaseType: "u32"}},
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.Literal{Text: "true", Kind: ast.LiteralBool}},
				}},
			},
		},
	}
	res, err := Generate(unit, fakeSymbols{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v (partial source: %q)", err, res.SourceText)
	}
	if !strings.Contains(res.SourceText, "uint32_t ticks = 0;") {
		t.Errorf("missing global declaration in %q", res.SourceText)
	}
	if !strings.Contains(res.SourceText, "bool tick(") {
		t.Errorf("missing function signature in %q", res.SourceText)
	}
	if !strings.Contains(res.SourceText, "return true;") {
		t.Errorf("missing return statement in %q", res.SourceText)
	}
}

func TestGenerateStopsOnFirstError(t *testing.T) {
	unit := Unit{
		Functions: []*ast.FuncDecl{
			{
				Name:       "broken",
				ReturnType: "bool",
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.VarDeclStmt{Decl: &ast.VarDecl{
						Name: "x", BaseType: "u8", IsConst: true, Init: intLit("1"),
					}},
					&ast.Assignment{
						Target: ast.LValue{Idents: []string{"x"}},
						Op:     ast.OpAssign,
						Value:  intLit("2"),
					},
				}},
			},
		},
	}
	res, err := Generate(unit, fakeSymbols{}, Options{})
	if err == nil {
		t.Fatal("expected an error assigning to a const local variable")
	}
	if len(res.Diagnostics) != 1 {
		t.Errorf("expected exactly one diagnostic, got %d", len(res.Diagnostics))
	}
}
