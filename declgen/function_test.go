package declgen

import (
	"testing"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/exprgen"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/naming"
	"github.com/jlaustill/c-next/typeinfo"
)

func TestGenerateSignaturePassByValueSmallUnmodified(t *testing.T) {
	g, _ := newTestGenerator(false)
	fn := &ast.FuncDecl{
		Name:       "setSpeed",
		ReturnType: "bool",
		Params:     []ast.Param{{Name: "level", BaseType: "u8"}},
		Body:       &ast.Block{},
	}
	sig, err := g.GenerateSignature(fn, map[string]map[string]bool{})
	if err != nil {
		t.Fatal(err)
	}
	if sig.Text != "bool setSpeed(const uint8_t level)" {
		t.Errorf("got %q", sig.Text)
	}
}

func TestGenerateSignatureByReferenceWhenModified(t *testing.T) {
	g, _ := newTestGenerator(false)
	fn := &ast.FuncDecl{
		Name:       "inc",
		ReturnType: "bool",
		Params:     []ast.Param{{Name: "count", BaseType: "u32"}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.Assignment{Target: ast.LValue{Idents: []string{"count"}}, Op: ast.OpAddAssign},
		}},
	}
	modified := map[string]map[string]bool{"inc": {"count": true}}
	sig, err := g.GenerateSignature(fn, modified)
	if err != nil {
		t.Fatal(err)
	}
	if sig.Text != "bool inc(uint32_t* count)" {
		t.Errorf("got %q", sig.Text)
	}
}

func TestGenerateSignatureByReferenceCppUsesAmpersand(t *testing.T) {
	g, _ := newTestGenerator(true)
	fn := &ast.FuncDecl{
		Name:       "inc",
		ReturnType: "bool",
		Params:     []ast.Param{{Name: "count", BaseType: "u32"}},
	}
	modified := map[string]map[string]bool{"inc": {"count": true}}
	sig, err := g.GenerateSignature(fn, modified)
	if err != nil {
		t.Fatal(err)
	}
	if sig.Text != "bool inc(uint32_t& count)" {
		t.Errorf("got %q", sig.Text)
	}
}

func TestGenerateSignatureArrayParameter(t *testing.T) {
	g, _ := newTestGenerator(false)
	fn := &ast.FuncDecl{
		Name:       "fill",
		ReturnType: "bool",
		Params: []ast.Param{{
			Name: "buf", BaseType: "u8", IsArray: true,
			ArrayDims: []ast.Expr{&ast.Literal{Text: "8", Kind: ast.LiteralDecimal}},
		}},
	}
	sig, err := g.GenerateSignature(fn, map[string]map[string]bool{})
	if err != nil {
		t.Fatal(err)
	}
	if sig.Text != "bool fill(const uint8_t buf[8])" {
		t.Errorf("got %q", sig.Text)
	}
	if !sig.Params["buf"].TypeInfo.IsArray {
		t.Errorf("expected buf's recorded TypeInfo to be an array")
	}
}

func TestGenerateSignatureBitmapParameterUsesSourceTypeName(t *testing.T) {
	ctx := gencontext.New(gencontext.Options{})
	symbols := fakeSymbols{bitmaps: map[string]bool{"StatusFlags": true}}
	exprs := exprgen.New(ctx, symbols, typeinfo.NewRegistry(), naming.LangC)
	g := New(ctx, exprs, symbols, false)

	fn := &ast.FuncDecl{
		Name:       "apply",
		ReturnType: "bool",
		Params:     []ast.Param{{Name: "flags", BaseType: "StatusFlags"}},
	}
	sig, err := g.GenerateSignature(fn, map[string]map[string]bool{})
	if err != nil {
		t.Fatal(err)
	}
	if sig.Text != "bool apply(const StatusFlags* flags)" {
		t.Errorf("got %q", sig.Text)
	}
	if !sig.Params["flags"].TypeInfo.IsBitmap || sig.Params["flags"].TypeInfo.BitmapTypeName != "StatusFlags" {
		t.Errorf("expected flags param to carry IsBitmap/BitmapTypeName, got %+v", sig.Params["flags"])
	}
}

func TestGenerateSignatureCallback(t *testing.T) {
	g, _ := newTestGenerator(false)
	fn := &ast.FuncDecl{
		Name:       "onTick",
		ReturnType: "bool",
		Params: []ast.Param{{
			Name: "cb", IsCallback: true, CallbackTypeName: "TickFn",
		}},
	}
	sig, err := g.GenerateSignature(fn, map[string]map[string]bool{})
	if err != nil {
		t.Fatal(err)
	}
	if sig.Text != "bool onTick(TickFn cb)" {
		t.Errorf("got %q", sig.Text)
	}
}
