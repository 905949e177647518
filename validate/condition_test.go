package validate

import (
	"testing"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

func TestValidateBooleanConditionAcceptsComparison(t *testing.T) {
	res := typeresolve.New(typeresolve.Env{Registry: typeinfo.NewRegistry(), Symbols: fakeSymbols{}})
	cond := &ast.Binary{Op: "<", X: &ast.Ident{Name: "a"}, Y: &ast.Literal{Text: "5", Kind: ast.LiteralDecimal}}
	if err := ValidateBooleanCondition(cond, res); err != nil {
		t.Fatal(err)
	}
}

func TestValidateBooleanConditionRejectsArithmetic(t *testing.T) {
	res := typeresolve.New(typeresolve.Env{Registry: typeinfo.NewRegistry(), Symbols: fakeSymbols{}})
	cond := &ast.Binary{Op: "+", X: &ast.Ident{Name: "a"}, Y: &ast.Literal{Text: "5", Kind: ast.LiteralDecimal}}
	if err := ValidateBooleanCondition(cond, res); err == nil {
		t.Fatal("expected NonBooleanCondition")
	}
}

func TestValidateBooleanConditionAcceptsBoolLocal(t *testing.T) {
	reg := typeinfo.NewRegistry()
	reg.DeclareLocal("ready", typeinfo.TypeInfo{BaseType: typeinfo.Bool})
	res := typeresolve.New(typeresolve.Env{Registry: reg, Symbols: fakeSymbols{}})
	if err := ValidateBooleanCondition(&ast.Ident{Name: "ready"}, res); err != nil {
		t.Fatal(err)
	}
}
