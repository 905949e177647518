package literal

import (
	"testing"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/typeinfo"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantForm Form
	}{
		{"decimal", "42", FormDecimal},
		{"hex", "0xFF", FormHex},
		{"binary", "0b1010", FormBinary},
		{"suffixed", "200u8", FormDecimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Evaluate(tt.text)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.text, err)
			}
			if v.Form != tt.wantForm {
				t.Errorf("Form = %v, want %v", v.Form, tt.wantForm)
			}
		})
	}
}

func TestFits(t *testing.T) {
	v, err := Evaluate("300")
	if err != nil {
		t.Fatal(err)
	}
	if err := Fits(v, typeinfo.U8); err == nil {
		t.Error("expected LiteralOutOfRange for 300 into u8")
	}
	if err := Fits(v, typeinfo.U16); err != nil {
		t.Errorf("300 should fit u16: %v", err)
	}
}

func TestFitsWidth(t *testing.T) {
	v, _ := Evaluate("15")
	if !FitsWidth(v, 4) {
		t.Error("15 should fit in a 4-bit field")
	}
	v2, _ := Evaluate("16")
	if FitsWidth(v2, 4) {
		t.Error("16 should not fit in a 4-bit field")
	}
}

func TestAsInt(t *testing.T) {
	lit := &ast.Literal{Text: "8", Kind: ast.LiteralDecimal}
	n, ok := AsInt(lit)
	if !ok || n != 8 {
		t.Errorf("AsInt = %d, %v; want 8, true", n, ok)
	}
}

func TestAsIntUnaryMinus(t *testing.T) {
	lit := &ast.Literal{Text: "8", Kind: ast.LiteralDecimal}
	neg := &ast.Unary{Op: "-", X: lit}
	n, ok := AsInt(neg)
	if !ok || n != -8 {
		t.Errorf("AsInt(-8) = %d, %v; want -8, true", n, ok)
	}
}
