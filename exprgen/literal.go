package exprgen

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// generateLiteral implements the literal half of spec.md §4.6: integer
// literals get a MISRA 7.2 U/ULL suffix chosen from expectedType when
// the target is unsigned; float literals get an "f" suffix for f32 targets;
// binary literals (not portable C89 syntax) are rewritten to hex.
func (g *Generator) generateLiteral(e *ast.Literal) (string, error) {
	switch e.Kind {
	case ast.LiteralBool:
		return e.Text, nil
	case ast.LiteralString:
		return fmt.Sprintf("%q", e.Text), nil
	case ast.LiteralFloat:
		return g.generateFloatLiteral(e), nil
	default: // LiteralHex, LiteralBinary, LiteralDecimal
		return g.generateIntLiteral(e)
	}
}

func (g *Generator) generateFloatLiteral(e *ast.Literal) string {
	text := e.Text
	tgt, has := g.Ctx.ExpectedType()
	if has && tgt == typeinfo.F32 && !strings.HasSuffix(strings.ToLower(text), "f") {
		text += "f"
	}
	return text
}

func (g *Generator) generateIntLiteral(e *ast.Literal) (string, error) {
	text := e.Text
	if e.Kind == ast.LiteralBinary {
		v, err := literal.Evaluate(e.Text)
		if err != nil {
			return "", err
		}
		text = fmt.Sprintf("0x%X", v.Unsigned)
	}

	if e.Suffix != "" {
		return text, nil
	}

	tgt, has := g.Ctx.ExpectedType()
	if !has {
		return text, nil
	}
	return text + typeresolve.LiteralSuffix(tgt), nil
}
