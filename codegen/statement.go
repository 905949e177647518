package codegen

import (
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/declgen"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/exprgen"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/validate"
)

// funcGen is the per-function statement/expression walker (spec.md §2's
// "Statement walker" / "Expression walker" boxes). One is built fresh per
// function body, sharing the run-wide Context and SymbolTable.
type funcGen struct {
	ctx     *gencontext.Context
	exprs   *exprgen.Generator
	decl    *declgen.Generator
	symbols typeinfo.SymbolTable
	globals *typeinfo.Registry
	cppMode bool
}

func indent(n int) string { return strings.Repeat("    ", n) }

// generateBlock emits every statement in b, each preceded by any temp
// declarations the expression walker queued while generating it (spec.md
// §5: "pendingTempDeclarations ... emitted before the current statement").
func (g *funcGen) generateBlock(b *ast.Block, level int) (string, error) {
	var out strings.Builder
	for _, s := range b.Stmts {
		text, err := g.generateStmt(s, level)
		if err != nil {
			return "", err
		}
		for _, temp := range g.ctx.FlushTempDeclarations() {
			out.WriteString(indent(level))
			out.WriteString(temp)
			out.WriteByte('\n')
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

func (g *funcGen) generateStmt(s ast.Stmt, level int) (string, error) {
	switch st := s.(type) {
	case *ast.VarDeclStmt:
		text, err := g.decl.GenerateVariable(st.Decl, false)
		if err != nil {
			return "", err
		}
		return indent(level) + text + "\n", nil

	case *ast.ExprStmt:
		text, err := g.exprs.Generate(st.X)
		if err != nil {
			return "", err
		}
		return indent(level) + text + ";\n", nil

	case *ast.Assignment:
		return g.generateAssignmentStmt(st, level)

	case *ast.IfStmt:
		return g.generateIf(st, level)

	case *ast.WhileStmt:
		if err := validate.ValidateBooleanCondition(st.Cond, g.exprs.Res); err != nil {
			return "", err
		}
		cond, err := g.exprs.Generate(st.Cond)
		if err != nil {
			return "", err
		}
		body, err := g.generateBlock(st.Body, level+1)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		b.WriteString(indent(level))
		b.WriteString("while (")
		b.WriteString(cond)
		b.WriteString(") {\n")
		b.WriteString(body)
		b.WriteString(indent(level))
		b.WriteString("}\n")
		return b.String(), nil

	case *ast.DoWhileStmt:
		if err := validate.ValidateBooleanCondition(st.Cond, g.exprs.Res); err != nil {
			return "", err
		}
		cond, err := g.exprs.Generate(st.Cond)
		if err != nil {
			return "", err
		}
		body, err := g.generateBlock(st.Body, level+1)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		b.WriteString(indent(level))
		b.WriteString("do {\n")
		b.WriteString(body)
		b.WriteString(indent(level))
		b.WriteString("} while (")
		b.WriteString(cond)
		b.WriteString(");\n")
		return b.String(), nil

	case *ast.SwitchStmt:
		return g.generateSwitch(st, level)

	case *ast.ReturnStmt:
		if st.Value == nil {
			return indent(level) + "return;\n", nil
		}
		text, err := g.exprs.Generate(st.Value)
		if err != nil {
			return "", err
		}
		return indent(level) + "return " + text + ";\n", nil

	case *ast.CriticalSection:
		if err := validate.ValidateCriticalSection(st.Body); err != nil {
			return "", err
		}
		body, err := g.generateBlock(st.Body, level+1)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		b.WriteString(indent(level))
		b.WriteString("__disable_irq();\n")
		b.WriteString(indent(level))
		b.WriteString("{\n")
		b.WriteString(body)
		b.WriteString(indent(level))
		b.WriteString("}\n")
		b.WriteString(indent(level))
		b.WriteString("__enable_irq();\n")
		return b.String(), nil

	case *ast.Block:
		body, err := g.generateBlock(st, level+1)
		if err != nil {
			return "", err
		}
		return indent(level) + "{\n" + body + indent(level) + "}\n", nil

	default:
		return "", errors.New(errors.PhaseDecl, errors.KindUnsupported).
			Detail("unsupported statement node %T", s).
			Build()
	}
}

func (g *funcGen) generateIf(st *ast.IfStmt, level int) (string, error) {
	if err := validate.ValidateBooleanCondition(st.Cond, g.exprs.Res); err != nil {
		return "", err
	}
	cond, err := g.exprs.Generate(st.Cond)
	if err != nil {
		return "", err
	}
	thenBody, err := g.generateBlock(st.Then, level+1)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(indent(level))
	b.WriteString("if (")
	b.WriteString(cond)
	b.WriteString(") {\n")
	b.WriteString(thenBody)
	b.WriteString(indent(level))
	b.WriteString("}")

	switch e := st.Else.(type) {
	case nil:
		b.WriteString("\n")
	case *ast.IfStmt:
		b.WriteString(" else ")
		elseText, err := g.generateIf(e, level)
		if err != nil {
			return "", err
		}
		b.WriteString(strings.TrimPrefix(elseText, indent(level)))
	case *ast.Block:
		elseBody, err := g.generateBlock(e, level+1)
		if err != nil {
			return "", err
		}
		b.WriteString(" else {\n")
		b.WriteString(elseBody)
		b.WriteString(indent(level))
		b.WriteString("}\n")
	default:
		return "", errors.New(errors.PhaseDecl, errors.KindUnsupported).
			Detail("unsupported else node %T", st.Else).
			Build()
	}
	return b.String(), nil
}

func (g *funcGen) generateSwitch(st *ast.SwitchStmt, level int) (string, error) {
	selType := g.resolveExprType(st.Selector)
	if err := validate.ValidateSwitch(st, selType, g.symbols); err != nil {
		return "", err
	}
	selText, err := g.exprs.Generate(st.Selector)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(indent(level))
	b.WriteString("switch (")
	b.WriteString(selText)
	b.WriteString(") {\n")

	for _, c := range st.Cases {
		if c.IsDefault {
			b.WriteString(indent(level + 1))
			b.WriteString("default:\n")
		} else {
			for _, v := range c.Values {
				vText, err := g.exprs.Generate(v)
				if err != nil {
					return "", err
				}
				b.WriteString(indent(level + 1))
				b.WriteString("case ")
				b.WriteString(vText)
				b.WriteString(":\n")
			}
		}
		body, err := g.generateBlock(c.Body, level+2)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString(indent(level + 2))
		b.WriteString("break;\n")
	}

	b.WriteString(indent(level))
	b.WriteString("}\n")
	return b.String(), nil
}

// resolveExprType looks up the TypeInfo of a (usually identifier) expression
// the way the classifier/validators need it: the same currentParameters,
// localVariables, globals order ExpressionGenerator's identifier resolution
// uses (spec.md §4.6), falling back to a bare BaseType from the resolver
// for anything that is not a plain identifier.
func (g *funcGen) resolveExprType(e ast.Expr) typeinfo.TypeInfo {
	if id, ok := e.(*ast.Ident); ok {
		if p, ok := g.ctx.Parameter(id.Name); ok {
			return p.TypeInfo
		}
		if t, ok := g.ctx.Locals().Lookup(id.Name); ok {
			return t
		}
		if g.globals != nil {
			if t, ok := g.globals.Lookup(id.Name); ok {
				return t
			}
		}
	}
	base, _ := g.exprs.Res.Resolve(e)
	return typeinfo.TypeInfo{BaseType: base}
}
