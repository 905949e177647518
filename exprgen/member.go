package exprgen

import (
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/naming"
	"github.com/jlaustill/c-next/typeinfo"
)

// generateChainExpr renders a `.`-chain expression (*ast.Member or, at a
// chain's root, *ast.Scoped for this./global. prefixes), applying
// MemberSeparatorResolver's rules (spec.md §4.8).
func (g *Generator) generateChainExpr(e ast.Expr) (string, error) {
	prefix, idents, err := flattenChain(e)
	if err != nil {
		return "", err
	}
	return g.chainText(prefix, idents)
}

// flattenChain walks a Member/Scoped/Ident tree into its scope prefix and
// the flat list of dotted identifiers, leftmost root first.
func flattenChain(e ast.Expr) (ast.ScopePrefix, []string, error) {
	switch v := e.(type) {
	case *ast.Ident:
		return ast.PrefixNone, []string{v.Name}, nil
	case *ast.Scoped:
		_, idents, err := flattenChain(v.X)
		if err != nil {
			return ast.PrefixNone, nil, err
		}
		return v.Prefix, idents, nil
	case *ast.Member:
		prefix, idents, err := flattenChain(v.X)
		if err != nil {
			return ast.PrefixNone, nil, err
		}
		return prefix, append(idents, v.Name), nil
	default:
		return ast.PrefixNone, nil, errors.New(errors.PhaseExpr, errors.KindUnsupported).
			Detail("unsupported member-chain root %T", e).
			Build()
	}
}

// chainText mangles a flattened identifier chain to its emitted C form. The
// root and its immediate next step are joined into one mangled token
// whenever the first-step rule resolves to an underscore (register or
// scope access, spec.md §4.8 rules 3-6); every step after that mangled
// token is a plain `.` member access on the resulting value, matching the
// REG_MEMBER.field / Scope_member.field shapes spec.md §4.5 names.
func (g *Generator) chainText(prefix ast.ScopePrefix, idents []string) (string, error) {
	if len(idents) == 0 {
		return "", errors.New(errors.PhaseExpr, errors.KindUnsupported).
			Detail("empty identifier chain").
			Build()
	}
	if len(idents) == 1 && prefix == ast.PrefixNone {
		return g.generateIdent(&ast.Ident{Name: idents[0]})
	}

	var root string
	var rest []string

	switch prefix {
	case ast.PrefixGlobal:
		if len(idents) < 2 {
			return "", errors.New(errors.PhaseExpr, errors.KindUnsupported).
				Detail("global. reference requires at least a scope/register and a member").
				Build()
		}
		if err := g.Scope.ValidateScopeMemberAccess(idents[0], idents[1]); err != nil {
			return "", err
		}
		root = naming.MangleScopeMember(idents[0], idents[1])
		rest = idents[2:]

	case ast.PrefixThis:
		scopeName := g.Ctx.CurrentScope
		if len(idents) >= 2 && g.Symbols.KnownRegisters()[idents[0]] {
			regMember := idents[0] + "_" + idents[1]
			if err := g.Scope.ValidateRegisterRead(regMember, false); err != nil {
				return "", err
			}
			root = scopeName + "_" + regMember
			rest = idents[2:]
		} else {
			root = naming.MangleScopeMember(scopeName, idents[0])
			rest = idents[1:]
		}

	default:
		isStructParam := false
		if p, ok := g.Ctx.Parameter(idents[0]); ok && p.BaseType == typeinfo.UserType {
			isStructParam = true
		}
		sep, err := g.Naming.FirstStep(idents[0], isStructParam, false)
		if err != nil {
			return "", err
		}
		if len(idents) < 2 {
			return idents[0], nil
		}
		if sep == naming.SepUnderscore {
			if g.Symbols.KnownRegisters()[idents[0]] {
				if err := g.Scope.ValidateRegisterRead(idents[0]+"_"+idents[1], false); err != nil {
					return "", err
				}
			} else if g.Symbols.KnownScopes()[idents[0]] {
				if err := g.Scope.ValidateScopeMemberAccess(idents[0], idents[1]); err != nil {
					return "", err
				}
			}
			root = idents[0] + "_" + idents[1]
		} else {
			root = idents[0] + string(sep) + idents[1]
		}
		rest = idents[2:]
	}

	var b strings.Builder
	b.WriteString(root)
	for _, id := range rest {
		b.WriteString(string(naming.SepDot))
		b.WriteString(id)
	}
	return b.String(), nil
}
