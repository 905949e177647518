package exprgen

import "github.com/jlaustill/c-next/ast"

// ChainTextPrefix renders the first n identifiers of an assignment target's
// chain (n >= 1), applying the same separator-resolution rules a full read
// expression would (spec.md §4.8). Assignment lowering often needs a prefix
// shorter than the full chain: a bitmap field write masks the whole storage
// variable, not the dotted `var.field` text a plain read would produce.
func (g *Generator) ChainTextPrefix(l ast.LValue, n int) (string, error) {
	idents := l.Idents
	if n < len(idents) {
		idents = idents[:n]
	}
	return g.chainText(prefixOf(l.Prefix), idents)
}

// ChainText renders the target's full identifier chain, ignoring any
// subscripts (callers that need subscript text use GenerateSubscriptArgs).
func (g *Generator) ChainText(l ast.LValue) (string, error) {
	return g.chainText(prefixOf(l.Prefix), l.Idents)
}

// GenerateSubscriptArgs renders one subscript step's argument expressions to
// C/C++ text, in source order.
func (g *Generator) GenerateSubscriptArgs(step ast.SubscriptGroup) ([]string, error) {
	out := make([]string, len(step.Args))
	for i, a := range step.Args {
		text, err := g.Generate(a)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

func prefixOf(s ast.Scope) ast.ScopePrefix {
	switch s {
	case ast.ScopeThis:
		return ast.PrefixThis
	case ast.ScopeGlobal:
		return ast.PrefixGlobal
	default:
		return ast.PrefixNone
	}
}
