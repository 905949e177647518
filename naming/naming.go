// Package naming resolves the separator text between steps of an identifier
// chain (spec.md §4.8, MemberSeparatorResolver) and mangles scope-qualified
// names into their emitted C form (Scope_member). Grounded on the teacher's
// engine/names.go: small prefix-rule tables plus pure string-rewrite
// functions, rather than a general templating/formatting library.
package naming

import (
	"strings"

	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/typeinfo"
)

// Separator is the punctuation emitted before one step of a member chain.
type Separator string

const (
	SepDot       Separator = "."
	SepArrow     Separator = "->"
	SepUnderscore Separator = "_"
	SepColonColon Separator = "::"
)

// Lang selects C vs C++ emission mode, since struct-parameter access and
// namespace access differ between the two (spec.md §4.8 rules 1-2).
type Lang int

const (
	LangC Lang = iota
	LangCpp
)

// Resolver decides chain separators against a symbol table and the current
// generation scope.
type Resolver struct {
	Symbols      typeinfo.SymbolTable
	CurrentScope string
	Lang         Lang
}

// New returns a Resolver.
func New(symbols typeinfo.SymbolTable, currentScope string, lang Lang) *Resolver {
	return &Resolver{Symbols: symbols, CurrentScope: currentScope, Lang: lang}
}

// FirstStep decides the separator before the second identifier in a chain
// whose root is first, applying spec.md §4.8's first-step rules in order: C++
// namespace, struct parameter, register, scope, then the `.` fallback. The
// cross-scope rule is CrossScope; there is no scoped-register rule here.
// FirstStep performs no register or scope access validation (that lives in
// the scope package), and isTarget does not affect the result.
func (r *Resolver) FirstStep(first string, firstIsStructParam bool, isTarget bool) (Separator, error) {
	// Rule 1: C++ namespace access.
	if r.Lang == LangCpp {
		if syms, ok := r.Symbols.Lookup(first); ok {
			for _, s := range syms {
				if s.Kind == typeinfo.KindNamespace && s.SourceLanguage == typeinfo.LangCpp {
					return SepColonColon, nil
				}
			}
		}
	}

	// Rule 2: struct parameter root.
	if firstIsStructParam {
		if r.Lang == LangCpp {
			return SepDot, nil
		}
		return SepArrow, nil
	}

	// Rule 4: register.
	if r.Symbols.KnownRegisters()[first] {
		return SepUnderscore, nil
	}

	// Rule 5: scope.
	if r.Symbols.KnownScopes()[first] {
		if first == r.CurrentScope {
			return "", errors.New(errors.PhaseScope, errors.KindSelfScopeReference).
				Path(first).
				Detail("reference to own scope %q; use this. instead", first).
				Build()
		}
		return SepUnderscore, nil
	}

	// Rule 7 fallback.
	return SepDot, nil
}

// CrossScope decides the separator for a `global.Scope.x` or `global.REG.x`
// chain (spec.md §4.8 rule 3): always underscore.
func CrossScope() Separator { return SepUnderscore }

// SubsequentStep decides the separator before a later identifier in a
// chain, given whether any earlier step was a register-chain step (spec.md
// §4.8: "Subsequent steps: _ if any previous prefix is a register chain,
// else .").
func SubsequentStep(anyPriorIsRegisterChain bool) Separator {
	if anyPriorIsRegisterChain {
		return SepUnderscore
	}
	return SepDot
}

// MangleScopeMember produces the emitted C identifier for a scope-qualified
// name: "Scope_member". Used wherever a chain resolves to SepUnderscore.
func MangleScopeMember(scope, member string) string {
	return scope + "_" + member
}

// MangleChain joins a full identifier chain using per-step separators,
// e.g. ["REG", "MEMBER", "field"] with seps ["_", "."] -> "REG_MEMBER.field".
func MangleChain(idents []string, seps []Separator) string {
	if len(idents) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(idents[0])
	for i, sep := range seps {
		b.WriteString(string(sep))
		b.WriteString(idents[i+1])
	}
	return b.String()
}
