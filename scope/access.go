// Package scope validates cross-scope and register-access rules (parts of
// spec.md §4.8 and §4.11 that MemberSeparatorResolver defers to a dedicated
// check). Grounded on the teacher's linker/namespace.go: a small tree of
// named nodes with public/private-style resolution, simplified here since
// the symbol table (typeinfo.SymbolTable) already owns the hierarchy and
// this package only judges access, it doesn't store one.
package scope

import (
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/typeinfo"
)

// Accessor validates member-chain access against scope/register visibility
// rules, given the current generation scope (empty string at file scope).
type Accessor struct {
	Symbols      typeinfo.SymbolTable
	CurrentScope string
}

// New returns an Accessor.
func New(symbols typeinfo.SymbolTable, currentScope string) *Accessor {
	return &Accessor{Symbols: symbols, CurrentScope: currentScope}
}

// ValidateScopeMemberAccess fails with *CrossScopePrivate* when member is a
// private member of scope and the reference occurs from outside scope.
func (a *Accessor) ValidateScopeMemberAccess(scopeName, member string) error {
	if scopeName == a.CurrentScope {
		return nil
	}
	public, ok := a.Symbols.ScopeMemberVisibility(scopeName, member)
	if !ok {
		return nil // unknown member: let later classification fall through
	}
	if !public {
		return errors.New(errors.PhaseScope, errors.KindCrossScopePrivate).
			Path(scopeName, member).
			Detail("%s.%s is private to scope %s", scopeName, member, scopeName).
			Build()
	}
	return nil
}

// ValidateSelfScopeReference fails with *SelfScopeReference* when a bare
// `Scope.x` chain names the current scope, since the strict self-scope rule
// (SPEC_FULL.md §4, decision 4) requires `this.x` at that call site instead.
func (a *Accessor) ValidateSelfScopeReference(scopeName string) error {
	if scopeName == a.CurrentScope {
		return errors.New(errors.PhaseScope, errors.KindSelfScopeReference).
			Path(scopeName).
			Detail("reference to own scope %q; use this. instead", scopeName).
			Build()
	}
	return nil
}

// ValidateRegisterRead fails with *RegisterWriteOnlyRead* when regMember is
// declared write-only and is read here (isWrite false).
func (a *Accessor) ValidateRegisterRead(regMember string, isWrite bool) error {
	if isWrite {
		return nil
	}
	access, ok := a.Symbols.RegisterMemberAccess(regMember)
	if !ok {
		return nil
	}
	if access == typeinfo.AccessWriteOnly {
		return errors.New(errors.PhaseScope, errors.KindRegisterWriteOnlyRead).
			Path(regMember).
			Detail("%s is write-only", regMember).
			Build()
	}
	return nil
}

// ValidateRegisterWrite fails with *RegisterReadOnlyWrite* when regMember is
// declared read-only and is written here.
func (a *Accessor) ValidateRegisterWrite(regMember string) error {
	access, ok := a.Symbols.RegisterMemberAccess(regMember)
	if !ok {
		return nil
	}
	if access == typeinfo.AccessReadOnly {
		return errors.New(errors.PhaseScope, errors.KindRegisterReadOnlyWrite).
			Path(regMember).
			Detail("%s is read-only", regMember).
			Build()
	}
	return nil
}

// ValidateBareIdentifier fails with *BareIdentifierAmbiguous* when a bare
// identifier resolves to both a local variable and a member of the current
// scope, since the local shadows it silently otherwise. Only members of the
// current scope are checked; a local that shadows a global is not reported.
func (a *Accessor) ValidateBareIdentifier(name string, isLocal bool) error {
	if !isLocal || a.CurrentScope == "" {
		return nil
	}
	members, ok := a.Symbols.ScopeMembers(a.CurrentScope)
	if !ok {
		return nil
	}
	if members[name] {
		return errors.New(errors.PhaseScope, errors.KindBareIdentifierAmbiguous).
			Path(name).
			Detail("%q shadows a member of scope %s; qualify with this. or %s.", name, a.CurrentScope, a.CurrentScope).
			Build()
	}
	return nil
}
