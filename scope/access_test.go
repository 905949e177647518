package scope

import (
	"testing"

	"github.com/jlaustill/c-next/typeinfo"
)

type fakeSymbols struct {
	visibility map[string]bool
	members    map[string]map[string]bool
	regAccess  map[string]typeinfo.RegisterAccess
}

func (f *fakeSymbols) Lookup(name string) ([]typeinfo.Symbol, bool) { return nil, false }
func (f *fakeSymbols) KnownScopes() map[string]bool                 { return nil }
func (f *fakeSymbols) KnownRegisters() map[string]bool              { return nil }
func (f *fakeSymbols) KnownStructs() map[string]bool                { return nil }
func (f *fakeSymbols) KnownBitmaps() map[string]bool                { return nil }
func (f *fakeSymbols) KnownEnums() map[string]bool                  { return nil }
func (f *fakeSymbols) ScopeMembers(scope string) (map[string]bool, bool) {
	m, ok := f.members[scope]
	return m, ok
}
func (f *fakeSymbols) ScopeMemberVisibility(scopeName, member string) (bool, bool) {
	public, ok := f.visibility[scopeName+"."+member]
	return public, ok
}
func (f *fakeSymbols) BitmapFields(bitmapType string) ([]typeinfo.BitmapFieldInfo, bool) {
	return nil, false
}
func (f *fakeSymbols) BitmapBitWidth(bitmapType string) (int, bool) { return 0, false }
func (f *fakeSymbols) RegisterMemberAccess(regMember string) (typeinfo.RegisterAccess, bool) {
	a, ok := f.regAccess[regMember]
	return a, ok
}
func (f *fakeSymbols) RegisterMemberType(regMember string) (string, bool) { return "", false }
func (f *fakeSymbols) CallbackType(typedefName string) (typeinfo.CallbackTypeInfo, bool) {
	return typeinfo.CallbackTypeInfo{}, false
}
func (f *fakeSymbols) EnumMembers(enumType string) ([]string, bool) { return nil, false }
func (f *fakeSymbols) StructFieldType(structType, field string) (typeinfo.TypeInfo, bool) {
	return typeinfo.TypeInfo{}, false
}

func TestValidateScopeMemberAccessPrivate(t *testing.T) {
	sym := &fakeSymbols{visibility: map[string]bool{"Motor.internal": false}}
	a := New(sym, "Other")
	if err := a.ValidateScopeMemberAccess("Motor", "internal"); err == nil {
		t.Fatal("expected CrossScopePrivate error")
	}
}

func TestValidateScopeMemberAccessPublic(t *testing.T) {
	sym := &fakeSymbols{visibility: map[string]bool{"Motor.speed": true}}
	a := New(sym, "Other")
	if err := a.ValidateScopeMemberAccess("Motor", "speed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateScopeMemberAccessSameScope(t *testing.T) {
	sym := &fakeSymbols{visibility: map[string]bool{"Motor.internal": false}}
	a := New(sym, "Motor")
	if err := a.ValidateScopeMemberAccess("Motor", "internal"); err != nil {
		t.Fatalf("same-scope access should never be rejected: %v", err)
	}
}

func TestValidateSelfScopeReference(t *testing.T) {
	a := New(&fakeSymbols{}, "Motor")
	if err := a.ValidateSelfScopeReference("Motor"); err == nil {
		t.Fatal("expected SelfScopeReference error")
	}
	if err := a.ValidateSelfScopeReference("Other"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRegisterRead(t *testing.T) {
	sym := &fakeSymbols{regAccess: map[string]typeinfo.RegisterAccess{"GPIOA_ODR": typeinfo.AccessWriteOnly}}
	a := New(sym, "")
	if err := a.ValidateRegisterRead("GPIOA_ODR", false); err == nil {
		t.Fatal("expected RegisterWriteOnlyRead error")
	}
	if err := a.ValidateRegisterRead("GPIOA_ODR", true); err != nil {
		t.Fatalf("write access should not trip read check: %v", err)
	}
}

func TestValidateRegisterWrite(t *testing.T) {
	sym := &fakeSymbols{regAccess: map[string]typeinfo.RegisterAccess{"GPIOA_IDR": typeinfo.AccessReadOnly}}
	a := New(sym, "")
	if err := a.ValidateRegisterWrite("GPIOA_IDR"); err == nil {
		t.Fatal("expected RegisterReadOnlyWrite error")
	}
}

func TestValidateBareIdentifier(t *testing.T) {
	sym := &fakeSymbols{members: map[string]map[string]bool{"Motor": {"speed": true}}}
	a := New(sym, "Motor")
	if err := a.ValidateBareIdentifier("speed", true); err == nil {
		t.Fatal("expected BareIdentifierAmbiguous error")
	}
	if err := a.ValidateBareIdentifier("other", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.ValidateBareIdentifier("speed", false); err != nil {
		t.Fatalf("non-local should never trip: %v", err)
	}
}
