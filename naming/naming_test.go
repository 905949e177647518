package naming

import (
	"testing"

	"github.com/jlaustill/c-next/typeinfo"
)

type fakeSymbols struct {
	scopes    map[string]bool
	registers map[string]bool
	lookups   map[string][]typeinfo.Symbol
}

func (f *fakeSymbols) Lookup(name string) ([]typeinfo.Symbol, bool) {
	s, ok := f.lookups[name]
	return s, ok
}
func (f *fakeSymbols) KnownScopes() map[string]bool    { return f.scopes }
func (f *fakeSymbols) KnownRegisters() map[string]bool { return f.registers }
func (f *fakeSymbols) KnownStructs() map[string]bool   { return nil }
func (f *fakeSymbols) KnownBitmaps() map[string]bool   { return nil }
func (f *fakeSymbols) KnownEnums() map[string]bool     { return nil }
func (f *fakeSymbols) ScopeMembers(scope string) (map[string]bool, bool) {
	return nil, false
}
func (f *fakeSymbols) ScopeMemberVisibility(scope, member string) (bool, bool) {
	return false, false
}
func (f *fakeSymbols) BitmapFields(bitmapType string) ([]typeinfo.BitmapFieldInfo, bool) {
	return nil, false
}
func (f *fakeSymbols) BitmapBitWidth(bitmapType string) (int, bool) { return 0, false }
func (f *fakeSymbols) RegisterMemberAccess(regMember string) (typeinfo.RegisterAccess, bool) {
	return 0, false
}
func (f *fakeSymbols) RegisterMemberType(regMember string) (string, bool) { return "", false }
func (f *fakeSymbols) CallbackType(typedefName string) (typeinfo.CallbackTypeInfo, bool) {
	return typeinfo.CallbackTypeInfo{}, false
}
func (f *fakeSymbols) EnumMembers(enumType string) ([]string, bool) { return nil, false }
func (f *fakeSymbols) StructFieldType(structType, field string) (typeinfo.TypeInfo, bool) {
	return typeinfo.TypeInfo{}, false
}

func newFake() *fakeSymbols {
	return &fakeSymbols{
		scopes:    map[string]bool{"Motor": true},
		registers: map[string]bool{"GPIOA": true},
		lookups:   map[string][]typeinfo.Symbol{},
	}
}

func TestFirstStepRegister(t *testing.T) {
	r := New(newFake(), "", LangC)
	sep, err := r.FirstStep("GPIOA", false, false)
	if err != nil {
		t.Fatal(err)
	}
	if sep != SepUnderscore {
		t.Errorf("got %q, want _", sep)
	}
}

func TestFirstStepScope(t *testing.T) {
	r := New(newFake(), "Other", LangC)
	sep, err := r.FirstStep("Motor", false, false)
	if err != nil {
		t.Fatal(err)
	}
	if sep != SepUnderscore {
		t.Errorf("got %q, want _", sep)
	}
}

func TestFirstStepSelfScopeReference(t *testing.T) {
	r := New(newFake(), "Motor", LangC)
	_, err := r.FirstStep("Motor", false, false)
	if err == nil {
		t.Fatal("expected SelfScopeReference error")
	}
}

func TestFirstStepStructParam(t *testing.T) {
	r := New(newFake(), "", LangC)
	sep, err := r.FirstStep("cfg", true, false)
	if err != nil {
		t.Fatal(err)
	}
	if sep != SepArrow {
		t.Errorf("C mode struct param got %q, want ->", sep)
	}

	r2 := New(newFake(), "", LangCpp)
	sep2, err := r2.FirstStep("cfg", true, false)
	if err != nil {
		t.Fatal(err)
	}
	if sep2 != SepDot {
		t.Errorf("C++ mode struct param got %q, want .", sep2)
	}
}

func TestFirstStepFallback(t *testing.T) {
	r := New(newFake(), "", LangC)
	sep, err := r.FirstStep("plainVar", false, false)
	if err != nil {
		t.Fatal(err)
	}
	if sep != SepDot {
		t.Errorf("got %q, want .", sep)
	}
}

func TestSubsequentStep(t *testing.T) {
	if SubsequentStep(true) != SepUnderscore {
		t.Error("register chain should force _")
	}
	if SubsequentStep(false) != SepDot {
		t.Error("non-register chain should use .")
	}
}

func TestMangleScopeMember(t *testing.T) {
	got := MangleScopeMember("Motor", "speed")
	if got != "Motor_speed" {
		t.Errorf("got %q, want Motor_speed", got)
	}
}

func TestMangleChain(t *testing.T) {
	got := MangleChain([]string{"GPIOA", "MODER", "field"}, []Separator{SepUnderscore, SepDot})
	want := "GPIOA_MODER.field"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
