package declgen

import "testing"

func TestBuildModifiersExternForTopLevelConstNoInitInC(t *testing.T) {
	got, err := BuildModifiers(ModifierInput{IsConst: true, IsTopLevel: true, HasInit: false})
	if err != nil {
		t.Fatal(err)
	}
	if got != "extern const " {
		t.Errorf("got %q", got)
	}
}

func TestBuildModifiersNoExternForTopLevelConstWithInitInC(t *testing.T) {
	got, err := BuildModifiers(ModifierInput{IsConst: true, IsTopLevel: true, HasInit: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != "const " {
		t.Errorf("got %q", got)
	}
}

func TestBuildModifiersExternForTopLevelConstInCpp(t *testing.T) {
	got, err := BuildModifiers(ModifierInput{IsConst: true, IsTopLevel: true, HasInit: true, CppMode: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != "extern const " {
		t.Errorf("got %q", got)
	}
}

func TestBuildModifiersAtomicVolatileConflict(t *testing.T) {
	_, err := BuildModifiers(ModifierInput{IsAtomic: true, IsVolatile: true})
	if err == nil {
		t.Fatal("expected ModifierConflict")
	}
}

func TestBuildModifiersCanonicalOrder(t *testing.T) {
	got, err := BuildModifiers(ModifierInput{IsExtern: true, IsConst: true, IsVolatile: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != "extern const volatile " {
		t.Errorf("got %q", got)
	}
}
