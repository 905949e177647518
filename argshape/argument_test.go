package argshape

import (
	"strings"
	"testing"

	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/typeinfo"
)

func TestGenerateBareIdentifierParameter(t *testing.T) {
	got, err := Generate(Arg{Kind: ArgBareIdentifier, ExprText: "speed", IsParameter: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != "speed" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateBareIdentifierLocalNeedsAddress(t *testing.T) {
	got, err := Generate(Arg{Kind: ArgBareIdentifier, ExprText: "level"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "&level" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateBareIdentifierLocalCppNoAddress(t *testing.T) {
	got, err := Generate(Arg{Kind: ArgBareIdentifier, ExprText: "level", CppMode: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != "level" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateBareIdentifierScopeMember(t *testing.T) {
	got, err := Generate(Arg{
		Kind: ArgBareIdentifier, IsScopeMember: true, ScopeName: "Motor", BareName: "speed",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "&Motor_speed" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateLValueMember(t *testing.T) {
	got, err := Generate(Arg{Kind: ArgMemberOrArrayLValue, ExprText: "this.speed"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "&(this.speed)" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateLValueExternalCppUint8TempWraps(t *testing.T) {
	ctx := gencontext.New(gencontext.Options{})
	got, err := Generate(Arg{
		Kind: ArgMemberOrArrayLValue, ExprText: "ext.field",
		TargetParamType: typeinfo.U8, IsExternalCppStructMember: true, Ctx: ctx,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "&_cnx_tmp_") {
		t.Errorf("got %q", got)
	}
	if len(ctx.FlushTempDeclarations()) != 1 {
		t.Error("expected one temp declaration pushed")
	}
}

func TestGenerateRvalueCMode(t *testing.T) {
	got, err := Generate(Arg{Kind: ArgRvalue, ExprText: "5", TargetParamType: typeinfo.U8})
	if err != nil {
		t.Fatal(err)
	}
	if got != "&(uint8_t){5}" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateRvalueCppMode(t *testing.T) {
	got, err := Generate(Arg{Kind: ArgRvalue, ExprText: "5", CppMode: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != "5" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateCallbackSignatureMismatch(t *testing.T) {
	_, err := Generate(Arg{
		Kind: ArgCallback, CallbackFuncName: "onTick", CallbackTypeName: "TickFn",
		ActualParams: []typeinfo.TypeInfo{{BaseType: typeinfo.U8}},
		Expected:     typeinfo.CallbackTypeInfo{ReturnType: "void"},
	})
	if err == nil {
		t.Fatal("expected CallbackSignatureMismatch")
	}
}

func TestGenerateCallbackNominalMismatch(t *testing.T) {
	_, err := Generate(Arg{
		Kind: ArgCallback, CallbackFuncName: "onTick", CallbackTypeName: "TickFn",
		ActualReturnType: "int", Expected: typeinfo.CallbackTypeInfo{ReturnType: "void"},
	})
	if err == nil {
		t.Fatal("expected CallbackNominalMismatch")
	}
}

func TestGenerateCallbackOK(t *testing.T) {
	got, err := Generate(Arg{
		Kind: ArgCallback, CallbackFuncName: "onTick", CallbackTypeName: "TickFn",
		ActualReturnType: "void", Expected: typeinfo.CallbackTypeInfo{ReturnType: "void"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "onTick" {
		t.Errorf("got %q", got)
	}
}
