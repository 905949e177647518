package assign

import (
	"testing"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/typeinfo"
)

type fakeSymbols struct {
	bitmapFields map[string][]typeinfo.BitmapFieldInfo
	registers    map[string]bool
	regMemberTy  map[string]string
	structFields map[string]typeinfo.TypeInfo
}

func (f *fakeSymbols) Lookup(name string) ([]typeinfo.Symbol, bool) { return nil, false }
func (f *fakeSymbols) KnownScopes() map[string]bool                 { return nil }
func (f *fakeSymbols) KnownRegisters() map[string]bool              { return f.registers }
func (f *fakeSymbols) KnownStructs() map[string]bool                { return nil }
func (f *fakeSymbols) KnownBitmaps() map[string]bool                { return nil }
func (f *fakeSymbols) KnownEnums() map[string]bool                  { return nil }
func (f *fakeSymbols) ScopeMembers(scope string) (map[string]bool, bool) {
	return nil, false
}
func (f *fakeSymbols) ScopeMemberVisibility(scope, member string) (bool, bool) {
	return false, false
}
func (f *fakeSymbols) BitmapFields(bitmapType string) ([]typeinfo.BitmapFieldInfo, bool) {
	v, ok := f.bitmapFields[bitmapType]
	return v, ok
}
func (f *fakeSymbols) BitmapBitWidth(bitmapType string) (int, bool) { return 0, false }
func (f *fakeSymbols) RegisterMemberAccess(regMember string) (typeinfo.RegisterAccess, bool) {
	return 0, false
}
func (f *fakeSymbols) RegisterMemberType(regMember string) (string, bool) {
	v, ok := f.regMemberTy[regMember]
	return v, ok
}
func (f *fakeSymbols) CallbackType(typedefName string) (typeinfo.CallbackTypeInfo, bool) {
	return typeinfo.CallbackTypeInfo{}, false
}
func (f *fakeSymbols) EnumMembers(enumType string) ([]string, bool) { return nil, false }
func (f *fakeSymbols) StructFieldType(structType, field string) (typeinfo.TypeInfo, bool) {
	v, ok := f.structFields[structType+"."+field]
	return v, ok
}

func TestClassifySimple(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"x"}},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U32},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != Simple {
		t.Errorf("got %v, want SIMPLE", got)
	}
}

func TestClassifyAtomicRMW(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"counter"}},
		Op:             ast.OpAddAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U32, IsAtomic: true},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != AtomicRMW {
		t.Errorf("got %v, want ATOMIC_RMW", got)
	}
}

func TestClassifyOverflowClamp(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"level"}},
		Op:             ast.OpAddAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U8, OverflowBehavior: typeinfo.OverflowClamp},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != OverflowClamp {
		t.Errorf("got %v, want OVERFLOW_CLAMP", got)
	}
}

func TestClassifyBitmapFieldSingleBit(t *testing.T) {
	sym := &fakeSymbols{bitmapFields: map[string][]typeinfo.BitmapFieldInfo{
		"Flags": {{Name: "enabled", Offset: 0, Width: 1}},
	}}
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"flags", "enabled"}},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{IsBitmap: true, BitmapTypeName: "Flags"},
		Symbols:        sym,
	}
	if got := Classify(ctx); got != BitmapFieldSingleBit {
		t.Errorf("got %v, want BITMAP_FIELD_SINGLE_BIT", got)
	}
}

func TestClassifyBitmapFieldMultiBit(t *testing.T) {
	sym := &fakeSymbols{bitmapFields: map[string][]typeinfo.BitmapFieldInfo{
		"Flags": {{Name: "mode", Offset: 1, Width: 3}},
	}}
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"flags", "mode"}},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{IsBitmap: true, BitmapTypeName: "Flags"},
		Symbols:        sym,
	}
	if got := Classify(ctx); got != BitmapFieldMultiBit {
		t.Errorf("got %v, want BITMAP_FIELD_MULTI_BIT", got)
	}
}

func TestClassifyIntegerBit(t *testing.T) {
	ctx := Context{
		Target: ast.LValue{
			Idents: []string{"reg"},
			Subscripts: map[int][]ast.SubscriptGroup{
				0: {{Args: []ast.Expr{&ast.Literal{Text: "3", Kind: ast.LiteralDecimal}}}},
			},
		},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U32},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != IntegerBit {
		t.Errorf("got %v, want INTEGER_BIT", got)
	}
}

func TestClassifyIntegerBitRange(t *testing.T) {
	ctx := Context{
		Target: ast.LValue{
			Idents: []string{"reg"},
			Subscripts: map[int][]ast.SubscriptGroup{
				0: {{Args: []ast.Expr{
					&ast.Literal{Text: "0", Kind: ast.LiteralDecimal},
					&ast.Literal{Text: "4", Kind: ast.LiteralDecimal},
				}}},
			},
		},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U32},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != IntegerBitRange {
		t.Errorf("got %v, want INTEGER_BIT_RANGE", got)
	}
}

func TestClassifyFloatBit(t *testing.T) {
	ctx := Context{
		Target: ast.LValue{
			Idents: []string{"f"},
			Subscripts: map[int][]ast.SubscriptGroup{
				0: {{Args: []ast.Expr{&ast.Literal{Text: "31", Kind: ast.LiteralDecimal}}}},
			},
		},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.F32},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != FloatBit {
		t.Errorf("got %v, want FLOAT_BIT", got)
	}
}

func TestClassifyArrayElement(t *testing.T) {
	ctx := Context{
		Target: ast.LValue{
			Idents: []string{"arr"},
			Subscripts: map[int][]ast.SubscriptGroup{
				0: {{Args: []ast.Expr{&ast.Literal{Text: "2", Kind: ast.LiteralDecimal}}}},
			},
		},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U8, IsArray: true, ArrayDimensions: []int{10}},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != ArrayElement {
		t.Errorf("got %v, want ARRAY_ELEMENT", got)
	}
}

func TestClassifyArraySlice(t *testing.T) {
	ctx := Context{
		Target: ast.LValue{
			Idents: []string{"arr"},
			Subscripts: map[int][]ast.SubscriptGroup{
				0: {{Args: []ast.Expr{
					&ast.Literal{Text: "0", Kind: ast.LiteralDecimal},
					&ast.Literal{Text: "4", Kind: ast.LiteralDecimal},
				}}},
			},
		},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U8, IsArray: true, ArrayDimensions: []int{10}},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != ArraySlice {
		t.Errorf("got %v, want ARRAY_SLICE", got)
	}
}

func TestClassifyMultiDimArrayElement(t *testing.T) {
	idx := func(n string) ast.Expr { return &ast.Literal{Text: n, Kind: ast.LiteralDecimal} }
	ctx := Context{
		Target: ast.LValue{
			Idents: []string{"grid"},
			Subscripts: map[int][]ast.SubscriptGroup{
				0: {{Args: []ast.Expr{idx("1")}}, {Args: []ast.Expr{idx("2")}}},
			},
		},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U8, IsArray: true, ArrayDimensions: []int{4, 4}},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != MultiDimArrayElement {
		t.Errorf("got %v, want MULTI_DIM_ARRAY_ELEMENT", got)
	}
}

func TestClassifyStringSimple(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"name"}},
		Op:             ast.OpAssign,
		Value:          &ast.Ident{Name: "other"},
		ResolvedTarget: typeinfo.TypeInfo{IsString: true, StringCapacity: 16},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != StringSimple {
		t.Errorf("got %v, want STRING_SIMPLE", got)
	}
}

func TestClassifyStringConcat(t *testing.T) {
	ctx := Context{
		Target: ast.LValue{Idents: []string{"name"}},
		Op:     ast.OpAssign,
		Value: &ast.Binary{Op: "+",
			X: &ast.Ident{Name: "a"}, Y: &ast.Ident{Name: "b"}},
		ResolvedTarget: typeinfo.TypeInfo{IsString: true, StringCapacity: 16},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != StringConcat {
		t.Errorf("got %v, want STRING_CONCAT", got)
	}
}

func TestClassifyThisMember(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Prefix: ast.ScopeThis, Idents: []string{"Motor", "speed"}},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U16},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != ThisMember {
		t.Errorf("got %v, want THIS_MEMBER", got)
	}
}

func TestClassifyGlobalArray(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Prefix: ast.ScopeGlobal, Idents: []string{"buf"}},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{IsArray: true, ArrayDimensions: []int{8}},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != GlobalArray {
		t.Errorf("got %v, want GLOBAL_ARRAY", got)
	}
}

func TestClassifyMemberChain(t *testing.T) {
	ctx := Context{
		Target:         ast.LValue{Idents: []string{"cfg", "sub", "field"}},
		Op:             ast.OpAssign,
		ResolvedTarget: typeinfo.TypeInfo{BaseType: typeinfo.U8},
		Symbols:        &fakeSymbols{},
	}
	if got := Classify(ctx); got != MemberChain {
		t.Errorf("got %v, want MEMBER_CHAIN", got)
	}
}
