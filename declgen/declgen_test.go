package declgen

import (
	"github.com/jlaustill/c-next/exprgen"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/naming"
	"github.com/jlaustill/c-next/typeinfo"
)

type fakeSymbols struct {
	bitmaps map[string]bool
	enums   map[string]bool
}

func (fakeSymbols) Lookup(name string) ([]typeinfo.Symbol, bool)            { return nil, false }
func (fakeSymbols) KnownScopes() map[string]bool                           { return nil }
func (fakeSymbols) KnownRegisters() map[string]bool                        { return nil }
func (fakeSymbols) KnownStructs() map[string]bool                          { return nil }
func (f fakeSymbols) KnownBitmaps() map[string]bool                        { return f.bitmaps }
func (f fakeSymbols) KnownEnums() map[string]bool                          { return f.enums }
func (fakeSymbols) ScopeMembers(scope string) (map[string]bool, bool)      { return nil, false }
func (fakeSymbols) ScopeMemberVisibility(scope, member string) (bool, bool) { return true, true }
func (fakeSymbols) BitmapFields(t string) ([]typeinfo.BitmapFieldInfo, bool) { return nil, false }
func (fakeSymbols) BitmapBitWidth(t string) (int, bool)                    { return 0, false }
func (fakeSymbols) RegisterMemberAccess(regMember string) (typeinfo.RegisterAccess, bool) {
	return 0, false
}
func (fakeSymbols) RegisterMemberType(regMember string) (string, bool)         { return "", false }
func (fakeSymbols) CallbackType(name string) (typeinfo.CallbackTypeInfo, bool) { return typeinfo.CallbackTypeInfo{}, false }
func (fakeSymbols) EnumMembers(t string) ([]string, bool)                      { return nil, false }
func (fakeSymbols) StructFieldType(structType, field string) (typeinfo.TypeInfo, bool) {
	return typeinfo.TypeInfo{}, false
}

func newTestGenerator(cppMode bool) (*Generator, *gencontext.Context) {
	ctx := gencontext.New(gencontext.Options{CppMode: cppMode})
	exprs := exprgen.New(ctx, fakeSymbols{}, typeinfo.NewRegistry(), naming.LangC)
	return New(ctx, exprs, fakeSymbols{}, cppMode), ctx
}
