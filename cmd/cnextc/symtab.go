package main

import (
	"fmt"

	"github.com/jlaustill/c-next/typeinfo"
)

// symbolTableJSON is the JSON-wire shape of the facts the (out-of-scope)
// symbol collector would normally hand the core directly in-process.
type symbolTableJSON struct {
	Scopes    []string `json:"scopes"`
	Registers []string `json:"registers"`
	Structs   []string `json:"structs"`
	Bitmaps   []string `json:"bitmaps"`
	Enums     []string `json:"enums"`

	ScopeMembers    map[string][]string              `json:"scopeMembers"`
	ScopeVisibility map[string]map[string]bool        `json:"scopeVisibility"`
	BitmapFields    map[string][]bitmapFieldJSON      `json:"bitmapFields"`
	BitmapBitWidth  map[string]int                    `json:"bitmapBitWidth"`
	RegisterAccess  map[string]string                 `json:"registerAccess"`
	RegisterType    map[string]string                 `json:"registerMemberType"`
	Callbacks       map[string]callbackTypeJSON       `json:"callbacks"`
	EnumMembers     map[string][]string               `json:"enumMembers"`
	StructFields    map[string]typeInfoJSON           `json:"structFields"`
}

type bitmapFieldJSON struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
}

type callbackTypeJSON struct {
	ReturnType string         `json:"returnType"`
	Params     []typeInfoJSON `json:"params"`
}

// symbolTable implements typeinfo.SymbolTable over data decoded from a
// document's "symbols" object. The Known* sets, ScopeMembers, BitmapFields,
// CallbackType's Params and EnumMembers hand out the decoded maps and slices
// themselves; no accessor makes a copy.
type symbolTable struct {
	scopes    map[string]bool
	registers map[string]bool
	structs   map[string]bool
	bitmaps   map[string]bool
	enums     map[string]bool

	scopeMembers    map[string]map[string]bool
	scopeVisibility map[string]map[string]bool
	bitmapFields    map[string][]typeinfo.BitmapFieldInfo
	bitmapBitWidth  map[string]int
	registerAccess  map[string]typeinfo.RegisterAccess
	registerType    map[string]string
	callbacks       map[string]typeinfo.CallbackTypeInfo
	enumMembers     map[string][]string
	structFields    map[string]typeinfo.TypeInfo
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func (j symbolTableJSON) toSymbolTable() (*symbolTable, error) {
	t := &symbolTable{
		scopes:          toSet(j.Scopes),
		registers:       toSet(j.Registers),
		structs:         toSet(j.Structs),
		bitmaps:         toSet(j.Bitmaps),
		enums:           toSet(j.Enums),
		scopeMembers:    make(map[string]map[string]bool, len(j.ScopeMembers)),
		scopeVisibility: j.ScopeVisibility,
		bitmapFields:    make(map[string][]typeinfo.BitmapFieldInfo, len(j.BitmapFields)),
		bitmapBitWidth:  j.BitmapBitWidth,
		registerAccess:  make(map[string]typeinfo.RegisterAccess, len(j.RegisterAccess)),
		registerType:    j.RegisterType,
		callbacks:       make(map[string]typeinfo.CallbackTypeInfo, len(j.Callbacks)),
		enumMembers:     j.EnumMembers,
		structFields:    make(map[string]typeinfo.TypeInfo, len(j.StructFields)),
	}

	for scope, members := range j.ScopeMembers {
		t.scopeMembers[scope] = toSet(members)
	}
	for bm, fields := range j.BitmapFields {
		out := make([]typeinfo.BitmapFieldInfo, len(fields))
		for i, f := range fields {
			out[i] = typeinfo.BitmapFieldInfo{Name: f.Name, Offset: f.Offset, Width: f.Width}
		}
		t.bitmapFields[bm] = out
	}
	for regMember, access := range j.RegisterAccess {
		a, err := registerAccessOf(access)
		if err != nil {
			return nil, err
		}
		t.registerAccess[regMember] = a
	}
	for name, cb := range j.Callbacks {
		params := make([]typeinfo.TypeInfo, len(cb.Params))
		for i, p := range cb.Params {
			ti, err := p.toTypeInfo()
			if err != nil {
				return nil, err
			}
			params[i] = ti
		}
		t.callbacks[name] = typeinfo.CallbackTypeInfo{ReturnType: cb.ReturnType, Params: params}
	}
	for key, ti := range j.StructFields {
		conv, err := ti.toTypeInfo()
		if err != nil {
			return nil, err
		}
		t.structFields[key] = conv
	}

	return t, nil
}

func registerAccessOf(s string) (typeinfo.RegisterAccess, error) {
	switch s {
	case "", "rw":
		return typeinfo.AccessReadWrite, nil
	case "ro":
		return typeinfo.AccessReadOnly, nil
	case "wo":
		return typeinfo.AccessWriteOnly, nil
	default:
		return 0, fmt.Errorf("unknown register access %q", s)
	}
}

func (t *symbolTable) Lookup(name string) ([]typeinfo.Symbol, bool) { return nil, false }

func (t *symbolTable) KnownScopes() map[string]bool    { return t.scopes }
func (t *symbolTable) KnownRegisters() map[string]bool { return t.registers }
func (t *symbolTable) KnownStructs() map[string]bool   { return t.structs }
func (t *symbolTable) KnownBitmaps() map[string]bool   { return t.bitmaps }
func (t *symbolTable) KnownEnums() map[string]bool     { return t.enums }

func (t *symbolTable) ScopeMembers(scope string) (map[string]bool, bool) {
	m, ok := t.scopeMembers[scope]
	return m, ok
}

func (t *symbolTable) ScopeMemberVisibility(scope, member string) (bool, bool) {
	members, ok := t.scopeVisibility[scope]
	if !ok {
		return true, false
	}
	v, ok := members[member]
	return v, ok
}

func (t *symbolTable) BitmapFields(bitmapType string) ([]typeinfo.BitmapFieldInfo, bool) {
	f, ok := t.bitmapFields[bitmapType]
	return f, ok
}

func (t *symbolTable) BitmapBitWidth(bitmapType string) (int, bool) {
	w, ok := t.bitmapBitWidth[bitmapType]
	return w, ok
}

func (t *symbolTable) RegisterMemberAccess(regMember string) (typeinfo.RegisterAccess, bool) {
	a, ok := t.registerAccess[regMember]
	return a, ok
}

func (t *symbolTable) RegisterMemberType(regMember string) (string, bool) {
	bt, ok := t.registerType[regMember]
	return bt, ok
}

func (t *symbolTable) CallbackType(typedefName string) (typeinfo.CallbackTypeInfo, bool) {
	cb, ok := t.callbacks[typedefName]
	return cb, ok
}

func (t *symbolTable) EnumMembers(enumType string) ([]string, bool) {
	m, ok := t.enumMembers[enumType]
	return m, ok
}

func (t *symbolTable) StructFieldType(structType, field string) (typeinfo.TypeInfo, bool) {
	ti, ok := t.structFields[structType+"."+field]
	return ti, ok
}
