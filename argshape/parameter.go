package argshape

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// ParamKind is the structural shape a parameter is rendered as (spec.md §4.7).
type ParamKind int

const (
	ParamByValue ParamKind = iota
	ParamByReference
	ParamArray
	ParamString
	ParamCallback
)

// ParameterInput is the shared record consumed by the parameter formatter,
// mirroring ArgumentGenerator's argument shapes on the declaration side.
type ParameterInput struct {
	Name             string
	Kind             ParamKind
	BaseType         typeinfo.BaseType
	TypeName         string // overrides typeresolve.CTypeName(BaseType) when set (bitmap/enum/struct names)
	ArrayDimensions  []int
	CallbackTypeName string
	SourceConst      bool
	IsModified       bool
	CppMode          bool
}

// Format renders one parameter's C/C++ declaration text per spec.md §4.7:
// callback -> `typedef_name id`; array -> `const T id[D1][D2]...`;
// string -> `const char* id`; pass-by-value -> `const T id`; pass-by-
// reference -> `const T* id` (C) / `const T& id` (C++). const is added when
// the source declares it, or automatically when the parameter was never
// observed in modifiedParameters (auto-const, spec.md §4.3).
func Format(p ParameterInput) string {
	constPrefix := ""
	if p.SourceConst || !p.IsModified {
		constPrefix = "const "
	}

	typeName := p.TypeName
	if typeName == "" {
		typeName = typeresolve.CTypeName(p.BaseType)
	}

	switch p.Kind {
	case ParamCallback:
		return fmt.Sprintf("%s %s", p.CallbackTypeName, p.Name)
	case ParamArray:
		var dims strings.Builder
		for _, d := range p.ArrayDimensions {
			if d == 0 {
				dims.WriteString("[]")
			} else {
				fmt.Fprintf(&dims, "[%d]", d)
			}
		}
		return fmt.Sprintf("%s%s %s%s", constPrefix, typeName, p.Name, dims.String())
	case ParamString:
		return fmt.Sprintf("%schar* %s", constPrefix, p.Name)
	case ParamByValue:
		return fmt.Sprintf("%s%s %s", constPrefix, typeName, p.Name)
	case ParamByReference:
		if p.CppMode {
			return fmt.Sprintf("%s%s& %s", constPrefix, typeName, p.Name)
		}
		return fmt.Sprintf("%s%s* %s", constPrefix, typeName, p.Name)
	default:
		return fmt.Sprintf("%s%s %s", constPrefix, typeName, p.Name)
	}
}
