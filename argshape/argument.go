// Package argshape implements ArgumentGenerator (spec.md §4.7, ADR-006
// pass-by-reference argument shaping) and ParameterDereferenceResolver
// (spec.md §4.9). Grounded on the teacher's engine/canon_lower.go: argument
// marshaling dispatched on a small closed set of structural shapes (bare
// local, lvalue, rvalue, callback), the same shape reused here for
// C-Next's call-site argument forms instead of the wasm canonical ABI's
// lift/lower value forms.
package argshape

import (
	"fmt"

	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

func typeCName(t typeinfo.BaseType) string { return typeresolve.CTypeName(t) }

// ArgKind is the structural shape of one call argument (spec.md §4.7).
type ArgKind int

const (
	ArgBareIdentifier ArgKind = iota
	ArgMemberOrArrayLValue
	ArgRvalue
	ArgCallback
)

// Arg describes one call argument to be shaped for its target parameter.
type Arg struct {
	Kind     ArgKind
	ExprText string

	// ArgBareIdentifier fields.
	IsParameter   bool
	IsLocalArray  bool
	IsScopeMember bool
	ScopeName     string
	BareName      string

	// ArgMemberOrArrayLValue fields.
	IsArraySubscript          bool
	IsExternalCppStructMember bool

	// ArgCallback fields.
	CallbackFuncName    string
	CallbackTypeName    string
	ActualReturnType    string
	ActualParams        []typeinfo.TypeInfo
	Expected            typeinfo.CallbackTypeInfo

	TargetParamType typeinfo.BaseType
	CppMode         bool
	Ctx             *gencontext.Context
}

// Generate shapes one call argument per spec.md §4.7's five rules.
func Generate(a Arg) (string, error) {
	switch a.Kind {
	case ArgBareIdentifier:
		return generateBareIdentifier(a), nil
	case ArgMemberOrArrayLValue:
		return generateLValue(a), nil
	case ArgRvalue:
		return generateRvalue(a), nil
	case ArgCallback:
		return generateCallback(a)
	default:
		return "", errors.New(errors.PhaseArgShape, errors.KindUnsupported).
			Detail("unknown argument kind").
			Build()
	}
}

// generateBareIdentifier implements rule 1.
func generateBareIdentifier(a Arg) string {
	if a.IsParameter || a.IsLocalArray {
		return a.ExprText
	}
	if a.IsScopeMember {
		name := a.ScopeName + "_" + a.BareName
		if a.CppMode {
			return name
		}
		return "&" + name
	}
	if a.CppMode {
		return a.ExprText
	}
	return "&" + a.ExprText
}

// generateLValue implements rules 2 and 3.
func generateLValue(a Arg) string {
	if !a.CppMode && a.TargetParamType == typeinfo.U8 && a.IsExternalCppStructMember {
		tmp := a.Ctx.NextTempName()
		decl := fmt.Sprintf("uint8_t %s = static_cast<uint8_t>(%s);", tmp, a.ExprText)
		a.Ctx.PushTempDeclaration(decl)
		return "&" + tmp
	}
	if a.IsArraySubscript && a.TargetParamType != typeinfo.Char {
		cast := fmt.Sprintf("reinterpret_cast<%s*>", typeCName(a.TargetParamType))
		if !a.CppMode {
			cast = fmt.Sprintf("(%s*)", typeCName(a.TargetParamType))
		}
		if a.CppMode {
			return fmt.Sprintf("%s(&(%s))", cast, a.ExprText)
		}
		return fmt.Sprintf("%s&(%s)", cast, a.ExprText)
	}
	if a.CppMode {
		return a.ExprText
	}
	return fmt.Sprintf("&(%s)", a.ExprText)
}

// generateRvalue implements rule 4.
func generateRvalue(a Arg) string {
	if a.CppMode {
		return a.ExprText
	}
	return fmt.Sprintf("&(%s){%s}", typeCName(a.TargetParamType), a.ExprText)
}

// generateCallback implements rule 5, including the nominal/signature
// validation it requires.
func generateCallback(a Arg) (string, error) {
	if len(a.ActualParams) != len(a.Expected.Params) {
		return "", errors.New(errors.PhaseArgShape, errors.KindCallbackSignatureMismatch).
			Path(a.CallbackFuncName).
			Detail("callback %s takes %d parameters, target type %s expects %d",
				a.CallbackFuncName, len(a.ActualParams), a.CallbackTypeName, len(a.Expected.Params)).
			Build()
	}
	for i, p := range a.ActualParams {
		if p.BaseType != a.Expected.Params[i].BaseType {
			return "", errors.New(errors.PhaseArgShape, errors.KindCallbackSignatureMismatch).
				Path(a.CallbackFuncName).
				Detail("callback %s parameter %d is %s, expected %s",
					a.CallbackFuncName, i, p.BaseType, a.Expected.Params[i].BaseType).
				Build()
		}
	}
	if a.ActualReturnType != a.Expected.ReturnType {
		return "", errors.New(errors.PhaseArgShape, errors.KindCallbackNominalMismatch).
			Path(a.CallbackFuncName).
			Detail("callback %s returns %s, target type %s expects %s",
				a.CallbackFuncName, a.ActualReturnType, a.CallbackTypeName, a.Expected.ReturnType).
			Build()
	}
	return a.CallbackFuncName, nil
}
