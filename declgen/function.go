package declgen

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/argshape"
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/callgraph"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// maxSmallPrimitiveWidth is the widest integer width ArgumentGenerator/
// ParameterDereferenceResolver still treats as "small" for the unmodified-
// primitive pass-by-value rule (spec.md §4.9).
const maxSmallPrimitiveWidth = 32

// Signature is a generated function's C/C++ header text plus the
// ParameterInfo map EnterFunction needs for the body walk.
type Signature struct {
	Text   string
	Params map[string]typeinfo.ParameterInfo
}

// GenerateSignature implements the function half of DeclarationGenerators:
// resolves each parameter's lifecycle (ArgumentGenerator/
// ParameterDereferenceResolver, spec.md §4.7/§4.9) against the call graph's
// modified-parameter set, formats its declaration text, and assembles the
// full `ReturnType name(params...)` header.
func (g *Generator) GenerateSignature(fn *ast.FuncDecl, modified map[string]map[string]bool) (Signature, error) {
	retType, ok := typeresolve.ParseBaseType(fn.ReturnType)
	if !ok {
		retType = typeinfo.Unknown
	}
	retTypeName := typeresolve.CTypeName(retType)
	if retType == typeinfo.UserType {
		retTypeName = fn.ReturnType
	}

	parts := make([]string, len(fn.Params))
	params := make(map[string]typeinfo.ParameterInfo, len(fn.Params))

	for i, p := range fn.Params {
		info, err := g.parameterInfo(fn.Name, p, modified)
		if err != nil {
			return Signature{}, err
		}
		params[p.Name] = info
		parts[i] = g.formatParameter(p, info)
	}

	text := fmt.Sprintf("%s %s(%s)", retTypeName, fn.Name, strings.Join(parts, ", "))
	return Signature{Text: text, Params: params}, nil
}

func (g *Generator) parameterInfo(fnName string, p ast.Param, modified map[string]map[string]bool) (typeinfo.ParameterInfo, error) {
	base, ok := typeresolve.ParseBaseType(p.BaseType)
	if !ok {
		base = typeinfo.Unknown
	}

	var dims []int
	if p.IsArray {
		dims = make([]int, len(p.ArrayDims))
		for i, d := range p.ArrayDims {
			if n, ok := literal.AsInt(d); ok {
				dims[i] = n
			}
		}
	}

	t := typeinfo.TypeInfo{
		BaseType:        base,
		IsArray:         p.IsArray,
		IsConst:         p.IsConst,
		IsString:        p.IsString,
		IsParameter:     true,
		ArrayDimensions: dims,
	}
	if base == typeinfo.UserType {
		g.resolveUserType(p.BaseType, &t)
	}

	isModified := !callgraph.IsConstEligible(modified, fnName, p.Name)
	isSmall := typeresolve.Width(base) > 0 && typeresolve.Width(base) <= maxSmallPrimitiveWidth

	lifecycle := argshape.DetermineLifecycle(argshape.LifecycleInput{
		Type:             t,
		IsCallback:       p.IsCallback,
		IsSmallPrimitive: isSmall,
		IsModified:       isModified,
	})

	forcePointer := p.IsCallback && lifecycle == typeinfo.CallbackPointerPrimitive && !p.IsArray && !p.IsString

	return typeinfo.ParameterInfo{
		TypeInfo:                   t,
		Lifecycle:                  lifecycle,
		IsCallbackPointerPrimitive: forcePointer,
		IsModified:                 isModified,
	}, nil
}

func (g *Generator) formatParameter(p ast.Param, info typeinfo.ParameterInfo) string {
	kind := argshape.ParamByValue
	switch {
	case p.IsCallback:
		kind = argshape.ParamCallback
	case p.IsArray:
		kind = argshape.ParamArray
	case p.IsString:
		kind = argshape.ParamString
	case info.Lifecycle == typeinfo.NormalByReference:
		kind = argshape.ParamByReference
	}

	typeName := ""
	if info.BaseType == typeinfo.UserType {
		typeName = p.BaseType
	}

	return argshape.Format(argshape.ParameterInput{
		Name:             p.Name,
		Kind:             kind,
		BaseType:         info.BaseType,
		TypeName:         typeName,
		ArrayDimensions:  info.ArrayDimensions,
		CallbackTypeName: p.CallbackTypeName,
		SourceConst:      p.IsConst,
		IsModified:       info.IsModified,
		CppMode:          g.CppMode,
	})
}
