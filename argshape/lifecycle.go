package argshape

import "github.com/jlaustill/c-next/typeinfo"

// LifecycleInput describes a parameter at the point of lifecycle assignment.
type LifecycleInput struct {
	Type            typeinfo.TypeInfo
	IsCallback      bool
	IsSmallPrimitive bool
	IsModified      bool
}

// DetermineLifecycle implements ParameterDereferenceResolver's classification
// half (spec.md §4.9): a callback is CallbackPointerPrimitive; a float,
// enum, string, small unmodified primitive, array, or unknown/external type
// is pass-by-value; everything else is pass-by-reference. There is no struct
// case: a struct parameter is pass-by-reference.
func DetermineLifecycle(in LifecycleInput) typeinfo.ParameterLifecycle {
	t := in.Type
	switch {
	case in.IsCallback:
		return typeinfo.CallbackPointerPrimitive
	case t.BaseType == typeinfo.F32 || t.BaseType == typeinfo.F64 || t.BaseType == typeinfo.F96:
		return typeinfo.PassByValue
	case t.IsEnum:
		return typeinfo.PassByValue
	case t.IsString:
		return typeinfo.PassByValue
	case in.IsSmallPrimitive && !in.IsModified:
		return typeinfo.PassByValue
	case t.IsArray:
		return typeinfo.PassByValue
	case t.BaseType == typeinfo.Unknown || t.IsExternalCppType:
		return typeinfo.PassByValue
	default:
		return typeinfo.NormalByReference
	}
}

// Dereference renders a reference to parameter name per its lifecycle: `p`
// for pass-by-value, `(*p)` in C mode / `p` in C++ mode for normal-by-
// reference, and always `(*p)` when forcePointerSemantics holds (the
// parameter's primitive type was forced to a pointer to satisfy a C
// callback typedef — spec.md §3's isCallbackPointerPrimitive).
func Dereference(name string, lifecycle typeinfo.ParameterLifecycle, forcePointerSemantics, cppMode bool) string {
	if forcePointerSemantics {
		return "(*" + name + ")"
	}
	switch lifecycle {
	case typeinfo.PassByValue, typeinfo.CallbackPointerPrimitive:
		return name
	case typeinfo.NormalByReference:
		if cppMode {
			return name
		}
		return "(*" + name + ")"
	default:
		return name
	}
}
