// Package assign classifies an assignment statement's target into one of
// the AssignmentKinds spec.md §4.4 enumerates (AssignmentClassifier), pure
// with respect to generation state: it only reads the type registry and
// symbol table. Grounded on the teacher's component/type_resolver.go and
// component/canon.go, whose dispatch-by-structural-shape over a tagged kind
// enum is the same pattern used here, generalized from wasm canonical-ABI
// value kinds to assignment-target shapes.
package assign

// Kind is one of the classifier's ~35 terminal assignment shapes.
type Kind int

const (
	// Rule 1: special compound on a simple identifier.
	AtomicRMW Kind = iota
	OverflowClamp
	OverflowWrap

	// Rule 2: bitmap field on a simple identifier.
	BitmapFieldSingleBit
	BitmapFieldMultiBit

	// Rule 3: bitmap array element field.
	BitmapArrayElementField

	// Rule 4: register member bitmap field.
	RegisterMemberBitmapField
	ScopedRegisterMemberBitmapField

	// Rule 5: struct member bitmap field.
	StructMemberBitmapField

	// Rule 6: integer/float bit writes on a simple identifier.
	IntegerBit
	IntegerBitRange
	FloatBit
	FloatBitRange

	// Rule 7: register bit writes.
	RegisterBit
	RegisterBitRange
	ScopedRegisterBit
	ScopedRegisterBitRange

	// Rule 8: string writes.
	StringSimple
	StringStructField
	StringConcat
	StringSubstring

	// Rule 9: array writes.
	ArrayElement
	ArraySlice
	MultiDimArrayElement
	ArrayElementBit

	// Rule 10: prefix patterns.
	GlobalMember
	GlobalArray
	ThisMember
	ThisArray

	// Rule 11.
	MemberChain

	// Rule 12: fallback.
	Simple
)

func (k Kind) String() string {
	switch k {
	case AtomicRMW:
		return "ATOMIC_RMW"
	case OverflowClamp:
		return "OVERFLOW_CLAMP"
	case OverflowWrap:
		return "OVERFLOW_WRAP"
	case BitmapFieldSingleBit:
		return "BITMAP_FIELD_SINGLE_BIT"
	case BitmapFieldMultiBit:
		return "BITMAP_FIELD_MULTI_BIT"
	case BitmapArrayElementField:
		return "BITMAP_ARRAY_ELEMENT_FIELD"
	case RegisterMemberBitmapField:
		return "REGISTER_MEMBER_BITMAP_FIELD"
	case ScopedRegisterMemberBitmapField:
		return "SCOPED_REGISTER_MEMBER_BITMAP_FIELD"
	case StructMemberBitmapField:
		return "STRUCT_MEMBER_BITMAP_FIELD"
	case IntegerBit:
		return "INTEGER_BIT"
	case IntegerBitRange:
		return "INTEGER_BIT_RANGE"
	case FloatBit:
		return "FLOAT_BIT"
	case FloatBitRange:
		return "FLOAT_BIT_RANGE"
	case RegisterBit:
		return "REGISTER_BIT"
	case RegisterBitRange:
		return "REGISTER_BIT_RANGE"
	case ScopedRegisterBit:
		return "SCOPED_REGISTER_BIT"
	case ScopedRegisterBitRange:
		return "SCOPED_REGISTER_BIT_RANGE"
	case StringSimple:
		return "STRING_SIMPLE"
	case StringStructField:
		return "STRING_STRUCT_FIELD"
	case StringConcat:
		return "STRING_CONCAT"
	case StringSubstring:
		return "STRING_SUBSTRING"
	case ArrayElement:
		return "ARRAY_ELEMENT"
	case ArraySlice:
		return "ARRAY_SLICE"
	case MultiDimArrayElement:
		return "MULTI_DIM_ARRAY_ELEMENT"
	case ArrayElementBit:
		return "ARRAY_ELEMENT_BIT"
	case GlobalMember:
		return "GLOBAL_MEMBER"
	case GlobalArray:
		return "GLOBAL_ARRAY"
	case ThisMember:
		return "THIS_MEMBER"
	case ThisArray:
		return "THIS_ARRAY"
	case MemberChain:
		return "MEMBER_CHAIN"
	default:
		return "SIMPLE"
	}
}
