package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of the code-generation pipeline produced the error.
type Phase string

const (
	PhaseClassify    Phase = "classify"     // AssignmentClassifier
	PhaseLower       Phase = "lower"        // AssignmentLowerer
	PhaseResolveType Phase = "resolve_type" // TypeResolver / CastValidator
	PhaseCallGraph   Phase = "call_graph"   // CallGraphAnalyzer
	PhaseArgShape    Phase = "arg_shape"    // ArgumentGenerator (ADR-006)
	PhaseExpr        Phase = "expr"         // ExpressionGenerator
	PhaseDecl        Phase = "decl"         // DeclarationGenerators
	PhaseValidate    Phase = "validate"     // Validators
	PhaseScope       Phase = "scope"        // MemberSeparatorResolver / scope access
	PhaseLiteral     Phase = "literal"      // LiteralEvaluator / ArrayDimensionParser
)

// Kind is the closed error taxonomy from the specification (§7). Names are
// normative; the human-readable Detail string is not.
type Kind string

const (
	KindNarrowingConversion        Kind = "narrowing_conversion"
	KindSignConversion             Kind = "sign_conversion"
	KindLiteralOutOfRange          Kind = "literal_out_of_range"
	KindBitmapFieldOverflow        Kind = "bitmap_field_overflow"
	KindNegativeShift              Kind = "negative_shift"
	KindShiftExceedsWidth          Kind = "shift_exceeds_width"
	KindArrayIndexOutOfBounds      Kind = "array_index_out_of_bounds"
	KindArraySizeMismatch          Kind = "array_size_mismatch"
	KindStringLiteralOverflow      Kind = "string_literal_overflow"
	KindStringCapacityInsufficient Kind = "string_capacity_insufficient"
	KindSubstringOutOfRange        Kind = "substring_out_of_range"
	KindSubstringDestOverflow      Kind = "substring_dest_overflow"
	KindStringConcatAtGlobalScope  Kind = "string_concat_at_global_scope"
	KindFloatBitAtGlobalScope      Kind = "float_bit_at_global_scope"
	KindRegisterWriteOnlyRead      Kind = "register_write_only_read"
	KindRegisterReadOnlyWrite      Kind = "register_read_only_write"
	KindCrossScopePrivate          Kind = "cross_scope_private"
	KindSelfScopeReference         Kind = "self_scope_reference"
	KindBareIdentifierAmbiguous    Kind = "bare_identifier_ambiguous"
	KindConstAssignment            Kind = "const_assignment"
	KindConstParameterAssignment   Kind = "const_parameter_assignment"
	KindEnumMismatch               Kind = "enum_mismatch"
	KindIntegerToEnum              Kind = "integer_to_enum"
	KindNonEnumToEnum              Kind = "non_enum_to_enum"
	KindCallbackSignatureMismatch  Kind = "callback_signature_mismatch"
	KindCallbackNominalMismatch    Kind = "callback_nominal_mismatch"
	KindNonBooleanCondition        Kind = "non_boolean_condition"
	KindNestedTernary              Kind = "nested_ternary"
	KindFunctionCallInCondition    Kind = "function_call_in_condition"
	KindNonExhaustiveSwitch        Kind = "non_exhaustive_switch"
	KindDuplicateCase              Kind = "duplicate_case"
	KindBoolSwitch                 Kind = "bool_switch"
	KindSwitchTooFewClauses        Kind = "switch_too_few_clauses"
	KindEarlyExitInCriticalSection Kind = "early_exit_in_critical_section"
	KindIncludeImplementationFile  Kind = "include_implementation_file"
	KindCnxAlternativeExists       Kind = "cnx_alternative_exists"
	KindModifierConflict           Kind = "modifier_conflict"
	KindCStyleArrayDeclaration     Kind = "c_style_array_declaration"
	KindCppAggregateAtGlobal       Kind = "cpp_aggregate_at_global"
	KindUnsupportedSizeofExpression Kind = "unsupported_sizeof_expression"
	KindSizeofArrayParameter       Kind = "sizeof_array_parameter"
	KindUnsupported                Kind = "unsupported"
)

// Position is a source location, when the driving AST carries one.
type Position struct {
	Line   int
	Column int
}

// Error is the structured error type used throughout the code-generation core.
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Path     []string
	Position Position
	HasPos   bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HasPos {
		fmt.Fprintf(&b, " (%d:%d)", e.Position.Line, e.Position.Column)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by Phase and Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

// Path sets the identifier-chain path the error occurred at.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// At sets the source position.
func (b *Builder) At(line, column int) *Builder {
	b.err.Position = Position{Line: line, Column: column}
	b.err.HasPos = true
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}
