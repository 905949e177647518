// Package gencontext owns the single mutable GenerationContext the whole
// code-generation core shares (spec.md §5, §9: "generation state as an
// explicit value"). It is strictly single-threaded and non-suspending — one
// invocation, one Context, no background work. Grounded on the teacher's
// component/internal/arena.State: a plain struct with explicit Add/Get
// accessor methods, no interfaces, no hidden global state.
package gencontext

import (
	"fmt"

	"github.com/jlaustill/c-next/typeinfo"
)

// Options configures one generation invocation (spec.md §6 driver surface).
type Options struct {
	CppMode       bool
	PassByValueSet map[string]bool
}

// funcScope is the per-function-body state torn down on function exit
// (spec.md §5's second bullet: currentScope, currentFunctionName, ...,
// localVariables, localArrays, floatBitShadows, floatShadowCurrent).
type funcScope struct {
	functionName       string
	functionReturnType typeinfo.BaseType
	parameters         map[string]typeinfo.ParameterInfo
	locals             *typeinfo.Registry
	floatBitShadows    map[string]string // var name -> shadow var name
	floatShadowCurrent map[string]bool   // shadow var name -> memcpy-from-var is current
	inFunctionBody     bool
}

// Context is the explicit mutable generation state shared by every emitter
// in one invocation.
type Context struct {
	Options Options

	CurrentScope string

	fn funcScope

	expectedType    typeinfo.BaseType
	hasExpectedType bool

	pendingIncludes          map[string]bool
	includeOrder             []string
	pendingTempDeclarations  []string
	pendingCppClassAssignments []string

	tempVarCounter int

	lastArrayInitCount int
	lastArrayFillValue string
	hasArrayFillValue  bool

	Diagnostics []error
}

// New returns a fresh Context for one generate() invocation.
func New(opts Options) *Context {
	return &Context{
		Options:         opts,
		pendingIncludes: make(map[string]bool),
	}
}

// RequireInclude adds inc to the deduplicated, ordered include set.
func (c *Context) RequireInclude(inc string) {
	if c.pendingIncludes[inc] {
		return
	}
	c.pendingIncludes[inc] = true
	c.includeOrder = append(c.includeOrder, inc)
}

// Includes returns the ordered, deduplicated include set accumulated so far.
func (c *Context) Includes() []string {
	out := make([]string, len(c.includeOrder))
	copy(out, c.includeOrder)
	return out
}

// PushTempDeclaration queues a temporary-variable declaration to be flushed
// at the next statement boundary (spec.md §5 third bullet).
func (c *Context) PushTempDeclaration(decl string) {
	c.pendingTempDeclarations = append(c.pendingTempDeclarations, decl)
}

// FlushTempDeclarations returns and clears the queued temp declarations.
func (c *Context) FlushTempDeclarations() []string {
	out := c.pendingTempDeclarations
	c.pendingTempDeclarations = nil
	return out
}

// PushCppClassAssignment queues a C++-only post-declaration class-member
// assignment (used by aggregate-init workarounds in C++ mode).
func (c *Context) PushCppClassAssignment(stmt string) {
	c.pendingCppClassAssignments = append(c.pendingCppClassAssignments, stmt)
}

// FlushCppClassAssignments returns and clears the queued assignments.
func (c *Context) FlushCppClassAssignments() []string {
	out := c.pendingCppClassAssignments
	c.pendingCppClassAssignments = nil
	return out
}

// NextTempName returns a fresh, run-unique temporary variable name
// (spec.md §5: "tempVarCounter is monotonic across the entire run").
func (c *Context) NextTempName() string {
	c.tempVarCounter++
	return fmt.Sprintf("_cnx_tmp_%d", c.tempVarCounter)
}

// EnterFunction establishes per-function-body state. Call on function entry.
func (c *Context) EnterFunction(name string, returnType typeinfo.BaseType, params map[string]typeinfo.ParameterInfo) {
	c.fn = funcScope{
		functionName:       name,
		functionReturnType: returnType,
		parameters:         params,
		locals:             typeinfo.NewRegistry(),
		floatBitShadows:    make(map[string]string),
		floatShadowCurrent: make(map[string]bool),
		inFunctionBody:     true,
	}
}

// ExitFunction tears down per-function-body state, even on an error path
// (spec.md §5: "torn down on function exit, even if emission fails
// mid-body"); callers defer this immediately after EnterFunction.
func (c *Context) ExitFunction() {
	c.fn = funcScope{}
}

// InFunctionBody reports whether generation is currently inside a function.
func (c *Context) InFunctionBody() bool { return c.fn.inFunctionBody }

// CurrentFunctionName returns the function currently being generated, or ""
// at file scope.
func (c *Context) CurrentFunctionName() string { return c.fn.functionName }

// Parameter looks up a current function parameter by name.
func (c *Context) Parameter(name string) (typeinfo.ParameterInfo, bool) {
	p, ok := c.fn.parameters[name]
	return p, ok
}

// Locals returns the current function's local-variable registry.
func (c *Context) Locals() *typeinfo.Registry { return c.fn.locals }

// FloatShadowName returns the shadow-variable name for var, declaring it on
// first use (spec.md §4.5 FLOAT_BIT/FLOAT_BIT_RANGE lowering). isNew
// reports whether this call declared it.
func (c *Context) FloatShadowName(varName string) (shadow string, isNew bool) {
	if s, ok := c.fn.floatBitShadows[varName]; ok {
		return s, false
	}
	s := "__bits_" + varName
	c.fn.floatBitShadows[varName] = s
	return s, true
}

// ShadowCurrent reports whether shadow reflects var's current bits (no
// memcpy-from-var needed before the next bit write).
func (c *Context) ShadowCurrent(shadow string) bool {
	return c.fn.floatShadowCurrent[shadow]
}

// SetShadowCurrent marks shadow as reflecting var's current bits, or
// invalidates it (direct assignment to var does this).
func (c *Context) SetShadowCurrent(shadow string, current bool) {
	c.fn.floatShadowCurrent[shadow] = current
}

// PushExpectedType saves the prior expectedType and sets a new one; callers
// must defer the returned restore func (spec.md §5 first bullet).
func (c *Context) PushExpectedType(t typeinfo.BaseType) (restore func()) {
	prevType, prevHas := c.expectedType, c.hasExpectedType
	c.expectedType, c.hasExpectedType = t, true
	return func() {
		c.expectedType, c.hasExpectedType = prevType, prevHas
	}
}

// ExpectedType returns the currently pushed expected type, if any.
func (c *Context) ExpectedType() (typeinfo.BaseType, bool) {
	return c.expectedType, c.hasExpectedType
}

// SetLastArrayInitCount records the element count of the array literal the
// expression generator just emitted (spec.md §4.6), for the declaration
// emitter's empty-dimension size inference. Clears any pending fill value.
func (c *Context) SetLastArrayInitCount(n int) {
	c.lastArrayInitCount = n
	c.hasArrayFillValue = false
	c.lastArrayFillValue = ""
}

// SetLastArrayFillValue records a fill-all array literal's (`[v*]`) value
// text, with an init count of zero (spec.md §4.6).
func (c *Context) SetLastArrayFillValue(v string) {
	c.lastArrayFillValue = v
	c.hasArrayFillValue = true
	c.lastArrayInitCount = 0
}

// LastArrayInit returns the most recently recorded array literal's element
// count and, if it was a fill-all literal, its fill value.
func (c *Context) LastArrayInit() (count int, fillValue string, isFillAll bool) {
	return c.lastArrayInitCount, c.lastArrayFillValue, c.hasArrayFillValue
}

// AddDiagnostic appends a non-fatal-to-the-batch diagnostic to Diagnostics.
// Nothing in codegen calls it: Generate reports only its single fatal error.
func (c *Context) AddDiagnostic(err error) {
	c.Diagnostics = append(c.Diagnostics, err)
}
