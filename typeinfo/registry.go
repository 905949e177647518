package typeinfo

import (
	"github.com/jlaustill/c-next/errors"
)

// Registry is the generation-state-scoped map of name -> TypeInfo for
// currently visible variables (spec.md §3 GenerationState.typeRegistry).
// Entries enter on declaration and exit on function-body close for locals,
// or remain for globals — callers manage that lifetime via DeclareLocal and
// ExitFunction below,
// mirroring the teacher's State index-space add/get accessors
// (component/internal/arena/state.go) adapted from append-only index spaces
// to a name-keyed, exit-able scope.
type Registry struct {
	globals map[string]TypeInfo
	locals  map[string]TypeInfo
	order   []string // insertion order of locals, for deterministic Exit
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		globals: make(map[string]TypeInfo),
		locals:  make(map[string]TypeInfo),
	}
}

// DeclareGlobal registers a file-scope variable's type. Globals never exit.
func (r *Registry) DeclareGlobal(name string, t TypeInfo) {
	r.globals[name] = t.Clone()
}

// DeclareLocal registers a function-scope variable's type.
func (r *Registry) DeclareLocal(name string, t TypeInfo) {
	if _, exists := r.locals[name]; !exists {
		r.order = append(r.order, name)
	}
	r.locals[name] = t.Clone()
}

// Lookup returns the type of name, preferring locals over globals (matching
// the resolution order ExpressionGenerator uses: currentParameters, then
// localVariables, then scope members, then globals).
func (r *Registry) Lookup(name string) (TypeInfo, bool) {
	if t, ok := r.locals[name]; ok {
		return t.Clone(), true
	}
	if t, ok := r.globals[name]; ok {
		return t.Clone(), true
	}
	return TypeInfo{}, false
}

// ExitFunction clears all local entries, as if the function body just
// closed (spec.md §5: torn down on function exit, even on error paths).
func (r *Registry) ExitFunction() {
	r.locals = make(map[string]TypeInfo)
	r.order = nil
}

// MustLookup is a convenience for call sites that have already validated
// existence and want a hard failure otherwise.
func (r *Registry) MustLookup(name string) (TypeInfo, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return TypeInfo{}, errors.New(errors.PhaseResolveType, errors.KindUnsupported).
			Path(name).
			Detail("no type registered for identifier %q", name).
			Build()
	}
	return t, nil
}
