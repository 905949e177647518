// Package callgraph computes modifiedParameters, the fixed-point
// transitive-modification set CallGraphAnalyzer produces (spec.md §4.3).
// An unmodified parameter is reported back to the parameter emitter for
// auto-const inference and the pass-by-value optimization. Grounded on the
// teacher's component/internal/arena state pass — a monotone, iterate-to-
// fixed-point set-growth loop over a small in-memory graph, the same shape
// used there for propagating canonical-ABI liveness facts.
package callgraph

import "github.com/jlaustill/c-next/ast"

// Analyzer computes, for a whole program's function set, which parameters
// are (directly or transitively) modified.
type Analyzer struct {
	funcs map[string]*ast.FuncDecl
}

// New returns an Analyzer over funcs, keyed by function name.
func New(funcs map[string]*ast.FuncDecl) *Analyzer {
	return &Analyzer{funcs: funcs}
}

// Analyze runs the seed-then-fixed-point algorithm of spec.md §4.3 and
// returns modifiedParameters[fn] for every function in the set.
func (a *Analyzer) Analyze() map[string]map[string]bool {
	modified := make(map[string]map[string]bool, len(a.funcs))
	for name, fn := range a.funcs {
		modified[name] = directlyModified(fn)
	}

	for {
		changed := false
		for callerName, fn := range a.funcs {
			for _, call := range fn.Calls {
				calleeModified, ok := modified[call.Callee]
				if !ok {
					continue // external/unknown callee: nothing to propagate
				}
				callee := a.funcs[call.Callee]
				for argIndex, paramName := range call.ArgParamNames {
					if argIndex < 0 || argIndex >= len(callee.Params) {
						continue
					}
					formal := callee.Params[argIndex].Name
					if !calleeModified[formal] {
						continue
					}
					if modified[callerName][paramName] {
						continue
					}
					modified[callerName][paramName] = true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return modified
}

// IsConstEligible reports whether param is unmodified in fn and therefore
// eligible for auto-const inference (spec.md §4.3, §4.7).
func IsConstEligible(modified map[string]map[string]bool, fn, param string) bool {
	return !modified[fn][param]
}

// directlyModified seeds modifiedParameters[fn] from direct mutations: plain
// or compound assignments, and read-modify-write postfix chains, whose
// target roots at one of fn's own parameters.
func directlyModified(fn *ast.FuncDecl) map[string]bool {
	seed := make(map[string]bool)
	params := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		params[p.Name] = true
	}
	if fn.Body != nil {
		walkBlock(fn.Body, params, seed)
	}
	return seed
}

func walkBlock(b *ast.Block, params, seed map[string]bool) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		walkStmt(s, params, seed)
	}
}

func walkStmt(s ast.Stmt, params, seed map[string]bool) {
	switch st := s.(type) {
	case *ast.Assignment:
		root := st.Target.Root()
		if params[root] {
			seed[root] = true
		}
	case *ast.IfStmt:
		walkBlock(st.Then, params, seed)
		switch e := st.Else.(type) {
		case *ast.Block:
			walkBlock(e, params, seed)
		case *ast.IfStmt:
			walkStmt(e, params, seed)
		}
	case *ast.WhileStmt:
		walkBlock(st.Body, params, seed)
	case *ast.DoWhileStmt:
		walkBlock(st.Body, params, seed)
	case *ast.SwitchStmt:
		for _, c := range st.Cases {
			walkBlock(c.Body, params, seed)
		}
	case *ast.CriticalSection:
		walkBlock(st.Body, params, seed)
	case *ast.Block:
		walkBlock(st, params, seed)
	}
}
