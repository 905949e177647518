package validate

import (
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
)

// ValidateCriticalSection implements spec.md §4.11's critical-section rule:
// `return` is forbidden anywhere transitively inside body, since leaving a
// critical section early would skip whatever re-enables interrupts after it.
func ValidateCriticalSection(body *ast.Block) error {
	if hasReturn(body) {
		return errors.New(errors.PhaseValidate, errors.KindEarlyExitInCriticalSection).
			Detail("return is not allowed inside a critical section").
			Build()
	}
	return nil
}

func hasReturn(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		if stmtHasReturn(s) {
			return true
		}
	}
	return false
}

func stmtHasReturn(s ast.Stmt) bool {
	switch v := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		if hasReturn(v.Then) {
			return true
		}
		switch e := v.Else.(type) {
		case *ast.Block:
			return hasReturn(e)
		case *ast.IfStmt:
			return stmtHasReturn(e)
		}
		return false
	case *ast.WhileStmt:
		return hasReturn(v.Body)
	case *ast.DoWhileStmt:
		return hasReturn(v.Body)
	case *ast.SwitchStmt:
		for _, c := range v.Cases {
			if hasReturn(c.Body) {
				return true
			}
		}
		return false
	case *ast.CriticalSection:
		return hasReturn(v.Body)
	case *ast.Block:
		return hasReturn(v)
	default:
		return false
	}
}
