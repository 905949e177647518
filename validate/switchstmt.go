package validate

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/typeinfo"
)

// ValidateSwitch implements the switch half of spec.md §4.11: at least two
// clauses (MISRA 16.6, *SwitchTooFewClauses*); no `bool` selector (MISRA
// 16.7, *BoolSwitch*); no duplicate case labels (*DuplicateCase*); and, for
// an enum selector, exhaustiveness over every member, either by naming each
// one or by a `default(N)` clause whose N covers the remaining count
// (*NonExhaustiveSwitch*).
func ValidateSwitch(sw *ast.SwitchStmt, selectorType typeinfo.TypeInfo, symbols typeinfo.SymbolTable) error {
	if len(sw.Cases) < 2 {
		return errors.New(errors.PhaseValidate, errors.KindSwitchTooFewClauses).
			Detail("switch requires at least two clauses, got %d", len(sw.Cases)).
			Build()
	}
	if selectorType.BaseType == typeinfo.Bool {
		return errors.New(errors.PhaseValidate, errors.KindBoolSwitch).
			Detail("switch selector may not be bool; use if/else").
			Build()
	}

	seen := make(map[string]bool)
	var defaultCount int
	hasDefault := false
	covered := make(map[string]bool)

	for _, c := range sw.Cases {
		if c.IsDefault {
			hasDefault = true
			defaultCount = c.DefaultCount
			continue
		}
		for _, v := range c.Values {
			key := caseKey(v)
			if key != "" {
				if seen[key] {
					return errors.New(errors.PhaseValidate, errors.KindDuplicateCase).
						Detail("duplicate case label %q", key).
						Build()
				}
				seen[key] = true
				covered[lastSegment(key)] = true
			}
		}
	}

	if selectorType.IsEnum {
		members, ok := symbols.EnumMembers(selectorType.EnumTypeName)
		if ok {
			missing := make([]string, 0, len(members))
			for _, m := range members {
				if !covered[m] {
					missing = append(missing, m)
				}
			}
			if len(missing) > 0 {
				if hasDefault && defaultCount == len(missing) {
					return nil
				}
				return errors.New(errors.PhaseValidate, errors.KindNonExhaustiveSwitch).
					Detail("switch over enum %q is missing variants: %v", selectorType.EnumTypeName, missing).
					Build()
			}
		}
	}

	return nil
}

// caseKey renders a stable comparison key for a case label: the folded
// literal value, or the dotted identifier chain for an enum-member label.
func caseKey(v ast.Expr) string {
	if val, ok := literal.AsConstExpr(v); ok {
		if val.IsSigned {
			return fmt.Sprintf("i:%d", val.Signed)
		}
		return fmt.Sprintf("u:%d", val.Unsigned)
	}
	if idents, ok := flattenIdentChain(v); ok {
		return strings.Join(idents, ".")
	}
	return ""
}

func lastSegment(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}
