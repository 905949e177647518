package codegen

import (
	"strings"

	"github.com/jlaustill/c-next/assign"
	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/lower"
	"github.com/jlaustill/c-next/typeinfo"
)

// generateAssignmentStmt implements the statement-walker half of
// AssignmentClassifier + AssignmentLowerer (spec.md §4.4/§4.5): resolve the
// target's root TypeInfo, classify, shape a lower.Input for the classified
// kind, lower, and render the result with any setup lines it queued.
func (g *funcGen) generateAssignmentStmt(st *ast.Assignment, level int) (string, error) {
	root := st.Target.Root()
	rootType := g.resolveIdentType(root)

	// global.Scope.member / global.REG.member chains name the scope/register
	// as idents[0] (not a variable); the value actually being classified and
	// mutated is idents[1] (spec.md §4.4 rule 10's GLOBAL_MEMBER/GLOBAL_ARRAY).
	// this.member chains have no such extra ident: `this.x`'s idents[0] is
	// already the member being written.
	if st.Target.Prefix == ast.ScopeGlobal && len(st.Target.Idents) >= 2 {
		root = st.Target.Idents[1]
		rootType = g.resolveIdentType(root)
	}

	if rootType.IsConst {
		return "", errors.New(errors.PhaseClassify, errors.KindConstAssignment).
			Detail("assignment to const variable %q", root).
			Build()
	}

	kind := assign.Classify(assign.Context{
		Target:                 st.Target,
		Op:                     st.Op,
		Value:                  st.Value,
		ResolvedBaseIdentifier: root,
		ResolvedTarget:         rootType,
		CurrentScope:           g.ctx.CurrentScope,
		Symbols:                g.symbols,
	})

	in, err := g.buildLowerInput(st, kind, rootType)
	if err != nil {
		return "", err
	}

	res, err := lower.Lower(in)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, extra := range res.Extra {
		b.WriteString(indent(level))
		b.WriteString(extra)
		b.WriteByte('\n')
	}
	b.WriteString(indent(level))
	b.WriteString(res.Stmt)
	b.WriteByte('\n')
	return b.String(), nil
}

// resolveIdentType mirrors ExpressionGenerator's identifier resolution
// order (spec.md §4.6): currentParameters, then localVariables, then
// globals. A `this.`/`global.` prefix does not add an extra identifier to
// the chain (it lives in ast.LValue.Prefix), so the root name resolves
// against the same registries regardless of prefix.
func (g *funcGen) resolveIdentType(name string) typeinfo.TypeInfo {
	if p, ok := g.ctx.Parameter(name); ok {
		return p.TypeInfo
	}
	if t, ok := g.ctx.Locals().Lookup(name); ok {
		return t
	}
	if g.globals != nil {
		if t, ok := g.globals.Lookup(name); ok {
			return t
		}
	}
	return typeinfo.TypeInfo{}
}

// buildLowerInput shapes the lower.Input for one classified Kind: the
// LHSText a given kind's emitter expects is not always the full dotted
// target chain (a bitmap-field write masks the whole storage variable, not
// the field-qualified text a read would produce), so the ident-prefix
// length and the subscript/field-offset source vary per kind.
func (g *funcGen) buildLowerInput(st *ast.Assignment, kind assign.Kind, rootType typeinfo.TypeInfo) (lower.Input, error) {
	base := lower.Input{
		Ctx:        g.ctx,
		Kind:       kind,
		Target:     st.Target,
		TargetType: rootType,
		Op:         st.Op,
		Symbols:    g.symbols,
		CppMode:    g.cppMode,
	}

	switch kind {
	case assign.AtomicRMW, assign.OverflowClamp, assign.OverflowWrap,
		assign.StringStructField,
		assign.GlobalMember, assign.GlobalArray, assign.ThisMember, assign.ThisArray,
		assign.MemberChain, assign.Simple:
		lhs, err := g.exprs.ChainText(st.Target)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		return g.fillSimpleRHS(base, st.Value)

	case assign.BitmapFieldSingleBit, assign.BitmapFieldMultiBit:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		offset, width, err := g.bitmapFieldOf(rootType.BitmapTypeName, st.Target.Idents[1])
		if err != nil {
			return lower.Input{}, err
		}
		base.FieldOffset, base.BitWidth = offset, width
		return g.fillSimpleRHS(base, st.Value)

	case assign.BitmapArrayElementField:
		elemText, err := g.arrayElementText(st.Target, 1, 0)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = elemText
		offset, width, err := g.bitmapFieldOf(rootType.BitmapTypeName, st.Target.Idents[1])
		if err != nil {
			return lower.Input{}, err
		}
		base.FieldOffset, base.BitWidth = offset, width
		return g.fillSimpleRHS(base, st.Value)

	case assign.RegisterMemberBitmapField, assign.ScopedRegisterMemberBitmapField,
		assign.StructMemberBitmapField:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 2)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		bitmapType := rootType.BitmapTypeName
		if kind == assign.StructMemberBitmapField {
			if ft, ok := g.symbols.StructFieldType(g.structTypeName(st.Target.Idents[0]), st.Target.Idents[1]); ok {
				bitmapType = ft.BitmapTypeName
			}
		} else if bt, ok := g.symbols.RegisterMemberType(st.Target.Idents[0] + "_" + st.Target.Idents[1]); ok {
			bitmapType = bt
		}
		offset, width, err := g.bitmapFieldOf(bitmapType, st.Target.Idents[2])
		if err != nil {
			return lower.Input{}, err
		}
		base.FieldOffset, base.BitWidth = offset, width
		return g.fillSimpleRHS(base, st.Value)

	case assign.IntegerBit, assign.IntegerBitRange:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		if err := g.fillBitSubscript(&base, st.Target, 0, kind == assign.IntegerBitRange); err != nil {
			return lower.Input{}, err
		}
		return g.fillSimpleRHS(base, st.Value)

	case assign.FloatBit, assign.FloatBitRange:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		if err := g.fillBitSubscript(&base, st.Target, 0, kind == assign.FloatBitRange); err != nil {
			return lower.Input{}, err
		}
		// The RHS is the integer bit pattern written into the float's shadow
		// variable, not a float value, so it is generated under the shadow's
		// unsigned-integer expected type rather than the float TargetType
		// (spec.md §4.5 FLOAT_BIT/FLOAT_BIT_RANGE).
		return g.fillRHSAs(base, st.Value, floatShadowBaseType(rootType.BaseType))

	case assign.RegisterBit, assign.RegisterBitRange, assign.ScopedRegisterBit, assign.ScopedRegisterBitRange:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 2)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		isRange := kind == assign.RegisterBitRange || kind == assign.ScopedRegisterBitRange
		if err := g.fillBitSubscript(&base, st.Target, 1, isRange); err != nil {
			return lower.Input{}, err
		}
		return g.fillSimpleRHS(base, st.Value)

	case assign.StringSimple:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		return g.fillStringRHS(base, st.Value)

	case assign.StringConcat:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		bin, ok := st.Value.(*ast.Binary)
		if !ok {
			return lower.Input{}, errors.New(errors.PhaseClassify, errors.KindUnsupported).
				Detail("STRING_CONCAT requires a `+` expression").
				Build()
		}
		left, err := g.exprs.Generate(bin.X)
		if err != nil {
			return lower.Input{}, err
		}
		right, err := g.exprs.Generate(bin.Y)
		if err != nil {
			return lower.Input{}, err
		}
		base.BitExprs = []string{left, right}
		return base, nil

	case assign.StringSubstring:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		idx, ok := st.Value.(*ast.Index)
		if !ok || len(idx.Args) != 2 {
			return lower.Input{}, errors.New(errors.PhaseClassify, errors.KindUnsupported).
				Detail("STRING_SUBSTRING requires a `src[start, length]` expression").
				Build()
		}
		src, err := g.exprs.Generate(idx.X)
		if err != nil {
			return lower.Input{}, err
		}
		start, err := g.exprs.Generate(idx.Args[0])
		if err != nil {
			return lower.Input{}, err
		}
		length, err := g.exprs.Generate(idx.Args[1])
		if err != nil {
			return lower.Input{}, err
		}
		base.BitExprs = []string{src, start, length}
		return base, nil

	case assign.ArrayElement, assign.MultiDimArrayElement:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		steps := st.Target.Subscripts[0]
		args := make([]string, len(steps))
		for i, step := range steps {
			texts, err := g.exprs.GenerateSubscriptArgs(step)
			if err != nil {
				return lower.Input{}, err
			}
			args[i] = texts[0]
		}
		base.BitExprs = args
		return g.fillSimpleRHS(base, st.Value)

	case assign.ArraySlice:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		texts, err := g.exprs.GenerateSubscriptArgs(st.Target.Subscripts[0][0])
		if err != nil {
			return lower.Input{}, err
		}
		base.BitExprs = texts
		rhs, err := g.exprs.Generate(st.Value)
		if err != nil {
			return lower.Input{}, err
		}
		base.RHS = rhs
		return base, nil

	case assign.ArrayElementBit:
		lhs, err := g.exprs.ChainTextPrefix(st.Target, 1)
		if err != nil {
			return lower.Input{}, err
		}
		base.LHSText = lhs
		steps := st.Target.Subscripts[0]
		args := make([]string, len(steps))
		for i, step := range steps {
			texts, err := g.exprs.GenerateSubscriptArgs(step)
			if err != nil {
				return lower.Input{}, err
			}
			args[i] = texts[0]
		}
		base.BitExprs = args
		return g.fillSimpleRHS(base, st.Value)

	default:
		return lower.Input{}, errors.New(errors.PhaseClassify, errors.KindUnsupported).
			Detail("no lower-input builder for assignment kind %v", kind).
			Build()
	}
}

// fillSimpleRHS generates Value under the target's expected type and
// records its resolved type, the shape every non-string, non-slice kind
// needs (spec.md §4.5's closing narrowing-cast sentence).
func (g *funcGen) fillSimpleRHS(in lower.Input, value ast.Expr) (lower.Input, error) {
	return g.fillRHSAs(in, value, in.TargetType.BaseType)
}

// fillRHSAs is fillSimpleRHS with an explicit expected type, for the rare
// kind (FLOAT_BIT/FLOAT_BIT_RANGE) whose RHS is typed differently than its
// TargetType.
func (g *funcGen) fillRHSAs(in lower.Input, value ast.Expr, expected typeinfo.BaseType) (lower.Input, error) {
	restore := g.ctx.PushExpectedType(expected)
	rhs, err := g.exprs.Generate(value)
	restore()
	if err != nil {
		return lower.Input{}, err
	}
	in.RHS = rhs
	if t, ok := g.exprs.Res.Resolve(value); ok {
		in.RHSType = t
	}
	return in, nil
}

// floatShadowBaseType mirrors lower.shadowBaseType (unexported there): the
// unsigned integer width used for a float's bit-access shadow variable.
func floatShadowBaseType(t typeinfo.BaseType) typeinfo.BaseType {
	switch t {
	case typeinfo.F64, typeinfo.F96:
		return typeinfo.U64
	default:
		return typeinfo.U32
	}
}

func (g *funcGen) fillStringRHS(in lower.Input, value ast.Expr) (lower.Input, error) {
	rhs, err := g.exprs.Generate(value)
	if err != nil {
		return lower.Input{}, err
	}
	in.RHS = rhs
	return in, nil
}

// fillBitSubscript reads the single subscript group at identIdx (1 or 2
// args: bit index, or start+width) and fills BitExprs/BitWidth. Width folds
// to a compile-time constant via literal.AsInt when possible, per spec.md
// §4.5's note that BIT_RANGE masks prefer a folded literal over a runtime
// shift-and-subtract.
func (g *funcGen) fillBitSubscript(in *lower.Input, target ast.LValue, identIdx int, isRange bool) error {
	steps := target.Subscripts[identIdx]
	if len(steps) != 1 {
		return errors.New(errors.PhaseClassify, errors.KindUnsupported).
			Detail("bit/bit-range write expects exactly one subscript group").
			Build()
	}
	args, err := g.exprs.GenerateSubscriptArgs(steps[0])
	if err != nil {
		return err
	}
	in.BitExprs = args
	if isRange && len(steps[0].Args) == 2 {
		if n, ok := literal.AsInt(steps[0].Args[1]); ok {
			in.BitWidth = n
		}
	}
	return nil
}

// arrayElementText renders `base[index]` for a one-dimensional subscript at
// identIdx, keeping the element's generated index text.
func (g *funcGen) arrayElementText(target ast.LValue, prefixLen, identIdx int) (string, error) {
	base, err := g.exprs.ChainTextPrefix(target, prefixLen)
	if err != nil {
		return "", err
	}
	steps := target.Subscripts[identIdx]
	if len(steps) != 1 {
		return "", errors.New(errors.PhaseClassify, errors.KindUnsupported).
			Detail("bitmap array element field expects exactly one index subscript").
			Build()
	}
	args, err := g.exprs.GenerateSubscriptArgs(steps[0])
	if err != nil {
		return "", err
	}
	return base + "[" + args[0] + "]", nil
}

// bitmapFieldOf resolves a named field's {offset, width} from the symbol
// table's BitmapFields index.
func (g *funcGen) bitmapFieldOf(bitmapType, field string) (offset, width int, err error) {
	fields, ok := g.symbols.BitmapFields(bitmapType)
	if !ok {
		return 0, 0, errors.New(errors.PhaseClassify, errors.KindUnsupported).
			Detail("unknown bitmap type %q", bitmapType).
			Build()
	}
	for _, f := range fields {
		if f.Name == field {
			return f.Offset, f.Width, nil
		}
	}
	return 0, 0, errors.New(errors.PhaseClassify, errors.KindUnsupported).
		Detail("bitmap type %q has no field %q", bitmapType, field).
		Build()
}

// structTypeName is a best-effort lookup of a struct-typed variable's
// declared type name. TypeInfo (spec.md §3) does not carry a distinct
// struct-type-name field the way it does for enums/bitmaps (EnumTypeName,
// BitmapTypeName), so STRUCT_MEMBER_BITMAP_FIELD classification falls back
// to the variable's own name; this only resolves correctly when the symbol
// table happens to key StructFieldType by variable name too. Tracked as a
// known simplification (see DESIGN.md).
func (g *funcGen) structTypeName(varName string) string {
	return varName
}
