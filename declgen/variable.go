package declgen

import (
	"fmt"
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/exprgen"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/literal"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"
)

// Generator implements VariableDeclHelper (spec.md §4.10). It shares its
// Ctx and Exprs.Globals with the rest of one invocation's generators.
type Generator struct {
	Ctx     *gencontext.Context
	Exprs   *exprgen.Generator
	Symbols typeinfo.SymbolTable
	CppMode bool
}

// New returns a Generator backed by exprs's context and global registry.
// symbols resolves a declaration's BaseType name against the unit's known
// bitmaps/enums/structs when it isn't one of the primitive type keywords.
func New(ctx *gencontext.Context, exprs *exprgen.Generator, symbols typeinfo.SymbolTable, cppMode bool) *Generator {
	return &Generator{Ctx: ctx, Exprs: exprs, Symbols: symbols, CppMode: cppMode}
}

// resolveUserType looks a non-primitive BaseType name up against the symbol
// table, populating the bitmap/enum markers GenerateVariable's callers need
// (assign.Classify's bitmap rules, spec.md §4.6) and returning the emitted C
// type name. Unknown names (including when no symbol table is wired) still
// emit the source name rather than falling back to "int": structs and
// external C types are declared by their own name in the generated file.
func (g *Generator) resolveUserType(name string, info *typeinfo.TypeInfo) string {
	if g.Symbols != nil {
		if g.Symbols.KnownBitmaps()[name] {
			info.IsBitmap = true
			info.BitmapTypeName = name
		} else if g.Symbols.KnownEnums()[name] {
			info.IsEnum = true
			info.EnumTypeName = name
		}
	}
	return name
}

// GenerateVariable emits one declaration statement for d and registers its
// type in the appropriate registry (globals when isTopLevel, otherwise the
// current function's locals).
func (g *Generator) GenerateVariable(d *ast.VarDecl, isTopLevel bool) (string, error) {
	isString := d.StringCapacity != nil || d.IsUnsizedString
	isArray := len(d.ArrayDims) > 0 && !isString

	var dims []int
	if isArray {
		parsed, err := literal.ParseArrayDimensions(d.ArrayDims)
		if err != nil {
			return "", err
		}
		dims = parsed
	}

	base, ok := typeresolve.ParseBaseType(d.BaseType)
	if !ok {
		return "", errors.New(errors.PhaseDecl, errors.KindUnsupported).
			Detail("unknown declaration type %q for %q", d.BaseType, d.Name).
			Build()
	}

	mods, err := BuildModifiers(modifierInputFromDecl(d, isTopLevel, g.CppMode))
	if err != nil {
		return "", err
	}

	var text string
	var info typeinfo.TypeInfo

	switch {
	case isString:
		text, info, err = g.generateString(d, mods)
	case isArray:
		text, info, err = g.generateArray(d, mods, base, dims)
	default:
		text, info, err = g.generateScalar(d, mods, base)
	}
	if err != nil {
		return "", err
	}

	if isTopLevel {
		g.Exprs.Globals.DeclareGlobal(d.Name, info)
	} else {
		g.Ctx.Locals().DeclareLocal(d.Name, info)
	}
	return text, nil
}

func (g *Generator) generateScalar(d *ast.VarDecl, mods string, base typeinfo.BaseType) (string, typeinfo.TypeInfo, error) {
	info := typeinfo.TypeInfo{BaseType: base, IsConst: d.IsConst, IsAtomic: d.IsAtomic}

	typeName := typeresolve.CTypeName(base)
	if base == typeinfo.UserType {
		typeName = g.resolveUserType(d.BaseType, &info)
	}

	var initText string
	if d.Init != nil {
		restore := g.Ctx.PushExpectedType(base)
		v, err := g.Exprs.Generate(d.Init)
		restore()
		if err != nil {
			return "", info, err
		}
		initText = v
	} else {
		initText = zeroValue(base)
	}

	return fmt.Sprintf("%s%s %s = %s;", mods, typeName, d.Name, initText), info, nil
}

func (g *Generator) generateArray(d *ast.VarDecl, mods string, base typeinfo.BaseType, dims []int) (string, typeinfo.TypeInfo, error) {
	info := typeinfo.TypeInfo{BaseType: base, IsArray: true, IsConst: d.IsConst, ArrayDimensions: dims}

	typeName := typeresolve.CTypeName(base)
	if base == typeinfo.UserType {
		typeName = g.resolveUserType(d.BaseType, &info)
	}

	var initText string
	if d.Init != nil {
		restore := g.Ctx.PushExpectedType(base)
		v, err := g.Exprs.Generate(d.Init)
		restore()
		if err != nil {
			return "", info, err
		}

		count, fill, isFillAll := g.Ctx.LastArrayInit()
		resolved, err := literal.ResolveInferredSize(dims, count)
		if err != nil {
			return "", info, err
		}
		dims = resolved
		info.ArrayDimensions = dims

		if isFillAll {
			if dims[0] <= 0 {
				return "", info, errors.New(errors.PhaseDecl, errors.KindArraySizeMismatch).
					Detail("fill-all array initializer requires a known declared size").
					Build()
			}
			zeroFill := false
			if al, ok := d.Init.(*ast.ArrayLiteral); ok && al.FillElem != nil {
				n, isConst := literal.AsInt(al.FillElem)
				zeroFill = isConst && n == 0
			}
			if zeroFill {
				initText = "{0}"
			} else {
				elems := make([]string, dims[0])
				for i := range elems {
					elems[i] = fill
				}
				initText = "{" + strings.Join(elems, ", ") + "}"
			}
		} else {
			if err := literal.ValidateElementCount(dims[0], count); err != nil {
				return "", info, err
			}
			initText = v
		}
	} else {
		initText = "{0}"
	}

	return fmt.Sprintf("%s%s %s%s = %s;", mods, typeName, d.Name, dimText(dims), initText), info, nil
}

func (g *Generator) generateString(d *ast.VarDecl, mods string) (string, typeinfo.TypeInfo, error) {
	if d.IsUnsizedString && (!d.IsConst || d.Init == nil) {
		return "", typeinfo.TypeInfo{}, errors.New(errors.PhaseDecl, errors.KindCStyleArrayDeclaration).
			Detail("unsized string declaration %q is only valid for a const local initialized from a literal", d.Name).
			Build()
	}

	capacity := 0
	if d.StringCapacity != nil {
		n, ok := literal.AsInt(d.StringCapacity)
		if !ok || n <= 0 {
			return "", typeinfo.TypeInfo{}, errors.New(errors.PhaseDecl, errors.KindCStyleArrayDeclaration).
				Detail("string<N> capacity must be a positive compile-time constant").
				Build()
		}
		capacity = n
	}

	info := typeinfo.TypeInfo{
		BaseType: typeinfo.Char, IsArray: true, IsString: true, IsConst: d.IsConst,
		StringCapacity: capacity,
	}

	var initText string
	if d.Init != nil {
		restore := g.Ctx.PushExpectedType(typeinfo.Char)
		v, err := g.Exprs.Generate(d.Init)
		restore()
		if err != nil {
			return "", info, err
		}
		initText = v
		if capacity == 0 {
			if lit, ok := d.Init.(*ast.Literal); ok && lit.Kind == ast.LiteralString {
				capacity = len(lit.Text)
			}
			info.StringCapacity = capacity
		}
	} else {
		initText = `""`
	}

	dims := []int{capacity + 1}
	info.ArrayDimensions = dims
	return fmt.Sprintf("%schar %s[%d] = %s;", mods, d.Name, capacity+1, initText), info, nil
}

func dimText(dims []int) string {
	var b strings.Builder
	for _, d := range dims {
		if d == 0 {
			b.WriteString("[]")
		} else {
			fmt.Fprintf(&b, "[%d]", d)
		}
	}
	return b.String()
}

func zeroValue(base typeinfo.BaseType) string {
	switch base {
	case typeinfo.Bool:
		return "false"
	case typeinfo.F32, typeinfo.F64, typeinfo.F96:
		return "0.0"
	default:
		return "0"
	}
}
