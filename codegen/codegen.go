// Package codegen implements the top-level Generate() orchestration (spec.md
// §2 SYSTEM OVERVIEW, §6 driver surface): call-graph analysis, then the
// declaration walker, then one statement/expression walk per function body.
// Grounded on the teacher's runtime/module.go: a single New-then-Run entry
// point that wires the narrower collaborator packages (linker, engine,
// asyncify there; callgraph, declgen, validate, assign, lower, exprgen
// here) in a fixed order, with generation state carried in one explicit
// struct rather than closed over by the walker functions.
package codegen

import (
	"sort"
	"strings"

	"github.com/jlaustill/c-next/ast"
	"github.com/jlaustill/c-next/callgraph"
	"github.com/jlaustill/c-next/declgen"
	"github.com/jlaustill/c-next/errors"
	"github.com/jlaustill/c-next/exprgen"
	"github.com/jlaustill/c-next/gencontext"
	"github.com/jlaustill/c-next/naming"
	"github.com/jlaustill/c-next/typeinfo"
	"github.com/jlaustill/c-next/typeresolve"

	"go.uber.org/multierr"
)

// Options configures one generation invocation (spec.md §6: "{cppMode,
// passByValueSet}").
type Options = gencontext.Options

// Result is generate()'s output envelope (spec.md §6): the emitted source
// text, the deduplicated ordered #include set, and any diagnostics. Per
// SPEC_FULL.md §4 decision 5, Diagnostics is always a single element on a
// fatal error, but SourceText/Includes still carry whatever was emitted
// before the failure, for a caller that wants to show partial context.
type Result struct {
	SourceText  string
	Includes    []string
	Diagnostics []error
}

// Unit is the input AST this core walks: a flat list of top-level variable
// declarations and function definitions. The out-of-scope parser/symbol
// collector (spec.md §1) is responsible for producing this from source
// text; this package never reads source itself.
type Unit struct {
	Globals   []*ast.VarDecl
	Functions []*ast.FuncDecl
}

// Generate runs the full pipeline: call-graph analysis, then globals, then
// one function at a time, accumulating source text and the include set.
// A fatal error from any stage aborts the remaining work and returns
// whatever was emitted so far alongside the single diagnostic that stopped
// generation (spec.md §7: "errors are fatal ... no local recovery").
func Generate(u Unit, symbols typeinfo.SymbolTable, opts Options) (Result, error) {
	ctx := gencontext.New(opts)
	lang := naming.LangC
	if opts.CppMode {
		lang = naming.LangCpp
	}

	globalsReg := typeinfo.NewRegistry()
	var out strings.Builder

	funcsByName := make(map[string]*ast.FuncDecl, len(u.Functions))
	for _, fn := range u.Functions {
		funcsByName[fn.Name] = fn
	}
	modified := callgraph.New(funcsByName).Analyze()

	// Globals are emitted in a pseudo function scope: EnterFunction gives
	// gencontext.Context a non-nil (empty) locals registry so exprgen's
	// Generator construction (which always reads ctx.Locals()) stays valid
	// even before any real function has been entered.
	ctx.EnterFunction("", typeinfo.Unknown, map[string]typeinfo.ParameterInfo{})
	exprsAtFile := exprgen.New(ctx, symbols, globalsReg, lang)
	declGen := declgen.New(ctx, exprsAtFile, symbols, opts.CppMode)
	for _, d := range u.Globals {
		text, err := declGen.GenerateVariable(d, true)
		if err != nil {
			ctx.ExitFunction()
			return partial(ctx, out.String(), err), err
		}
		out.WriteString(text)
		out.WriteByte('\n')
	}
	ctx.ExitFunction()

	names := make([]string, 0, len(funcsByName))
	for name := range funcsByName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fn := funcsByName[name]
		sig, err := declGen.GenerateSignature(fn, modified)
		if err != nil {
			return partial(ctx, out.String(), err), err
		}

		retType, ok := typeresolve.ParseBaseType(fn.ReturnType)
		if !ok {
			retType = typeinfo.Unknown
		}
		ctx.EnterFunction(fn.Name, retType, sig.Params)
		fnExprs := exprgen.New(ctx, symbols, globalsReg, lang)
		g := &funcGen{
			ctx:     ctx,
			exprs:   fnExprs,
			decl:    declgen.New(ctx, fnExprs, symbols, opts.CppMode),
			symbols: symbols,
			globals: globalsReg,
			cppMode: opts.CppMode,
		}

		body, err := g.generateBlock(fn.Body, 1)
		ctx.ExitFunction()
		if err != nil {
			return partial(ctx, out.String(), err), err
		}

		out.WriteString(sig.Text)
		out.WriteString(" {\n")
		out.WriteString(body)
		out.WriteString("}\n")
	}

	return Result{SourceText: out.String(), Includes: ctx.Includes(), Diagnostics: nil}, nil
}

func partial(ctx *gencontext.Context, emitted string, err error) Result {
	return Result{SourceText: emitted, Includes: ctx.Includes(), Diagnostics: []error{err}}
}

// aggregateMissingVariants folds a set of per-variant diagnostics collected
// during a switch exhaustiveness check into one *errors.Error, per
// SPEC_FULL.md §4 decision 5 / §3 DOMAIN STACK's multierr entry. Unused by
// validate.ValidateSwitch directly (that check already folds the full
// missing-variant list into one Error's Detail text), kept for a driver
// that wants to run the exhaustiveness pass across every switch in a
// function body before reporting, collecting one diagnostic per switch.
func aggregateMissingVariants(errs []error) error {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil
	}
	return errors.New(errors.PhaseValidate, errors.KindNonExhaustiveSwitch).
		Detail("%s", combined.Error()).
		Build()
}
