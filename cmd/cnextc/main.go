package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jlaustill/c-next/codegen"
	"github.com/jlaustill/c-next/gencontext"
)

func main() {
	var (
		inPath       = flag.String("in", "", "Path to the parsed-AST JSON document (- for stdin)")
		outPath      = flag.String("out", "", "Path to write generated source (default: stdout)")
		cppMode      = flag.Bool("cpp", false, "Emit C++ instead of C")
		passByValue  = flag.String("pass-by-value", "", "Comma-separated func.param names forced pass-by-value")
		verbose      = flag.Bool("v", false, "Verbose structured logging")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: cnextc -in <ast.json> [-out file.c] [-cpp] [-pass-by-value func.param,...]")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
			os.Exit(1)
		}
		gencontext.SetLogger(logger)
		defer logger.Sync()
	}

	if err := run(*inPath, *outPath, *cppMode, *passByValue); err != nil {
		fmt.Fprintf(os.Stderr, "cnextc: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, cppMode bool, passByValueArg string) error {
	in := os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", inPath, err)
		}
		defer f.Close()
		in = f
	}

	doc, err := decodeDocument(in)
	if err != nil {
		return err
	}

	unit, err := doc.toUnit()
	if err != nil {
		return fmt.Errorf("build AST: %w", err)
	}

	symbols, err := doc.Symbols.toSymbolTable()
	if err != nil {
		return fmt.Errorf("build symbol table: %w", err)
	}

	opts := codegen.Options{
		CppMode:        cppMode,
		PassByValueSet: passByValueSetOf(passByValueArg),
	}

	result, genErr := codegen.Generate(unit, symbols, opts)

	if len(result.Diagnostics) > 0 {
		style := newDiagnosticStyle()
		for _, d := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, style.render(d))
		}
	}
	if genErr != nil {
		if result.SourceText != "" {
			if writeErr := writeOutput(outPath, result); writeErr != nil {
				fmt.Fprintf(os.Stderr, "cnextc: writing partial output: %v\n", writeErr)
			}
		}
		return fmt.Errorf("generation failed")
	}

	return writeOutput(outPath, result)
}

func passByValueSetOf(arg string) map[string]bool {
	if arg == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, name := range strings.Split(arg, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = true
		}
	}
	return set
}

func writeOutput(outPath string, result codegen.Result) error {
	var out strings.Builder
	for _, inc := range result.Includes {
		out.WriteString("#include ")
		out.WriteString(inc)
		out.WriteByte('\n')
	}
	if len(result.Includes) > 0 {
		out.WriteByte('\n')
	}
	out.WriteString(result.SourceText)

	if outPath == "" {
		_, err := fmt.Print(out.String())
		return err
	}
	return os.WriteFile(outPath, []byte(out.String()), 0o644)
}
