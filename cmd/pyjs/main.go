// Command pyjs is the CLI front end for the pyjs-to-JavaScript
// transpiler: build/check/repl subcommands wrapping internal/compiler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/corvidlang/pyjs/internal/compiler"
	"github.com/corvidlang/pyjs/internal/lexer"
	"github.com/corvidlang/pyjs/internal/parser"
	"github.com/corvidlang/pyjs/internal/repl"
	"github.com/corvidlang/pyjs/internal/semantic"
	"github.com/corvidlang/pyjs/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildFlags := flag.NewFlagSet("build", flag.ContinueOnError)
		buildFlags.SetOutput(os.Stderr)
		output := buildFlags.String("output", "", "Output file (defaults to stdout)")
		if err := buildFlags.Parse(args); err != nil {
			fmt.Fprintln(os.Stderr, "Usage: pyjs build [--output <file>] <file.py>")
			os.Exit(1)
		}
		buildArgs := buildFlags.Args()
		if len(buildArgs) < 1 {
			fmt.Fprintln(os.Stderr, "Usage: pyjs build [--output <file>] <file.py>")
			os.Exit(1)
		}
		buildCommand(buildArgs[0], *output)

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ContinueOnError)
		checkFlags.SetOutput(os.Stderr)
		tokens := checkFlags.Bool("tokens", false, "Print the token stream instead of running semantic analysis")
		if err := checkFlags.Parse(args); err != nil {
			fmt.Fprintln(os.Stderr, "Usage: pyjs check [--tokens] <file.py>")
			os.Exit(1)
		}
		checkArgs := checkFlags.Args()
		if len(checkArgs) < 1 {
			fmt.Fprintln(os.Stderr, "Usage: pyjs check [--tokens] <file.py>")
			os.Exit(1)
		}
		checkCommand(checkArgs[0], *tokens)

	case "repl":
		replCommand()

	case "version":
		fmt.Printf("pyjs version %s\n", version.Version)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "pyjs - a transpiler from a Python-shaped source subset to JavaScript")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  pyjs build [--output <file>] <file.py>  Translate a file to JavaScript")
	fmt.Fprintln(os.Stderr, "  pyjs check [--tokens] <file.py>         Run the lexer/parser/analyzer, print diagnostics")
	fmt.Fprintln(os.Stderr, "  pyjs repl                               Start an interactive translation session")
	fmt.Fprintln(os.Stderr, "  pyjs version                            Print the version")
}

func buildCommand(inputFile, outputFile string) {
	source, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	javascript, compileErr := compiler.Compile(string(source))
	if compileErr != nil {
		fmt.Fprintln(os.Stderr, compileErr)
		os.Exit(1)
	}

	if outputFile == "" {
		fmt.Println(javascript)
		return
	}

	if err := os.WriteFile(outputFile, []byte(javascript), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Compiled %s -> %s\n", inputFile, outputFile)
}

func checkCommand(inputFile string, printTokens bool) {
	source, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	if printTokens {
		tokens := lexer.NewLexer(string(source)).Tokenize()
		for _, tok := range tokens {
			fmt.Printf("%-10s %q (line %d, col %d)\n", tok.Type, tok.Lexeme, tok.Line, tok.Column)
		}
		return
	}

	tokens := lexer.NewLexer(string(source)).Tokenize()
	program, parseErr := parser.New(tokens).Parse()
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, "Error de sintaxis: "+parseErr.Error())
		os.Exit(1)
	}

	diagnostics := semantic.NewAnalyzer().Analyze(program)
	if len(diagnostics) > 0 {
		for _, d := range diagnostics {
			fmt.Fprintln(os.Stderr, d)
		}
		os.Exit(1)
	}

	fmt.Println("No diagnostics: " + strconv.Itoa(len(program.Statements)) + " top-level statements")
}

func replCommand() {
	session := repl.New(os.Stdin, os.Stdout, ">>> ", "... ")
	if err := session.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
