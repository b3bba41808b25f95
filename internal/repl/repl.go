// Package repl implements an interactive read-compile-print loop for
// pyjs source, buffering multi-line indented blocks until a blank line
// signals the end of a unit.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/corvidlang/pyjs/internal/compiler"
)

// REPL reads pyjs source from in, compiles each completed unit, and
// writes the translated JavaScript (or the compiler's error) to out.
type REPL struct {
	in          io.Reader
	out         io.Writer
	prompt      string
	contPrompt  string
	interactive bool
}

// New returns a REPL bound to in/out. Prompts are only written when in
// is an interactive terminal, so piped input stays script-clean.
func New(in *os.File, out io.Writer, prompt, contPrompt string) *REPL {
	return &REPL{
		in:          in,
		out:         out,
		prompt:      prompt,
		contPrompt:  contPrompt,
		interactive: term.IsTerminal(int(in.Fd())),
	}
}

// Run drives the loop until in is exhausted. A blank line flushes the
// buffered block through compiler.Compile; a ":quit" or ":exit" line on
// a fresh prompt ends the session early.
func (r *REPL) Run() error {
	scanner := bufio.NewScanner(r.in)
	var buffer strings.Builder

	r.writePrompt(&buffer)

	for scanner.Scan() {
		line := scanner.Text()

		if buffer.Len() == 0 {
			switch strings.TrimSpace(line) {
			case ":quit", ":exit":
				return nil
			case "":
				r.writePrompt(&buffer)
				continue
			}
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		if strings.TrimSpace(line) != "" {
			r.writeContinuationPrompt()
			continue
		}

		r.evaluate(buffer.String())
		buffer.Reset()
		r.writePrompt(&buffer)
	}

	if strings.TrimSpace(buffer.String()) != "" {
		r.evaluate(buffer.String())
	}

	return scanner.Err()
}

func (r *REPL) evaluate(source string) {
	output, err := compiler.Compile(source)
	if err != nil {
		fmt.Fprintln(r.out, err.Error())
		return
	}
	fmt.Fprintln(r.out, output)
}

func (r *REPL) writePrompt(buffer *strings.Builder) {
	buffer.Reset()
	if r.interactive {
		fmt.Fprint(r.out, r.prompt)
	}
}

func (r *REPL) writeContinuationPrompt() {
	if r.interactive {
		fmt.Fprint(r.out, r.contPrompt)
	}
}
