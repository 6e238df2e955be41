package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rill-lang/rill/internal/token"
)

// Code identifies a diagnostic. L-codes come from the lexer, P-codes from
// the parser, R-codes from the runtime.
type Code string

const (
	ErrL001 Code = "L001" // illegal character
	ErrL002 Code = "L002" // malformed literal

	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // no parse rule for token
	ErrP003 Code = "P003" // expression too complex
	ErrP004 Code = "P004" // keyword without defined semantics
	ErrP005 Code = "P005" // invalid assignment target

	ErrR001 Code = "R001" // runtime error
)

// Diagnostic is a coded error anchored at a source token.
type Diagnostic struct {
	Code    Code
	Message string
	Lexeme  string
	Line    int
	Column  int
}

func NewError(code Code, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: message,
		Lexeme:  tok.Lexeme,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: [%s] %s", d.Line, d.Column, d.Code, d.Message)
}

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Renderer writes diagnostics to a sink, colorized when the sink is a
// terminal (or when forced by configuration).
type Renderer struct {
	Out   io.Writer
	Color bool
}

// NewRenderer builds a renderer for w. colorMode is "auto", "always" or
// "never"; "auto" enables color iff w is a terminal.
func NewRenderer(w io.Writer, colorMode string) *Renderer {
	color := false
	switch colorMode {
	case "always":
		color = true
	case "never":
		color = false
	default:
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Renderer{Out: w, Color: color}
}

// Render writes one line per diagnostic: file:line:col: [CODE] message.
func (r *Renderer) Render(file string, diags []*Diagnostic) {
	for _, d := range diags {
		if r.Color {
			fmt.Fprintf(r.Out, "%s%s:%d:%d:%s %s[%s]%s %s\n",
				ansiBold, file, d.Line, d.Column, ansiReset,
				ansiRed, d.Code, ansiReset, d.Message)
		} else {
			fmt.Fprintf(r.Out, "%s:%d:%d: [%s] %s\n", file, d.Line, d.Column, d.Code, d.Message)
		}
	}
}
