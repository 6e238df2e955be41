package lexer

import (
	"fmt"

	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/pipeline"
	"github.com/rill-lang/rill/internal/token"
)

// LexerProcessor tokenizes ctx.SourceCode into ctx.Tokens.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			msg := fmt.Sprintf("illegal token %q", tok.Lexeme)
			if s, ok := tok.Literal.(string); ok && s != tok.Lexeme {
				msg = fmt.Sprintf("%s: %s", msg, s)
			}
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrL001, tok, msg))
		}
		ctx.Tokens = append(ctx.Tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	return ctx
}
