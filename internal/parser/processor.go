package parser

import (
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/pipeline"
)

// ParserProcessor parses ctx.SourceCode into ctx.AstRoot.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Errors) > 0 {
		return ctx
	}

	p := New(lexer.New(ctx.SourceCode))
	program := p.ParseProgram()
	program.File = ctx.FilePath

	ctx.Errors = append(ctx.Errors, p.Errors()...)
	if len(ctx.Errors) == 0 {
		ctx.AstRoot = program
	}

	return ctx
}
