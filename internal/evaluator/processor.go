package evaluator

import (
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/pipeline"
	"github.com/rill-lang/rill/internal/token"
)

// EvaluatorProcessor runs the evaluator over ctx.AstRoot. The REPL keeps
// one Evaluator in ctx.Evaluator across inputs; batch runs get a fresh
// instance per pipeline.
type EvaluatorProcessor struct{}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	eval, ok := ctx.Evaluator.(*Evaluator)
	if !ok || eval == nil {
		eval = New()
		ctx.Evaluator = eval
	}

	result, err := eval.Run(ctx.AstRoot, ctx.CaptureErrors)
	if err != nil {
		if rerr, ok := err.(*Error); ok {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(
				diagnostics.ErrR001,
				token.Token{Line: rerr.Line, Column: rerr.Column},
				rerr.Error(),
			))
		} else {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error()))
		}
		return ctx
	}

	ctx.Result = result
	return ctx
}
