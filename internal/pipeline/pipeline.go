package pipeline

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/token"
)

// PipelineContext carries state between stages.
type PipelineContext struct {
	FilePath   string
	SourceCode string

	Tokens  []token.Token
	AstRoot *ast.Program

	// Errors collects diagnostics from all stages.
	Errors []*diagnostics.Diagnostic

	// Evaluator, when set, is reused by the evaluation stage (the REPL
	// keeps one across inputs). Held as interface{} to keep this package
	// below the evaluator in the dependency order.
	Evaluator interface{}

	// Result is the last value produced by the evaluation stage.
	Result interface{}

	// CaptureErrors routes runtime errors to the evaluator's error sink
	// instead of failing the pipeline.
	CaptureErrors bool
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
