package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rill-lang/rill/internal/config"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/evaluator"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/parser"
	"github.com/rill-lang/rill/internal/pipeline"
)

const Version = "0.3.0"

// IsSourceFile checks if a path has a recognized source extension.
func IsSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EvaluatorProcessor{},
	)
}

// RunSource runs one source text through the full pipeline against the
// given evaluator (a nil evaluator gets a fresh instance). Returns the
// final context for the caller to inspect.
func RunSource(source, filePath string, eval *evaluator.Evaluator, captureErrors bool) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{
		FilePath:      filePath,
		SourceCode:    source,
		CaptureErrors: captureErrors,
	}
	if eval != nil {
		ctx.Evaluator = eval
	}
	return newPipeline().Run(ctx)
}

// RunFile executes a script file and returns the process exit code.
func RunFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rill: cannot read %s: %v\n", path, err)
		return 1
	}

	cfg, cfgErr := LoadConfig(filepath.Dir(path))
	renderer := diagnostics.NewRenderer(os.Stderr, cfg.Color)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "rill: %s: %v\n", config.ProjectConfigFile, cfgErr)
	}

	eval := evaluator.New()
	if cfg.MaxDepth > 0 {
		eval.MaxDepth = cfg.MaxDepth
	}

	ctx := RunSource(string(src), path, eval, false)
	if len(ctx.Errors) > 0 {
		renderer.Render(path, ctx.Errors)
		return 1
	}
	return 0
}
