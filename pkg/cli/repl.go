package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/evaluator"
)

const banner = "rill " + Version + " — :help for help, ctrl-d to exit"

// Repl runs the interactive loop and returns the process exit code.
func Repl() int {
	fmt.Println(banner)

	cfg, _ := LoadConfig(".")
	histPath := cfg.HistoryPath()
	renderer := diagnostics.NewRenderer(os.Stderr, cfg.Color)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	eval := evaluator.New()
	if cfg.MaxDepth > 0 {
		eval.MaxDepth = cfg.MaxDepth
	}

	for {
		line, err := ln.Prompt(">> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(line)

		handled, exit := handleReplCommand(trimmed)
		if exit {
			return 0
		}
		if handled {
			continue
		}

		ctx := RunSource(line, "<repl>", eval, true)
		if len(ctx.Errors) > 0 {
			renderer.Render("<repl>", ctx.Errors)
			continue
		}
		if result, ok := ctx.Result.(evaluator.Object); ok && result != nil {
			fmt.Printf("=> %s\n", result.Inspect())
		}
	}
}

// handleReplCommand processes :commands. Anything else — including
// symbol literals like :foo — goes to the evaluator.
func handleReplCommand(line string) (handled, exit bool) {
	switch line {
	case ":quit", ":exit":
		return true, true
	case ":help":
		fmt.Println("  :help        show this help")
		fmt.Println("  :quit        leave the repl")
		fmt.Println("  ctrl-c       abort the current line")
		fmt.Println("  ctrl-d       leave the repl")
		return true, false
	}
	return false, false
}
