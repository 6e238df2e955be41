package main

import (
	"fmt"
	"os"

	"github.com/rill-lang/rill/pkg/cli"
)

func usage() {
	fmt.Printf(`rill %s

Usage:
  rill run <file.rill>    Run a script.
  rill repl               Start the REPL.
  rill version            Print the version.

`, cli.Version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: rill run <file.rill>")
			os.Exit(2)
		}
		os.Exit(cli.RunFile(os.Args[2]))
	case "repl":
		os.Exit(cli.Repl())
	case "version":
		fmt.Println(cli.Version)
	case "-h", "--help", "help":
		usage()
	default:
		// `rill script.rill` works as shorthand for run.
		if cli.IsSourceFile(cmd) {
			os.Exit(cli.RunFile(cmd))
		}
		fmt.Fprintf(os.Stderr, "rill: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
}
