// Package cli implements the slovo command-line front end (spec §6, now
// concrete in SPEC_FULL.md §5): `slovo run <file>` and `slovo repl`.
package cli

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/funvibe/slovo/internal/config"
	"github.com/funvibe/slovo/internal/evaluator"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/mattn/go-isatty"
)

var logger = log.New(os.Stderr, "slovo: ", 0)

// Run is the entry point cmd/slovo's main.go delegates into, the same
// thin-main/fat-pkg-cli split the teacher's cmd/funxy + pkg/cli follows.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch args[0] {
	case "run":
		if len(args) < 2 {
			printUsage()
			return 2
		}
		return runFile(args[1])
	case "repl":
		return repl()
	case "version":
		fmt.Println("slovo " + config.Version)
		return 0
	default:
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "использование: slovo run <файл> | slovo repl | slovo version")
}

// runFile implements `slovo run <file>` (spec §6): parse+execute, exit
// 0/nonzero, diagnostics to stderr formatted as
// "<Kind>: <message> at <file>:<line>:<col>".
func runFile(path string) int {
	in := interner.New()
	interp := evaluator.NewInterpreter(in, os.Stdout, os.Stdin)

	if flow := interp.RunFile(path); flow != nil {
		reportFlow(interp, flow)
		return 1
	}
	return 0
}

func reportFlow(interp *evaluator.Interpreter, flow *evaluator.Flow) {
	d := flow.Diagnostic
	if d == nil {
		logger.Println(flow.Error())
		return
	}
	logger.Println(d.Format(interp.SourceMap(d.Span.FileID)))
}

// repl implements `slovo repl` (spec §6): a persistent Environment across
// lines, color prompt gated on isatty.IsTerminal the way the teacher's CLI
// gates its own prompt. Each line goes through Interpreter.EvalLine, which
// parses it into one persistent REPL module and runs it against that
// module's shared top-level frame.
func repl() int {
	config.IsREPL = true
	interactive := isatty.IsTerminal(os.Stdout.Fd())

	rc, err := config.LoadReplConfig()
	if err != nil {
		logger.Printf("предупреждение: не удалось прочитать .slovorc.yaml: %v", err)
		rc = config.DefaultReplConfig()
	}

	in := interner.New()
	interp := evaluator.NewInterpreter(in, os.Stdout, os.Stdin)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("slovo " + config.Version + " — repl, Ctrl+D для выхода")
	for {
		if interactive {
			fmt.Print("\x1b[36m" + rc.Prompt + "\x1b[0m")
		} else {
			fmt.Print(rc.Prompt)
		}
		if !scanner.Scan() {
			fmt.Println()
			return 0
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if flow := interp.EvalLine(line); flow != nil {
			reportFlow(interp, flow)
		}
	}
}
