// Command slovo runs the slovo interpreter: `slovo run <file>`, `slovo
// repl`, or `slovo version`. All behavior lives in pkg/cli; main only
// wires the process exit code, the teacher's own cmd/<tool>+pkg/cli split.
package main

import (
	"os"

	"github.com/funvibe/slovo/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
