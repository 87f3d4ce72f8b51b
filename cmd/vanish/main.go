package main

import (
	"os"

	"github.com/lixenwraith/vanish/log"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the CLI and returns the process exit code.
// The log file is closed on every path, including command errors.
func execute(args []string) int {
	defer log.Close()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
