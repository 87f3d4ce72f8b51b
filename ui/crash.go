package ui

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vanish/log"
)

// HandleCrash restores the terminal, prints the panic with its stack and exits
func HandleCrash(screen tcell.Screen, r any) {
	if r == nil {
		return
	}

	stack := debug.Stack()
	log.Error("panic", "value", fmt.Sprint(r), "stack", string(stack))
	log.Close()

	if screen != nil {
		screen.Fini()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mVANISH CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so a crash never leaves the terminal raw.
func Go(screen tcell.Screen, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(screen, r)
			}
		}()
		fn()
	}()
}
