// Package core holds process-wide helpers shared by the engine and cmd
package core

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/vi-classroom/terminal"
)

// HandleCrash is the unified panic handler that restores the terminal and
// prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	terminal.Restore()

	os.Stdout.Sync()
	os.Stderr.Sync()

	// \r\n in case the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()

	os.Exit(1)
}

// Guard wraps fn so a panic restores the terminal before the process exits.
// Use it for every goroutine started while the screen is in raw mode.
func Guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		return fn()
	}
}
