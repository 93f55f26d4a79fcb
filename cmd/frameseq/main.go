package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/frameseq/internal/cli"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(frameseq.ExitPanic)
		}
	}()

	if os.Getenv("FRAMESEQ_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(frameseq.ExitCodeForError(err))
	}
}
