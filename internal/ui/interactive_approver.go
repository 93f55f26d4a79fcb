package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. Each existing target is confirmed with a y/N/a/q answer:
// "a" approves this and every later target, "q" aborts the whole transfer.
type InteractiveApprover struct {
	verbose bool
	input   *bufio.Reader
	output  io.Writer

	mu     sync.Mutex
	always bool
}

// NewInteractiveApprover creates a new InteractiveApprover on stdin/stderr.
func NewInteractiveApprover(verbose bool) frameseq.Approver {
	return NewInteractiveApproverWithIO(os.Stdin, os.Stderr, verbose)
}

// NewInteractiveApproverWithIO creates an InteractiveApprover reading answers
// from in and writing prompts to out.
func NewInteractiveApproverWithIO(in io.Reader, out io.Writer, verbose bool) *InteractiveApprover {
	return &InteractiveApprover{
		verbose: verbose,
		input:   bufio.NewReader(in),
		output:  out,
	}
}

// RequestApproval prompts the user to confirm overwriting target.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.always {
		if a.verbose {
			fmt.Fprintf(a.output, "overwriting %s\n", target)
		}
		return true, nil
	}

	fmt.Fprintf(a.output, "%s exists. Overwrite? [y/N/a(ll)/q(uit)]: ", target)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := a.input.ReadString('\n')
		if err != nil && input == "" {
			errChan <- err
			return
		}
		inputChan <- strings.ToLower(strings.TrimSpace(input))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		if err == io.EOF {
			fmt.Fprintln(a.output)
			return false, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch input {
		case "y", "yes":
			return true, nil
		case "a", "all":
			a.always = true
			return true, nil
		case "q", "quit":
			return false, fmt.Errorf("overwrite of %s: %w", target, frameseq.ErrApprovalDenied)
		default:
			return false, nil
		}
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ frameseq.Approver = (*InteractiveApprover)(nil)
