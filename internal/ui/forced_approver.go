package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. Every overwrite is approved, used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
}

// NewForcedApprover creates a new ForcedApprover writing notices to stderr.
func NewForcedApprover(verbose bool) frameseq.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr}
}

// RequestApproval approves target unless ctx is already done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.verbose {
		fmt.Fprintf(a.output, "overwriting %s\n", target)
	}
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ frameseq.Approver = (*ForcedApprover)(nil)
