package frameseq

import "context"

// Approver handles user interaction for approval workflows,
// particularly for destructive operations like overwriting existing frames.
//
// Implementations:
//   - ForcedApprover: approves every request without prompting
//   - InteractiveApprover: asks on the terminal for each target
type Approver interface {
	// RequestApproval asks whether target may be overwritten.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
