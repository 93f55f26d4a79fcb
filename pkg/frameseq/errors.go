package frameseq

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	seq, err := frameseq.Uncompress("shot.1-10.exr", "%h%r%t", cfg)
//	if errors.Is(err, frameseq.ErrNoMatch) {
//	    // Not a sequence string, treat it as a plain file
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotMember indicates an item was offered to a sequence it does not belong to.
	ErrNotMember = errors.New("item is not a member of sequence")

	// ErrBadDirective indicates a format template contains an unknown directive.
	ErrBadDirective = errors.New("bad format directive")

	// ErrNotInvertible indicates a template directive cannot be parsed back from a string.
	ErrNotInvertible = errors.New("directive cannot be parsed")

	// ErrNoMatch indicates a compressed string does not match the template.
	ErrNoMatch = errors.New("no sequence matches")

	// ErrAmbiguous indicates a compressed string reconstructs into more than one sequence.
	ErrAmbiguous = errors.New("ambiguous sequence")

	// ErrApprovalDenied indicates the user declined an overwrite.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrUsage indicates missing or malformed command line arguments.
	ErrUsage = errors.New("usage error")
)

// MembershipError is returned when an item is forced into a sequence
// without being a sibling of its boundary members.
type MembershipError struct {
	Item string
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("item %s is not a member of this sequence", e.Item)
}

func (e *MembershipError) Unwrap() error {
	return ErrNotMember
}

// FormatError names the directive a format template could not resolve.
type FormatError struct {
	Directive string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad directive: %s", e.Directive)
}

func (e *FormatError) Unwrap() error {
	return ErrBadDirective
}

// DirectiveError is returned by the parser for directives whose values
// cannot be recovered from a compressed string (file lists, disk usage).
type DirectiveError struct {
	Directive string
	Reason    string
}

func (e *DirectiveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot parse directive %s", e.Directive)
	}
	return fmt.Sprintf("cannot parse directive %s: %s", e.Directive, e.Reason)
}

func (e *DirectiveError) Unwrap() error {
	return ErrNotInvertible
}

// AmbiguousError carries every candidate sequence a compressed string produced.
type AmbiguousError struct {
	Input     string
	Sequences []*Sequence
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q reconstructs into %d sequences", e.Input, len(e.Sequences))
}

func (e *AmbiguousError) Unwrap() error {
	return ErrAmbiguous
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrNoMatch):
		return ExitNoMatch
	case errors.Is(err, ErrAmbiguous):
		return ExitAmbiguous
	case errors.Is(err, ErrBadDirective), errors.Is(err, ErrNotInvertible):
		return ExitFormatError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	return ExitGeneralError
}
