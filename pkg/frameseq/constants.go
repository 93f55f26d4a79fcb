package frameseq

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Command completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or environment
	ExitNoMatch        = 11 // Sequence string or glob matched nothing
	ExitAmbiguous      = 12 // Sequence string matched more than one sequence
	ExitFormatError    = 13 // Bad or non-invertible format directive
	ExitApprovalDenied = 14 // User denied overwrite approval
)

const (
	// DefaultFormat renders a sequence as head, implied range and tail.
	DefaultFormat = "%h%r%t"

	// DefaultGlobalFormat is the listing format used by the ls command.
	DefaultGlobalFormat = "%4l %h%p%t %R"

	// DefaultFramePattern matches any run of decimal digits.
	DefaultFramePattern = `\d+`

	// DefaultRangeSep joins the runs of an explicit range.
	DefaultRangeSep = ", "

	// DefaultMissingExpandLimit is the largest span for which missing
	// frames are listed one by one. Wider spans only report gap ranges.
	DefaultMissingExpandLimit = 100000

	// FramePlaceholder inside a custom frame pattern stands for the digit run
	// that carries the frame number.
	FramePlaceholder = "%d"
)
