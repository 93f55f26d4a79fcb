package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// usageArgs wraps a cobra argument validator so its failures map to the
// usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v\n\nUsage: %s", frameseq.ErrUsage, err, cmd.UseLine())
		}
		return nil
	}
}

// RequireSourcesAndDest validates the "<sources...> <dest>" form of copy and move.
func RequireSourcesAndDest(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(`%w: missing required arguments: <sources...> <dest>

Usage: %s

Example:
  %s 'renders/shot.%%04d.exr' ./delivery --renumber 1001`, frameseq.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
