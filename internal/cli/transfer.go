package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/internal/checksum"
	"github.com/vvka-141/frameseq/internal/files/filesystem"
	"github.com/vvka-141/frameseq/internal/services"
	"github.com/vvka-141/frameseq/internal/tui"
	"github.com/vvka-141/frameseq/internal/ui"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

const transferFlagsHelp = `
Sources are globs ("shot.*.exr") or pattern strings ("shot.%04d.exr"); each
must resolve to exactly one sequence. Existing files in dest are only
replaced after confirmation, or always with --force. In the confirmation
prompt "all" overwrites the rest without asking and "quit" aborts.`

var copyCmd = &cobra.Command{
	Use:   "copy <sources...> <dest>",
	Short: "Copy sequences with renaming and renumbering",
	Long: `Copy copies every frame of each source sequence into the dest directory.
` + transferFlagsHelp + `

Examples:
  frameseq copy 'renders/shot.%04d.exr' ./delivery
  frameseq copy 'renders/shot.*.exr' ./delivery --rename plate_ --renumber 1001 --pad 6
  frameseq copy 'renders/shot.*.exr' ./delivery --dryrun`,
	Args: RequireSourcesAndDest,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(cmd, args, false)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <sources...> <dest>",
	Short: "Move sequences with renaming and renumbering",
	Long: `Move renames every frame of each source sequence into the dest directory,
copying and deleting when dest is on another device.
` + transferFlagsHelp + `

Examples:
  frameseq move 'tmp/shot.%04d.exr' ./renders --renumber 1`,
	Args: RequireSourcesAndDest,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(cmd, args, true)
	},
}

type transferFlagValues struct {
	rename   string
	renumber int
	pad      int
	force    bool
	dryRun   bool
}

var transferFlags transferFlagValues

func init() {
	for _, cmd := range []*cobra.Command{copyCmd, moveCmd} {
		rootCmd.AddCommand(cmd)
		cmd.Flags().StringVar(&transferFlags.rename, "rename", "", "Replace the text before the frame number")
		cmd.Flags().IntVar(&transferFlags.renumber, "renumber", 0, "New first frame; gaps between frames are kept")
		cmd.Flags().IntVar(&transferFlags.pad, "pad", 0, "Frame number width of the copies (default: keep)")
		cmd.Flags().BoolVarP(&transferFlags.force, "force", "f", false, "Overwrite existing files without asking")
		cmd.Flags().BoolVarP(&transferFlags.dryRun, "dryrun", "d", false, "Print what would be done without doing it")
	}
}

func resetTransferFlags() {
	transferFlags = transferFlagValues{}
	for _, cmd := range []*cobra.Command{copyCmd, moveCmd} {
		cmd.Flags().Lookup("renumber").Changed = false
	}
}

// selectApprover picks how overwrites are confirmed: never with --force, the
// selector on a terminal, a line prompt otherwise.
var selectApprover = func(force bool) frameseq.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(rootFlags.verbose)
	case tui.IsInteractive():
		return tui.NewConflictApprover()
	default:
		return ui.NewInteractiveApprover(rootFlags.verbose)
	}
}

// newService wires the sequence service over the real filesystem. Commands
// that never overwrite pass a nil approver.
func newService(cmd *cobra.Command, approver frameseq.Approver) *services.SequenceService {
	if approver == nil {
		approver = ui.NewForcedApprover(false)
	}
	return services.NewSequenceService(filesystem.NewOSFileSystem(), checksum.New(), approver, newLogger(cmd))
}

// signalContext cancels on Ctrl+C or SIGTERM.
func signalContext(parent context.Context, cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\n[INTERRUPT] Received interrupt signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func runTransfer(cmd *cobra.Command, args []string, move bool) error {
	sources, dest := args[:len(args)-1], args[len(args)-1]

	if !isDir(dest) {
		return fmt.Errorf("destination %s is not a directory", dest)
	}

	cfg := services.TransferConfig{
		Dest:   dest,
		Rename: transferFlags.rename,
		Pad:    transferFlags.pad,
		Move:   move,
		DryRun: transferFlags.dryRun,
	}
	if cmd.Flags().Changed("renumber") {
		n := transferFlags.renumber
		cfg.Renumber = &n
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc, err := newScanner()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background(), cmd)
	defer cancel()

	logger := newLogger(cmd)
	svc := newService(cmd, selectApprover(transferFlags.force))
	out := cmd.OutOrStdout()

	var errs []error
	for _, source := range sources {
		seq, err := sc.Resolve(source)
		if err != nil {
			logger.Error("%s: %v", source, err)
			errs = append(errs, err)
			continue
		}

		result, err := svc.Transfer(ctx, seq, cfg)
		if result != nil {
			for _, op := range result.Ops {
				if cfg.DryRun || rootFlags.verbose {
					fmt.Fprintf(out, "%s -> %s\n", op.Source, op.Target)
				}
			}
			logger.Verbose("%s: %d transferred, %d skipped", seq, result.Transferred, result.Skipped)
		}
		if err != nil {
			if errors.Is(err, frameseq.ErrApprovalDenied) || errors.Is(err, context.Canceled) {
				return err
			}
			logger.Error("%s: %v", source, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
