package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/internal/services"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two sequences and report differences",
	Long: `Diff compares the head, tail, padding, frame range and missing frames of
two sequences. --size also compares disk usage and --checksum compares the
contents of every frame number present in both.

Both arguments are globs or pattern strings such as "shot.%04d.exr".

Examples:
  frameseq diff 'a/shot.%04d.exr' 'b/shot.%04d.exr'
  frameseq diff 'a/shot.*.exr' 'b/shot.*.exr' --checksum --json`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runDiff,
}

type diffFlagValues struct {
	size     bool
	checksum bool
	json     bool
}

var diffFlags diffFlagValues

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&diffFlags.size, "size", false, "Compare disk usage")
	diffCmd.Flags().BoolVar(&diffFlags.checksum, "checksum", false, "Compare SHA-256 checksums of shared frames")
	diffCmd.Flags().BoolVar(&diffFlags.json, "json", false, "Output result as JSON")
}

func resetDiffFlags() {
	diffFlags = diffFlagValues{}
}

func runDiff(cmd *cobra.Command, args []string) error {
	sc, err := newScanner()
	if err != nil {
		return err
	}
	a, err := sc.Resolve(args[0])
	if err != nil {
		return fmt.Errorf("error resolving sequence: %w", err)
	}
	b, err := sc.Resolve(args[1])
	if err != nil {
		return fmt.Errorf("error resolving sequence: %w", err)
	}

	ctx, cancel := signalContext(context.Background(), cmd)
	defer cancel()

	svc := newService(cmd, nil)
	d, err := svc.Diff(ctx, a, b, services.DiffOptions{Size: diffFlags.size, Checksum: diffFlags.checksum})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diffFlags.json {
		data, err := json.MarshalIndent(d, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	printDiff(out, newStyler(out), d)
	return nil
}

func printDiff(w io.Writer, s styler, d *services.SequenceDiff) {
	fmt.Fprintf(w, "%s %s\n", s.label("Sequence A:"), s.seq(d.A))
	fmt.Fprintf(w, "%s %s\n\n", s.label("Sequence B:"), s.seq(d.B))

	show := func(label string, differs bool, a, b any) {
		if differs {
			fmt.Fprintf(w, "%s mismatch:\n  A: %v\n  B: %v\n", label, a, b)
		}
	}
	show("Head", d.Head.Differs(), d.Head.A, d.Head.B)
	show("Tail", d.Tail.Differs(), d.Tail.A, d.Tail.B)
	show("Padding", d.Pad.Differs(), d.Pad.A, d.Pad.B)
	show("Start", d.Start.Differs(), d.Start.A, d.Start.B)
	show("End", d.End.Differs(), d.End.A, d.End.B)
	show("Length", d.Length.Differs(), d.Length.A, d.Length.B)

	if len(d.Missing.AOnly) > 0 {
		fmt.Fprintf(w, "Missing in A: %s\n", s.missing(frameList(d.Missing.AOnly)))
	}
	if len(d.Missing.BOnly) > 0 {
		fmt.Fprintf(w, "Missing in B: %s\n", s.missing(frameList(d.Missing.BOnly)))
	}
	if d.Missing.Truncated {
		fmt.Fprintln(w, "Missing frame lists truncated")
	}

	if d.DiskHuman != nil && d.DiskHuman.Differs() {
		fmt.Fprintf(w, "Disk usage mismatch:\n  A: %s\n  B: %s\n", d.DiskHuman.A, d.DiskHuman.B)
	}
	if d.Content != nil && len(d.Content.Differing) > 0 {
		fmt.Fprintf(w, "Content mismatch in %d of %d shared frames: %s\n",
			len(d.Content.Differing), d.Content.Compared, frameList(d.Content.Differing))
	}

	if d.Equal() {
		fmt.Fprintln(w, "No differences")
	}
}

// frameList renders frames as "[1, 2, 5]".
func frameList(frames []int) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = strconv.Itoa(f)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
