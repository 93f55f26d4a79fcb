package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

var statCmd = &cobra.Command{
	Use:   "stat <sequence>",
	Short: "Display stat-like metadata about a sequence",
	Long: `Stat prints size, frame count, padding, missing frames and the
modification times of the first and last frame of one sequence.

The sequence is a glob ("shot.*.exr") or a pattern string with a printf
style frame directive ("shot.%04d.exr").

Examples:
  frameseq stat 'renders/shot.%04d.exr'
  frameseq stat 'renders/shot.*.exr' --json`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runStat,
}

type statFlagValues struct {
	json bool
}

var statFlags statFlagValues

func init() {
	rootCmd.AddCommand(statCmd)
	statCmd.Flags().BoolVar(&statFlags.json, "json", false, "Output metadata as JSON")
}

func resetStatFlags() {
	statFlags = statFlagValues{}
}

func runStat(cmd *cobra.Command, args []string) error {
	sc, err := newScanner()
	if err != nil {
		return err
	}
	seq, err := sc.Resolve(args[0])
	if err != nil {
		return err
	}

	svc := newService(cmd, nil)
	st, err := svc.Stat(seq)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statFlags.json {
		data, err := json.MarshalIndent(st, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	s := newStyler(out)
	missing := s.missing(st.MissingRanges)
	if st.MissingRanges == "" {
		missing = "none"
	}
	fmt.Fprintf(out, "%s %s\n", s.label("Sequence:"), s.seq(st.Sequence))
	fmt.Fprintf(out, "%s     %8s    %s %5d    %s %d\n",
		s.label("Size:"), frameseq.HumanBytes(st.SizeBytes),
		s.label("Frames:"), st.Length, s.label("Padding:"), st.Pad)
	fmt.Fprintf(out, "%s  %s\n", s.label("Missing:"), missing)
	fmt.Fprintf(out, "%s     %s\n", s.label("Head:"), st.Head)
	fmt.Fprintf(out, "%s     %s\n", s.label("Tail:"), st.Tail)
	fmt.Fprintf(out, "%s    %s\n", s.label("Range:"), st.Range)
	fmt.Fprintf(out, "%s   %s\n", s.label("Modify:"), st.Modify)
	return nil
}
