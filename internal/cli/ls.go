package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/internal/files/scanner"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

var lsCmd = &cobra.Command{
	Use:   "ls [paths...]",
	Short: "List files grouped into sequences",
	Long: `Ls groups the files of each path into sequences and prints one line per
sequence. A path may be a directory or a glob. Without paths, names are read
from stdin when it is piped, otherwise the current directory is listed.

Format directives:
  %s  sequence start        %e  sequence end
  %l  sequence length       %f  list of found files
  %m  list of missing files %M  missing frames as ranges
  %p  padding, e.g. %04d    %r  implied range, start-end
  %R  explicit range        %d  disk usage in bytes
  %H  disk usage, human     %h  text before the frame number
  %t  text after the frame number
Directives accept a width, for example "%4l".

Examples:
  frameseq ls ./renders
  frameseq ls 'renders/*.exr' -f '%h%p%t %R'
  find . -name '*.dpx' | frameseq ls
  frameseq ls -r=2 ./renders`,
	RunE: runLs,
}

type lsFlagValues struct {
	format    string
	recursive int
}

var lsFlags lsFlagValues

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVarP(&lsFlags.format, "format", "f", "", "Format of each sequence line (default: the global format)")
	lsCmd.Flags().IntVarP(&lsFlags.recursive, "recursive", "r", 0,
		"Walk subdirectories and print a tree; an optional level limits the depth (-r=2)")
	lsCmd.Flags().Lookup("recursive").NoOptDefVal = "0"
}

func resetLsFlags() {
	lsFlags = lsFlagValues{}
	lsCmd.Flags().Lookup("recursive").Changed = false
}

func runLs(cmd *cobra.Command, args []string) error {
	sc, err := newScanner()
	if err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		sources = readPipedNames(cmd.InOrStdin())
	}
	if len(sources) == 0 {
		sources = []string{"."}
	}

	if cmd.Flags().Changed("recursive") {
		return lsTree(cmd, sc, sources)
	}

	format := lsFlags.format
	if format == "" {
		format = sc.Config().GlobalFormat
	}

	seqs, err := sc.Sequences(sources...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, seq := range seqs {
		line, err := seq.Format(format)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// lsTree prints a tree for every directory source; other sources are ignored.
func lsTree(cmd *cobra.Command, sc *scanner.Scanner, sources []string) error {
	format := lsFlags.format
	if format == "" {
		format = frameseq.DefaultFormat
	}

	out := cmd.OutOrStdout()
	st := newStyler(out)
	for _, src := range sources {
		root := filepath.Clean(strings.TrimRight(src, string(filepath.Separator)))
		if root == "" {
			root = string(filepath.Separator)
		}
		if !isDir(root) {
			continue
		}
		fmt.Fprintln(out, st.dir(root))
		err := printTree(out, st, sc, root, scanner.WalkOptions{Level: lsFlags.recursive, Hidden: true},
			func(seq *frameseq.Sequence) (string, error) { return seq.Format(format) })
		if err != nil {
			return err
		}
	}
	return nil
}

// readPipedNames returns the non-empty lines of r. An *os.File is only
// read when it is a pipe or a regular file; terminals, sockets and devices
// left open by a parent process are ignored.
func readPipedNames(r io.Reader) []string {
	if f, ok := r.(*os.File); ok && !isPipedInput(f) {
		return nil
	}
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names
}

func isPipedInput(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	mode := info.Mode()
	return mode&os.ModeNamedPipe != 0 || mode.IsRegular()
}
