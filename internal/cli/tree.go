package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/internal/files/scanner"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Display a directory tree with files grouped into sequences",
	Long: `Tree prints the directories below path with the files of each directory
grouped into sequences. Hidden files and directories are skipped unless
--all is given.

Examples:
  frameseq tree
  frameseq tree ./renders -a`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runTree,
}

type treeFlagValues struct {
	all bool
}

var treeFlags treeFlagValues

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVarP(&treeFlags.all, "all", "a", false, "Include hidden files and directories")
}

func resetTreeFlags() {
	treeFlags = treeFlagValues{}
}

func runTree(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	sc, err := newScanner()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := newStyler(out)
	fmt.Fprintln(out, st.dir(root))
	return printTree(out, st, sc, root, scanner.WalkOptions{Hidden: treeFlags.all}, func(seq *frameseq.Sequence) (string, error) {
		return seq.String(), nil
	})
}

// printTree walks root and draws its subdirectories and sequences below the
// already printed root line. Directories come before sequences at each level.
func printTree(w io.Writer, st styler, sc *scanner.Scanner, root string, opts scanner.WalkOptions,
	format func(*frameseq.Sequence) (string, error)) error {
	entries := make(map[string]scanner.DirEntry)
	err := sc.Walk(root, opts, func(e scanner.DirEntry) error {
		entries[e.Path] = e
		return nil
	})
	if err != nil {
		return err
	}
	return drawLevel(w, st, entries, root, "", format)
}

func drawLevel(w io.Writer, st styler, entries map[string]scanner.DirEntry, dir, prefix string,
	format func(*frameseq.Sequence) (string, error)) error {
	entry, ok := entries[dir]
	if !ok {
		return nil
	}

	total := len(entry.Dirs) + len(entry.Sequences)
	i := 0
	connector := func() (string, string) {
		i++
		if i == total {
			return "└── ", prefix + "    "
		}
		return "├── ", prefix + "│   "
	}

	for _, name := range entry.Dirs {
		branch, next := connector()
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, st.dir(name))
		if err := drawLevel(w, st, entries, filepath.Join(dir, name), next, format); err != nil {
			return err
		}
	}
	for _, seq := range entry.Sequences {
		branch, _ := connector()
		text, err := format(seq)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, st.seq(text))
	}
	return nil
}

// isDir reports whether p is an existing directory on the real filesystem.
func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
