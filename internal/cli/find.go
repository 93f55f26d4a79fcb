package cli

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/internal/files/scanner"
)

var findCmd = &cobra.Command{
	Use:   "find <paths...>",
	Short: "Recursively find sequences",
	Long: `Find walks every directory path and prints each sequence found, one per
line, prefixed with its directory. Paths that are not directories are
reported and skipped.

Examples:
  frameseq find ./renders
  frameseq find ./renders ./plates --name '*.exr'`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runFind,
}

type findFlagValues struct {
	all  bool
	name string
}

var findFlags findFlagValues

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolVarP(&findFlags.all, "all", "a", false, "Include hidden files and directories")
	findCmd.Flags().StringVar(&findFlags.name, "name", "", "Only print sequences whose name matches this glob, e.g. '*.exr'")
}

func resetFindFlags() {
	findFlags = findFlagValues{}
}

func runFind(cmd *cobra.Command, args []string) error {
	if findFlags.name != "" {
		if _, err := path.Match(findFlags.name, ""); err != nil {
			return fmt.Errorf("invalid --name pattern %q: %w", findFlags.name, err)
		}
	}

	sc, err := newScanner()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var errs []error
	for _, root := range args {
		if !isDir(root) {
			fmt.Fprintf(cmd.ErrOrStderr(), "frameseq find: %s is not a directory\n", root)
			continue
		}
		err := sc.Walk(root, scanner.WalkOptions{Hidden: findFlags.all}, func(e scanner.DirEntry) error {
			for _, seq := range e.Sequences {
				name := seq.String()
				if findFlags.name != "" {
					if ok, _ := path.Match(findFlags.name, name); !ok {
						continue
					}
				}
				fmt.Fprintln(out, filepath.Join(e.Path, name))
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", root, err))
		}
	}
	return errors.Join(errs...)
}
