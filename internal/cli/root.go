package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/frameseq/internal/config"
	"github.com/vvka-141/frameseq/internal/files/filesystem"
	"github.com/vvka-141/frameseq/internal/files/scanner"
	"github.com/vvka-141/frameseq/internal/logging"
	"github.com/vvka-141/frameseq/internal/tui"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

var rootCmd = &cobra.Command{
	Use:   "frameseq",
	Short: "List, inspect and copy numbered file sequences",
	Long: `frameseq groups numbered files such as shot.0001.exr, shot.0002.exr into
sequences and prints them compactly, for example "shot.0001-0240.exr".

Configuration (lowest precedence first):
  built-in defaults, frameseq.yaml (or --config), .env, --env-file,
  FRAMESEQ_* environment variables, command line flags.

Environment:
  FRAMESEQ_STRICT_PAD=1     only group frames with equal padding
  FRAMESEQ_NOT_STRICT=0     same as FRAMESEQ_STRICT_PAD=1
  FRAMESEQ_FRAME_PATTERN    regex for frame numbers, %d marks the frame digits
  FRAMESEQ_RANGE_SEP        separator between explicit ranges
  FRAMESEQ_DEFAULT_FORMAT   format of a single sequence
  FRAMESEQ_GLOBAL_FORMAT    format of ls listings
  FRAMESEQ_MISSING_LIMIT    widest span whose missing frames are listed

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Sequence string or glob matched nothing
  12 - Input matched more than one sequence
  13 - Bad format directive
  14 - User aborted an overwrite`,
	SilenceUsage: true,
}

type rootFlagValues struct {
	verbose    bool
	strict     bool
	configPath string
	envFiles   []string
}

var rootFlags rootFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.strict, "strict", "s", false,
		"Strict padding: frames must have the same width to form a sequence")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "",
		"Path to a config file (default: ./"+config.ConfigFileName+" when present)")
	rootCmd.PersistentFlags().StringSliceVar(&rootFlags.envFiles, "env-file", nil,
		"Load FRAMESEQ_* settings from .env files (can be specified multiple times)\n"+
			"Later files override earlier ones; the process environment overrides all")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", frameseq.ErrUsage, err)
	})
}

func resetRootFlags() {
	rootFlags = rootFlagValues{}
}

// loadConfig resolves the detection config from files, environment and flags.
func loadConfig() (frameseq.Config, error) {
	cfg, err := config.Resolve(config.Options{
		ConfigPath: rootFlags.configPath,
		EnvFiles:   rootFlags.envFiles,
	})
	if err != nil {
		return frameseq.Config{}, err
	}
	if rootFlags.strict {
		cfg.StrictPad = true
	}
	return cfg, nil
}

// newScanner builds a scanner over the real filesystem.
func newScanner() (*scanner.Scanner, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return scanner.NewScannerWithFS(cfg, filesystem.NewOSFileSystem())
}

func newLogger(cmd *cobra.Command) frameseq.Logger {
	w := cmd.ErrOrStderr()
	f, ok := w.(*os.File)
	return logging.NewConsoleLoggerWithWriter(w, rootFlags.verbose, ok && tui.ColorEnabled(f))
}
