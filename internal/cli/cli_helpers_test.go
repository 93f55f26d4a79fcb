package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/internal/config"
)

// setupCLITest resets every flag, isolates the test from FRAMESEQ_* settings
// of the host and runs it inside a fresh working directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	resetRootFlags()
	resetLsFlags()
	resetTreeFlags()
	resetFindFlags()
	resetStatFlags()
	resetDiffFlags()
	resetTransferFlags()

	for _, key := range []string{
		config.EnvStrictPad, config.EnvNotStrict, config.EnvFramePattern, config.EnvRangeSep,
		config.EnvDefaultFormat, config.EnvGlobalFormat, config.EnvMissingLimit,
	} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// touch creates files under dir, creating parent directories as needed.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	}
}

// captureOutput points cmd's stdout and stderr at buffers for one test.
func captureOutput(t *testing.T, cmd *cobra.Command) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		cmd.SetIn(nil)
	})
	return &out, &errOut
}
