package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func TestLoadConfig_StrictFlagOverridesFiles(t *testing.T) {
	dir := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frameseq.yaml"), []byte("strict_pad: false\nrange_sep: '; '\n"), 0644))
	rootFlags.strict = true

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.StrictPad)
	assert.Equal(t, "; ", cfg.RangeSep)
}

func TestLoadConfig_EnvFileFlag(t *testing.T) {
	dir := setupCLITest(t)
	envFile := filepath.Join(dir, "studio.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FRAMESEQ_MISSING_LIMIT=42\n"), 0644))
	rootFlags.envFiles = []string{envFile}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MissingExpandLimit)
}

func TestLoadConfig_InvalidConfigExitCode(t *testing.T) {
	setupCLITest(t)
	t.Setenv("FRAMESEQ_FRAME_PATTERN", "(broken")

	_, err := loadConfig()
	assert.Equal(t, frameseq.ExitConfigError, frameseq.ExitCodeForError(err))
}

func TestFlagErrorsAreUsageErrors(t *testing.T) {
	err := rootCmd.FlagErrorFunc()(rootCmd, errors.New("unknown flag: --bogus"))
	assert.ErrorIs(t, err, frameseq.ErrUsage)
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"ls", "tree", "find", "stat", "diff", "copy", "move", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
