package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func fakeEnv(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `strict_pad: true
frame_pattern: '_v\d+_(%d)'
range_sep: "; "
default_format: "%h%p%t %r"
global_format: "%l %h%p%t"
missing_expand_limit: 500
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.NotNil(t, cfg.StrictPad)
	assert.True(t, *cfg.StrictPad)
	assert.Equal(t, `_v\d+_(%d)`, cfg.FramePattern)
	assert.Equal(t, "; ", cfg.RangeSep)
	assert.Equal(t, "%h%p%t %r", cfg.DefaultFormat)
	assert.Equal(t, "%l %h%p%t", cfg.GlobalFormat)
	assert.Equal(t, 500, cfg.MissingExpandLimit)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "range_sep: ' '\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Nil(t, cfg.StrictPad)
	assert.Equal(t, " ", cfg.RangeSep)
	assert.Equal(t, 0, cfg.MissingExpandLimit)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "{{invalid")

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(Options{WorkDir: t.TempDir(), LookupEnv: fakeEnv(nil)})
	require.NoError(t, err)

	want := frameseq.DefaultConfig()
	assert.Equal(t, want.StrictPad, cfg.StrictPad)
	assert.Equal(t, want.FramePattern, cfg.FramePattern)
	assert.Equal(t, want.RangeSep, cfg.RangeSep)
	assert.Equal(t, want.DefaultFormat, cfg.DefaultFormat)
	assert.Equal(t, want.GlobalFormat, cfg.GlobalFormat)
	assert.Equal(t, want.MissingExpandLimit, cfg.MissingExpandLimit)
	assert.NotNil(t, cfg.Stat)
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `range_sep: "yaml"
default_format: "%h%r%t yaml"
global_format: "%h yaml"
missing_expand_limit: 10
`)
	writeFile(t, dir, ".env", `FRAMESEQ_DEFAULT_FORMAT="%h%r%t dotenv"
FRAMESEQ_GLOBAL_FORMAT="%h dotenv"
FRAMESEQ_MISSING_LIMIT=20
`)
	extra := writeFile(t, t.TempDir(), "extra.env", "FRAMESEQ_GLOBAL_FORMAT=\"%h extra\"\n")

	cfg, err := Resolve(Options{
		WorkDir:   dir,
		EnvFiles:  []string{extra},
		LookupEnv: fakeEnv(map[string]string{EnvMissingLimit: "30"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.RangeSep, "yaml overrides defaults")
	assert.Equal(t, "%h%r%t dotenv", cfg.DefaultFormat, ".env overrides yaml")
	assert.Equal(t, "%h extra", cfg.GlobalFormat, "--env-file overrides .env")
	assert.Equal(t, 30, cfg.MissingExpandLimit, "process env overrides files")
}

func TestResolve_StrictPad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"unset", nil, false},
		{"strict pad on", map[string]string{EnvStrictPad: "1"}, true},
		{"strict pad off", map[string]string{EnvStrictPad: "0"}, false},
		{"not strict off", map[string]string{EnvNotStrict: "0"}, true},
		{"not strict on", map[string]string{EnvNotStrict: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(Options{WorkDir: t.TempDir(), LookupEnv: fakeEnv(tt.env)})
			require.NoError(t, err)
			if cfg.StrictPad != tt.want {
				t.Errorf("StrictPad = %v, want %v", cfg.StrictPad, tt.want)
			}
		})
	}
}

func TestResolve_ExplicitConfigPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", "strict_pad: true\n")

	cfg, err := Resolve(Options{WorkDir: t.TempDir(), ConfigPath: path, LookupEnv: fakeEnv(nil)})
	require.NoError(t, err)
	assert.True(t, cfg.StrictPad)
}

func TestResolve_MissingExplicitConfig(t *testing.T) {
	_, err := Resolve(Options{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
		LookupEnv:  fakeEnv(nil),
	})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestResolve_MissingEnvFile(t *testing.T) {
	_, err := Resolve(Options{
		WorkDir:   t.TempDir(),
		EnvFiles:  []string{filepath.Join(t.TempDir(), "absent.env")},
		LookupEnv: fakeEnv(nil),
	})
	assert.Error(t, err)
}

func TestResolve_InvalidValues(t *testing.T) {
	_, err := Resolve(Options{
		WorkDir: t.TempDir(),
		LookupEnv: fakeEnv(map[string]string{
			EnvStrictPad:    "yes",
			EnvMissingLimit: "many",
		}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, frameseq.ErrInvalidConfig)
	assert.Contains(t, err.Error(), EnvStrictPad)
	assert.Contains(t, err.Error(), EnvMissingLimit)
}

func TestResolve_InvalidFramePattern(t *testing.T) {
	_, err := Resolve(Options{
		WorkDir:   t.TempDir(),
		LookupEnv: fakeEnv(map[string]string{EnvFramePattern: "(unclosed"}),
	})
	assert.ErrorIs(t, err, frameseq.ErrInvalidConfig)
}
