package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of frameseq.yaml. Unset fields keep the
// built-in defaults.
type ProjectConfig struct {
	StrictPad          *bool  `yaml:"strict_pad,omitempty"`
	FramePattern       string `yaml:"frame_pattern,omitempty"`
	RangeSep           string `yaml:"range_sep,omitempty"`
	DefaultFormat      string `yaml:"default_format,omitempty"`
	GlobalFormat       string `yaml:"global_format,omitempty"`
	MissingExpandLimit int    `yaml:"missing_expand_limit,omitempty"`
}

const ConfigFileName = "frameseq.yaml"

// Environment variables read by Resolve.
const (
	EnvStrictPad     = "FRAMESEQ_STRICT_PAD"
	EnvNotStrict     = "FRAMESEQ_NOT_STRICT"
	EnvFramePattern  = "FRAMESEQ_FRAME_PATTERN"
	EnvRangeSep      = "FRAMESEQ_RANGE_SEP"
	EnvDefaultFormat = "FRAMESEQ_DEFAULT_FORMAT"
	EnvGlobalFormat  = "FRAMESEQ_GLOBAL_FORMAT"
	EnvMissingLimit  = "FRAMESEQ_MISSING_LIMIT"
)

// Load reads frameseq.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from an explicit path.
func LoadFile(configPath string) (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options tells Resolve where to look.
type Options struct {
	// WorkDir holds frameseq.yaml and .env. Empty means the current directory.
	WorkDir string

	// ConfigPath overrides WorkDir/frameseq.yaml. A missing explicit file is
	// an error, a missing default one is not.
	ConfigPath string

	// EnvFiles are read after .env and override it.
	EnvFiles []string

	// LookupEnv reads the process environment; nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Resolve layers defaults, frameseq.yaml, .env and extra env files, then the
// process environment, and returns the validated result. Values already in
// the process environment win over env files, matching godotenv.Load.
func Resolve(opts Options) (frameseq.Config, error) {
	cfg := frameseq.DefaultConfig()

	project, err := loadProject(opts)
	if err != nil {
		return frameseq.Config{}, err
	}
	if project != nil {
		project.apply(&cfg)
	}

	env, err := readEnvFiles(opts)
	if err != nil {
		return frameseq.Config{}, err
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{EnvStrictPad, EnvNotStrict, EnvFramePattern, EnvRangeSep,
		EnvDefaultFormat, EnvGlobalFormat, EnvMissingLimit} {
		if v, ok := lookup(key); ok {
			env[key] = v
		}
	}

	if err := applyEnv(&cfg, env); err != nil {
		return frameseq.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return frameseq.Config{}, err
	}
	return cfg, nil
}

func loadProject(opts Options) (*ProjectConfig, error) {
	if opts.ConfigPath != "" {
		project, err := LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", opts.ConfigPath, err)
		}
		return project, nil
	}

	project, err := Load(opts.WorkDir)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", ConfigFileName, err)
	}
	return project, nil
}

// readEnvFiles merges .env from the work dir, when present, with the
// explicit env files. Later files override earlier ones.
func readEnvFiles(opts Options) (map[string]string, error) {
	env := make(map[string]string)

	dotenv := filepath.Join(opts.WorkDir, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		values, err := godotenv.Read(dotenv)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dotenv, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}

	for _, path := range opts.EnvFiles {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	return env, nil
}

func (p *ProjectConfig) apply(cfg *frameseq.Config) {
	if p.StrictPad != nil {
		cfg.StrictPad = *p.StrictPad
	}
	if p.FramePattern != "" {
		cfg.FramePattern = p.FramePattern
	}
	if p.RangeSep != "" {
		cfg.RangeSep = p.RangeSep
	}
	if p.DefaultFormat != "" {
		cfg.DefaultFormat = p.DefaultFormat
	}
	if p.GlobalFormat != "" {
		cfg.GlobalFormat = p.GlobalFormat
	}
	if p.MissingExpandLimit != 0 {
		cfg.MissingExpandLimit = p.MissingExpandLimit
	}
}

// applyEnv collects every malformed variable before failing.
// Strict padding is on when FRAMESEQ_STRICT_PAD is 1 or FRAMESEQ_NOT_STRICT is 0.
func applyEnv(cfg *frameseq.Config, env map[string]string) error {
	var errs []error

	intVar := func(key string) (int, bool) {
		v, ok := env[key]
		if !ok || strings.TrimSpace(v) == "" {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q is not an integer: %w", key, v, frameseq.ErrInvalidConfig))
			return 0, false
		}
		return n, true
	}

	if n, ok := intVar(EnvStrictPad); ok && n == 1 {
		cfg.StrictPad = true
	}
	if n, ok := intVar(EnvNotStrict); ok && n == 0 {
		cfg.StrictPad = true
	}
	if v := env[EnvFramePattern]; v != "" {
		cfg.FramePattern = v
	}
	if v, ok := env[EnvRangeSep]; ok && v != "" {
		cfg.RangeSep = v
	}
	if v := env[EnvDefaultFormat]; v != "" {
		cfg.DefaultFormat = v
	}
	if v := env[EnvGlobalFormat]; v != "" {
		cfg.GlobalFormat = v
	}
	if n, ok := intVar(EnvMissingLimit); ok {
		cfg.MissingExpandLimit = n
	}

	return errors.Join(errs...)
}
