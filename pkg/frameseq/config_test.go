package frameseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func TestConfig_WithDefaults(t *testing.T) {
	cfg := frameseq.Config{StrictPad: true, RangeSep: " "}.WithDefaults()

	assert.True(t, cfg.StrictPad)
	assert.Equal(t, " ", cfg.RangeSep)
	assert.Equal(t, frameseq.DefaultFramePattern, cfg.FramePattern)
	assert.Equal(t, frameseq.DefaultFormat, cfg.DefaultFormat)
	assert.Equal(t, frameseq.DefaultGlobalFormat, cfg.GlobalFormat)
	assert.Equal(t, frameseq.DefaultMissingExpandLimit, cfg.MissingExpandLimit)
	assert.NotNil(t, cfg.Stat)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     frameseq.Config
		wantErr bool
	}{
		{"zero value", frameseq.Config{}, false},
		{"defaults", frameseq.DefaultConfig(), false},
		{"custom pattern", frameseq.Config{FramePattern: `_v%d`}, false},
		{"broken pattern", frameseq.Config{FramePattern: `[`}, true},
		{"negative limit", frameseq.Config{MissingExpandLimit: -1}, true},
		{"bad default format", frameseq.Config{DefaultFormat: "%h%x"}, true},
		{"bad global format", frameseq.Config{GlobalFormat: "%Q"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, frameseq.ErrInvalidConfig)
		})
	}
}

func TestConfig_DefaultFormatDrivesString(t *testing.T) {
	s := single(t, frameseq.Config{DefaultFormat: "%h%p%t"}, "a.001.exr", "a.002.exr")

	assert.Equal(t, "a.%03d.exr", s.String())
}
