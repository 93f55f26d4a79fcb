package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func TestDiff_Text(t *testing.T) {
	dir := setupCLITest(t)
	touch(t, dir, "a/s.1.exr", "a/s.2.exr", "a/s.4.exr", "b/s.1.exr", "b/s.2.exr", "b/s.3.exr")
	out, _ := captureOutput(t, diffCmd)

	require.NoError(t, runDiff(diffCmd, []string{"a/s.*.exr", "b/s.*.exr"}))

	text := out.String()
	assert.Contains(t, text, "Sequence A: s.1-4.exr")
	assert.Contains(t, text, "Sequence B: s.1-3.exr")
	assert.Contains(t, text, "End mismatch:\n  A: 4\n  B: 3\n")
	assert.Contains(t, text, "Missing in A: [3]")
	assert.NotContains(t, text, "No differences")
}

func TestDiff_ChecksumAndJSON(t *testing.T) {
	dir := setupCLITest(t)
	touch(t, dir, "a/s.1.exr", "a/s.2.exr", "b/s.1.exr", "b/s.2.exr")
	// touch writes the relative name as content, so every frame differs
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "s.1.exr"), []byte("a/s.1.exr"), 0644))
	out, _ := captureOutput(t, diffCmd)
	diffFlags.checksum = true
	diffFlags.size = true
	diffFlags.json = true

	require.NoError(t, runDiff(diffCmd, []string{"a/s.%d.exr", "b/s.%d.exr"}))

	var decoded struct {
		Content struct {
			Compared  int   `json:"compared"`
			Differing []int `json:"differing"`
		} `json:"content"`
		DiskBytes []int64 `json:"disk_bytes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Content.Compared)
	assert.Equal(t, []int{2}, decoded.Content.Differing)
	assert.Len(t, decoded.DiskBytes, 2)
}

func TestDiff_Identical(t *testing.T) {
	dir := setupCLITest(t)
	touch(t, dir, "a/s.1.exr", "a/s.2.exr", "b/s.1.exr", "b/s.2.exr")
	out, _ := captureOutput(t, diffCmd)

	require.NoError(t, runDiff(diffCmd, []string{"a/s.*.exr", "b/s.*.exr"}))

	assert.Contains(t, out.String(), "No differences")
}

func TestDiff_UnresolvedSequence(t *testing.T) {
	dir := setupCLITest(t)
	touch(t, dir, "a/s.1.exr")
	captureOutput(t, diffCmd)

	err := runDiff(diffCmd, []string{"a/s.*.exr", "b/s.*.exr"})
	assert.ErrorIs(t, err, frameseq.ErrNoMatch)
}

func TestFrameList(t *testing.T) {
	assert.Equal(t, "[1, 2, 5]", frameList([]int{1, 2, 5}))
	assert.Equal(t, "[]", frameList(nil))
}
