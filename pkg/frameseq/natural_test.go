package frameseq_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func TestNaturalCompare(t *testing.T) {
	assert.Negative(t, frameseq.NaturalCompare("f2", "f10"))
	assert.Positive(t, frameseq.NaturalCompare("f10", "f2"))
	assert.Zero(t, frameseq.NaturalCompare("F2", "f2"))
	assert.Zero(t, frameseq.NaturalCompare("f002", "f2"))
	assert.Negative(t, frameseq.NaturalCompare("a", "a1"))
}

func TestExtensionCompare(t *testing.T) {
	names := []string{"file.001.tiff", "file.002.jpg", "file.001.jpg", "file.002.tiff"}
	slices.SortFunc(names, frameseq.ExtensionCompare)

	assert.Equal(t, []string{"file.001.jpg", "file.002.jpg", "file.001.tiff", "file.002.tiff"}, names)
}
