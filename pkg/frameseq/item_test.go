package frameseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func TestNewItem_Tokenize(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantName  string
		wantDir   string
		wantRuns  []frameseq.DigitRun
		wantParts []string
	}{
		{
			name:     "two digit runs",
			path:     "/shots/file01_0040.rgb",
			wantName: "file01_0040.rgb",
			wantDir:  "/shots",
			wantRuns: []frameseq.DigitRun{
				{Text: "01", Start: 4, End: 6},
				{Text: "0040", Start: 7, End: 11},
			},
			wantParts: []string{"file", "_", ".rgb"},
		},
		{
			name:      "no digits",
			path:      "alpha.txt",
			wantName:  "alpha.txt",
			wantDir:   "",
			wantRuns:  []frameseq.DigitRun{},
			wantParts: []string{"alpha.txt"},
		},
		{
			name:      "only digits",
			path:      "123",
			wantName:  "123",
			wantRuns:  []frameseq.DigitRun{{Text: "123", Start: 0, End: 3}},
			wantParts: []string{"", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := frameseq.NewItem(tt.path)
			assert.Equal(t, tt.path, it.Path())
			assert.Equal(t, tt.wantName, it.Name())
			assert.Equal(t, tt.wantDir, it.Dir())
			assert.Equal(t, tt.wantRuns, it.DigitRuns())
			assert.Equal(t, tt.wantParts, it.Parts())
		})
	}
}

func TestNewItem_Unresolved(t *testing.T) {
	it := frameseq.NewItem("shot.0001.exr")

	_, ok := it.Frame()
	assert.False(t, ok)
	assert.False(t, it.Resolved())
	assert.Equal(t, "shot.0001.exr", it.Head())
	assert.Equal(t, "", it.Tail())
	assert.Equal(t, 0, it.Pad())
	assert.Equal(t, []string{"0001"}, it.Digits())
}

type plate struct {
	path string
	tag  string
}

func (p plate) Path() string { return p.path }

func TestNewItemFromPather_KeepsPayload(t *testing.T) {
	p := plate{path: "plates/bg.1001.exr", tag: "bg"}
	it := frameseq.NewItemFromPather(p)

	assert.Equal(t, "plates/bg.1001.exr", it.Path())
	assert.Equal(t, p, it.Payload())
}

func TestItem_Compare(t *testing.T) {
	m := newMatcher(t, frameseq.Config{})
	a := frameseq.NewItem("f.2.jpg")
	b := frameseq.NewItem("f.10.jpg")
	loose := frameseq.NewItem("readme")
	assert.True(t, m.IsSibling(a, b))

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, loose.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}
