package frameseq_test

import (
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func newAggregator(t *testing.T, cfg frameseq.Config) *frameseq.Aggregator {
	t.Helper()
	a, err := frameseq.NewAggregator(cfg)
	require.NoError(t, err)
	return a
}

func group(t *testing.T, cfg frameseq.Config, names ...string) []*frameseq.Sequence {
	t.Helper()
	return newAggregator(t, cfg).Group(names)
}

func single(t *testing.T, cfg frameseq.Config, names ...string) *frameseq.Sequence {
	t.Helper()
	seqs := group(t, cfg, names...)
	require.Len(t, seqs, 1)
	return seqs[0]
}

func strs(seqs []*frameseq.Sequence) []string {
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.String()
	}
	return out
}

func TestGroup_Scenario(t *testing.T) {
	seqs := frameseq.GetSequences([]string{"fileA.1.rgb", "fileA.2.rgb", "fileB.1.rgb"})

	assert.Equal(t, []string{"fileA.1-2.rgb", "fileB.1.rgb"}, strs(seqs))
}

func TestGroup_InputOrderDoesNotMatter(t *testing.T) {
	seqs := group(t, frameseq.Config{}, "fileB.1.rgb", "fileA.2.rgb", "fileA.1.rgb")

	assert.Equal(t, []string{"fileA.1-2.rgb", "fileB.1.rgb"}, strs(seqs))
}

func TestGroup_Partitions(t *testing.T) {
	names := []string{
		"012_vb_110_v001.0001.png", "012_vb_110_v001.0002.png",
		"012_vb_110_v002.0001.png", "012_vb_110_v002.0002.png",
		"a.001.tga", "a.002.tga", "a.010.tga",
		"alpha.txt",
		"bnc01_TinkSO_tx_0_ty_0.101.tif", "bnc01_TinkSO_tx_0_ty_0.102.tif",
		"bnc01_TinkSO_tx_0_ty_1.101.tif", "bnc01_TinkSO_tx_0_ty_1.102.tif",
		"file01_0040.rgb", "file01_0041.rgb",
		"file1.03.rgb", "file2.03.rgb",
		"file.info.03.rgb",
	}

	seqs := group(t, frameseq.Config{}, names...)

	var seen []string
	for _, s := range seqs {
		seen = append(seen, s.Names()...)
	}
	slices.Sort(seen)
	want := slices.Clone(names)
	slices.Sort(want)
	assert.Equal(t, want, seen, "every input must land in exactly one sequence")

	assert.Equal(t, []string{
		"012_vb_110_v001.1-2.png",
		"012_vb_110_v002.1-2.png",
		"a.1-10.tga",
		"alpha.txt",
		"bnc01_TinkSO_tx_0_ty_0.101-102.tif",
		"bnc01_TinkSO_tx_0_ty_1.101-102.tif",
		"file.info.03.rgb",
		"file01_40-41.rgb",
		"file1-2.03.rgb",
	}, strs(seqs))
}

func TestGroup_PaddingLaw(t *testing.T) {
	names := []string{"file.7.jpg", "file.8.jpg", "file.9.jpg", "file.10.jpg", "file.11.jpg"}

	loose := single(t, frameseq.Config{}, names...)
	assert.Equal(t, "%d", loose.Padding())
	assert.Equal(t, "file.7-11.jpg", loose.String())

	strict := group(t, frameseq.Config{StrictPad: true}, names...)
	assert.Equal(t, []string{"file.10-11.jpg", "file.7-9.jpg"}, strs(strict))
}

func TestGroup_PayloadRoundTrip(t *testing.T) {
	a := newAggregator(t, frameseq.Config{})
	p1 := plate{path: "bg.1001.exr", tag: "first"}
	p2 := plate{path: "bg.1002.exr", tag: "second"}

	seqs := a.GroupItems([]*frameseq.Item{frameseq.NewItemFromPather(p2), frameseq.NewItemFromPather(p1)})

	require.Len(t, seqs, 1)
	items := seqs[0].Items()
	assert.Equal(t, p1, items[0].Payload())
	assert.Equal(t, p2, items[1].Payload())
}

func TestSequence_FramesAndMissing(t *testing.T) {
	s := single(t, frameseq.Config{}, "file.0001.jpg", "file.0002.jpg", "file.0003.jpg", "file.0006.jpg")

	assert.Equal(t, []int{1, 2, 3, 6}, s.Frames())
	assert.Equal(t, 1, s.Start())
	assert.Equal(t, 6, s.End())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []int{4, 5}, s.Missing().Frames)
	assert.Equal(t, "file.", s.Head())
	assert.Equal(t, ".jpg", s.Tail())
	assert.Equal(t, 4, s.Pad())
	assert.Equal(t, "%04d", s.Padding())
}

func TestSequence_LargeSpan(t *testing.T) {
	s := single(t, frameseq.Config{}, "big.1.exr", "big.50000000.exr")

	ms := s.Missing()
	assert.False(t, ms.Expanded)
	assert.Nil(t, ms.Frames)
	assert.Equal(t, []frameseq.Range{{Start: 2, End: 49999999}}, ms.Ranges)
}

func TestSequence_SingleItem(t *testing.T) {
	s := single(t, frameseq.Config{}, "alpha.txt")

	assert.Empty(t, s.Frames())
	assert.Equal(t, 0, s.Start())
	assert.Equal(t, 0, s.End())
	assert.True(t, s.Missing().Empty())
	assert.Equal(t, "", s.Padding())
	assert.Equal(t, "alpha.txt", s.String())
}

func TestSequence_IncludesAndContains(t *testing.T) {
	s := single(t, frameseq.Config{}, "fileA.0001.jpg", "fileA.0002.jpg")

	assert.True(t, s.Includes(frameseq.NewItem("fileA.0003.jpg")))
	assert.False(t, s.Includes(frameseq.NewItem("fileB.0003.jpg")))
	assert.False(t, s.Contains(frameseq.NewItem("fileA.0003.jpg")))
	assert.False(t, s.Contains(frameseq.NewItem("fileB.0003.jpg")))
	assert.True(t, s.Contains(frameseq.NewItem("fileA.0002.jpg")))
}

func TestSequence_AppendRejectsNonMember(t *testing.T) {
	s := single(t, frameseq.Config{}, "a.1.jpg", "a.2.jpg")

	err := s.Append(frameseq.NewItem("b.3.png"))

	require.Error(t, err)
	var me *frameseq.MembershipError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "b.3.png", me.Item)
	assert.ErrorIs(t, err, frameseq.ErrNotMember)
	assert.Equal(t, 2, s.Len())
}

func TestSequence_AppendInvalidatesFrames(t *testing.T) {
	s := single(t, frameseq.Config{}, "a.1.jpg", "a.2.jpg")
	assert.Equal(t, []int{1, 2}, s.Frames())

	require.NoError(t, s.Append(frameseq.NewItem("a.5.jpg")))

	assert.Equal(t, []int{1, 2, 5}, s.Frames())
	assert.Equal(t, []int{3, 4}, s.Missing().Frames)
}

func TestSequence_ExtendRollsBack(t *testing.T) {
	s := single(t, frameseq.Config{}, "a.1.jpg", "a.2.jpg")

	err := s.Extend(frameseq.NewItem("a.3.jpg"), frameseq.NewItem("b.1.jpg"))

	assert.ErrorIs(t, err, frameseq.ErrNotMember)
	assert.Equal(t, []string{"a.1.jpg", "a.2.jpg"}, s.Names())
	assert.Equal(t, []int{1, 2}, s.Frames())
}

func TestSequence_InsertAndRemove(t *testing.T) {
	s := single(t, frameseq.Config{}, "a.2.jpg", "a.3.jpg")

	require.NoError(t, s.Insert(0, frameseq.NewItem("a.1.jpg")))
	assert.Equal(t, []string{"a.1.jpg", "a.2.jpg", "a.3.jpg"}, s.Names())

	assert.Error(t, s.Insert(9, frameseq.NewItem("a.4.jpg")))

	assert.True(t, s.Remove(frameseq.NewItem("a.2.jpg")))
	assert.False(t, s.Remove(frameseq.NewItem("a.2.jpg")))
	assert.Equal(t, []int{1, 3}, s.Frames())
}

func TestSequence_Paths(t *testing.T) {
	dir := filepath.Join("shots", "plates")
	s := single(t, frameseq.Config{}, filepath.Join(dir, "a.1.exr"), filepath.Join(dir, "a.2.exr"))

	assert.Equal(t, dir, s.Dir())
	assert.Equal(t, dir+string(filepath.Separator), s.Directory())
	assert.Equal(t, filepath.Join(dir, "a.1-2.exr"), s.Path())
	assert.Equal(t, filepath.Join(dir, "a.0007.exr"), s.FramePath(7, 4))
	assert.Equal(t, filepath.Join(dir, "a.7.exr"), s.FramePath(7, 0))
}

func TestStream_GroupsByExtension(t *testing.T) {
	a := newAggregator(t, frameseq.Config{})
	names := []string{"file.001.tiff", "file.002.jpg", "file.001.jpg", "file.002.tiff", "alpha.txt"}

	var got []string
	for s := range a.Stream(names) {
		got = append(got, s.String())
	}

	assert.Equal(t, []string{"file.1-2.jpg", "file.1-2.tiff", "alpha.txt"}, got)
}

func TestStream_StopsEarly(t *testing.T) {
	a := newAggregator(t, frameseq.Config{})
	names := make([]string, 0, 6)
	for i := range 3 {
		names = append(names, fmt.Sprintf("a.%d.exr", i), fmt.Sprintf("b.%d.png", i))
	}

	count := 0
	for range a.Stream(names) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

type mapLister map[string][]string

func (m mapLister) List(source string) ([]string, error) {
	paths, ok := m[source]
	if !ok {
		return nil, fmt.Errorf("unknown source %s", source)
	}
	return paths, nil
}

func TestGroupSource_UsesLister(t *testing.T) {
	lister := mapLister{"renders": {"renders/b.2.exr", "renders/b.1.exr"}}
	a, err := frameseq.NewAggregatorWithLister(frameseq.Config{}, lister)
	require.NoError(t, err)

	seqs, err := a.GroupSource("renders")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.1-2.exr"}, strs(seqs))

	_, err = a.GroupSource("missing")
	assert.Error(t, err)
}
