package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// scenarioProject builds a file with a Tag "Animal" at (0,3) and a saved
// Search "cat" at both matches.
func scenarioProject(content string) (*domain.Project, *domain.TextFile) {
	p := domain.NewProject("study")
	p.Marks.Set("tag-animal", domain.Mark{ID: "tag-animal", Type: domain.MarkTypeTag, Name: "Animal", Color: "#111111"})
	p.Marks.Set("search-cat", domain.Mark{ID: "search-cat", Type: domain.MarkTypeSearch, Name: "cat", Color: "#222222"})

	f := domain.NewTextFile("a.txt", content)
	f.Add(domain.NewOccurrence(domain.PermanentRef("tag-animal"), domain.Span{Start: 0, End: 3}, content))
	for i := strings.Index(content, "cat"); i >= 0; {
		f.Add(domain.NewOccurrence(domain.PermanentRef("search-cat"), domain.Span{Start: i, End: i + 3}, content))
		next := strings.Index(content[i+1:], "cat")
		if next < 0 {
			break
		}
		i += next + 1
	}
	p.Files.Set(f.Name, f)
	return p, f
}

func TestBuild_ThreeSegments(t *testing.T) {
	_, f := scenarioProject("cat sat on the mat cat")

	segs := Build(f.Content, f.Occurrences)

	require.Len(t, segs, 3)
	assert.Equal(t, domain.Span{Start: 0, End: 3}, segs[0].Span)
	assert.Len(t, segs[0].Marks, 2)
	assert.Equal(t, domain.Span{Start: 3, End: 19}, segs[1].Span)
	assert.Empty(t, segs[1].Marks)
	assert.Equal(t, domain.Span{Start: 19, End: 22}, segs[2].Span)
	assert.Equal(t, []domain.MarkRef{domain.PermanentRef("search-cat")}, segs[2].Marks)
}

func TestBuild_AfterTagRemoved(t *testing.T) {
	_, f := scenarioProject("cat sat on the mat cat")
	f.RemoveWhere(func(o domain.Occurrence) bool { return o.Mark == domain.PermanentRef("tag-animal") })

	segs := Build(f.Content, f.Occurrences)

	require.Len(t, segs, 3)
	assert.Equal(t, []domain.MarkRef{domain.PermanentRef("search-cat")}, segs[0].Marks)
	assert.Empty(t, segs[1].Marks)
	assert.Len(t, segs[2].Marks, 1)
}

func TestBuild_LiteralContentHasTrailingPlainSegment(t *testing.T) {
	_, f := scenarioProject("cat sat on the cat mat")

	segs := Build(f.Content, f.Occurrences)

	require.Len(t, segs, 4)
	assert.Len(t, segs[0].Marks, 2)
	assert.Equal(t, domain.Span{Start: 15, End: 18}, segs[2].Span)
	assert.Len(t, segs[2].Marks, 1)
	assert.Equal(t, " mat", segs[3].Text)
	assert.Empty(t, segs[3].Marks)
}

func TestBuild_NestedAndOverlapping(t *testing.T) {
	content := "abcdefghij"
	a := domain.PermanentRef("a")
	b := domain.PermanentRef("b")
	occs := []domain.Occurrence{
		{Mark: a, Span: domain.Span{Start: 1, End: 6}},
		{Mark: b, Span: domain.Span{Start: 4, End: 9}},
	}

	segs := Build(content, occs)

	require.Len(t, segs, 5)
	assert.Equal(t, "a", segs[0].Text)
	assert.Empty(t, segs[0].Marks)
	assert.Equal(t, "bcd", segs[1].Text)
	assert.Equal(t, []domain.MarkRef{a}, segs[1].Marks)
	assert.Equal(t, "ef", segs[2].Text)
	assert.Equal(t, []domain.MarkRef{a, b}, segs[2].Marks)
	assert.Equal(t, "ghi", segs[3].Text)
	assert.Equal(t, []domain.MarkRef{b}, segs[3].Marks)
	assert.Equal(t, "j", segs[4].Text)
}

func TestBuild_SameMarkTwiceListedOnce(t *testing.T) {
	a := domain.PermanentRef("a")
	occs := []domain.Occurrence{
		{Mark: a, Span: domain.Span{Start: 0, End: 4}},
		{Mark: a, Span: domain.Span{Start: 2, End: 6}},
	}

	segs := Build("abcdef", occs)

	require.Len(t, segs, 3)
	assert.Equal(t, []domain.MarkRef{a}, segs[1].Marks)
}

func TestBuild_EmptyContent(t *testing.T) {
	assert.Empty(t, Build("", nil))
}

func TestBuild_StaleOccurrenceIsClamped(t *testing.T) {
	occs := []domain.Occurrence{{Mark: domain.PermanentRef("a"), Span: domain.Span{Start: 3, End: 40}}}

	segs := Build("hello", occs)

	require.Len(t, segs, 2)
	assert.Equal(t, "lo", segs[1].Text)
	assert.Len(t, segs[1].Marks, 1)
}

func TestVisible_FiltersByType(t *testing.T) {
	p, f := scenarioProject("cat sat on the mat cat")

	tags := Visible(p, f.Occurrences, domain.Filter{Kind: domain.FilterTags})
	require.Len(t, tags, 1)
	assert.Equal(t, "tag-animal", tags[0].Mark.ID())

	searches := Visible(p, f.Occurrences, domain.Filter{Kind: domain.FilterSearches})
	assert.Len(t, searches, 2)
}

func TestStyleOf(t *testing.T) {
	p, f := scenarioProject("cat sat on the mat cat")
	segs := Build(f.Content, f.Occurrences)

	t.Run("plain", func(t *testing.T) {
		st := StyleOf(p, segs[1], domain.Filter{})
		assert.True(t, st.IsPlain())
	})

	t.Run("gradient at full opacity", func(t *testing.T) {
		st := StyleOf(p, segs[0], domain.Filter{})
		assert.True(t, st.IsGradient())
		assert.Equal(t, []string{"#111111", "#222222"}, st.Colors)
		assert.Equal(t, FullOpacity, st.Opacity)
	})

	t.Run("single mark dimmed when filter excludes it", func(t *testing.T) {
		st := StyleOf(p, segs[2], domain.MarkFilter(domain.PermanentRef("tag-animal")))
		assert.Equal(t, []string{"#222222"}, st.Colors)
		assert.Equal(t, DimOpacity, st.Opacity)
	})

	t.Run("pending search uses pending colour", func(t *testing.T) {
		seg := Segment{Marks: []domain.MarkRef{domain.PendingRef("sat")}}
		st := StyleOf(p, seg, domain.Filter{Kind: domain.FilterSearches})
		assert.Equal(t, []string{domain.PendingColor}, st.Colors)
		assert.Equal(t, FullOpacity, st.Opacity)
	})
}

func TestBuild_CoverageProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := rapid.StringOfN(rapid.RuneFrom([]rune("abc .\n")), 0, 60, -1).Draw(t, "content")
		n := rapid.IntRange(0, 8).Draw(t, "occurrences")
		occs := make([]domain.Occurrence, n)
		for i := range occs {
			start := rapid.IntRange(0, len(content)).Draw(t, "start")
			end := rapid.IntRange(start, len(content)).Draw(t, "end")
			mark := rapid.SampledFrom([]string{"a", "b", "c"}).Draw(t, "mark")
			occs[i] = domain.Occurrence{Mark: domain.PermanentRef(mark), Span: domain.Span{Start: start, End: end}}
		}

		segs := Build(content, occs)

		var rebuilt strings.Builder
		pos := 0
		for _, s := range segs {
			if s.Start != pos {
				t.Fatalf("segment %v does not start at %d", s.Span, pos)
			}
			if s.End <= s.Start {
				t.Fatalf("empty segment %v", s.Span)
			}
			for _, o := range occs {
				// No occurrence edge may fall strictly inside a segment.
				if (o.Start > s.Start && o.Start < s.End) || (o.End > s.Start && o.End < s.End) {
					t.Fatalf("occurrence %v splits segment %v", o.Span, s.Span)
				}
			}
			rebuilt.WriteString(s.Text)
			pos = s.End
		}
		if pos != len(content) {
			t.Fatalf("segments end at %d, content length %d", pos, len(content))
		}
		if rebuilt.String() != content {
			t.Fatalf("concatenation %q != content %q", rebuilt.String(), content)
		}
	})
}
