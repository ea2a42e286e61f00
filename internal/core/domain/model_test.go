package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_PreservesInsertionOrder(t *testing.T) {
	var x Index[int]
	x.Set("b", 1)
	x.Set("a", 2)
	x.Set("c", 3)
	x.Set("a", 20)

	assert.Equal(t, []string{"b", "a", "c"}, x.Keys())
	assert.Equal(t, []int{1, 20, 3}, x.Values())
	assert.Equal(t, "b", x.First())

	x.Delete("a")
	assert.Equal(t, []string{"b", "c"}, x.Keys())
	assert.False(t, x.Has("a"))
}

func TestIndex_Rename(t *testing.T) {
	var x Index[string]
	x.Set("one", "1")
	x.Set("two", "2")

	assert.True(t, x.Rename("one", "uno"))
	assert.Equal(t, []string{"uno", "two"}, x.Keys())

	assert.False(t, x.Rename("uno", "two"), "target taken")
	assert.False(t, x.Rename("missing", "x"))
}

func TestIndex_CloneIsIndependent(t *testing.T) {
	var x Index[*TextFile]
	x.Set("a.txt", NewTextFile("a.txt", "hello"))

	cp := x.Clone((*TextFile).Clone)
	f, _ := cp.Get("a.txt")
	f.Content = "changed"
	cp.Set("b.txt", NewTextFile("b.txt", ""))

	orig, _ := x.Get("a.txt")
	assert.Equal(t, "hello", orig.Content)
	assert.Equal(t, 1, x.Len())
}

func TestMarkRef(t *testing.T) {
	p := PermanentRef("m1")
	q := PendingRef("Cat")

	assert.False(t, p.IsPending())
	assert.True(t, q.IsPending())
	assert.Equal(t, "cat", q.ID())
	assert.Equal(t, PendingRef("CAT"), q)
	assert.NotEqual(t, PermanentRef("cat"), q)
	assert.True(t, MarkRef{}.IsZero())
	assert.Equal(t, "pending:cat", q.String())
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 3}, Span{5, 8}, false},
		{"adjacent", Span{0, 3}, Span{3, 6}, false},
		{"nested", Span{0, 10}, Span{2, 4}, true},
		{"partial", Span{0, 5}, Span{4, 9}, true},
		{"identical", Span{2, 4}, Span{2, 4}, true},
		{"empty", Span{2, 2}, Span{0, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestSpan_Clamp(t *testing.T) {
	assert.Equal(t, Span{0, 3}, Span{-2, 3}.Clamp(10))
	assert.Equal(t, Span{8, 10}, Span{8, 40}.Clamp(10))
	assert.Equal(t, Span{10, 10}, Span{12, 4}.Clamp(10))
}

func TestNewOccurrence_CachesText(t *testing.T) {
	o := NewOccurrence(PermanentRef("m"), Span{4, 7}, "the cat sat")
	assert.Equal(t, "cat", o.Text)

	clamped := NewOccurrence(PermanentRef("m"), Span{8, 99}, "the cat sat")
	assert.Equal(t, "sat", clamped.Text)
	assert.Equal(t, 99, clamped.End, "stored offsets are not rewritten")
}

func TestDedupeOccurrences(t *testing.T) {
	a := PermanentRef("a")
	b := PermanentRef("b")
	occs := []Occurrence{
		{Mark: a, Span: Span{0, 3}, Text: "first"},
		{Mark: b, Span: Span{0, 3}},
		{Mark: a, Span: Span{0, 3}, Text: "second"},
		{Mark: a, Span: Span{1, 3}},
	}

	got := DedupeOccurrences(occs)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, b, got[1].Mark)
	assert.Equal(t, Span{1, 3}, got[2].Span)
}

func TestTextFile_RemoveWhere(t *testing.T) {
	f := NewTextFile("a.txt", "abc")
	f.Add(
		Occurrence{Mark: PermanentRef("x"), Span: Span{0, 1}},
		Occurrence{Mark: PermanentRef("y"), Span: Span{1, 2}},
		Occurrence{Mark: PermanentRef("x"), Span: Span{2, 3}},
	)

	removed := f.RemoveWhere(func(o Occurrence) bool { return o.Mark.ID() == "x" })

	assert.Equal(t, 2, removed)
	require.Len(t, f.Occurrences, 1)
	assert.Equal(t, "y", f.Occurrences[0].Mark.ID())
}

func TestProject_FindMarkIsCaseInsensitive(t *testing.T) {
	p := NewProject("p")
	p.Marks.Set("t1", Mark{ID: "t1", Type: MarkTypeTag, Name: "Animal"})
	p.Marks.Set("s1", Mark{ID: "s1", Type: MarkTypeSearch, Name: "cat"})

	m, ok := p.FindMark(MarkTypeTag, "ANIMAL")
	require.True(t, ok)
	assert.Equal(t, "t1", m.ID)

	_, ok = p.FindMark(MarkTypeSearch, "animal")
	assert.False(t, ok, "names are unique per type only")

	m, ok = p.FindMarkByName("Cat")
	require.True(t, ok)
	assert.Equal(t, "s1", m.ID)
}

func TestProject_CheckReferences(t *testing.T) {
	p := NewProject("p")
	p.Marks.Set("t1", Mark{ID: "t1", Type: MarkTypeTag, Name: "x"})
	f := NewTextFile("a.txt", "hello")
	f.Add(Occurrence{Mark: PermanentRef("t1"), Span: Span{0, 1}})
	f.Add(Occurrence{Mark: PendingRef("hel"), Span: Span{0, 3}})
	p.Files.Set(f.Name, f)

	require.NoError(t, p.CheckReferences())

	f.Add(Occurrence{Mark: PermanentRef("gone"), Span: Span{0, 1}})
	assert.ErrorIs(t, p.CheckReferences(), ErrDanglingReference)

	f.RemoveWhere(func(o Occurrence) bool { return o.Mark.ID() == "gone" })
	p.Groups.Set("g", Group{ID: "g", Name: "G", Marks: []string{"t1", "gone"}})
	assert.ErrorIs(t, p.CheckReferences(), ErrDanglingReference)
}

func TestAppState_CloneIsDeep(t *testing.T) {
	s := NewAppState()
	p := NewProject("p")
	f := NewTextFile("a.txt", "hello")
	f.Add(Occurrence{Mark: PermanentRef("m"), Span: Span{0, 1}})
	p.Files.Set(f.Name, f)
	p.Groups.Set("g", Group{ID: "g", Marks: []string{"m"}})
	s.Projects.Set(p.Name, p)

	cp := s.Clone()
	cpProject, err := cp.Project("p")
	require.NoError(t, err)
	cpFile, err := cpProject.File("a.txt")
	require.NoError(t, err)
	cpFile.Occurrences[0].Text = "mutated"
	g, _ := cpProject.Groups.Get("g")
	g.Marks[0] = "other"

	assert.Empty(t, f.Occurrences[0].Text)
	orig, _ := p.Groups.Get("g")
	assert.Equal(t, "m", orig.Marks[0])
}

func TestFilter_Matches(t *testing.T) {
	tag := PermanentRef("t")
	search := PermanentRef("s")

	assert.True(t, Filter{}.Matches(tag, MarkTypeTag))
	assert.True(t, ParseFilter("tags").Matches(tag, MarkTypeTag))
	assert.False(t, ParseFilter("tags").Matches(search, MarkTypeSearch))
	assert.True(t, ParseFilter("searches").Matches(PendingRef("x"), MarkTypeSearch))
	assert.True(t, ParseFilter("t").Matches(tag, MarkTypeTag))
	assert.False(t, ParseFilter("t").Matches(search, MarkTypeSearch))
	assert.Equal(t, "t", ParseFilter("t").String())
}

func TestNormalizeFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"notes", "notes.txt", false},
		{"notes.md", "notes.md", false},
		{"interview-01.txt", "interview-01.txt", false},
		{"", "", true},
		{"has space.txt", "", true},
		{"tab\tname", "", true},
		{"a/b.txt", "", true},
		{`a\b`, "", true},
		{"what?.txt", "", true},
		{"pipe|.txt", "", true},
		{`quote".txt`, "", true},
		{strings.Repeat("a", 256), "", true},
		{strings.Repeat("a", 252), strings.Repeat("a", 252) + ".txt", false},
		{strings.Repeat("a", 255), strings.Repeat("a", 255) + ".txt", false},
		{strings.Repeat("a", 252) + ".txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeFileName(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFileName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-study-2024", Slugify("My Study (2024)"))
	assert.Equal(t, "interviews", Slugify("  Interviews!!"))
	assert.Equal(t, "project", Slugify("???"))
}

func TestColorFor_Cycles(t *testing.T) {
	assert.Equal(t, Palette[0], ColorFor(0))
	assert.Equal(t, Palette[1], ColorFor(len(Palette)+1))
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#A1B2C3", want: "#a1b2c3"},
		{in: "ff0000", want: "#ff0000"},
		{in: " #00ff00 ", want: "#00ff00"},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeColor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
