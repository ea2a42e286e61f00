// Package snapshot converts the annotation state to and from its persisted
// JSON document.
//
// The document is a single object keyed by project name:
//
//	{ "<project>": {
//	    "files":  { "<file>": {"content": "...", "occurrences": [{"id","start","end","text"}], "dirty": true} },
//	    "marks":  { "<id>": {"color": "#rrggbb", "type": "Tag"|"Search", "name": "..."} },
//	    "groups": { "<id>": {"name": "...", "marks": ["<id>"], "color": "#rrggbb"} } } }
//
// Object key order is significant ("first project", "first file") and is
// kept in both directions. Pending search occurrences are never written.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// Key is the blob store key the snapshot is persisted under.
const Key = "qda-state"

// ExportFileName returns the file name a project export is written to.
func ExportFileName(project string) string {
	return domain.Slugify(project) + ".json"
}

type occurrenceDoc struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type fileDoc struct {
	Content     string          `json:"content"`
	Occurrences []occurrenceDoc `json:"occurrences"`
	Dirty       bool            `json:"dirty,omitempty"`
}

type markDoc struct {
	Color string `json:"color"`
	Type  string `json:"type"`
	Name  string `json:"name"`
}

type groupDoc struct {
	Name  string   `json:"name"`
	Marks []string `json:"marks"`
	Color string   `json:"color"`
}

// Encode renders st as compact JSON.
func Encode(st *domain.AppState) ([]byte, error) {
	var b bytes.Buffer
	err := writeObject(&b, &st.Projects, func(b *bytes.Buffer, p *domain.Project) error {
		b.WriteString(`{"files":`)
		if err := writeObject(b, &p.Files, writeValue(fileToDoc)); err != nil {
			return err
		}
		b.WriteString(`,"marks":`)
		if err := writeObject(b, &p.Marks, writeValue(markToDoc)); err != nil {
			return err
		}
		b.WriteString(`,"groups":`)
		if err := writeObject(b, &p.Groups, writeValue(groupToDoc)); err != nil {
			return err
		}
		b.WriteByte('}')
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b.Bytes(), nil
}

// EncodePretty renders st as indented JSON for exports.
func EncodePretty(st *domain.AppState) ([]byte, error) {
	raw, err := Encode(st)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(raw, &pretty.Options{Width: 80, Indent: "  "}), nil
}

func writeObject[V any](b *bytes.Buffer, x *domain.Index[V], value func(*bytes.Buffer, V) error) error {
	b.WriteByte('{')
	for i, key := range x.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := marshalInto(b, key); err != nil {
			return err
		}
		b.WriteByte(':')
		v, _ := x.Get(key)
		if err := value(b, v); err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
	}
	b.WriteByte('}')
	return nil
}

func writeValue[V, D any](toDoc func(V) D) func(*bytes.Buffer, V) error {
	return func(b *bytes.Buffer, v V) error {
		return marshalInto(b, toDoc(v))
	}
}

func marshalInto(b *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	b.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func fileToDoc(f *domain.TextFile) fileDoc {
	doc := fileDoc{Content: f.Content, Dirty: f.Dirty, Occurrences: []occurrenceDoc{}}
	for _, o := range f.Occurrences {
		if o.Mark.IsPending() {
			continue
		}
		doc.Occurrences = append(doc.Occurrences, occurrenceDoc{
			ID:    o.Mark.ID(),
			Start: o.Start,
			End:   o.End,
			Text:  o.Text,
		})
	}
	return doc
}

func markToDoc(m domain.Mark) markDoc {
	return markDoc{Color: m.Color, Type: m.Type.String(), Name: m.Name}
}

func groupToDoc(g domain.Group) groupDoc {
	marks := g.Marks
	if marks == nil {
		marks = []string{}
	}
	return groupDoc{Name: g.Name, Marks: marks, Color: g.Color}
}
