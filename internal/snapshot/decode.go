package snapshot

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// Decode parses a snapshot document. Any malformed input, including
// occurrences or group members that reference unknown marks, fails with
// domain.ErrParse.
func Decode(data []byte) (*domain.AppState, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrParse)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: snapshot must be an object", domain.ErrParse)
	}

	st := domain.NewAppState()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		var p *domain.Project
		p, err = decodeProject(key.String(), value)
		if err != nil {
			err = fmt.Errorf("project %q: %w", key.String(), err)
			return false
		}
		st.Projects.Set(p.Name, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func decodeProject(name string, v gjson.Result) (*domain.Project, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: project must be an object", domain.ErrParse)
	}
	p := domain.NewProject(name)

	err := eachEntry(v.Get("marks"), func(id string, m gjson.Result) error {
		typ, ok := domain.ParseMarkType(m.Get("type").String())
		if !ok {
			return fmt.Errorf("%w: mark %q has type %q", domain.ErrParse, id, m.Get("type").String())
		}
		p.Marks.Set(id, domain.Mark{
			ID:    id,
			Type:  typ,
			Name:  m.Get("name").String(),
			Color: m.Get("color").String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(v.Get("files"), func(name string, f gjson.Result) error {
		file := domain.NewTextFile(name, f.Get("content").String())
		file.Dirty = f.Get("dirty").Bool()
		for _, o := range f.Get("occurrences").Array() {
			span := domain.Span{Start: int(o.Get("start").Int()), End: int(o.Get("end").Int())}
			if span.Start < 0 || span.End < span.Start {
				return fmt.Errorf("%w: file %q has span %d-%d", domain.ErrParse, name, span.Start, span.End)
			}
			occ := domain.NewOccurrence(domain.PermanentRef(o.Get("id").String()), span, file.Content)
			if text := o.Get("text"); text.Exists() {
				occ.Text = text.String()
			}
			file.Occurrences = append(file.Occurrences, occ)
		}
		file.Dedupe()
		p.Files.Set(name, file)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(v.Get("groups"), func(id string, g gjson.Result) error {
		var marks []string
		for _, m := range g.Get("marks").Array() {
			marks = append(marks, m.String())
		}
		p.Groups.Set(id, domain.Group{
			ID:    id,
			Name:  g.Get("name").String(),
			Color: g.Get("color").String(),
			Marks: domain.UniqueIDs(marks),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := p.CheckReferences(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return p, nil
}

// eachEntry walks an object in document order. A missing value is an empty object.
func eachEntry(v gjson.Result, fn func(key string, value gjson.Result) error) error {
	if !v.Exists() {
		return nil
	}
	if !v.IsObject() {
		return fmt.Errorf("%w: expected an object, got %s", domain.ErrParse, v.Type)
	}
	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("%w: entry %q must be an object", domain.ErrParse, key.String())
			return false
		}
		err = fn(key.String(), value)
		return err == nil
	})
	return err
}
