package postprocessors

import (
	"context"
	"testing"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func(cfg map[string]any) (driven.PostProcessor, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &mockProcessor{name: name}, nil
	})

	if !r.Has("test") {
		t.Error("expected 'test' to be registered")
	}

	p, err := r.Build("test", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "custom" {
		t.Errorf("expected name custom, got %s", p.Name())
	}

	if _, err := r.Build("unknown", nil); err == nil {
		t.Error("expected error for unknown processor")
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	names := r.Names()
	want := []string{"bom", "newlines", "trailing-space"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestBuildPipeline_Defaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := r.BuildPipeline(DefaultNames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := p.Process(context.Background(), "\ufefffirst line  \r\n\r\nsecond\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first line\n\nsecond\n" {
		t.Errorf("unexpected output %q", got)
	}

	if _, err := r.BuildPipeline([]string{"bom", "nope"}); err == nil {
		t.Error("expected error for unknown processor name")
	}
}

func TestBuildNewlines_Config(t *testing.T) {
	p, err := buildNewlines(map[string]any{"max_blank_lines": int64(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := p.Process(context.Background(), "a\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("expected capped blank lines, got %q", got)
	}
}
