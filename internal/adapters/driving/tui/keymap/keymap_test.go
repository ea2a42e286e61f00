package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"next file", km.NextFile, []string{"tab", "]"}},
		{"prev file", km.PrevFile, []string{"shift+tab", "["}},
		{"search", km.Search, []string{"/"}},
		{"submit", km.Submit, []string{"enter"}},
		{"save", km.Save, []string{"s"}},
		{"cancel", km.Cancel, []string{"esc"}},
		{"filter", km.CycleFilter, []string{"f"}},
		{"highlight", km.CycleHighlight, []string{"h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_HelpSets(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 5)
	assert.Equal(t, km.Save.Keys(), km.PreviewHelp()[0].Keys())
	assert.Len(t, km.InputHelp(), 2)

	total := 0
	for _, group := range km.FullHelp() {
		total += len(group)
	}
	assert.Equal(t, 12, total)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("]", km.NextFile))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Search))
}
