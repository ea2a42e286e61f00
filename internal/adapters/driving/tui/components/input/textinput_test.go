package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
)

func TestNewTermInput(t *testing.T) {
	input := NewTermInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.False(t, input.Focused())
}

func TestNewTermInput_NilStyles(t *testing.T) {
	input := NewTermInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestTermInput_FocusAndType(t *testing.T) {
	input := NewTermInput(nil)

	cmd := input.Focus()
	assert.NotNil(t, cmd)
	assert.True(t, input.Focused())

	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cat")})
	assert.Equal(t, "cat", input.Value())

	input.Blur()
	assert.False(t, input.Focused())
	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, "cat", input.Value())
}

func TestTermInput_View(t *testing.T) {
	input := NewTermInput(nil)

	assert.Contains(t, input.View(), "Find")
}

func TestTermInput_SetValueAndReset(t *testing.T) {
	input := NewTermInput(nil)

	input.SetValue("dog")
	assert.Equal(t, "dog", input.Value())

	input.Reset()
	assert.Equal(t, "", input.Value())
}

func TestTermInput_SetWidth(t *testing.T) {
	input := NewTermInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 90, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.textinput.Width)
}
