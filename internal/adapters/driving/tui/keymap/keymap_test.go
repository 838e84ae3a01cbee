package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"parent", km.Parent, []string{"backspace"}},
		{"path", km.Path, []string{"/"}},
		{"ask", km.Ask, []string{"enter"}},
		{"resubmit", km.Resubmit, []string{"ctrl+r"}},
		{"remove", km.Remove, []string{"ctrl+x"}},
		{"prev example", km.PrevExample, []string{"left"}},
		{"next example", km.NextExample, []string{"right"}},
		{"use example", km.UseExample, []string{"tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Contains(t, km.PickerHelp(), km.Path)
	assert.Contains(t, km.DocumentHelp(), km.Resubmit)
	assert.Contains(t, km.DocumentHelp(), km.Remove)

	full := km.FullHelp()
	require.Len(t, full, 3)
	assert.Contains(t, full[1], km.UseExample)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		keyStr   string
		binding  key.Binding
		expected bool
	}{
		{"ctrl+x matches remove", "ctrl+x", km.Remove, true},
		{"ctrl+r matches resubmit", "ctrl+r", km.Resubmit, true},
		{"k matches up", "k", km.Up, true},
		{"tab does not match back", "tab", km.Back, false},
		{"empty matches nothing", "", km.Select, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.keyStr, tt.binding))
		})
	}
}
