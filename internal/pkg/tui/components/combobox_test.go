package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var durationItems = []ComboboxItem{
	{Key: "30", Label: "30 minutes"},
	{Key: "60", Label: "1 hour"},
	{Key: "240", Label: "4 hours"},
	{Key: "720", Label: "12 hours"},
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(t *testing.T, cmd tea.Cmd) ComboboxSelectedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ComboboxSelectedMsg)
	require.True(t, ok, "expected ComboboxSelectedMsg")
	return msg
}

func TestCombobox_SelectWithKeys(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	c.Activate()
	require.True(t, c.IsActive())

	assert.Nil(t, c.Update(keyMsg("down")))
	assert.Nil(t, c.Update(keyMsg("down")))
	msg := runCmd(t, c.Update(keyMsg("enter")))

	assert.Equal(t, "duration", msg.ID)
	assert.Equal(t, "240", msg.Item.Key)
	assert.False(t, msg.Cleared)
	assert.False(t, c.IsActive())
	assert.Equal(t, "4 hours", c.Label())
}

func TestCombobox_Filter(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	c.Activate()

	c.Update(keyMsg("h"))
	c.Update(keyMsg("o"))
	c.Update(keyMsg("u"))
	assert.Len(t, c.Filtered(), 3, "hou matches the three hour options")

	c.Update(keyMsg("r"))
	c.Update(keyMsg("s"))
	require.Len(t, c.Filtered(), 2)

	msg := runCmd(t, c.Update(keyMsg("enter")))
	assert.Equal(t, "240", msg.Item.Key)
}

func TestCombobox_FilterNoMatch(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	c.Activate()
	c.Update(keyMsg("z"))

	assert.Empty(t, c.Filtered())
	assert.Nil(t, c.Update(keyMsg("enter")))
	assert.True(t, c.IsActive())
	assert.Contains(t, c.View(), "no matches")
}

func TestCombobox_FilterField(t *testing.T) {
	c := NewCombobox("flag", "Flag", []ComboboxItem{
		{Key: "checkout", Label: "New checkout", Filter: "checkout New checkout"},
		{Key: "dark-mode", Label: "dark-mode"},
	})
	c.Activate()
	for _, r := range "checkout" {
		c.Update(keyMsg(string(r)))
	}
	require.Len(t, c.Filtered(), 1)
	assert.Equal(t, "checkout", c.Filtered()[0].Key)
}

func TestCombobox_Clear(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	require.True(t, c.Select("60"))
	assert.Equal(t, "1 hour", c.Label())

	msg := runCmd(t, c.Clear())
	assert.True(t, msg.Cleared)
	assert.Equal(t, NoneLabel, c.Label())

	require.True(t, c.Select("30"))
	c.Activate()
	msg = runCmd(t, c.Update(keyMsg("ctrl+x")))
	assert.True(t, msg.Cleared)
	assert.False(t, c.IsActive())
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestCombobox_EscCancels(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	c.Select("720")
	c.Activate()
	c.Update(keyMsg("up"))

	assert.Nil(t, c.Update(keyMsg("esc")))
	assert.False(t, c.IsActive())
	assert.Equal(t, "12 hours", c.Label())
}

func TestCombobox_ActivatePlacesCursorOnSelection(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	c.Select("720")
	c.Activate()

	msg := runCmd(t, c.Update(keyMsg("enter")))
	assert.Equal(t, "720", msg.Item.Key)
}

func TestCombobox_SetItemsDropsMissingSelection(t *testing.T) {
	c := NewCombobox("flag", "Flag", []ComboboxItem{{Key: "a", Label: "a"}, {Key: "b", Label: "b"}})
	c.Select("b")

	c.SetItems([]ComboboxItem{{Key: "a", Label: "a"}})
	assert.Equal(t, NoneLabel, c.Label())
	assert.False(t, c.Select("b"))
}

func TestCombobox_InactiveIgnoresInput(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	assert.Nil(t, c.Update(keyMsg("enter")))
	assert.Empty(t, c.View())
}

func TestCombobox_Deselect(t *testing.T) {
	c := NewCombobox("duration", "Duration", durationItems)
	require.True(t, c.Select("60"))

	c.Deselect()
	assert.Equal(t, NoneLabel, c.Label())
	assert.False(t, c.IsActive())
}
