package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/netbwmon/pkg/sshutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSimpleTable(t *testing.T) {
	DisableColors()
	out := RenderSimpleTable(
		[]TableColumn{{Title: "NAME", Width: 4}, {Title: "RX BYTES", Width: 4}},
		[][]string{
			{"eth0", "1,234,567"},
			{"wlan0", "89"},
		},
	)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "RX BYTES")
	assert.Contains(t, out, "1,234,567", "columns grow to fit their cells")
	assert.Contains(t, out, "wlan0")
}

func TestRenderSimpleTable_Empty(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "NAME"}}, nil))
}

func TestPrintHelpers(t *testing.T) {
	DisableColors()
	var buf bytes.Buffer
	PrintWarning(&buf, "careful")
	PrintSuccess(&buf, "done")

	assert.Equal(t, SymbolWarning+" careful\n"+SymbolSuccess+" done\n", buf.String())
}

func TestInterfaceOptions(t *testing.T) {
	opts := interfaceOptions([]InterfaceOption{
		{Name: "eth0", Label: "rx 1.00 GiB"},
		{Name: "lo"},
	})

	require.Len(t, opts, 2)
	assert.Equal(t, "eth0", opts[0].Value)
	assert.True(t, strings.HasPrefix(opts[0].Key, "eth0 "))
	assert.Contains(t, opts[0].Key, "rx 1.00 GiB")
	assert.Equal(t, "lo", opts[1].Key)
}

func TestPickInterface_NoChoices(t *testing.T) {
	_, err := PickInterface(nil, "")
	assert.Error(t, err)
}

var testHosts = []sshutil.HostEntry{
	{Alias: "router", Hostname: "192.168.1.1", User: "admin"},
	{Alias: "nas", Hostname: "nas.lan"},
}

func TestHostItem(t *testing.T) {
	item := hostItem{host: testHosts[0]}
	assert.Equal(t, "router", item.Title())
	assert.Equal(t, "192.168.1.1, user: admin", item.Description())
	assert.Equal(t, "router 192.168.1.1 admin", item.FilterValue())
}

func TestHostPickerModel(t *testing.T) {
	t.Run("enter selects the highlighted host", func(t *testing.T) {
		m := NewHostPickerModel(testHosts)
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(HostPickerModel)
		next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = next.(HostPickerModel)

		require.NotNil(t, cmd)
		require.NotNil(t, m.Selected())
		assert.Equal(t, "nas", m.Selected().Alias)
		assert.Empty(t, m.View())
	})

	t.Run("esc cancels", func(t *testing.T) {
		m := NewHostPickerModel(testHosts)
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = next.(HostPickerModel)

		require.NotNil(t, cmd)
		assert.Nil(t, m.Selected())
	})

	t.Run("view lists hosts", func(t *testing.T) {
		m := NewHostPickerModel(testHosts)
		assert.Contains(t, m.View(), "router")
	})
}

func TestPickSSHHost_NoHosts(t *testing.T) {
	host, err := PickSSHHostWithIO(nil, &bytes.Buffer{}, strings.NewReader(""))
	assert.NoError(t, err)
	assert.Nil(t, host)
}
