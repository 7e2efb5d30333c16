package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Start  key.Binding

	// Canvas
	Pan         key.Binding
	CycleFilter key.Binding
	FilterAll   key.Binding
	FilterUnrd  key.Binding
	FilterRead  key.Binding
	FilterStar  key.Binding
	Copy        key.Binding
	Delete      key.Binding
	ExportPNG   key.Binding
	ExportTXT   key.Binding

	// Inputs
	NextField key.Binding
	Send      key.Binding
	Paste     key.Binding
	Confirm   key.Binding

	// Confirmation prompt
	Yes key.Binding
	No  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input / close node"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Start"),
		),

		Pan: key.NewBinding(
			key.WithKeys("left", "right", "up", "down", "h", "j", "k", "l",
				"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down"),
			key.WithHelp("←↓↑→/hjkl", "Pan (shift: faster)"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "All"),
		),
		FilterUnrd: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Unread"),
		),
		FilterRead: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Read"),
		),
		FilterStar: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Starred"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy selected email"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Delete selected email"),
		),
		ExportPNG: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Export PNG"),
		),
		ExportTXT: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Export text"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next draft field"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Send draft"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "Paste"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Pick first action / next field"),
		),

		Yes: key.NewBinding(key.WithKeys("y", "Y")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pan, k.CycleFilter, k.FilterAll, k.FilterUnrd, k.FilterRead, k.FilterStar},
		{k.Copy, k.Delete, k.ExportPNG, k.ExportTXT},
		{k.NextField, k.Confirm, k.Send, k.Paste, k.Escape},
		{k.Help, k.Quit},
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeStartup:
		switch {
		case key.Matches(msg, m.keys.Start):
			m.mode = ModeNormal
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}

	if m.help {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.help = false
		}
		return m, nil
	}

	if m.focus.active() {
		cmd := m.handleInputKey(msg)
		m.syncFocus()
		return m, cmd
	}
	return m.handleCanvasKey(msg)
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	cs := m.scene.Compose()
	composing := !m.focus.Search

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.blur()
		return nil

	case key.Matches(msg, m.keys.Send) && composing:
		return m.sendDraft()

	case key.Matches(msg, m.keys.NextField) && composing:
		m.focusInput(inputFocus{ConnectorID: m.focus.ConnectorID, Field: (m.focus.Field + 1) % 3})
		return nil

	case key.Matches(msg, m.keys.Confirm):
		if m.focus.Search {
			if cs.Kind != ComposeSearching || cs.ConnectorID != m.focus.ConnectorID {
				return nil
			}
			matches := FilterActions(cs.Query)
			if len(matches) == 0 {
				return nil
			}
			m.pickAction(matches[0].ID, m.focus.ConnectorID)
			return nil
		}
		if m.focus.Field == FieldContent {
			return m.sendDraft()
		}
		m.focusInput(inputFocus{ConnectorID: m.focus.ConnectorID, Field: m.focus.Field + 1})
		return nil

	case key.Matches(msg, m.keys.Paste):
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Paste failed: %v", err)
			return nil
		}
		text = cleanClipboardText(text)
		if text == "" {
			return nil
		}
		value := []rune(m.input.Value())
		pos := m.input.Position()
		if pos > len(value) {
			pos = len(value)
		}
		m.input.SetValue(string(value[:pos]) + text + string(value[pos:]))
		m.input.SetCursor(pos + len([]rune(text)))
		m.commitInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.commitInput()
	return cmd
}

// pickAction resolves the search on connectorID to actionID and, when that
// opens the compose form, focuses its first field.
func (m *model) pickAction(actionID, connectorID string) {
	m.scene.SelectAction(actionID, connectorID)
	cs := m.scene.Compose()
	if cs.Kind == ComposeComposing && cs.ConnectorID == connectorID {
		m.focusInput(inputFocus{ConnectorID: connectorID, Field: FieldRecipient})
		return
	}
	m.blur()
}

func (m model) handleCanvasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cfg.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help = true

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.menu != nil:
			m.menu = nil
		case m.scene.Compose().Kind != ComposeClosed:
			m.scene.CancelCompose()
		default:
			m.selectedEmail = ""
		}

	case key.Matches(msg, m.keys.Pan):
		m.handlePan(msg.String(), m.getMoveSpeed(msg.String()))

	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = m.filter.next()
	case key.Matches(msg, m.keys.FilterAll):
		m.filter = FilterAll
	case key.Matches(msg, m.keys.FilterUnrd):
		m.filter = FilterUnread
	case key.Matches(msg, m.keys.FilterRead):
		m.filter = FilterRead
	case key.Matches(msg, m.keys.FilterStar):
		m.filter = FilterStarred

	case key.Matches(msg, m.keys.Copy):
		e, ok := m.scene.Email(m.selectedEmail)
		if !ok {
			m.errorMessage = "No email selected"
			break
		}
		if err := writeClipboardText(clipboardText(e)); err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
			break
		}
		m.successMessage = "Copied " + e.Subject

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.scene.Email(m.selectedEmail); !ok {
			m.errorMessage = "No email selected"
			break
		}
		m.requestDelete(m.selectedEmail)

	case key.Matches(msg, m.keys.ExportPNG):
		m.export("mailflow.png")
	case key.Matches(msg, m.keys.ExportTXT):
		m.export("mailflow.txt")
	}
	return m, nil
}

func (m *model) requestDelete(id string) {
	if !m.cfg.Confirmations {
		m.deleteEmail(id)
		return
	}
	m.mode = ModeConfirm
	m.confirmAction = ConfirmDeleteEmail
	m.confirmEmailID = id
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteEmail:
			m.deleteEmail(m.confirmEmailID)
			m.confirmEmailID = ""
		}
	case key.Matches(msg, m.keys.No):
		m.mode = ModeNormal
		m.confirmEmailID = ""
	}
	return m, nil
}

func (m *model) export(filename string) {
	path, err := m.cfg.ExportPath(filename)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	snap := m.scene.Snapshot()
	visible := Snapshot{
		Emails:     VisibleEmails(snap.Emails, m.filter),
		Connectors: snap.Connectors,
		Compose:    snap.Compose,
	}
	if strings.HasSuffix(filename, ".png") {
		err = exportPNG(visible, m.cfg.Layout, path)
	} else {
		err = exportTXT(visible, m.cfg.Layout, path)
	}
	if err != nil {
		log.Printf("export %s: %v", path, err)
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.successMessage = "Exported " + path
}
