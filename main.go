package main

import (
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// inputFocus names the text field receiving keystrokes. An empty
// ConnectorID means nothing is focused.
type inputFocus struct {
	ConnectorID string
	Search      bool
	Field       DraftField
}

func (f inputFocus) active() bool { return f.ConnectorID != "" }

type deliveryDueMsg struct {
	ConnectorID string
	Token       int
}

type model struct {
	width          int
	height         int
	cfg            Config
	scene          *Scene
	ctrl           *Controller
	mode           Mode
	filter         FilterType
	panX           int
	panY           int
	menu           *contextMenu
	focus          inputFocus
	input          textinput.Model
	keys           keyMap
	help           bool
	confirmAction  ConfirmAction
	confirmEmailID string
	selectedEmail  string
	pressHit       *Hit
	lastPointer    point
	errorMessage   string
	successMessage string
	now            func() time.Time
}

func initialModel(cfg Config, seed []Email) model {
	scene := NewScene(cfg.Layout)
	for _, e := range seed {
		scene.AddEmail(e)
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500

	mode := ModeNormal
	if cfg.StartMenu {
		mode = ModeStartup
	}

	return model{
		cfg:    cfg,
		scene:  scene,
		ctrl:   NewController(scene, cfg.Layout),
		mode:   mode,
		filter: FilterAll,
		input:  input,
		keys:   defaultKeyMap(),
		now:    time.Now,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		m.syncFocus()
		return m, cmd

	case deliveryDueMsg:
		if m.scene.CompleteDelivery(msg.ConnectorID, msg.Token) {
			log.Printf("delivery on connector %s completed", msg.ConnectorID)
		}
		return m, nil
	}
	return m, nil
}

// sendDraft sends the open draft and, with a delivery delay configured,
// schedules the pending → completed flip.
func (m *model) sendDraft() tea.Cmd {
	connID := m.scene.Compose().ConnectorID
	email, ok := m.scene.SendCompose(m.now())
	if !ok {
		return nil
	}
	m.blur()
	m.selectedEmail = email.ID
	m.successMessage = "Sent " + email.Subject
	m.errorMessage = ""

	if m.cfg.DeliveryDelay <= 0 {
		return nil
	}
	token, ok := m.scene.ScheduleDelivery(connID)
	if !ok {
		return nil
	}
	return tea.Tick(m.cfg.DeliveryDelay, func(time.Time) tea.Msg {
		return deliveryDueMsg{ConnectorID: connID, Token: token}
	})
}

func (m *model) deleteEmail(id string) {
	m.scene.RemoveEmail(id)
	if m.selectedEmail == id {
		m.selectedEmail = ""
	}
	if m.menu != nil && m.menu.EmailID == id {
		m.menu = nil
	}
}

// focusInput gives the editor to a node input. Search boxes stay closed
// while another node holds an open draft, since searches are dropped then.
func (m *model) focusInput(f inputFocus) {
	cs := m.scene.Compose()
	if f.Search && cs.Kind == ComposeComposing && cs.ConnectorID != f.ConnectorID {
		m.blur()
		m.errorMessage = "Send or cancel the open draft first"
		return
	}
	m.focus = f
	value := ""
	switch {
	case f.Search:
		if cs.Kind == ComposeSearching && cs.ConnectorID == f.ConnectorID {
			value = cs.Query
		}
	case cs.Kind == ComposeComposing && cs.ConnectorID == f.ConnectorID:
		switch f.Field {
		case FieldRecipient:
			value = cs.Draft.Recipient
		case FieldSubject:
			value = cs.Draft.Subject
		case FieldContent:
			value = cs.Draft.Content
		}
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *model) blur() {
	m.focus = inputFocus{}
	m.input.Blur()
}

// syncFocus drops focus from inputs whose node no longer exists or no
// longer shows that field.
func (m *model) syncFocus() {
	if !m.focus.active() {
		return
	}
	conn, ok := m.scene.Connector(m.focus.ConnectorID)
	if !ok || !conn.isOpen() {
		m.blur()
		return
	}
	cs := m.scene.Compose()
	composing := cs.Kind == ComposeComposing && cs.ConnectorID == conn.ID
	if m.focus.Search == composing || (m.focus.Search && cs.Kind == ComposeComposing) {
		m.blur()
	}
}

// commitInput copies the editor value into the scene.
func (m *model) commitInput() {
	if !m.focus.active() {
		return
	}
	if m.focus.Search {
		m.scene.SearchActions(m.focus.ConnectorID, m.input.Value())
		return
	}
	m.scene.SetDraftField(m.focus.Field, m.input.Value())
}
