package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch m.mode {
	case ModeStartup:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			startButtonRect(m.width, m.height).contains(point{msg.X, msg.Y}) {
			m.mode = ModeNormal
		}
		return nil
	case ModeConfirm:
		return nil
	}
	if m.help {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY--
		return nil
	case tea.MouseButtonWheelDown:
		m.panY++
		return nil
	}

	p := m.screenToCanvas(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		return m.handlePress(msg, p)
	case tea.MouseActionMotion:
		m.lastPointer = p
		if m.ctrl.Tracking() {
			m.ctrl.PointerMove(p)
		}
	case tea.MouseActionRelease:
		m.handleRelease(p)
	}
	return nil
}

func (m *model) handlePress(msg tea.MouseMsg, p point) tea.Cmd {
	// A release can be lost when the pointer leaves the terminal; end that
	// gesture where the pointer was last seen before starting anything new.
	if m.ctrl.Tracking() {
		log.Printf("press while %s; ending it first", m.ctrl.Gesture().Kind)
		m.ctrl.PointerUp(m.lastPointer)
	}
	m.lastPointer = p
	m.pressHit = nil

	if msg.Y < canvasTop {
		m.menu = nil
		if msg.Button == tea.MouseButtonLeft {
			if f, ok := chipAt(msg.X); ok {
				m.filter = f
			}
		}
		return nil
	}
	if !m.onCanvas(msg.Y) {
		return nil
	}

	hit := m.cfg.Layout.hitTest(m.scene.Snapshot(), m.filter, m.menu, p)
	if hit.Kind != HitMenuItem {
		m.menu = nil
	}

	if msg.Button == tea.MouseButtonRight {
		if hit.Kind == HitCard {
			m.blur()
			m.selectedEmail = hit.EmailID
			m.menu = &contextMenu{EmailID: hit.EmailID, At: p}
		}
		return nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch hit.Kind {
	case HitMenuItem:
		m.applyMenuItem(hit)

	case HitDelete:
		m.scene.RemoveConnector(hit.ConnectorID)

	case HitSearchInput:
		m.focusInput(inputFocus{ConnectorID: hit.ConnectorID, Search: true})

	case HitDraftInput:
		m.focusInput(inputFocus{ConnectorID: hit.ConnectorID, Field: hit.Field})

	case HitDropdown:
		m.pickAction(hit.ActionID, hit.ConnectorID)

	case HitButton:
		return m.pressButton(hit)

	case HitCard, HitHandle, HitActionNode:
		m.blur()
		if hit.EmailID != "" {
			m.selectedEmail = hit.EmailID
		}
		m.ctrl.PointerDown(p, hit)

	case HitCanvas:
		m.blur()
		m.selectedEmail = ""
		m.pressHit = &hit
	}
	return nil
}

func (m *model) handleRelease(p point) {
	if m.ctrl.Tracking() {
		m.ctrl.PointerUp(p)
		return
	}
	pressed := m.pressHit
	m.pressHit = nil
	if pressed == nil {
		return
	}
	hit := m.cfg.Layout.hitTest(m.scene.Snapshot(), m.filter, m.menu, p)
	if m.ctrl.Click(p, hit) {
		// The new node's search box takes the keyboard right away.
		conns := m.scene.Connectors()
		m.focusInput(inputFocus{ConnectorID: conns[len(conns)-1].ID, Search: true})
	}
}

func (m *model) pressButton(hit Hit) tea.Cmd {
	switch hit.Button {
	case ButtonMinimize:
		e, ok := m.scene.Email(hit.EmailID)
		if !ok {
			return nil
		}
		m.scene.UpdateEmail(e.ID, EmailPatch{IsMinimized: ptr(!e.IsMinimized)})
	case ButtonSend:
		return m.sendDraft()
	case ButtonCancel:
		m.blur()
		m.scene.CancelCompose()
	}
	return nil
}

func (m *model) applyMenuItem(hit Hit) {
	e, ok := m.scene.Email(hit.EmailID)
	if !ok || hit.MenuItem < 0 {
		return
	}
	m.menu = nil
	switch hit.MenuItem {
	case menuStar:
		m.scene.UpdateEmail(e.ID, EmailPatch{IsStarred: ptr(!e.IsStarred)})
	case menuRead:
		m.scene.UpdateEmail(e.ID, EmailPatch{IsRead: ptr(!e.IsRead)})
	case menuDelete:
		m.requestDelete(e.ID)
	}
}
