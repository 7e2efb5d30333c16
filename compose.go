package main

import (
	"log"
	"strings"
	"time"
)

var actions = []Action{
	{ID: string(TypeCompose), Label: "Compose"},
	{ID: string(TypeSend), Label: "Send"},
	{ID: string(TypeForward), Label: "Forward"},
	{ID: string(TypeReply), Label: "Reply"},
	{ID: string(TypeShare), Label: "Share"},
	{ID: string(TypeReport), Label: "Report"},
}

// FilterActions keeps the fixed action order; matching is a case-insensitive
// substring test on the label.
func FilterActions(query string) []Action {
	q := strings.ToLower(query)
	matched := make([]Action, 0, len(actions))
	for _, a := range actions {
		if strings.Contains(strings.ToLower(a.Label), q) {
			matched = append(matched, a)
		}
	}
	return matched
}

// SearchActions records the query typed into a connector's action node.
// It is ignored while a draft is open.
func (s *Scene) SearchActions(connectorID, query string) {
	if s.compose.Kind == ComposeComposing {
		return
	}
	if _, ok := s.Connector(connectorID); !ok {
		return
	}
	if query == "" {
		s.compose = ComposeState{}
		return
	}
	s.compose = ComposeState{
		Kind:        ComposeSearching,
		ConnectorID: connectorID,
		Query:       query,
	}
}

// SelectAction picks an entry from the dropdown. Only compose has behavior;
// every other action just closes the menu.
func (s *Scene) SelectAction(actionID, connectorID string) {
	if s.compose.Kind == ComposeComposing {
		return
	}
	if _, ok := s.Connector(connectorID); !ok {
		s.compose = ComposeState{}
		return
	}
	if actionID != string(TypeCompose) {
		s.compose = ComposeState{}
		return
	}
	s.compose = ComposeState{
		Kind:        ComposeComposing,
		ConnectorID: connectorID,
	}
}

func (s *Scene) SetDraftField(field DraftField, value string) {
	if s.compose.Kind != ComposeComposing {
		return
	}
	switch field {
	case FieldRecipient:
		s.compose.Draft.Recipient = value
	case FieldSubject:
		s.compose.Draft.Subject = value
	case FieldContent:
		s.compose.Draft.Content = value
	}
}

func (s *Scene) CancelCompose() {
	if s.compose.Kind == ComposeClosed {
		return
	}
	s.compose = ComposeState{}
}

// SendCompose turns a complete draft into a new email placed at the action
// node and resolves the connector onto it. An incomplete draft is left
// untouched and nothing is returned.
func (s *Scene) SendCompose(now time.Time) (Email, bool) {
	if s.compose.Kind != ComposeComposing || !s.compose.Draft.complete() {
		return Email{}, false
	}
	conn, ok := s.Connector(s.compose.ConnectorID)
	if !ok {
		s.compose = ComposeState{}
		return Email{}, false
	}

	anchor := conn.end()
	if conn.ActionNode != nil {
		anchor = *conn.ActionNode
	}

	draft := s.compose.Draft
	email := Email{
		ID:       newID(),
		Sender:   "You",
		Subject:  draft.Subject,
		Preview:  truncateRunes(draft.Content, previewLimit),
		Position: point{anchor.X, anchor.Y - s.layout.NewCardOffset},
		ZIndex:   s.maxZIndex() + 1,
	}
	raw, err := renderMessage(draft, now)
	if err != nil {
		log.Printf("render message for %s: %v", conn.ID, err)
	} else {
		email.Raw = raw
	}
	s.AddEmail(email)

	state := StateCompleted
	kind := TypeSend
	label := "Sent"
	s.UpdateConnector(conn.ID, ConnectorPatch{
		ClearActionNode: true,
		ToEmailID:       &email.ID,
		End:             ptr(s.layout.cardAnchor(email)),
		State:           &state,
		Type:            &kind,
		Label:           &label,
	})
	s.compose = ComposeState{}
	log.Printf("sent %q to %s via connector %s", draft.Subject, draft.Recipient, conn.ID)
	return email, true
}
