package main

import "log"

// Scene owns the emails, connectors, the active gesture and the compose
// workflow. It has a single writer, the bubbletea Update loop, so there is
// no locking.
type Scene struct {
	emails     []Email
	connectors []Connector
	gesture    Gesture
	compose    ComposeState
	layout     Layout

	deliveries map[string]int
	nextToken  int
}

func NewScene(layout Layout) *Scene {
	return &Scene{
		emails:     make([]Email, 0),
		connectors: make([]Connector, 0),
		layout:     layout,
		deliveries: make(map[string]int),
	}
}

func (s *Scene) Email(id string) (Email, bool) {
	if i := s.emailIndex(id); i != -1 {
		return s.emails[i], true
	}
	return Email{}, false
}

func (s *Scene) Connector(id string) (Connector, bool) {
	if i := s.connectorIndex(id); i != -1 {
		return cloneConnectors(s.connectors[i : i+1])[0], true
	}
	return Connector{}, false
}

func (s *Scene) Emails() []Email {
	return cloneEmails(s.emails)
}

func (s *Scene) Connectors() []Connector {
	return cloneConnectors(s.connectors)
}

func (s *Scene) Gesture() Gesture { return s.gesture }

func (s *Scene) Compose() ComposeState { return s.compose }

func (s *Scene) AddEmail(e Email) {
	s.emails = append(s.emails, e)
}

// RemoveEmail deletes the email. Connectors that reference it are left in
// place with their last computed anchors.
func (s *Scene) RemoveEmail(id string) {
	i := s.emailIndex(id)
	if i == -1 {
		return
	}
	s.emails = append(s.emails[:i], s.emails[i+1:]...)
}

func (s *Scene) UpdateEmail(id string, patch EmailPatch) {
	i := s.emailIndex(id)
	if i == -1 {
		return
	}
	e := &s.emails[i]
	if patch.Sender != nil {
		e.Sender = *patch.Sender
	}
	if patch.Subject != nil {
		e.Subject = *patch.Subject
	}
	if patch.Preview != nil {
		e.Preview = *patch.Preview
	}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
	if patch.ZIndex != nil {
		e.ZIndex = *patch.ZIndex
	}
	if patch.IsRead != nil {
		e.IsRead = *patch.IsRead
	}
	if patch.IsStarred != nil {
		e.IsStarred = *patch.IsStarred
	}
	if patch.IsMinimized != nil {
		e.IsMinimized = *patch.IsMinimized
	}
}

// RaiseZIndex brings the email in front of every other email.
func (s *Scene) RaiseZIndex(id string) {
	if s.emailIndex(id) == -1 {
		return
	}
	top := s.maxZIndex() + 1
	s.UpdateEmail(id, EmailPatch{ZIndex: &top})
}

func (s *Scene) maxZIndex() int {
	if len(s.emails) == 0 {
		return 0
	}
	top := s.emails[0].ZIndex
	for _, e := range s.emails[1:] {
		if e.ZIndex > top {
			top = e.ZIndex
		}
	}
	return top
}

func (s *Scene) AddConnector(c Connector) {
	s.connectors = append(s.connectors, c)
}

// RemoveConnector deletes the connector, cancels its scheduled delivery and
// closes any compose workflow bound to it in the same step.
func (s *Scene) RemoveConnector(id string) {
	i := s.connectorIndex(id)
	if i == -1 {
		return
	}
	s.connectors = append(s.connectors[:i], s.connectors[i+1:]...)
	delete(s.deliveries, id)
	if s.compose.Kind != ComposeClosed && s.compose.ConnectorID == id {
		s.compose = ComposeState{}
	}
	if s.gesture.Kind == GestureDragActionNode && s.gesture.ConnectorID == id {
		log.Printf("connector %s removed mid-drag", id)
	}
}

func (s *Scene) UpdateConnector(id string, patch ConnectorPatch) {
	i := s.connectorIndex(id)
	if i == -1 {
		return
	}
	c := &s.connectors[i]
	if patch.Start != nil {
		c.StartX, c.StartY = patch.Start.X, patch.Start.Y
	}
	if patch.End != nil {
		c.EndX, c.EndY = patch.End.X, patch.End.Y
	}
	if patch.ClearActionNode {
		c.ActionNode = nil
	}
	if patch.ActionNode != nil {
		at := *patch.ActionNode
		c.ActionNode = &at
		c.ToEmailID = ""
	}
	if patch.ToEmailID != nil {
		c.ToEmailID = *patch.ToEmailID
		if c.ToEmailID != "" {
			c.ActionNode = nil
		}
	}
	if patch.State != nil {
		c.State = *patch.State
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if patch.Label != nil {
		c.Label = *patch.Label
	}
}

// ScheduleDelivery registers a pending delivery for a send connector and
// returns the token the completion must present.
func (s *Scene) ScheduleDelivery(id string) (int, bool) {
	c, ok := s.Connector(id)
	if !ok || c.Type != TypeSend {
		return 0, false
	}
	s.nextToken++
	s.deliveries[id] = s.nextToken
	pending := StatePending
	s.UpdateConnector(id, ConnectorPatch{State: &pending})
	return s.nextToken, true
}

// CompleteDelivery flips the connector to completed. It does nothing when
// the connector is gone or the schedule was cancelled or superseded.
func (s *Scene) CompleteDelivery(id string, token int) bool {
	want, ok := s.deliveries[id]
	if !ok || want != token {
		return false
	}
	delete(s.deliveries, id)
	if _, ok := s.Connector(id); !ok {
		return false
	}
	done := StateCompleted
	s.UpdateConnector(id, ConnectorPatch{State: &done})
	return true
}

func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Emails:     cloneEmails(s.emails),
		Connectors: cloneConnectors(s.connectors),
		Gesture:    s.gesture,
		Compose:    s.compose,
	}
	return snap
}

func (s *Scene) emailIndex(id string) int {
	for i := range s.emails {
		if s.emails[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) connectorIndex(id string) int {
	for i := range s.connectors {
		if s.connectors[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneEmails(emails []Email) []Email {
	dup := make([]Email, len(emails))
	copy(dup, emails)
	for i := range dup {
		if dup[i].Raw != nil {
			dup[i].Raw = append([]byte(nil), dup[i].Raw...)
		}
	}
	return dup
}

func cloneConnectors(connectors []Connector) []Connector {
	dup := make([]Connector, len(connectors))
	copy(dup, connectors)
	for i := range dup {
		if dup[i].ActionNode != nil {
			at := *dup[i].ActionNode
			dup[i].ActionNode = &at
		}
	}
	return dup
}
