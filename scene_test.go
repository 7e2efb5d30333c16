package main

import "testing"

func newSeededScene() *Scene {
	s := NewScene(defaultLayout())
	for _, e := range defaultSeed() {
		s.AddEmail(e)
	}
	return s
}

func openConnector(id string, at point) Connector {
	return Connector{
		ID:         id,
		StartX:     at.X,
		StartY:     at.Y,
		EndX:       at.X,
		EndY:       at.Y,
		ActionNode: &at,
		State:      StateActive,
		Type:       TypeCompose,
		Label:      "Connect",
	}
}

func TestRaiseZIndex_PutsEmailAboveAll(t *testing.T) {
	s := newSeededScene()
	s.RaiseZIndex("3")

	e, _ := s.Email("3")
	if e.ZIndex != 6 {
		t.Fatalf("ZIndex = %d, want 6", e.ZIndex)
	}
	for _, other := range s.Emails() {
		if other.ID != "3" && other.ZIndex >= e.ZIndex {
			t.Fatalf("email %s ZIndex = %d, want below %d", other.ID, other.ZIndex, e.ZIndex)
		}
	}
}

func TestRaiseZIndex_UnknownOrEmpty(t *testing.T) {
	s := NewScene(defaultLayout())
	s.RaiseZIndex("missing")
	if got := len(s.Emails()); got != 0 {
		t.Fatalf("len(Emails()) = %d, want 0", got)
	}
	if got := s.maxZIndex(); got != 0 {
		t.Fatalf("maxZIndex() on empty scene = %d, want 0", got)
	}
}

func TestUpdateEmail_MissingIsNoop(t *testing.T) {
	s := newSeededScene()
	before := s.Snapshot()
	s.UpdateEmail("nope", EmailPatch{IsRead: ptr(true)})
	after := s.Snapshot()
	for i := range before.Emails {
		if before.Emails[i].IsRead != after.Emails[i].IsRead {
			t.Fatalf("email %s changed by patch to missing id", before.Emails[i].ID)
		}
	}
}

func TestRemoveEmail_LeavesConnectors(t *testing.T) {
	s := newSeededScene()
	s.AddConnector(Connector{
		ID: "c1", FromEmailID: "1",
		StartX: 36, StartY: 5, StartOffsetX: 34, StartOffsetY: 3,
		EndX: 60, EndY: 5, State: StateActive, Type: TypeCompose,
	})
	s.RemoveEmail("1")

	if _, ok := s.Email("1"); ok {
		t.Fatalf("email 1 still present after RemoveEmail")
	}
	c, ok := s.Connector("c1")
	if !ok {
		t.Fatalf("connector c1 removed with its email, want it kept")
	}
	if c.start() != (point{36, 5}) || c.FromEmailID != "1" {
		t.Fatalf("connector = %+v, want start frozen at {36 5}", c)
	}
}

func TestUpdateConnector_Idempotent(t *testing.T) {
	s := NewScene(defaultLayout())
	s.AddConnector(openConnector("c1", point{40, 10}))
	patch := ConnectorPatch{ActionNode: &point{50, 12}, End: &point{35, 12}}

	s.UpdateConnector("c1", patch)
	once, _ := s.Connector("c1")
	s.UpdateConnector("c1", patch)
	twice, _ := s.Connector("c1")

	if once.end() != twice.end() || *once.ActionNode != *twice.ActionNode {
		t.Fatalf("second patch changed connector: %+v then %+v", once, twice)
	}
}

func TestUpdateConnector_ActionNodeAndTargetExclusive(t *testing.T) {
	s := NewScene(defaultLayout())
	s.AddConnector(openConnector("c1", point{40, 10}))

	s.UpdateConnector("c1", ConnectorPatch{ToEmailID: ptr("2")})
	c, _ := s.Connector("c1")
	if c.ActionNode != nil || c.ToEmailID != "2" {
		t.Fatalf("after ToEmailID: ActionNode = %v, ToEmailID = %q, want nil and 2", c.ActionNode, c.ToEmailID)
	}

	s.UpdateConnector("c1", ConnectorPatch{ActionNode: &point{5, 5}})
	c, _ = s.Connector("c1")
	if c.ActionNode == nil || c.ToEmailID != "" {
		t.Fatalf("after ActionNode: ActionNode = %v, ToEmailID = %q, want set and empty", c.ActionNode, c.ToEmailID)
	}
}

func TestRemoveConnector_ClosesBoundCompose(t *testing.T) {
	s := newSeededScene()
	s.AddConnector(openConnector("c1", point{60, 10}))
	s.SelectAction(string(TypeCompose), "c1")
	if s.Compose().Kind != ComposeComposing {
		t.Fatalf("Compose().Kind = %v, want composing", s.Compose().Kind)
	}

	s.RemoveConnector("c1")
	if got := s.Compose(); got.Kind != ComposeClosed || got.ConnectorID != "" {
		t.Fatalf("Compose() = %+v, want closed", got)
	}
}

func TestRemoveConnector_KeepsUnrelatedCompose(t *testing.T) {
	s := newSeededScene()
	s.AddConnector(openConnector("c1", point{60, 10}))
	s.AddConnector(openConnector("c2", point{60, 30}))
	s.SelectAction(string(TypeCompose), "c1")

	s.RemoveConnector("c2")
	if got := s.Compose(); got.Kind != ComposeComposing || got.ConnectorID != "c1" {
		t.Fatalf("Compose() = %+v, want composing on c1", got)
	}
}

func TestDelivery_CompletesOnlyWithCurrentToken(t *testing.T) {
	s := NewScene(defaultLayout())
	c := openConnector("c1", point{40, 10})
	c.ActionNode = nil
	c.Type = TypeSend
	s.AddConnector(c)

	first, ok := s.ScheduleDelivery("c1")
	if !ok {
		t.Fatalf("ScheduleDelivery() ok = false, want true")
	}
	if got, _ := s.Connector("c1"); got.State != StatePending {
		t.Fatalf("State = %q, want %q", got.State, StatePending)
	}
	second, _ := s.ScheduleDelivery("c1")

	if s.CompleteDelivery("c1", first) {
		t.Fatalf("CompleteDelivery(stale token) = true, want false")
	}
	if !s.CompleteDelivery("c1", second) {
		t.Fatalf("CompleteDelivery(current token) = false, want true")
	}
	if got, _ := s.Connector("c1"); got.State != StateCompleted {
		t.Fatalf("State = %q, want %q", got.State, StateCompleted)
	}
}

func TestDelivery_CancelledByRemoval(t *testing.T) {
	s := NewScene(defaultLayout())
	c := openConnector("c1", point{40, 10})
	c.Type = TypeSend
	s.AddConnector(c)

	token, _ := s.ScheduleDelivery("c1")
	s.RemoveConnector("c1")
	if s.CompleteDelivery("c1", token) {
		t.Fatalf("CompleteDelivery() after RemoveConnector = true, want false")
	}
}

func TestScheduleDelivery_RejectsNonSend(t *testing.T) {
	s := NewScene(defaultLayout())
	s.AddConnector(openConnector("c1", point{40, 10}))
	if _, ok := s.ScheduleDelivery("c1"); ok {
		t.Fatalf("ScheduleDelivery(compose connector) ok = true, want false")
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := NewScene(defaultLayout())
	s.AddConnector(openConnector("c1", point{40, 10}))
	snap := s.Snapshot()
	snap.Connectors[0].ActionNode.X = 999

	c, _ := s.Connector("c1")
	if c.ActionNode.X != 40 {
		t.Fatalf("ActionNode.X = %d after mutating snapshot, want 40", c.ActionNode.X)
	}
}
