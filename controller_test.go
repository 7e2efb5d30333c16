package main

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestController() (*Scene, *Controller, *fakeClock) {
	s := newSeededScene()
	ctrl := NewController(s, defaultLayout())
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	ctrl.now = clock.now
	return s, ctrl, clock
}

func assertSceneInvariants(t *testing.T, s *Scene) {
	t.Helper()
	for _, c := range s.Connectors() {
		if c.ActionNode != nil && c.ToEmailID != "" {
			t.Fatalf("connector %s has both ActionNode %v and ToEmailID %q", c.ID, *c.ActionNode, c.ToEmailID)
		}
	}
	cs := s.Compose()
	if cs.Kind != ComposeClosed {
		c, ok := s.Connector(cs.ConnectorID)
		if !ok || !c.isOpen() {
			t.Fatalf("compose %v bound to connector %q which is missing or resolved", cs.Kind, cs.ConnectorID)
		}
	}
}

func TestDragCard_MovesOutgoingStartByDelta(t *testing.T) {
	s, ctrl, _ := newTestController()
	s.AddConnector(Connector{
		ID: "c1", FromEmailID: "1",
		StartX: 36, StartY: 5, StartOffsetX: 34, StartOffsetY: 3,
		EndX: 60, EndY: 5, State: StateActive, Type: TypeCompose,
	})

	ctrl.PointerDown(point{10, 4}, Hit{Kind: HitCard, EmailID: "1"})
	ctrl.PointerMove(point{15, 7})
	ctrl.PointerUp(point{15, 7})

	c, _ := s.Connector("c1")
	if got, want := c.start(), (point{41, 8}); got != want {
		t.Fatalf("start = %v, want %v", got, want)
	}
	e, _ := s.Email("1")
	if got, want := e.Position, (point{7, 5}); got != want {
		t.Fatalf("Position = %v, want %v", got, want)
	}
	if c.end() != (point{60, 5}) {
		t.Fatalf("end = %v, want unchanged {60 5}", c.end())
	}
	assertSceneInvariants(t, s)
}

func TestDragCard_RaisesToTop(t *testing.T) {
	s, ctrl, _ := newTestController()
	ctrl.PointerDown(point{5, 20}, Hit{Kind: HitCard, EmailID: "3"})

	e, _ := s.Email("3")
	if e.ZIndex != 6 {
		t.Fatalf("ZIndex = %d, want 6", e.ZIndex)
	}
	if g := ctrl.Gesture(); g.Kind != GestureDragCard || g.EmailID != "3" || g.Offset != (point{3, 2}) {
		t.Fatalf("Gesture() = %+v, want dragging-card of 3 with offset {3 2}", g)
	}
	if !ctrl.Tracking() {
		t.Fatalf("Tracking() = false during drag, want true")
	}
}

func TestPointerDown_WhileActivePanics(t *testing.T) {
	_, ctrl, _ := newTestController()
	ctrl.PointerDown(point{5, 4}, Hit{Kind: HitCard, EmailID: "1"})

	defer func() {
		if recover() == nil {
			t.Fatalf("second PointerDown did not panic")
		}
	}()
	ctrl.PointerDown(point{5, 12}, Hit{Kind: HitCard, EmailID: "2"})
}

func TestPointerDown_NonGestureSurfaces(t *testing.T) {
	_, ctrl, _ := newTestController()
	for _, hit := range []Hit{
		{Kind: HitCanvas},
		{Kind: HitDelete, ConnectorID: "c1"},
		{Kind: HitCard, EmailID: "missing"},
	} {
		if ctrl.PointerDown(point{0, 0}, hit) {
			t.Fatalf("PointerDown(%+v) = true, want false", hit)
		}
	}
	if ctrl.Tracking() {
		t.Fatalf("Tracking() = true, want false")
	}
}

func TestDrawConnector_CreatesOpenConnector(t *testing.T) {
	s, ctrl, _ := newTestController()
	h := handleCell(defaultSeed()[0])

	ctrl.PointerDown(h, Hit{Kind: HitHandle, EmailID: "1"})
	ctrl.PointerMove(point{80, 10})
	if got, want := ctrl.Gesture().Live, (point{65, 10}); got != want {
		t.Fatalf("Live = %v, want %v", got, want)
	}
	ctrl.PointerUp(point{80, 10})

	conns := s.Connectors()
	if len(conns) != 1 {
		t.Fatalf("len(Connectors()) = %d, want 1", len(conns))
	}
	c := conns[0]
	if c.FromEmailID != "1" || c.start() != h || c.end() != (point{65, 10}) {
		t.Fatalf("connector = %+v, want from 1, start %v, end {65 10}", c, h)
	}
	if c.StartOffsetX != 34 || c.StartOffsetY != 3 {
		t.Fatalf("start offset = (%d,%d), want (34,3)", c.StartOffsetX, c.StartOffsetY)
	}
	if c.ActionNode == nil || *c.ActionNode != (point{80, 10}) {
		t.Fatalf("ActionNode = %v, want {80 10}", c.ActionNode)
	}
	if c.State != StateActive || c.Type != TypeCompose {
		t.Fatalf("State/Type = %q/%q, want active/compose", c.State, c.Type)
	}
	if ctrl.Gesture().Kind != GestureIdle || ctrl.Tracking() {
		t.Fatalf("gesture not ended: %+v tracking=%v", ctrl.Gesture(), ctrl.Tracking())
	}
	assertSceneInvariants(t, s)
}

func TestDragCard_EmailRemovedMidGesture(t *testing.T) {
	s, ctrl, _ := newTestController()
	s.AddConnector(Connector{
		ID: "c1", FromEmailID: "1",
		StartX: 36, StartY: 5, StartOffsetX: 34, StartOffsetY: 3,
		EndX: 60, EndY: 5, State: StateActive, Type: TypeCompose,
	})

	ctrl.PointerDown(point{10, 4}, Hit{Kind: HitCard, EmailID: "1"})
	ctrl.PointerMove(point{12, 4})
	before, _ := s.Connector("c1")
	s.RemoveEmail("1")
	ctrl.PointerMove(point{40, 30})
	ctrl.PointerUp(point{40, 30})

	if _, ok := s.Email("1"); ok {
		t.Fatalf("email 1 came back after drag continued past its removal")
	}
	if got := len(s.Emails()); got != 4 {
		t.Fatalf("len(Emails()) = %d, want 4", got)
	}
	c, _ := s.Connector("c1")
	if c.start() != before.start() {
		t.Fatalf("start = %v, want frozen at %v", c.start(), before.start())
	}
	if g := ctrl.Gesture(); g.Kind != GestureIdle || ctrl.Tracking() {
		t.Fatalf("Gesture() = %+v, Tracking() = %v, want idle", g, ctrl.Tracking())
	}
	assertSceneInvariants(t, s)
}

func TestDragActionNode_ConnectorRemovedMidGesture(t *testing.T) {
	s, ctrl, _ := newTestController()
	s.AddConnector(openConnector("c1", point{80, 10}))

	ctrl.PointerDown(point{70, 10}, Hit{Kind: HitActionNode, ConnectorID: "c1"})
	s.RemoveConnector("c1")
	ctrl.PointerMove(point{90, 20})
	ctrl.PointerUp(point{95, 25})

	if got := len(s.Connectors()); got != 0 {
		t.Fatalf("len(Connectors()) = %d, want 0", got)
	}
	if g := ctrl.Gesture(); g.Kind != GestureIdle || ctrl.Tracking() {
		t.Fatalf("Gesture() = %+v, Tracking() = %v, want idle", g, ctrl.Tracking())
	}
	assertSceneInvariants(t, s)
}

func TestDragActionNode_MovesNodeAndEnd(t *testing.T) {
	s, ctrl, _ := newTestController()
	s.AddConnector(openConnector("c1", point{80, 10}))

	ctrl.PointerDown(point{70, 10}, Hit{Kind: HitActionNode, ConnectorID: "c1"})
	ctrl.PointerMove(point{90, 20})
	ctrl.PointerUp(point{90, 20})

	c, _ := s.Connector("c1")
	if *c.ActionNode != (point{100, 20}) {
		t.Fatalf("ActionNode = %v, want {100 20}", *c.ActionNode)
	}
	if c.end() != (point{85, 20}) {
		t.Fatalf("end = %v, want {85 20}", c.end())
	}
}

func TestClick_EmptyCanvasOpensOriginlessNode(t *testing.T) {
	s, ctrl, _ := newTestController()
	if !ctrl.Click(point{200, 300}, Hit{Kind: HitCanvas}) {
		t.Fatalf("Click() = false, want true")
	}

	conns := s.Connectors()
	if len(conns) != 1 {
		t.Fatalf("len(Connectors()) = %d, want 1", len(conns))
	}
	c := conns[0]
	if c.FromEmailID != "" {
		t.Fatalf("FromEmailID = %q, want empty", c.FromEmailID)
	}
	if c.ActionNode == nil || *c.ActionNode != (point{200, 300}) {
		t.Fatalf("ActionNode = %v, want {200 300}", c.ActionNode)
	}
	if c.start() != c.end() {
		t.Fatalf("start %v != end %v, want equal", c.start(), c.end())
	}
	assertSceneInvariants(t, s)
}

func TestClick_SuppressedRightAfterGesture(t *testing.T) {
	s, ctrl, clock := newTestController()
	ctrl.PointerDown(point{5, 4}, Hit{Kind: HitCard, EmailID: "1"})
	ctrl.PointerUp(point{6, 4})

	clock.advance(50 * time.Millisecond)
	if ctrl.Click(point{200, 10}, Hit{Kind: HitCanvas}) {
		t.Fatalf("Click() 50ms after release = true, want false")
	}
	clock.advance(100 * time.Millisecond)
	if !ctrl.Click(point{200, 10}, Hit{Kind: HitCanvas}) {
		t.Fatalf("Click() 150ms after release = false, want true")
	}
	if got := len(s.Connectors()); got != 1 {
		t.Fatalf("len(Connectors()) = %d, want 1", got)
	}
}

func TestClick_IgnoredOffCanvasOrMidGesture(t *testing.T) {
	s, ctrl, _ := newTestController()
	if ctrl.Click(point{5, 4}, Hit{Kind: HitCard, EmailID: "1"}) {
		t.Fatalf("Click(card) = true, want false")
	}
	ctrl.PointerDown(point{5, 4}, Hit{Kind: HitCard, EmailID: "1"})
	if ctrl.Click(point{200, 10}, Hit{Kind: HitCanvas}) {
		t.Fatalf("Click() during drag = true, want false")
	}
	if got := len(s.Connectors()); got != 0 {
		t.Fatalf("len(Connectors()) = %d, want 0", got)
	}
}

func TestDragSentCard_ConnectorEndFollows(t *testing.T) {
	s, ctrl, clock := newTestController()
	s.AddConnector(openConnector("c1", point{80, 10}))
	s.SelectAction(string(TypeCompose), "c1")
	s.SetDraftField(FieldRecipient, "a@b.com")
	s.SetDraftField(FieldSubject, "Hi")
	s.SetDraftField(FieldContent, "Hello world")
	sent, ok := s.SendCompose(clock.t)
	if !ok {
		t.Fatalf("SendCompose() ok = false")
	}

	grab := sent.Position.add(point{2, 1})
	ctrl.PointerDown(grab, Hit{Kind: HitCard, EmailID: sent.ID})
	ctrl.PointerMove(grab.add(point{10, 4}))
	ctrl.PointerUp(grab.add(point{10, 4}))

	e, _ := s.Email(sent.ID)
	c, _ := s.Connector("c1")
	if want := defaultLayout().cardAnchor(e); c.end() != want {
		t.Fatalf("end = %v, want %v", c.end(), want)
	}
	assertSceneInvariants(t, s)
}
