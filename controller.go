package main

import (
	"fmt"
	"log"
	"time"
)

// Controller is the only code that moves the scene in and out of a gesture.
// Motion and release are only consumed while tracking, which starts with a
// gesture and stops when it ends.
type Controller struct {
	scene      *Scene
	layout     Layout
	now        func() time.Time
	tracking   bool
	releasedAt time.Time
}

func NewController(scene *Scene, layout Layout) *Controller {
	return &Controller{
		scene:  scene,
		layout: layout,
		now:    time.Now,
	}
}

func (c *Controller) Tracking() bool { return c.tracking }

func (c *Controller) Gesture() Gesture { return c.scene.gesture }

// PointerDown starts the gesture owned by the surface under p. Surfaces that
// are not gesture origins (inputs, buttons, delete controls, empty canvas)
// return false and leave the scene alone.
func (c *Controller) PointerDown(p point, hit Hit) bool {
	switch hit.Kind {
	case HitCard:
		e, ok := c.scene.Email(hit.EmailID)
		if !ok {
			return false
		}
		c.begin(Gesture{
			Kind:    GestureDragCard,
			EmailID: e.ID,
			Offset:  p.sub(e.Position),
		})
		c.scene.RaiseZIndex(e.ID)
		return true

	case HitHandle:
		if _, ok := c.scene.Email(hit.EmailID); !ok {
			return false
		}
		c.begin(Gesture{
			Kind:    GestureDrawConnector,
			EmailID: hit.EmailID,
			Start:   p,
			Live:    p,
		})
		return true

	case HitActionNode:
		conn, ok := c.scene.Connector(hit.ConnectorID)
		if !ok {
			return false
		}
		origin := conn.end()
		if conn.ActionNode != nil {
			origin = *conn.ActionNode
		}
		c.begin(Gesture{
			Kind:        GestureDragActionNode,
			ConnectorID: conn.ID,
			Offset:      p.sub(origin),
		})
		return true
	}
	return false
}

func (c *Controller) begin(g Gesture) {
	if c.scene.gesture.Kind != GestureIdle {
		panic(fmt.Sprintf("begin %s while %s is active", g.Kind, c.scene.gesture.Kind))
	}
	c.scene.gesture = g
	c.tracking = true
	log.Printf("gesture %s started", g.Kind)
}

func (c *Controller) PointerMove(p point) {
	if !c.tracking {
		return
	}
	g := c.scene.gesture
	switch g.Kind {
	case GestureDragCard:
		c.moveCard(g.EmailID, p.sub(g.Offset))
	case GestureDrawConnector:
		c.scene.gesture.Live = c.layout.actionAnchor(p)
	case GestureDragActionNode:
		at := p.sub(g.Offset)
		c.scene.UpdateConnector(g.ConnectorID, ConnectorPatch{
			ActionNode: &at,
			End:        ptr(c.layout.actionAnchor(at)),
		})
	}
}

// moveCard places the email at pos and drags every attached anchor along.
func (c *Controller) moveCard(id string, pos point) {
	if _, ok := c.scene.Email(id); !ok {
		return
	}
	c.scene.UpdateEmail(id, EmailPatch{Position: &pos})
	e, _ := c.scene.Email(id)

	for _, conn := range c.scene.connectors {
		if conn.FromEmailID == id {
			start := pos.add(point{conn.StartOffsetX, conn.StartOffsetY})
			c.scene.UpdateConnector(conn.ID, ConnectorPatch{Start: &start})
		}
		if conn.Type == TypeSend && conn.ToEmailID == id {
			c.scene.UpdateConnector(conn.ID, ConnectorPatch{End: ptr(c.layout.cardAnchor(e))})
		}
	}
}

func (c *Controller) PointerUp(p point) {
	if !c.tracking {
		return
	}
	g := c.scene.gesture
	switch g.Kind {
	case GestureDragCard, GestureDragActionNode:
		c.PointerMove(p)
	case GestureDrawConnector:
		c.finishConnector(g, p)
	}
	c.scene.gesture = Gesture{}
	c.tracking = false
	c.releasedAt = c.now()
	log.Printf("gesture %s ended", g.Kind)
}

func (c *Controller) finishConnector(g Gesture, p point) {
	var offset point
	if e, ok := c.scene.Email(g.EmailID); ok {
		offset = g.Start.sub(e.Position)
	}
	end := c.layout.actionAnchor(p)
	at := p
	c.scene.AddConnector(Connector{
		ID:           newID(),
		FromEmailID:  g.EmailID,
		StartX:       g.Start.X,
		StartY:       g.Start.Y,
		StartOffsetX: offset.X,
		StartOffsetY: offset.Y,
		EndX:         end.X,
		EndY:         end.Y,
		ActionNode:   &at,
		State:        StateActive,
		Type:         TypeCompose,
		Label:        "Connect",
	})
}

// SuppressClick reports whether a click lands too soon after a gesture
// release to be a deliberate click.
func (c *Controller) SuppressClick() bool {
	if c.releasedAt.IsZero() {
		return false
	}
	return c.now().Sub(c.releasedAt) < clickSuppressWindowMs*time.Millisecond
}

// Click handles a press and release on empty canvas by opening an action
// node right there with no origin email.
func (c *Controller) Click(p point, hit Hit) bool {
	if hit.Kind != HitCanvas || c.tracking || c.scene.gesture.Kind != GestureIdle {
		return false
	}
	if c.SuppressClick() {
		return false
	}
	at := p
	c.scene.AddConnector(Connector{
		ID:         newID(),
		StartX:     p.X,
		StartY:     p.Y,
		EndX:       p.X,
		EndY:       p.Y,
		ActionNode: &at,
		State:      StateActive,
		Type:       TypeCompose,
		Label:      "Connect",
	})
	return true
}
