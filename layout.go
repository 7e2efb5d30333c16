package main

import "sort"

// Layout holds the fixed offsets tying connector anchors to the boxes drawn
// around them.
type Layout struct {
	ActionAnchorOffset int `toml:"action_anchor_offset"`
	CardAnchorOffset   int `toml:"card_anchor_offset"`
	NewCardOffset      int `toml:"new_card_offset"`
	CurveClamp         int `toml:"curve_clamp"`
}

func defaultLayout() Layout {
	return Layout{
		ActionAnchorOffset: defaultActionAnchorOffset,
		CardAnchorOffset:   defaultCardAnchorOffset,
		NewCardOffset:      defaultNewCardOffset,
		CurveClamp:         defaultCurveClamp,
	}
}

// actionAnchor is where a connector meets the action node at p: the node's
// left edge on its vertical center.
func (l Layout) actionAnchor(p point) point {
	return point{p.X - l.ActionAnchorOffset, p.Y}
}

// cardAnchor is where a resolved connector meets an email: its left edge.
func (l Layout) cardAnchor(e Email) point {
	return point{e.Position.X, e.Position.Y + l.CardAnchorOffset}
}

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(p point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func cardRect(e Email) rect {
	return rect{e.Position.X, e.Position.Y, cardWidth, e.height()}
}

func handleCell(e Email) point {
	return point{e.Position.X + cardWidth, e.Position.Y + e.height()/2}
}

func minimizeRect(e Email) rect {
	return rect{e.Position.X + cardWidth - 5, e.Position.Y + 1, 3, 1}
}

type nodeKind int

const (
	nodeSearch nodeKind = iota
	nodeDropdown
	nodeCompose
)

func nodeKindFor(c Connector, cs ComposeState) nodeKind {
	if cs.ConnectorID != c.ID {
		return nodeSearch
	}
	switch cs.Kind {
	case ComposeComposing:
		return nodeCompose
	case ComposeSearching:
		return nodeDropdown
	}
	return nodeSearch
}

// nodeRect is the box drawn for an open connector's action node.
func (l Layout) nodeRect(c Connector, cs ComposeState) rect {
	at := *c.ActionNode
	left := at.X - l.ActionAnchorOffset
	switch nodeKindFor(c, cs) {
	case nodeCompose:
		return rect{left, at.Y - composeNodeTopRise, nodeWidth, composeNodeHeight}
	case nodeDropdown:
		n := len(FilterActions(cs.Query))
		if n == 0 {
			return rect{left, at.Y - 1, nodeWidth, searchNodeHeight}
		}
		return rect{left, at.Y - 1, nodeWidth, searchNodeHeight + n + 1}
	default:
		return rect{left, at.Y - 1, nodeWidth, searchNodeHeight}
	}
}

func deleteRect(r rect) rect {
	return rect{r.X + r.W - 4, r.Y, 3, 1}
}

func searchInputRect(r rect) rect {
	return rect{r.X + 2, r.Y + 1, r.W - 4, 1}
}

func dropdownItemRect(r rect, i int) rect {
	return rect{r.X + 1, r.Y + 3 + i, r.W - 2, 1}
}

func draftInputRect(r rect, f DraftField) rect {
	x := r.X + 1 + composeLabelWidth
	w := r.W - 2 - composeLabelWidth
	switch f {
	case FieldRecipient:
		return rect{x, r.Y + 1, w, 1}
	case FieldSubject:
		return rect{x, r.Y + 2, w, 1}
	default:
		return rect{r.X + 2, r.Y + 4, r.W - 4, 3}
	}
}

func sendButtonRect(r rect) rect {
	return rect{r.X + r.W - 9, r.Y + 8, 6, 1}
}

func cancelButtonRect(r rect) rect {
	return rect{r.X + r.W - 18, r.Y + 8, 8, 1}
}

func menuRect(m contextMenu) rect {
	return rect{m.At.X, m.At.Y, menuWidth, len(menuItems) + 2}
}

func menuItemRect(m contextMenu, i int) rect {
	return rect{m.At.X + 1, m.At.Y + 1 + i, menuWidth - 2, 1}
}

var menuItems = []string{"Star", "Toggle read", "Delete"}

const (
	menuStar = iota
	menuRead
	menuDelete
)

// stackedEmails returns the visible emails ordered bottom to top.
func stackedEmails(emails []Email, filter FilterType) []Email {
	visible := VisibleEmails(emails, filter)
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].ZIndex < visible[j].ZIndex
	})
	return visible
}

// hitTest classifies p in canvas coordinates. Precedence: context menu,
// delete control, text inputs/dropdown/buttons, connector handle, action-node
// body, card body, empty canvas.
func (l Layout) hitTest(snap Snapshot, filter FilterType, menu *contextMenu, p point) Hit {
	if menu != nil && menuRect(*menu).contains(p) {
		for i := range menuItems {
			if menuItemRect(*menu, i).contains(p) {
				return Hit{Kind: HitMenuItem, EmailID: menu.EmailID, MenuItem: i}
			}
		}
		return Hit{Kind: HitMenuItem, EmailID: menu.EmailID, MenuItem: -1}
	}

	stack := stackedEmails(snap.Emails, filter)
	var open []Connector
	for i := len(snap.Connectors) - 1; i >= 0; i-- {
		if snap.Connectors[i].isOpen() {
			open = append(open, snap.Connectors[i])
		}
	}

	for _, c := range open {
		if deleteRect(l.nodeRect(c, snap.Compose)).contains(p) {
			return Hit{Kind: HitDelete, ConnectorID: c.ID}
		}
	}

	for _, c := range open {
		if h, ok := l.nodeControlAt(c, snap.Compose, p); ok {
			return h
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if minimizeRect(stack[i]).contains(p) {
			return Hit{Kind: HitButton, Button: ButtonMinimize, EmailID: stack[i].ID}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if handleCell(stack[i]) == p {
			return Hit{Kind: HitHandle, EmailID: stack[i].ID}
		}
	}

	for _, c := range open {
		if l.nodeRect(c, snap.Compose).contains(p) {
			return Hit{Kind: HitActionNode, ConnectorID: c.ID}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if cardRect(stack[i]).contains(p) {
			return Hit{Kind: HitCard, EmailID: stack[i].ID}
		}
	}
	return Hit{Kind: HitCanvas}
}

func (l Layout) nodeControlAt(c Connector, cs ComposeState, p point) (Hit, bool) {
	r := l.nodeRect(c, cs)
	if !r.contains(p) {
		return Hit{}, false
	}
	switch nodeKindFor(c, cs) {
	case nodeCompose:
		for _, f := range []DraftField{FieldRecipient, FieldSubject, FieldContent} {
			if draftInputRect(r, f).contains(p) {
				return Hit{Kind: HitDraftInput, ConnectorID: c.ID, Field: f}, true
			}
		}
		if sendButtonRect(r).contains(p) {
			return Hit{Kind: HitButton, Button: ButtonSend, ConnectorID: c.ID}, true
		}
		if cancelButtonRect(r).contains(p) {
			return Hit{Kind: HitButton, Button: ButtonCancel, ConnectorID: c.ID}, true
		}
	case nodeDropdown:
		for i, a := range FilterActions(cs.Query) {
			if dropdownItemRect(r, i).contains(p) {
				return Hit{Kind: HitDropdown, ConnectorID: c.ID, ActionID: a.ID}, true
			}
		}
		fallthrough
	default:
		if searchInputRect(r).contains(p) {
			return Hit{Kind: HitSearchInput, ConnectorID: c.ID}, true
		}
	}
	return Hit{}, false
}
