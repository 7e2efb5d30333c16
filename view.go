package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Background(lipgloss.Color("#1F2937"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDanger)).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRead)).Bold(true)
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	chipOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(colorAccent)).Bold(true)
	helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorUnread)).Bold(true)
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch {
	case m.mode == ModeStartup:
		return m.renderWelcome()
	case m.help:
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(renderChips(m.filter))
	b.WriteString("\n")

	c := NewCanvas(m.width, m.canvasHeight(), m.panX, m.panY)
	snap := m.scene.Snapshot()
	drawScene(c, snap, m.cfg.Layout, m.filter, sceneDecor{
		menu:     m.menu,
		focus:    m.focus,
		cursor:   m.input.Position(),
		selected: m.selectedEmail,
	})
	for _, line := range c.Lines(true) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

type chip struct {
	filter FilterType
	x, w   int
}

func chips() []chip {
	var out []chip
	x := 1
	for _, f := range filterOrder {
		w := len(f.Label()) + 2
		out = append(out, chip{filter: f, x: x, w: w})
		x += w + 1
	}
	return out
}

// chipAt returns the filter chip under screen column x on the chip bar.
func chipAt(x int) (FilterType, bool) {
	for _, ch := range chips() {
		if x >= ch.x && x < ch.x+ch.w {
			return ch.filter, true
		}
	}
	return FilterAll, false
}

func renderChips(active FilterType) string {
	var b strings.Builder
	b.WriteString(" ")
	for i, ch := range chips() {
		if i > 0 {
			b.WriteString(" ")
		}
		label := "[" + ch.filter.Label() + "]"
		if ch.filter == active {
			b.WriteString(chipOnStyle.Render(label))
		} else {
			b.WriteString(chipStyle.Render(label))
		}
	}
	return b.String()
}

// sceneDecor carries the interactive state drawn over the scene. Exports
// pass the zero value.
type sceneDecor struct {
	menu     *contextMenu
	focus    inputFocus
	cursor   int
	selected string
}

// drawScene paints connectors first, then cards bottom to top, then action
// nodes and the context menu over everything.
func drawScene(c *Canvas, snap Snapshot, l Layout, filter FilterType, d sceneDecor) {
	for _, conn := range snap.Connectors {
		style := StyleFor(conn.State)
		c.curve(conn.start(), conn.end(), l.CurveClamp, style)
		if conn.Label != "" && !conn.isOpen() {
			mid := LabelMidpoint(conn.start(), conn.end())
			x := int(math.Round(mid.X)) - len([]rune(conn.Label))/2
			c.text(x, int(math.Round(mid.Y))-1, conn.Label, c.color(style.Color(), true), 0)
		}
	}

	if g := snap.Gesture; g.Kind == GestureDrawConnector {
		c.curve(g.Start, g.Live, l.CurveClamp, ConnectorStyle{Hex: colorAccent, Dashed: true})
	}

	for _, e := range stackedEmails(snap.Emails, filter) {
		dragging := snap.Gesture.Kind == GestureDragCard && snap.Gesture.EmailID == e.ID
		drawCard(c, e, dragging || d.selected == e.ID)
	}

	for _, conn := range snap.Connectors {
		if conn.isOpen() {
			drawNode(c, l, conn, snap.Compose, d)
		}
	}

	if d.menu != nil {
		drawMenu(c, *d.menu)
	}
}

func cardBorderColor(e Email) lipgloss.Color {
	switch {
	case e.IsStarred:
		return colorStarred
	case e.IsRead:
		return colorRead
	default:
		return colorUnread
	}
}

func drawCard(c *Canvas, e Email, highlight bool) {
	r := cardRect(e)
	border := c.color(cardBorderColor(e), highlight)
	c.box(r, border, "", -1)

	text := c.color(colorText, false)
	dim := c.color(colorDim, false)
	x := r.X + 2

	c.text(x, r.Y+1, e.Sender, c.color(colorText, true), cardWidth-8)
	toggle := "[^]"
	if e.IsMinimized {
		toggle = "[v]"
	}
	mr := minimizeRect(e)
	c.text(mr.X, mr.Y, toggle, dim, 0)
	c.text(x, r.Y+2, e.Subject, text, cardWidth-4)

	if !e.IsMinimized {
		for i, line := range wrapText(e.Preview, cardWidth-4, previewLines) {
			c.text(x, r.Y+3+i, line, dim, 0)
		}
	}

	footer := r.Y + r.H - 2
	if e.IsStarred {
		c.text(x, footer, "★ Starred", c.color(colorStarred, false), 0)
	}
	badge, badgeColor := "[Unread]", c.color(colorAccent, true)
	if e.IsRead {
		badge, badgeColor = "[Read]", dim
	}
	c.text(r.X+r.W-2-len(badge), footer, badge, badgeColor, 0)

	h := handleCell(e)
	c.set(h.X, h.Y, '◉', c.color(colorAccent, true))
}

func drawNode(c *Canvas, l Layout, conn Connector, cs ComposeState, d sceneDecor) {
	r := l.nodeRect(conn, cs)
	dim := c.color(colorDim, false)
	text := c.color(colorText, false)
	focused := d.focus.ConnectorID == conn.ID

	switch nodeKindFor(conn, cs) {
	case nodeCompose:
		c.box(r, c.color(colorAccent, false), "Compose Email", c.color(colorAccent, true))
		c.text(r.X+2, r.Y+1, "To:", dim, 0)
		c.text(r.X+2, r.Y+2, "Subject:", dim, 0)
		c.text(r.X+2, r.Y+3, "Message:", dim, 0)

		fields := []struct {
			field       DraftField
			value       string
			placeholder string
		}{
			{FieldRecipient, cs.Draft.Recipient, "Recipient email"},
			{FieldSubject, cs.Draft.Subject, "Email subject"},
			{FieldContent, cs.Draft.Content, "Write your message..."},
		}
		for _, f := range fields {
			fr := draftInputRect(r, f.field)
			cursor := -1
			if focused && !d.focus.Search && d.focus.Field == f.field {
				cursor = d.cursor
			}
			drawInput(c, fr, f.value, f.placeholder, cursor, text, dim)
		}

		sendColor := dim
		if cs.Draft.complete() {
			sendColor = c.color(colorAccent, true)
		}
		cr, sr := cancelButtonRect(r), sendButtonRect(r)
		c.text(cr.X, cr.Y, "[Cancel]", text, 0)
		c.text(sr.X, sr.Y, "[Send]", sendColor, 0)

	default:
		c.box(r, dim, "Search Actions", text)
		query := ""
		if cs.Kind == ComposeSearching && cs.ConnectorID == conn.ID {
			query = cs.Query
		}
		cursor := -1
		if focused && d.focus.Search {
			cursor = d.cursor
		}
		drawInput(c, searchInputRect(r), query, "Search actions...", cursor, text, dim)

		if nodeKindFor(conn, cs) == nodeDropdown {
			matches := FilterActions(cs.Query)
			if len(matches) > 0 {
				c.set(r.X, r.Y+2, '├', dim)
				c.hline(r.X+1, r.X+r.W-2, r.Y+2, dim)
				c.set(r.X+r.W-1, r.Y+2, '┤', dim)
			}
			for i, a := range matches {
				ir := dropdownItemRect(r, i)
				c.text(ir.X+1, ir.Y, "› "+a.Label, text, ir.W-1)
			}
		}
	}

	dr := deleteRect(r)
	c.text(dr.X, dr.Y, "[x]", c.color(colorDanger, true), 0)
}

// drawInput renders value inside r, hard-wrapping when r has more than one
// row. A cursor >= 0 draws the caret and keeps its row in view.
func drawInput(c *Canvas, r rect, value, placeholder string, cursor, color, dim int) {
	runes := []rune(value)
	if len(runes) == 0 && cursor < 0 {
		c.text(r.X, r.Y, placeholder, dim, r.W)
		return
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	caret := cursor
	if caret < 0 {
		caret = 0
	}
	first := 0
	if r.H == 1 {
		if caret >= r.W {
			first = caret - r.W + 1
		}
	} else if row := caret / r.W; row >= r.H {
		first = (row - r.H + 1) * r.W
	}

	for i := first; i < len(runes) && i-first < r.W*r.H; i++ {
		off := i - first
		c.set(r.X+off%r.W, r.Y+off/r.W, runes[i], color)
	}
	if cursor >= 0 {
		off := cursor - first
		if off < r.W*r.H {
			c.set(r.X+off%r.W, r.Y+off/r.W, '█', c.color(colorAccent, false))
		}
	}
}

func drawMenu(c *Canvas, menu contextMenu) {
	dim := c.color(colorDim, false)
	c.box(menuRect(menu), dim, "", -1)
	for i, item := range menuItems {
		ir := menuItemRect(menu, i)
		color := c.color(colorText, false)
		if i == menuDelete {
			color = c.color(colorDanger, false)
		}
		c.text(ir.X+1, ir.Y, item, color, ir.W-1)
	}
}

const welcomeHeight = 14

var envelope = []string{
	"╭────────────────────╮",
	"│╲                  ╱│",
	"│  ╲──────────────╱  │",
	"│                    │",
	"╰────────────────────╯",
}

// startButtonRect is the screen area of the welcome screen's start button,
// one cell wider on each side to absorb centering rounding.
func startButtonRect(width, height int) rect {
	top := (height - welcomeHeight) / 2
	if top < 0 {
		top = 0
	}
	return rect{(width-9)/2 - 1, top + welcomeHeight - 2, 11, 3}
}

func (m model) renderWelcome() string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	button := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(colorAccent)).Bold(true)

	var rows []string
	for _, line := range envelope {
		rows = append(rows, title.Render(line))
	}
	rows = append(rows, "", title.Render("mailflow"), dim.Render("Drag emails into actions"), "")

	emails := m.scene.Emails()
	for i := 0; i < 3; i++ {
		if i < len(emails) {
			rows = append(rows, "• "+truncateRunes(emails[i].Subject, 40))
		} else {
			rows = append(rows, "")
		}
	}
	rows = append(rows, "", button.Render("[ Start ]"))

	block := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m model) renderHelp() string {
	var rows []string
	rows = append(rows, helpKeyStyle.Render("mailflow keys"), "")
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			rows = append(rows, fmt.Sprintf("%s  %s", helpKeyStyle.Render(fmt.Sprintf("%-12s", h.Key)), h.Desc))
		}
		rows = append(rows, "")
	}
	rows = append(rows, chipStyle.Render("Mouse: drag cards, drag ◉ to draw, click canvas for an action node, right click a card for its menu"))
	block := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func (m model) renderStatus() string {
	if m.mode == ModeConfirm {
		prompt := "Quit mailflow? (y/n)"
		if m.confirmAction == ConfirmDeleteEmail {
			subject := ""
			if e, ok := m.scene.Email(m.confirmEmailID); ok {
				subject = e.Subject
			}
			prompt = fmt.Sprintf("Delete %q? (y/n)", subject)
		}
		return errorStyle.Render(prompt)
	}

	switch {
	case m.errorMessage != "":
		return errorStyle.Render("ERROR: " + m.errorMessage)
	case m.successMessage != "":
		return successStyle.Render(m.successMessage)
	}

	compose := "closed"
	switch m.scene.Compose().Kind {
	case ComposeSearching:
		compose = "searching"
	case ComposeComposing:
		compose = "composing"
	}
	status := fmt.Sprintf(" %s | %d emails | %d connectors | %s | compose: %s | pan %d,%d | ? help",
		m.filter.Label(), len(VisibleEmails(m.scene.Emails(), m.filter)), len(m.scene.Connectors()),
		m.ctrl.Gesture().Kind, compose, m.panX, m.panY)
	return statusStyle.Width(m.width).Render(truncateRunes(status, m.width))
}
