package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorUnread  = "#C4B5FD"
	colorRead    = "#22C55E"
	colorStarred = "#FACC15"
	colorDim     = "#6B7280"
	colorAccent  = "#1751CF"
	colorDanger  = "#EF4444"
	colorText    = "#E5E7EB"
)

// Canvas is a rune grid with a parallel color map indexing into a palette
// of lipgloss styles. Drawing happens in canvas coordinates and is shifted
// by the pan offset.
type Canvas struct {
	width, height int
	panX, panY    int
	cells         [][]rune
	colorMap      [][]int
	palette       []lipgloss.Style
	paletteIndex  map[string]int
}

func NewCanvas(width, height, panX, panY int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{
		width:        width,
		height:       height,
		panX:         panX,
		panY:         panY,
		cells:        make([][]rune, height),
		colorMap:     make([][]int, height),
		paletteIndex: make(map[string]int),
	}
	for i := range c.cells {
		c.cells[i] = make([]rune, width)
		c.colorMap[i] = make([]int, width)
		for j := range c.cells[i] {
			c.cells[i][j] = ' '
			c.colorMap[i][j] = -1
		}
	}
	return c
}

// color returns the palette slot for a foreground, adding it on first use.
func (c *Canvas) color(col lipgloss.Color, bold bool) int {
	key := string(col)
	if bold {
		key += "+b"
	}
	if idx, ok := c.paletteIndex[key]; ok {
		return idx
	}
	style := lipgloss.NewStyle().Foreground(col).Bold(bold)
	c.palette = append(c.palette, style)
	c.paletteIndex[key] = len(c.palette) - 1
	return len(c.palette) - 1
}

func (c *Canvas) set(x, y int, r rune, color int) {
	sx, sy := x-c.panX, y-c.panY
	if sy < 0 || sy >= c.height || sx < 0 || sx >= c.width {
		return
	}
	c.cells[sy][sx] = r
	c.colorMap[sy][sx] = color
}

// text writes s from (x,y), truncated to max runes when max > 0.
func (c *Canvas) text(x, y int, s string, color, max int) {
	i := 0
	for _, r := range s {
		if max > 0 && i >= max {
			break
		}
		c.set(x+i, y, r, color)
		i++
	}
}

func (c *Canvas) fill(r rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, ' ', -1)
		}
	}
}

func (c *Canvas) box(r rect, color int, title string, titleColor int) {
	c.fill(r)
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, '─', color)
		c.set(x, bottom, '─', color)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, '│', color)
		c.set(right, y, '│', color)
	}
	c.set(r.X, r.Y, '╭', color)
	c.set(right, r.Y, '╮', color)
	c.set(r.X, bottom, '╰', color)
	c.set(right, bottom, '╯', color)
	if title != "" {
		c.text(r.X+2, r.Y, " "+title+" ", titleColor, r.W-4)
	}
}

func (c *Canvas) hline(x1, x2, y int, color int) {
	for x := x1; x <= x2; x++ {
		c.set(x, y, '─', color)
	}
}

// curve rasterizes the Bézier between start and end, picking a line glyph
// from the local direction of travel. Dashed styles leave every other pair
// of cells blank.
func (c *Canvas) curve(start, end point, clamp int, style ConnectorStyle) {
	color := c.color(style.Color(), false)
	bz := CurveBetween(start, end, clamp)
	n := 4 + 2*(abs(end.X-start.X)+abs(end.Y-start.Y))
	pts := bz.Sample(n)

	plotted := 0
	last := point{math.MinInt32, math.MinInt32}
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		cell := point{int(math.Round(cur.X)), int(math.Round(cur.Y))}
		if cell == last {
			continue
		}
		last = cell
		plotted++
		if style.Dashed && (plotted/2)%2 == 1 {
			continue
		}
		c.set(cell.X, cell.Y, lineGlyph(cur.X-prev.X, cur.Y-prev.Y), color)
	}
	c.set(end.X, end.Y, '●', c.color(colorAccent, false))
}

func lineGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= ax*0.5:
		return '─'
	case ax <= ay*0.5:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// Lines renders the grid. Colored output groups runs of equal color into
// one lipgloss render each.
func (c *Canvas) Lines(colored bool) []string {
	out := make([]string, c.height)
	for i, row := range c.cells {
		if !colored {
			out[i] = strings.TrimRight(string(row), " ")
			continue
		}
		var line strings.Builder
		runStart := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.colorMap[i][j] == c.colorMap[i][runStart] {
				continue
			}
			run := string(row[runStart:j])
			if idx := c.colorMap[i][runStart]; idx >= 0 {
				line.WriteString(c.palette[idx].Render(run))
			} else {
				line.WriteString(run)
			}
			runStart = j
		}
		out[i] = line.String()
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// wrapText breaks s into at most lines rows of width runes, ending the last
// row with an ellipsis when text remains.
func wrapText(s string, width, lines int) []string {
	if width <= 0 || lines <= 0 {
		return nil
	}
	words := strings.Fields(s)
	var rows []string
	var cur []rune
	i := 0
	for ; i < len(words) && len(rows) < lines; i++ {
		w := []rune(words[i])
		if len(cur) > 0 {
			if len(cur)+1+len(w) <= width {
				cur = append(cur, ' ')
				cur = append(cur, w...)
				continue
			}
			rows = append(rows, string(cur))
			cur = nil
			if len(rows) == lines {
				break
			}
		}
		cur = append(cur, w...)
		for len(cur) > width && len(rows) < lines {
			rows = append(rows, string(cur[:width]))
			cur = cur[width:]
		}
	}
	if len(cur) > 0 && len(rows) < lines {
		rows = append(rows, string(cur))
		cur = nil
	}
	if (len(cur) > 0 || i < len(words)) && width > 3 {
		last := []rune(rows[len(rows)-1])
		if len(last) > width-3 {
			last = last[:width-3]
		}
		rows[len(rows)-1] = string(last) + "..."
	}
	return rows
}
