package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var ErrNothingToExport = errors.New("nothing to export")

const (
	exportPadding    = 2
	exportCharWidth  = 8.0
	exportCharHeight = 16.0
)

// sceneBounds is the smallest rect covering every card, connector endpoint
// and action node, grown by the export padding.
func sceneBounds(snap Snapshot, l Layout) (rect, bool) {
	var minX, minY, maxX, maxY int
	has := false
	grow := func(r rect) {
		if !has {
			minX, minY, maxX, maxY = r.X, r.Y, r.X+r.W, r.Y+r.H
			has = true
			return
		}
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.X+r.W)
		maxY = max(maxY, r.Y+r.H)
	}

	for _, e := range snap.Emails {
		grow(cardRect(e))
		grow(rect{handleCell(e).X, handleCell(e).Y, 1, 1})
	}
	for _, c := range snap.Connectors {
		grow(rect{c.StartX, c.StartY, 1, 1})
		grow(rect{c.EndX, c.EndY, 1, 1})
		if c.isOpen() {
			grow(l.nodeRect(c, snap.Compose))
		}
	}
	if !has {
		return rect{}, false
	}
	return rect{
		X: minX - exportPadding,
		Y: minY - exportPadding,
		W: maxX - minX + 2*exportPadding,
		H: maxY - minY + 2*exportPadding,
	}, true
}

// exportTXT writes the whole scene as plain text, uncolored.
func exportTXT(snap Snapshot, l Layout, filename string) error {
	bounds, ok := sceneBounds(snap, l)
	if !ok {
		return ErrNothingToExport
	}
	c := NewCanvas(bounds.W, bounds.H, bounds.X, bounds.Y)
	drawScene(c, snap, l, FilterAll, sceneDecor{})

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range c.Lines(false) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

// exportPNG renders the scene with real Bézier strokes, one character cell
// mapped to exportCharWidth × exportCharHeight pixels.
func exportPNG(snap Snapshot, l Layout, filename string) error {
	bounds, ok := sceneBounds(snap, l)
	if !ok {
		return ErrNothingToExport
	}

	dc := gg.NewContext(int(float64(bounds.W)*exportCharWidth), int(float64(bounds.H)*exportCharHeight))
	dc.SetHexColor("#111827")
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	px := func(p fpoint) (float64, float64) {
		return (p.X - float64(bounds.X) + 0.5) * exportCharWidth, (p.Y - float64(bounds.Y) + 0.5) * exportCharHeight
	}

	for _, conn := range snap.Connectors {
		drawConnectorPNG(dc, CurveBetween(conn.start(), conn.end(), l.CurveClamp), StyleFor(conn.State), px)
		if conn.Label != "" && !conn.isOpen() {
			x, y := px(LabelMidpoint(conn.start(), conn.end()))
			dc.SetHexColor(StyleFor(conn.State).Hex)
			dc.DrawStringAnchored(conn.Label, x, y-exportCharHeight/2, 0.5, 0.5)
		}
	}

	// Cards and nodes come from the text renderer so the PNG shows the same
	// boxes; only connector lines are replaced by vector strokes.
	c := NewCanvas(bounds.W, bounds.H, bounds.X, bounds.Y)
	drawScene(c, Snapshot{Emails: snap.Emails, Compose: snap.Compose}, l, FilterAll, sceneDecor{})
	for _, conn := range snap.Connectors {
		if conn.isOpen() {
			drawNode(c, l, conn, snap.Compose, sceneDecor{})
		}
	}
	drawCellsPNG(dc, c)

	return dc.SavePNG(filename)
}

func drawConnectorPNG(dc *gg.Context, bz Curve, style ConnectorStyle, px func(fpoint) (float64, float64)) {
	x0, y0 := px(bz.P0)
	x1, y1 := px(bz.C1)
	x2, y2 := px(bz.C2)
	x3, y3 := px(bz.P3)

	dc.SetHexColor(style.Hex)
	dc.SetLineWidth(2)
	if style.Dashed {
		dc.SetDash(style.Dash[0]*2, style.Dash[1]*2)
	} else {
		dc.SetDash()
	}
	dc.MoveTo(x0, y0)
	dc.CubicTo(x1, y1, x2, y2, x3, y3)
	dc.Stroke()
	dc.SetDash()

	dc.DrawCircle(x3, y3, 3)
	dc.Fill()
}

// drawCellsPNG paints each non-blank cell of the rasterized scene as a
// glyph in its palette color.
func drawCellsPNG(dc *gg.Context, c *Canvas) {
	hexes := make([]string, len(c.palette))
	for key, idx := range c.paletteIndex {
		hexes[idx] = strings.TrimSuffix(key, "+b")
	}
	for y, row := range c.cells {
		for x, r := range row {
			if r == ' ' {
				continue
			}
			hex := colorText
			if idx := c.colorMap[y][x]; idx >= 0 {
				hex = hexes[idx]
			}
			dc.SetHexColor(hex)
			cx := (float64(x) + 0.5) * exportCharWidth
			cy := (float64(y) + 0.5) * exportCharHeight
			dc.DrawStringAnchored(string(r), cx, cy, 0.5, 0.5)
		}
	}
}
