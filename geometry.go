package main

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

type fpoint struct {
	X, Y float64
}

// Curve is a cubic Bézier from P0 to P3. Control points sit on the
// horizontal through each endpoint so lines leave and enter left-to-right.
type Curve struct {
	P0, C1, C2, P3 fpoint
}

// CurveBetween offsets both control points by 0.4 of the endpoint distance,
// clamped to clamp, regardless of the vertical gap.
func CurveBetween(start, end point, clamp int) Curve {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	d := math.Min(math.Hypot(dx, dy)*0.4, float64(clamp))

	sx, sy := float64(start.X), float64(start.Y)
	ex, ey := float64(end.X), float64(end.Y)
	return Curve{
		P0: fpoint{sx, sy},
		C1: fpoint{sx + d, sy},
		C2: fpoint{ex - d, ey},
		P3: fpoint{ex, ey},
	}
}

func (c Curve) At(t float64) fpoint {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return fpoint{
		X: a*c.P0.X + b*c.C1.X + d*c.C2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.C1.Y + d*c.C2.Y + e*c.P3.Y,
	}
}

// Sample returns n+1 evenly spaced points including both endpoints.
func (c Curve) Sample(n int) []fpoint {
	if n < 1 {
		n = 1
	}
	pts := make([]fpoint, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.At(float64(i)/float64(n)))
	}
	return pts
}

func LabelMidpoint(start, end point) fpoint {
	return fpoint{
		X: float64(start.X+end.X) / 2,
		Y: float64(start.Y+end.Y) / 2,
	}
}

type ConnectorStyle struct {
	Hex    string
	Dashed bool
	Dash   [2]float64
}

func (s ConnectorStyle) Color() lipgloss.Color {
	return lipgloss.Color(s.Hex)
}

func StyleFor(state ConnectorState) ConnectorStyle {
	switch state {
	case StatePending:
		return ConnectorStyle{Hex: "#FFA500", Dashed: true, Dash: [2]float64{5, 5}}
	case StateCompleted:
		return ConnectorStyle{Hex: "#10B981"}
	case StateError:
		return ConnectorStyle{Hex: "#EF4444", Dashed: true, Dash: [2]float64{3, 3}}
	default:
		return ConnectorStyle{Hex: "#1751CF"}
	}
}
