package main

// The canvas area starts below the chip bar on screen row 0 and stops above
// the status line.
const canvasTop = 1

func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX -= speed
	case "l", "right", "L", "shift+right":
		m.panX += speed
	case "k", "up", "K", "shift+up":
		m.panY -= speed
	case "j", "down", "J", "shift+down":
		m.panY += speed
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// screenToCanvas maps a terminal cell to canvas coordinates.
func (m *model) screenToCanvas(x, y int) point {
	return point{x + m.panX, y - canvasTop + m.panY}
}

func (m *model) canvasHeight() int {
	h := m.height - canvasTop - 1
	if h < 1 {
		return 1
	}
	return h
}

// onCanvas reports whether screen row y belongs to the canvas area.
func (m *model) onCanvas(y int) bool {
	return y >= canvasTop && y < canvasTop+m.canvasHeight()
}
