package camera

import "github.com/jakecoffman/cp"

// Camera describes the on-screen viewport rectangle the game renders into.
type Camera struct {
	screenX float64
	screenY float64
	screenW float64
	screenH float64
}

// NewCamera creates a camera covering a screenW x screenH viewport at the
// screen origin.
func NewCamera(screenW, screenH int) *Camera {
	c := &Camera{}
	c.SetScreenSize(screenW, screenH)
	return c
}

// SetScreenSize updates the viewport size in pixels.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = float64(w)
	c.screenH = float64(h)
}

// SetScreenOffset moves the viewport's top-left corner on screen.
func (c *Camera) SetScreenOffset(x, y float64) {
	c.screenX = x
	c.screenY = y
}

// ScreenSize returns the viewport size in pixels.
func (c *Camera) ScreenSize() (float64, float64) {
	return c.screenW, c.screenH
}

// ScreenToViewport maps screen pixels (origin top-left, y down) to viewport
// coordinates (origin bottom-left, y up, 0..1 inside the viewport). Points
// outside the viewport map outside [0,1].
func (c *Camera) ScreenToViewport(screen cp.Vector) cp.Vector {
	if c.screenW == 0 || c.screenH == 0 {
		return cp.Vector{}
	}
	return cp.Vector{
		X: (screen.X - c.screenX) / c.screenW,
		Y: 1 - (screen.Y-c.screenY)/c.screenH,
	}
}

// ViewportToScreen is the inverse of ScreenToViewport.
func (c *Camera) ViewportToScreen(v cp.Vector) cp.Vector {
	return cp.Vector{
		X: c.screenX + v.X*c.screenW,
		Y: c.screenY + (1-v.Y)*c.screenH,
	}
}
