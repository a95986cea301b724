// Package camera maps the bounded play area onto the window.
package camera

// Camera fits the whole play area into the viewport at a uniform scale,
// centered, with bars on the spare axis.
type Camera struct {
	// Zoom level (screen pixels per world unit)
	Zoom float32

	// Screen offset of the play area's top-left corner
	OffsetX, OffsetY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Play area dimensions
	WorldW, WorldH float32
}

// New creates a camera that fits the play area into the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates viewport dimensions and refits the play area.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Zoom = min(viewportW/c.WorldW, viewportH/c.WorldH)
	c.OffsetX = (viewportW - c.WorldW*c.Zoom) / 2
	c.OffsetY = (viewportH - c.WorldH*c.Zoom) / 2
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.OffsetX + wx*c.Zoom, c.OffsetY + wy*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return (sx - c.OffsetX) / c.Zoom, (sy - c.OffsetY) / c.Zoom
}

// WorldRect converts a world-space rectangle to screen space.
func (c *Camera) WorldRect(x, y, w, h float32) (sx, sy, sw, sh float32) {
	sx, sy = c.WorldToScreen(x, y)
	return sx, sy, w * c.Zoom, h * c.Zoom
}

// IsVisible returns true if any part of the world rectangle lies inside the
// play area. Obstacles entering from the right edge start out invisible.
func (c *Camera) IsVisible(x, y, w, h float32) bool {
	return x < c.WorldW && x+w > 0 && y < c.WorldH && y+h > 0
}
