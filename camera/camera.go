// Package camera provides the viewer's 2D camera over the square arena.
package camera

// Camera controls the viewport into the arena. Zoom is pixels per arena unit
// relative to the fit zoom, so 1.0 shows the whole arena.
type Camera struct {
	// Position is the camera center in arena coordinates
	X, Y float32

	// Zoom level (1.0 = whole arena fits the viewport)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Arena side in units
	Side float32

	MaxZoom float32
}

// New creates a camera showing the whole arena.
func New(viewportW, viewportH, side float32) *Camera {
	return &Camera{
		X:         side / 2,
		Y:         side / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Side:      side,
		MaxZoom:   4.0,
	}
}

// Scale returns the current pixels per arena unit.
func (c *Camera) Scale() float32 {
	return min(c.ViewportW, c.ViewportH) / c.Side * c.Zoom
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	return c.ViewportW/2 + (wx-c.X)*s, c.ViewportH/2 + (wy-c.Y)*s
}

// ScreenToWorld converts screen coordinates to arena coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	return c.X + (sx-c.ViewportW/2)/s, c.Y + (sy-c.ViewportH/2)/s
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// Follow centers the camera on an arena point, within the bounds.
func (c *Camera) Follow(wx, wy float32) {
	c.X, c.Y = wx, wy
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to [1, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, 1, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the whole-arena view.
func (c *Camera) Reset() {
	c.X = c.Side / 2
	c.Y = c.Side / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the arena-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampCenter keeps the view from scrolling past the arena when zoomed in.
func (c *Camera) clampCenter() {
	s := c.Scale()
	halfW := min(c.ViewportW/(2*s), c.Side/2)
	halfH := min(c.ViewportH/(2*s), c.Side/2)
	c.X = clamp(c.X, halfW, c.Side-halfW)
	c.Y = clamp(c.Y, halfH, c.Side-halfH)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
