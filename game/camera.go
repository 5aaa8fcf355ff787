package game

// Viewport is the fixed logical screen size. The window scales it to fit.
type Viewport struct {
	Width  float64
	Height float64
}

// Camera is the world point shown at the centre of the viewport.
type Camera struct {
	X, Y float64

	// Lerp is the fraction of the remaining distance closed per second.
	Lerp float64
	// OffsetX keeps the target that far right of the camera's aim.
	OffsetX float64
}

// Follow eases the camera towards target.
func (c *Camera) Follow(target Position, dt float64) {
	c.X += (target.X - c.X + c.OffsetX) * c.Lerp * dt
	c.Y += (target.Y - c.Y) * c.Lerp * dt
}

// Project maps the bottom-left corner of a world rectangle of height h to the
// top-left corner of the same rectangle on screen. World y grows upwards,
// screen y downwards.
func (c Camera) Project(vp Viewport, x, y, h float64) (sx, sy float64) {
	sx = x - c.X + vp.Width/2
	sy = vp.Height/2 - (y - c.Y) - h
	return sx, sy
}
