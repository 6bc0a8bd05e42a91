package stars

// Clock accumulates elapsed seconds across frames. It never runs backwards.
type Clock struct {
	Elapsed float32
}

// Advance adds dt (negative values count as zero) and returns the new elapsed time.
func (c *Clock) Advance(dt float32) float32 {
	if dt > 0 {
		c.Elapsed += dt
	}
	return c.Elapsed
}
