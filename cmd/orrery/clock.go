package main

// clock is the time-control collaborator: it advances kernel time by a
// fixed step each frame, scaled by speed and direction, unless paused.
type clock struct {
	t       float64
	step    float64
	speed   float64
	reverse bool
	paused  bool
}

// advance moves to the next frame and returns the new time.
func (c *clock) advance() float64 {
	if c.paused {
		return c.t
	}
	dt := c.step * c.speed
	if c.reverse {
		dt = -dt
	}
	c.t += dt
	return c.t
}

func (c *clock) toggle() {
	c.paused = !c.paused
}
