package physics

// Coordinate is the kinematic state of a moving body.
type Coordinate struct {
	Position Vector2D
	Velocity Vector2D
}

// Bounds is the extent of the reflecting arena; walls sit at 0 and at the bound
// on each axis.
type Bounds struct {
	Width  float64
	Height float64
}

// Motion holds the per-session integration constants.
type Motion struct {
	Radius   float64
	Friction float64
	MinMove  float64
}

// Integrate advances a coordinate by one tick: wall reflection, friction,
// then either a snap to rest or a position update.
//
// A velocity component is reflected whenever the body is past a wall on that
// axis, whichever way it is heading. Walls are tested against the pre-move
// position, so a body that overshot settles back within one step.
func (m Motion) Integrate(c Coordinate, b Bounds) Coordinate {
	v := Vector2D{
		X: reflect(c.Position.X, c.Velocity.X, m.Radius, b.Width),
		Y: reflect(c.Position.Y, c.Velocity.Y, m.Radius, b.Height),
	}.Scale(m.Friction)

	if v.Manhattan() < m.MinMove {
		return Coordinate{Position: c.Position}
	}
	return Coordinate{
		Position: c.Position.Add(v),
		Velocity: v,
	}
}

func reflect(pos, vel, radius, bound float64) float64 {
	if pos+radius > bound || pos < radius {
		return -vel
	}
	return vel
}
