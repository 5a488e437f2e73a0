// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles overlap. Touching circles do not collide.
func (c Circle) Collides(other Circle) bool {
	reach := c.Radius + other.Radius
	return DistanceSquared(c.Center, other.Center) < reach*reach
}

// Exchange resolves an elastic collision between two bodies of equal mass.
//
// Each velocity is split into a component along the unit normal from a to b and
// a tangential component; the normal components are swapped. Both bodies are
// then advanced by their new velocity so they separate in the same tick.
//
// When the centers coincide the normal is undefined: velocities are left
// untouched and exchanged is false. The positional nudge is applied either way.
func Exchange(a, b Coordinate) (Coordinate, Coordinate, bool) {
	normal := b.Position.Sub(a.Position).Normalize()
	exchanged := normal != (Vector2D{})

	if exchanged {
		tangent := normal.Perp()

		aNormal, aTangent := a.Velocity.Dot(normal), a.Velocity.Dot(tangent)
		bNormal, bTangent := b.Velocity.Dot(normal), b.Velocity.Dot(tangent)

		a.Velocity = normal.Scale(bNormal).Add(tangent.Scale(aTangent))
		b.Velocity = normal.Scale(aNormal).Add(tangent.Scale(bTangent))
	}

	a.Position = a.Position.Add(a.Velocity)
	b.Position = b.Position.Add(b.Velocity)
	return a, b, exchanged
}
