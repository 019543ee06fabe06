// Package scene builds the world-space geometry a renderer draws: the reference
// grid on the faces of the cube and one small pyramid per boid.
package scene

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Segment is a line between two world points.
type Segment struct {
	A, B geometry.Vector3D
}

// Triangle is one face of a mesh.
type Triangle [3]geometry.Vector3D

// Normal is the unit normal following the vertex winding, zero for a degenerate face.
func (t Triangle) Normal() geometry.Vector3D {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

// Centroid is the mean of the three vertices.
func (t Triangle) Centroid() geometry.Vector3D {
	return t[0].Add(t[1]).Add(t[2]).Div(3)
}

// GridLines returns the reference grid: lines every step on the floor and ceiling
// (y = ±W/2) in both directions, and on the x = ±W/2 walls along z. Coordinates run
// from -W/2 to W/2 and never leave the cube.
func GridLines(worldSize, step float64) []Segment {
	if worldSize <= 0 || step <= 0 {
		return nil
	}
	size := worldSize / 2
	n := int(math.Floor(worldSize/step + 1e-9))

	lines := make([]Segment, 0, 6*(n+1))
	for k := 0; k <= n; k++ {
		c := -size + float64(k)*step
		lines = append(lines,
			// along z, on floor and ceiling
			Segment{geometry.Vector3D{X: c, Y: -size, Z: -size}, geometry.Vector3D{X: c, Y: -size, Z: size}},
			Segment{geometry.Vector3D{X: c, Y: size, Z: -size}, geometry.Vector3D{X: c, Y: size, Z: size}},
			// along x, on floor and ceiling
			Segment{geometry.Vector3D{X: -size, Y: -size, Z: c}, geometry.Vector3D{X: size, Y: -size, Z: c}},
			Segment{geometry.Vector3D{X: -size, Y: size, Z: c}, geometry.Vector3D{X: size, Y: size, Z: c}},
			// along z, on the side walls
			Segment{geometry.Vector3D{X: -size, Y: c, Z: -size}, geometry.Vector3D{X: -size, Y: c, Z: size}},
			Segment{geometry.Vector3D{X: size, Y: c, Z: -size}, geometry.Vector3D{X: size, Y: c, Z: size}},
		)
	}
	return lines
}

// Pyramid is the four-vertex body of a boid, nose first.
type Pyramid struct {
	Nose, LeftWing, RightWing, Bottom geometry.Vector3D
}

var worldUp = geometry.Vector3D{Y: 1}

// BoidMesh orients a pyramid of the given size along velocity. With d the heading,
// r = d × up and u = r × d:
//
//	nose   = p + d·2s
//	wings  = p - d·s ± r·s
//	bottom = p - d·s + u·s
//
// A boid flying straight up or down borrows the x axis as its right.
func BoidMesh(pos, vel geometry.Vector3D, size float64) Pyramid {
	d := vel.Normalize()
	right := d.Cross(worldUp)
	if right.LenSqr() < geometry.Epsilon {
		right = geometry.Vector3D{X: 1}
	}
	up := right.Cross(d)

	tail := pos.Sub(d.Mul(size))
	return Pyramid{
		Nose:      pos.Add(d.Mul(2 * size)),
		LeftWing:  tail.Add(right.Mul(size)),
		RightWing: tail.Sub(right.Mul(size)),
		Bottom:    tail.Add(up.Mul(size)),
	}
}

// Faces returns front, left, right and base.
func (p Pyramid) Faces() [4]Triangle {
	return [4]Triangle{
		{p.Nose, p.LeftWing, p.RightWing},
		{p.Nose, p.LeftWing, p.Bottom},
		{p.Nose, p.RightWing, p.Bottom},
		{p.LeftWing, p.RightWing, p.Bottom},
	}
}

// Shade is the flat-shading brightness of a face lit from light: ambient 0.35 plus
// a two-sided diffuse term, so the result is in [0.35, 1].
func Shade(face Triangle, light geometry.Vector3D) float64 {
	return 0.35 + 0.65*math.Abs(face.Normal().Dot(light.Normalize()))
}
