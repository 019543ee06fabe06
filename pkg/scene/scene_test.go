package scene

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestGridLines(t *testing.T) {
	lines := GridLines(50, 2)
	// -25, -23, ..., 25: 26 coordinates, 6 lines each
	require.Len(t, lines, 26*6)

	for _, l := range lines {
		for _, p := range []geometry.Vector3D{l.A, l.B} {
			for _, c := range []float64{p.X, p.Y, p.Z} {
				assert.GreaterOrEqual(t, c, -25.0)
				assert.LessOrEqual(t, c, 25.0)
			}
		}
		assert.InDelta(t, 50, l.A.DistanceTo(l.B), eps, "every line spans the cube")
	}

	assert.Equal(t, geometry.Vector3D{X: -25, Y: -25, Z: -25}, lines[0].A)
	last := lines[len(lines)-1]
	assert.Equal(t, geometry.Vector3D{X: 25, Y: 25, Z: 25}, last.B)
}

func TestGridLines_StepDoesNotDivide(t *testing.T) {
	lines := GridLines(10, 3)
	// -5, -2, 1, 4: stays inside
	require.Len(t, lines, 4*6)
	assert.Equal(t, 4.0, lines[len(lines)-6].A.X)
}

func TestGridLines_Degenerate(t *testing.T) {
	assert.Nil(t, GridLines(0, 2))
	assert.Nil(t, GridLines(50, 0))
}

func TestBoidMesh(t *testing.T) {
	pos := geometry.Vector3D{X: 1, Y: 2, Z: 3}
	m := BoidMesh(pos, geometry.Vector3D{X: 0.3}, 0.2)

	// heading +x: right = x × y = +z, up = z × x = +y
	assert.True(t, m.Nose.Eq(geometry.Vector3D{X: 1.4, Y: 2, Z: 3}))
	assert.True(t, m.LeftWing.Eq(geometry.Vector3D{X: 0.8, Y: 2, Z: 3.2}))
	assert.True(t, m.RightWing.Eq(geometry.Vector3D{X: 0.8, Y: 2, Z: 2.8}))
	assert.True(t, m.Bottom.Eq(geometry.Vector3D{X: 0.8, Y: 2.2, Z: 3}))
}

func TestBoidMesh_Vertical(t *testing.T) {
	m := BoidMesh(geometry.Vector3D{}, geometry.Vector3D{Y: 0.3}, 1)
	assert.True(t, m.Nose.Eq(geometry.Vector3D{Y: 2}))
	assert.NotEqual(t, m.LeftWing, m.RightWing, "no collapse when heading is the up axis")
	for _, f := range m.Faces() {
		assert.InDelta(t, 1, f.Normal().Len(), 1e-9)
	}
}

func TestPyramid_Faces(t *testing.T) {
	m := BoidMesh(geometry.Vector3D{}, geometry.Vector3D{Z: -1}, 1)
	faces := m.Faces()
	assert.Equal(t, Triangle{m.Nose, m.LeftWing, m.RightWing}, faces[0])
	assert.Equal(t, Triangle{m.LeftWing, m.RightWing, m.Bottom}, faces[3])
	assert.True(t, faces[3].Centroid().Z > 0, "base is behind the nose")
}

func TestShade(t *testing.T) {
	face := Triangle{{}, {X: 1}, {Y: 1}} // normal +z
	assert.InDelta(t, 1, Shade(face, geometry.Vector3D{Z: 5}), eps)
	assert.InDelta(t, 1, Shade(face, geometry.Vector3D{Z: -5}), eps)
	assert.InDelta(t, 0.35, Shade(face, geometry.Vector3D{X: 1}), eps)
	assert.InDelta(t, 0.35, Shade(Triangle{}, geometry.Vector3D{X: 1}), eps)
}
