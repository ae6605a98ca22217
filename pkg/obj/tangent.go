package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// computeTangents accumulates a tangent per vertex from every triangle
// that references it, then orthogonalizes against the vertex normal.
// Triangles with degenerate UV area contribute nothing, so the
// accumulation stays free of NaN; a vertex touched only by degenerate
// triangles keeps a zero tangent.
func computeTangents(verts []TangentVertex, tris [][3]uint32) {
	acc := make([]mgl32.Vec3, len(verts))

	for _, tri := range tris {
		v0 := &verts[tri[0]]
		v1 := &verts[tri[1]]
		v2 := &verts[tri[2]]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		duv1 := v1.TexCoord.Sub(v0.TexCoord)
		duv2 := v2.TexCoord.Sub(v0.TexCoord)

		det := duv1.X()*duv2.Y() - duv2.X()*duv1.Y()
		if math.Abs(float64(det)) < 1e-8 {
			continue
		}
		r := 1 / det
		t := e1.Mul(duv2.Y() * r).Sub(e2.Mul(duv1.Y() * r))

		for _, i := range tri {
			acc[i] = acc[i].Add(t)
		}
	}

	for i := range verts {
		n := verts[i].Normal
		// Gram-Schmidt: project out the normal component.
		t := acc[i].Sub(n.Mul(n.Dot(acc[i])))
		if t.Len() < 1e-6 {
			continue
		}
		verts[i].Tangent = t.Normalize()
	}
}
