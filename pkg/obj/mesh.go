package obj

import "github.com/go-gl/mathgl/mgl32"

// VertexLayout selects which vertex slice a Mesh populates. The layout
// is decided once per compiled document: texcoord presence in the
// source picks between the plain and textured forms, and the tangent
// form is used when tangent computation was requested on a textured
// document.
type VertexLayout int

const (
	LayoutPositionNormal VertexLayout = iota
	LayoutTextured
	LayoutTexturedTangent
)

// String returns the attribute list of the layout.
func (l VertexLayout) String() string {
	switch l {
	case LayoutTextured:
		return "position+normal+texcoord"
	case LayoutTexturedTangent:
		return "position+normal+texcoord+tangent"
	default:
		return "position+normal"
	}
}

// Vertex is the minimal output vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// TexturedVertex adds a texture coordinate.
type TexturedVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// TangentVertex adds a tangent for normal-mapped lighting. A vertex
// whose triangles all have degenerate UV area keeps a zero tangent.
type TangentVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
	Tangent  mgl32.Vec3
}

// Mesh is a deduplicated vertex sequence plus triangle indices into
// it. Exactly one of the vertex slices is populated, per Layout.
// Every index is < VertexCount().
type Mesh struct {
	Layout    VertexLayout
	Vertices  []Vertex          // LayoutPositionNormal
	Textured  []TexturedVertex  // LayoutTextured
	Tangent   []TangentVertex   // LayoutTexturedTangent
	Triangles [][3]uint32
}

// VertexCount returns the number of emitted vertices.
func (m *Mesh) VertexCount() int {
	switch m.Layout {
	case LayoutTextured:
		return len(m.Textured)
	case LayoutTexturedTangent:
		return len(m.Tangent)
	default:
		return len(m.Vertices)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// MaterialGroup is one (object, material) bucket's mesh.
type MaterialGroup struct {
	Material string
	Mesh     *Mesh
}

// Object groups the meshes declared under one o directive, one per
// material, in order of first use.
type Object struct {
	Name   string
	Groups []*MaterialGroup
}

// Group returns the bucket for a material name, or nil.
func (o *Object) Group(material string) *MaterialGroup {
	for _, g := range o.Groups {
		if g.Material == material {
			return g
		}
	}
	return nil
}

// File is the compiled result: objects in order of first encounter,
// each mapping material names to meshes. Faces declared before any
// o/usemtl directive land under the empty name.
type File struct {
	Objects      []*Object
	MaterialLibs []string
}

// Object returns the object with the given name, or nil.
func (f *File) Object(name string) *Object {
	for _, o := range f.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// TotalVertexCount returns the number of vertices across all meshes.
func (f *File) TotalVertexCount() int {
	total := 0
	for _, o := range f.Objects {
		for _, g := range o.Groups {
			total += g.Mesh.VertexCount()
		}
	}
	return total
}

// TotalTriangleCount returns the number of triangles across all meshes.
func (f *File) TotalTriangleCount() int {
	total := 0
	for _, o := range f.Objects {
		for _, g := range o.Groups {
			total += g.Mesh.TriangleCount()
		}
	}
	return total
}
