package obj

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures compilation.
type Options struct {
	// ComputeTangents populates per-vertex tangents when the document
	// carries texture coordinates. Ignored otherwise.
	ComputeTangents bool
}

// Compile walks the document's faces in order, fan-triangulates each,
// resolves attribute references and emits one deduplicated mesh per
// (object, material) bucket. The first dangling attribute index or
// texcoord inconsistency aborts with an AssemblyError.
func Compile(doc *RawDocument, opts Options) (*File, error) {
	// Texcoord presence is a document-wide decision, anchored on the
	// first corner of the first face.
	hasTex := false
	if len(doc.Faces) > 0 && len(doc.Faces[0].Corners) > 0 {
		hasTex = doc.Faces[0].Corners[0].TexCoord != NoIndex
	}
	layout := LayoutPositionNormal
	if hasTex {
		layout = LayoutTextured
		if opts.ComputeTangents {
			layout = LayoutTexturedTangent
		}
	}

	file := &File{MaterialLibs: doc.MaterialLibs}
	builders := make(map[[2]string]*meshBuilder)

	for fi := range doc.Faces {
		face := &doc.Faces[fi]
		key := [2]string{face.Object, face.Material}
		b, ok := builders[key]
		if !ok {
			b = &meshBuilder{
				mesh:  &Mesh{Layout: layout},
				index: make(map[cornerKey]uint32),
			}
			builders[key] = b

			object := file.Object(face.Object)
			if object == nil {
				object = &Object{Name: face.Object}
				file.Objects = append(file.Objects, object)
			}
			object.Groups = append(object.Groups, &MaterialGroup{
				Material: face.Material,
				Mesh:     b.mesh,
			})
		}
		if err := b.addFace(doc, face, hasTex); err != nil {
			return nil, err
		}
	}

	if layout == LayoutTexturedTangent {
		for _, o := range file.Objects {
			for _, g := range o.Groups {
				computeTangents(g.Mesh.Tangent, g.Mesh.Triangles)
			}
		}
	}
	return file, nil
}

// CompileFile parses and compiles an OBJ file from disk.
func CompileFile(path string, opts Options) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	doc, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	return Compile(doc, opts)
}

// cornerKey identifies a resolved attribute combination within one
// bucket. Corners with identical keys share an emitted vertex.
type cornerKey struct {
	position int
	texcoord int
	normal   int
}

type meshBuilder struct {
	mesh  *Mesh
	index map[cornerKey]uint32
}

func (b *meshBuilder) addFace(doc *RawDocument, face *Face, hasTex bool) error {
	corners := face.Corners
	positions := make([]mgl32.Vec3, len(corners))
	flatNeeded := false

	for i, c := range corners {
		if (c.TexCoord != NoIndex) != hasTex {
			return &AssemblyError{Line: face.Line, Corner: i + 1, Msg: "inconsistent texture coordinate usage across faces"}
		}
		if c.Position < 0 || c.Position >= len(doc.Positions) {
			return &AssemblyError{Line: face.Line, Corner: i + 1, Msg: fmt.Sprintf("position index out of range (%d positions declared)", len(doc.Positions))}
		}
		if hasTex && (c.TexCoord < 0 || c.TexCoord >= len(doc.TexCoords)) {
			return &AssemblyError{Line: face.Line, Corner: i + 1, Msg: fmt.Sprintf("texcoord index out of range (%d texcoords declared)", len(doc.TexCoords))}
		}
		if c.Normal != NoIndex && (c.Normal < 0 || c.Normal >= len(doc.Normals)) {
			return &AssemblyError{Line: face.Line, Corner: i + 1, Msg: fmt.Sprintf("normal index out of range (%d normals declared)", len(doc.Normals))}
		}
		if c.Normal == NoIndex {
			flatNeeded = true
		}
		positions[i] = doc.Positions[c.Position]
	}

	// Corners without a normal index fall back to the flat face
	// normal. Such vertices are never shared across faces.
	var flat mgl32.Vec3
	if flatNeeded {
		flat = faceNormal(positions[0], positions[1], positions[2])
	}

	emitted := make([]uint32, len(corners))
	for i, c := range corners {
		emitted[i] = b.emit(doc, c, positions[i], flat)
	}

	// Fan triangulation from the first corner. Deterministic and
	// correct for convex faces; non-convex faces keep this policy for
	// output compatibility.
	for i := 2; i < len(corners); i++ {
		b.mesh.Triangles = append(b.mesh.Triangles, [3]uint32{emitted[0], emitted[i-1], emitted[i]})
	}
	return nil
}

// emit returns the mesh slot for a resolved corner, appending a new
// vertex only for attribute combinations not seen before in this
// bucket.
func (b *meshBuilder) emit(doc *RawDocument, c FaceCorner, pos, flat mgl32.Vec3) uint32 {
	shared := c.Normal != NoIndex
	key := cornerKey{position: c.Position, texcoord: c.TexCoord, normal: c.Normal}
	if shared {
		if slot, ok := b.index[key]; ok {
			return slot
		}
	}

	normal := flat
	if shared {
		normal = doc.Normals[c.Normal]
	}

	var slot uint32
	switch b.mesh.Layout {
	case LayoutTextured:
		slot = uint32(len(b.mesh.Textured))
		b.mesh.Textured = append(b.mesh.Textured, TexturedVertex{
			Position: pos,
			Normal:   normal,
			TexCoord: doc.TexCoords[c.TexCoord],
		})
	case LayoutTexturedTangent:
		slot = uint32(len(b.mesh.Tangent))
		b.mesh.Tangent = append(b.mesh.Tangent, TangentVertex{
			Position: pos,
			Normal:   normal,
			TexCoord: doc.TexCoords[c.TexCoord],
		})
	default:
		slot = uint32(len(b.mesh.Vertices))
		b.mesh.Vertices = append(b.mesh.Vertices, Vertex{Position: pos, Normal: normal})
	}
	if shared {
		b.index[key] = slot
	}
	return slot
}

// faceNormal computes the unit normal of the plane spanned by the
// first three corners. Degenerate faces yield a zero vector.
func faceNormal(p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Len() < 1e-8 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}
