// Package export converts compiled OBJ geometry into glTF 2.0
// documents ready for renderer consumption.
package export

import (
	"bytes"
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/meshforge/objgeom/pkg/obj"
)

const gltfVersion = "2.0"

// Build converts a compiled file into a glTF document: one node+mesh
// per OBJ object, one primitive per material group, and one PBR
// material per unique material name. All geometry shares buffer 0.
func Build(file *obj.File) *gltf.Document {
	doc := &gltf.Document{}
	doc.Asset.Version = gltfVersion
	scene := uint32(0)
	doc.Scene = &scene
	doc.Scenes = append(doc.Scenes, &gltf.Scene{})
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{})

	materials := make(map[string]uint32)

	for _, o := range file.Objects {
		mesh := &gltf.Mesh{Name: o.Name}
		for _, g := range o.Groups {
			prim := buildPrimitive(doc, g.Mesh)
			material := materialIndex(doc, materials, g.Material)
			prim.Material = &material
			mesh.Primitives = append(mesh.Primitives, prim)
		}
		meshID := uint32(len(doc.Meshes))
		doc.Meshes = append(doc.Meshes, mesh)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: o.Name, Mesh: &meshID})
	}
	return doc
}

// Write saves a document as JSON .gltf or, when binary is set, as a
// .glb container. The JSON form embeds buffer data as a data URI so
// the output stays a single file.
func Write(doc *gltf.Document, path string, binary bool) error {
	if binary {
		return gltf.SaveBinary(doc, path)
	}
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	return gltf.Save(doc, path)
}

func buildPrimitive(doc *gltf.Document, m *obj.Mesh) *gltf.Primitive {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		texcoords []mgl32.Vec2
		tangents  [][4]float32
	)
	switch m.Layout {
	case obj.LayoutTextured:
		for _, v := range m.Textured {
			positions = append(positions, v.Position)
			normals = append(normals, v.Normal)
			texcoords = append(texcoords, v.TexCoord)
		}
	case obj.LayoutTexturedTangent:
		for _, v := range m.Tangent {
			positions = append(positions, v.Position)
			normals = append(normals, v.Normal)
			texcoords = append(texcoords, v.TexCoord)
			// glTF tangents are Vec4; w is the handedness sign.
			tangents = append(tangents, [4]float32{v.Tangent.X(), v.Tangent.Y(), v.Tangent.Z(), 1})
		}
	default:
		for _, v := range m.Vertices {
			positions = append(positions, v.Position)
			normals = append(normals, v.Normal)
		}
	}

	indices := make([]uint32, 0, len(m.Triangles)*3)
	for _, tri := range m.Triangles {
		indices = append(indices, tri[0], tri[1], tri[2])
	}

	prim := &gltf.Primitive{
		Attributes: make(gltf.Attribute),
		Mode:       gltf.PrimitiveTriangles,
	}

	idxView := appendView(doc, leBytes(indices), gltf.TargetElementArrayBuffer)
	idxAcc := appendAccessor(doc, idxView, gltf.ComponentUint, gltf.AccessorScalar, len(indices), nil, nil)
	prim.Indices = &idxAcc

	min, max := bounds(positions)
	posView := appendView(doc, leBytes(positions), gltf.TargetArrayBuffer)
	prim.Attributes["POSITION"] = appendAccessor(doc, posView, gltf.ComponentFloat, gltf.AccessorVec3, len(positions), min, max)

	nrmView := appendView(doc, leBytes(normals), gltf.TargetArrayBuffer)
	prim.Attributes["NORMAL"] = appendAccessor(doc, nrmView, gltf.ComponentFloat, gltf.AccessorVec3, len(normals), nil, nil)

	if len(texcoords) > 0 {
		texView := appendView(doc, leBytes(texcoords), gltf.TargetArrayBuffer)
		prim.Attributes["TEXCOORD_0"] = appendAccessor(doc, texView, gltf.ComponentFloat, gltf.AccessorVec2, len(texcoords), nil, nil)
	}
	if len(tangents) > 0 {
		tanView := appendView(doc, leBytes(tangents), gltf.TargetArrayBuffer)
		prim.Attributes["TANGENT"] = appendAccessor(doc, tanView, gltf.ComponentFloat, gltf.AccessorVec4, len(tangents), nil, nil)
	}
	return prim
}

// appendView copies data into buffer 0 and registers a view over it.
func appendView(doc *gltf.Document, data []byte, target gltf.Target) uint32 {
	buffer := doc.Buffers[0]
	view := &gltf.BufferView{
		Buffer:     0,
		ByteOffset: buffer.ByteLength,
		ByteLength: uint32(len(data)),
		Target:     target,
	}
	buffer.Data = append(buffer.Data, data...)
	buffer.ByteLength += uint32(len(data))

	id := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, view)
	return id
}

func appendAccessor(doc *gltf.Document, view uint32, comp gltf.ComponentType, typ gltf.AccessorType, count int, min, max []float32) uint32 {
	acc := &gltf.Accessor{
		BufferView:    &view,
		ComponentType: comp,
		Type:          typ,
		Count:         uint32(count),
		Min:           min,
		Max:           max,
	}
	id := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, acc)
	return id
}

// materialIndex returns the document material for a name, creating a
// plain white PBR material on first use.
func materialIndex(doc *gltf.Document, seen map[string]uint32, name string) uint32 {
	if id, ok := seen[name]; ok {
		return id
	}
	base := [4]float32{1, 1, 1, 1}
	id := uint32(len(doc.Materials))
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:                 name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &base},
	})
	seen[name] = id
	return id
}

// leBytes serializes fixed-size numeric data little-endian.
func leBytes(data interface{}) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, data)
	return buf.Bytes()
}

// bounds returns the per-component min and max of the positions, which
// glTF requires on POSITION accessors.
func bounds(positions []mgl32.Vec3) (min, max []float32) {
	if len(positions) == 0 {
		return []float32{0, 0, 0}, []float32{0, 0, 0}
	}
	min = []float32{positions[0].X(), positions[0].Y(), positions[0].Z()}
	max = []float32{positions[0].X(), positions[0].Y(), positions[0].Z()}
	for _, p := range positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}
