// Package obj parses Wavefront OBJ text documents and compiles them
// into deduplicated, indexed triangle meshes grouped by object and
// material. Parsing is incremental: a host drives it in bounded steps
// so large documents never monopolize a cooperative scheduler.
package obj

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// NoIndex marks an absent optional attribute index in a FaceCorner.
const NoIndex = -1

// FaceCorner references one vertex of a face. Indices are 0-based into
// the RawDocument attribute sequences; TexCoord and Normal may be
// NoIndex when the corner omits them.
type FaceCorner struct {
	Position int
	TexCoord int
	Normal   int
}

// Face is an ordered run of at least 3 corners, tagged with the
// object/group/material context active on the line it was declared.
type Face struct {
	Object   string
	Group    string
	Material string
	Corners  []FaceCorner
	Line     int
}

// RawDocument is the accumulated result of a parse: flat attribute
// sequences plus the faces that reference them. It is the input to
// Compile and is normally discarded afterwards.
type RawDocument struct {
	Positions    []mgl32.Vec3
	TexCoords    []mgl32.Vec2
	Normals      []mgl32.Vec3
	Faces        []Face
	MaterialLibs []string // mtllib names, recorded but never opened
}

// Parser consumes an OBJ document in bounded steps. The zero value is
// not usable; construct with NewParser. A Parser is owned by a single
// caller and is not safe for concurrent use.
type Parser struct {
	input  string
	offset int // byte cursor into input
	line   int // lines consumed so far

	// Context applied to face records as they appear.
	object   string
	group    string
	material string

	doc  *RawDocument
	done bool
	err  error
}

// NewParser initializes a parse over input with the cursor at the
// start and empty object/group/material context.
func NewParser(input string) *Parser {
	return &Parser{input: input, doc: &RawDocument{}}
}

// Step consumes up to budget classified records, or fewer if the input
// runs out. Comment, blank and unrecognized lines do not count against
// the budget. A budget <= 0 means no limit. It returns done=true when
// the document is fully consumed or a record fails to parse; the error
// is sticky and repeated calls return the same result.
//
// Driving Step to completion yields the same RawDocument for every
// positive budget; the budget only slices the work.
func (p *Parser) Step(budget int) (done bool, err error) {
	if p.done {
		return true, p.err
	}
	for consumed := 0; budget <= 0 || consumed < budget; consumed++ {
		rec, offset, line, ok := nextRecord(p.input, p.offset, p.line)
		p.offset, p.line = offset, line
		if !ok {
			p.done = true
			return true, nil
		}
		if err := p.fold(rec); err != nil {
			p.done = true
			p.err = err
			return true, err
		}
	}
	return false, nil
}

// Document returns the accumulated document. It is only complete once
// Step has reported done with a nil error.
func (p *Parser) Document() *RawDocument {
	return p.doc
}

// Parse consumes the whole input in one unbounded pass.
func Parse(input string) (*RawDocument, error) {
	p := NewParser(input)
	if _, err := p.Step(0); err != nil {
		return nil, err
	}
	return p.Document(), nil
}

// ParseFile parses an OBJ file from disk.
func ParseFile(path string) (*RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return Parse(string(data))
}

// fold applies one record to the document.
func (p *Parser) fold(rec record) error {
	switch rec.kind {
	case recVertex:
		v, err := p.vec3(rec)
		if err != nil {
			return err
		}
		p.doc.Positions = append(p.doc.Positions, v)
	case recTexCoord:
		v, err := p.vec2(rec)
		if err != nil {
			return err
		}
		p.doc.TexCoords = append(p.doc.TexCoords, v)
	case recNormal:
		v, err := p.vec3(rec)
		if err != nil {
			return err
		}
		p.doc.Normals = append(p.doc.Normals, v)
	case recFace:
		return p.foldFace(rec)
	case recObject:
		p.object = strings.Join(rec.fields, " ")
	case recGroup:
		p.group = strings.Join(rec.fields, " ")
	case recUseMaterial:
		p.material = strings.Join(rec.fields, " ")
	case recMaterialLib:
		p.doc.MaterialLibs = append(p.doc.MaterialLibs, rec.fields...)
	}
	return nil
}

// vec3 reads the first three components of a v/vn record. Extra
// components (the optional w on v lines) are ignored.
func (p *Parser) vec3(rec record) (mgl32.Vec3, error) {
	if len(rec.fields) < 3 {
		return mgl32.Vec3{}, &ParseError{Line: rec.line, Raw: rec.raw, Msg: "expected 3 components"}
	}
	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(rec.fields[i], 32)
		if err != nil {
			return mgl32.Vec3{}, &LexError{Line: rec.line, Token: rec.fields[i], Raw: rec.raw}
		}
		v[i] = float32(f)
	}
	return v, nil
}

// vec2 reads the first two components of a vt record. A third (w)
// component is ignored.
func (p *Parser) vec2(rec record) (mgl32.Vec2, error) {
	if len(rec.fields) < 2 {
		return mgl32.Vec2{}, &ParseError{Line: rec.line, Raw: rec.raw, Msg: "expected 2 components"}
	}
	var v mgl32.Vec2
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(rec.fields[i], 32)
		if err != nil {
			return mgl32.Vec2{}, &LexError{Line: rec.line, Token: rec.fields[i], Raw: rec.raw}
		}
		v[i] = float32(f)
	}
	return v, nil
}

func (p *Parser) foldFace(rec record) error {
	if len(rec.fields) < 3 {
		return &ParseError{Line: rec.line, Raw: rec.raw, Msg: "face needs at least 3 corners"}
	}
	face := Face{
		Object:   p.object,
		Group:    p.group,
		Material: p.material,
		Corners:  make([]FaceCorner, 0, len(rec.fields)),
		Line:     rec.line,
	}
	for _, field := range rec.fields {
		corner, err := p.parseCorner(field, rec)
		if err != nil {
			return err
		}
		face.Corners = append(face.Corners, corner)
	}
	p.doc.Faces = append(p.doc.Faces, face)
	return nil
}

// parseCorner normalizes one i, i/j, i//k or i/j/k reference to
// 0-based indices. Source indices are 1-based; negative indices count
// back from the end of the respective sequence as of this line, and
// one that reaches before the start can never resolve, so it is
// rejected here. Positive overruns are kept as-is and rejected during
// assembly.
func (p *Parser) parseCorner(field string, rec record) (FaceCorner, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return FaceCorner{}, &ParseError{Line: rec.line, Raw: rec.raw, Msg: fmt.Sprintf("corner %q has too many index slots", field)}
	}

	corner := FaceCorner{Position: NoIndex, TexCoord: NoIndex, Normal: NoIndex}
	slots := [3]*int{&corner.Position, &corner.TexCoord, &corner.Normal}
	lengths := [3]int{len(p.doc.Positions), len(p.doc.TexCoords), len(p.doc.Normals)}

	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return FaceCorner{}, &ParseError{Line: rec.line, Raw: rec.raw, Msg: fmt.Sprintf("corner %q has no position index", field)}
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return FaceCorner{}, &LexError{Line: rec.line, Token: part, Raw: rec.raw}
		}
		if n == 0 {
			return FaceCorner{}, &ParseError{Line: rec.line, Raw: rec.raw, Msg: "index 0 is not valid, OBJ indices are 1-based"}
		}
		if n > 0 {
			*slots[i] = n - 1
			continue
		}
		resolved := lengths[i] + n
		if resolved < 0 {
			return FaceCorner{}, &ParseError{Line: rec.line, Raw: rec.raw, Msg: fmt.Sprintf("index %d reaches before the start of the sequence (%d declared)", n, lengths[i])}
		}
		*slots[i] = resolved
	}
	return corner, nil
}
