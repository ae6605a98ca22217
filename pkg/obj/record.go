package obj

import "strings"

// recordKind classifies the OBJ directives the parser understands.
type recordKind int

const (
	recVertex recordKind = iota // v x y z
	recTexCoord                 // vt u v
	recNormal                   // vn x y z
	recFace                     // f a/b/c ...
	recObject                   // o name
	recGroup                    // g name
	recUseMaterial              // usemtl name
	recMaterialLib              // mtllib name
)

// record is one classified line of input.
type record struct {
	kind   recordKind
	fields []string // whitespace-split tokens after the directive
	line   int      // 1-based source line
	raw    string   // trimmed line text, for error reporting
}

// nextRecord scans forward from offset for the next classified record.
// Comment, blank and unrecognized directive lines are skipped; the
// latter keeps the parser forward-compatible with directives it does
// not support (s, l, p, free-form geometry and so on). ok is false once
// the input is exhausted.
func nextRecord(input string, offset, line int) (rec record, newOffset, newLine int, ok bool) {
	for offset < len(input) {
		var text string
		if end := strings.IndexByte(input[offset:], '\n'); end < 0 {
			text = input[offset:]
			offset = len(input)
		} else {
			text = input[offset : offset+end]
			offset += end + 1
		}
		line++

		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		kind, known := classify(fields[0])
		if !known {
			continue
		}
		return record{
			kind:   kind,
			fields: fields[1:],
			line:   line,
			raw:    strings.TrimSpace(text),
		}, offset, line, true
	}
	return record{}, offset, line, false
}

func classify(directive string) (recordKind, bool) {
	switch directive {
	case "v":
		return recVertex, true
	case "vt":
		return recTexCoord, true
	case "vn":
		return recNormal, true
	case "f":
		return recFace, true
	case "o":
		return recObject, true
	case "g":
		return recGroup, true
	case "usemtl":
		return recUseMaterial, true
	case "mtllib":
		return recMaterialLib, true
	}
	return 0, false
}
