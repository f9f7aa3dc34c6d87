// Package obj decodes Wavefront OBJ geometry into an indexed mesh.
// Only positions and faces are read; materials, texture coordinates and
// normals are skipped.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// Parse reads an OBJ file
func Parse(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader decodes OBJ statements from r. Polygons with more than three
// corners are fan-triangulated.
func ParseReader(r io.Reader) (*mesh.Mesh, error) {
	m := mesh.New("", mesh.FormatOBJ)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", lineNo)
			}
			var c [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", lineNo, fields[i+1], err)
				}
				c[i] = v
			}
			m.AddVertex(geometry.NewVector3(c[0], c[1], c[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least three vertices", lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveIndex(ref, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.AddFace(corners[0], corners[i], corners[i+1])
			}

		case "o":
			if m.Name == "" && len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "g":
			// groups are flattened into one mesh
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return m, nil
}

// resolveIndex turns a face reference (v, v/vt, v//vn, v/vt/vn) into a
// zero-based vertex index. Negative indices count back from the most
// recently defined vertex.
func resolveIndex(ref string, vertexCount int) (int, error) {
	pos := ref
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		pos = ref[:i]
	}
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", ref)
	}

	var idx int
	switch {
	case n > 0:
		idx = n - 1
	case n < 0:
		idx = vertexCount + n
	default:
		return 0, fmt.Errorf("face index %q must not be zero", ref)
	}

	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("face index %q out of range (%d vertices)", ref, vertexCount)
	}
	return idx, nil
}
