// Package stream sends meshes to an AR client over UDP. A mesh is encoded
// as JSON and split into datagrams, each prefixed with a small header:
//
//	"ARC" 0x01 | part index (uint16 BE) | part count (uint16 BE) | payload
package stream

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// Magic starts every datagram
var Magic = []byte("ARC\x01")

// HeaderSize is the number of bytes before the payload
const HeaderSize = 8

// DefaultChunk is the payload size per datagram
const DefaultChunk = 60000

var (
	// ErrTooLarge is returned when a payload needs more than 65535 datagrams
	ErrTooLarge = errors.New("mesh too large to stream")
	// ErrBadPacket is returned for datagrams that do not follow the format
	ErrBadPacket = errors.New("malformed packet")
)

// Message is the JSON document carried by the datagrams
type Message struct {
	Type      string    `json:"type"`
	Vertices  []float32 `json:"vertices"`
	Triangles []int32   `json:"triangles"`
	Timestamp float64   `json:"ts"`
}

// Pack encodes a mesh with flattened vertex and index buffers
func Pack(m *mesh.Mesh, ts time.Time) ([]byte, error) {
	if m.IsEmpty() {
		return nil, errors.New("no mesh to stream")
	}
	msg := Message{
		Type:      "mesh",
		Vertices:  make([]float32, 0, 3*m.VertexCount()),
		Triangles: make([]int32, 0, 3*m.TriangleCount()),
		Timestamp: float64(ts.UnixNano()) / 1e9,
	}
	for _, v := range m.Vertices {
		msg.Vertices = append(msg.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx > math.MaxInt32 {
				return nil, fmt.Errorf("face index %d does not fit the wire format", idx)
			}
			msg.Triangles = append(msg.Triangles, int32(idx))
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mesh: %w", err)
	}
	return data, nil
}

// Unpack decodes a payload produced by Pack
func Unpack(data []byte) (*mesh.Mesh, time.Time, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode mesh: %w", err)
	}
	if msg.Type != "mesh" {
		return nil, time.Time{}, fmt.Errorf("%w: unexpected message type %q", ErrBadPacket, msg.Type)
	}
	if len(msg.Vertices)%3 != 0 || len(msg.Triangles)%3 != 0 {
		return nil, time.Time{}, fmt.Errorf("%w: buffer lengths are not multiples of three", ErrBadPacket)
	}

	m := mesh.New("stream", mesh.FormatUnknown)
	for i := 0; i < len(msg.Vertices); i += 3 {
		m.AddVertex(geometry.NewVector3(float64(msg.Vertices[i]), float64(msg.Vertices[i+1]), float64(msg.Vertices[i+2])))
	}
	for i := 0; i < len(msg.Triangles); i += 3 {
		m.AddFace(int(msg.Triangles[i]), int(msg.Triangles[i+1]), int(msg.Triangles[i+2]))
	}

	sec, frac := math.Modf(msg.Timestamp)
	return m, time.Unix(int64(sec), int64(frac*1e9)), nil
}

// Split cuts data into datagrams of at most chunk payload bytes each
func Split(data []byte, chunk int) ([][]byte, error) {
	if chunk <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunk)
	}
	parts := (len(data) + chunk - 1) / chunk
	if parts == 0 {
		parts = 1
	}
	if parts > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bytes need %d parts", ErrTooLarge, len(data), parts)
	}

	packets := make([][]byte, 0, parts)
	for i := 0; i < parts; i++ {
		start := i * chunk
		end := min(start+chunk, len(data))

		pkt := make([]byte, HeaderSize, HeaderSize+end-start)
		copy(pkt, Magic)
		binary.BigEndian.PutUint16(pkt[4:], uint16(i))
		binary.BigEndian.PutUint16(pkt[6:], uint16(parts))
		pkt = append(pkt, data[start:end]...)
		packets = append(packets, pkt)
	}
	return packets, nil
}

// parseHeader validates a datagram and returns its position and payload
func parseHeader(pkt []byte) (part, parts int, payload []byte, err error) {
	if len(pkt) < HeaderSize || !bytes.Equal(pkt[:4], Magic) {
		return 0, 0, nil, ErrBadPacket
	}
	part = int(binary.BigEndian.Uint16(pkt[4:]))
	parts = int(binary.BigEndian.Uint16(pkt[6:]))
	if parts == 0 || part >= parts {
		return 0, 0, nil, fmt.Errorf("%w: part %d of %d", ErrBadPacket, part, parts)
	}
	return part, parts, pkt[HeaderSize:], nil
}

// Reassembler collects datagrams until a payload is complete. A datagram
// announcing a different part count starts a new payload.
type Reassembler struct {
	parts    [][]byte
	received int
}

// Add feeds one datagram. It returns the payload once every part arrived.
func (r *Reassembler) Add(pkt []byte) ([]byte, bool, error) {
	part, parts, payload, err := parseHeader(pkt)
	if err != nil {
		return nil, false, err
	}

	if len(r.parts) != parts {
		r.parts = make([][]byte, parts)
		r.received = 0
	}
	if r.parts[part] == nil {
		r.parts[part] = append([]byte{}, payload...)
		r.received++
	}

	if r.received < parts {
		return nil, false, nil
	}

	data := bytes.Join(r.parts, nil)
	r.parts = nil
	r.received = 0
	return data, true, nil
}
