package stream

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/philipparndt/arcademia/pkg/mesh"
)

// Sender streams meshes to a UDP address
type Sender struct {
	Addr  string
	Chunk int
}

// NewSender creates a sender with the given chunk size
func NewSender(addr string, chunk int) *Sender {
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	return &Sender{Addr: addr, Chunk: chunk}
}

// Send packs and transmits m, returning the payload size in bytes
func (s *Sender) Send(ctx context.Context, m *mesh.Mesh) (int, error) {
	data, err := Pack(m, time.Now())
	if err != nil {
		return 0, err
	}
	packets, err := Split(data, s.Chunk)
	if err != nil {
		return 0, err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", s.Addr)
	if err != nil {
		return 0, fmt.Errorf("failed to open UDP socket to %s: %w", s.Addr, err)
	}
	defer conn.Close()

	for i, pkt := range packets {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := conn.Write(pkt); err != nil {
			return 0, fmt.Errorf("failed to send part %d of %d: %w", i+1, len(packets), err)
		}
	}
	return len(data), nil
}

// Receive reads datagrams from conn until one mesh is complete or ctx ends.
// Malformed datagrams are skipped.
func Receive(ctx context.Context, conn net.PacketConn) (*mesh.Mesh, error) {
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	var r Reassembler
	buf := make([]byte, 64*1024)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to read datagram: %w", err)
		}
		data, complete, err := r.Add(buf[:n])
		if err != nil || !complete {
			continue
		}
		m, _, err := Unpack(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}
