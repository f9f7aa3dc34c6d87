package stream

import (
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/philipparndt/arcademia/internal/meshtest"
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPackUnpack(t *testing.T) {
	cube := meshtest.UnitCube()
	ts := time.Unix(1700000000, 250000000)

	data, err := Pack(cube, ts)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"mesh"`)

	m, got, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, cube.Vertices, m.Vertices)
	assert.Equal(t, cube.Faces, m.Faces)
	assert.WithinDuration(t, ts, got, time.Millisecond)
}

func TestPackRejectsEmptyMesh(t *testing.T) {
	_, err := Pack(mesh.New("empty", mesh.FormatSTL), time.Now())
	assert.Error(t, err)

	_, err = Pack(nil, time.Now())
	assert.Error(t, err)
}

func TestUnpackRejectsForeignMessages(t *testing.T) {
	_, _, err := Unpack([]byte(`{"type":"pose","vertices":[],"triangles":[]}`))
	assert.ErrorIs(t, err, ErrBadPacket)

	_, _, err = Unpack([]byte(`{"type":"mesh","vertices":[1,2],"triangles":[]}`))
	assert.ErrorIs(t, err, ErrBadPacket)

	_, _, err = Unpack([]byte(`not json`))
	assert.Error(t, err)
}

func TestSplitHeader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 25)
	packets, err := Split(data, 10)
	require.NoError(t, err)
	require.Len(t, packets, 3)

	for i, pkt := range packets {
		assert.Equal(t, Magic, pkt[:4])
		assert.Equal(t, uint16(i), binary.BigEndian.Uint16(pkt[4:6]))
		assert.Equal(t, uint16(3), binary.BigEndian.Uint16(pkt[6:8]))
	}
	assert.Len(t, packets[0], HeaderSize+10)
	assert.Len(t, packets[2], HeaderSize+5)
}

func TestSplitLimits(t *testing.T) {
	_, err := Split([]byte("abc"), 0)
	assert.Error(t, err)

	_, err = Split(make([]byte, 65536), 1)
	assert.ErrorIs(t, err, ErrTooLarge)

	packets, err := Split(nil, 10)
	require.NoError(t, err)
	assert.Len(t, packets, 1)
}

func TestReassemblerOutOfOrder(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	packets, err := Split(data, 7)
	require.NoError(t, err)

	var r Reassembler
	order := []int{3, 0, 6, 1, 5, 2, 0, 4}
	var out []byte
	for i, idx := range order {
		payload, complete, err := r.Add(packets[idx])
		require.NoError(t, err)
		if i < len(order)-1 {
			assert.False(t, complete)
			continue
		}
		require.True(t, complete)
		out = payload
	}
	assert.Equal(t, data, out)
}

func TestReassemblerRejectsBadPackets(t *testing.T) {
	var r Reassembler
	_, _, err := r.Add([]byte("ARC"))
	assert.ErrorIs(t, err, ErrBadPacket)

	_, _, err = r.Add([]byte("XYZ\x01\x00\x00\x00\x01payload"))
	assert.ErrorIs(t, err, ErrBadPacket)

	_, _, err = r.Add([]byte("ARC\x01\x00\x02\x00\x02payload"))
	assert.ErrorIs(t, err, ErrBadPacket)
}

func TestSplitReassembleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 2000).Draw(t, "data")
		chunk := rapid.IntRange(1, 300).Draw(t, "chunk")

		packets, err := Split(data, chunk)
		if err != nil {
			t.Fatalf("split: %v", err)
		}
		perm := rapid.Permutation(packets).Draw(t, "order")

		var r Reassembler
		for i, pkt := range perm {
			payload, complete, err := r.Add(pkt)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if complete != (i == len(perm)-1) {
				t.Fatalf("complete=%v at packet %d of %d", complete, i, len(perm))
			}
			if complete && !bytes.Equal(payload, data) {
				t.Fatalf("payload mismatch")
			}
		}
	})
}

func TestSendReceiveLoopback(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	big := mesh.New("strip", mesh.FormatOBJ)
	for i := range 400 {
		x := float64(i)
		big.AddVertex(geometry.NewVector3(x, 0, 0))
		big.AddVertex(geometry.NewVector3(x, 1, 0))
		big.AddVertex(geometry.NewVector3(x, 0, 1))
		big.AddFace(3*i, 3*i+1, 3*i+2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		m   *mesh.Mesh
		err error
	}
	done := make(chan result, 1)
	go func() {
		m, err := Receive(ctx, conn)
		done <- result{m, err}
	}()

	sender := NewSender(conn.LocalAddr().String(), 1024)
	n, err := sender.Send(ctx, big)
	require.NoError(t, err)
	assert.Greater(t, n, 1024)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, big.Vertices, res.m.Vertices)
	assert.Equal(t, big.Faces, res.m.Faces)
}

func TestReceiveHonoursContext(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = Receive(ctx, conn)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewSenderDefaultsChunk(t *testing.T) {
	assert.Equal(t, DefaultChunk, NewSender("127.0.0.1:1", 0).Chunk)
}
