package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FrameHeaderSize is the length of the fixed prefix every frame starts with:
//
//	0-1   magic "PC"
//	2     version
//	3     type
//	4     flags
//	5-6   stream id
//	7-9   msgpack header length (uint24)
//	10-13 payload length (uint32)
const FrameHeaderSize = 14

// Magic opens every frame.
var Magic = [2]byte{'P', 'C'}

// Version of the frame layout above.
const Version uint8 = 0x01

const maxHeaderSize = 1<<24 - 1

// Frame types.
const (
	TypeRun    uint8 = 0x01 // ask the engine to run a scenario
	TypeOutput uint8 = 0x02 // scenario stdout
	TypeError  uint8 = 0x03 // scenario did not run
	TypePing   uint8 = 0x04 // liveness check, payload "ping" or "pong"
)

// FlagFinal marks the last frame of a run.
const FlagFinal uint8 = 1 << 0

// Frame is one message on the wire. Headers hold msgpack; Payload is opaque.
type Frame struct {
	Type     uint8
	Flags    uint8
	StreamID uint16
	Headers  []byte
	Payload  []byte
}

// WriteFrame serializes f and hands it to w in a single Write.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Headers) > maxHeaderSize {
		return fmt.Errorf("frame headers too large: %d bytes", len(f.Headers))
	}

	buf := make([]byte, FrameHeaderSize, FrameHeaderSize+len(f.Headers)+len(f.Payload))
	copy(buf[0:2], Magic[:])
	buf[2] = Version
	buf[3] = f.Type
	buf[4] = f.Flags
	binary.BigEndian.PutUint16(buf[5:7], f.StreamID)
	putUint24(buf[7:10], len(f.Headers))
	binary.BigEndian.PutUint32(buf[10:14], uint32(len(f.Payload)))

	buf = append(buf, f.Headers...)
	buf = append(buf, f.Payload...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// ReadFrame reads exactly one frame from r. Empty sections decode as nil.
func ReadFrame(r io.Reader) (*Frame, error) {
	var prefix [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}

	if prefix[0] != Magic[0] || prefix[1] != Magic[1] {
		return nil, fmt.Errorf("invalid magic bytes: 0x%02x%02x", prefix[0], prefix[1])
	}
	if prefix[2] != Version {
		return nil, fmt.Errorf("unsupported protocol version: %d", prefix[2])
	}

	f := &Frame{
		Type:     prefix[3],
		Flags:    prefix[4],
		StreamID: binary.BigEndian.Uint16(prefix[5:7]),
	}

	var err error
	if f.Headers, err = readSection(r, uint32(uint24(prefix[7:10])), "headers"); err != nil {
		return nil, err
	}
	if f.Payload, err = readSection(r, binary.BigEndian.Uint32(prefix[10:14]), "payload"); err != nil {
		return nil, err
	}
	return f, nil
}

func readSection(r io.Reader, n uint32, what string) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("reading frame %s (%d bytes): %w", what, n, err)
	}
	return b, nil
}

func putUint24(b []byte, v int) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

func uint24(b []byte) int {
	return int(b[0])<<16 | int(b[1])<<8 | int(b[2])
}

func NewPingFrame() *Frame {
	return &Frame{Type: TypePing, Payload: []byte("ping")}
}

func NewPongFrame() *Frame {
	return &Frame{Type: TypePing, Payload: []byte("pong")}
}

// NewErrorFrame carries msg as the payload of a final ERROR frame.
func NewErrorFrame(msg string) *Frame {
	return &Frame{Type: TypeError, Flags: FlagFinal, Payload: []byte(msg)}
}
