package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriteReadFramePreservesFields(t *testing.T) {
	frame := &Frame{
		Type:     TypeOutput,
		Flags:    FlagFinal,
		StreamID: 42,
		Headers:  []byte("hdr"),
		Payload:  []byte("In BaseClass constructor\n17.888"),
	}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.Len() != FrameHeaderSize+len(frame.Headers)+len(frame.Payload) {
		t.Fatalf("unexpected encoded size %d", buf.Len())
	}

	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	if got.Type != frame.Type || got.Flags != frame.Flags || got.StreamID != frame.StreamID {
		t.Errorf("fixed fields: got %d/%d/%d, want %d/%d/%d",
			got.Type, got.Flags, got.StreamID, frame.Type, frame.Flags, frame.StreamID)
	}
	if !bytes.Equal(got.Headers, frame.Headers) {
		t.Errorf("Headers: got %q, want %q", got.Headers, frame.Headers)
	}
	if !bytes.Equal(got.Payload, frame.Payload) {
		t.Errorf("Payload: got %q, want %q", got.Payload, frame.Payload)
	}
}

// writeCounter counts Write calls.
type writeCounter struct {
	bytes.Buffer
	calls int
}

func (w *writeCounter) Write(p []byte) (int, error) {
	w.calls++
	return w.Buffer.Write(p)
}

func TestWriteFrameSingleWrite(t *testing.T) {
	w := &writeCounter{}
	f := &Frame{Type: TypeOutput, Headers: []byte("h"), Payload: []byte("p")}
	if err := WriteFrame(w, f); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if w.calls != 1 {
		t.Errorf("expected 1 Write call, got %d", w.calls)
	}
	if _, err := ReadFrame(&w.Buffer); err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
}

func TestEmptyFrameHasNoBody(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, &Frame{Type: TypePing}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.Len() != FrameHeaderSize {
		t.Fatalf("expected %d bytes, got %d", FrameHeaderSize, buf.Len())
	}

	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if got.Headers != nil || got.Payload != nil {
		t.Errorf("expected nil headers and payload, got %q / %q", got.Headers, got.Payload)
	}
}

func TestInvalidMagicBytes(t *testing.T) {
	data := make([]byte, FrameHeaderSize)
	data[0] = 0x4D
	data[1] = 0x42
	data[2] = Version

	_, err := ReadFrame(bytes.NewReader(data))
	if err == nil {
		t.Error("expected error for invalid magic bytes")
	}
}

func TestInvalidVersion(t *testing.T) {
	data := make([]byte, FrameHeaderSize)
	data[0] = Magic[0]
	data[1] = Magic[1]
	data[2] = 0xFF

	_, err := ReadFrame(bytes.NewReader(data))
	if err == nil {
		t.Error("expected error for invalid version")
	}
}

func TestTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, &Frame{Type: TypeOutput, Payload: []byte("ABCDE")}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	data := buf.Bytes()[:buf.Len()-2]

	_, err := ReadFrame(bytes.NewReader(data))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected wrapped io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestOversizedHeadersRejected(t *testing.T) {
	f := &Frame{Type: TypeRun, Headers: make([]byte, maxHeaderSize+1)}
	if err := WriteFrame(io.Discard, f); err == nil {
		t.Error("expected error for headers exceeding uint24")
	}
}

func TestRunEncodeDecode(t *testing.T) {
	frame, err := EncodeRun(&RunHeader{Scenario: "uppercase", RunID: "run-1"})
	if err != nil {
		t.Fatalf("EncodeRun: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteFrame(&buf, frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	readFrame, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}

	got, err := DecodeRun(readFrame)
	if err != nil {
		t.Fatalf("DecodeRun: %v", err)
	}
	if got.Scenario != "uppercase" || got.RunID != "run-1" {
		t.Errorf("unexpected run header: %+v", got)
	}
}

func TestOutputEncodeDecode(t *testing.T) {
	out := []byte("In BaseClass constructor\n17.888")
	frame, err := EncodeOutput(&OutputHeader{Scenario: "construct", RunID: "run-2", Status: StatusOK}, out)
	if err != nil {
		t.Fatalf("EncodeOutput: %v", err)
	}

	hdr, payload, err := DecodeOutput(frame)
	if err != nil {
		t.Fatalf("DecodeOutput: %v", err)
	}
	if hdr.Status != StatusOK || hdr.Scenario != "construct" {
		t.Errorf("unexpected header: %+v", hdr)
	}
	if hdr.Bytes != len(out) {
		t.Errorf("Bytes: got %d, want %d", hdr.Bytes, len(out))
	}
	if !bytes.Equal(payload, out) {
		t.Errorf("payload: got %q, want %q", payload, out)
	}
}

func TestDecodeOutputLengthMismatch(t *testing.T) {
	frame, err := EncodeOutput(&OutputHeader{Scenario: "uppercase", Status: StatusOK}, []byte("abc"))
	if err != nil {
		t.Fatalf("EncodeOutput: %v", err)
	}
	frame.Payload = frame.Payload[:1]

	if _, _, err := DecodeOutput(frame); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestDecodeWrongFrameType(t *testing.T) {
	frame := NewPingFrame()
	if _, err := DecodeRun(frame); err == nil {
		t.Error("expected error decoding PING as RUN")
	}
	if _, _, err := DecodeOutput(frame); err == nil {
		t.Error("expected error decoding PING as OUTPUT")
	}
}
