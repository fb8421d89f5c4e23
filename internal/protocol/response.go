package protocol

import "fmt"

// StatusOK marks an OUTPUT frame from a scenario that ran to completion.
// Failed runs come back as ERROR frames instead.
const StatusOK = "ok"

// OutputHeader describes the captured output carried in an OUTPUT frame.
type OutputHeader struct {
	Scenario string `msgpack:"scenario"`
	RunID    string `msgpack:"run_id"`
	Status   string `msgpack:"status"`
	Bytes    int    `msgpack:"bytes"`
}

// EncodeOutput creates an OUTPUT frame. Bytes is filled from the payload.
func EncodeOutput(hdr *OutputHeader, output []byte) (*Frame, error) {
	hdr.Bytes = len(output)
	headers, err := MarshalMsgpack(hdr)
	if err != nil {
		return nil, fmt.Errorf("encoding output headers: %w", err)
	}
	return &Frame{
		Type:    TypeOutput,
		Flags:   FlagFinal,
		Headers: headers,
		Payload: output,
	}, nil
}

// DecodeOutput extracts header and captured bytes from an OUTPUT frame.
func DecodeOutput(f *Frame) (*OutputHeader, []byte, error) {
	if err := expectType(f, TypeOutput, "OUTPUT"); err != nil {
		return nil, nil, err
	}
	var hdr OutputHeader
	if err := UnmarshalMsgpack(f.Headers, &hdr); err != nil {
		return nil, nil, fmt.Errorf("decoding output headers: %w", err)
	}
	if hdr.Bytes != len(f.Payload) {
		return nil, nil, fmt.Errorf("output length mismatch: header says %d, payload has %d", hdr.Bytes, len(f.Payload))
	}
	return &hdr, f.Payload, nil
}
