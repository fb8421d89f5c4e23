package protocol

import "fmt"

// RunHeader names the scenario a RUN frame asks the engine to execute.
type RunHeader struct {
	Scenario string `msgpack:"scenario"`
	RunID    string `msgpack:"run_id"`
}

// EncodeRun creates a RUN frame.
func EncodeRun(req *RunHeader) (*Frame, error) {
	headers, err := MarshalMsgpack(req)
	if err != nil {
		return nil, fmt.Errorf("encoding run headers: %w", err)
	}
	return &Frame{
		Type:    TypeRun,
		Flags:   FlagFinal,
		Headers: headers,
	}, nil
}

// DecodeRun extracts the run header from a RUN frame.
func DecodeRun(f *Frame) (*RunHeader, error) {
	if err := expectType(f, TypeRun, "RUN"); err != nil {
		return nil, err
	}
	var req RunHeader
	if err := UnmarshalMsgpack(f.Headers, &req); err != nil {
		return nil, fmt.Errorf("decoding run headers: %w", err)
	}
	return &req, nil
}
