package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalMsgpack encodes a value to msgpack bytes.
func MarshalMsgpack(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// UnmarshalMsgpack decodes msgpack bytes into a value.
func UnmarshalMsgpack(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

func expectType(f *Frame, want uint8, name string) error {
	if f.Type != want {
		return fmt.Errorf("expected %s frame, got type 0x%02x", name, f.Type)
	}
	return nil
}
