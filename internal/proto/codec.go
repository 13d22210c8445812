package proto

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	grpcproto "google.golang.org/grpc/encoding/proto"
	"google.golang.org/protobuf/proto"
)

// CodecName is the content subtype the codec is registered under. It is the
// gRPC default, so peers built from fivet.proto with protoc need nothing
// special to talk to the service.
const CodecName = grpcproto.Name

// wireCodec encodes Message values in the protobuf binary format. Generated
// protobuf messages that share the process (health checks, reflection) are
// handed to the protobuf runtime unchanged.
type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		return m.AppendWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("marshal %T: not a protobuf message", v)
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		if err := m.UnmarshalWire(data); err != nil {
			return fmt.Errorf("unmarshal %T: %w", v, err)
		}
		return nil
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("unmarshal %T: not a protobuf message", v)
}

func (wireCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(wireCodec{})
}
