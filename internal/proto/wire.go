package proto

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and response type. The encoding
// is the protobuf binary format described in fivet.proto.
type Message interface {
	// AppendWire appends the encoded message to b.
	AppendWire(b []byte) []byte
	// UnmarshalWire decodes b into the receiver. Unknown fields are skipped.
	UnmarshalWire(b []byte) error
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

// fieldFunc consumes the value of one field from b and reports how many
// bytes it used.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func walkFields(b []byte, field fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := field(num, typ, b)
		if err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

func wrongType(num protowire.Number, typ protowire.Type) error {
	return fmt.Errorf("field %d: unexpected wire type %d", num, typ)
}

func consumeString(num protowire.Number, typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, wrongType(num, typ)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v
	return n, nil
}

func consumeInt64(num protowire.Number, typ protowire.Type, b []byte, dst *int64) (int, error) {
	if typ != protowire.VarintType {
		return 0, wrongType(num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = int64(v)
	return n, nil
}

func consumeMessage(num protowire.Number, typ protowire.Type, b []byte, dst Message) (int, error) {
	if typ != protowire.BytesType {
		return 0, wrongType(num, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := dst.UnmarshalWire(v); err != nil {
		return 0, fmt.Errorf("field %d: %w", num, err)
	}
	return n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}
