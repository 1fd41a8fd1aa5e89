package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	grpcproto "google.golang.org/grpc/encoding/proto"
)

// Content-subtypes the server understands. CodecProto is the gRPC default
// ("application/grpc"); CodecJSON travels as "application/grpc+json".
const (
	CodecProto = grpcproto.Name
	CodecJSON  = "json"
)

func init() {
	encoding.RegisterCodec(protoCodec{fallback: encoding.GetCodec(grpcproto.Name)})
	encoding.RegisterCodec(jsonCodec{})
}

// wireMessage is implemented by the request and response types in
// internal/types.
type wireMessage interface {
	MarshalProto() ([]byte, error)
	UnmarshalProto([]byte) error
}

// protoCodec encodes the student messages in protobuf wire format, field
// numbers as in api/student.proto. Anything else, such as generated
// proto.Message values, goes to the stock grpc codec.
type protoCodec struct {
	fallback encoding.Codec
}

func (c protoCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(wireMessage); ok {
		return m.MarshalProto()
	}
	if c.fallback == nil {
		return nil, fmt.Errorf("proto codec: cannot marshal %T", v)
	}
	return c.fallback.Marshal(v)
}

func (c protoCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(wireMessage); ok {
		return m.UnmarshalProto(data)
	}
	if c.fallback == nil {
		return fmt.Errorf("proto codec: cannot unmarshal into %T", v)
	}
	return c.fallback.Unmarshal(data, v)
}

func (protoCodec) Name() string {
	return CodecProto
}

// jsonCodec marshals messages with their json struct tags, which carry the
// field names of api/student.proto.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecJSON
}
