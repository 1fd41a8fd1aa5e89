package types

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Protobuf wire encoding of the messages in api/student.proto.
//
// Field numbers below must match the .proto file. Zero values are omitted
// on encode, as proto3 does, and unknown fields are skipped on decode.

// MarshalProto encodes s in protobuf wire format.
func (s *Student) MarshalProto() ([]byte, error) {
	return s.appendProto(nil), nil
}

func (s *Student) appendProto(b []byte) []byte {
	b = appendString(b, 1, s.ID)
	b = appendString(b, 2, s.Name)
	b = appendString(b, 3, s.Email)
	b = appendInt32(b, 4, s.Age)
	b = appendString(b, 5, s.Major)
	b = appendDouble(b, 6, s.GPA)
	return b
}

// UnmarshalProto replaces s with the message decoded from b.
func (s *Student) UnmarshalProto(b []byte) error {
	*s = Student{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(num, typ, b, &s.ID)
		case 2:
			return consumeString(num, typ, b, &s.Name)
		case 3:
			return consumeString(num, typ, b, &s.Email)
		case 4:
			return consumeInt32(num, typ, b, &s.Age)
		case 5:
			return consumeString(num, typ, b, &s.Major)
		case 6:
			return consumeDouble(num, typ, b, &s.GPA)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (r *GetStudentRequest) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, r.ID), nil
}

func (r *GetStudentRequest) UnmarshalProto(b []byte) error {
	*r = GetStudentRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(num, typ, b, &r.ID)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (r *DeleteStudentRequest) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, r.ID), nil
}

func (r *DeleteStudentRequest) UnmarshalProto(b []byte) error {
	*r = DeleteStudentRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(num, typ, b, &r.ID)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (r *DeleteStudentResponse) MarshalProto() ([]byte, error) {
	b := appendBool(nil, 1, r.Success)
	b = appendString(b, 2, r.Message)
	return b, nil
}

func (r *DeleteStudentResponse) UnmarshalProto(b []byte) error {
	*r = DeleteStudentResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeBool(num, typ, b, &r.Success)
		case 2:
			return consumeString(num, typ, b, &r.Message)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (r *ListStudentsRequest) MarshalProto() ([]byte, error) {
	b := appendInt32(nil, 1, r.PageSize)
	b = appendString(b, 2, r.PageToken)
	return b, nil
}

func (r *ListStudentsRequest) UnmarshalProto(b []byte) error {
	*r = ListStudentsRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeInt32(num, typ, b, &r.PageSize)
		case 2:
			return consumeString(num, typ, b, &r.PageToken)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (r *ListStudentsResponse) MarshalProto() ([]byte, error) {
	var b []byte
	for i := range r.Students {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Students[i].appendProto(nil))
	}
	b = appendString(b, 2, r.NextPageToken)
	b = appendInt32(b, 3, r.TotalCount)
	return b, nil
}

func (r *ListStudentsResponse) UnmarshalProto(b []byte) error {
	*r = ListStudentsResponse{Students: []Student{}}
	var nested error
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			if typ != protowire.BytesType {
				break
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n
			}
			var s Student
			if nested = s.UnmarshalProto(v); nested != nil {
				return n
			}
			r.Students = append(r.Students, s)
			return n
		case 2:
			return consumeString(num, typ, b, &r.NextPageToken)
		case 3:
			return consumeInt32(num, typ, b, &r.TotalCount)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
	if err != nil {
		return err
	}
	return nested
}

// decodeFields walks the fields of a message. field consumes the value of
// one field and returns its length, or a negative protowire error code.
func decodeFields(b []byte, field func(protowire.Number, protowire.Type, []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n = field(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	bits := math.Float64bits(v)
	if bits == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, bits)
}

// A field whose wire type does not match the schema is skipped like an
// unknown field.

func consumeString(num protowire.Number, typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeInt32(num protowire.Number, typ protowire.Type, b []byte, dst *int32) int {
	if typ != protowire.VarintType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int32(v)
	}
	return n
}

func consumeBool(num protowire.Number, typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func consumeDouble(num protowire.Number, typ protowire.Type, b []byte, dst *float64) int {
	if typ != protowire.Fixed64Type {
		return protowire.ConsumeFieldValue(num, typ, b)
	}
	v, n := protowire.ConsumeFixed64(b)
	if n >= 0 {
		*dst = math.Float64frombits(v)
	}
	return n
}
