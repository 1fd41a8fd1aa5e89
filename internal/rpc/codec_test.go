package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/aanand-mishra/students-grpc/internal/types"
)

func TestJSONCodecUsesSchemaFieldNames(t *testing.T) {
	codec := encoding.GetCodec(CodecJSON)
	require.NotNil(t, codec, "codec must be registered")

	data, err := codec.Marshal(&types.ListStudentsResponse{
		Students:      []types.Student{{ID: "1", Name: "A", Email: "a@b", Age: 1, Major: "M", GPA: 2.5}},
		NextPageToken: "tok",
		TotalCount:    4,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"students": [{"id":"1","name":"A","email":"a@b","age":1,"major":"M","gpa":2.5}],
		"next_page_token": "tok",
		"total_count": 4
	}`, string(data))

	var req types.ListStudentsRequest
	require.NoError(t, codec.Unmarshal([]byte(`{"page_size":5,"page_token":"x"}`), &req))
	assert.Equal(t, types.ListStudentsRequest{PageSize: 5, PageToken: "x"}, req)

	var empty types.GetStudentRequest
	assert.NoError(t, codec.Unmarshal(nil, &empty))
}

func TestProtoCodec(t *testing.T) {
	codec := encoding.GetCodec(CodecProto)
	require.IsType(t, protoCodec{}, codec, "default codec must be replaced")

	in := &types.DeleteStudentResponse{Success: true, Message: "student Alice deleted"}
	data, err := codec.Marshal(in)
	require.NoError(t, err)

	var out types.DeleteStudentResponse
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, *in, out)

	// Generated messages still go through the stock codec.
	data, err = codec.Marshal(wrapperspb.String("hi"))
	require.NoError(t, err)
	got := &wrapperspb.StringValue{}
	require.NoError(t, codec.Unmarshal(data, got))
	assert.Equal(t, "hi", got.GetValue())

	_, err = codec.Marshal(struct{}{})
	assert.Error(t, err)
}
