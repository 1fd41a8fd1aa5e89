package rpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/aanand-mishra/students-grpc/internal/types"
)

// Dial opens a plaintext client connection to addr. Messages use the
// protobuf codec unless opts select another content-subtype, e.g.
// grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecJSON)).
// Extra opts are applied after the defaults.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	defaults := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                10 * time.Second,
			Timeout:             3 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	return grpc.NewClient(addr, append(defaults, opts...)...)
}

// Client is a typed client for the student service.
// Errors are gRPC statuses; inspect them with status.Code.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

// CreateStudent stores student under a server-generated id.
func (c *Client) CreateStudent(ctx context.Context, student types.Student, opts ...grpc.CallOption) (types.Student, error) {
	var out types.Student
	err := c.invoke(ctx, CreateStudentMethod, &student, &out, opts...)
	return out, err
}

// GetStudent fetches the student stored under id.
func (c *Client) GetStudent(ctx context.Context, id string, opts ...grpc.CallOption) (types.Student, error) {
	var out types.Student
	err := c.invoke(ctx, GetStudentMethod, &types.GetStudentRequest{ID: id}, &out, opts...)
	return out, err
}

// UpdateStudent replaces the student identified by student.ID.
func (c *Client) UpdateStudent(ctx context.Context, student types.Student, opts ...grpc.CallOption) (types.Student, error) {
	var out types.Student
	err := c.invoke(ctx, UpdateStudentMethod, &student, &out, opts...)
	return out, err
}

// DeleteStudent removes the student stored under id.
func (c *Client) DeleteStudent(ctx context.Context, id string, opts ...grpc.CallOption) (types.DeleteStudentResponse, error) {
	var out types.DeleteStudentResponse
	err := c.invoke(ctx, DeleteStudentMethod, &types.DeleteStudentRequest{ID: id}, &out, opts...)
	return out, err
}

// ListStudents fetches one page of students.
func (c *Client) ListStudents(ctx context.Context, req types.ListStudentsRequest, opts ...grpc.CallOption) (types.ListStudentsResponse, error) {
	var out types.ListStudentsResponse
	err := c.invoke(ctx, ListStudentsMethod, &req, &out, opts...)
	return out, err
}
