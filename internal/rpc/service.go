// Package rpc exposes the student service over gRPC.
//
// The service descriptor below is the Go rendition of api/student.proto.
// Messages are the plain structs from internal/types. The codecs in codec.go
// carry them in protobuf wire format by default, or as JSON for clients that
// ask for the "json" content-subtype.
package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/aanand-mishra/students-grpc/internal/types"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "students.v1.StudentService"

// Full method names, as they appear in logs and metrics.
const (
	CreateStudentMethod = "/" + ServiceName + "/CreateStudent"
	GetStudentMethod    = "/" + ServiceName + "/GetStudent"
	UpdateStudentMethod = "/" + ServiceName + "/UpdateStudent"
	DeleteStudentMethod = "/" + ServiceName + "/DeleteStudent"
	ListStudentsMethod  = "/" + ServiceName + "/ListStudents"
)

// StudentServiceServer is the server API for the student service.
type StudentServiceServer interface {
	CreateStudent(context.Context, *types.Student) (*types.Student, error)
	GetStudent(context.Context, *types.GetStudentRequest) (*types.Student, error)
	UpdateStudent(context.Context, *types.Student) (*types.Student, error)
	DeleteStudent(context.Context, *types.DeleteStudentRequest) (*types.DeleteStudentResponse, error)
	ListStudents(context.Context, *types.ListStudentsRequest) (*types.ListStudentsResponse, error)
}

// RegisterStudentServiceServer registers srv on s.
func RegisterStudentServiceServer(s grpc.ServiceRegistrar, srv StudentServiceServer) {
	s.RegisterService(&StudentServiceDesc, srv)
}

// StudentServiceDesc is the grpc.ServiceDesc for the student service.
var StudentServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StudentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateStudent", Handler: createStudentHandler},
		{MethodName: "GetStudent", Handler: getStudentHandler},
		{MethodName: "UpdateStudent", Handler: updateStudentHandler},
		{MethodName: "DeleteStudent", Handler: deleteStudentHandler},
		{MethodName: "ListStudents", Handler: listStudentsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/student.proto",
}

// unary decodes a request of type Req and runs call through the server's
// interceptor chain.
func unary[Req, Resp any](
	method string,
	call func(StudentServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StudentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StudentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	createStudentHandler = unary(CreateStudentMethod, StudentServiceServer.CreateStudent)
	getStudentHandler    = unary(GetStudentMethod, StudentServiceServer.GetStudent)
	updateStudentHandler = unary(UpdateStudentMethod, StudentServiceServer.UpdateStudent)
	deleteStudentHandler = unary(DeleteStudentMethod, StudentServiceServer.DeleteStudent)
	listStudentsHandler  = unary(ListStudentsMethod, StudentServiceServer.ListStudents)
)
