package rpc

import (
	"context"
	"log/slog"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/aanand-mishra/students-grpc/internal/config"
	"github.com/aanand-mishra/students-grpc/internal/service"
	"github.com/aanand-mishra/students-grpc/internal/types"
)

// Server adapts service.Students to StudentServiceServer.
type Server struct {
	students *service.Students
}

var _ StudentServiceServer = (*Server)(nil)

// NewServer returns the gRPC adapter for students.
func NewServer(students *service.Students) *Server {
	return &Server{students: students}
}

func (s *Server) CreateStudent(ctx context.Context, in *types.Student) (*types.Student, error) {
	created, err := s.students.Create(ctx, *in)
	if err != nil {
		return nil, toStatus(err)
	}
	return &created, nil
}

func (s *Server) GetStudent(ctx context.Context, in *types.GetStudentRequest) (*types.Student, error) {
	student, err := s.students.Get(ctx, in.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &student, nil
}

func (s *Server) UpdateStudent(ctx context.Context, in *types.Student) (*types.Student, error) {
	updated, err := s.students.Update(ctx, *in)
	if err != nil {
		return nil, toStatus(err)
	}
	return &updated, nil
}

func (s *Server) DeleteStudent(ctx context.Context, in *types.DeleteStudentRequest) (*types.DeleteStudentResponse, error) {
	resp, err := s.students.Delete(ctx, in.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (s *Server) ListStudents(ctx context.Context, in *types.ListStudentsRequest) (*types.ListStudentsResponse, error) {
	resp, err := s.students.List(ctx, *in)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// toStatus maps a service error onto a gRPC status. Internal causes stay
// in the server log; the client only sees "internal error".
func toStatus(err error) error {
	switch service.KindOf(err) {
	case service.KindInvalidArgument:
		return status.Error(codes.InvalidArgument, service.Message(err))
	case service.KindNotFound:
		return status.Error(codes.NotFound, service.Message(err))
	default:
		return status.Error(codes.Internal, service.Message(err))
	}
}

// unaryInterceptors lists the server interceptors, outermost first. The
// recoverer sits innermost so a panic is logged and counted as Internal.
func unaryInterceptors(log *slog.Logger) []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		UnaryLogger(log),
		grpc_prometheus.UnaryServerInterceptor,
		UnaryRecoverer(log),
	}
}

// NewGRPCServer builds a *grpc.Server with logging, panic recovery and
// prometheus interceptors installed and the student service registered.
func NewGRPCServer(students *service.Students, cfg config.GRPCServer, log *slog.Logger) *grpc.Server {
	alivePolicy := keepalive.EnforcementPolicy{
		MinTime:             5 * time.Second, // clients pinging more often than this are disconnected
		PermitWithoutStream: true,
	}

	opts := []grpc.ServerOption{
		grpc.KeepaliveEnforcementPolicy(alivePolicy),
		grpc.ChainUnaryInterceptor(unaryInterceptors(log)...),
	}
	if cfg.MaxRecvMsgSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize))
	}

	server := grpc.NewServer(opts...)
	RegisterStudentServiceServer(server, NewServer(students))
	grpc_prometheus.Register(server)

	return server
}
