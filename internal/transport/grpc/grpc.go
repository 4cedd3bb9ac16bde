// Package grpc implements the gRPC transport for voxsplit.
//
// The service voxsplit.v1.Pipeline has two unary methods, Prepare and Speak,
// whose messages are the JSON-encoded types of package message. The standard
// gRPC health service is registered alongside.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/nadzzz/voxsplit/internal/message"
	"github.com/nadzzz/voxsplit/internal/pipeline"
	"github.com/nadzzz/voxsplit/internal/speak"
	"github.com/nadzzz/voxsplit/internal/transport"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "voxsplit.v1.Pipeline"

const (
	prepareMethod = "/" + ServiceName + "/Prepare"
	speakMethod   = "/" + ServiceName + "/Speak"
)

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port   int
	server *grpc.Server
	health *health.Server
}

// New creates a new gRPC transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return t.Serve(ctx, lis, handler)
}

// Serve runs the gRPC server on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, handler transport.Handler) error {
	t.server = grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary))
	t.server.RegisterService(&serviceDesc, &pipelineServer{handler: handler})

	t.health = health.NewServer()
	healthpb.RegisterHealthServer(t.server, t.health)
	t.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	slog.Info("grpc transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.health.Shutdown()
		t.server.GracefulStop()
	}()

	return t.server.Serve(lis)
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	if t.server != nil {
		t.server.GracefulStop()
	}
	return nil
}

// pipelineServer adapts a transport.Handler to the service methods and maps
// its errors to gRPC status codes.
type pipelineServer struct {
	handler transport.Handler
}

type pipelineService interface {
	Prepare(ctx context.Context, req *message.Request) (*message.PrepareResult, error)
	Speak(ctx context.Context, req *message.Request) (*message.SpeakResult, error)
}

func (s *pipelineServer) Prepare(ctx context.Context, req *message.Request) (*message.PrepareResult, error) {
	if req.Source == "" {
		req.Source = "grpc"
	}
	res, err := s.handler.Prepare(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return res, nil
}

func (s *pipelineServer) Speak(ctx context.Context, req *message.Request) (*message.SpeakResult, error) {
	if req.Source == "" {
		req.Source = "grpc"
	}
	res, err := s.handler.Speak(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return res, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrEmptyInput), errors.Is(err, pipeline.ErrNoFragments):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, speak.ErrAllChunksFailed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, speak.ErrSynthesisDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*pipelineService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Prepare", Handler: prepareHandler},
		{MethodName: "Speak", Handler: speakHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "voxsplit/v1/pipeline",
}

func prepareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(pipelineService).Prepare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: prepareMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(pipelineService).Prepare(ctx, req.(*message.Request))
	})
}

func speakHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(pipelineService).Speak(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: speakMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(pipelineService).Speak(ctx, req.(*message.Request))
	})
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	slog.Debug("grpc call", "method", info.FullMethod, "code", status.Code(err), "duration", time.Since(start))
	return resp, err
}

// Client calls the Pipeline service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Prepare calls Pipeline/Prepare.
func (c *Client) Prepare(ctx context.Context, req *message.Request, opts ...grpc.CallOption) (*message.PrepareResult, error) {
	out := new(message.PrepareResult)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.conn.Invoke(ctx, prepareMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Speak calls Pipeline/Speak.
func (c *Client) Speak(ctx context.Context, req *message.Request, opts ...grpc.CallOption) (*message.SpeakResult, error) {
	out := new(message.SpeakResult)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.conn.Invoke(ctx, speakMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
