package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The ingest service is declared without generated stubs. Every message is a
// google.protobuf.Struct, so any gRPC client can call it with reflection-free tooling.
const (
	ServiceName = "iotdash.IngestService"

	MethodPostReading    = "/" + ServiceName + "/PostReading"
	MethodGetAlertEvents = "/" + ServiceName + "/GetAlertEvents"
	MethodPostLimiter    = "/" + ServiceName + "/PostLimiter"
)

type IngestServiceServer interface {
	PostReading(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAlertEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(IngestServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(fullMethod string, call unaryMethod) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IngestServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IngestServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var IngestServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IngestServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PostReading",
			Handler:    unaryHandler(MethodPostReading, IngestServiceServer.PostReading),
		},
		{
			MethodName: "GetAlertEvents",
			Handler:    unaryHandler(MethodGetAlertEvents, IngestServiceServer.GetAlertEvents),
		},
		{
			MethodName: "PostLimiter",
			Handler:    unaryHandler(MethodPostLimiter, IngestServiceServer.PostLimiter),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "iotdash/ingest.proto",
}

func RegisterIngestServiceServer(s grpc.ServiceRegistrar, srv IngestServiceServer) {
	s.RegisterService(&IngestServiceDesc, srv)
}

type IngestServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIngestServiceClient(cc grpc.ClientConnInterface) *IngestServiceClient {
	return &IngestServiceClient{cc: cc}
}

func (c *IngestServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IngestServiceClient) PostReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostReading, in, opts...)
}

func (c *IngestServiceClient) GetAlertEvents(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAlertEvents, in, opts...)
}

func (c *IngestServiceClient) PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostLimiter, in, opts...)
}
