package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/iot-dashboard/pkg/common"
)

// FieldDeviceToken is the request field the rate limiter keys on.
const FieldDeviceToken = "device_token"

func (i *IOTServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			if r, ok := req.(*structpb.Struct); ok {
				token := r.GetFields()[FieldDeviceToken].GetStringValue()
				// unknown tokens fall through to the handler, which rejects them
				if token != "" && i.knownDevice(ctx, token) && !i.CheckDeviceLimiter(token) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
