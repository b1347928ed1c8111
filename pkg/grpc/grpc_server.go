package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/iot"
)

type IOTServer struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

func (i *IOTServer) CheckDeviceLimiter(token string) bool {
	return i.RateLimiterStore.Allow(token)
}

func (i *IOTServer) knownDevice(ctx context.Context, token string) bool {
	_, err := i.Iot.Device.Authenticate(ctx, token)
	return err == nil
}

// logFailure logs errors that are not the caller's fault.
func logFailure(method string, err error) {
	if errors.Is(err, iot.ErrUnknownDevice) ||
		errors.Is(err, iot.ErrInactiveDevice) ||
		errors.Is(err, iot.ErrInvalidReading) {
		return
	}
	common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Request failed",
		zap.String("method", method), zap.Error(err))
}
