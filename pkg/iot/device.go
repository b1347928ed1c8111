package iot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

func (i *IOT) authenticate(ctx context.Context, token string) (*models.IoTDevice, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryIOTDevice),
	)

	if token == "" {
		return nil, ErrUnknownDevice
	}

	var found []models.IoTDevice
	if err := i.Db.Conn.WithContext(ctx).Where("device_token = ?", token).Limit(1).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("look up device token: %w", err)
	}

	if len(found) == 0 {
		logger.Warn("Unknown device token", zap.String("token_prefix", tokenPrefix(token)))
		return nil, ErrUnknownDevice
	}

	device := found[0]
	if device.IsActive == 0 {
		logger.Warn("Inactive device", zap.Uint("device_id", device.ID))
		return nil, ErrInactiveDevice
	}

	return &device, nil
}

// tokenPrefix keeps tokens out of the logs.
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}

type IDeviceImpl struct {
	iot *IOT
}

func (id *IDeviceImpl) Authenticate(ctx context.Context, token string) (*models.IoTDevice, error) {
	return id.iot.authenticate(ctx, token)
}

func (i *IOT) GetIDevice() IDevice {
	return &IDeviceImpl{iot: i}
}
