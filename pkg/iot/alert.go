package iot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

// Triggered reports whether value fires config. above compares against the max bound,
// below against the min bound, between fires when value leaves [min, max]. A missing
// bound never fires.
func Triggered(config *models.AlertConfig, value float64) (bool, string) {
	switch config.ConditionType {
	case models.ConditionTypeAbove:
		if config.MaxValue != nil && value > *config.MaxValue {
			return true, fmt.Sprintf("%s %.2f above %.2f", config.SensorType, value, *config.MaxValue)
		}
	case models.ConditionTypeBelow:
		if config.MinValue != nil && value < *config.MinValue {
			return true, fmt.Sprintf("%s %.2f below %.2f", config.SensorType, value, *config.MinValue)
		}
	case models.ConditionTypeBetween:
		below := config.MinValue != nil && value < *config.MinValue
		above := config.MaxValue != nil && value > *config.MaxValue
		if below || above {
			return true, fmt.Sprintf("%s %.2f outside [%s, %s]",
				config.SensorType, value, formatBound(config.MinValue), formatBound(config.MaxValue))
		}
	}
	return false, ""
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func (i *IOT) evaluate(ctx context.Context, device *models.IoTDevice, reading *models.SensorReading) ([]models.AlertEvent, error) {
	conn := i.Db.Conn.WithContext(ctx)

	var configs []models.AlertConfig
	err := conn.
		Where("device_id = ? AND sensor_type = ? AND is_active = ?", device.ID, reading.SensorType, 1).
		Order("id").
		Find(&configs).Error
	if err != nil {
		return nil, fmt.Errorf("load alert configs for device %d: %w", device.ID, err)
	}

	if len(configs) == 0 {
		// nothing configured for this sensor
		return nil, nil
	}

	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryIOTAlert),
	)

	var events []models.AlertEvent
	for _, config := range configs {
		fired, message := Triggered(&config, reading.Value)
		if !fired {
			continue
		}

		event := models.AlertEvent{
			AlertConfigID: config.ID,
			DeviceID:      device.ID,
			SensorType:    reading.SensorType,
			Value:         reading.Value,
			Message:       message,
			TriggeredAt:   reading.Timestamp,
		}

		logger.Info("Alert found", zap.String("alert_name", config.AlertName), zap.Reflect("event", event))

		if err := conn.Create(&event).Error; err != nil {
			return nil, fmt.Errorf("insert alert event for %q: %w", config.AlertName, err)
		}

		logger.Info("Alert saved", zap.String("alert_name", config.AlertName), zap.Reflect("event", event))

		events = append(events, event)
	}

	return events, nil
}

func (i *IOT) getDeviceAlertEvents(ctx context.Context, deviceID uint) ([]models.AlertEvent, error) {
	var events []models.AlertEvent
	err := i.Db.Conn.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("triggered_at desc").
		Order("id desc").
		Find(&events).Error
	return events, err
}

type IAlertImpl struct {
	iot *IOT
}

func (ia *IAlertImpl) Evaluate(ctx context.Context, device *models.IoTDevice, reading *models.SensorReading) ([]models.AlertEvent, error) {
	return ia.iot.evaluate(ctx, device, reading)
}

func (ia *IAlertImpl) GetDeviceAlertEvents(ctx context.Context, deviceID uint) ([]models.AlertEvent, error) {
	return ia.iot.getDeviceAlertEvents(ctx, deviceID)
}

func (i *IOT) GetIAlert() IAlert {
	return &IAlertImpl{iot: i}
}
