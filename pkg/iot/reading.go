package iot

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

const (
	DefaultReadingsLimit = 100
	MaxReadingsLimit     = 1000
)

// value is not required, zero is a valid reading
var readingInputSchema = z.Struct(z.Shape{
	"SensorType": z.String().Required().OneOf([]string{
		string(models.SensorTypeTemperature),
		string(models.SensorTypeHumidity),
		string(models.SensorTypePressure),
	}),
	"Unit": z.String().Max(20),
})

// ValidateReadingInput checks the sensor type and unit of in, wrapping ErrInvalidReading.
func ValidateReadingInput(in *models.ReadingInput) error {
	if in == nil {
		return fmt.Errorf("%w: empty payload", ErrInvalidReading)
	}
	if issues := readingInputSchema.Validate(in); len(issues) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidReading, issues)
	}
	return nil
}

func (i *IOT) ingest(ctx context.Context, token string, input *models.ReadingInput) (*models.IngestResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryIOTReading),
	)

	if i.Device == nil {
		return nil, fmt.Errorf("device service not available")
	}

	device, err := i.Device.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := ValidateReadingInput(input); err != nil {
		return nil, err
	}

	now := i.now()
	timestamp := now
	if input.Timestamp != nil && !input.Timestamp.IsZero() {
		timestamp = input.Timestamp.UTC()
	}

	reading := models.SensorReading{
		DeviceID:   device.ID,
		SensorType: models.SensorType(input.SensorType),
		Value:      common.Round2(input.Value),
		Unit:       input.Unit,
		Timestamp:  timestamp,
	}

	logger.Info("Received reading for device", zap.Uint("device_id", device.ID), zap.Reflect("reading", reading))

	if err := i.Db.Conn.WithContext(ctx).Create(&reading).Error; err != nil {
		return nil, fmt.Errorf("insert reading: %w", err)
	}

	if err := i.Db.Conn.WithContext(ctx).Model(device).Update("last_seen_at", now).Error; err != nil {
		return nil, fmt.Errorf("touch device %d: %w", device.ID, err)
	}

	logger.Info("Stored reading for device", zap.Uint("device_id", device.ID), zap.Uint("reading_id", reading.ID))

	if i.Alert == nil {
		return nil, fmt.Errorf("alert service not available")
	}

	events, err := i.Alert.Evaluate(ctx, device, &reading)
	if err != nil {
		return nil, err
	}

	return &models.IngestResult{Reading: reading, Events: events}, nil
}

func (i *IOT) getDeviceReadings(ctx context.Context, deviceID uint, limit int) ([]models.SensorReading, error) {
	if limit <= 0 {
		limit = DefaultReadingsLimit
	}
	limit = min(limit, MaxReadingsLimit)

	var readings []models.SensorReading
	err := i.Db.Conn.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("timestamp desc").
		Order("id desc").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}

type IReadingImpl struct {
	iot *IOT
}

func (ir *IReadingImpl) Ingest(ctx context.Context, token string, input *models.ReadingInput) (*models.IngestResult, error) {
	return ir.iot.ingest(ctx, token, input)
}

func (ir *IReadingImpl) GetDeviceReadings(ctx context.Context, deviceID uint, limit int) ([]models.SensorReading, error) {
	return ir.iot.getDeviceReadings(ctx, deviceID, limit)
}

func (i *IOT) GetIReading() IReading {
	return &IReadingImpl{iot: i}
}
