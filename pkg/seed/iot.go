package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

type IOTReport struct {
	User     models.User
	Devices  []models.IoTDevice
	Readings int
	Alerts   []models.AlertConfig
}

// SeedIOT creates the monitoring demo: three sensor devices with a day of hourly
// readings each, and four alert rules.
func (s *Seeder) SeedIOT(ctx context.Context) (*IOTReport, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameSeed,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySeedIOT),
	)

	logger.Info("Starting IoT monitoring seed")

	user, err := s.EnsureDemoUser(ctx)
	if err != nil {
		return nil, err
	}

	report := &IOTReport{User: *user}

	logger.Info("Creating demo devices")

	for _, fixture := range iotDeviceFixtures {
		token, err := s.NewToken()
		if err != nil {
			return nil, fmt.Errorf("generate token for %q: %w", fixture.name, err)
		}

		device := models.IoTDevice{
			UserID:      user.ID,
			Name:        fixture.name,
			Description: fixture.description,
			Location:    fixture.location,
			DeviceToken: token,
			IsActive:    1,
		}
		if err := s.Db.Conn.WithContext(ctx).Create(&device).Error; err != nil {
			return nil, fmt.Errorf("insert device %q: %w", fixture.name, err)
		}

		logger.Info("Device created",
			zap.Uint("device_id", device.ID),
			zap.String("name", device.Name),
			zap.String("token_prefix", token[:16]+"..."))

		report.Devices = append(report.Devices, device)
	}

	logger.Info("Creating sensor readings")

	now := s.Now()
	for i, fixture := range iotDeviceFixtures {
		device := report.Devices[i]
		for _, reading := range fixture.series.Generate(device.ID, now, s.Rand) {
			if err := s.Db.Conn.WithContext(ctx).Create(&reading).Error; err != nil {
				return nil, fmt.Errorf("insert %s reading for device %d: %w", reading.SensorType, device.ID, err)
			}
			report.Readings++
		}
	}

	logger.Info("Readings created", zap.Int("count", report.Readings))

	logger.Info("Creating alert configurations")

	for _, fixture := range alertFixtures {
		alert := models.AlertConfig{
			UserID:        user.ID,
			DeviceID:      report.Devices[fixture.device].ID,
			SensorType:    fixture.sensorType,
			AlertName:     fixture.name,
			Description:   fixture.description,
			ConditionType: fixture.conditionType,
			MinValue:      fixture.minValue,
			MaxValue:      fixture.maxValue,
			IsActive:      1,
			NotifyEmail:   1,
		}
		if err := s.Db.Conn.WithContext(ctx).Create(&alert).Error; err != nil {
			return nil, fmt.Errorf("insert alert config %q: %w", fixture.name, err)
		}

		logger.Info("Alert configuration created", zap.String("name", alert.AlertName))

		report.Alerts = append(report.Alerts, alert)
	}

	logger.Info("IoT monitoring seed completed",
		zap.Int("devices", len(report.Devices)),
		zap.Int("readings", report.Readings),
		zap.Int("alerts", len(report.Alerts)))

	return report, nil
}
