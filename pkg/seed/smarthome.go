package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/db"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

type SmartHomeReport struct {
	User models.User
	// DeviceTypes counts catalog rows inserted by this run, zero when already seeded.
	DeviceTypes int
	Rooms       []models.Room
	Devices     []models.SmartDevice
}

// SeedSmartHome creates the device type catalog, four rooms and their controllable devices.
func (s *Seeder) SeedSmartHome(ctx context.Context) (*SmartHomeReport, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameSeed,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySeedSmartHome),
	)

	logger.Info("Starting smart home seed")

	user, err := s.EnsureDemoUser(ctx)
	if err != nil {
		return nil, err
	}

	report := &SmartHomeReport{User: *user}

	logger.Info("Creating device types")

	for _, fixture := range deviceTypeFixtures {
		deviceType := fixture
		err := s.Db.Conn.WithContext(ctx).Create(&deviceType).Error
		if db.IsDuplicateKey(err) {
			logger.Info("Device type already present", zap.Uint("id", deviceType.ID), zap.String("name", deviceType.Name))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert device type %q: %w", fixture.Name, err)
		}

		logger.Info("Device type created", zap.Uint("id", deviceType.ID), zap.String("name", deviceType.Name))
		report.DeviceTypes++
	}

	logger.Info("Creating rooms")

	for _, fixture := range roomFixtures {
		room := models.Room{
			UserID: user.ID,
			Name:   fixture.name,
			Icon:   fixture.icon,
			Color:  roomColor,
			Order:  fixture.order,
		}
		if err := s.Db.Conn.WithContext(ctx).Create(&room).Error; err != nil {
			return nil, fmt.Errorf("insert room %q: %w", fixture.name, err)
		}

		logger.Info("Room created", zap.Uint("room_id", room.ID), zap.String("name", room.Name))
		report.Rooms = append(report.Rooms, room)
	}

	logger.Info("Creating smart devices")

	for _, fixture := range smartDeviceFixtures {
		device := models.SmartDevice{
			UserID:          user.ID,
			RoomID:          report.Rooms[fixture.room].ID,
			DeviceTypeID:    fixture.deviceTypeID,
			Name:            fixture.name,
			Description:     fixture.description,
			IsOn:            fixture.isOn,
			Brightness:      fixture.brightness,
			Temperature:     fixture.temperature,
			CurtainPosition: fixture.curtainPosition,
			AcMode:          fixture.acMode,
		}
		if err := s.Db.Conn.WithContext(ctx).Create(&device).Error; err != nil {
			return nil, fmt.Errorf("insert smart device %q in room %q: %w",
				fixture.name, report.Rooms[fixture.room].Name, err)
		}
		report.Devices = append(report.Devices, device)
	}

	logger.Info("Smart home seed completed",
		zap.Int("rooms", len(report.Rooms)),
		zap.Int("devices", len(report.Devices)))

	return report, nil
}
