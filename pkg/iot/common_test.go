package iot

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/iot-dashboard/pkg/db"
	"liyu1981.xyz/iot-dashboard/pkg/iot/mocks"
	"liyu1981.xyz/iot-dashboard/pkg/models"
	_ "liyu1981.xyz/iot-dashboard/pkg/testing"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func GetMockIOTWithMemorySqliteDialector(t *testing.T, useMockIDevice, useMockIReading, useMockIAlert bool) (
	*gomock.Controller,
	*IOT,
	*mocks.MockIDevice,
	*mocks.MockIReading,
	*mocks.MockIAlert,
) {
	ctrl := gomock.NewController(t)

	mockIDevice := mocks.NewMockIDevice(ctrl)
	mockIReading := mocks.NewMockIReading(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)

	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	iotInstance := &IOT{Db: dbInstance, Now: func() time.Time { return fixedNow }}

	deviceService := iotInstance.GetIDevice()
	if useMockIDevice {
		deviceService = mockIDevice
	}

	readingService := iotInstance.GetIReading()
	if useMockIReading {
		readingService = mockIReading
	}

	alertService := iotInstance.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	iotInstance.WithServices(ServiceOpts{
		Device:  deviceService,
		Reading: readingService,
		Alert:   alertService,
	})

	return ctrl, iotInstance, mockIDevice, mockIReading, mockIAlert
}

// createDevice inserts a user and one device owned by it, returning the device.
func createDevice(t *testing.T, i *IOT, active bool) *models.IoTDevice {
	user := models.User{OpenID: uuid.NewString(), Role: models.UserRoleUser}
	require.NoError(t, i.Db.Conn.Create(&user).Error)

	device := models.IoTDevice{
		UserID:      user.ID,
		Name:        "test device",
		DeviceToken: uuid.NewString(),
	}
	if active {
		device.IsActive = 1
	}
	require.NoError(t, i.Db.Conn.Create(&device).Error)
	return &device
}

func createAlertConfig(t *testing.T, i *IOT, device *models.IoTDevice, sensorType models.SensorType,
	condition models.ConditionType, minValue, maxValue *float64) *models.AlertConfig {
	config := models.AlertConfig{
		UserID:        device.UserID,
		DeviceID:      device.ID,
		SensorType:    sensorType,
		AlertName:     string(sensorType) + " " + string(condition),
		ConditionType: condition,
		MinValue:      minValue,
		MaxValue:      maxValue,
		IsActive:      1,
	}
	require.NoError(t, i.Db.Conn.Create(&config).Error)
	return &config
}

func ptr[T any](v T) *T {
	return &v
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
