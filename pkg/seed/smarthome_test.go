package seed

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	gormmysql "gorm.io/driver/mysql"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/db"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

func TestSeedSmartHome(t *testing.T) {
	common.SetTestLoggerNop()
	s := NewTestSeeder(t)

	report, err := s.SeedSmartHome(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.DeviceTypes)
	assert.Len(t, report.Rooms, 4)
	assert.Len(t, report.Devices, 11)

	var deviceTypes []models.DeviceType
	require.NoError(t, s.Db.Conn.Order("id").Find(&deviceTypes).Error)
	require.Len(t, deviceTypes, 3)
	assert.Equal(t, "Luz", deviceTypes[0].Name)
	assert.Equal(t, models.ControlTypeSlider, deviceTypes[0].ControlType)
	assert.Equal(t, "Ar Condicionado", deviceTypes[1].Name)
	assert.Equal(t, models.ControlTypeTemperature, deviceTypes[1].ControlType)
	assert.Equal(t, "Cortina", deviceTypes[2].Name)
	assert.Equal(t, models.ControlTypePosition, deviceTypes[2].ControlType)

	for i, room := range report.Rooms {
		assert.Equal(t, i+1, room.Order)
		assert.Equal(t, "#f3f4f6", room.Color)
	}
}

func TestSeedSmartHome_DevicesPerRoom(t *testing.T) {
	common.SetTestLoggerNop()
	s := NewTestSeeder(t)

	report, err := s.SeedSmartHome(context.Background())
	require.NoError(t, err)

	want := map[string]int64{
		"Sala de Estar": 4,
		"Quarto":        3,
		"Cozinha":       2,
		"Banheiro":      2,
	}
	for _, room := range report.Rooms {
		var count int64
		require.NoError(t, s.Db.Conn.Model(&models.SmartDevice{}).Where("room_id = ?", room.ID).Count(&count).Error)
		assert.Equal(t, want[room.Name], count, room.Name)
	}
}

func TestSeedSmartHome_DeviceState(t *testing.T) {
	common.SetTestLoggerNop()
	s := NewTestSeeder(t)

	_, err := s.SeedSmartHome(context.Background())
	require.NoError(t, err)

	var devices []models.SmartDevice
	require.NoError(t, s.Db.Conn.Order("id").Find(&devices).Error)
	require.Len(t, devices, 11)

	ac := devices[2]
	assert.Equal(t, "Ar Condicionado", ac.Name)
	assert.Equal(t, 1, ac.IsOn)
	require.NotNil(t, ac.Temperature)
	assert.Equal(t, 22.0, *ac.Temperature)
	require.NotNil(t, ac.AcMode)
	assert.Equal(t, models.ACModeCool, *ac.AcMode)
	assert.Nil(t, ac.Brightness)

	sideLight := devices[1]
	assert.Equal(t, "Luz Lateral", sideLight.Name)
	assert.Equal(t, 0, sideLight.IsOn)
	require.NotNil(t, sideLight.Brightness)
	assert.Equal(t, 50, *sideLight.Brightness)

	bedroomCurtain := devices[6]
	require.NotNil(t, bedroomCurtain.CurtainPosition)
	assert.Equal(t, 0, *bedroomCurtain.CurtainPosition)
}

func TestSeedSmartHome_Rerun(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	s := NewTestSeeder(t)

	_, err := s.SeedSmartHome(context.Background())
	require.NoError(t, err)

	report, err := s.SeedSmartHome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.DeviceTypes)

	counts := map[any]int64{
		&models.DeviceType{}:  3,
		&models.Room{}:        8,
		&models.SmartDevice{}: 22,
		&models.User{}:        1,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, s.Db.Conn.Model(model).Count(&got).Error)
		assert.Equal(t, want, got, tableName(model))
	}

	skipped := 0
	for _, lobj := range ParseLogs(buf) {
		if lobj["category"] == "smart_home" && lobj["msg"] == "Device type already present" {
			skipped++
		}
	}
	assert.Equal(t, 3, skipped)
}

func TestSeedSmartHome_MySQLDuplicateTypesAndRoomFailure(t *testing.T) {
	common.SetTestLoggerNop()
	t.Setenv(common.EnvKeyIOTAutoMigrate, "false")

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	d, err := db.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "open_id", "email"}).AddRow(7, DemoUserOpenID, DemoUserEmail))

	for range deviceTypeFixtures {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `device_types`").
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'PRIMARY'"})
		mock.ExpectRollback()
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rooms`").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	mock.ExpectRollback()

	s := New(d)
	s.Now = func() time.Time { return fixedNow }

	report, err := s.SeedSmartHome(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), `insert room "Sala de Estar"`)
	assert.False(t, db.IsDuplicateKey(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSmartHomeReportPrint(t *testing.T) {
	report := &SmartHomeReport{
		User:        models.User{Email: DemoUserEmail},
		DeviceTypes: 0,
		Rooms:       make([]models.Room, 4),
		Devices:     make([]models.SmartDevice, 11),
	}

	var out bytes.Buffer
	report.Print(&out)

	assert.Contains(t, out.String(), "Device types inserted: 0")
	assert.Contains(t, out.String(), "Rooms: 4")
	assert.Contains(t, out.String(), "Devices: 11")
}
