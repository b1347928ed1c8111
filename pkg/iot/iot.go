package iot

import (
	"context"
	"errors"
	"time"

	"liyu1981.xyz/iot-dashboard/pkg/db"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

//go:generate mockgen -source=iot.go -destination=mocks/mock_iot.go -package=mocks

var (
	ErrUnknownDevice  = errors.New("unknown device token")
	ErrInactiveDevice = errors.New("device is inactive")
	ErrInvalidReading = errors.New("invalid reading")
)

type IDevice interface {
	Authenticate(ctx context.Context, token string) (*models.IoTDevice, error)
}

type IReading interface {
	Ingest(ctx context.Context, token string, input *models.ReadingInput) (*models.IngestResult, error)
	GetDeviceReadings(ctx context.Context, deviceID uint, limit int) ([]models.SensorReading, error)
}

type IAlert interface {
	Evaluate(ctx context.Context, device *models.IoTDevice, reading *models.SensorReading) ([]models.AlertEvent, error)
	GetDeviceAlertEvents(ctx context.Context, deviceID uint) ([]models.AlertEvent, error)
}

type IOT struct {
	Db      *db.DB
	Device  IDevice
	Reading IReading
	Alert   IAlert

	// Now stamps readings sent without a timestamp, defaults to time.Now.
	Now func() time.Time
}

type ServiceOpts struct {
	Device  IDevice
	Reading IReading
	Alert   IAlert
}

func New(d *db.DB) *IOT {
	i := &IOT{Db: d, Now: time.Now}
	return i.WithServices(ServiceOpts{
		Device:  i.GetIDevice(),
		Reading: i.GetIReading(),
		Alert:   i.GetIAlert(),
	})
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Device != nil {
		i.Device = opts.Device
	}
	if opts.Reading != nil {
		i.Reading = opts.Reading
	}
	if opts.Alert != nil {
		i.Alert = opts.Alert
	}
	return i
}

func (i *IOT) now() time.Time {
	if i.Now == nil {
		return time.Now().UTC()
	}
	return i.Now().UTC()
}
