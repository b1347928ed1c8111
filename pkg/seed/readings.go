package seed

import (
	"math"
	"math/rand"
	"time"

	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

// ReadingsPerSeries is one reading per hour over the last day.
const ReadingsPerSeries = 24

// Series describes a synthetic sensor curve: Base + sin(i/Period)*Amplitude + U[0,Noise).
type Series struct {
	SensorType models.SensorType
	Unit       string
	Base       float64
	Amplitude  float64
	Period     float64
	Noise      float64
}

var (
	TemperatureSeries = Series{SensorType: models.SensorTypeTemperature, Unit: "°C", Base: 20, Amplitude: 8, Period: 4, Noise: 2}
	HumiditySeries    = Series{SensorType: models.SensorTypeHumidity, Unit: "%", Base: 50, Amplitude: 15, Period: 4, Noise: 5}
	PressureSeries    = Series{SensorType: models.SensorTypePressure, Unit: "hPa", Base: 1013, Amplitude: 5, Period: 6, Noise: 2}
)

// Value returns the i-th point of the curve rounded to two decimals.
func (s Series) Value(i int, rnd *rand.Rand) float64 {
	return common.Round2(s.Base + math.Sin(float64(i)/s.Period)*s.Amplitude + rnd.Float64()*s.Noise)
}

// Generate builds ReadingsPerSeries hourly readings for deviceID. Point i is stamped
// now-(24-i)h, so the series is strictly increasing and ends one hour before now.
func (s Series) Generate(deviceID uint, now time.Time, rnd *rand.Rand) []models.SensorReading {
	readings := make([]models.SensorReading, 0, ReadingsPerSeries)
	for i := range ReadingsPerSeries {
		readings = append(readings, models.SensorReading{
			DeviceID:   deviceID,
			SensorType: s.SensorType,
			Value:      s.Value(i, rnd),
			Unit:       s.Unit,
			Timestamp:  now.Add(-time.Duration(ReadingsPerSeries-i) * time.Hour),
		})
	}
	return readings
}
