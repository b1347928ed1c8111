package models

import "time"

// ReadingInput is the payload a device sends, shared by the HTTP, gRPC and MQTT fronts.
type ReadingInput struct {
	SensorType string     `json:"sensor_type"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

type IngestResult struct {
	Reading SensorReading `json:"reading"`
	Events  []AlertEvent  `json:"events"`
}
