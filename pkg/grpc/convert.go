package grpc

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

func readingInputFromStruct(req *structpb.Struct) (*models.ReadingInput, error) {
	fields := req.GetFields()

	input := &models.ReadingInput{
		SensorType: fields["sensor_type"].GetStringValue(),
		Value:      fields["value"].GetNumberValue(),
		Unit:       fields["unit"].GetStringValue(),
	}

	if raw := fields["timestamp"].GetStringValue(); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("timestamp can not be parsed: %w", err)
		}
		input.Timestamp = &ts
	}

	return input, nil
}

func readingToMap(r models.SensorReading) map[string]any {
	return map[string]any{
		"id":          r.ID,
		"device_id":   r.DeviceID,
		"sensor_type": string(r.SensorType),
		"value":       r.Value,
		"unit":        r.Unit,
		"timestamp":   r.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func eventToMap(e models.AlertEvent) any {
	return map[string]any{
		"id":              e.ID,
		"alert_config_id": e.AlertConfigID,
		"device_id":       e.DeviceID,
		"sensor_type":     string(e.SensorType),
		"value":           e.Value,
		"message":         e.Message,
		"triggered_at":    e.TriggeredAt.UTC().Format(time.RFC3339Nano),
	}
}

func eventsToList(events []models.AlertEvent) []any {
	return common.Mapper(events, eventToMap)
}

// response builds {success, message, ...extra}. extra values must be structpb compatible.
func response(success bool, message string, extra map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{
		"success": success,
		"message": message,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return structpb.NewStruct(fields)
}

func failure(message string) (*structpb.Struct, error) {
	return response(false, message, nil)
}
