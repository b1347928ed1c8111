package grpc

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"
)

func validateToken(token *string) z.ZogIssueList {
	var tokenValidator = z.String().Min(1).Required()
	return tokenValidator.Validate(token)
}

func (s *IOTServer) PostReading(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	token := req.GetFields()[FieldDeviceToken].GetStringValue()
	if issues := validateToken(&token); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues))
	}

	input, err := readingInputFromStruct(req)
	if err != nil {
		return failure(fmt.Sprintf("validation error: %v", err))
	}

	result, err := s.Iot.Reading.Ingest(ctx, token, input)
	if err != nil {
		logFailure(MethodPostReading, err)
		return failure(err.Error())
	}

	return response(true, "OK", map[string]any{
		"reading": readingToMap(result.Reading),
		"events":  eventsToList(result.Events),
	})
}

func (s *IOTServer) GetAlertEvents(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	deviceID := int(req.GetFields()["device_id"].GetNumberValue())

	var deviceIDValidator = z.Int().Required().GT(0)
	if issues := deviceIDValidator.Validate(&deviceID); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues))
	}

	events, err := s.Iot.Alert.GetDeviceAlertEvents(ctx, uint(deviceID))
	if err != nil {
		logFailure(MethodGetAlertEvents, err)
		return failure(err.Error())
	}

	return response(true, "OK", map[string]any{
		"events": eventsToList(events),
	})
}

func (s *IOTServer) PostLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	token := fields[FieldDeviceToken].GetStringValue()
	if issues := validateToken(&token); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues))
	}

	deviceRate := fields["rate"].GetNumberValue()
	var rateValidator = z.Float64().Required().GT(0)
	if issues := rateValidator.Validate(&deviceRate); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues))
	}

	deviceBurst := int(fields["burst"].GetNumberValue())
	var burstValidator = z.Int().Required().GT(0)
	if issues := burstValidator.Validate(&deviceBurst); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues))
	}

	if s.RateLimiterStore == nil {
		return failure("RateLimiterStore is not used. No effect.")
	}

	s.RateLimiterStore.SetLimiter(token, rate.Limit(deviceRate), deviceBurst)
	return response(true, "OK", nil)
}
