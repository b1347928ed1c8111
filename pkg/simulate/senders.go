package simulate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	iotGrpc "liyu1981.xyz/iot-dashboard/pkg/grpc"
	iotHttp "liyu1981.xyz/iot-dashboard/pkg/http"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

type HTTPSender struct {
	client *resty.Client
}

func NewHTTPSender(baseURL string) *HTTPSender {
	return &HTTPSender{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// CheckHealth fails unless GET /healthz answers 200.
func (s *HTTPSender) CheckHealth(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("connect to HTTP server: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("HTTP server not available: %s", resp.Status())
	}
	return nil
}

func (s *HTTPSender) Send(ctx context.Context, token string, input *models.ReadingInput) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader(iotHttp.HeaderDeviceToken, token).
		SetBody(input).
		Post("/api/readings")
	if err != nil {
		return err
	}

	switch resp.StatusCode() {
	case http.StatusCreated:
		return nil
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("post reading: %s %s", resp.Status(), resp.String())
	}
}

type GRPCSender struct {
	conn   *grpc.ClientConn
	client *iotGrpc.IngestServiceClient
}

func NewGRPCSender(target string) (*GRPCSender, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to gRPC server: %w", err)
	}
	return &GRPCSender{conn: conn, client: iotGrpc.NewIngestServiceClient(conn)}, nil
}

func (s *GRPCSender) Close() error {
	return s.conn.Close()
}

func (s *GRPCSender) Send(ctx context.Context, token string, input *models.ReadingInput) error {
	req, err := structpb.NewStruct(map[string]any{
		iotGrpc.FieldDeviceToken: token,
		"sensor_type":            input.SensorType,
		"value":                  input.Value,
		"unit":                   input.Unit,
	})
	if err != nil {
		return err
	}

	resp, err := s.client.PostReading(ctx, req)
	if status.Code(err) == codes.ResourceExhausted {
		return ErrRateLimited
	}
	if err != nil {
		return err
	}
	if !resp.GetFields()["success"].GetBoolValue() {
		return fmt.Errorf("post reading: %s", resp.GetFields()["message"].GetStringValue())
	}
	return nil
}
