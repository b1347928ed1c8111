// Package mqtt bridges device readings published on an MQTT broker into the ingest core.
//
// Devices publish the JSON reading payload on devices/<token>/readings. Fired alert
// events are published back on devices/<token>/alerts.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/iot"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

const (
	TopicReadings = "devices/+/readings"
	QoS           = byte(1)

	DefaultClientID = "iotdash-bridge"
	connectTimeout  = 10 * time.Second
	handleTimeout   = 5 * time.Second
)

var ErrRateLimited = errors.New("rate limit exceeded")

// Client is the part of paho.Client the bridge uses.
type Client interface {
	Connect() paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

type Bridge struct {
	Client           Client
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

func NewClientOptions(broker, clientID string) *paho.ClientOptions {
	if clientID == "" {
		clientID = DefaultClientID
	}
	return paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetCleanSession(false)
}

// NewBridge connects to broker with a paho client.
func NewBridge(broker, clientID string, iotCore *iot.IOT, limiter *iot.RateLimiterStore) *Bridge {
	return &Bridge{
		Client:           paho.NewClient(NewClientOptions(broker, clientID)),
		Iot:              iotCore,
		RateLimiterStore: limiter,
	}
}

func wait(token paho.Token, what string) error {
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt %s: timed out", what)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt %s: %w", what, err)
	}
	return nil
}

// Start connects and subscribes to TopicReadings. Messages are handled on paho's
// goroutines until Stop.
func (b *Bridge) Start() error {
	logger := common.GetLoggerWith(common.LoggerNameMQTTBridge)

	if err := wait(b.Client.Connect(), "connect"); err != nil {
		return err
	}
	if err := wait(b.Client.Subscribe(TopicReadings, QoS, b.HandleMessage), "subscribe"); err != nil {
		return err
	}

	logger.Info("Subscribed", zap.String("topic", TopicReadings))
	return nil
}

func (b *Bridge) Stop() {
	b.Client.Disconnect(250)
}

// TokenFromTopic extracts the device token from devices/<token>/readings.
func TokenFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "devices" || parts[2] != "readings" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func AlertTopic(token string) string {
	return "devices/" + token + "/alerts"
}

// Handle ingests one message payload published on topic.
func (b *Bridge) Handle(ctx context.Context, topic string, payload []byte) (*models.IngestResult, error) {
	token, ok := TokenFromTopic(topic)
	if !ok {
		return nil, fmt.Errorf("unexpected topic %q", topic)
	}

	if _, err := b.Iot.Device.Authenticate(ctx, token); err != nil {
		return nil, err
	}
	if !b.RateLimiterStore.Allow(token) {
		return nil, ErrRateLimited
	}

	var input models.ReadingInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, fmt.Errorf("%w: %v", iot.ErrInvalidReading, err)
	}

	return b.Iot.Reading.Ingest(ctx, token, &input)
}

func (b *Bridge) HandleMessage(_ paho.Client, msg paho.Message) {
	logger := common.GetLoggerWith(common.LoggerNameMQTTBridge)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	result, err := b.Handle(ctx, msg.Topic(), msg.Payload())
	if err != nil {
		logger.Warn("Reading rejected", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	logger.Info("Reading ingested",
		zap.Uint("device_id", result.Reading.DeviceID),
		zap.Int("events", len(result.Events)))

	if len(result.Events) == 0 {
		return
	}

	token, _ := TokenFromTopic(msg.Topic())
	body, err := json.Marshal(result.Events)
	if err != nil {
		logger.Error("Encode alert events", zap.Error(err))
		return
	}
	// fire and forget, paho retries QoS 1 deliveries itself
	b.Client.Publish(AlertTopic(token), QoS, false, body)
}
