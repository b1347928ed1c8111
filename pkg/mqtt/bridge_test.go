package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/db"
	"liyu1981.xyz/iot-dashboard/pkg/iot"
	"liyu1981.xyz/iot-dashboard/pkg/models"
	"liyu1981.xyz/iot-dashboard/pkg/seed"
	_ "liyu1981.xyz/iot-dashboard/pkg/testing"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	mu         sync.Mutex
	connectErr error
	subscribed map[string]paho.MessageHandler
	published  []published
	closed     bool
}

func (c *fakeClient) Connect() paho.Token {
	return &fakeToken{err: c.connectErr}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribed == nil {
		c.subscribed = map[string]paho.MessageHandler{}
	}
	c.subscribed[topic] = callback
	return &fakeToken{}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return &fakeToken{}
}

func (c *fakeClient) Disconnect(uint) {
	c.closed = true
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return QoS }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 1 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func setupBridge(t *testing.T, limiter *iot.RateLimiterStore) (*Bridge, *fakeClient, *seed.IOTReport) {
	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	report, err := seed.New(dbInstance).SeedIOT(context.Background())
	require.NoError(t, err)

	client := &fakeClient{}
	return &Bridge{Client: client, Iot: iot.New(dbInstance), RateLimiterStore: limiter}, client, report
}

func TestTokenFromTopic(t *testing.T) {
	cases := map[string]string{
		"devices/abc/readings": "abc",
		"devices//readings":    "",
		"devices/abc/alerts":   "",
		"devices/abc":          "",
		"other/abc/readings":   "",
		"devices/a/b/readings": "",
	}
	for topic, want := range cases {
		got, ok := TokenFromTopic(topic)
		assert.Equal(t, want != "", ok, topic)
		assert.Equal(t, want, got, topic)
	}
}

func TestStart(t *testing.T) {
	common.SetTestLoggerNop()
	bridge, client, _ := setupBridge(t, nil)

	require.NoError(t, bridge.Start())
	assert.Contains(t, client.subscribed, TopicReadings)

	bridge.Stop()
	assert.True(t, client.closed)
}

func TestStart_ConnectError(t *testing.T) {
	common.SetTestLoggerNop()
	bridge, client, _ := setupBridge(t, nil)
	client.connectErr = errors.New("connection refused")

	err := bridge.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, client.subscribed)
}

func TestHandleMessage(t *testing.T) {
	common.SetTestLoggerNop()
	bridge, client, report := setupBridge(t, nil)
	require.NoError(t, bridge.Start())

	device := report.Devices[1] // humidity sensor with the 80% rule
	handler := client.subscribed[TopicReadings]

	handler(nil, &fakeMessage{
		topic:   "devices/" + device.DeviceToken + "/readings",
		payload: []byte(`{"sensor_type":"humidity","value":91.5,"unit":"%"}`),
	})

	var count int64
	require.NoError(t, bridge.Iot.Db.Conn.Model(&models.SensorReading{}).
		Where("device_id = ? AND value = ?", device.ID, 91.5).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.Len(t, client.published, 1)
	assert.Equal(t, AlertTopic(device.DeviceToken), client.published[0].topic)
	assert.Equal(t, QoS, client.published[0].qos)

	var events []models.AlertEvent
	require.NoError(t, json.Unmarshal(client.published[0].payload, &events))
	require.Len(t, events, 1)
	assert.Equal(t, 91.5, events[0].Value)
}

func TestHandleMessage_NoAlertNoPublish(t *testing.T) {
	common.SetTestLoggerNop()
	bridge, client, report := setupBridge(t, nil)

	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "devices/" + report.Devices[1].DeviceToken + "/readings",
		payload: []byte(`{"sensor_type":"humidity","value":40}`),
	})
	assert.Empty(t, client.published)
}

func TestHandle_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	bridge, _, report := setupBridge(t, iot.NewRateLimiterStore(1, 1))
	token := report.Devices[0].DeviceToken
	topic := "devices/" + token + "/readings"

	{
		_, err := bridge.Handle(context.Background(), "devices/x", []byte(`{}`))
		assert.Error(t, err)
	}

	{
		_, err := bridge.Handle(context.Background(), "devices/unknown/readings", []byte(`{"sensor_type":"temperature"}`))
		assert.ErrorIs(t, err, iot.ErrUnknownDevice)
	}

	{
		_, err := bridge.Handle(context.Background(), topic, []byte(`not json`))
		assert.ErrorIs(t, err, iot.ErrInvalidReading)
	}

	{
		// the bucket of one was used by the previous message
		_, err := bridge.Handle(context.Background(), topic, []byte(`{"sensor_type":"temperature","value":20}`))
		assert.ErrorIs(t, err, ErrRateLimited)
	}
}

func TestHandle_UnknownTokensGetNoLimiter(t *testing.T) {
	common.SetTestLoggerNop()
	limiter := iot.NewRateLimiterStore(1, 1)
	bridge, _, _ := setupBridge(t, limiter)

	for _, token := range []string{"a", "b", "c"} {
		_, err := bridge.Handle(context.Background(), "devices/"+token+"/readings", []byte(`{"sensor_type":"humidity","value":1}`))
		assert.ErrorIs(t, err, iot.ErrUnknownDevice)
	}
	assert.Equal(t, 0, limiter.Len())
}

func TestNewClientOptions(t *testing.T) {
	client := paho.NewClient(NewClientOptions("tcp://localhost:1883", ""))
	reader := client.OptionsReader()

	assert.Equal(t, DefaultClientID, reader.ClientID())
	require.Len(t, reader.Servers(), 1)
	assert.Equal(t, "localhost:1883", reader.Servers()[0].Host)
	assert.True(t, reader.AutoReconnect())
	assert.False(t, reader.CleanSession())
}
