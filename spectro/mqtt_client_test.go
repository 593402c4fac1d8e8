package spectro

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

type fakeClient struct {
	mqtt.Client
	published map[string][]byte
	qos       map[string]byte
	err       error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if c.published == nil {
		c.published = map[string][]byte{}
		c.qos = map[string]byte{}
	}
	c.published[topic] = payload.([]byte)
	c.qos[topic] = qos
	return &fakeToken{err: c.err}
}

func TestPublishFrame(t *testing.T) {
	frame := testFrame(t)
	defer frame.Close()

	client := &fakeClient{}
	require.NoError(t, NewPublisher(client).PublishFrame(frame))

	require.Contains(t, client.published, MQTT_TOPIC_IMAGE)
	require.Contains(t, client.published, MQTT_TOPIC_SPECTRUM)
	assert.Equal(t, byte(MQTT_QOS), client.qos[MQTT_TOPIC_SPECTRUM])

	jpg, err := base64.StdEncoding.DecodeString(string(client.published[MQTT_TOPIC_IMAGE]))
	require.NoError(t, err)
	require.Greater(t, len(jpg), 2)
	assert.Equal(t, []byte{0xff, 0xd8}, jpg[:2])

	var msg SpectrumMessage
	require.NoError(t, json.Unmarshal(client.published[MQTT_TOPIC_SPECTRUM], &msg))
	assert.Equal(t, frame.CapturedAt.UnixMilli(), msg.Timestamp)
	assert.Len(t, msg.Wavelengths, SENSOR_WIDTH)
	assert.Equal(t, []int(frame.Intensities), msg.Intensities)
	assert.Equal(t, frame.Peaks, msg.Peaks)
}

func TestPublishFrameError(t *testing.T) {
	frame := testFrame(t)
	defer frame.Close()

	brokerErr := errors.New("not connected")
	err := NewPublisher(&fakeClient{err: brokerErr}).PublishFrame(frame)
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, brokerErr)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, STAGE_PUBLISH, stageErr.Stage)
}
