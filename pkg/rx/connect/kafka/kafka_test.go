package kafka

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/rx3/pkg/rx"
	"github.com/ib-77/rx3/pkg/rx/rxtest"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Topic: "events"}
	cfg.ApplyDefaults()

	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, 1, cfg.MinBytes)
	assert.Equal(t, int(10e6), cfg.MaxBytes)
	assert.Equal(t, 500*time.Millisecond, cfg.MaxWait)
	assert.Equal(t, kafkago.FirstOffset, cfg.StartOffset)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, -1, cfg.RequiredAcks)
}

func TestConfigDefaultsKeepExplicitValues(t *testing.T) {
	cfg := Config{
		Brokers:     []string{"broker-1:9092", "broker-2:9092"},
		Topic:       "events",
		MinBytes:    512,
		StartOffset: kafkago.LastOffset,
	}
	cfg.ApplyDefaults()

	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Brokers)
	assert.Equal(t, 512, cfg.MinBytes)
	assert.Equal(t, kafkago.LastOffset, cfg.StartOffset)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Topic = ""
	require.Error(t, cfg.Validate())

	cfg.Topic = "events"
	require.NoError(t, cfg.Validate())

	cfg.StartOffset = 42
	require.Error(t, cfg.Validate())
}

func TestMessageConversionRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Millisecond)
	in := kafkago.Message{
		Key:       []byte("k"),
		Value:     []byte(`{"n":7}`),
		Topic:     "events",
		Partition: 3,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}

	msg := fromReaderMessage(in)
	assert.Equal(t, "k", msg.Key)
	assert.Equal(t, "events", msg.Topic)
	assert.Equal(t, 3, msg.Partition)
	assert.Equal(t, int64(42), msg.Offset)
	assert.Equal(t, now, msg.Time)
	assert.Equal(t, "application/json", msg.Headers["content-type"])

	var payload struct {
		N int `json:"n"`
	}
	require.NoError(t, msg.UnmarshalValue(&payload))
	assert.Equal(t, 7, payload.N)

	out := msg.toWriterMessage()
	assert.Empty(t, out.Topic, "the writer owns the topic")
	assert.Equal(t, []byte("k"), out.Key)
	assert.Equal(t, in.Value, out.Value)
	require.Len(t, out.Headers, 1)
	assert.Equal(t, "content-type", out.Headers[0].Key)
}

func TestSinkRejectsInvalidConfig(t *testing.T) {
	_, err := NewSink(Config{}, zerolog.Nop())
	require.Error(t, err)
}

func TestSourceInvalidConfigErrorsTheStream(t *testing.T) {
	rec := rxtest.NewRecorder[Message]()

	sub := rx.Subscribe(Source(Config{}, zerolog.Nop()), rec)

	require.Error(t, rec.Err())
	require.False(t, sub.IsSubscribed())
}
