package kafka

import (
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is the element type Kafka-backed streams carry.
type Message struct {
	Key       string
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Time      time.Time
	Headers   map[string]string
}

// UnmarshalValue decodes the message value as JSON into v.
func (m Message) UnmarshalValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func fromReaderMessage(msg kafkago.Message) Message {
	var headers map[string]string
	if len(msg.Headers) > 0 {
		headers = make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
	}

	return Message{
		Key:       string(msg.Key),
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Time:      msg.Time,
		Headers:   headers,
	}
}

// toWriterMessage leaves Topic empty: the writer owns the topic and
// kafka-go rejects messages that carry their own.
func (m Message) toWriterMessage() kafkago.Message {
	headers := make([]kafkago.Header, 0, len(m.Headers))
	for k, v := range m.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}

	return kafkago.Message{
		Key:     []byte(m.Key),
		Value:   m.Value,
		Time:    m.Time,
		Headers: headers,
	}
}
