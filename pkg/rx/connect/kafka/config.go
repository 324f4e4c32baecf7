package kafka

import (
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Config holds connection and behavior settings shared by Source and Sink.
type Config struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string

	// Topic to consume from or publish to.
	Topic string

	// GroupID is the consumer group identifier; readers without one
	// consume partition 0 from StartOffset.
	GroupID string

	// Consumer settings.
	MinBytes    int
	MaxBytes    int
	MaxWait     time.Duration
	StartOffset int64

	// Producer settings.
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks int

	DialTimeout time.Duration
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if len(c.Brokers) == 0 {
		c.Brokers = []string{"localhost:9092"}
	}
	if c.MinBytes <= 0 {
		c.MinBytes = 1
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10e6
	}
	if c.MaxWait <= 0 {
		c.MaxWait = 500 * time.Millisecond
	}
	if c.StartOffset == 0 {
		c.StartOffset = kafkago.FirstOffset
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = -1 // all replicas
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
}

// Validate reports configuration errors that defaults cannot repair.
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka: at least one broker is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("kafka: topic is required")
	}
	if c.StartOffset != kafkago.FirstOffset && c.StartOffset != kafkago.LastOffset {
		return fmt.Errorf("kafka: start offset must be FirstOffset or LastOffset, got %d", c.StartOffset)
	}
	return nil
}
