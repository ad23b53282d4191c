package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"

	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
	"bgp-notifier/internal/notification"
)

// alertEnvelope is the wire format produced by the upstream
// monitoring pipeline.
type alertEnvelope struct {
	Channel string              `json:"channel"`
	Content models.AlertContent `json:"content"`
}

// Consumer reads alert envelopes from a Kafka topic and feeds them to
// the notification service.
type Consumer struct {
	reader *kafka.Reader
	svc    *notification.Service
	logger *logging.Logger
}

func NewConsumer(brokers []string, topic, groupID string, svc *notification.Service) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, svc: svc, logger: svc.Logger()}
}

// Start consumes until ctx is cancelled or the reader is closed.
// Malformed messages are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Infof("Kafka consumer started")
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.logger.Infof("Kafka consumer stopped")
				return
			}
			c.logger.Errorf("Read message failed: %v", err)
			continue
		}

		var envelope alertEnvelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			c.logger.Errorf("Unmarshal message failed: %v", err)
			continue
		}
		if envelope.Channel == "" || len(envelope.Content.Data) == 0 {
			c.logger.Errorf("Invalid message: missing channel or alert data")
			continue
		}

		c.svc.Report(envelope.Channel, envelope.Content)
	}
}

// Close shuts down the underlying reader, unblocking Start.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
