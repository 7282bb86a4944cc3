package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/intern-hub/intern-placement-hub/pkg/logger"
	"github.com/intern-hub/intern-placement-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// KAFKA NOTIFIER
// ══════════════════════════════════════════════════════════════════════════════

// Notification topics. Events are routed by the lifecycle they belong to so
// downstream consumers (mailer, university portal) subscribe per concern.
const (
	TopicApplicationNotifications = "placement.notifications.applications"
	TopicCandidateNotifications   = "placement.notifications.candidates"
	TopicInternNotifications      = "placement.notifications.interns"
	TopicSubmissionNotifications  = "placement.notifications.submissions"
)

// KafkaConfig holds Kafka producer configuration.
type KafkaConfig struct {
	// Brokers is the list of broker addresses.
	Brokers []string

	// BatchTimeout is how long the writer waits to fill a batch.
	BatchTimeout time.Duration

	// WriteTimeout bounds one produce call.
	WriteTimeout time.Duration

	// MaxAttempts is the number of delivery attempts per notification.
	MaxAttempts int
}

// DefaultKafkaConfig returns a sensible default configuration.
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers:      []string{"localhost:9092"},
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		MaxAttempts:  3,
	}
}

// notificationEnvelope is the wire format for outbound notifications.
type notificationEnvelope struct {
	Event     string         `json:"event"`
	Recipient string         `json:"recipient"`
	Payload   map[string]any `json:"payload,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
}

// KafkaNotifier dispatches notifications to Kafka. It implements
// command.Notifier: delivery is best-effort, failures are logged and the
// error is surfaced to the caller, who ignores it post-commit.
type KafkaNotifier struct {
	writer  *kafka.Writer
	retrier *retry.Retrier
	timeout time.Duration
	log     *logger.Logger
}

// NewKafkaNotifier creates the notifier. The writer resolves the topic per
// message, so one writer serves all notification topics.
func NewKafkaNotifier(cfg KafkaConfig, log *logger.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaNotifier{
		writer:  writer,
		retrier: retry.New(retry.WithMaxAttempts(cfg.MaxAttempts)),
		timeout: cfg.WriteTimeout,
		log:     log,
	}
}

// Send publishes one notification, keyed by recipient so per-recipient
// ordering is preserved within a topic.
func (n *KafkaNotifier) Send(ctx context.Context, eventName, recipient string, payload map[string]any) error {
	envelope := notificationEnvelope{
		Event:     eventName,
		Recipient: recipient,
		Payload:   payload,
		SentAt:    time.Now().UTC(),
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("notifier: marshal %s: %w", eventName, err)
	}

	msg := kafka.Message{
		Topic: topicFor(eventName),
		Key:   []byte(recipient),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(eventName)},
		},
	}

	err = n.retrier.Do(ctx, func(ctx context.Context) error {
		writeCtx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()
		return n.writer.WriteMessages(writeCtx, msg)
	})
	if err != nil {
		n.log.Warn("notification dispatch failed",
			zap.String("event", eventName),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return fmt.Errorf("notifier: send %s: %w", eventName, err)
	}

	n.log.Debug("notification dispatched",
		zap.String("event", eventName),
		zap.String("topic", msg.Topic),
		zap.String("recipient", recipient),
	)
	return nil
}

// topicFor routes an event name to its notification topic.
func topicFor(eventName string) string {
	switch {
	case strings.HasPrefix(eventName, "application."):
		return TopicApplicationNotifications
	case strings.HasPrefix(eventName, "candidate."):
		return TopicCandidateNotifications
	case strings.HasPrefix(eventName, "intern."):
		return TopicInternNotifications
	case strings.HasPrefix(eventName, "submission."):
		return TopicSubmissionNotifications
	default:
		return TopicInternNotifications
	}
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// NopNotifier drops all notifications, for development without Kafka.
type NopNotifier struct{}

// Send discards the notification.
func (NopNotifier) Send(ctx context.Context, eventName, recipient string, payload map[string]any) error {
	return nil
}
