// Package events publishes analysis lifecycle events to RabbitMQ so
// downstream consumers (dashboards, notification workers) can follow
// runs without polling the API. A nil *Publisher is valid and drops
// every event, so deployments without a broker just skip Init.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/profilenet/backend/internal/util"
	"github.com/profilenet/backend/pkg/logger"
)

const exchange = "analysis_events"

// Routing keys for lifecycle events.
const (
	TopicStarted   = "analysis.started"
	TopicProgress  = "analysis.progress"
	TopicCompleted = "analysis.completed"
	TopicStopped   = "analysis.stopped"
	TopicFailed    = "analysis.failed"
)

// Event is the payload published for every lifecycle change.
type Event struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id,omitempty"`
	Status    string `json:"status"`
	Progress  int    `json:"progress,omitempty"`
	Timestamp string `json:"timestamp"`
}

type Publisher struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
}

// Init connects to RabbitMQ using RABBITMQ_* environment variables and
// declares the topic exchange. The dial is retried a few times to ride
// out a broker that is still coming up alongside the API.
func Init(ctx context.Context) (*Publisher, error) {
	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		util.GetEnv("RABBITMQ_USER"),
		util.GetEnv("RABBITMQ_PASSWORD"),
		util.GetEnv("RABBITMQ_HOST"),
		util.GetEnv("RABBITMQ_PORT"),
	)

	conn, err := util.RetryWithContext(ctx, 3, func(context.Context) (*amqp091.Connection, error) {
		return amqp091.Dial(connURL)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish sends an event under the given routing key. Failures are
// logged and swallowed; lifecycle events are advisory and must never
// fail the operation that triggered them.
func (p *Publisher) Publish(topic string, event Event) {
	if p == nil {
		return
	}

	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode lifecycle event", "topic", topic, "err", err)
		return
	}

	err = util.RetryErr(3, func() error {
		return p.ch.Publish(
			exchange,
			topic,
			false,
			false,
			amqp091.Publishing{
				ContentType:  "application/json",
				Body:         body,
				DeliveryMode: amqp091.Persistent,
				Timestamp:    time.Now(),
			},
		)
	})
	if err != nil {
		logger.Error("Failed to publish lifecycle event", "topic", topic, "err", err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
