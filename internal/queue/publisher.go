package queue

import (
	"context"
	"encoding/json"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends settlement events to RabbitMQ. It dials per publish, so a
// broker outage only affects the events raised while it lasts. Errors are
// logged and returned; callers are expected to carry on regardless.
type Publisher struct {
	url         string
	log         *zap.Logger
	dialTimeout time.Duration
}

// defaultDialTimeout bounds the TCP connect and the AMQP handshake of one
// publish.
const defaultDialTimeout = 2 * time.Second

// NewPublisher returns a publisher for the broker at url.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	return &Publisher{url: url, log: log.Named("publisher"), dialTimeout: defaultDialTimeout}
}

// dial connects under ctx. The deadline set on the socket covers the AMQP
// handshake; the library clears it once the connection is open.
func (p *Publisher) dial(ctx context.Context) (*amqp.Connection, error) {
	return amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			deadline := time.Now().Add(p.dialTimeout)
			if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
				deadline = d
			}
			d := net.Dialer{Deadline: deadline}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
	})
}

// PublishPaymentSettled publishes ev to the payment.settled queue as a
// persistent JSON message.
func (p *Publisher) PublishPaymentSettled(ctx context.Context, ev PaymentSettledEvent) error {
	return p.publish(ctx, PaymentSettledQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queue string, v any) error {
	conn, err := p.dial(ctx)
	if err != nil {
		p.log.Warn("dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", zap.String("queue", queue), zap.Error(err))
		return err
	}

	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		p.log.Warn("publish failed", zap.String("queue", queue), zap.Error(err))
		return err
	}
	return nil
}

// Nop discards every event. It is used when QUEUE_ENABLED is false.
type Nop struct{}

func (Nop) PublishPaymentSettled(context.Context, PaymentSettledEvent) error { return nil }
