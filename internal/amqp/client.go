package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/mail"
)

// Client publishes and consumes email jobs on a durable direct exchange.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       *applog.Logger
}

var _ mail.Sender = (*Client)(nil)

func NewClient(url, exchangeName, queueName string, logger *applog.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger.WithComponent(applog.ComponentAMQP),
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key is the queue name.
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Send enqueues msg for the mailer worker; it implements mail.Sender.
func (c *Client) Send(ctx context.Context, msg mail.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body, err := NewEmailJob(msg).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish email job: %w", err)
	}

	c.logger.DebugContext(ctx, "queued email", "to", msg.To, "queue", c.queueName)
	return nil
}

// ConsumeEmails hands each queued email to deliver until ctx is cancelled.
// Undecodable jobs and failed deliveries are logged and rejected without
// requeue, so they are dead-lettered if the queue has a dead-letter exchange.
func (c *Client) ConsumeEmails(ctx context.Context, deliver func(context.Context, mail.Message) error) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "consuming email jobs", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			c.handle(ctx, delivery, deliver)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Client) handle(ctx context.Context, delivery amqp091.Delivery, deliver func(context.Context, mail.Message) error) {
	process(ctx, c.logger, delivery.Body, &delivery, deliver)
}

func process(ctx context.Context, logger *applog.Logger, body []byte, ack acknowledger, deliver func(context.Context, mail.Message) error) {
	job, err := EmailJobFromJSON(body)
	if err != nil {
		logger.ErrorContext(ctx, "dropping undecodable email job", applog.FieldError, err)
		_ = ack.Nack(false, false)
		return
	}
	if err := deliver(ctx, job.Message); err != nil {
		logger.ErrorContext(ctx, "email delivery failed, dropping", "to", job.Message.To, applog.FieldError, err)
		_ = ack.Nack(false, false)
		return
	}
	_ = ack.Ack(false)
	logger.InfoContext(ctx, "email delivered", "to", job.Message.To)
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
