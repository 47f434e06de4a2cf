package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Consumer reads from a durable queue with manual acknowledgement, so
// unacked deliveries are returned to the queue for redelivery.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewConsumer(amqpURL, queue string) (*Consumer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &Consumer{conn: conn, channel: channel, queue: queue}, nil
}

// Deliveries starts consuming. The channel closes when the connection or
// channel breaks, which callers treat as a signal to reconnect.
func (c *Consumer) Deliveries() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		c.queue,
		"",    // broker-assigned consumer tag
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", c.queue, err)
	}
	return msgs, nil
}

func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
