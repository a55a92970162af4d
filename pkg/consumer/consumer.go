// Package consumer provides RabbitMQ consumer functionality for the
// admin request queue.
package consumer

import (
	"encoding/json"
	"time"

	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/pkg/config"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const reconnectDelay = 5 * time.Second

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
	cfg     *config.Config
}

func Init(cfg *config.Config, logger *logger.Logger, conn *amqp.Connection) (*Consumer, error) {
	channel, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", zap.Error(err))
		conn.Close()
		return nil, err
	}

	if err = channel.ExchangeDeclare(
		cfg.Exchange.Request, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		logger:  logger,
		cfg:     cfg,
	}, nil
}

func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.logger.Error("error closing channel", zap.Error(err))
	}
	return c.conn.Close()
}

func (c *Consumer) IsHealthy() bool {
	return !c.conn.IsClosed()
}

// Subscribe binds the request queue to the request exchange for the given
// routing key.
func (c *Consumer) Subscribe(routingKey string) error {
	_, err := c.channel.QueueDeclare(
		c.cfg.Queue.Request, // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	)
	if err != nil {
		return err
	}

	return c.channel.QueueBind(
		c.cfg.Queue.Request,    // queue name
		routingKey,             // routing key
		c.cfg.Exchange.Request, // exchange name
		false,                  // noWait
		nil,                    // args
	)
}

// ConsumeMessages decodes request events from the queue and forwards them
// to outputChan, reconnecting whenever the broker connection drops.
func (c *Consumer) ConsumeMessages(outputChan chan entity.Event) {
	for {
		if c.conn.IsClosed() {
			c.logger.Error("rabbitmq connection is closed, attempting to reconnect...")
			if err := c.reconnect(); err != nil {
				c.logger.Error("failed to reconnect", zap.Error(err))
				time.Sleep(reconnectDelay)
				continue
			}
		}

		msgs, err := c.channel.Consume(
			c.cfg.Queue.Request, // queue
			"",                  // consumer
			true,                // auto-ack
			false,               // exclusive
			false,               // no-local
			false,               // no-wait
			nil,                 // args
		)
		if err != nil {
			c.logger.Error("failed to register consumer", zap.Error(err))
			time.Sleep(reconnectDelay)
			continue
		}

		c.logger.Info("successfully connected to RabbitMQ, waiting for messages...")

		for msg := range msgs {
			var event entity.Event
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("failed to unmarshal event",
					zap.Error(err),
					zap.ByteString("body", msg.Body))
				continue
			}

			c.logger.Debug("received new event",
				zap.String("event_id", event.ID),
				zap.String("routing_key", event.Type),
				zap.Time("timestamp", event.Timestamp))

			outputChan <- event
		}

		c.logger.Warn("rabbitmq channel closed, reconnecting...")
		time.Sleep(reconnectDelay)
	}
}

func (c *Consumer) reconnect() error {
	var err error

	if c.channel != nil {
		c.channel.Close()
	}

	c.conn, err = amqp.Dial(c.cfg.Urls.Rabbitmq)
	if err != nil {
		return err
	}

	c.channel, err = c.conn.Channel()
	if err != nil {
		c.conn.Close()
		return err
	}

	return c.channel.ExchangeDeclare(
		c.cfg.Exchange.Request, // name
		"direct",               // type
		true,                   // durable
		false,                  // auto-deleted
		false,                  // internal
		false,                  // no-wait
		nil,                    // arguments
	)
}
