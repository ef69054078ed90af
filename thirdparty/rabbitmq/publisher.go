package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/rabbitmq/amqp091-go"
)

const (
	listingExchange   = "listing_events_exchange"
	listingQueue      = "listing_feed_refresh_queue"
	listingRoutingKey = "listing.*"
)

type Publisher interface {
	PublishListingEvent(ctx context.Context, msg ListingEventMessage) error
	Close() error
}

type publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type ListingEventMessage struct {
	Type       constant.ListingEventType `json:"type"`
	ListingID  string                    `json:"listing_id"`
	OwnerID    string                    `json:"owner_id"`
	OccurredAt time.Time                 `json:"occurred_at"`
}

// declareTopology sets up the topic exchange and the feed refresh queue.
// Both publisher and consumer call it so either can start first.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		listingExchange, // name
		"topic",         // type
		true,            // durable
		false,           // auto-delete
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		listingQueue, // name
		true,         // durable
		false,        // auto-delete
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		listingQueue,      // queue name
		listingRoutingKey, // routing key
		listingExchange,   // exchange
		false,             // no-wait
		nil,               // arguments
	)
}

func dial(dsn string) (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

func NewPublisher(dsn string) (Publisher, error) {
	conn, channel, err := dial(dsn)
	if err != nil {
		return nil, err
	}
	return &publisher{conn: conn, channel: channel}, nil
}

func (p *publisher) PublishListingEvent(ctx context.Context, msg ListingEventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		listingExchange,  // exchange
		string(msg.Type), // routing key
		false,            // mandatory
		false,            // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
}

func (p *publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
