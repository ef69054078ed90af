package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer refreshes the cached listing feed whenever a listing changes, by
// calling the service's internal refresh endpoint.
type Consumer struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	apiURL     string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
}

const defaultRetryDelay = 5 * time.Second

func NewConsumer(dsn, apiURL, apiKey string, retryDelay time.Duration) (*Consumer, error) {
	conn, channel, err := dial(dsn)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:       conn,
		channel:    channel,
		apiURL:     strings.TrimRight(apiURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryDelay: retryDelay,
	}, nil
}

// Start consumes until ctx is done or the channel closes. It returns once the
// consumer is registered; delivery handling runs in its own goroutine.
func (c *Consumer) Start(ctx context.Context) error {
	// one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		listingQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	var event ListingEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Error("[Consumer] unmarshal listing event", zap.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	if err := c.callRefreshFeedAPI(ctx); err != nil {
		logger.Error("[Consumer] refresh feed", zap.String("listing_id", event.ListingID), zap.String("error", err.Error()))
		// back off before requeueing, the message comes straight back otherwise
		c.wait(ctx)
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
	logger.Info("[Consumer] feed refreshed", zap.String("event", string(event.Type)), zap.String("listing_id", event.ListingID))
}

// wait sleeps for the retry delay or until ctx is done.
func (c *Consumer) wait(ctx context.Context) {
	delay := c.retryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (c *Consumer) callRefreshFeedAPI(ctx context.Context) error {
	url := fmt.Sprintf("%s/internal/v1/listing/feed/refresh", c.apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Service", "listing-feed-consumer")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
