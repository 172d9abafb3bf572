package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

// SSEClient subscribes to the backend's server-sent-events stream and
// republishes each event onto a Bus. Connection drops are retried with
// exponential backoff; a clean context cancellation stops the client.
type SSEClient struct {
	url        string
	httpClient *http.Client
	bus        Bus
	token      func() string
}

// NewSSEClient creates a stream subscriber for the given endpoint. token
// supplies the current bearer credential per connection attempt, so a
// refreshed session is picked up on reconnect.
func NewSSEClient(url string, bus Bus, token func() string) *SSEClient {
	return &SSEClient{
		url:        url,
		httpClient: &http.Client{},
		bus:        bus,
		token:      token,
	}
}

// Run connects and pumps events until ctx is done.
func (c *SSEClient) Run(ctx context.Context) error {
	operation := func() (struct{}, error) {
		err := c.stream(ctx)
		if ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(ctx.Err())
		}
		log.Warn().Err(err).Str("url", c.url).Msg("event stream dropped, reconnecting")
		return struct{}{}, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second

	_, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *SSEClient) stream(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to event stream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event stream returned status %d", resp.StatusCode)
	}

	log.Debug().Str("url", c.url).Msg("event stream connected")

	scanner := bufio.NewScanner(resp.Body)
	var name string
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if name != "" {
				c.publish(name, data.String())
			}
			name = ""
			data.Reset()
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("event stream read failed: %w", err)
	}
	return errors.New("event stream closed by server")
}

func (c *SSEClient) publish(name, data string) {
	e := Event{Name: name, Timestamp: time.Now()}
	if data != "" {
		e.Payload = json.RawMessage(data)
	}
	log.Debug().Str("event", name).Msg("received push event")
	c.bus.Publish(e)
}
