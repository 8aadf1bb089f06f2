// Package bridge talks to the desktop helper application over a local
// socket using one JSON message per request.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/piwi3910/RackGen/internal/model"
)

// maxResponse bounds a single helper reply.
const maxResponse = 64 * 1024

// Config holds connection and retry settings.
type Config struct {
	Network    string
	Address    string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
	// StepDelay is the pause between consecutive parameter steps.
	StepDelay time.Duration
}

// ConfigFromApp copies the bridge settings out of the app config.
func ConfigFromApp(c model.AppConfig) Config {
	return Config{
		Network:    c.BridgeNetwork,
		Address:    c.BridgeAddress,
		MaxRetries: c.BridgeMaxRetries,
		RetryDelay: c.BridgeRetryDelay,
		Timeout:    c.BridgeTimeout,
		StepDelay:  500 * time.Millisecond,
	}
}

// DialFunc opens a connection to the helper.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Client sends JSON messages to the helper with fixed-delay retry.
type Client struct {
	cfg  Config
	dial DialFunc
}

func NewClient(cfg Config) *Client {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	d := &net.Dialer{}
	return &Client{cfg: cfg, dial: d.DialContext}
}

// WithDialer replaces the connection factory.
func (c *Client) WithDialer(d DialFunc) *Client {
	c.dial = d
	return c
}

// Result is the structured outcome of one request. It is returned instead
// of an error so callers can show it to the user as-is.
type Result struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
	Attempts int    `json:"attempts"`
}

// Send marshals msg, writes it and reads one reply, retrying transport
// failures up to MaxRetries attempts with RetryDelay between them.
func (c *Client) Send(ctx context.Context, msg any) Result {
	payload, err := json.Marshal(msg)
	if err != nil {
		return Result{Error: fmt.Sprintf("failed to encode message: %v", err)}
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		resp, err := c.exchange(ctx, payload)
		if err == nil {
			slog.Debug("bridge: reply received", "attempt", attempt, "bytes", len(resp))
			return Result{Success: true, Response: resp, Attempts: attempt}
		}
		lastErr = err
		slog.Warn("bridge: attempt failed", "attempt", attempt, "address", c.cfg.Address, "error", err)

		if attempt == c.cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return Result{Error: ctx.Err().Error(), Attempts: attempt}
		case <-time.After(c.cfg.RetryDelay):
		}
	}
	return Result{Error: lastErr.Error(), Attempts: c.cfg.MaxRetries}
}

func (c *Client) exchange(ctx context.Context, payload []byte) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	conn, err := c.dial(ctx, c.cfg.Network, c.cfg.Address)
	if err != nil {
		return "", fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return "", fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	if _, err := conn.Write(payload); err != nil {
		return "", fmt.Errorf("failed to write message: %w", err)
	}

	buf := make([]byte, maxResponse)
	n, err := conn.Read(buf)
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	if n == 0 {
		return "", errors.New("no response received")
	}
	return string(buf[:n]), nil
}
