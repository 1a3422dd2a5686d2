package bms

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-fortelion/protocol"
)

// Client performs request/response exchanges with one battery module.
//
// The link is strictly half duplex: a request must be fully answered before
// the next one is sent. Client does not lock; it must not be used from more
// than one goroutine at a time.
type Client struct {
	device io.ReadWriter
	config Config
}

// New creates a new Client with the given device and options.
// The device is usually a *uart.Port, but any io.ReadWriter works.
//
// Example:
//
//	port, _ := uart.Open("/dev/ttyUSB0", time.Second)
//	client := bms.New(port,
//	    bms.WithLogger(logger),
//	    bms.WithCommandDelay(20*time.Millisecond),
//	)
func New(device io.ReadWriter, opts ...Option) *Client {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		device: device,
		config: cfg,
	}
}

// Query sends the request for cmd and reads exactly one data frame in reply.
// The returned frame has been validated.
//
// Errors:
//   - *SendError when the request could not be written
//   - *ReceiveError when fewer than the expected bytes arrived
//   - *protocol.FrameError when the response is malformed
//
// The context is checked before the request is written and before the
// response is read; a blocking read is bounded by the port timeout only.
func (c *Client) Query(ctx context.Context, cmd protocol.Command) (*protocol.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cancelled: %w", err)
	}

	request, err := protocol.BuildCommandFrame(cmd)
	if err != nil {
		return nil, err
	}

	c.discardInput()

	start := time.Now()
	frame, received, err := c.exchange(ctx, cmd, request)
	elapsed := time.Since(start)

	c.reportExchange(Exchange{
		Command:  cmd,
		Request:  request,
		Response: received,
		Elapsed:  elapsed,
		Err:      err,
	})

	if err != nil {
		c.logError("exchange failed", "command", cmd.String(), "error", err)
		return nil, err
	}

	c.logDebug("exchange",
		"command", cmd.String(),
		"request", fmt.Sprintf("% X", request),
		"response", fmt.Sprintf("% X", received),
		"elapsed", elapsed.String(),
	)

	return frame, nil
}

// Read queries cmd and returns a view for decoding the response.
//
// Example:
//
//	view, err := client.Read(ctx, protocol.CmdSummaryData)
//	if err != nil {
//	    return err
//	}
//	soc, err := view.RelativeStateOfCharge()
func (c *Client) Read(ctx context.Context, cmd protocol.Command) (*protocol.FrameView, error) {
	frame, err := c.Query(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return protocol.NewFrameView(frame)
}

// exchange writes the request and fills a data frame sized for cmd. The
// received bytes are returned even on failure.
func (c *Client) exchange(ctx context.Context, cmd protocol.Command, request []byte) (*protocol.DataFrame, []byte, error) {
	n, err := c.device.Write(request)
	if err == nil && n < len(request) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return nil, nil, &SendError{Command: cmd, Err: err}
	}

	if c.config.CommandDelay > 0 {
		time.Sleep(c.config.CommandDelay)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("cancelled: %w", err)
	}

	frame := protocol.NewDataFrame(cmd)
	n, err = io.ReadFull(c.device, frame.Bytes())
	received := frame.Bytes()[:n]
	if err != nil {
		return nil, received, &ReceiveError{
			Command:  cmd,
			Received: n,
			Expected: frame.Len(),
			Err:      err,
		}
	}

	if err := frame.Validate(); err != nil {
		return nil, received, err
	}

	return frame, received, nil
}

// discardInput drops stale bytes left by an earlier failed exchange when
// the device supports it.
func (c *Client) discardInput() {
	r, ok := c.device.(interface{ ResetInputBuffer() error })
	if !ok {
		return
	}
	if err := r.ResetInputBuffer(); err != nil {
		c.logDebug("reset input buffer failed", "error", err)
	}
}

// reportExchange calls the exchange callback if configured.
func (c *Client) reportExchange(x Exchange) {
	if c.config.ExchangeCallback != nil {
		c.config.ExchangeCallback(x)
	}
}

// logDebug logs a debug message if a logger is configured.
func (c *Client) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Client) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Client) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
