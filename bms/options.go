package bms

import "time"

// Config holds the client configuration.
type Config struct {
	// Logger is used for logging exchanges (optional)
	Logger Logger

	// ExchangeCallback is called after every request/response exchange (optional)
	ExchangeCallback ExchangeCallback

	// CommandDelay is a pause between writing a request and reading the
	// response. Zero reads immediately and relies on the port read timeout.
	CommandDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithLogger sets a logger for the client operations.
//
// Example:
//
//	client := bms.New(port, bms.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithExchangeCallback sets a callback that observes every exchange, e.g.
// to record metrics or dump raw frames.
//
// Example:
//
//	client := bms.New(port,
//	    bms.WithExchangeCallback(func(x bms.Exchange) {
//	        fmt.Printf("%s took %s\n", x.Command, x.Elapsed)
//	    }),
//	)
func WithExchangeCallback(callback ExchangeCallback) Option {
	return func(c *Config) {
		c.ExchangeCallback = callback
	}
}

// WithCommandDelay sets the pause between request and response.
// Negative values are ignored.
//
// Example:
//
//	client := bms.New(port, bms.WithCommandDelay(20*time.Millisecond))
func WithCommandDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.CommandDelay = delay
		}
	}
}
