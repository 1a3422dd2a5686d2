package bms

import (
	"time"

	"github.com/moffa90/go-fortelion/protocol"
)

// Exchange describes one request/response round trip.
// Passed to ExchangeCallback after the exchange completes or fails.
type Exchange struct {
	// Command is the requested command
	Command protocol.Command

	// Request is the command frame that was sent
	Request []byte

	// Response holds the bytes received, which may be a partial frame when
	// Err is set
	Response []byte

	// Elapsed is the time from write to the end of validation
	Elapsed time.Duration

	// Err is the exchange failure, nil on success
	Err error
}

// ExchangeCallback is called after every exchange.
// Implementations should return quickly; the next request is not sent
// until the callback returns.
type ExchangeCallback func(Exchange)

// Logger is an optional logging interface that can be provided to the client.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	client := bms.New(port, bms.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
