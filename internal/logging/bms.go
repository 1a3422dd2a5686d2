package logging

import "github.com/rs/zerolog"

// BMSLogger adapts a zerolog.Logger to the bms.Logger interface.
type BMSLogger struct {
	log zerolog.Logger
}

// NewBMSLogger wraps l. Key-value pairs become zerolog fields.
func NewBMSLogger(l zerolog.Logger) *BMSLogger {
	return &BMSLogger{log: l.With().Str("component", "bms").Logger()}
}

func (b *BMSLogger) Debug(msg string, keysAndValues ...interface{}) {
	b.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (b *BMSLogger) Info(msg string, keysAndValues ...interface{}) {
	b.log.Info().Fields(keysAndValues).Msg(msg)
}

func (b *BMSLogger) Error(msg string, keysAndValues ...interface{}) {
	b.log.Error().Fields(keysAndValues).Msg(msg)
}
