package server

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// consoleBuffer bounds how many console lines may be queued per render
const consoleBuffer = 32

// ConsoleMessage represents a log line forwarded to the browser console
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// consoleCore is a zap core that forwards entries to a render's websocket.
// Fields are not forwarded; the client already knows the render and scene.
type consoleCore struct {
	zapcore.LevelEnabler
	renderID string
	out      chan<- Message
}

func newConsoleCore(level zapcore.LevelEnabler, renderID string, out chan<- Message) zapcore.Core {
	return &consoleCore{LevelEnabler: level, renderID: renderID, out: out}
}

func (c *consoleCore) With([]zapcore.Field) zapcore.Core {
	return c
}

func (c *consoleCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

// Write never blocks; lines are dropped when the queue is full
func (c *consoleCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	msg := Message{
		Type:     MessageConsole,
		RenderID: c.renderID,
		Console: &ConsoleMessage{
			Message:   entry.Message,
			Timestamp: entry.Time,
			Level:     entry.Level.String(),
		},
	}

	select {
	case c.out <- msg:
	default:
	}
	return nil
}

func (c *consoleCore) Sync() error {
	return nil
}
