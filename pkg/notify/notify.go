// Package notify defines the notification sink invoked best-effort when a
// schedule publishes. Delivery transports (email, push, calendar sync) live
// outside this repo; the log notifier is the built-in implementation.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Message is one notification to one employee about one schedule
type Message struct {
	EmployeeID string
	ScheduleID string
	Body       string
}

// Notifier accepts a batch of messages. Implementations are best-effort:
// the publisher logs failures and never rolls back a publish over them.
type Notifier interface {
	Notify(ctx context.Context, messages []Message) error
}

// LogNotifier writes notifications to the application log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by the given logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each message at Info level
func (n *LogNotifier) Notify(ctx context.Context, messages []Message) error {
	for _, m := range messages {
		n.logger.Info("Schedule notification",
			zap.String("employee_id", m.EmployeeID),
			zap.String("schedule_id", m.ScheduleID),
			zap.String("message", m.Body))
	}
	return nil
}
