package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier is a fire-and-forget sink: delivery failure never rolls back the
// settlement that produced the event.
type Notifier interface {
	Notify(ctx context.Context, userID int, event string, fields map[string]any)
}

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, userID int, event string, fields map[string]any) {
	zap.L().Info("notification",
		zap.Int("userID", userID),
		zap.String("event", event),
		zap.Any("fields", fields),
	)
}
