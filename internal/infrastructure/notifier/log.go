package notifier

import (
	"context"

	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
)

// Log writes notifications to the application log. It is the default sink
// when no webhook is configured.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (n *Log) Send(ctx context.Context, notification domain.Notification) error {
	n.logger.Info("notification",
		zap.Int64("todo_id", notification.TodoID),
		zap.String("tag", notification.Tag),
		zap.String("title", notification.Title),
		zap.String("body", notification.Body))
	return nil
}
