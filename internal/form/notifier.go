package form

import (
	"errors"

	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"go.uber.org/zap"
)

// LogNotifier is the default Notifier: it writes user-facing messages to
// the application log. Screens replace it with their toast sink.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a LogNotifier over the global logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: logger.Get()}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info("notify success", zap.String("message", message))
}

// Error logs the most specific message available: a structured server
// message wins over the generic fallback.
func (n *LogNotifier) Error(err error, fallback string) {
	message := UserMessage(err, fallback)

	n.logger.Error("notify error",
		zap.String("message", message),
		zap.Error(err))
}

// UserMessage resolves the message to surface for err: the structured
// server message when present, the fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}
