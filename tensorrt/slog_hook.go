package tensorrt

import (
	"log/slog"
)

// SlogHook is a Hook that logs enqueue events via Go's structured logging
// (log/slog). It logs at Debug level on success and Error level on failure.
//
// Example:
//
//	context.AddHook(tensorrt.NewSlogHook(slog.Default()))
type SlogHook struct {
	logger *slog.Logger
}

// NewSlogHook creates a Hook that logs enqueue events to the given
// slog.Logger. If logger is nil, slog.Default() is used.
func NewSlogHook(logger *slog.Logger) *SlogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogHook{logger: logger}
}

func (h *SlogHook) BeforeEnqueue(_ *EnqueueInfo) {}

func (h *SlogHook) AfterEnqueue(info *EnqueueInfo) {
	if info.Error != nil {
		h.logger.Error("enqueue failed",
			slog.String("context", info.ContextName),
			slog.String("error", info.Error.Error()),
		)
	} else {
		h.logger.Debug("enqueue submitted",
			slog.String("context", info.ContextName),
			slog.Duration("duration", info.Duration),
		)
	}
}
