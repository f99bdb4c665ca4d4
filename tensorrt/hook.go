package tensorrt

import "time"

// Hook provides callbacks around enqueue for observability. Implement this
// interface to add metrics, logging, or tracing around inference
// submissions.
type Hook interface {
	// BeforeEnqueue is called before work is submitted.
	BeforeEnqueue(info *EnqueueInfo)

	// AfterEnqueue is called after submission completes (or fails).
	// Duration and Error are populated.
	AfterEnqueue(info *EnqueueInfo)
}

// EnqueueInfo describes one enqueue attempt. ContextName and Stream are set
// before submission; Duration and Error are set after.
type EnqueueInfo struct {
	ContextName string
	Stream      Stream
	Duration    time.Duration
	Error       error
}

type hookFunc struct {
	fn func(*EnqueueInfo)
}

func (h *hookFunc) BeforeEnqueue(_ *EnqueueInfo)   {}
func (h *hookFunc) AfterEnqueue(info *EnqueueInfo) { h.fn(info) }

// AfterEnqueueHook creates a Hook that calls fn after every enqueue.
// This is a convenience for the common case where only AfterEnqueue is
// needed.
func AfterEnqueueHook(fn func(*EnqueueInfo)) Hook {
	return &hookFunc{fn: fn}
}
