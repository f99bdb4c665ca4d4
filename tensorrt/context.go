package tensorrt

import (
	"fmt"
	goruntime "runtime"
	"time"

	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
)

// ExecutionContext wraps one native execution context bound to an Engine.
// It carries the mutable per-invocation state: tensor addresses, input
// shapes, streams, and profiling flags. All configuration survives an
// enqueue, so a context can be re-enqueued with unchanged bindings or
// reconfigured incrementally between calls.
//
// An ExecutionContext is NOT safe for concurrent use from multiple
// goroutines. Contexts created from the same engine are independent and may
// be used concurrently on distinct streams; the bindings add no
// synchronization across them.
type ExecutionContext struct {
	apiFuncs api.API
	ptr      api.ExecutionContext
	engine   *Engine
	hooks    []Hook
}

func newExecutionContext(e *Engine, ptr api.ExecutionContext) *ExecutionContext {
	c := &ExecutionContext{
		apiFuncs: e.apiFuncs,
		ptr:      ptr,
		engine:   e,
	}
	goruntime.AddCleanup(c, func(_ struct{}) { c.Close() }, struct{}{})
	return c
}

// Engine returns the engine this context was created from.
func (c *ExecutionContext) Engine() *Engine {
	return c.engine
}

// AddHook registers a hook invoked around every Enqueue.
func (c *ExecutionContext) AddHook(h Hook) {
	c.hooks = append(c.hooks, h)
}

func (c *ExecutionContext) checkName(name string) error {
	if c.ptr == 0 {
		return ErrClosed
	}
	return c.engine.checkName(name)
}

// SetInputShape sets the concrete shape of a dynamic input tensor for the
// next enqueue. It returns ErrNotAnInput for output tensors, ErrInvalidDims
// for ranks above MaxDims, and an ErrRejected-wrapped error when the shape
// is inconsistent with the engine's optimization profile.
func (c *ExecutionContext) SetInputShape(name string, dims Dims) error {
	if err := c.checkName(name); err != nil {
		return err
	}
	if c.engine.ioModes[name] != TensorIOModeInput {
		return fmt.Errorf("set input shape for %q: %w", name, ErrNotAnInput)
	}
	if len(dims) > MaxDims {
		return fmt.Errorf("set input shape for %q: rank %d: %w", name, len(dims), ErrInvalidDims)
	}

	var buf [MaxDims]int32
	copy(buf[:], dims)
	if !c.apiFuncs.SetInputShape(c.ptr, name, &buf[0], int32(len(dims))) {
		return fmt.Errorf("set input shape for %q to %s: %w", name, dims, ErrRejected)
	}
	return nil
}

// TensorShape returns the context-resolved shape of the named tensor.
// Before all input dimensions are specified, dynamic extents are reported
// with the native placeholder value rather than an error.
func (c *ExecutionContext) TensorShape(name string) (Dims, error) {
	if err := c.checkName(name); err != nil {
		return nil, err
	}
	var buf [MaxDims]int32
	nbDims := c.apiFuncs.GetContextTensorShape(c.ptr, name, &buf[0])
	return dimsFromBuffer(&buf, nbDims), nil
}

// TensorStrides returns the element strides of the named tensor. The result
// is only meaningful once all input shapes are specified.
func (c *ExecutionContext) TensorStrides(name string) (Dims, error) {
	if err := c.checkName(name); err != nil {
		return nil, err
	}
	var buf [MaxDims]int32
	nbDims := c.apiFuncs.GetTensorStrides(c.ptr, name, &buf[0])
	return dimsFromBuffer(&buf, nbDims), nil
}

// SetTensorAddress binds a device memory address to the named I/O tensor.
// The address is opaque to the bindings; it must remain valid until the
// work enqueued against it has completed.
func (c *ExecutionContext) SetTensorAddress(name string, address DeviceAddress) error {
	if err := c.checkName(name); err != nil {
		return err
	}
	if !c.apiFuncs.SetTensorAddress(c.ptr, name, uintptr(address)) {
		return fmt.Errorf("set tensor address for %q: %w", name, ErrRejected)
	}
	return nil
}

// TensorAddress returns the device address currently bound to the named
// tensor, or zero if none is bound.
func (c *ExecutionContext) TensorAddress(name string) (DeviceAddress, error) {
	if err := c.checkName(name); err != nil {
		return 0, err
	}
	return DeviceAddress(c.apiFuncs.GetTensorAddress(c.ptr, name)), nil
}

// SetInputTensorAddress binds a device address to the named input tensor.
// Unlike SetTensorAddress, the native runtime accepts a const buffer here.
func (c *ExecutionContext) SetInputTensorAddress(name string, address DeviceAddress) error {
	if err := c.checkName(name); err != nil {
		return err
	}
	if c.engine.ioModes[name] != TensorIOModeInput {
		return fmt.Errorf("set input tensor address for %q: %w", name, ErrNotAnInput)
	}
	if !c.apiFuncs.SetInputTensorAddress(c.ptr, name, uintptr(address)) {
		return fmt.Errorf("set input tensor address for %q: %w", name, ErrRejected)
	}
	return nil
}

// OutputTensorAddress returns the device address bound to the named output
// tensor, or zero if none is bound.
func (c *ExecutionContext) OutputTensorAddress(name string) (DeviceAddress, error) {
	if err := c.checkName(name); err != nil {
		return 0, err
	}
	return DeviceAddress(c.apiFuncs.GetOutputTensorAddress(c.ptr, name)), nil
}

// AllInputDimensionsSpecified reports whether every dynamic input dimension
// has been resolved with SetInputShape.
func (c *ExecutionContext) AllInputDimensionsSpecified() bool {
	if c.ptr == 0 {
		return false
	}
	return c.apiFuncs.AllInputDimensionsSpecified(c.ptr)
}

// AllInputShapesSpecified reports whether every input shape tensor value
// has been supplied.
func (c *ExecutionContext) AllInputShapesSpecified() bool {
	if c.ptr == 0 {
		return false
	}
	return c.apiFuncs.AllInputShapesSpecified(c.ptr)
}

// SetOptimizationProfileAsync selects the active optimization profile.
// Profile switching may enqueue device work on stream.
func (c *ExecutionContext) SetOptimizationProfileAsync(profile int32, stream Stream) error {
	if c.ptr == 0 {
		return ErrClosed
	}
	if !c.apiFuncs.SetOptimizationProfileAsync(c.ptr, profile, uintptr(stream)) {
		return fmt.Errorf("set optimization profile %d: %w", profile, ErrRejected)
	}
	return nil
}

// OptimizationProfile returns the index of the active optimization profile,
// or -1 if none has been selected.
func (c *ExecutionContext) OptimizationProfile() int32 {
	if c.ptr == 0 {
		return -1
	}
	return c.apiFuncs.GetOptimizationProfile(c.ptr)
}

// SetAuxStreams supplies the auxiliary streams the engine may use during
// enqueue. At most Engine.NumAuxStreams streams are used.
func (c *ExecutionContext) SetAuxStreams(streams []Stream) {
	if c.ptr == 0 || len(streams) == 0 {
		return
	}
	raw := make([]uintptr, len(streams))
	for i, s := range streams {
		raw[i] = uintptr(s)
	}
	c.apiFuncs.SetAuxStreams(c.ptr, &raw[0], int32(len(raw)))
	goruntime.KeepAlive(raw)
}

// SetDeviceMemory supplies device storage for a context created without its
// own memory. The block must be at least Engine.DeviceMemorySize bytes and
// remain valid while the context is in use.
func (c *ExecutionContext) SetDeviceMemory(address DeviceAddress) {
	if c.ptr == 0 {
		return
	}
	c.apiFuncs.SetDeviceMemory(c.ptr, uintptr(address))
}

// SetName sets a debug name for the context.
func (c *ExecutionContext) SetName(name string) {
	if c.ptr == 0 {
		return
	}
	c.apiFuncs.SetContextName(c.ptr, name)
}

// Name returns the context's debug name.
func (c *ExecutionContext) Name() string {
	if c.ptr == 0 {
		return ""
	}
	return c.apiFuncs.GetContextName(c.ptr)
}

// SetDebugSync toggles synchronous kernel launch reporting.
func (c *ExecutionContext) SetDebugSync(sync bool) {
	if c.ptr == 0 {
		return
	}
	c.apiFuncs.SetDebugSync(c.ptr, sync)
}

// DebugSync reports whether debug synchronization is enabled.
func (c *ExecutionContext) DebugSync() bool {
	if c.ptr == 0 {
		return false
	}
	return c.apiFuncs.GetDebugSync(c.ptr)
}

// SetEnqueueEmitsProfile controls whether enqueue emits layer timing to the
// attached profiler, or defers it until ReportToProfiler.
func (c *ExecutionContext) SetEnqueueEmitsProfile(emits bool) {
	if c.ptr == 0 {
		return
	}
	c.apiFuncs.SetEnqueueEmitsProfile(c.ptr, emits)
}

// EnqueueEmitsProfile reports whether enqueue emits profile data.
func (c *ExecutionContext) EnqueueEmitsProfile() bool {
	if c.ptr == 0 {
		return false
	}
	return c.apiFuncs.GetEnqueueEmitsProfile(c.ptr)
}

// ReportToProfiler flushes deferred layer timing to the attached profiler.
func (c *ExecutionContext) ReportToProfiler() bool {
	if c.ptr == 0 {
		return false
	}
	return c.apiFuncs.ReportToProfiler(c.ptr)
}

// SetNvtxVerbosity overrides the NVTX annotation detail for this context.
func (c *ExecutionContext) SetNvtxVerbosity(verbosity ProfilingVerbosity) {
	if c.ptr == 0 {
		return
	}
	c.apiFuncs.SetNvtxVerbosity(c.ptr, verbosity)
}

// SetPersistentCacheLimit caps the persistent L2 cache budget in bytes.
func (c *ExecutionContext) SetPersistentCacheLimit(limit uint64) {
	if c.ptr == 0 {
		return
	}
	c.apiFuncs.SetPersistentCacheLimit(c.ptr, limit)
}

// PersistentCacheLimit returns the persistent cache budget in bytes.
func (c *ExecutionContext) PersistentCacheLimit() uint64 {
	if c.ptr == 0 {
		return 0
	}
	return c.apiFuncs.GetPersistentCacheLimit(c.ptr)
}

// SetInputConsumedEvent registers an event signalled once all input tensors
// have been consumed by the enqueued work.
func (c *ExecutionContext) SetInputConsumedEvent(event Event) error {
	if c.ptr == 0 {
		return ErrClosed
	}
	if !c.apiFuncs.SetInputConsumedEvent(c.ptr, uintptr(event)) {
		return fmt.Errorf("set input consumed event: %w", ErrRejected)
	}
	return nil
}

// InputConsumedEvent returns the registered input-consumed event, or zero.
func (c *ExecutionContext) InputConsumedEvent() Event {
	if c.ptr == 0 {
		return 0
	}
	return Event(c.apiFuncs.GetInputConsumedEvent(c.ptr))
}

// MaxOutputSize returns an upper bound in bytes on the named output tensor
// across the active optimization profile.
func (c *ExecutionContext) MaxOutputSize(name string) (uint64, error) {
	if err := c.checkName(name); err != nil {
		return 0, err
	}
	return c.apiFuncs.GetMaxOutputSize(c.ptr, name), nil
}

// Enqueue submits the configured inference work asynchronously on stream
// and returns once submission is accepted. Completion must be awaited via
// native stream or event primitives; the bindings never block on the
// device.
//
// Enqueue fails closed: if any input tensor still has an unresolved dynamic
// dimension it returns ErrInputsNotSpecified without touching the native
// enqueue, rather than submitting work with stale shapes. Every I/O tensor
// must also have a device address bound; a native submission failure is
// reported as ErrEnqueue.
func (c *ExecutionContext) Enqueue(stream Stream) error {
	if c.ptr == 0 {
		return ErrClosed
	}

	info := &EnqueueInfo{
		ContextName: c.Name(),
		Stream:      stream,
	}
	for _, h := range c.hooks {
		h.BeforeEnqueue(info)
	}

	var err error
	if !c.apiFuncs.AllInputDimensionsSpecified(c.ptr) {
		err = ErrInputsNotSpecified
	} else {
		start := time.Now()
		ok := c.apiFuncs.EnqueueV3(c.ptr, uintptr(stream))
		info.Duration = time.Since(start)
		if !ok {
			err = ErrEnqueue
		}
	}

	info.Error = err
	for _, h := range c.hooks {
		h.AfterEnqueue(info)
	}
	return err
}

// Close destroys the native execution context. It is safe to call Close
// multiple times.
func (c *ExecutionContext) Close() {
	if c.ptr != 0 {
		c.apiFuncs.DestroyExecutionContext(c.ptr)
		c.ptr = 0
	}
}
