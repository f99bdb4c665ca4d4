package tensorrt

import (
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"
	"unsafe"

	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
	"github.com/vivym/tensorrt-go/tensorrt/internal/api/v10"
)

// RuntimeConfig configures runtime creation.
type RuntimeConfig struct {
	// LibraryPath overrides the bridge library path.
	// If empty, the platform default name is used and resolved through the
	// standard dynamic linker search path.
	LibraryPath string

	// Logger is the structured logging backend that receives records from
	// the native runtime. If nil, slog.Default() is used.
	Logger *slog.Logger

	// MinSeverity sets the initial minimum severity forwarded to the
	// logging backend (default: SeverityWarning).
	MinSeverity *Severity
}

func (c *RuntimeConfig) libraryPath() string {
	if c != nil && c.LibraryPath != "" {
		return c.LibraryPath
	}
	return defaultLibraryPath()
}

func (c *RuntimeConfig) logBackend() *slog.Logger {
	if c != nil {
		return c.Logger
	}
	return nil
}

func (c *RuntimeConfig) minSeverity() Severity {
	if c != nil && c.MinSeverity != nil {
		return *c.MinSeverity
	}
	return SeverityWarning
}

func defaultLibraryPath() string {
	switch goruntime.GOOS {
	case "darwin":
		return "libtrtbridge.dylib"
	default:
		return "libtrtbridge.so"
	}
}

// Runtime owns one native TensorRT runtime and the logger it was created
// with. The runtime must outlive every Engine deserialized from it; engines
// hold a reference to their runtime so the ownership chain
// Logger > Runtime > Engine > ExecutionContext is preserved.
type Runtime struct {
	apiFuncs api.API
	ptr      api.Runtime
	logger   *Logger
}

// NewRuntime loads the bridge library and creates a native runtime bound to
// a structured logger built from config (which may be nil for defaults).
func NewRuntime(config *RuntimeConfig) (*Runtime, error) {
	apiFuncs, err := v10.Load(config.libraryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load bridge library: %w", err)
	}
	return newRuntime(apiFuncs, config)
}

// newRuntime creates the logger and native runtime on top of an already
// loaded API. Tests inject fakes here.
func newRuntime(apiFuncs api.API, config *RuntimeConfig) (*Runtime, error) {
	logger, err := newLogger(apiFuncs, config.logBackend(), config.minSeverity())
	if err != nil {
		return nil, err
	}

	ptr := apiFuncs.CreateRuntime(logger.ptr)
	if ptr == 0 {
		logger.close()
		return nil, ErrRuntimeCreation
	}

	r := &Runtime{
		apiFuncs: apiFuncs,
		ptr:      ptr,
		logger:   logger,
	}
	goruntime.AddCleanup(r, func(_ struct{}) { r.Close() }, struct{}{})
	return r, nil
}

// Logger returns the logger adapter bound to this runtime.
func (r *Runtime) Logger() *Logger {
	return r.logger
}

// Deserialize parses a serialized engine blob into an Engine. The blob is
// treated as an opaque byte buffer; validation is entirely the native
// deserializer's. A malformed or incompatible blob yields
// ErrEngineDeserialization.
func (r *Runtime) Deserialize(data []byte) (*Engine, error) {
	if r.ptr == 0 {
		return nil, fmt.Errorf("failed to deserialize engine: %w", ErrClosed)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to deserialize engine: empty data: %w", ErrEngineDeserialization)
	}

	ptr := r.apiFuncs.DeserializeCudaEngine(r.ptr, unsafe.Pointer(&data[0]), uintptr(len(data)))
	goruntime.KeepAlive(data)
	if ptr == 0 {
		return nil, ErrEngineDeserialization
	}

	return newEngine(r, ptr), nil
}

// DeserializeFromFile reads a serialized engine from path and deserializes it.
func (r *Runtime) DeserializeFromFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine file: %w", err)
	}
	return r.Deserialize(data)
}

// SetMaxThreads configures the maximum number of threads the runtime may use
// internally. Returns ErrRejected if the native runtime rejects the value.
func (r *Runtime) SetMaxThreads(n int32) error {
	if r.ptr == 0 {
		return ErrClosed
	}
	if !r.apiFuncs.SetMaxThreads(r.ptr, n) {
		return fmt.Errorf("set max threads %d: %w", n, ErrRejected)
	}
	return nil
}

// MaxThreads returns the runtime's current thread budget.
func (r *Runtime) MaxThreads() int32 {
	if r.ptr == 0 {
		return 0
	}
	return r.apiFuncs.GetMaxThreads(r.ptr)
}

// SetEngineHostCodeAllowed toggles whether deserialized engines may execute
// host-side plugin code.
func (r *Runtime) SetEngineHostCodeAllowed(allowed bool) {
	if r.ptr == 0 {
		return
	}
	r.apiFuncs.SetEngineHostCodeAllowed(r.ptr, allowed)
}

// EngineHostCodeAllowed reports whether deserialized engines may execute
// host-side plugin code.
func (r *Runtime) EngineHostCodeAllowed() bool {
	if r.ptr == 0 {
		return false
	}
	return r.apiFuncs.GetEngineHostCodeAllowed(r.ptr)
}

// Close destroys the native runtime and its logger. Engines deserialized
// from this runtime must be closed first. It is safe to call Close multiple
// times.
func (r *Runtime) Close() {
	if r.ptr != 0 {
		r.apiFuncs.DestroyRuntime(r.ptr)
		r.ptr = 0
	}
	if r.logger != nil {
		r.logger.close()
		r.logger = nil
	}
}
