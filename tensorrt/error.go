package tensorrt

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when an operation is attempted on a closed
	// Runtime, Engine, or ExecutionContext.
	ErrClosed = errors.New("handle is closed")

	// ErrRuntimeCreation is returned when the native runtime cannot be
	// allocated.
	ErrRuntimeCreation = errors.New("runtime creation failed")

	// ErrLoggerCreation is returned when the native logger cannot be
	// allocated.
	ErrLoggerCreation = errors.New("logger creation failed")

	// ErrEngineDeserialization is returned when the native deserializer
	// rejects an engine blob (malformed, truncated, or built for an
	// incompatible TensorRT version).
	ErrEngineDeserialization = errors.New("engine deserialization failed")

	// ErrContextCreation is returned when an execution context cannot be
	// allocated.
	ErrContextCreation = errors.New("execution context creation failed")

	// ErrRejected is returned when the native runtime rejects a
	// configuration value, for example a shape outside the engine's
	// optimization profile. The caller may retry with a different value.
	ErrRejected = errors.New("value rejected by native runtime")

	// ErrEnqueue is returned when the native runtime fails to submit
	// inference work to a stream.
	ErrEnqueue = errors.New("enqueue failed")

	// ErrInputsNotSpecified is returned by Enqueue when one or more input
	// tensors still have unresolved dynamic dimensions. The enqueue is not
	// forwarded to the native runtime in this case.
	ErrInputsNotSpecified = errors.New("not all input dimensions are specified")

	// ErrNotAnInput is returned when an input-only mutator is called on an
	// output tensor.
	ErrNotAnInput = errors.New("tensor is not an engine input")

	// ErrInvalidDims is returned when a dimension sequence exceeds MaxDims.
	ErrInvalidDims = errors.New("dimension count exceeds MaxDims")

	// ErrPluginLoad is returned when the plugin registry fails to load a
	// library.
	ErrPluginLoad = errors.New("plugin library load failed")
)

// UnknownTensorError is returned when a tensor name is not among the I/O
// tensor names enumerated by the engine. The native library leaves lookups
// of unregistered names undefined; the bindings check against the
// enumerated set instead of forwarding the call.
type UnknownTensorError struct {
	Name string
}

func (e *UnknownTensorError) Error() string {
	return fmt.Sprintf("unknown tensor %q", e.Name)
}

// TensorIndexError is returned when a tensor index is outside
// [0, NumIOTensors).
type TensorIndexError struct {
	Index int
	Count int
}

func (e *TensorIndexError) Error() string {
	return fmt.Sprintf("tensor index %d out of range [0, %d)", e.Index, e.Count)
}
