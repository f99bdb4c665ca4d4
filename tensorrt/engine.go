package tensorrt

import (
	goruntime "runtime"

	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
)

// Engine wraps one deserialized engine and exposes its read-only
// introspection surface. Engines are produced only by Runtime.Deserialize.
//
// The native library leaves lookups of unknown tensor names and
// out-of-range indices undefined. The bindings enumerate the engine's I/O
// tensors once at construction and validate every lookup against that set,
// returning *UnknownTensorError or *TensorIndexError instead of forwarding
// undefined behavior.
type Engine struct {
	apiFuncs api.API
	ptr      api.CudaEngine
	runtime  *Runtime

	ioTensors []string
	ioModes   map[string]TensorIOMode
}

func newEngine(r *Runtime, ptr api.CudaEngine) *Engine {
	e := &Engine{
		apiFuncs: r.apiFuncs,
		ptr:      ptr,
		runtime:  r,
	}

	count := e.apiFuncs.GetNbIOTensors(ptr)
	e.ioTensors = make([]string, 0, count)
	e.ioModes = make(map[string]TensorIOMode, count)
	for i := int32(0); i < count; i++ {
		name := e.apiFuncs.GetIOTensorName(ptr, i)
		e.ioTensors = append(e.ioTensors, name)
		e.ioModes[name] = e.apiFuncs.GetTensorIOMode(ptr, name)
	}

	goruntime.AddCleanup(e, func(_ struct{}) { e.Close() }, struct{}{})
	return e
}

// checkName validates that the engine is open and name is one of its
// enumerated I/O tensors.
func (e *Engine) checkName(name string) error {
	if e.ptr == 0 {
		return ErrClosed
	}
	if _, ok := e.ioModes[name]; !ok {
		return &UnknownTensorError{Name: name}
	}
	return nil
}

// NumIOTensors returns the number of input and output tensors declared by
// the engine.
func (e *Engine) NumIOTensors() int {
	return len(e.ioTensors)
}

// IOTensorName returns the name of the I/O tensor at index.
func (e *Engine) IOTensorName(index int) (string, error) {
	if e.ptr == 0 {
		return "", ErrClosed
	}
	if index < 0 || index >= len(e.ioTensors) {
		return "", &TensorIndexError{Index: index, Count: len(e.ioTensors)}
	}
	return e.ioTensors[index], nil
}

// IOTensorNames returns the names of all I/O tensors in enumeration order.
func (e *Engine) IOTensorNames() []string {
	names := make([]string, len(e.ioTensors))
	copy(names, e.ioTensors)
	return names
}

// TensorShape returns the build-time shape of the named tensor. Extents
// equal to DynamicDimension are resolved per execution context.
func (e *Engine) TensorShape(name string) (Dims, error) {
	if err := e.checkName(name); err != nil {
		return nil, err
	}
	var buf [MaxDims]int32
	nbDims := e.apiFuncs.GetTensorShape(e.ptr, name, &buf[0])
	return dimsFromBuffer(&buf, nbDims), nil
}

// TensorDataType returns the element data type of the named tensor.
func (e *Engine) TensorDataType(name string) (DataType, error) {
	if err := e.checkName(name); err != nil {
		return 0, err
	}
	return e.apiFuncs.GetTensorDataType(e.ptr, name), nil
}

// TensorFormat returns the memory layout of the named tensor.
func (e *Engine) TensorFormat(name string) (TensorFormat, error) {
	if err := e.checkName(name); err != nil {
		return 0, err
	}
	return e.apiFuncs.GetTensorFormat(e.ptr, name), nil
}

// TensorIOMode reports whether the named tensor is an input or an output.
func (e *Engine) TensorIOMode(name string) (TensorIOMode, error) {
	if err := e.checkName(name); err != nil {
		return TensorIOModeNone, err
	}
	return e.ioModes[name], nil
}

// TensorBytesPerComponent returns the size in bytes of one vector component
// of the named tensor.
func (e *Engine) TensorBytesPerComponent(name string) (int32, error) {
	if err := e.checkName(name); err != nil {
		return 0, err
	}
	return e.apiFuncs.GetTensorBytesPerComponent(e.ptr, name), nil
}

// TensorComponentsPerElement returns the number of components per vector
// element of the named tensor.
func (e *Engine) TensorComponentsPerElement(name string) (int32, error) {
	if err := e.checkName(name); err != nil {
		return 0, err
	}
	return e.apiFuncs.GetTensorComponentsPerElement(e.ptr, name), nil
}

// TensorVectorizedDim returns the dimension index along which the named
// tensor's memory is vectorized, or -1 if it is not vectorized.
func (e *Engine) TensorVectorizedDim(name string) (int32, error) {
	if err := e.checkName(name); err != nil {
		return 0, err
	}
	return e.apiFuncs.GetTensorVectorizedDim(e.ptr, name), nil
}

// IsShapeInferenceIO reports whether the named tensor participates in shape
// calculation only.
func (e *Engine) IsShapeInferenceIO(name string) (bool, error) {
	if err := e.checkName(name); err != nil {
		return false, err
	}
	return e.apiFuncs.IsShapeInferenceIO(e.ptr, name), nil
}

// DeviceMemorySize returns the device memory in bytes an execution context
// created without its own storage requires.
func (e *Engine) DeviceMemorySize() uint64 {
	if e.ptr == 0 {
		return 0
	}
	return e.apiFuncs.GetDeviceMemorySize(e.ptr)
}

// IsRefittable reports whether the engine's weights can be refit.
func (e *Engine) IsRefittable() bool {
	if e.ptr == 0 {
		return false
	}
	return e.apiFuncs.IsRefittable(e.ptr)
}

// NumLayers returns the number of layers in the engine.
func (e *Engine) NumLayers() int32 {
	if e.ptr == 0 {
		return 0
	}
	return e.apiFuncs.GetNbLayers(e.ptr)
}

// Name returns the engine's build-time name.
func (e *Engine) Name() string {
	if e.ptr == 0 {
		return ""
	}
	return e.apiFuncs.GetEngineName(e.ptr)
}

// NumOptimizationProfiles returns the number of optimization profiles the
// engine was built with.
func (e *Engine) NumOptimizationProfiles() int32 {
	if e.ptr == 0 {
		return 0
	}
	return e.apiFuncs.GetNbOptimizationProfiles(e.ptr)
}

// Capability returns the capability level the engine was built for.
func (e *Engine) Capability() EngineCapability {
	if e.ptr == 0 {
		return EngineCapabilityStandard
	}
	return e.apiFuncs.GetEngineCapability(e.ptr)
}

// HardwareCompatibilityLevel returns the hardware compatibility level of
// the engine.
func (e *Engine) HardwareCompatibilityLevel() HardwareCompatibilityLevel {
	if e.ptr == 0 {
		return HardwareCompatibilityNone
	}
	return e.apiFuncs.GetHardwareCompatibilityLevel(e.ptr)
}

// NumAuxStreams returns the number of auxiliary streams the engine may use
// during enqueue.
func (e *Engine) NumAuxStreams() int32 {
	if e.ptr == 0 {
		return 0
	}
	return e.apiFuncs.GetNbAuxStreams(e.ptr)
}

// HasImplicitBatchDimension reports whether the engine uses the legacy
// implicit-batch convention.
func (e *Engine) HasImplicitBatchDimension() bool {
	if e.ptr == 0 {
		return false
	}
	return e.apiFuncs.HasImplicitBatchDimension(e.ptr)
}

// NewExecutionContext creates an execution context with its own device
// memory. Multiple contexts may be created from one engine and used
// concurrently on distinct streams.
func (e *Engine) NewExecutionContext() (*ExecutionContext, error) {
	if e.ptr == 0 {
		return nil, ErrClosed
	}
	ptr := e.apiFuncs.CreateExecutionContext(e.ptr)
	if ptr == 0 {
		return nil, ErrContextCreation
	}
	return newExecutionContext(e, ptr), nil
}

// NewExecutionContextWithoutDeviceMemory creates an execution context that
// does not allocate its own device memory. The caller must supply storage
// of at least DeviceMemorySize bytes via SetDeviceMemory before the first
// enqueue; enqueueing without it is undefined by the native library.
func (e *Engine) NewExecutionContextWithoutDeviceMemory() (*ExecutionContext, error) {
	if e.ptr == 0 {
		return nil, ErrClosed
	}
	ptr := e.apiFuncs.CreateExecutionContextWithoutDeviceMemory(e.ptr)
	if ptr == 0 {
		return nil, ErrContextCreation
	}
	return newExecutionContext(e, ptr), nil
}

// Close destroys the native engine. Execution contexts created from this
// engine must be closed first. It is safe to call Close multiple times.
func (e *Engine) Close() {
	if e.ptr != 0 {
		e.apiFuncs.DestroyCudaEngine(e.ptr)
		e.ptr = 0
	}
}
