package api

import "unsafe"

// Logger is an opaque handle to a native logger bound to a Go callback.
type Logger uintptr

// Runtime is an opaque handle to a native TensorRT runtime (nvinfer1::IRuntime).
type Runtime uintptr

// CudaEngine is an opaque handle to a deserialized engine (nvinfer1::ICudaEngine).
type CudaEngine uintptr

// ExecutionContext is an opaque handle to an execution context (nvinfer1::IExecutionContext).
type ExecutionContext uintptr

// Severity represents native logger severity levels. Lower values are more severe.
type Severity int32

// DataType represents tensor element data types.
type DataType int32

// TensorFormat represents tensor memory layout formats.
type TensorFormat int32

// TensorIOMode indicates whether a tensor is an engine input or output.
type TensorIOMode int32

// IsInput reports whether the mode marks an engine input tensor.
func (m TensorIOMode) IsInput() bool { return m == 1 }

// EngineCapability represents the capability level an engine was built for.
type EngineCapability int32

// HardwareCompatibilityLevel represents hardware compatibility of an engine.
type HardwareCompatibilityLevel int32

// ProfilingVerbosity controls NVTX annotation detail during enqueue.
type ProfilingVerbosity int32

// MaxDims is the dimension capacity of the native Dims struct.
// Shape results are marshalled through a fixed [MaxDims]int32 buffer
// together with the returned rank.
const MaxDims = 8

// LogCallback receives log records originating inside the native library.
// The native side may invoke it from arbitrary internal threads.
type LogCallback func(severity Severity, msg string)

// API is the flat bridge surface over the native library. Every method is a
// direct forwarding call; handle arguments must be live (non-destroyed)
// handles previously returned by the same API instance.
//
// The production implementation lives in the v10 subpackage. Tests provide
// in-memory fakes.
type API interface {
	// Logger
	CreateLogger(cb LogCallback) Logger
	DestroyLogger(Logger)

	// Runtime
	CreateRuntime(Logger) Runtime
	DestroyRuntime(Runtime)
	DeserializeCudaEngine(r Runtime, data unsafe.Pointer, size uintptr) CudaEngine
	SetMaxThreads(Runtime, int32) bool
	GetMaxThreads(Runtime) int32
	SetEngineHostCodeAllowed(Runtime, bool)
	GetEngineHostCodeAllowed(Runtime) bool

	// Engine
	DestroyCudaEngine(CudaEngine)
	GetNbIOTensors(CudaEngine) int32
	GetIOTensorName(CudaEngine, int32) string
	GetTensorShape(e CudaEngine, name string, dims *int32) int32
	GetTensorDataType(CudaEngine, string) DataType
	GetTensorFormat(CudaEngine, string) TensorFormat
	GetTensorIOMode(CudaEngine, string) TensorIOMode
	GetTensorBytesPerComponent(CudaEngine, string) int32
	GetTensorComponentsPerElement(CudaEngine, string) int32
	GetTensorVectorizedDim(CudaEngine, string) int32
	IsShapeInferenceIO(CudaEngine, string) bool
	GetDeviceMemorySize(CudaEngine) uint64
	IsRefittable(CudaEngine) bool
	GetNbLayers(CudaEngine) int32
	GetEngineName(CudaEngine) string
	GetNbOptimizationProfiles(CudaEngine) int32
	GetEngineCapability(CudaEngine) EngineCapability
	GetHardwareCompatibilityLevel(CudaEngine) HardwareCompatibilityLevel
	GetNbAuxStreams(CudaEngine) int32
	HasImplicitBatchDimension(CudaEngine) bool
	CreateExecutionContext(CudaEngine) ExecutionContext
	CreateExecutionContextWithoutDeviceMemory(CudaEngine) ExecutionContext

	// ExecutionContext
	DestroyExecutionContext(ExecutionContext)
	SetInputShape(c ExecutionContext, name string, dims *int32, nbDims int32) bool
	GetContextTensorShape(c ExecutionContext, name string, dims *int32) int32
	GetTensorStrides(c ExecutionContext, name string, dims *int32) int32
	SetTensorAddress(ExecutionContext, string, uintptr) bool
	GetTensorAddress(ExecutionContext, string) uintptr
	SetInputTensorAddress(ExecutionContext, string, uintptr) bool
	GetOutputTensorAddress(ExecutionContext, string) uintptr
	AllInputDimensionsSpecified(ExecutionContext) bool
	AllInputShapesSpecified(ExecutionContext) bool
	SetOptimizationProfileAsync(c ExecutionContext, profile int32, stream uintptr) bool
	GetOptimizationProfile(ExecutionContext) int32
	SetAuxStreams(c ExecutionContext, streams *uintptr, nbStreams int32)
	SetDeviceMemory(ExecutionContext, uintptr)
	SetContextName(ExecutionContext, string)
	GetContextName(ExecutionContext) string
	SetDebugSync(ExecutionContext, bool)
	GetDebugSync(ExecutionContext) bool
	SetEnqueueEmitsProfile(ExecutionContext, bool)
	GetEnqueueEmitsProfile(ExecutionContext) bool
	ReportToProfiler(ExecutionContext) bool
	SetNvtxVerbosity(ExecutionContext, ProfilingVerbosity)
	SetPersistentCacheLimit(ExecutionContext, uint64)
	GetPersistentCacheLimit(ExecutionContext) uint64
	SetInputConsumedEvent(ExecutionContext, uintptr) bool
	GetInputConsumedEvent(ExecutionContext) uintptr
	GetMaxOutputSize(ExecutionContext, string) uint64
	EnqueueV3(c ExecutionContext, stream uintptr) bool

	// Plugin registry
	LoadPluginLibrary(path string) uintptr
	UnloadPluginLibrary(handle uintptr)
}
