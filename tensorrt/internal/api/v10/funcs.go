// Package v10 implements the bridge API for TensorRT 10.x using purego.
//
// It loads the libtrtbridge shared library (built from the cshim directory)
// and registers typed function pointers for every trtgo_* symbol.
package v10

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
)

// Funcs contains cached function pointers to the bridge library.
// A Funcs value satisfies api.API.
type Funcs struct {
	// Logger
	loggerCreate  func(uintptr) api.Logger
	loggerDestroy func(api.Logger)

	// Runtime
	runtimeCreate             func(api.Logger) api.Runtime
	runtimeDestroy            func(api.Runtime)
	runtimeDeserialize        func(api.Runtime, unsafe.Pointer, uintptr) api.CudaEngine
	runtimeSetMaxThreads      func(api.Runtime, int32) bool
	runtimeGetMaxThreads      func(api.Runtime) int32
	runtimeSetHostCodeAllowed func(api.Runtime, bool)
	runtimeGetHostCodeAllowed func(api.Runtime) bool

	// Engine
	engineDestroy                    func(api.CudaEngine)
	engineGetNbIOTensors             func(api.CudaEngine) int32
	engineGetIOTensorName            func(api.CudaEngine, int32) string
	engineGetTensorShape             func(api.CudaEngine, string, *int32) int32
	engineGetTensorDataType          func(api.CudaEngine, string) int32
	engineGetTensorFormat            func(api.CudaEngine, string) int32
	engineGetTensorIOMode            func(api.CudaEngine, string) int32
	engineGetTensorBytesPerComponent func(api.CudaEngine, string) int32
	engineGetTensorComponentsPerElem func(api.CudaEngine, string) int32
	engineGetTensorVectorizedDim     func(api.CudaEngine, string) int32
	engineIsShapeInferenceIO         func(api.CudaEngine, string) bool
	engineGetDeviceMemorySize        func(api.CudaEngine) uint64
	engineIsRefittable               func(api.CudaEngine) bool
	engineGetNbLayers                func(api.CudaEngine) int32
	engineGetName                    func(api.CudaEngine) string
	engineGetNbOptimizationProfiles  func(api.CudaEngine) int32
	engineGetCapability              func(api.CudaEngine) int32
	engineGetHardwareCompatLevel     func(api.CudaEngine) int32
	engineGetNbAuxStreams            func(api.CudaEngine) int32
	engineHasImplicitBatchDimension  func(api.CudaEngine) bool
	engineCreateContext              func(api.CudaEngine) api.ExecutionContext
	engineCreateContextWithoutMemory func(api.CudaEngine) api.ExecutionContext

	// ExecutionContext
	contextDestroy                     func(api.ExecutionContext)
	contextSetInputShape               func(api.ExecutionContext, string, *int32, int32) bool
	contextGetTensorShape              func(api.ExecutionContext, string, *int32) int32
	contextGetTensorStrides            func(api.ExecutionContext, string, *int32) int32
	contextSetTensorAddress            func(api.ExecutionContext, string, uintptr) bool
	contextGetTensorAddress            func(api.ExecutionContext, string) uintptr
	contextSetInputTensorAddress       func(api.ExecutionContext, string, uintptr) bool
	contextGetOutputTensorAddress      func(api.ExecutionContext, string) uintptr
	contextAllInputDimensionsSpecified func(api.ExecutionContext) bool
	contextAllInputShapesSpecified     func(api.ExecutionContext) bool
	contextSetOptimizationProfileAsync func(api.ExecutionContext, int32, uintptr) bool
	contextGetOptimizationProfile      func(api.ExecutionContext) int32
	contextSetAuxStreams               func(api.ExecutionContext, *uintptr, int32)
	contextSetDeviceMemory             func(api.ExecutionContext, uintptr)
	contextSetName                     func(api.ExecutionContext, string)
	contextGetName                     func(api.ExecutionContext) string
	contextSetDebugSync                func(api.ExecutionContext, bool)
	contextGetDebugSync                func(api.ExecutionContext) bool
	contextSetEnqueueEmitsProfile      func(api.ExecutionContext, bool)
	contextGetEnqueueEmitsProfile      func(api.ExecutionContext) bool
	contextReportToProfiler            func(api.ExecutionContext) bool
	contextSetNvtxVerbosity            func(api.ExecutionContext, int32)
	contextSetPersistentCacheLimit     func(api.ExecutionContext, uint64)
	contextGetPersistentCacheLimit     func(api.ExecutionContext) uint64
	contextSetInputConsumedEvent       func(api.ExecutionContext, uintptr) bool
	contextGetInputConsumedEvent       func(api.ExecutionContext) uintptr
	contextGetMaxOutputSize            func(api.ExecutionContext, string) uint64
	contextEnqueueV3                   func(api.ExecutionContext, uintptr) bool

	// Plugin registry
	pluginLoadLibrary   func(string) uintptr
	pluginUnloadLibrary func(uintptr)
}

// Load opens the bridge library at path and registers all bridge symbols.
// It fails with a descriptive error if the library cannot be opened or a
// required symbol is missing.
func Load(path string) (*Funcs, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bridge library %q: %w", path, err)
	}

	// Check the full symbol table up front so a version mismatch surfaces
	// as one clear error instead of a panic in RegisterLibFunc.
	for _, name := range symbolNames {
		if _, err := purego.Dlsym(lib, name); err != nil {
			return nil, fmt.Errorf("bridge library %q is missing symbol %s: %w", path, name, err)
		}
	}

	f := &Funcs{}

	purego.RegisterLibFunc(&f.loggerCreate, lib, "trtgo_logger_create")
	purego.RegisterLibFunc(&f.loggerDestroy, lib, "trtgo_logger_destroy")

	purego.RegisterLibFunc(&f.runtimeCreate, lib, "trtgo_runtime_create")
	purego.RegisterLibFunc(&f.runtimeDestroy, lib, "trtgo_runtime_destroy")
	purego.RegisterLibFunc(&f.runtimeDeserialize, lib, "trtgo_runtime_deserialize")
	purego.RegisterLibFunc(&f.runtimeSetMaxThreads, lib, "trtgo_runtime_set_max_threads")
	purego.RegisterLibFunc(&f.runtimeGetMaxThreads, lib, "trtgo_runtime_get_max_threads")
	purego.RegisterLibFunc(&f.runtimeSetHostCodeAllowed, lib, "trtgo_runtime_set_engine_host_code_allowed")
	purego.RegisterLibFunc(&f.runtimeGetHostCodeAllowed, lib, "trtgo_runtime_get_engine_host_code_allowed")

	purego.RegisterLibFunc(&f.engineDestroy, lib, "trtgo_engine_destroy")
	purego.RegisterLibFunc(&f.engineGetNbIOTensors, lib, "trtgo_engine_get_nb_io_tensors")
	purego.RegisterLibFunc(&f.engineGetIOTensorName, lib, "trtgo_engine_get_io_tensor_name")
	purego.RegisterLibFunc(&f.engineGetTensorShape, lib, "trtgo_engine_get_tensor_shape")
	purego.RegisterLibFunc(&f.engineGetTensorDataType, lib, "trtgo_engine_get_tensor_dtype")
	purego.RegisterLibFunc(&f.engineGetTensorFormat, lib, "trtgo_engine_get_tensor_format")
	purego.RegisterLibFunc(&f.engineGetTensorIOMode, lib, "trtgo_engine_get_tensor_io_mode")
	purego.RegisterLibFunc(&f.engineGetTensorBytesPerComponent, lib, "trtgo_engine_get_tensor_bytes_per_component")
	purego.RegisterLibFunc(&f.engineGetTensorComponentsPerElem, lib, "trtgo_engine_get_tensor_components_per_element")
	purego.RegisterLibFunc(&f.engineGetTensorVectorizedDim, lib, "trtgo_engine_get_tensor_vectorized_dim")
	purego.RegisterLibFunc(&f.engineIsShapeInferenceIO, lib, "trtgo_engine_is_shape_inference_io")
	purego.RegisterLibFunc(&f.engineGetDeviceMemorySize, lib, "trtgo_engine_get_device_memory_size")
	purego.RegisterLibFunc(&f.engineIsRefittable, lib, "trtgo_engine_is_refittable")
	purego.RegisterLibFunc(&f.engineGetNbLayers, lib, "trtgo_engine_get_nb_layers")
	purego.RegisterLibFunc(&f.engineGetName, lib, "trtgo_engine_get_name")
	purego.RegisterLibFunc(&f.engineGetNbOptimizationProfiles, lib, "trtgo_engine_get_nb_optimization_profiles")
	purego.RegisterLibFunc(&f.engineGetCapability, lib, "trtgo_engine_get_capability")
	purego.RegisterLibFunc(&f.engineGetHardwareCompatLevel, lib, "trtgo_engine_get_hardware_compatibility_level")
	purego.RegisterLibFunc(&f.engineGetNbAuxStreams, lib, "trtgo_engine_get_nb_aux_streams")
	purego.RegisterLibFunc(&f.engineHasImplicitBatchDimension, lib, "trtgo_engine_has_implicit_batch_dimension")
	purego.RegisterLibFunc(&f.engineCreateContext, lib, "trtgo_engine_create_execution_context")
	purego.RegisterLibFunc(&f.engineCreateContextWithoutMemory, lib, "trtgo_engine_create_execution_context_without_device_memory")

	purego.RegisterLibFunc(&f.contextDestroy, lib, "trtgo_context_destroy")
	purego.RegisterLibFunc(&f.contextSetInputShape, lib, "trtgo_context_set_input_shape")
	purego.RegisterLibFunc(&f.contextGetTensorShape, lib, "trtgo_context_get_tensor_shape")
	purego.RegisterLibFunc(&f.contextGetTensorStrides, lib, "trtgo_context_get_tensor_strides")
	purego.RegisterLibFunc(&f.contextSetTensorAddress, lib, "trtgo_context_set_tensor_address")
	purego.RegisterLibFunc(&f.contextGetTensorAddress, lib, "trtgo_context_get_tensor_address")
	purego.RegisterLibFunc(&f.contextSetInputTensorAddress, lib, "trtgo_context_set_input_tensor_address")
	purego.RegisterLibFunc(&f.contextGetOutputTensorAddress, lib, "trtgo_context_get_output_tensor_address")
	purego.RegisterLibFunc(&f.contextAllInputDimensionsSpecified, lib, "trtgo_context_all_input_dimensions_specified")
	purego.RegisterLibFunc(&f.contextAllInputShapesSpecified, lib, "trtgo_context_all_input_shapes_specified")
	purego.RegisterLibFunc(&f.contextSetOptimizationProfileAsync, lib, "trtgo_context_set_optimization_profile_async")
	purego.RegisterLibFunc(&f.contextGetOptimizationProfile, lib, "trtgo_context_get_optimization_profile")
	purego.RegisterLibFunc(&f.contextSetAuxStreams, lib, "trtgo_context_set_aux_streams")
	purego.RegisterLibFunc(&f.contextSetDeviceMemory, lib, "trtgo_context_set_device_memory")
	purego.RegisterLibFunc(&f.contextSetName, lib, "trtgo_context_set_name")
	purego.RegisterLibFunc(&f.contextGetName, lib, "trtgo_context_get_name")
	purego.RegisterLibFunc(&f.contextSetDebugSync, lib, "trtgo_context_set_debug_sync")
	purego.RegisterLibFunc(&f.contextGetDebugSync, lib, "trtgo_context_get_debug_sync")
	purego.RegisterLibFunc(&f.contextSetEnqueueEmitsProfile, lib, "trtgo_context_set_enqueue_emits_profile")
	purego.RegisterLibFunc(&f.contextGetEnqueueEmitsProfile, lib, "trtgo_context_get_enqueue_emits_profile")
	purego.RegisterLibFunc(&f.contextReportToProfiler, lib, "trtgo_context_report_to_profiler")
	purego.RegisterLibFunc(&f.contextSetNvtxVerbosity, lib, "trtgo_context_set_nvtx_verbosity")
	purego.RegisterLibFunc(&f.contextSetPersistentCacheLimit, lib, "trtgo_context_set_persistent_cache_limit")
	purego.RegisterLibFunc(&f.contextGetPersistentCacheLimit, lib, "trtgo_context_get_persistent_cache_limit")
	purego.RegisterLibFunc(&f.contextSetInputConsumedEvent, lib, "trtgo_context_set_input_consumed_event")
	purego.RegisterLibFunc(&f.contextGetInputConsumedEvent, lib, "trtgo_context_get_input_consumed_event")
	purego.RegisterLibFunc(&f.contextGetMaxOutputSize, lib, "trtgo_context_get_max_output_size")
	purego.RegisterLibFunc(&f.contextEnqueueV3, lib, "trtgo_context_enqueue_v3")

	purego.RegisterLibFunc(&f.pluginLoadLibrary, lib, "trtgo_plugin_load_library")
	purego.RegisterLibFunc(&f.pluginUnloadLibrary, lib, "trtgo_plugin_unload_library")

	return f, nil
}

// cStringToString converts a C-style null-terminated string to a Go string.
func cStringToString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var length int
	for {
		if *(*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(ptr)) + uintptr(length))) == 0 {
			break
		}
		length++
	}
	return string(unsafe.Slice(ptr, length))
}

// Logger methods

// CreateLogger builds a native logger whose records are delivered to cb.
// The callback trampoline is process-lifetime: purego callbacks cannot be
// released, so loggers should be long-lived (one per process is typical).
func (f *Funcs) CreateLogger(cb api.LogCallback) api.Logger {
	trampoline := purego.NewCallback(func(severity int32, msg *byte) uintptr {
		cb(api.Severity(severity), cStringToString(msg))
		return 0
	})
	return f.loggerCreate(trampoline)
}

func (f *Funcs) DestroyLogger(l api.Logger) {
	f.loggerDestroy(l)
}

// Runtime methods

func (f *Funcs) CreateRuntime(l api.Logger) api.Runtime {
	return f.runtimeCreate(l)
}

func (f *Funcs) DestroyRuntime(r api.Runtime) {
	f.runtimeDestroy(r)
}

func (f *Funcs) DeserializeCudaEngine(r api.Runtime, data unsafe.Pointer, size uintptr) api.CudaEngine {
	return f.runtimeDeserialize(r, data, size)
}

func (f *Funcs) SetMaxThreads(r api.Runtime, n int32) bool {
	return f.runtimeSetMaxThreads(r, n)
}

func (f *Funcs) GetMaxThreads(r api.Runtime) int32 {
	return f.runtimeGetMaxThreads(r)
}

func (f *Funcs) SetEngineHostCodeAllowed(r api.Runtime, allowed bool) {
	f.runtimeSetHostCodeAllowed(r, allowed)
}

func (f *Funcs) GetEngineHostCodeAllowed(r api.Runtime) bool {
	return f.runtimeGetHostCodeAllowed(r)
}

// Engine methods

func (f *Funcs) DestroyCudaEngine(e api.CudaEngine) {
	f.engineDestroy(e)
}

func (f *Funcs) GetNbIOTensors(e api.CudaEngine) int32 {
	return f.engineGetNbIOTensors(e)
}

func (f *Funcs) GetIOTensorName(e api.CudaEngine, index int32) string {
	return f.engineGetIOTensorName(e, index)
}

func (f *Funcs) GetTensorShape(e api.CudaEngine, name string, dims *int32) int32 {
	return f.engineGetTensorShape(e, name, dims)
}

func (f *Funcs) GetTensorDataType(e api.CudaEngine, name string) api.DataType {
	return api.DataType(f.engineGetTensorDataType(e, name))
}

func (f *Funcs) GetTensorFormat(e api.CudaEngine, name string) api.TensorFormat {
	return api.TensorFormat(f.engineGetTensorFormat(e, name))
}

func (f *Funcs) GetTensorIOMode(e api.CudaEngine, name string) api.TensorIOMode {
	return api.TensorIOMode(f.engineGetTensorIOMode(e, name))
}

func (f *Funcs) GetTensorBytesPerComponent(e api.CudaEngine, name string) int32 {
	return f.engineGetTensorBytesPerComponent(e, name)
}

func (f *Funcs) GetTensorComponentsPerElement(e api.CudaEngine, name string) int32 {
	return f.engineGetTensorComponentsPerElem(e, name)
}

func (f *Funcs) GetTensorVectorizedDim(e api.CudaEngine, name string) int32 {
	return f.engineGetTensorVectorizedDim(e, name)
}

func (f *Funcs) IsShapeInferenceIO(e api.CudaEngine, name string) bool {
	return f.engineIsShapeInferenceIO(e, name)
}

func (f *Funcs) GetDeviceMemorySize(e api.CudaEngine) uint64 {
	return f.engineGetDeviceMemorySize(e)
}

func (f *Funcs) IsRefittable(e api.CudaEngine) bool {
	return f.engineIsRefittable(e)
}

func (f *Funcs) GetNbLayers(e api.CudaEngine) int32 {
	return f.engineGetNbLayers(e)
}

func (f *Funcs) GetEngineName(e api.CudaEngine) string {
	return f.engineGetName(e)
}

func (f *Funcs) GetNbOptimizationProfiles(e api.CudaEngine) int32 {
	return f.engineGetNbOptimizationProfiles(e)
}

func (f *Funcs) GetEngineCapability(e api.CudaEngine) api.EngineCapability {
	return api.EngineCapability(f.engineGetCapability(e))
}

func (f *Funcs) GetHardwareCompatibilityLevel(e api.CudaEngine) api.HardwareCompatibilityLevel {
	return api.HardwareCompatibilityLevel(f.engineGetHardwareCompatLevel(e))
}

func (f *Funcs) GetNbAuxStreams(e api.CudaEngine) int32 {
	return f.engineGetNbAuxStreams(e)
}

func (f *Funcs) HasImplicitBatchDimension(e api.CudaEngine) bool {
	return f.engineHasImplicitBatchDimension(e)
}

func (f *Funcs) CreateExecutionContext(e api.CudaEngine) api.ExecutionContext {
	return f.engineCreateContext(e)
}

func (f *Funcs) CreateExecutionContextWithoutDeviceMemory(e api.CudaEngine) api.ExecutionContext {
	return f.engineCreateContextWithoutMemory(e)
}

// ExecutionContext methods

func (f *Funcs) DestroyExecutionContext(c api.ExecutionContext) {
	f.contextDestroy(c)
}

func (f *Funcs) SetInputShape(c api.ExecutionContext, name string, dims *int32, nbDims int32) bool {
	return f.contextSetInputShape(c, name, dims, nbDims)
}

func (f *Funcs) GetContextTensorShape(c api.ExecutionContext, name string, dims *int32) int32 {
	return f.contextGetTensorShape(c, name, dims)
}

func (f *Funcs) GetTensorStrides(c api.ExecutionContext, name string, dims *int32) int32 {
	return f.contextGetTensorStrides(c, name, dims)
}

func (f *Funcs) SetTensorAddress(c api.ExecutionContext, name string, address uintptr) bool {
	return f.contextSetTensorAddress(c, name, address)
}

func (f *Funcs) GetTensorAddress(c api.ExecutionContext, name string) uintptr {
	return f.contextGetTensorAddress(c, name)
}

func (f *Funcs) SetInputTensorAddress(c api.ExecutionContext, name string, address uintptr) bool {
	return f.contextSetInputTensorAddress(c, name, address)
}

func (f *Funcs) GetOutputTensorAddress(c api.ExecutionContext, name string) uintptr {
	return f.contextGetOutputTensorAddress(c, name)
}

func (f *Funcs) AllInputDimensionsSpecified(c api.ExecutionContext) bool {
	return f.contextAllInputDimensionsSpecified(c)
}

func (f *Funcs) AllInputShapesSpecified(c api.ExecutionContext) bool {
	return f.contextAllInputShapesSpecified(c)
}

func (f *Funcs) SetOptimizationProfileAsync(c api.ExecutionContext, profile int32, stream uintptr) bool {
	return f.contextSetOptimizationProfileAsync(c, profile, stream)
}

func (f *Funcs) GetOptimizationProfile(c api.ExecutionContext) int32 {
	return f.contextGetOptimizationProfile(c)
}

func (f *Funcs) SetAuxStreams(c api.ExecutionContext, streams *uintptr, nbStreams int32) {
	f.contextSetAuxStreams(c, streams, nbStreams)
}

func (f *Funcs) SetDeviceMemory(c api.ExecutionContext, address uintptr) {
	f.contextSetDeviceMemory(c, address)
}

func (f *Funcs) SetContextName(c api.ExecutionContext, name string) {
	f.contextSetName(c, name)
}

func (f *Funcs) GetContextName(c api.ExecutionContext) string {
	return f.contextGetName(c)
}

func (f *Funcs) SetDebugSync(c api.ExecutionContext, sync bool) {
	f.contextSetDebugSync(c, sync)
}

func (f *Funcs) GetDebugSync(c api.ExecutionContext) bool {
	return f.contextGetDebugSync(c)
}

func (f *Funcs) SetEnqueueEmitsProfile(c api.ExecutionContext, emits bool) {
	f.contextSetEnqueueEmitsProfile(c, emits)
}

func (f *Funcs) GetEnqueueEmitsProfile(c api.ExecutionContext) bool {
	return f.contextGetEnqueueEmitsProfile(c)
}

func (f *Funcs) ReportToProfiler(c api.ExecutionContext) bool {
	return f.contextReportToProfiler(c)
}

func (f *Funcs) SetNvtxVerbosity(c api.ExecutionContext, verbosity api.ProfilingVerbosity) {
	f.contextSetNvtxVerbosity(c, int32(verbosity))
}

func (f *Funcs) SetPersistentCacheLimit(c api.ExecutionContext, limit uint64) {
	f.contextSetPersistentCacheLimit(c, limit)
}

func (f *Funcs) GetPersistentCacheLimit(c api.ExecutionContext) uint64 {
	return f.contextGetPersistentCacheLimit(c)
}

func (f *Funcs) SetInputConsumedEvent(c api.ExecutionContext, event uintptr) bool {
	return f.contextSetInputConsumedEvent(c, event)
}

func (f *Funcs) GetInputConsumedEvent(c api.ExecutionContext) uintptr {
	return f.contextGetInputConsumedEvent(c)
}

func (f *Funcs) GetMaxOutputSize(c api.ExecutionContext, name string) uint64 {
	return f.contextGetMaxOutputSize(c, name)
}

func (f *Funcs) EnqueueV3(c api.ExecutionContext, stream uintptr) bool {
	return f.contextEnqueueV3(c, stream)
}

// Plugin registry methods

func (f *Funcs) LoadPluginLibrary(path string) uintptr {
	return f.pluginLoadLibrary(path)
}

func (f *Funcs) UnloadPluginLibrary(handle uintptr) {
	f.pluginUnloadLibrary(handle)
}
