package tensorrt

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
)

// The fake bridge API backs the binding tests so the contract can be
// verified without TensorRT, a GPU, or the bridge library. It models just
// enough native semantics: engine blobs with a magic prefix, per-context
// shape and address tables, and enqueue acceptance rules.

const fakeEngineMagic = "TRTENG"

type fakeTensor struct {
	name   string
	dims   Dims
	dtype  DataType
	format TensorFormat
	mode   TensorIOMode
}

type fakeEngineSpec struct {
	name          string
	tensors       []fakeTensor
	deviceMemSize uint64
	refittable    bool
	numLayers     int32
	numProfiles   int32
	numAuxStreams int32
}

func (s *fakeEngineSpec) tensor(name string) *fakeTensor {
	for i := range s.tensors {
		if s.tensors[i].name == name {
			return &s.tensors[i]
		}
	}
	return nil
}

type fakeContext struct {
	spec          *fakeEngineSpec
	shapes        map[string]Dims
	addresses     map[string]uintptr
	name          string
	debugSync     bool
	emitsProfile  bool
	nvtx          api.ProfilingVerbosity
	cacheLimit    uint64
	auxStreams    []uintptr
	deviceMemory  uintptr
	profile       int32
	inputConsumed uintptr
	enqueues      int
}

func newFakeContext(spec *fakeEngineSpec) *fakeContext {
	c := &fakeContext{
		spec:      spec,
		shapes:    make(map[string]Dims, len(spec.tensors)),
		addresses: make(map[string]uintptr, len(spec.tensors)),
		profile:   -1,
	}
	for _, t := range spec.tensors {
		dims := make(Dims, len(t.dims))
		copy(dims, t.dims)
		c.shapes[t.name] = dims
	}
	return c
}

func (c *fakeContext) allInputDimensionsSpecified() bool {
	for _, t := range c.spec.tensors {
		if t.mode != TensorIOModeInput {
			continue
		}
		if !c.shapes[t.name].IsFullySpecified() {
			return false
		}
	}
	return true
}

func (c *fakeContext) allAddressesBound() bool {
	for _, t := range c.spec.tensors {
		if c.addresses[t.name] == 0 {
			return false
		}
	}
	return true
}

type fakeAPI struct {
	mu sync.Mutex

	// engineSpec is attached to every successfully deserialized blob.
	engineSpec *fakeEngineSpec

	// shapeAcceptor, when set, decides whether SetInputShape accepts a
	// shape. The default accepts everything with matching rank.
	shapeAcceptor func(name string, dims Dims) bool

	// failRuntimeCreate and friends simulate native allocation failure.
	failRuntimeCreate bool
	failContextCreate bool

	// pluginLibs lists loadable plugin paths.
	pluginLibs map[string]bool

	nextHandle uintptr
	callbacks  map[api.Logger]api.LogCallback
	runtimes   map[api.Runtime]*fakeRuntimeState
	engines    map[api.CudaEngine]*fakeEngineSpec
	contexts   map[api.ExecutionContext]*fakeContext

	destroyedLoggers  int
	destroyedRuntimes int
	destroyedEngines  int
	destroyedContexts int
	unloadedPlugins   []uintptr
}

type fakeRuntimeState struct {
	maxThreads      int32
	hostCodeAllowed bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		engineSpec: defaultEngineSpec(),
		pluginLibs: make(map[string]bool),
		callbacks:  make(map[api.Logger]api.LogCallback),
		runtimes:   make(map[api.Runtime]*fakeRuntimeState),
		engines:    make(map[api.CudaEngine]*fakeEngineSpec),
		contexts:   make(map[api.ExecutionContext]*fakeContext),
	}
}

func defaultEngineSpec() *fakeEngineSpec {
	return &fakeEngineSpec{
		name: "unit-test-engine",
		tensors: []fakeTensor{
			{
				name:   "images",
				dims:   Dims{DynamicDimension, 3, 224, 224},
				dtype:  DataTypeFloat,
				format: TensorFormatLinear,
				mode:   TensorIOModeInput,
			},
			{
				name:   "scale",
				dims:   Dims{1, 2},
				dtype:  DataTypeFloat,
				format: TensorFormatLinear,
				mode:   TensorIOModeInput,
			},
			{
				name:   "logits",
				dims:   Dims{DynamicDimension, 1000},
				dtype:  DataTypeFloat,
				format: TensorFormatLinear,
				mode:   TensorIOModeOutput,
			},
		},
		deviceMemSize: 1 << 20,
		numLayers:     42,
		numProfiles:   1,
		numAuxStreams: 2,
	}
}

func fakeEngineBlob() []byte {
	return append([]byte(fakeEngineMagic), []byte("serialized-network")...)
}

func (f *fakeAPI) handle() uintptr {
	f.nextHandle++
	return f.nextHandle
}

// emitNativeLog simulates a log record originating inside the native
// library, delivered on whatever goroutine calls it.
func (f *fakeAPI) emitNativeLog(l api.Logger, severity Severity, msg string) {
	f.mu.Lock()
	cb := f.callbacks[l]
	f.mu.Unlock()
	if cb != nil {
		cb(severity, msg)
	}
}

// Logger

func (f *fakeAPI) CreateLogger(cb api.LogCallback) api.Logger {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := api.Logger(f.handle())
	f.callbacks[h] = cb
	return h
}

func (f *fakeAPI) DestroyLogger(l api.Logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.callbacks, l)
	f.destroyedLoggers++
}

// Runtime

func (f *fakeAPI) CreateRuntime(l api.Logger) api.Runtime {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRuntimeCreate {
		return 0
	}
	h := api.Runtime(f.handle())
	f.runtimes[h] = &fakeRuntimeState{maxThreads: 1}
	return h
}

func (f *fakeAPI) DestroyRuntime(r api.Runtime) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.runtimes, r)
	f.destroyedRuntimes++
}

func (f *fakeAPI) DeserializeCudaEngine(r api.Runtime, data unsafe.Pointer, size uintptr) api.CudaEngine {
	blob := unsafe.Slice((*byte)(data), size)
	if len(blob) < len(fakeEngineMagic) || string(blob[:len(fakeEngineMagic)]) != fakeEngineMagic {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := api.CudaEngine(f.handle())
	f.engines[h] = f.engineSpec
	return h
}

func (f *fakeAPI) SetMaxThreads(r api.Runtime, n int32) bool {
	if n <= 0 {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runtimes[r].maxThreads = n
	return true
}

func (f *fakeAPI) GetMaxThreads(r api.Runtime) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runtimes[r].maxThreads
}

func (f *fakeAPI) SetEngineHostCodeAllowed(r api.Runtime, allowed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runtimes[r].hostCodeAllowed = allowed
}

func (f *fakeAPI) GetEngineHostCodeAllowed(r api.Runtime) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runtimes[r].hostCodeAllowed
}

// Engine

func (f *fakeAPI) spec(e api.CudaEngine) *fakeEngineSpec {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.engines[e]
}

func (f *fakeAPI) DestroyCudaEngine(e api.CudaEngine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.engines, e)
	f.destroyedEngines++
}

func (f *fakeAPI) GetNbIOTensors(e api.CudaEngine) int32 {
	return int32(len(f.spec(e).tensors))
}

func (f *fakeAPI) GetIOTensorName(e api.CudaEngine, index int32) string {
	return f.spec(e).tensors[index].name
}

func (f *fakeAPI) GetTensorShape(e api.CudaEngine, name string, dims *int32) int32 {
	return writeDims(f.spec(e).tensor(name).dims, dims)
}

func (f *fakeAPI) GetTensorDataType(e api.CudaEngine, name string) api.DataType {
	return f.spec(e).tensor(name).dtype
}

func (f *fakeAPI) GetTensorFormat(e api.CudaEngine, name string) api.TensorFormat {
	return f.spec(e).tensor(name).format
}

func (f *fakeAPI) GetTensorIOMode(e api.CudaEngine, name string) api.TensorIOMode {
	return f.spec(e).tensor(name).mode
}

func (f *fakeAPI) GetTensorBytesPerComponent(e api.CudaEngine, name string) int32 {
	return int32(DataTypeSize(f.spec(e).tensor(name).dtype))
}

func (f *fakeAPI) GetTensorComponentsPerElement(e api.CudaEngine, name string) int32 {
	return 1
}

func (f *fakeAPI) GetTensorVectorizedDim(e api.CudaEngine, name string) int32 {
	return -1
}

func (f *fakeAPI) IsShapeInferenceIO(e api.CudaEngine, name string) bool {
	return false
}

func (f *fakeAPI) GetDeviceMemorySize(e api.CudaEngine) uint64 {
	return f.spec(e).deviceMemSize
}

func (f *fakeAPI) IsRefittable(e api.CudaEngine) bool {
	return f.spec(e).refittable
}

func (f *fakeAPI) GetNbLayers(e api.CudaEngine) int32 {
	return f.spec(e).numLayers
}

func (f *fakeAPI) GetEngineName(e api.CudaEngine) string {
	return f.spec(e).name
}

func (f *fakeAPI) GetNbOptimizationProfiles(e api.CudaEngine) int32 {
	return f.spec(e).numProfiles
}

func (f *fakeAPI) GetEngineCapability(e api.CudaEngine) api.EngineCapability {
	return EngineCapabilityStandard
}

func (f *fakeAPI) GetHardwareCompatibilityLevel(e api.CudaEngine) api.HardwareCompatibilityLevel {
	return HardwareCompatibilityNone
}

func (f *fakeAPI) GetNbAuxStreams(e api.CudaEngine) int32 {
	return f.spec(e).numAuxStreams
}

func (f *fakeAPI) HasImplicitBatchDimension(e api.CudaEngine) bool {
	return false
}

func (f *fakeAPI) CreateExecutionContext(e api.CudaEngine) api.ExecutionContext {
	spec := f.spec(e)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failContextCreate {
		return 0
	}
	h := api.ExecutionContext(f.handle())
	f.contexts[h] = newFakeContext(spec)
	return h
}

func (f *fakeAPI) CreateExecutionContextWithoutDeviceMemory(e api.CudaEngine) api.ExecutionContext {
	return f.CreateExecutionContext(e)
}

// ExecutionContext

func (f *fakeAPI) ctx(c api.ExecutionContext) *fakeContext {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contexts[c]
}

func (f *fakeAPI) DestroyExecutionContext(c api.ExecutionContext) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contexts, c)
	f.destroyedContexts++
}

func (f *fakeAPI) SetInputShape(c api.ExecutionContext, name string, dims *int32, nbDims int32) bool {
	fc := f.ctx(c)
	shape := make(Dims, nbDims)
	copy(shape, unsafe.Slice(dims, nbDims))
	if len(shape) != len(fc.spec.tensor(name).dims) {
		return false
	}
	if f.shapeAcceptor != nil && !f.shapeAcceptor(name, shape) {
		return false
	}
	fc.shapes[name] = shape
	return true
}

func (f *fakeAPI) GetContextTensorShape(c api.ExecutionContext, name string, dims *int32) int32 {
	return writeDims(f.ctx(c).shapes[name], dims)
}

func (f *fakeAPI) GetTensorStrides(c api.ExecutionContext, name string, dims *int32) int32 {
	// Row-major strides over the current shape.
	shape := f.ctx(c).shapes[name]
	strides := make(Dims, len(shape))
	acc := int32(1)
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		if shape[i] > 0 {
			acc *= shape[i]
		}
	}
	return writeDims(strides, dims)
}

func (f *fakeAPI) SetTensorAddress(c api.ExecutionContext, name string, address uintptr) bool {
	f.ctx(c).addresses[name] = address
	return true
}

func (f *fakeAPI) GetTensorAddress(c api.ExecutionContext, name string) uintptr {
	return f.ctx(c).addresses[name]
}

func (f *fakeAPI) SetInputTensorAddress(c api.ExecutionContext, name string, address uintptr) bool {
	f.ctx(c).addresses[name] = address
	return true
}

func (f *fakeAPI) GetOutputTensorAddress(c api.ExecutionContext, name string) uintptr {
	return f.ctx(c).addresses[name]
}

func (f *fakeAPI) AllInputDimensionsSpecified(c api.ExecutionContext) bool {
	return f.ctx(c).allInputDimensionsSpecified()
}

func (f *fakeAPI) AllInputShapesSpecified(c api.ExecutionContext) bool {
	return f.ctx(c).allInputDimensionsSpecified()
}

func (f *fakeAPI) SetOptimizationProfileAsync(c api.ExecutionContext, profile int32, stream uintptr) bool {
	fc := f.ctx(c)
	if profile < 0 || profile >= fc.spec.numProfiles {
		return false
	}
	fc.profile = profile
	return true
}

func (f *fakeAPI) GetOptimizationProfile(c api.ExecutionContext) int32 {
	return f.ctx(c).profile
}

func (f *fakeAPI) SetAuxStreams(c api.ExecutionContext, streams *uintptr, nbStreams int32) {
	fc := f.ctx(c)
	fc.auxStreams = append([]uintptr(nil), unsafe.Slice(streams, nbStreams)...)
}

func (f *fakeAPI) SetDeviceMemory(c api.ExecutionContext, address uintptr) {
	f.ctx(c).deviceMemory = address
}

func (f *fakeAPI) SetContextName(c api.ExecutionContext, name string) {
	f.ctx(c).name = name
}

func (f *fakeAPI) GetContextName(c api.ExecutionContext) string {
	return f.ctx(c).name
}

func (f *fakeAPI) SetDebugSync(c api.ExecutionContext, sync bool) {
	f.ctx(c).debugSync = sync
}

func (f *fakeAPI) GetDebugSync(c api.ExecutionContext) bool {
	return f.ctx(c).debugSync
}

func (f *fakeAPI) SetEnqueueEmitsProfile(c api.ExecutionContext, emits bool) {
	f.ctx(c).emitsProfile = emits
}

func (f *fakeAPI) GetEnqueueEmitsProfile(c api.ExecutionContext) bool {
	return f.ctx(c).emitsProfile
}

func (f *fakeAPI) ReportToProfiler(c api.ExecutionContext) bool {
	return true
}

func (f *fakeAPI) SetNvtxVerbosity(c api.ExecutionContext, verbosity api.ProfilingVerbosity) {
	f.ctx(c).nvtx = verbosity
}

func (f *fakeAPI) SetPersistentCacheLimit(c api.ExecutionContext, limit uint64) {
	f.ctx(c).cacheLimit = limit
}

func (f *fakeAPI) GetPersistentCacheLimit(c api.ExecutionContext) uint64 {
	return f.ctx(c).cacheLimit
}

func (f *fakeAPI) SetInputConsumedEvent(c api.ExecutionContext, event uintptr) bool {
	f.ctx(c).inputConsumed = event
	return true
}

func (f *fakeAPI) GetInputConsumedEvent(c api.ExecutionContext) uintptr {
	return f.ctx(c).inputConsumed
}

func (f *fakeAPI) GetMaxOutputSize(c api.ExecutionContext, name string) uint64 {
	return 4096
}

func (f *fakeAPI) EnqueueV3(c api.ExecutionContext, stream uintptr) bool {
	fc := f.ctx(c)
	if !fc.allInputDimensionsSpecified() || !fc.allAddressesBound() {
		return false
	}
	fc.enqueues++
	return true
}

// Plugin registry

func (f *fakeAPI) LoadPluginLibrary(path string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.pluginLibs[path] {
		return 0
	}
	return f.handle()
}

func (f *fakeAPI) UnloadPluginLibrary(handle uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unloadedPlugins = append(f.unloadedPlugins, handle)
}

// writeDims copies extents into a marshalling buffer and returns the rank.
func writeDims(src Dims, dst *int32) int32 {
	out := unsafe.Slice(dst, MaxDims)
	for i, extent := range src {
		if i >= MaxDims {
			break
		}
		out[i] = extent
	}
	return int32(len(src))
}

// newTestRuntime builds a Runtime over a fresh fakeAPI.
func newTestRuntime(t *testing.T, config *RuntimeConfig) (*Runtime, *fakeAPI) {
	t.Helper()
	fake := newFakeAPI()
	runtime, err := newRuntime(fake, config)
	if err != nil {
		t.Fatalf("Failed to create runtime: %v", err)
	}
	t.Cleanup(runtime.Close)
	return runtime, fake
}

// newTestEngine builds an Engine from the default fake blob.
func newTestEngine(t *testing.T, config *RuntimeConfig) (*Engine, *fakeAPI) {
	t.Helper()
	runtime, fake := newTestRuntime(t, config)
	engine, err := runtime.Deserialize(fakeEngineBlob())
	if err != nil {
		t.Fatalf("Failed to deserialize engine: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine, fake
}
