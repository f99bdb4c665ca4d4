package tensorrt

import "github.com/vivym/tensorrt-go/tensorrt/internal/api"

// DeviceAddress is an opaque device (GPU) memory address. The bindings never
// dereference it; only the native runtime does. A zero address means unbound.
type DeviceAddress uintptr

// Stream is an opaque CUDA stream handle obtained from a CUDA binding or
// native code. Work enqueued on the same stream executes in submission order.
type Stream uintptr

// Event is an opaque CUDA event handle.
type Event uintptr

// PluginLibraryHandle identifies a plugin library loaded into the
// process-global plugin registry. Zero is the failure sentinel.
type PluginLibraryHandle uintptr

// Severity represents logger severity levels, most severe first.
type Severity = api.Severity

// Logger severity levels.
const (
	// SeverityInternalError indicates an internal error in the native library.
	SeverityInternalError Severity = 0
	// SeverityError indicates an application error.
	SeverityError Severity = 1
	// SeverityWarning indicates behavior that is potentially unintended.
	SeverityWarning Severity = 2
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = 3
	// SeverityVerbose indicates detailed diagnostic messages.
	SeverityVerbose Severity = 4
)

// DataType represents tensor element data types.
type DataType = api.DataType

// Tensor element data types.
const (
	// DataTypeFloat is 32-bit floating point.
	DataTypeFloat DataType = 0
	// DataTypeHalf is IEEE 16-bit floating point.
	DataTypeHalf DataType = 1
	// DataTypeInt8 is signed 8-bit integer.
	DataTypeInt8 DataType = 2
	// DataTypeInt32 is signed 32-bit integer.
	DataTypeInt32 DataType = 3
	// DataTypeBool is 8-bit boolean.
	DataTypeBool DataType = 4
	// DataTypeUint8 is unsigned 8-bit integer.
	DataTypeUint8 DataType = 5
	// DataTypeFP8 is 8-bit floating point (E4M3).
	DataTypeFP8 DataType = 6
	// DataTypeBF16 is brain float 16.
	DataTypeBF16 DataType = 7
	// DataTypeInt64 is signed 64-bit integer.
	DataTypeInt64 DataType = 8
	// DataTypeInt4 is signed 4-bit integer, packed two per byte.
	DataTypeInt4 DataType = 9
)

// DataTypeSize returns the size in bytes of one element of t,
// or 0 for sub-byte and unknown types.
func DataTypeSize(t DataType) int {
	switch t {
	case DataTypeFloat, DataTypeInt32:
		return 4
	case DataTypeHalf, DataTypeBF16:
		return 2
	case DataTypeInt8, DataTypeBool, DataTypeUint8, DataTypeFP8:
		return 1
	case DataTypeInt64:
		return 8
	default:
		return 0
	}
}

// TensorFormat represents tensor memory layout formats.
type TensorFormat = api.TensorFormat

// Tensor memory layouts.
const (
	// TensorFormatLinear is row-major linear memory.
	TensorFormatLinear TensorFormat = 0
	// TensorFormatCHW2 packs two channel values per vector element.
	TensorFormatCHW2 TensorFormat = 1
	// TensorFormatHWC8 is channel-last with channels padded to multiples of 8.
	TensorFormatHWC8 TensorFormat = 2
	// TensorFormatCHW4 packs four channel values per vector element.
	TensorFormatCHW4 TensorFormat = 3
	// TensorFormatCHW16 packs sixteen channel values per vector element.
	TensorFormatCHW16 TensorFormat = 4
	// TensorFormatCHW32 packs thirty-two channel values per vector element.
	TensorFormatCHW32 TensorFormat = 5
	// TensorFormatDHWC8 is the 3-D analog of HWC8.
	TensorFormatDHWC8 TensorFormat = 6
	// TensorFormatCDHW32 is the 3-D analog of CHW32.
	TensorFormatCDHW32 TensorFormat = 7
	// TensorFormatHWC is unpadded channel-last.
	TensorFormatHWC TensorFormat = 8
	// TensorFormatDLALinear is DLA planar format.
	TensorFormatDLALinear TensorFormat = 9
	// TensorFormatDLAHWC4 is DLA image format.
	TensorFormatDLAHWC4 TensorFormat = 10
	// TensorFormatHWC16 is channel-last with channels padded to multiples of 16.
	TensorFormatHWC16 TensorFormat = 11
	// TensorFormatDHWC is the 3-D analog of HWC.
	TensorFormatDHWC TensorFormat = 12
)

// TensorIOMode indicates whether a tensor is an engine input or output.
type TensorIOMode = api.TensorIOMode

// Tensor I/O modes.
const (
	// TensorIOModeNone indicates the tensor is neither an input nor an output.
	TensorIOModeNone TensorIOMode = 0
	// TensorIOModeInput indicates an engine input tensor.
	TensorIOModeInput TensorIOMode = 1
	// TensorIOModeOutput indicates an engine output tensor.
	TensorIOModeOutput TensorIOMode = 2
)

// EngineCapability represents the capability level an engine was built for.
type EngineCapability = api.EngineCapability

// Engine capability levels.
const (
	// EngineCapabilityStandard is the full TensorRT feature set.
	EngineCapabilityStandard EngineCapability = 0
	// EngineCapabilitySafety restricts to the safety-certified subset.
	EngineCapabilitySafety EngineCapability = 1
	// EngineCapabilityDLAStandalone restricts to DLA-loadable engines.
	EngineCapabilityDLAStandalone EngineCapability = 2
)

// HardwareCompatibilityLevel represents hardware compatibility of an engine.
type HardwareCompatibilityLevel = api.HardwareCompatibilityLevel

// Hardware compatibility levels.
const (
	// HardwareCompatibilityNone means the engine runs only on the GPU
	// architecture it was built for.
	HardwareCompatibilityNone HardwareCompatibilityLevel = 0
	// HardwareCompatibilityAmperePlus means the engine runs on Ampere and
	// newer architectures.
	HardwareCompatibilityAmperePlus HardwareCompatibilityLevel = 1
)

// ProfilingVerbosity controls NVTX annotation detail during enqueue.
type ProfilingVerbosity = api.ProfilingVerbosity

// Profiling verbosity levels.
const (
	// ProfilingVerbosityLayerNamesOnly annotates layer names only.
	ProfilingVerbosityLayerNamesOnly ProfilingVerbosity = 0
	// ProfilingVerbosityNone disables NVTX annotations.
	ProfilingVerbosityNone ProfilingVerbosity = 1
	// ProfilingVerbosityDetailed annotates full layer details.
	ProfilingVerbosityDetailed ProfilingVerbosity = 2
)
