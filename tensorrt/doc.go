// Package tensorrt provides Go bindings for the NVIDIA TensorRT inference
// runtime using purego.
//
// TensorRT exposes only a C++ API, so the bindings call into a small C bridge
// library (built from the cshim directory of this repository) that forwards
// each call to the native runtime. No cgo is required on the Go side.
//
// The package wraps the native object hierarchy behind owning adapter types:
// a Logger feeds a Runtime, a Runtime deserializes Engines, and an Engine
// creates ExecutionContexts. Adapters must be closed in reverse creation
// order; each adapter keeps its owner reachable so the native destruction
// order constraint is preserved even under garbage collection.
//
// Device memory addresses, CUDA streams and events are passed through as
// opaque handles. Allocating device memory and synchronizing streams is the
// caller's responsibility, outside the scope of these bindings.
package tensorrt
