package tensorrt

import (
	"strconv"
	"strings"

	"github.com/vivym/tensorrt-go/tensorrt/internal/api"
)

// MaxDims is the maximum tensor rank supported by the native runtime.
const MaxDims = api.MaxDims

// DynamicDimension is the sentinel extent of a dimension whose concrete size
// is resolved per execution context rather than at engine build time.
const DynamicDimension int32 = -1

// Dims is an ordered sequence of tensor extents. Length equals the tensor's
// rank and never exceeds MaxDims. An extent equal to DynamicDimension means
// the dimension is dynamic.
type Dims []int32

// IsFullySpecified reports whether every extent is a concrete (non-dynamic)
// size.
func (d Dims) IsFullySpecified() bool {
	for _, extent := range d {
		if extent < 0 {
			return false
		}
	}
	return true
}

// Volume returns the number of elements implied by the extents.
// The result is only meaningful when d is fully specified.
func (d Dims) Volume() int64 {
	volume := int64(1)
	for _, extent := range d {
		volume *= int64(extent)
	}
	return volume
}

// String formats the extents as "[1x3x224x224]". Dynamic extents render
// as "-1".
func (d Dims) String() string {
	if len(d) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, extent := range d {
		if i > 0 {
			b.WriteByte('x')
		}
		b.WriteString(strconv.FormatInt(int64(extent), 10))
	}
	b.WriteByte(']')
	return b.String()
}

// dimsFromBuffer copies nbDims extents out of a fixed marshalling buffer.
// A negative rank (the native error sentinel) yields nil.
func dimsFromBuffer(buf *[MaxDims]int32, nbDims int32) Dims {
	if nbDims < 0 {
		return nil
	}
	if nbDims > MaxDims {
		nbDims = MaxDims
	}
	dims := make(Dims, nbDims)
	copy(dims, buf[:nbDims])
	return dims
}
