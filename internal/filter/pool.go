package filter

import "sync"

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// planePool holds scratch luminance planes.
var planePool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 512*512)}
	},
}

// maxPooledPlane caps what PutPlane retains (2048x2048).
const maxPooledPlane = 2048 * 2048

// GetPlane retrieves a zeroed plane of exactly n values from the pool.
func GetPlane(n int) []float32 {
	wrapper := planePool.Get().(*floatBuffer)

	if cap(wrapper.data) < n {
		planePool.Put(wrapper)
		return make([]float32, n)
	}

	plane := wrapper.data[:n]
	clear(plane)
	return plane
}

// PutPlane returns a plane to the pool. The caller must not use it again.
func PutPlane(plane []float32) {
	if plane == nil || cap(plane) > maxPooledPlane {
		return
	}
	planePool.Put(&floatBuffer{data: plane[:cap(plane)]})
}
