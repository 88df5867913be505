package hal

import "math"

// DeviceSize converts a logical window size to device pixels. Scales that
// are not positive count as 1.
func DeviceSize(w, h int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Ceil(float64(w) * scale)), int(math.Ceil(float64(h) * scale))
}
