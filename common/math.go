package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// ClampSpan keeps a window of length size starting at v inside [0, limit].
// A window larger than the limit is centered.
func ClampSpan(v, size, limit float64) float64 {
	if size >= limit {
		return (limit - size) / 2
	}
	return Clamp(v, 0, limit-size)
}
