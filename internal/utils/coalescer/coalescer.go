// Package coalescer selects the first non-zero value out of a list of
// candidates, which is handy for layering configured values over defaults.
package coalescer

// Coalesce returns the first value that is not the zero value of T. If all
// values are zero, it returns the zero value.
//
// Example usage:
//
//	addr := Coalesce(config.HTTPAddr, envAddr, "[::1]:14080")
//	server := Coalesce(config.Server, defaultServerConfig())
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
