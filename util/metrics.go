package util

// MetricsBucketsMilliLongSeconds are histogram buckets from 64ms to about 131s,
// sized for network round trips and local file access.
var MetricsBucketsMilliLongSeconds = []float64{
	64e-3, 128e-3, 256e-3, 512e-3, 1024e-3, 2048e-3, 4096e-3, 8192e-3, 16384e-3, 32768e-3, 65536e-3, 131072e-3,
}
