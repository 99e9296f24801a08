package health

import "runtime"

const bytesPerMB = 1024 * 1024

// MemStats holds the raw byte counts the memory classification runs over.
type MemStats struct {
	// HeapUsed is the number of bytes of allocated heap objects.
	HeapUsed uint64

	// HeapTotal is the number of bytes of heap obtained from the OS.
	HeapTotal uint64

	// External is the number of bytes held outside the heap.
	External uint64

	// RSS is the total number of bytes obtained from the OS.
	RSS uint64
}

// ReadMemStats captures the process's current memory statistics.
func ReadMemStats() MemStats {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	return MemStats{
		HeapUsed:  stats.HeapAlloc,
		HeapTotal: stats.HeapSys,
		External:  stats.Sys - stats.HeapSys,
		RSS:       stats.Sys,
	}
}

// ClassifyMemory converts raw byte counts into a memory report. Usage is the
// heap-used fraction of heap-total; usage above warnPercent classifies as
// warning, everything else as healthy.
func ClassifyMemory(stats MemStats, warnPercent float64) MemoryReport {
	var usage float64
	if stats.HeapTotal > 0 {
		usage = float64(stats.HeapUsed) / float64(stats.HeapTotal) * 100
	}

	status := StatusHealthy
	if usage > warnPercent {
		status = StatusWarning
	}

	return MemoryReport{
		HeapUsedMB:   float64(stats.HeapUsed) / bytesPerMB,
		HeapTotalMB:  float64(stats.HeapTotal) / bytesPerMB,
		ExternalMB:   float64(stats.External) / bytesPerMB,
		RSSMB:        float64(stats.RSS) / bytesPerMB,
		UsagePercent: usage,
		Status:       status,
	}
}
