package util

import (
	"runtime"
)

const maxIOWorkers = 16

func GetAppName() string {
	return "DocCollect"
}

// Pool size for jobCount object store fetches. Fetches mostly wait on the network,
// so the pool is wider than GOMAXPROCS but never above maxIOWorkers or jobCount.
func DetermineWorkers(jobCount int) int {
	workers := min(max(runtime.GOMAXPROCS(0)*4, 1), maxIOWorkers)
	if jobCount <= 0 {
		return workers
	}

	return min(workers, jobCount)
}
