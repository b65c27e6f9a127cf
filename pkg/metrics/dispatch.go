package metrics

import (
	"time"
)

// DispatchMetrics provides observability for dispatched filesystem
// operations.
//
// Implementations can collect metrics about operation counts, latency,
// read throughput, and registry size. This interface is optional - pass
// nil to disable metrics collection with zero overhead.
//
// Example usage:
//
//	// With metrics enabled
//	metrics.InitRegistry()
//	dispatchMetrics := prometheus.NewDispatchMetrics()
//	bridge := fuse.NewBridge(dispatcher, dispatchMetrics)
//
//	// Without metrics (pass nil for zero overhead)
//	bridge := fuse.NewBridge(dispatcher, nil)
type DispatchMetrics interface {
	// RecordOperation records a completed operation with its name,
	// duration, and outcome.
	//
	// Parameters:
	//   - operation: Operation name (e.g., "LOOKUP", "READDIR", "READ")
	//   - duration: Time taken to process the operation
	//   - errorCode: Error code name if the operation failed (e.g.,
	//     "NotFound"), empty if successful
	RecordOperation(operation string, duration time.Duration, errorCode string)

	// RecordOperationStart increments the in-flight operation counter.
	// Should be called when starting to process an operation.
	//
	// Parameters:
	//   - operation: Operation name
	RecordOperationStart(operation string)

	// RecordOperationEnd decrements the in-flight operation counter.
	// Should be called when operation processing completes.
	//
	// Parameters:
	//   - operation: Operation name
	RecordOperationEnd(operation string)

	// RecordBytesRead records the payload size of a completed READ.
	//
	// Parameters:
	//   - bytes: Number of bytes delivered to the kernel
	RecordBytesRead(bytes uint64)

	// SetRegisteredNodes updates the current registry size gauge.
	//
	// Parameters:
	//   - count: Current number of bound inode identifiers
	SetRegisteredNodes(count int)
}
