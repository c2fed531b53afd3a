// Package parallel runs independent jobs on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue
// is empty, so a few slow jobs (large documents) do not hold back the
// rest of a batch.
package parallel
