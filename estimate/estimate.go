// Package estimate computes offsite catch-up projections from snapshot
// inventory and transfer history.
package estimate

import (
	"time"

	"github.com/offsitetools/syncest/zfs"
)

// Result describes the pending offsite work for one agent.
type Result struct {
	PendingBytes int64
	PendingCount int
	Duration     time.Duration // zero when the link is unthrottled
}

// Catchup sums the transfer sizes of snapshots not yet offsite and projects
// the time to drain them at bytesPerSec. A bytesPerSec of zero or less
// means unthrottled: pending bytes are still reported, the duration stays
// zero.
func Catchup(snapshots []zfs.Snapshot, offsite map[int64]bool, bytesPerSec int64) Result {
	var res Result
	for _, snap := range snapshots {
		if offsite[snap.Epoch] {
			continue
		}
		res.PendingBytes += snap.TransferSize()
		res.PendingCount++
	}
	if bytesPerSec > 0 && res.PendingBytes > 0 {
		secs := float64(res.PendingBytes) / float64(bytesPerSec)
		res.Duration = time.Duration(secs * float64(time.Second))
	}
	return res
}

// OffsiteSet builds the membership set Catchup consumes from recorded
// offsite points.
func OffsiteSet(points []int64) map[int64]bool {
	set := make(map[int64]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return set
}
