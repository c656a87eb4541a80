package estimate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/offsitetools/syncest/zfs"
)

func snap(epoch, written int64, ratio float64) zfs.Snapshot {
	return zfs.Snapshot{Epoch: epoch, Written: written, CompressRatio: ratio}
}

func TestCatchup(t *testing.T) {
	snaps := []zfs.Snapshot{
		snap(100, 1000, 1.0),
		snap(200, 2000, 1.5),
		snap(300, 4000, 2.0),
	}
	offsite := OffsiteSet([]int64{100})

	res := Catchup(snaps, offsite, 1000)

	assert.Equal(t, 2, res.PendingCount)
	assert.Equal(t, int64(11000), res.PendingBytes) // 2000*1.5 + 4000*2.0
	assert.Equal(t, 11*time.Second, res.Duration)
}

func TestCatchup_Unthrottled(t *testing.T) {
	res := Catchup([]zfs.Snapshot{snap(100, 1000, 1.0)}, nil, 0)

	assert.Equal(t, int64(1000), res.PendingBytes)
	assert.Zero(t, res.Duration)
}

func TestCatchup_AllCaughtUp(t *testing.T) {
	snaps := []zfs.Snapshot{snap(100, 1000, 1.0), snap(200, 2000, 1.0)}
	res := Catchup(snaps, OffsiteSet([]int64{100, 200}), 500)

	assert.Zero(t, res.PendingBytes)
	assert.Zero(t, res.PendingCount)
	assert.Zero(t, res.Duration)
}

func TestCatchup_FractionalSeconds(t *testing.T) {
	res := Catchup([]zfs.Snapshot{snap(100, 1500, 1.0)}, nil, 1000)

	assert.Equal(t, 1500*time.Millisecond, res.Duration)
}

func TestOffsiteSet(t *testing.T) {
	set := OffsiteSet([]int64{1, 2, 2})

	assert.Len(t, set, 2)
	assert.True(t, set[1])
	assert.False(t, set[3])
}
