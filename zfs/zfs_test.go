package zfs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClient(out string, err error) (*Client, *[][]string) {
	var calls [][]string
	c := &Client{run: func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}}
	return c, &calls
}

func TestClient_ListAgents(t *testing.T) {
	c, calls := fakeClient(
		"homePool\n"+
			"homePool/home\n"+
			"homePool/home/agents/6f1c2a34-9d55-4b7e-a1f0-3c8d2b44e9aa\n"+
			"homePool/home/agents/web01.example.com\n"+
			"homePool/home/configBackup\n", nil)

	agents, err := c.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"homePool/home/agents/6f1c2a34-9d55-4b7e-a1f0-3c8d2b44e9aa",
		"homePool/home/agents/web01.example.com",
	}, agents)

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"zfs", "list", "-H", "-o", "name"}, (*calls)[0])
}

func TestClient_ListSnapshots(t *testing.T) {
	c, calls := fakeClient(
		"homePool/home/agents/web01@1514764800\t1073741824\t1.50x\n"+
			"homePool/home/agents/web01@1514851200\t52428800\t1.00x\n", nil)

	snaps, err := c.ListSnapshots(context.Background(), "homePool/home/agents/web01")
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, int64(1514764800), snaps[0].Epoch)
	assert.Equal(t, int64(1073741824), snaps[0].Written)
	assert.InDelta(t, 1.5, snaps[0].CompressRatio, 1e-9)
	assert.Equal(t, int64(1610612736), snaps[0].TransferSize())

	assert.Equal(t, int64(52428800), snaps[1].TransferSize())

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"zfs", "list", "-t", "snapshot", "-Hrp",
		"-o", "name,written,compressratio",
		"homePool/home/agents/web01",
	}, (*calls)[0])
}

func TestClient_ListSnapshots_NoEpochSuffix(t *testing.T) {
	c, _ := fakeClient("homePool/home/agents/web01\t10\t1.00x\n", nil)

	_, err := c.ListSnapshots(context.Background(), "homePool/home/agents/web01")
	assert.ErrorContains(t, err, "no @epoch suffix")
}

func TestClient_ListSnapshots_MalformedRow(t *testing.T) {
	c, _ := fakeClient("only-one-field\n", nil)

	_, err := c.ListSnapshots(context.Background(), "x")
	assert.ErrorContains(t, err, "malformed snapshot row")
}

func TestClient_CommandFailurePropagates(t *testing.T) {
	c, _ := fakeClient("", errors.New("zfs: permission denied"))

	_, err := c.ListAgents(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}

func TestParseSnapshot_RatioWithoutSuffix(t *testing.T) {
	// -p mode prints raw numbers without the x suffix.
	snap, err := parseSnapshot("pool/agents/a@100\t2048\t2.00")
	require.NoError(t, err)
	assert.Equal(t, int64(4096), snap.TransferSize())
}
