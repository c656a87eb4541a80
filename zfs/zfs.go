// Package zfs shells out to the zfs CLI for dataset and snapshot
// inventory.
package zfs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Snapshot is one row of `zfs list -t snapshot -Hrp`.
type Snapshot struct {
	Name          string
	Epoch         int64 // parsed from the @<epoch> suffix of Name
	Written       int64
	CompressRatio float64
}

// TransferSize estimates the bytes sent offsite for this snapshot.
func (s Snapshot) TransferSize() int64 {
	return int64(float64(s.Written) * s.CompressRatio)
}

// runner executes a command and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client lists datasets and snapshots.
type Client struct {
	run runner
}

// NewClient returns a client backed by the real zfs binary.
func NewClient() *Client {
	return &Client{run: execRun}
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("zfs: %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	// Anything on stderr is treated as fatal even on exit 0.
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("zfs: %s: %s", name, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ListAgents returns the agent datasets: every dataset whose name contains
// an agents/ component.
func (c *Client) ListAgents(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "zfs", "list", "-H", "-o", "name")
	if err != nil {
		return nil, err
	}
	var agents []string
	for _, line := range splitLines(out) {
		if strings.Contains(line, "agents/") {
			agents = append(agents, line)
		}
	}
	return agents, nil
}

// ListSnapshots returns the snapshots under a dataset, in the order zfs
// reports them.
func (c *Client) ListSnapshots(ctx context.Context, dataset string) ([]Snapshot, error) {
	out, err := c.run(ctx, "zfs", "list", "-t", "snapshot", "-Hrp",
		"-o", "name,written,compressratio", dataset)
	if err != nil {
		return nil, err
	}

	var snapshots []Snapshot
	for _, line := range splitLines(out) {
		snap, err := parseSnapshot(line)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// parseSnapshot parses one "name written compressratio" row. The ratio
// column carries a trailing x (e.g. "1.23x").
func parseSnapshot(line string) (Snapshot, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Snapshot{}, fmt.Errorf("zfs: malformed snapshot row %q", line)
	}

	name := fields[0]
	at := strings.LastIndexByte(name, '@')
	if at < 0 {
		return Snapshot{}, fmt.Errorf("zfs: snapshot %q has no @epoch suffix", name)
	}
	epoch, err := strconv.ParseInt(name[at+1:], 10, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("zfs: snapshot %q: %w", name, err)
	}

	written, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("zfs: snapshot %q written: %w", name, err)
	}

	ratio, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "x"), 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("zfs: snapshot %q compressratio: %w", name, err)
	}

	return Snapshot{Name: name, Epoch: epoch, Written: written, CompressRatio: ratio}, nil
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
