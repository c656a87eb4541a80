// Package keys reads per-agent configuration key files from the appliance
// key directory. Each agent has one file per concern, named
// <agent><suffix>; all of them are line-oriented text.
package keys

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/offsitetools/syncest/phpser"
)

// Default appliance paths.
const (
	DefaultDir        = "/datto/config/keys"
	DefaultSpeedLimit = "/datto/config/local/speedLimit"
)

// Key file suffixes.
const (
	SuffixRetention        = ".retention"
	SuffixOffsiteRetention = ".offsiteRetention"
	SuffixSchedule         = ".schedule"
	SuffixOffsiteSchedule  = ".offsiteSchedule"
	SuffixInterval         = ".interval"
	SuffixOffsitePoints    = ".offSitePoints"
	SuffixTransfers        = ".transfers"
)

// Retention is a decoded retention policy. The file stores hours; values
// here are whole days.
type Retention struct {
	Intra int
	Daily int
	Total int
	Local int
}

// Store reads agent key files from a directory.
type Store struct {
	Dir            string
	SpeedLimitPath string
}

// NewStore returns a store over the default appliance paths.
func NewStore() *Store {
	return &Store{Dir: DefaultDir, SpeedLimitPath: DefaultSpeedLimit}
}

func (s *Store) path(agent, suffix string) string {
	return filepath.Join(s.Dir, agent+suffix)
}

// Retention reads an agent's local or offsite retention policy: one line of
// four colon-separated hour counts.
func (s *Store) Retention(agent string, offsite bool) (Retention, error) {
	suffix := SuffixRetention
	if offsite {
		suffix = SuffixOffsiteRetention
	}
	line, err := readLine(s.path(agent, suffix))
	if err != nil {
		return Retention{}, err
	}

	fields := strings.Split(strings.TrimSpace(line), ":")
	if len(fields) != 4 {
		return Retention{}, fmt.Errorf("keys: retention for %s: expected 4 fields, got %d", agent, len(fields))
	}
	var hours [4]int
	for i, f := range fields {
		h, err := strconv.Atoi(f)
		if err != nil {
			return Retention{}, fmt.Errorf("keys: retention for %s: %w", agent, err)
		}
		hours[i] = h
	}
	return Retention{
		Intra: hours[0] / 24,
		Daily: hours[1] / 24,
		Total: hours[2] / 24,
		Local: hours[3] / 24,
	}, nil
}

// Schedule decodes an agent's local or offsite backup schedule.
func (s *Store) Schedule(agent string, offsite bool) (*phpser.Record, error) {
	suffix := SuffixSchedule
	if offsite {
		suffix = SuffixOffsiteSchedule
	}
	return phpser.Decode(s.path(agent, suffix))
}

// Interval reads the agent's backup interval, stored in minutes.
func (s *Store) Interval(agent string) (time.Duration, error) {
	line, err := readLine(s.path(agent, SuffixInterval))
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("keys: interval for %s: %w", agent, err)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// OffsitePoints reads the snapshot epochs already offsite, one per line.
func (s *Store) OffsitePoints(agent string) ([]int64, error) {
	lines, err := readLines(s.path(agent, SuffixOffsitePoints))
	if err != nil {
		return nil, err
	}
	var points []int64
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		epoch, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("keys: offsite points for %s: %w", agent, err)
		}
		points = append(points, epoch)
	}
	return points, nil
}

// Transfers reads completed offsite transfers, one "epoch:bytes" pair per
// line, keyed by epoch.
func (s *Store) Transfers(agent string) (map[int64]int64, error) {
	lines, err := readLines(s.path(agent, SuffixTransfers))
	if err != nil {
		return nil, err
	}
	transfers := make(map[int64]int64)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		epochStr, sizeStr, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("keys: transfers for %s: malformed line %q", agent, line)
		}
		epoch, err := strconv.ParseInt(epochStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("keys: transfers for %s: %w", agent, err)
		}
		size, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("keys: transfers for %s: %w", agent, err)
		}
		transfers[epoch] = size
	}
	return transfers, nil
}

// SpeedLimit reads the offsite speed limit in bytes per second. A missing
// file or a zero means unlimited.
func (s *Store) SpeedLimit() (int64, error) {
	line, err := readLine(s.SpeedLimitPath)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	limit, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("keys: speed limit: %w", err)
	}
	return limit, nil
}

func readLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("keys: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return sc.Text(), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("keys: read %s: %w", path, err)
	}
	return "", nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("keys: read %s: %w", path, err)
	}
	return lines, nil
}
