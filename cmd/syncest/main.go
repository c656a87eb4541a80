// syncest - estimate offsite sync catch-up time per agent
//
// Usage:
//
//	syncest [-keys dir] [-a agent]... [-v]
//
// Lists the agent datasets, reads each agent's key files, and reports how
// much snapshot data still has to go offsite and how long that will take
// at the configured speed limit. With no -a flags every agent dataset is
// examined; -a may repeat.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/offsitetools/syncest/estimate"
	"github.com/offsitetools/syncest/keys"
	"github.com/offsitetools/syncest/zfs"
)

type agentList []string

func (a *agentList) String() string { return strings.Join(*a, ",") }

func (a *agentList) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	var agents agentList
	keysDir := flag.String("keys", keys.DefaultDir, "agent key file directory")
	speedPath := flag.String("speed-limit", keys.DefaultSpeedLimit, "speed limit file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Var(&agents, "a", "agent to examine (repeatable)")
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()

	store := &keys.Store{Dir: *keysDir, SpeedLimitPath: *speedPath}
	if err := run(context.Background(), log, store, agents); err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "syncest: logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

func run(ctx context.Context, log *zap.Logger, store *keys.Store, selected []string) error {
	client := zfs.NewClient()

	datasets, err := client.ListAgents(ctx)
	if err != nil {
		return err
	}
	datasets = selectAgents(log, datasets, selected)
	if len(datasets) == 0 {
		return fmt.Errorf("no agent datasets found")
	}

	limit, err := store.SpeedLimit()
	if err != nil {
		return err
	}

	for _, dataset := range datasets {
		agent := path.Base(dataset)
		if _, err := uuid.Parse(agent); err != nil {
			log.Debug("agent identifier is not a uuid", zap.String("agent", agent))
		}

		snaps, err := client.ListSnapshots(ctx, dataset)
		if err != nil {
			return err
		}

		points, err := store.OffsitePoints(agent)
		if err != nil {
			log.Warn("no offsite points, skipping agent",
				zap.String("agent", agent), zap.Error(err))
			continue
		}

		if sched, err := store.Schedule(agent, true); err != nil {
			// A malformed schedule for one agent does not abort the run.
			log.Warn("offsite schedule unreadable",
				zap.String("agent", agent), zap.Error(err))
		} else {
			log.Debug("offsite schedule",
				zap.String("agent", agent), zap.Stringer("schedule", sched))
		}

		res := estimate.Catchup(snaps, estimate.OffsiteSet(points), limit)
		printResult(agent, res, limit)
	}
	return nil
}

// selectAgents filters the dataset list down to the requested agents.
// Requests that match nothing are excluded with a warning; if nothing at
// all matched, the complete dataset is used.
func selectAgents(log *zap.Logger, datasets, selected []string) []string {
	if len(selected) == 0 {
		return datasets
	}

	byBase := make(map[string]string, len(datasets))
	for _, d := range datasets {
		byBase[path.Base(d)] = d
	}

	var out []string
	for _, want := range selected {
		if d, ok := byBase[want]; ok {
			out = append(out, d)
		} else {
			log.Warn("agent is not in the dataset, excluding", zap.String("agent", want))
		}
	}
	if len(out) == 0 {
		log.Warn("no requested agents matched, defaulting to complete dataset")
		return datasets
	}
	return out
}

func printResult(agent string, res estimate.Result, limit int64) {
	if res.PendingCount == 0 {
		fmt.Printf("%s: caught up\n", agent)
		return
	}
	if limit <= 0 {
		fmt.Printf("%s: %d snapshot(s) pending, %s, link unthrottled\n",
			agent, res.PendingCount, formatBytes(res.PendingBytes))
		return
	}
	fmt.Printf("%s: %d snapshot(s) pending, %s, about %s at %s/s\n",
		agent, res.PendingCount, formatBytes(res.PendingBytes),
		res.Duration.Round(time.Second), formatBytes(limit))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
