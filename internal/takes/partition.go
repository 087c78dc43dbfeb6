package takes

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"takeplan/internal/logging"
)

// Segment is a half-open range [Start, End) of blocks within one scene.
type Segment struct {
	Start int
	End   int
	// Cost is the number of distinct characters in the segment.
	Cost int
}

// Partition is the optimal split of one scene.
type Partition struct {
	Scene    string
	Segments []Segment
	Cost     int
}

// Take is a committed segment with its take number. Start and End index the
// global block slice passed to Run.
type Take struct {
	ID    int
	Scene string
	Start int
	End   int
	Cost  int
}

// Plan is the result of partitioning every scene.
type Plan struct {
	// Assignment maps each block index to its take number; 0 means the
	// block's scene failed to segment.
	Assignment []int
	Takes      []Take
	Failures   []*SegmentationFailure
}

// Partitioner splits scenes into takes.
type Partitioner struct {
	Checker *Checker
	// Workers bounds concurrent scenes; 0 or less means unbounded.
	Workers int
	Logger  *slog.Logger
}

// PartitionScene finds the segmentation of blocks, all from one scene, that
// minimizes total cost among the segments reachable without extending past an
// infeasible one. Ties keep the earliest segment start. When some block cannot
// be covered, the first such block is reported.
func (p *Partitioner) PartitionScene(blocks []Block) (Partition, error) {
	n := len(blocks)
	if n == 0 {
		return Partition{}, nil
	}
	scene := blocks[0].Scene

	const unreachable = math.MaxInt
	dp := make([]int, n+1)
	back := make([]int, n+1)
	for i := range dp {
		dp[i] = unreachable
		back[i] = -1
	}
	dp[0] = 0

	for i := 0; i < n; i++ {
		if dp[i] == unreachable {
			continue
		}
		seen := make(map[string]struct{})
		for j := i; j < n; j++ {
			// Stop at the first infeasible end even though a longer segment
			// can pass again: an overlapping block that ends early shrinks the
			// span, and a joined run can close a parenthetical. Such segments
			// are never tried.
			if !p.Checker.Check(blocks[i : j+1]).OK {
				break
			}
			for _, name := range blocks[j].Characters() {
				seen[name] = struct{}{}
			}
			if cost := dp[i] + len(seen); cost < dp[j+1] {
				dp[j+1] = cost
				back[j+1] = i
			}
		}
	}

	if dp[n] == unreachable {
		k := n - 1
		for k > 0 && dp[k] == unreachable {
			k--
		}
		v := p.Checker.Check(blocks[k : k+1])
		return Partition{}, &SegmentationFailure{
			Scene:   scene,
			Block:   k,
			Blocks:  n,
			InCode:  blocks[k].InCode,
			OutCode: blocks[k].OutCode,
			Reason:  v.Reason,
			Detail:  v.Detail,
		}
	}

	var segments []Segment
	for end := n; end > 0; end = back[end] {
		start := back[end]
		segments = append(segments, Segment{Start: start, End: end, Cost: dp[end] - dp[start]})
	}
	for l, r := 0, len(segments)-1; l < r; l, r = l+1, r-1 {
		segments[l], segments[r] = segments[r], segments[l]
	}
	return Partition{Scene: scene, Segments: segments, Cost: dp[n]}, nil
}

type sceneRange struct {
	scene      string
	start, end int
}

// Run partitions every scene of blocks, which must be sorted by scene as
// GroupBlocks returns them. Scenes are solved concurrently and take numbers are
// assigned afterwards in scene order. Only context cancellation is returned as
// an error; unsegmentable scenes are collected in Plan.Failures.
func (p *Partitioner) Run(ctx context.Context, blocks []Block) (Plan, error) {
	logger := logging.WithContext(ctx, p.Logger)
	scenes := splitScenes(blocks)

	type result struct {
		partition Partition
		failure   *SegmentationFailure
	}
	results := make([]result, len(scenes))

	g, gctx := errgroup.WithContext(ctx)
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}
	for idx, sr := range scenes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part, err := p.PartitionScene(blocks[sr.start:sr.end])
			var failure *SegmentationFailure
			if errors.As(err, &failure) {
				results[idx].failure = failure
				return nil
			}
			if err != nil {
				return err
			}
			results[idx].partition = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Plan{}, err
	}

	plan := Plan{Assignment: make([]int, len(blocks))}
	next := 1
	for idx, sr := range scenes {
		res := results[idx]
		if res.failure != nil {
			logging.WarnWithContext(logger, "scene cannot be segmented", "segmentation_failed",
				logging.String(logging.FieldScene, sr.scene),
				logging.String("block_in", res.failure.InCode),
				logging.String("reason", string(res.failure.Reason)),
				logging.String(logging.FieldErrorHint, "shorten or split the intervention at "+res.failure.InCode),
				logging.String(logging.FieldImpact, "scene left out of the takes"),
			)
			plan.Failures = append(plan.Failures, res.failure)
			continue
		}
		for _, seg := range res.partition.Segments {
			take := Take{ID: next, Scene: sr.scene, Start: sr.start + seg.Start, End: sr.start + seg.End, Cost: seg.Cost}
			for b := take.Start; b < take.End; b++ {
				plan.Assignment[b] = take.ID
			}
			plan.Takes = append(plan.Takes, take)
			next++
		}
		logger.Debug("scene partitioned",
			logging.String(logging.FieldScene, sr.scene),
			logging.Int("blocks", sr.end-sr.start),
			logging.Int("takes", len(res.partition.Segments)),
			logging.Int("cost", res.partition.Cost),
		)
	}
	return plan, nil
}

func splitScenes(blocks []Block) []sceneRange {
	var scenes []sceneRange
	for i, b := range blocks {
		if n := len(scenes); n > 0 && scenes[n-1].scene == b.Scene {
			scenes[n-1].end = i + 1
			continue
		}
		scenes = append(scenes, sceneRange{scene: b.Scene, start: i, end: i + 1})
	}
	return scenes
}
