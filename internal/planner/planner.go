package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"takeplan/internal/config"
	"takeplan/internal/history"
	"takeplan/internal/language"
	"takeplan/internal/logging"
	"takeplan/internal/script"
	"takeplan/internal/takes"
)

// ErrBusy is returned when another run holds the history lock.
var ErrBusy = errors.New("another takeplan run is recording")

const defaultLockTimeout = 5 * time.Second

// Request describes one run. Empty fields fall back to the configuration.
type Request struct {
	ScriptPath string
	Column     string
	Format     string
	OutputDir  string
}

// Result is the outcome of a plan run.
type Result struct {
	RunID            string                       `json:"run_id"`
	Script           string                       `json:"script"`
	Column           string                       `json:"column"`
	Language         script.Detection             `json:"language"`
	LanguageMismatch bool                         `json:"language_mismatch,omitempty"`
	Constraints      config.Constraints           `json:"constraints"`
	Problems         []takes.Problem              `json:"problems"`
	Failures         []*takes.SegmentationFailure `json:"failures"`
	Report           takes.Report                 `json:"report"`
	Files            []string                     `json:"files,omitempty"`
	Recorded         bool                         `json:"recorded"`
	Duration         time.Duration                `json:"duration"`
}

// CheckResult is the outcome of validating a script without partitioning it.
type CheckResult struct {
	Script           string           `json:"script"`
	Column           string           `json:"column"`
	Language         script.Detection `json:"language"`
	LanguageMismatch bool             `json:"language_mismatch,omitempty"`
	Interventions    int              `json:"interventions"`
	Blocks           int              `json:"blocks"`
	Scenes           int              `json:"scenes"`
	Characters       []string         `json:"characters"`
	Problems         []takes.Problem  `json:"problems"`
}

// Planner runs plans against one configuration.
type Planner struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *history.Store

	// LockTimeout bounds the wait for the history lock.
	LockTimeout time.Duration
}

// New returns a Planner. store may be nil, in which case runs are not recorded.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) *Planner {
	return &Planner{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "planner"),
		store:       store,
		LockTimeout: defaultLockTimeout,
	}
}

type prepared struct {
	script    *script.Script
	column    string
	detection script.Detection
	mismatch  bool
	blocks    []takes.Block
	problems  []takes.Problem
}

func (p *Planner) prepare(ctx context.Context, req Request) (*prepared, error) {
	logger := logging.WithContext(ctx, p.logger)
	column := strings.TrimSpace(req.Column)
	if column == "" {
		column = p.cfg.Input.DialogueColumn
	}
	opts := script.Options{DialogueColumn: column}
	if r := []rune(p.cfg.Input.CSVDelimiter); len(r) > 0 {
		opts.Delimiter = r[0]
	}

	s, err := script.Load(req.ScriptPath, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("script loaded",
		logging.String("path", s.Path),
		logging.String("column", column),
		logging.Int("interventions", len(s.Interventions)),
	)

	out := &prepared{script: s, column: column}
	out.detection = script.DetectLanguage(s.Interventions)
	if out.detection.Code != "" {
		logger.Info("dialogue language detected",
			logging.String("language", language.DisplayName(out.detection.Code)),
			logging.Float64("share", out.detection.Share),
			logging.Int("samples", out.detection.Samples),
		)
	}
	if expected := p.cfg.Input.ExpectedLanguage; expected != "" && out.detection.Code != "" && !language.Same(expected, out.detection.Code) {
		out.mismatch = true
		logging.WarnWithContext(logger, "dialogue language differs from expected", "language_mismatch",
			logging.String("expected", language.DisplayName(expected)),
			logging.String("detected", language.DisplayName(out.detection.Code)),
			logging.String(logging.FieldErrorHint, "check --column selects the intended dialogue column"),
			logging.String(logging.FieldImpact, "takes are planned from the selected column anyway"),
		)
	}

	blocks, problems := takes.GroupBlocks(s.Interventions, p.cfg.Constraints)
	problems = append(problems, takes.CheckInterventions(s.Interventions, p.cfg.Constraints)...)
	takes.SortProblems(problems)
	for _, problem := range problems {
		logging.WarnWithContext(logger, "intervention problem", "intervention_"+string(problem.Kind),
			logging.Int("row", problem.Row),
			logging.String(logging.FieldScene, problem.Scene),
			logging.String("character", problem.Character),
			logging.String("detail", problem.Detail),
		)
	}
	out.blocks = blocks
	out.problems = problems
	return out, nil
}

// Check loads and validates a script without partitioning it.
func (p *Planner) Check(ctx context.Context, req Request) (*CheckResult, error) {
	prep, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	scenes := make(map[string]struct{})
	for _, b := range prep.blocks {
		scenes[b.Scene] = struct{}{}
	}
	return &CheckResult{
		Script:           prep.script.Path,
		Column:           prep.column,
		Language:         prep.detection,
		LanguageMismatch: prep.mismatch,
		Interventions:    len(prep.script.Interventions),
		Blocks:           len(prep.blocks),
		Scenes:           len(scenes),
		Characters:       prep.script.Characters(),
		Problems:         nonNilProblems(prep.problems),
	}, nil
}

// Plan runs the full pipeline for req.
func (p *Planner) Plan(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	prep, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	workers := p.cfg.Partition.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	partitioner := &takes.Partitioner{
		Checker: takes.NewChecker(prep.script.Interventions, p.cfg.Constraints),
		Workers: workers,
		Logger:  logging.NewComponentLogger(p.logger, "partition"),
	}
	plan, err := partitioner.Run(ctx, prep.blocks)
	if err != nil {
		return nil, fmt.Errorf("partition scenes: %w", err)
	}
	report := takes.BuildReport(prep.script.Interventions, prep.blocks, plan, p.cfg.Constraints)

	result := &Result{
		RunID:            runID,
		Script:           prep.script.Path,
		Column:           prep.column,
		Language:         prep.detection,
		LanguageMismatch: prep.mismatch,
		Constraints:      p.cfg.Constraints,
		Problems:         nonNilProblems(prep.problems),
		Failures:         plan.Failures,
		Report:           report,
	}
	if result.Failures == nil {
		result.Failures = []*takes.SegmentationFailure{}
	}

	dir := strings.TrimSpace(req.OutputDir)
	if dir == "" {
		dir = p.cfg.Output.Dir
	}
	if dir != "" {
		format := strings.TrimSpace(req.Format)
		if format == "" {
			format = p.cfg.Output.Format
		}
		files, err := writeReports(dir, format, result)
		if err != nil {
			return nil, err
		}
		result.Files = files
	}

	result.Duration = time.Since(started)
	if p.store != nil && p.cfg.History.Enabled {
		if err := p.record(ctx, result); err != nil {
			return nil, err
		}
		result.Recorded = true
	}

	logger.Info("plan complete",
		logging.Int("takes", report.Stats.Takes),
		logging.Int("problems", len(result.Problems)),
		logging.Int("failed_scenes", len(result.Failures)),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}

func (p *Planner) record(ctx context.Context, result *Result) error {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	lock := flock.New(p.cfg.LockPath())
	lockCtx, cancel := context.WithTimeout(ctx, p.LockTimeout)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, 25*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrBusy, p.cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release history lock", logging.Error(err))
		}
	}()

	abs, err := filepath.Abs(result.Script)
	if err != nil {
		abs = result.Script
	}
	_, err = p.store.Record(ctx, history.Run{
		ID:             result.RunID,
		InputPath:      abs,
		DialogueColumn: result.Column,
		Language:       result.Language.Code,
		Constraints:    result.Constraints,
		Stats:          result.Report.Stats,
		Problems:       len(result.Problems),
		Duration:       result.Duration,
	}, history.TakesFromReport(result.Report.Takes))
	return err
}

func nonNilProblems(problems []takes.Problem) []takes.Problem {
	if problems == nil {
		return []takes.Problem{}
	}
	return problems
}
