// Package sweep runs one model over a grid of parameter values and seeds,
// each combination on its own model instance, across a pool of workers.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"cellsociety/internal/core"
	"cellsociety/internal/runner"

	"github.com/charmbracelet/log"
)

// Axis is one swept parameter and the values it takes.
type Axis struct {
	Key    string
	Values []float64
}

// ParseAxis reads "key=v1,v2,..." or "key=start:stop:step". Ranges include
// stop when the step lands on it.
func ParseAxis(s string) (Axis, error) {
	key, spec, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || spec == "" {
		return Axis{}, fmt.Errorf("sweep: axis %q: want key=values: %w", s, core.ErrConfiguration)
	}
	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		var nums [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Axis{}, fmt.Errorf("sweep: axis %q: %v: %w", s, err, core.ErrConfiguration)
			}
			nums[i] = v
		}
		start, stop, step := nums[0], nums[1], nums[2]
		if step <= 0 || stop < start {
			return Axis{}, fmt.Errorf("sweep: axis %q: empty range: %w", s, core.ErrConfiguration)
		}
		a := Axis{Key: key}
		const eps = 1e-9
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if v > stop+eps {
				break
			}
			a.Values = append(a.Values, v)
		}
		return a, nil
	}
	a := Axis{Key: key}
	for _, p := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("sweep: axis %q: %v: %w", s, err, core.ErrConfiguration)
		}
		a.Values = append(a.Values, v)
	}
	return a, nil
}

// Job is one parameter combination and seed.
type Job struct {
	Index  int
	Params map[string]float64
	Seed   int64
}

// Label formats the swept parameters in key order.
func (j Job) Label() string {
	keys := make([]string, 0, len(j.Params))
	for k := range j.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, j.Params[k]))
	}
	parts = append(parts, fmt.Sprintf("seed=%d", j.Seed))
	return strings.Join(parts, " ")
}

// Jobs expands the axes into their cartesian product, once per seed. The
// first axis varies slowest. With no seeds a single seed of zero is used.
func Jobs(axes []Axis, seeds []int64) []Job {
	if len(seeds) == 0 {
		seeds = []int64{0}
	}
	combos := []map[string]float64{{}}
	for _, a := range axes {
		next := make([]map[string]float64, 0, len(combos)*len(a.Values))
		for _, base := range combos {
			for _, v := range a.Values {
				c := maps.Clone(base)
				c[a.Key] = v
				next = append(next, c)
			}
		}
		combos = next
	}
	jobs := make([]Job, 0, len(combos)*len(seeds))
	for _, params := range combos {
		for _, seed := range seeds {
			jobs = append(jobs, Job{Index: len(jobs), Params: params, Seed: seed})
		}
	}
	return jobs
}

// Result is the outcome of one job.
type Result struct {
	Job
	Steps      int
	Generation int
	Population map[string]int
	// Settled is true when the Until condition ended the run early.
	Settled bool
	Elapsed time.Duration
	Err     error
}

// Config describes a sweep.
type Config struct {
	// Build returns a fresh model for one job. Jobs never share a model.
	Build func(params map[string]float64, seed int64) (core.Model, error)
	Axes  []Axis
	Seeds []int64
	Steps int
	// Until, when set, is called once per job for that job's stop condition.
	Until   func() func(core.Model) bool
	Workers int
	Logger  *log.Logger
	// OnResult is called from the collecting goroutine as each job finishes.
	OnResult func(Result)
}

// Run executes every job and returns the results ordered by job index. Job
// failures are reported in Result.Err; Run itself fails only on invalid
// configuration or a cancelled context.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if cfg.Build == nil {
		return nil, errors.New("sweep: no model builder")
	}
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("sweep: steps must be positive, got %d: %w", cfg.Steps, core.ErrConfiguration)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	// Per-job runs only surface warnings; the sweep logs its own summary.
	jobLogger := logger.With("component", "sweep-job")
	jobLogger.SetLevel(max(logger.GetLevel(), log.WarnLevel))

	all := Jobs(cfg.Axes, cfg.Seeds)
	logger.Info("sweep started", "jobs", len(all), "workers", workers, "steps", cfg.Steps)

	jobs := make(chan Job)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runJob(ctx, cfg, job, jobLogger)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, job := range all {
			select {
			case jobs <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	out := make([]Result, 0, len(all))
	for res := range results {
		if res.Err != nil {
			logger.Warn("job failed", "job", res.Label(), "err", res.Err)
		}
		if cfg.OnResult != nil {
			cfg.OnResult(res)
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	logger.Info("sweep finished", "jobs", len(out), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func runJob(ctx context.Context, cfg Config, job Job, logger *log.Logger) Result {
	res := Result{Job: job}
	m, err := cfg.Build(job.Params, job.Seed)
	if err != nil {
		res.Err = err
		return res
	}
	opts := runner.Options{Steps: cfg.Steps, Logger: logger}
	if cfg.Until != nil {
		opts.Until = cfg.Until()
	}
	run, err := runner.Run(ctx, m, opts)
	res.Steps = run.Steps
	res.Generation = run.Generation
	res.Population = run.Population
	res.Settled = run.Settled
	res.Elapsed = run.Elapsed
	res.Err = err
	return res
}
