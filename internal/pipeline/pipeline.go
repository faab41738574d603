// Package pipeline runs one tool over many independent jobs.
//
// Every job gets its own driver run with its own diagnostics Bag. Jobs
// run in parallel with separate caches drawing from one Allocator, so
// source IDs never collide across jobs. When a shared Cache is given the
// jobs run one at a time, since a Cache is not safe for concurrent use.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"frontkit/internal/diag"
	"frontkit/internal/driver"
	"frontkit/internal/source"
	"frontkit/internal/tool"
	"frontkit/internal/trace"
)

// Options configures Run.
type Options struct {
	// Jobs caps parallelism; zero or less means GOMAXPROCS.
	Jobs int
	// Progress, when set, receives queued/working/done events.
	Progress ProgressSink
	// MaxDiagnostics caps each job's Bag; zero means unlimited.
	MaxDiagnostics int
	// Allocator feeds the per-job caches. Nil means source.Shared.
	Allocator *source.Allocator
	// Cache, when set, is used by every job instead of a per-job cache.
	Cache *source.Cache
	// Normalize is applied to every job in addition to its own setting.
	Normalize bool
}

// Result is the outcome of one job.
type Result[Out any] struct {
	Job Job
	// Output is nil when Err is set.
	Output  *driver.Output[Out]
	Cache   *source.Cache
	Diags   *diag.Bag
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the job could not run or reported an error.
func (r *Result[Out]) Failed() bool {
	return r.Err != nil || (r.Diags != nil && r.Diags.HasErrors())
}

// Run executes t once per job and returns the results in job order.
// A job whose sources cannot be read records its driver error in
// Result.Err; it does not stop the other jobs. The returned error is only
// set when ctx is canceled.
func Run[Out any](ctx context.Context, t tool.Tool[Out], params tool.Params, jobs []Job, opts Options) ([]Result[Out], error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "pipeline:"+t.Name())
	defer func() { span.End(fmt.Sprintf("jobs=%d", len(jobs))) }()

	results := make([]Result[Out], len(jobs))
	for i, job := range jobs {
		results[i].Job = job
		emit(opts.Progress, Event{Job: job.Name, Stage: StageResolve, Status: StatusQueued})
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if opts.Cache != nil {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			runJob(gctx, t, params, &results[i], opts)
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func runJob[Out any](ctx context.Context, t tool.Tool[Out], params tool.Params, res *Result[Out], opts Options) {
	span, ctx := trace.Start(ctx, trace.ScopeModule, "job:"+res.Job.Name)
	start := time.Now()

	cache := opts.Cache
	if cache == nil {
		cache = source.NewCacheWithAllocator(opts.Allocator)
	}
	res.Cache = cache
	res.Diags = diag.NewBag(opts.MaxDiagnostics)

	args := res.Job.Args
	args.Normalize = args.Normalize || opts.Normalize

	emit(opts.Progress, Event{Job: res.Job.Name, Stage: StageTool, Status: StatusWorking})
	out, err := driver.New(t, driver.Args{Optional: args}, params).Run(ctx, res.Diags, cache)
	res.Output = out
	res.Err = err
	res.Elapsed = time.Since(start)

	status := StatusDone
	if res.Failed() {
		status = StatusError
	}
	emit(opts.Progress, Event{Job: res.Job.Name, Stage: StageTool, Status: status, Err: err, Elapsed: res.Elapsed})
	span.End(string(status))
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

// Summary counts failed jobs and the diagnostics over all results.
func Summary[Out any](results []Result[Out]) (failed, errs, warnings int) {
	for i := range results {
		r := &results[i]
		if r.Failed() {
			failed++
		}
		if r.Diags == nil {
			continue
		}
		e, w := r.Diags.Counts()
		errs += e
		warnings += w
	}
	return failed, errs, warnings
}
