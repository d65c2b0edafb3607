package clusteral

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// ErrSSEIncreased reports that the total SSE grew from one iteration to
// the next. The assignment and update steps can only ever lower it, so
// an increase means the engine itself is broken and the run aborts.
var ErrSSEIncreased = errors.New("SSE increased between iterations")

// KMeansConfig carries every parameter of a k-means execution. The
// zero value is not usable; fill the fields and call Validate before
// running.
type KMeansConfig struct {
	// ClusterCount is K, the number of clusters to produce. Must be
	// greater than 1: a single cluster is trivially "converged" and
	// no validity index is defined for it.
	ClusterCount int

	// MaxIterations caps how many assignment/update iterations a run
	// may take before stopping regardless of convergence.
	MaxIterations int

	// ConvergenceThreshold is the relative SSE improvement below which
	// a run is considered converged. Zero effectively disables early
	// convergence, since the improvement can never go negative.
	ConvergenceThreshold float64

	// RunCount is how many independent repetitions to execute.
	RunCount int

	// InitMethod selects the initialization strategy.
	InitMethod InitMethod

	// RandomOnMultiple chooses uniformly among clusters tied for the
	// nearest centroid instead of always taking the first found.
	RandomOnMultiple bool
}

// Validate reports the first invalid parameter of this configuration,
// nil if all parameters are usable.
func (cfg *KMeansConfig) Validate() error {
	if cfg.ClusterCount <= 1 {
		return fmt.Errorf("%w: cluster count must be greater than 1, have %d",
			ErrClusterCount, cfg.ClusterCount)
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be positive, have %d",
			cfg.MaxIterations)
	}
	if cfg.ConvergenceThreshold < 0 {
		return fmt.Errorf("convergence threshold must not be negative, have %g",
			cfg.ConvergenceThreshold)
	}
	if cfg.RunCount < 1 {
		return fmt.Errorf("run count must be positive, have %d", cfg.RunCount)
	}
	if _, err := ParseInitMethod(string(cfg.InitMethod)); err != nil {
		return err
	}
	return nil
}

// KMeansRun is the immutable record of one k-means execution.
type KMeansRun struct {
	runNumber  int
	sseTrace   []float64
	iterations int
	initialSSE float64
	finalSSE   float64
	clusters   *Clusters
}

// RunNumber returns which repetition produced this run, starting at 1.
func (r *KMeansRun) RunNumber() int { return r.runNumber }

// Iterations returns how many iterations the run took to terminate.
func (r *KMeansRun) Iterations() int { return r.iterations }

// SSETrace returns the SSE recorded at each iteration, one entry per
// iteration taken. The returned slice must not be modified.
func (r *KMeansRun) SSETrace() []float64 { return r.sseTrace[:r.iterations] }

// InitialSSE returns the SSE of the first iteration.
func (r *KMeansRun) InitialSSE() float64 { return r.initialSSE }

// FinalSSE returns the SSE of the last iteration.
func (r *KMeansRun) FinalSSE() float64 { return r.finalSSE }

// Clusters returns the final cluster group of this run.
func (r *KMeansRun) Clusters() *Clusters { return r.clusters }

// KMeansRuns is an ordered, immutable sequence of runs, one per
// repetition requested.
type KMeansRuns struct {
	runs []*KMeansRun
}

// RunCount returns the number of runs performed.
func (rs *KMeansRuns) RunCount() int { return len(rs.runs) }

// Run returns the run at the given index, in execution order.
func (rs *KMeansRuns) Run(index int) *KMeansRun { return rs.runs[index] }

// Runs returns all runs in execution order. The returned slice must
// not be modified.
func (rs *KMeansRuns) Runs() []*KMeansRun { return rs.runs }

// BestRun returns the run with the lowest final SSE.
func (rs *KMeansRuns) BestRun() *KMeansRun {
	var best *KMeansRun
	for _, run := range rs.runs {
		if best == nil || run.FinalSSE() < best.FinalSSE() {
			best = run
		}
	}
	return best
}

// PerformRun executes a single k-means run over the dataset and
// returns its record. The initial cluster group is built with the
// configured initialization method; see PerformRunOn for the iteration
// semantics.
func PerformRun(dataset *Dataset, cfg *KMeansConfig, runNumber int) (*KMeansRun, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clusters, err := dataset.ClustersByMethod(cfg.InitMethod, cfg.ClusterCount)
	if err != nil {
		return nil, err
	}
	return PerformRunOn(clusters, cfg, runNumber)
}

// PerformRunOn executes a single k-means run on an already initialized
// cluster group, which lets a caller cluster from hand-picked centroid
// indices instead of one of the built-in strategies.
//
// Each iteration clears all member lists, reassigns every point to its
// nearest centroid, repairs coincident centers, and computes the total
// SSE. The run converges when the relative SSE improvement over the
// previous iteration drops below the threshold; convergence stops the
// run immediately, without the centroid update that would have started
// the next iteration, and the terminal iteration is not counted in the
// run's iteration count. On the very first iteration the previous SSE
// is +Inf, which makes the improvement NaN and therefore never below
// the threshold, so the first iteration can never be the terminal one.
func PerformRunOn(clusters *Clusters, cfg *KMeansConfig, runNumber int) (*KMeansRun, error) {
	run := &KMeansRun{
		runNumber: runNumber,
		sseTrace:  make([]float64, cfg.MaxIterations),
		clusters:  clusters,
	}

	previousSSE := math.Inf(1)
	for i := 0; i < cfg.MaxIterations; i++ {
		for _, cluster := range clusters.ClusterList() {
			cluster.ClearPoints()
		}
		if err := clusters.AssignToNearest(cfg.RandomOnMultiple); err != nil {
			return nil, err
		}
		if err := clusters.FixCoincidentCenters(); err != nil {
			return nil, err
		}

		sse, err := clusters.SumOfSquaredErrors()
		if err != nil {
			return nil, err
		}
		if sse > previousSSE {
			return nil, fmt.Errorf("%w: %g -> %g at iteration %d",
				ErrSSEIncreased, previousSSE, sse, i+1)
		}
		if i == 0 {
			run.initialSSE = sse
		}
		run.sseTrace[i] = sse

		if relativeImprovement(previousSSE, sse) < cfg.ConvergenceThreshold {
			break
		}
		previousSSE = sse

		for _, cluster := range clusters.ClusterList() {
			mean, err := cluster.Mean(true)
			if err != nil {
				return nil, err
			}
			if err := cluster.SetCentroid(mean); err != nil {
				return nil, err
			}
		}
		run.iterations++
	}

	run.finalSSE = previousSSE
	return run, nil
}

// relativeImprovement returns how much lower current is than previous,
// relative to previous. Equal values are an improvement of exactly 0;
// spelling that case out keeps a run with two identical zero SSEs from
// computing 0/0 and never converging.
func relativeImprovement(previous, current float64) float64 {
	if previous == current {
		return 0
	}
	return (previous - current) / previous
}

// PerformRuns executes cfg.RunCount independent k-means runs over the
// dataset sequentially, in run order.
func PerformRuns(dataset *Dataset, cfg *KMeansConfig) (*KMeansRuns, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runs := make([]*KMeansRun, cfg.RunCount)
	for i := range runs {
		run, err := PerformRun(dataset, cfg, i+1)
		if err != nil {
			return nil, err
		}
		runs[i] = run
	}
	return &KMeansRuns{runs: runs}, nil
}

// PerformRunsParallel executes cfg.RunCount independent k-means runs
// concurrently, one goroutine per run, and collects them in run order.
// Each run owns a private cluster group; the shared dataset is only
// read, apart from its internally synchronized random sampler and its
// compute-once caches. The first run to fail cancels the rest.
func PerformRunsParallel(ctx context.Context, dataset *Dataset, cfg *KMeansConfig) (*KMeansRuns, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Force the shared caches before the goroutines race for them.
	dataset.BaryCenter()

	runs := make([]*KMeansRun, cfg.RunCount)
	group, ctx := errgroup.WithContext(ctx)
	for i := range runs {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run, err := PerformRun(dataset, cfg, i+1)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &KMeansRuns{runs: runs}, nil
}
