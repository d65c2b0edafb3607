package clusteral

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// ErrNoPoints is returned when a dataset would be created without any
// points or a point is missing axis values.
var ErrNoPoints = errors.New("dataset must have at least one point")

// ErrPairCount reports an internal consistency failure: the generated
// unordered pair list did not have exactly n(n-1)/2 entries. This
// indicates a defect in the pair generator, not bad input.
var ErrPairCount = errors.New("unexpected size for unordered pair list")

// ErrTrueClustersUnknown is returned when ground-truth clusters are
// requested from a dataset that does not carry true cluster labels.
var ErrTrueClustersUnknown = errors.New("true clusters are not known")

// ErrTrueClusterRange is returned when a point carries a true cluster
// index outside the dataset's declared true cluster count.
var ErrTrueClusterRange = errors.New("true cluster index out of range")

// Dataset holds an ordered, fixed-size collection of bound points which
// all share one dimensionality.
//
// A dataset is immutable after construction with one exception: a single
// call to Normalize may rewrite axis values in place before clustering
// begins. Derived values (barycenter, unordered pair list) are computed
// lazily on first request and cached permanently; the compute-once
// semantics make concurrent first access from parallel k-means runs safe.
type Dataset struct {
	points           []*Point
	dimensions       int
	trueClusterCount int
	normalized       bool

	baryOnce   sync.Once
	baryCenter *Point

	pairsOnce sync.Once
	pairs     []UnorderedPair
	pairsErr  error

	// The index list below powers random centroid selection. Shuffling
	// it once per epoch and walking it is far cheaper than re-shuffling
	// for every run when many repetitions are requested. The mutex also
	// guards the rand source, which parallel runs share.
	mu              sync.Mutex
	rng             *rand.Rand
	indices         []int
	shuffleRequired bool
	shufflePos      int
}

// NewDataset creates a dataset from rows of axis values, one row per
// point, without ground-truth cluster labels. All rows must have the
// same number of axes.
func NewDataset(rows [][]float64) (*Dataset, error) {
	return newDataset(rows, nil, UnknownCluster)
}

// NewLabeledDataset creates a dataset from rows of axis values plus a
// ground-truth cluster label per point. The labels slice must have one
// entry per row, and trueClusterCount declares how many true clusters
// the labels refer to.
func NewLabeledDataset(rows [][]float64, labels []int, trueClusterCount int) (*Dataset, error) {
	if len(labels) != len(rows) {
		return nil, fmt.Errorf("have %d rows but %d labels", len(rows), len(labels))
	}
	return newDataset(rows, labels, trueClusterCount)
}

func newDataset(rows [][]float64, labels []int, trueClusterCount int) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrNoPoints
	}

	dimensions := len(rows[0])
	if dimensions == 0 {
		return nil, fmt.Errorf("%w: point 0 has no axes", ErrNoPoints)
	}

	d := emptyDataset(dimensions, trueClusterCount, len(rows))
	for i, row := range rows {
		if len(row) != dimensions {
			return nil, fmt.Errorf("point %d has %d axes, want %d",
				i, len(row), dimensions)
		}
		trueCluster := UnknownCluster
		if labels != nil {
			trueCluster = labels[i]
		}
		axes := make([]float64, dimensions)
		copy(axes, row)
		d.points = append(d.points, boundPoint(d, i, axes, trueCluster))
	}
	return d, nil
}

// emptyDataset creates a dataset shell with sampler state prepared for
// the given capacity. The caller fills in the points.
func emptyDataset(dimensions, trueClusterCount, capacity int) *Dataset {
	d := &Dataset{
		points:           make([]*Point, 0, capacity),
		dimensions:       dimensions,
		trueClusterCount: trueClusterCount,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		indices:          make([]int, capacity),
		shuffleRequired:  true,
	}
	for i := range d.indices {
		d.indices[i] = i
	}
	return d
}

// SetRandSource replaces the dataset's random source. Random centroid
// selection, random partitioning, and random tie-breaking all draw from
// this source, so a seeded source makes runs reproducible.
func (d *Dataset) SetRandSource(rng *rand.Rand) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rng = rng
	d.shuffleRequired = true
	d.shufflePos = 0
}

// PointCount returns the number of points in this dataset.
func (d *Dataset) PointCount() int { return len(d.points) }

// Dimensions returns the number of axes each point in this dataset has.
func (d *Dataset) Dimensions() int { return d.dimensions }

// TrueClustersKnown reports whether this dataset carries ground-truth
// cluster labels.
func (d *Dataset) TrueClustersKnown() bool { return d.trueClusterCount >= 0 }

// TrueClusterCount returns the number of ground-truth clusters,
// UnknownCluster if the true clusters are not known.
func (d *Dataset) TrueClusterCount() int { return d.trueClusterCount }

// IsNormalized reports whether Normalize has been applied.
func (d *Dataset) IsNormalized() bool { return d.normalized }

// Points returns all points in this dataset. The returned slice must
// not be modified.
func (d *Dataset) Points() []*Point { return d.points }

// Point returns the point at the given index.
func (d *Dataset) Point(index int) *Point { return d.points[index] }

// CanContain reports whether a point has the same dimensionality as the
// points of this dataset.
func (d *Dataset) CanContain(point *Point) bool {
	return point != nil && point.Dimensions() == d.dimensions
}

// HasPoint reports whether the given point is one of this dataset's
// bound points.
func (d *Dataset) HasPoint(point *Point) bool {
	return point != nil && point.dataset == d
}

// NearestPoint returns the dataset point nearest to the given point by
// squared error.
func (d *Dataset) NearestPoint(point *Point) *Point {
	return NearestPoint(point, d.points)
}

// FarthestPoint returns the dataset point farthest from the given point
// by squared error.
func (d *Dataset) FarthestPoint(point *Point) *Point {
	return FarthestPoint(point, d.points)
}

// BaryCenter returns the mean of all points across each axis, as a free
// point. The result is computed once and cached; dataset points are
// read-only by the time anything asks for it.
func (d *Dataset) BaryCenter() *Point {
	d.baryOnce.Do(func() {
		totals := make([]float64, d.dimensions)
		for _, point := range d.points {
			for i := range totals {
				totals[i] += point.axes[i]
			}
		}
		for i := range totals {
			totals[i] /= float64(len(d.points))
		}
		d.baryCenter = NewPoint(totals...)
	})
	return d.baryCenter
}

// UnorderedPointPairs returns every unordered pair {a, b} of distinct
// dataset points, each pair exactly once.
//
// Building the list is O(n^2) and happens on the first call only; the
// result is cached permanently. The generated list is checked against
// the expected n(n-1)/2 size, and any deviation is reported as
// ErrPairCount since it would mean the generator itself is broken.
func (d *Dataset) UnorderedPointPairs() ([]UnorderedPair, error) {
	d.pairsOnce.Do(func() {
		n := len(d.points)
		pairs := make([]UnorderedPair, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, NewUnorderedPair(d.points[i], d.points[j]))
			}
		}

		if expected := n * (n - 1) / 2; len(pairs) != expected {
			d.pairsErr = fmt.Errorf("%w: have %d, want %d",
				ErrPairCount, len(pairs), expected)
			return
		}
		d.pairs = pairs
	})
	return d.pairs, d.pairsErr
}

// TrueClusters materializes the ground-truth clusters of this dataset
// as a new Clusters group: one cluster per true cluster index, each
// holding the points labeled with it. The resulting clusters have no
// centroids.
//
// A fresh group is built on every call so callers may consume it freely.
func (d *Dataset) TrueClusters() (*Clusters, error) {
	if !d.TrueClustersKnown() {
		return nil, ErrTrueClustersUnknown
	}

	clusters := newClusters(d)
	for i := 0; i < d.trueClusterCount; i++ {
		clusters.AddCluster()
	}

	for _, point := range d.points {
		index := point.TrueClusterIndex()
		if index < 0 || index >= d.trueClusterCount {
			return nil, fmt.Errorf("%w: point %d has true cluster %d of %d",
				ErrTrueClusterRange, point.Index(), index, d.trueClusterCount)
		}
		if err := clusters.Cluster(index).AddPoint(point); err != nil {
			return nil, err
		}
	}

	return clusters, nil
}

// Copy returns a deep copy of this dataset: new points with copied axis
// values, bound to the new dataset. The normalized flag carries over;
// cached derived values do not and are recomputed on demand.
func (d *Dataset) Copy() *Dataset {
	clone := emptyDataset(d.dimensions, d.trueClusterCount, len(d.points))
	for i, point := range d.points {
		axes := make([]float64, len(point.axes))
		copy(axes, point.axes)
		clone.points = append(clone.points,
			boundPoint(clone, i, axes, point.trueCluster))
	}
	clone.normalized = d.normalized
	return clone
}

// randomIndices returns count distinct point indices chosen uniformly at
// random. Indices are drawn from a shuffled list which is only
// re-shuffled once exhausted, so repeated runs do not pay for a shuffle
// on every call while still never repeating an index within an epoch.
func (d *Dataset) randomIndices(count int) []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shufflePos+count >= len(d.indices) {
		d.shuffleRequired = true
		d.shufflePos = 0
	}
	if d.shuffleRequired {
		d.rng.Shuffle(len(d.indices), func(i, j int) {
			d.indices[i], d.indices[j] = d.indices[j], d.indices[i]
		})
		d.shuffleRequired = false
	}

	chosen := make([]int, count)
	for i := range chosen {
		chosen[i] = d.indices[d.shufflePos]
		d.shufflePos++
	}
	return chosen
}

// randIntn draws a uniform int in [0, n) from the dataset's shared
// random source.
func (d *Dataset) randIntn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(n)
}
