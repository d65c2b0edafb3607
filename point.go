package clusteral

import (
	"math"
	"strconv"
	"strings"
)

// FreePointIndex is the index reported by points which do not originate
// from a dataset (e.g., computed centroids and means).
const FreePointIndex = -1

// UnknownCluster indicates a point's true cluster is not known.
const UnknownCluster = -1

// Point is an ordered tuple of real-valued axes with a fixed
// dimensionality.
//
// A point is either bound or free. Bound points originate from a Dataset
// and carry their index within it, plus an optional ground-truth cluster
// index. Free points belong to no dataset; they are produced by scalar
// arithmetic and mean calculations, and are what centroids usually are.
//
// Axis values are mutated in place only by Dataset.Normalize, exactly
// once, before any clustering takes place. Everywhere else a Point is
// read-only.
type Point struct {
	dataset     *Dataset
	index       int
	axes        []float64
	trueCluster int
}

// NewPoint creates a free point from the given axis values.
func NewPoint(axes ...float64) *Point {
	return &Point{
		dataset:     nil,
		index:       FreePointIndex,
		axes:        axes,
		trueCluster: UnknownCluster,
	}
}

// boundPoint creates a point owned by a dataset. Only the dataset
// constructors and the loader call this.
func boundPoint(dataset *Dataset, index int, axes []float64, trueCluster int) *Point {
	return &Point{
		dataset:     dataset,
		index:       index,
		axes:        axes,
		trueCluster: trueCluster,
	}
}

// Dataset returns the dataset this point originates from, nil if this
// point is free.
func (p *Point) Dataset() *Dataset { return p.dataset }

// Index returns the index of this point within its dataset,
// FreePointIndex if this point is free.
func (p *Point) Index() int { return p.index }

// IsFree reports whether this point belongs to no dataset.
func (p *Point) IsFree() bool { return p.dataset == nil }

// Dimensions returns the number of axes this point has.
func (p *Point) Dimensions() int { return len(p.axes) }

// Axis returns the value of the axis at the given index.
func (p *Point) Axis(index int) float64 { return p.axes[index] }

// setAxis updates an axis value in place. Only Dataset.Normalize calls
// this, and only before any clustering has started.
func (p *Point) setAxis(index int, value float64) { p.axes[index] = value }

// TrueClusterKnown reports whether this point carries a ground-truth
// cluster index.
func (p *Point) TrueClusterKnown() bool { return p.trueCluster >= 0 }

// TrueClusterIndex returns the ground-truth cluster index of this point,
// UnknownCluster if it has none.
func (p *Point) TrueClusterIndex() int { return p.trueCluster }

// MultiplyBy returns a new free point with every axis multiplied by the
// given scalar.
func (p *Point) MultiplyBy(scalar float64) *Point {
	result := make([]float64, len(p.axes))
	for i, axis := range p.axes {
		result[i] = axis * scalar
	}
	return NewPoint(result...)
}

// DivideBy returns a new free point with every axis divided by the given
// scalar.
func (p *Point) DivideBy(scalar float64) *Point {
	result := make([]float64, len(p.axes))
	for i, axis := range p.axes {
		result[i] = axis / scalar
	}
	return NewPoint(result...)
}

// FreeCopy returns a free point with the same axis values as this one.
// Centroids are stored as free copies so a cluster's centroid is a
// position, never one of the dataset's points itself.
func (p *Point) FreeCopy() *Point {
	axes := make([]float64, len(p.axes))
	copy(axes, p.axes)
	return NewPoint(axes...)
}

// SquaredError returns the squared Euclidean distance between this point
// and the given point, that is the sum of the squared per-axis
// differences. The square root is deliberately not taken; this feeds
// sum-of-squared-error calculations where ordering is all that matters.
//
// Axes where either operand is NaN are skipped. NaN axes occur after
// normalization when an axis could not be normalized (zero range for
// min-max, fewer than two samples for z-score).
//
// Comparing points of different dimensionality is a programming error
// and panics.
func (p *Point) SquaredError(other *Point) float64 {
	if other == p {
		return 0 // no need to calculate
	}
	if len(other.axes) != len(p.axes) {
		panic("clusteral: dimension mismatch")
	}

	var err float64
	for i := range p.axes {
		if math.IsNaN(p.axes[i]) || math.IsNaN(other.axes[i]) {
			continue // cannot measure along this axis
		}
		dist := other.axes[i] - p.axes[i]
		err += dist * dist
	}
	return err
}

// Compare orders points lexicographically: the first axis on which the
// two points differ decides, ascending. It returns -1, 0, or +1.
// Comparing points of different dimensionality panics.
func (p *Point) Compare(other *Point) int {
	if other == p {
		return 0
	}
	if len(other.axes) != len(p.axes) {
		panic("clusteral: dimension mismatch")
	}
	for i := range p.axes {
		if p.axes[i] != other.axes[i] {
			if p.axes[i] > other.axes[i] {
				return +1
			}
			return -1
		}
	}
	return 0
}

// Equal reports whether two points have the same dataset index, the same
// axis values, and the same true cluster index.
//
// NaN axis values compare equal to each other here, so points remain
// comparable after a normalization that produced NaN axes.
func (p *Point) Equal(other *Point) bool {
	if other == p {
		return true
	}
	if other == nil || p == nil {
		return false
	}
	return p.index == other.index &&
		p.trueCluster == other.trueCluster &&
		axesEqual(p.axes, other.axes)
}

func axesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

// String formats the point the way dataset files store it: axis values
// separated by spaces, followed by the true cluster index when known.
func (p *Point) String() string {
	var sb strings.Builder
	for i, axis := range p.axes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(axis, 'g', -1, 64))
	}
	if p.TrueClusterKnown() {
		if len(p.axes) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(p.trueCluster))
	}
	return sb.String()
}

// NearestPoint returns the candidate with the lowest squared error to
// the given point, nil if there are no candidates. Ties are broken by
// iteration order: the first candidate encountered wins.
func NearestPoint(point *Point, candidates []*Point) *Point {
	var nearest *Point
	lowest := math.Inf(1)
	for _, candidate := range candidates {
		err := point.SquaredError(candidate)
		if err < lowest {
			lowest = err
			nearest = candidate
		}
	}
	return nearest
}

// FarthestPoint returns the candidate with the greatest squared error to
// the given point, nil if there are no candidates. Ties are broken by
// iteration order: the first candidate encountered wins.
func FarthestPoint(point *Point, candidates []*Point) *Point {
	var farthest *Point
	greatest := math.Inf(-1)
	for _, candidate := range candidates {
		err := point.SquaredError(candidate)
		if err > greatest {
			greatest = err
			farthest = candidate
		}
	}
	return farthest
}

// sumPoints adds the given points axis by axis, returning a free point.
// The slice must not be empty and all points must share dimensionality.
func sumPoints(points []*Point) *Point {
	axes := make([]float64, points[0].Dimensions())
	for _, point := range points {
		if point.Dimensions() != len(axes) {
			panic("clusteral: dimension mismatch")
		}
		for i := range axes {
			axes[i] += point.axes[i]
		}
	}
	return NewPoint(axes...)
}

// UnorderedPair is a pair of points without an ordering: {a, b} and
// {b, a} are the same pair. Datasets enumerate these once and cache them
// for the pairwise truth tables used by external validators.
type UnorderedPair struct {
	first  *Point
	second *Point
}

// NewUnorderedPair creates an unordered pair of two points.
func NewUnorderedPair(first, second *Point) UnorderedPair {
	return UnorderedPair{first: first, second: second}
}

// First returns one point of the pair.
func (u UnorderedPair) First() *Point { return u.first }

// Second returns the other point of the pair.
func (u UnorderedPair) Second() *Point { return u.second }

// Equal reports whether two pairs contain equal points, in either order.
func (u UnorderedPair) Equal(other UnorderedPair) bool {
	return (u.first.Equal(other.first) && u.second.Equal(other.second)) ||
		(u.first.Equal(other.second) && u.second.Equal(other.first))
}
