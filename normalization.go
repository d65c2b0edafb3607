package clusteral

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownNormalizationKind is returned when an unknown normalization
// kind is provided.
var ErrUnknownNormalizationKind = errors.New("unknown normalization kind")

// ErrAlreadyNormalized is returned when Normalize is called on a dataset
// which has already been normalized. Normalization is a one-shot,
// in-place transform; applying it twice would silently skew every
// distance afterwards.
var ErrAlreadyNormalized = errors.New("points already normalized")

// NormalizationKind selects the per-axis transform applied to a dataset
// before clustering.
type NormalizationKind string

const (
	// NormalizationNone leaves axis values untouched. The dataset is
	// still marked normalized so a later call cannot rescale it.
	NormalizationNone NormalizationKind = "none"

	// NormalizationMinMax rescales every axis to [0, 1] using the
	// per-axis minimum and maximum. Axes with zero range normalize to
	// NaN, which distance calculations then skip.
	NormalizationMinMax NormalizationKind = "min-max"

	// NormalizationZScore subtracts the per-axis mean and divides by the
	// sample standard deviation (n-1 denominator). Datasets with fewer
	// than two points normalize to NaN.
	NormalizationZScore NormalizationKind = "z-score"
)

// ParseNormalizationKind converts a configuration string into a
// NormalizationKind. Returns ErrUnknownNormalizationKind if the string
// matches no kind.
func ParseNormalizationKind(s string) (NormalizationKind, error) {
	switch NormalizationKind(s) {
	case NormalizationNone:
		return NormalizationNone, nil
	case NormalizationMinMax:
		return NormalizationMinMax, nil
	case NormalizationZScore:
		return NormalizationZScore, nil
	default:
		return "", ErrUnknownNormalizationKind
	}
}

// Normalize rewrites every axis value of every point in place according
// to the given kind. It may be called at most once per dataset; a second
// call fails with ErrAlreadyNormalized. It must be called before any
// clustering, since derived caches assume point values never change.
func (d *Dataset) Normalize(kind NormalizationKind) error {
	if d.normalized {
		return ErrAlreadyNormalized
	}

	switch kind {
	case NormalizationNone:
		// nothing to rewrite
	case NormalizationMinMax:
		d.normalizeMinMax()
	case NormalizationZScore:
		d.normalizeZScore()
	default:
		return ErrUnknownNormalizationKind
	}

	d.normalized = true
	return nil
}

// axisValues gathers the values of one axis across all points.
func (d *Dataset) axisValues(axis int, dst []float64) []float64 {
	dst = dst[:0]
	for _, point := range d.points {
		dst = append(dst, point.Axis(axis))
	}
	return dst
}

func (d *Dataset) normalizeMinMax() {
	values := make([]float64, 0, len(d.points))
	for axis := 0; axis < d.dimensions; axis++ {
		values = d.axisValues(axis, values)
		lo, hi := floats.Min(values), floats.Max(values)
		scale := hi - lo
		for _, point := range d.points {
			if scale == 0 {
				// Every value on this axis is identical; there is no
				// range to map onto [0, 1].
				point.setAxis(axis, math.NaN())
				continue
			}
			point.setAxis(axis, (point.Axis(axis)-lo)/scale)
		}
	}
}

func (d *Dataset) normalizeZScore() {
	values := make([]float64, 0, len(d.points))
	for axis := 0; axis < d.dimensions; axis++ {
		values = d.axisValues(axis, values)
		mean := stat.Mean(values, nil)
		stdDev := stat.StdDev(values, nil) // sample, n-1 denominator
		for _, point := range d.points {
			// A single-point dataset has no standard deviation; the
			// NaN from gonum propagates into every value here, which
			// distance calculations later skip.
			point.setAxis(axis, (point.Axis(axis)-mean)/stdDev)
		}
	}
}
