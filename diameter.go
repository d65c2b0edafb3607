package clusteral

import (
	"errors"
	"math"
)

// ErrUnknownDiameterMethod is returned when an unknown diameter method
// is provided.
var ErrUnknownDiameterMethod = errors.New("unknown diameter method")

// DiameterMethod selects how the diameter of a single cluster is
// measured. All variants are built on squared Euclidean point
// distances.
type DiameterMethod string

const (
	// CompleteDiameter is the maximum pairwise distance among the
	// cluster's members.
	CompleteDiameter DiameterMethod = "complete"

	// AverageDiameter is the summed pairwise distance over all ordered
	// member pairs, divided by n(n-1). The sum includes each member
	// paired with itself (contributing 0) while the denominator counts
	// only distinct ordered pairs; the asymmetry is intentional and
	// kept for output compatibility with the formula as published.
	AverageDiameter DiameterMethod = "average"

	// CentroidDiameter is twice the mean squared distance from the
	// members to the centroid.
	CentroidDiameter DiameterMethod = "centroid"
)

// ParseDiameterMethod converts a configuration string into a
// DiameterMethod. Returns ErrUnknownDiameterMethod if the string
// matches no method.
func ParseDiameterMethod(s string) (DiameterMethod, error) {
	switch DiameterMethod(s) {
	case CompleteDiameter, AverageDiameter, CentroidDiameter:
		return DiameterMethod(s), nil
	default:
		return "", ErrUnknownDiameterMethod
	}
}

// Diameter returns the diameter of this cluster measured with the given
// method. An empty cluster has a diameter of 0 regardless of method;
// that is an anomaly case, not an error. CentroidDiameter fails with
// ErrNoCentroid if no centroid is set.
func (c *Cluster) Diameter(method DiameterMethod) (float64, error) {
	if c.IsEmpty() {
		return 0, nil
	}

	switch method {
	case CompleteDiameter:
		return c.completeDiameter(), nil
	case AverageDiameter:
		return c.averageDiameter(), nil
	case CentroidDiameter:
		return c.centroidDiameter()
	default:
		return 0, ErrUnknownDiameterMethod
	}
}

func (c *Cluster) completeDiameter() float64 {
	greatest := math.Inf(-1)
	for _, outer := range c.points {
		for _, inner := range c.points {
			if dist := outer.SquaredError(inner); dist > greatest {
				greatest = dist
			}
		}
	}
	return greatest
}

func (c *Cluster) averageDiameter() float64 {
	var total float64
	for _, outer := range c.points {
		for _, inner := range c.points {
			total += outer.SquaredError(inner)
		}
	}
	observations := c.PointCount() * (c.PointCount() - 1)
	return total / float64(observations)
}

func (c *Cluster) centroidDiameter() (float64, error) {
	if c.centroid == nil {
		return 0, ErrNoCentroid
	}

	var total float64
	for _, point := range c.points {
		total += point.SquaredError(c.centroid)
	}
	return 2 * (total / float64(c.PointCount())), nil
}
