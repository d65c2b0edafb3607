package clusteral

import (
	"errors"
	"math"
)

// ErrUnknownLinkageMethod is returned when an unknown linkage method is
// provided.
var ErrUnknownLinkageMethod = errors.New("unknown linkage method")

// LinkageMethod selects how the distance between two clusters is
// measured. All variants are built on squared Euclidean point
// distances.
type LinkageMethod string

const (
	// SingleLinkage is the minimum pairwise distance between members of
	// the two clusters.
	SingleLinkage LinkageMethod = "single"

	// CompleteLinkage is the maximum pairwise distance between members
	// of the two clusters.
	CompleteLinkage LinkageMethod = "complete"

	// AverageLinkage is the mean pairwise distance between members of
	// the two clusters.
	AverageLinkage LinkageMethod = "average"

	// CentroidLinkage is the distance between the two centroids.
	CentroidLinkage LinkageMethod = "centroid"

	// AverageCentroidsLinkage is the mean distance from each cluster's
	// members to the other cluster's centroid.
	AverageCentroidsLinkage LinkageMethod = "average-centroids"
)

// ParseLinkageMethod converts a configuration string into a
// LinkageMethod. Returns ErrUnknownLinkageMethod if the string matches
// no method.
func ParseLinkageMethod(s string) (LinkageMethod, error) {
	switch LinkageMethod(s) {
	case SingleLinkage, CompleteLinkage, AverageLinkage,
		CentroidLinkage, AverageCentroidsLinkage:
		return LinkageMethod(s), nil
	default:
		return "", ErrUnknownLinkageMethod
	}
}

// Distance returns the distance between this cluster and another
// cluster of the same group, measured with the given linkage method.
// The distance between a cluster and itself is 0. Centroid-based
// linkages fail with ErrNoCentroid when a centroid is missing.
func (c *Cluster) Distance(other *Cluster, linkage LinkageMethod) (float64, error) {
	if other == c {
		return 0, nil // nothing to compute
	}

	switch linkage {
	case SingleLinkage:
		return c.singleLinkageDistance(other), nil
	case CompleteLinkage:
		return c.completeLinkageDistance(other), nil
	case AverageLinkage:
		return c.averageLinkageDistance(other), nil
	case CentroidLinkage:
		return c.centroidLinkageDistance(other)
	case AverageCentroidsLinkage:
		return c.averageCentroidsLinkageDistance(other)
	default:
		return 0, ErrUnknownLinkageMethod
	}
}

func (c *Cluster) singleLinkageDistance(other *Cluster) float64 {
	lowest := math.Inf(1)
	for _, ours := range c.points {
		for _, theirs := range other.points {
			if dist := ours.SquaredError(theirs); dist < lowest {
				lowest = dist
			}
		}
	}
	return lowest
}

func (c *Cluster) completeLinkageDistance(other *Cluster) float64 {
	greatest := math.Inf(-1)
	for _, ours := range c.points {
		for _, theirs := range other.points {
			if dist := ours.SquaredError(theirs); dist > greatest {
				greatest = dist
			}
		}
	}
	return greatest
}

func (c *Cluster) averageLinkageDistance(other *Cluster) float64 {
	var total float64
	for _, ours := range c.points {
		for _, theirs := range other.points {
			total += ours.SquaredError(theirs)
		}
	}
	observations := c.PointCount() * other.PointCount()
	return total / float64(observations)
}

func (c *Cluster) centroidLinkageDistance(other *Cluster) (float64, error) {
	if c.centroid == nil || other.centroid == nil {
		return 0, ErrNoCentroid
	}
	return c.centroid.SquaredError(other.centroid), nil
}

func (c *Cluster) averageCentroidsLinkageDistance(other *Cluster) (float64, error) {
	if c.centroid == nil || other.centroid == nil {
		return 0, ErrNoCentroid
	}

	var total float64
	for _, theirs := range other.points {
		total += theirs.SquaredError(c.centroid)
	}
	for _, ours := range c.points {
		total += ours.SquaredError(other.centroid)
	}
	observations := c.PointCount() * other.PointCount()
	return total / float64(observations), nil
}
