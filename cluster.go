package clusteral

import (
	"errors"
	"math"
)

// ErrEmptyCluster is returned when a mean is requested from a cluster
// with no members and no fallback was requested.
var ErrEmptyCluster = errors.New("cluster is empty")

// ErrNoPreviousMean is returned when a mean is requested from an empty
// cluster with the previous-mean fallback, but no mean was ever
// computed for it.
var ErrNoPreviousMean = errors.New("cluster has no previous mean")

// ErrNoCentroid is returned when an operation requires a centroid and
// the cluster has none set.
var ErrNoCentroid = errors.New("cluster has no centroid")

// ErrIncompatiblePoint is returned when a point's dimensionality does
// not match the dataset behind a cluster group.
var ErrIncompatiblePoint = errors.New("point incompatible with dataset")

// Cluster is one cluster of dataset points within a Clusters group.
//
// A cluster never owns its membership outright: adding and removing
// points goes through the group's ownership map first, so a point can
// never be a member of two clusters in the same group. The centroid is
// a separate, optional point (often free) and is not required to be a
// member.
type Cluster struct {
	group    *Clusters
	index    int
	centroid *Point
	points   []*Point

	// prevMean remembers the last computed mean so a cluster that was
	// emptied mid-iteration can still report a centroid position.
	prevMean *Point
}

// Group returns the Clusters group this cluster belongs to.
func (c *Cluster) Group() *Clusters { return c.group }

// Index returns this cluster's index within its group.
func (c *Cluster) Index() int { return c.index }

// Centroid returns this cluster's centroid, nil if none is set.
func (c *Cluster) Centroid() *Point { return c.centroid }

// SetCentroid sets this cluster's centroid, which may be nil to unset
// it. The point need not be a member of the cluster, but it must have
// the dataset's dimensionality.
func (c *Cluster) SetCentroid(point *Point) error {
	if point != nil && !c.group.dataset.CanContain(point) {
		return ErrIncompatiblePoint
	}
	c.centroid = point
	return nil
}

// PointCount returns the number of member points.
func (c *Cluster) PointCount() int { return len(c.points) }

// IsEmpty reports whether this cluster has no member points.
func (c *Cluster) IsEmpty() bool { return len(c.points) == 0 }

// Points returns the member points of this cluster, in the order they
// were added. The returned slice must not be modified.
func (c *Cluster) Points() []*Point { return c.points }

// Point returns the member point at the given index.
func (c *Cluster) Point(index int) *Point { return c.points[index] }

// HasPoint reports whether a point equal to the given one is a member
// of this cluster.
func (c *Cluster) HasPoint(point *Point) bool {
	if point == nil {
		return false
	}
	for _, member := range c.points {
		if member.Equal(point) {
			return true
		}
	}
	return false
}

// AddPoint adds a dataset point to this cluster. Ownership is claimed
// through the group before the membership list is touched, so the two
// structures stay in agreement even when the claim fails. Adding a
// point that is already a member is a no-op; adding a point owned by
// another cluster of the group fails with ErrAlreadyOwned.
func (c *Cluster) AddPoint(point *Point) error {
	for _, member := range c.points {
		if member == point {
			return nil // already a member
		}
	}
	if err := c.group.assignOwner(point, c); err != nil {
		return err
	}
	c.points = append(c.points, point)
	return nil
}

// AddPoints adds each of the given dataset points to this cluster,
// stopping at the first point whose ownership claim fails.
func (c *Cluster) AddPoints(points ...*Point) error {
	for _, point := range points {
		if err := c.AddPoint(point); err != nil {
			return err
		}
	}
	return nil
}

// RemovePoint removes a point from this cluster and releases its
// ownership in the group. Removing a point that is not a member is a
// no-op.
func (c *Cluster) RemovePoint(point *Point) {
	for i, member := range c.points {
		if member == point {
			c.points = append(c.points[:i], c.points[i+1:]...)
			c.group.clearOwner(point)
			return
		}
	}
}

// ClearPoints removes every member point from this cluster, releasing
// ownership of each. The centroid and previous mean are untouched.
func (c *Cluster) ClearPoints() {
	for _, point := range c.points {
		c.group.clearOwner(point)
	}
	c.points = c.points[:0]
}

// Mean returns a free point which is the mean of this cluster's members
// across each axis.
//
// When the cluster is empty and usePreviousIfEmpty is true, the last
// computed mean is returned instead; this is what lets the k-means
// update step position a centroid for a cluster that lost all of its
// members during the current iteration. An empty cluster without that
// fallback fails with ErrEmptyCluster, and with the fallback but no
// prior mean with ErrNoPreviousMean.
func (c *Cluster) Mean(usePreviousIfEmpty bool) (*Point, error) {
	if len(c.points) == 0 {
		if !usePreviousIfEmpty {
			return nil, ErrEmptyCluster
		}
		if c.prevMean == nil {
			return nil, ErrNoPreviousMean
		}
		return c.prevMean, nil
	}

	total := sumPoints(c.points)
	c.prevMean = total.DivideBy(float64(len(c.points)))
	return c.prevMean, nil
}

// MeanDistance returns the mean squared error from the given point to
// the members of this cluster.
//
// If the given point instance is itself a member it is excluded from
// the calculation; other members with equal coordinates are not. A
// cluster whose only member is the given instance yields NaN (zero
// distances over zero members).
func (c *Cluster) MeanDistance(point *Point) float64 {
	var total float64
	var count int
	for _, member := range c.points {
		if member == point {
			continue
		}
		total += point.SquaredError(member)
		count++
	}
	return total / float64(count)
}

// Compactness returns the mean squared error between this cluster's
// centroid and its members. NaN if no centroid is set.
func (c *Cluster) Compactness() float64 {
	if c.centroid == nil {
		return math.NaN()
	}
	return c.MeanDistance(c.centroid)
}

// Dispersion returns the square root of the mean squared error from
// this cluster's members to their mean. Returns 0 for an empty cluster,
// which usually indicates an anomaly upstream.
func (c *Cluster) Dispersion() float64 {
	if len(c.points) == 0 {
		return 0
	}

	mean, _ := c.Mean(false) // cannot fail, cluster is not empty

	var total float64
	for _, point := range c.points {
		total += point.SquaredError(mean)
	}
	return math.Sqrt(total / float64(len(c.points)))
}

// SumOfSquaredErrors returns the squared errors between this cluster's
// centroid and each of its members, summed. Fails with ErrNoCentroid if
// the cluster has no centroid; asking for an SSE without one means the
// engine's update step was skipped, which is a defect.
func (c *Cluster) SumOfSquaredErrors() (float64, error) {
	if c.centroid == nil {
		return 0, ErrNoCentroid
	}

	var sse float64
	for _, point := range c.points {
		sse += c.centroid.SquaredError(point)
	}
	return sse, nil
}

// HasCoincidenceCenter reports whether this cluster is a degenerate
// singleton: exactly one member which is also its centroid. The k-means
// repair step relocates a far point into such clusters so they can
// attract members again.
func (c *Cluster) HasCoincidenceCenter() bool {
	return len(c.points) == 1 && c.HasPoint(c.centroid)
}
