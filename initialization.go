package clusteral

import (
	"errors"
	"fmt"
)

// ErrUnknownInitMethod is returned when an unknown initialization
// method is provided.
var ErrUnknownInitMethod = errors.New("unknown initialization method")

// ErrClusterCount is returned when a requested cluster count cannot be
// satisfied by the dataset.
var ErrClusterCount = errors.New("invalid cluster count")

// InitMethod selects how the initial cluster group for a k-means run
// is built.
type InitMethod string

const (
	// RandomSelectionInit picks K distinct points uniformly at random;
	// each becomes a singleton cluster with that point as both member
	// and centroid.
	RandomSelectionInit InitMethod = "random-selection"

	// RandomPartitionInit assigns every point to one of K clusters
	// uniformly at random, sets each cluster's centroid to the mean of
	// its assigned members, then clears membership so iteration one
	// reassigns from scratch.
	RandomPartitionInit InitMethod = "random-partition"

	// MaximinInit seeds the first centroid with the dataset's middle
	// point and grows the remaining K-1 centroids with the
	// farthest-point heuristic.
	MaximinInit InitMethod = "maximin"
)

// ParseInitMethod converts a configuration string into an InitMethod.
// Returns ErrUnknownInitMethod if the string matches no method.
func ParseInitMethod(s string) (InitMethod, error) {
	switch InitMethod(s) {
	case RandomSelectionInit, RandomPartitionInit, MaximinInit:
		return InitMethod(s), nil
	default:
		return "", ErrUnknownInitMethod
	}
}

// checkClusterCount validates a requested cluster count against the
// dataset size.
func (d *Dataset) checkClusterCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: %d", ErrClusterCount, count)
	}
	if count > len(d.points) {
		return fmt.Errorf("%w: want %d clusters from %d points",
			ErrClusterCount, count, len(d.points))
	}
	return nil
}

// ClustersFromIndices builds a cluster group with one singleton cluster
// per given point index; each cluster holds that point as its sole
// member and a copy of it as its centroid. Indices must be distinct.
func (d *Dataset) ClustersFromIndices(indices ...int) (*Clusters, error) {
	if err := d.checkClusterCount(len(indices)); err != nil {
		return nil, err
	}

	clusters := newClusters(d)
	for _, index := range indices {
		if index < 0 || index >= len(d.points) {
			return nil, fmt.Errorf("point index %d out of range", index)
		}
		if _, err := clusters.AddClusterWithCentroid(d.points[index]); err != nil {
			return nil, err
		}
	}
	return clusters, nil
}

// RandomSelectionClusters builds a cluster group of the given size with
// distinct, uniformly chosen points as the initial centroids.
func (d *Dataset) RandomSelectionClusters(count int) (*Clusters, error) {
	if err := d.checkClusterCount(count); err != nil {
		return nil, err
	}
	return d.ClustersFromIndices(d.randomIndices(count)...)
}

// RandomPartitionClusters builds a cluster group of the given size by
// dealing every dataset point into a uniformly random cluster and
// setting each cluster's centroid to the mean of what it was dealt.
// Membership is then cleared: the random partition only exists to
// position the centroids, and the first iteration reassigns every
// point by distance.
func (d *Dataset) RandomPartitionClusters(count int) (*Clusters, error) {
	if err := d.checkClusterCount(count); err != nil {
		return nil, err
	}

	clusters := newClusters(d)
	for i := 0; i < count; i++ {
		clusters.AddCluster()
	}

	for _, point := range d.points {
		cluster := clusters.Cluster(d.randIntn(count))
		if err := cluster.AddPoint(point); err != nil {
			return nil, err
		}
	}

	for _, cluster := range clusters.ClusterList() {
		mean, err := cluster.Mean(false)
		if err != nil {
			// The random deal left this cluster empty; its centroid
			// stays unset and the assignment step ignores it.
			if errors.Is(err, ErrEmptyCluster) {
				continue
			}
			return nil, err
		}
		if err := cluster.SetCentroid(mean); err != nil {
			return nil, err
		}
		cluster.ClearPoints()
	}

	return clusters, nil
}

// MaximinClusters builds a cluster group of the given size with the
// farthest-point heuristic: the dataset's middle point seeds the first
// centroid, and each subsequent centroid is the point whose minimum
// squared distance to all previously chosen centroids is largest.
func (d *Dataset) MaximinClusters(count int) (*Clusters, error) {
	return d.MaximinClustersFrom(count, (len(d.points)-1)/2)
}

// MaximinClustersFrom is MaximinClusters with a caller-chosen seed
// point index for the first centroid.
func (d *Dataset) MaximinClustersFrom(count, seedIndex int) (*Clusters, error) {
	if err := d.checkClusterCount(count); err != nil {
		return nil, err
	}
	if seedIndex < 0 || seedIndex >= len(d.points) {
		return nil, fmt.Errorf("seed point index %d out of range", seedIndex)
	}

	clusters := newClusters(d)
	if _, err := clusters.AddClusterWithCentroid(d.points[seedIndex]); err != nil {
		return nil, err
	}

	for clusters.ClusterCount() < count {
		next := d.maximinNext(clusters)
		if _, err := clusters.AddClusterWithCentroid(next); err != nil {
			return nil, err
		}
	}
	return clusters, nil
}

// maximinNext finds the unchosen point which maximizes the minimum
// squared distance to every centroid chosen so far. Ties go to the
// first point found in dataset order.
func (d *Dataset) maximinNext(clusters *Clusters) *Point {
	var best *Point
	var bestDist float64

	for _, point := range d.points {
		if clusters.Owner(point) != nil {
			continue // already a centroid
		}

		nearest := clusters.NearestClusterByCentroid(point, false, false)
		dist := point.SquaredError(nearest.Centroid())
		if best == nil || dist > bestDist {
			best = point
			bestDist = dist
		}
	}
	return best
}

// ClustersByMethod builds a cluster group of the given size using the
// given initialization method.
func (d *Dataset) ClustersByMethod(method InitMethod, count int) (*Clusters, error) {
	switch method {
	case RandomSelectionInit:
		return d.RandomSelectionClusters(count)
	case RandomPartitionInit:
		return d.RandomPartitionClusters(count)
	case MaximinInit:
		return d.MaximinClusters(count)
	default:
		return nil, ErrUnknownInitMethod
	}
}
