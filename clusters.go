package clusteral

import (
	"errors"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// ErrAlreadyOwned is returned when a point is added to a cluster while
// another cluster of the same group still owns it. Ownership must be
// released before a point can move; a silent re-assignment here would
// leave the group's bookkeeping and some cluster's member list in
// disagreement.
var ErrAlreadyOwned = errors.New("point already part of another cluster")

// ErrNotInGroup is returned when a point or cluster from outside the
// group is used where a group resident is required.
var ErrNotInGroup = errors.New("not part of this cluster group")

// ErrNoOwner reports that a point expected to reside in some cluster
// has no owner. During coincidence repair this means the assignment
// step upstream did not do its job.
var ErrNoOwner = errors.New("point currently has no owner")

// ErrNoCentroids is returned when no cluster in the group has a
// centroid to measure against.
var ErrNoCentroids = errors.New("no clusters have a centroid")

// ErrUnfixableCoincidence reports a coincident center which cannot be
// repaired: the relocation candidate is itself the centroid of another
// cluster, and taking it would destroy that cluster instead.
var ErrUnfixableCoincidence = errors.New("coincident center cannot be fixed")

// Clusters is a group of clusters over one dataset and the integrity
// backbone of the package: it holds the single authoritative mapping
// from point to owning cluster, which guarantees that no point is ever
// a member of two clusters in the same group.
//
// Alongside the ownership map the group keeps a roaring bitmap of the
// point indices currently assigned to any cluster. The bitmap makes
// "which points still need a cluster" a cheap question during the
// assignment step, and both structures are always mutated together.
//
// A group is private to one k-means run (or one truth materialization)
// and is not safe for concurrent use.
type Clusters struct {
	dataset  *Dataset
	clusters []*Cluster
	owners   map[*Point]*Cluster
	assigned *roaring.Bitmap
}

// newClusters creates an empty cluster group over the given dataset.
func newClusters(dataset *Dataset) *Clusters {
	return &Clusters{
		dataset:  dataset,
		clusters: nil,
		owners:   make(map[*Point]*Cluster),
		assigned: roaring.New(),
	}
}

// Dataset returns the dataset this group clusters.
func (cs *Clusters) Dataset() *Dataset { return cs.dataset }

// PointCount returns the number of points in the underlying dataset.
func (cs *Clusters) PointCount() int { return cs.dataset.PointCount() }

// BaryCenter returns the barycenter of the underlying dataset.
func (cs *Clusters) BaryCenter() *Point { return cs.dataset.BaryCenter() }

// UnorderedPointPairs returns the underlying dataset's cached pair
// list.
func (cs *Clusters) UnorderedPointPairs() ([]UnorderedPair, error) {
	return cs.dataset.UnorderedPointPairs()
}

// ClusterCount returns the number of clusters in this group.
func (cs *Clusters) ClusterCount() int { return len(cs.clusters) }

// Cluster returns the cluster at the given index.
func (cs *Clusters) Cluster(index int) *Cluster { return cs.clusters[index] }

// ClusterList returns all clusters in this group, in creation order.
// The returned slice must not be modified.
func (cs *Clusters) ClusterList() []*Cluster { return cs.clusters }

// AddCluster creates a new, empty cluster in this group and returns it.
func (cs *Clusters) AddCluster() *Cluster {
	cluster := &Cluster{group: cs, index: len(cs.clusters)}
	cs.clusters = append(cs.clusters, cluster)
	return cluster
}

// AddClusterWithCentroid creates a new cluster seeded with the given
// dataset point: the point becomes the sole member, and a free copy of
// it becomes the centroid. Fails if the point is already owned by
// another cluster in this group.
func (cs *Clusters) AddClusterWithCentroid(point *Point) (*Cluster, error) {
	cluster := cs.AddCluster()
	if err := cluster.AddPoint(point); err != nil {
		return nil, err
	}
	if err := cluster.SetCentroid(point.FreeCopy()); err != nil {
		return nil, err
	}
	return cluster, nil
}

// RemoveCluster removes a cluster from this group, releasing ownership
// of all its points. Removing a cluster that is not part of the group
// is a no-op.
func (cs *Clusters) RemoveCluster(cluster *Cluster) {
	for i, candidate := range cs.clusters {
		if candidate == cluster {
			cluster.ClearPoints()
			cs.clusters = append(cs.clusters[:i], cs.clusters[i+1:]...)
			return
		}
	}
}

// Owner returns the cluster which currently owns the given point, nil
// if the point is unassigned.
func (cs *Clusters) Owner(point *Point) *Cluster {
	if point == nil {
		return nil
	}
	return cs.owners[point]
}

// ExpectOwner returns the cluster which currently owns the given point,
// failing with ErrNoOwner if the point is unassigned.
func (cs *Clusters) ExpectOwner(point *Point) (*Cluster, error) {
	owner := cs.owners[point]
	if owner == nil {
		return nil, ErrNoOwner
	}
	return owner, nil
}

// AssignedCount returns how many dataset points are currently owned by
// some cluster of this group.
func (cs *Clusters) AssignedCount() int {
	return int(cs.assigned.GetCardinality())
}

// Unassigned returns the dataset points which no cluster of this group
// currently owns, in dataset order.
func (cs *Clusters) Unassigned() []*Point {
	points := make([]*Point, 0, cs.dataset.PointCount()-cs.AssignedCount())
	for _, point := range cs.dataset.Points() {
		if !cs.assigned.Contains(uint32(point.Index())) {
			points = append(points, point)
		}
	}
	return points
}

// assignOwner records that a cluster owns a point. Cluster.AddPoint
// must call this before touching its member list; the claim fails when
// the point belongs to a foreign dataset, the cluster is not part of
// this group, or another cluster already owns the point.
func (cs *Clusters) assignOwner(point *Point, cluster *Cluster) error {
	if !cs.dataset.HasPoint(point) {
		return ErrNotInGroup
	}
	if cluster.group != cs {
		return ErrNotInGroup
	}
	if owner := cs.owners[point]; owner != nil && owner != cluster {
		return ErrAlreadyOwned
	}

	cs.owners[point] = cluster
	cs.assigned.Add(uint32(point.Index()))
	return nil
}

// clearOwner releases ownership of a point. Cluster.RemovePoint and
// Cluster.ClearPoints call this right after dropping the point from
// their member list.
func (cs *Clusters) clearOwner(point *Point) {
	delete(cs.owners, point)
	cs.assigned.Remove(uint32(point.Index()))
}

// NearestClusterByCentroid returns the cluster whose centroid has the
// lowest squared error to the given point, nil if no cluster in the
// group has a centroid.
//
// With excludeOwner, the point's current owning cluster is skipped;
// the silhouette calculation uses this to find the nearest *other*
// cluster. With randomOnMultiple, ties for the minimum distance are
// collected in a second pass over the clusters and one of the tied
// clusters is chosen uniformly at random; otherwise the first cluster
// found wins. The second pass is deliberate: collecting the exact tie
// set after the minimum is known keeps the choice unbiased under
// floating-point equality.
func (cs *Clusters) NearestClusterByCentroid(
	point *Point,
	randomOnMultiple bool,
	excludeOwner bool,
) *Cluster {
	var nearest *Cluster
	lowest := math.Inf(1)

	owner := cs.Owner(point)

	for _, cluster := range cs.clusters {
		if cluster.centroid == nil {
			continue // nothing to compare with
		}
		if excludeOwner && cluster == owner {
			continue // ignore this cluster by request
		}
		if err := point.SquaredError(cluster.centroid); err < lowest {
			lowest = err
			nearest = cluster
		}
	}

	if randomOnMultiple && nearest != nil {
		tied := cs.collectNearestTies(point, lowest, excludeOwner, owner)
		nearest = tied[cs.dataset.randIntn(len(tied))]
	}

	return nearest
}

// collectNearestTies re-scans the group for every cluster whose
// centroid distance equals the known minimum.
func (cs *Clusters) collectNearestTies(
	point *Point,
	lowest float64,
	excludeOwner bool,
	owner *Cluster,
) []*Cluster {
	var tied []*Cluster
	for _, cluster := range cs.clusters {
		if cluster.centroid == nil {
			continue
		}
		if excludeOwner && cluster == owner {
			continue
		}
		if point.SquaredError(cluster.centroid) == lowest {
			tied = append(tied, cluster)
		}
	}
	return tied
}

// AssignToNearest adds every dataset point not currently owned by any
// cluster of this group to its nearest cluster by centroid. Fails with
// ErrNoCentroids when no cluster has a centroid to measure against.
func (cs *Clusters) AssignToNearest(randomOnMultiple bool) error {
	for index, point := range cs.dataset.Points() {
		if cs.assigned.Contains(uint32(index)) {
			continue // already assigned to a cluster
		}
		nearest := cs.NearestClusterByCentroid(point, randomOnMultiple, false)
		if nearest == nil {
			return ErrNoCentroids
		}
		if err := nearest.AddPoint(point); err != nil {
			return err
		}
	}
	return nil
}

// FixCoincidentCenters repairs every cluster in the group which has a
// coincidence center (a singleton whose sole member is its own
// centroid): the dataset point farthest from that centroid is moved
// into the cluster and promoted to centroid, giving the cluster a
// position that can attract members on the next assignment.
//
// The move is refused in two situations, both fatal: the farthest
// point has no owner to take it from (ErrNoOwner, the assignment step
// upstream is broken), or the farthest point is itself the centroid of
// its owning cluster (ErrUnfixableCoincidence, removing it would
// destroy that cluster's center).
func (cs *Clusters) FixCoincidentCenters() error {
	for _, cluster := range cs.clusters {
		if err := cs.fixCoincidenceCenter(cluster); err != nil {
			return err
		}
	}
	return nil
}

func (cs *Clusters) fixCoincidenceCenter(cluster *Cluster) error {
	if !cluster.HasCoincidenceCenter() {
		return nil // nothing to fix
	}

	farthest := cs.dataset.FarthestPoint(cluster.Centroid())

	owner, err := cs.ExpectOwner(farthest)
	if err != nil {
		return err
	}
	if farthest.Equal(owner.Centroid()) {
		return ErrUnfixableCoincidence
	}

	owner.RemovePoint(farthest)
	if err := cluster.AddPoint(farthest); err != nil {
		return err
	}
	return cluster.SetCentroid(farthest)
}

// SumOfSquaredErrors returns the SSE of every cluster in this group
// added together. Fails with ErrNoCentroid if any cluster lacks a
// centroid.
func (cs *Clusters) SumOfSquaredErrors() (float64, error) {
	var total float64
	for _, cluster := range cs.clusters {
		sse, err := cluster.SumOfSquaredErrors()
		if err != nil {
			return 0, err
		}
		total += sse
	}
	return total, nil
}
