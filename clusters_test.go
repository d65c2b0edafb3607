package clusteral

import (
	"errors"
	"math/rand"
	"testing"
)

// TestNearestClusterByCentroid tests the nearest lookup, owner
// exclusion, and the no-centroid case
func TestNearestClusterByCentroid(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {10, 10}, {4, 4}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := newClusters(dataset)
	a, b := group.AddCluster(), group.AddCluster()

	// No cluster has a centroid yet.
	if got := group.NearestClusterByCentroid(dataset.Point(2), false, false); got != nil {
		t.Errorf("NearestClusterByCentroid() with no centroids = %v, want nil", got)
	}

	if err := a.SetCentroid(NewPoint(0, 0)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}
	if err := b.SetCentroid(NewPoint(10, 10)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	// (4,4) is nearer to (0,0): 32 vs 72.
	if got := group.NearestClusterByCentroid(dataset.Point(2), false, false); got != a {
		t.Errorf("NearestClusterByCentroid() = cluster %d, want cluster 0", got.Index())
	}

	// Excluding the owner forces the other cluster.
	if err := a.AddPoint(dataset.Point(2)); err != nil {
		t.Fatalf("AddPoint() error = %v", err)
	}
	if got := group.NearestClusterByCentroid(dataset.Point(2), false, true); got != b {
		t.Errorf("NearestClusterByCentroid(excludeOwner) = cluster %d, want cluster 1", got.Index())
	}
}

// TestNearestClusterTieBreaking tests first-wins versus random
// selection among clusters tied for the minimum distance
func TestNearestClusterTieBreaking(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	dataset.SetRandSource(rand.New(rand.NewSource(7)))

	group := newClusters(dataset)
	tied := []*Cluster{group.AddCluster(), group.AddCluster(), group.AddCluster()}
	for _, cluster := range tied[:2] {
		if err := cluster.SetCentroid(NewPoint(1, 0)); err != nil {
			t.Fatalf("SetCentroid() error = %v", err)
		}
	}
	if err := tied[2].SetCentroid(NewPoint(5, 5)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	// Without randomness, the first tied cluster always wins.
	for i := 0; i < 10; i++ {
		if got := group.NearestClusterByCentroid(dataset.Point(0), false, false); got != tied[0] {
			t.Fatalf("NearestClusterByCentroid() = cluster %d, want cluster 0", got.Index())
		}
	}

	// With randomness, only the two tied clusters may be chosen, and
	// over enough draws both should appear.
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		got := group.NearestClusterByCentroid(dataset.Point(0), true, false)
		if got == tied[2] {
			t.Fatalf("random tie-break chose a cluster not in the tie set")
		}
		seen[got.Index()] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("random tie-break never chose one of the tied clusters: %v", seen)
	}
}

// TestAssignToNearest tests assignment of unowned points only
func TestAssignToNearest(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {1, 1}, {10, 10}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := newClusters(dataset)
	a, b := group.AddCluster(), group.AddCluster()

	// No centroids anywhere is a fatal condition.
	if err := group.AssignToNearest(false); !errors.Is(err, ErrNoCentroids) {
		t.Errorf("AssignToNearest() with no centroids error = %v, want ErrNoCentroids", err)
	}

	if err := a.SetCentroid(NewPoint(0, 0)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}
	if err := b.SetCentroid(NewPoint(10, 10)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	// Pre-assign point 0 to the far cluster; assignment must not move
	// points that already have an owner.
	if err := b.AddPoint(dataset.Point(0)); err != nil {
		t.Fatalf("AddPoint() error = %v", err)
	}
	if err := group.AssignToNearest(false); err != nil {
		t.Fatalf("AssignToNearest() error = %v", err)
	}

	if group.Owner(dataset.Point(0)) != b {
		t.Errorf("pre-assigned point was moved")
	}
	if group.Owner(dataset.Point(1)) != a {
		t.Errorf("point 1 assigned to cluster %d, want cluster 0",
			group.Owner(dataset.Point(1)).Index())
	}
	if group.Owner(dataset.Point(2)) != b {
		t.Errorf("point 2 assigned to cluster %d, want cluster 1",
			group.Owner(dataset.Point(2)).Index())
	}
	if got := group.AssignedCount(); got != 3 {
		t.Errorf("AssignedCount() = %d, want 3", got)
	}
}

// TestFixCoincidentCenters tests the successful relocation repair
func TestFixCoincidentCenters(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {1, 0}, {10, 10}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := newClusters(dataset)
	a, b := group.AddCluster(), group.AddCluster()

	for i := 0; i < 2; i++ {
		if err := a.AddPoint(dataset.Point(i)); err != nil {
			t.Fatalf("AddPoint() error = %v", err)
		}
	}
	if err := a.SetCentroid(NewPoint(0.5, 0)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	// Cluster b holds only its own centroid point: a coincidence center.
	stuck := dataset.Point(2)
	if err := b.AddPoint(stuck); err != nil {
		t.Fatalf("AddPoint() error = %v", err)
	}
	if err := b.SetCentroid(stuck); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	if err := group.FixCoincidentCenters(); err != nil {
		t.Fatalf("FixCoincidentCenters() error = %v", err)
	}

	// The farthest point from (10,10) is point 0; it must have moved
	// into b and become its centroid.
	moved := dataset.Point(0)
	if group.Owner(moved) != b {
		t.Errorf("farthest point owned by cluster %d, want the repaired cluster",
			group.Owner(moved).Index())
	}
	if b.Centroid() != moved {
		t.Errorf("repaired centroid = %v, want the relocated point", b.Centroid())
	}
	if a.HasPoint(moved) {
		t.Errorf("relocated point still a member of its old cluster")
	}
	if b.HasCoincidenceCenter() {
		t.Errorf("repaired cluster should no longer be a singleton coincidence")
	}
}

// TestFixCoincidentCentersNoOwner tests the fatal no-owner anomaly
func TestFixCoincidentCentersNoOwner(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {10, 10}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := newClusters(dataset)
	cluster := group.AddCluster()

	stuck := dataset.Point(1)
	if err := cluster.AddPoint(stuck); err != nil {
		t.Fatalf("AddPoint() error = %v", err)
	}
	if err := cluster.SetCentroid(stuck); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	// Point 0 is the farthest from the coincident center but belongs to
	// no cluster, which means assignment upstream failed.
	if err := group.FixCoincidentCenters(); !errors.Is(err, ErrNoOwner) {
		t.Errorf("FixCoincidentCenters() error = %v, want ErrNoOwner", err)
	}
}

// TestFixCoincidentCentersUnfixable tests the fatal condition where the
// relocation candidate is another cluster's centroid
func TestFixCoincidentCentersUnfixable(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {1, 0}, {10, 10}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := newClusters(dataset)
	a, b := group.AddCluster(), group.AddCluster()

	// Cluster a is anchored on point 0 itself, with a second member so
	// it is not coincident.
	for i := 0; i < 2; i++ {
		if err := a.AddPoint(dataset.Point(i)); err != nil {
			t.Fatalf("AddPoint() error = %v", err)
		}
	}
	if err := a.SetCentroid(dataset.Point(0)); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	stuck := dataset.Point(2)
	if err := b.AddPoint(stuck); err != nil {
		t.Fatalf("AddPoint() error = %v", err)
	}
	if err := b.SetCentroid(stuck); err != nil {
		t.Fatalf("SetCentroid() error = %v", err)
	}

	// The farthest point from (10,10) is point 0, which is cluster a's
	// centroid; taking it would destroy that cluster's center.
	if err := group.FixCoincidentCenters(); !errors.Is(err, ErrUnfixableCoincidence) {
		t.Errorf("FixCoincidentCenters() error = %v, want ErrUnfixableCoincidence", err)
	}
}

// TestRemoveCluster tests cluster removal releasing its points
func TestRemoveCluster(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := newClusters(dataset)
	a, b := group.AddCluster(), group.AddCluster()

	if err := a.AddPoint(dataset.Point(0)); err != nil {
		t.Fatalf("AddPoint() error = %v", err)
	}
	group.RemoveCluster(a)

	if group.ClusterCount() != 1 {
		t.Fatalf("ClusterCount() = %d, want 1", group.ClusterCount())
	}
	if group.Owner(dataset.Point(0)) != nil {
		t.Errorf("removed cluster's point should be unowned")
	}
	if err := b.AddPoint(dataset.Point(0)); err != nil {
		t.Errorf("AddPoint() after cluster removal error = %v", err)
	}
}
