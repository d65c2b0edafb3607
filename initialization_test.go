package clusteral

import (
	"errors"
	"math/rand"
	"testing"
)

// TestClustersFromIndices tests explicit centroid seeding
func TestClustersFromIndices(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0, 0}, {5, 5}, {9, 9}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}

	group, err := dataset.ClustersFromIndices(0, 2)
	if err != nil {
		t.Fatalf("ClustersFromIndices() error = %v", err)
	}
	if group.ClusterCount() != 2 {
		t.Fatalf("ClusterCount() = %d, want 2", group.ClusterCount())
	}

	for i, want := range []int{0, 2} {
		cluster := group.Cluster(i)
		if cluster.PointCount() != 1 || cluster.Point(0) != dataset.Point(want) {
			t.Errorf("cluster %d should hold point %d as its sole member", i, want)
		}
		centroid := cluster.Centroid()
		if centroid == nil || !centroid.IsFree() {
			t.Errorf("cluster %d centroid should be a free copy", i)
		}
		if centroid.Axis(0) != dataset.Point(want).Axis(0) {
			t.Errorf("cluster %d centroid = %v, want the seed point's values", i, centroid)
		}
	}

	if _, err := dataset.ClustersFromIndices(0, 7); err == nil {
		t.Errorf("ClustersFromIndices() with out-of-range index should fail")
	}
	if _, err := dataset.ClustersFromIndices(0, 0); !errors.Is(err, ErrAlreadyOwned) {
		t.Errorf("ClustersFromIndices() with duplicate index error = %v, want ErrAlreadyOwned", err)
	}
	if _, err := dataset.ClustersFromIndices(); !errors.Is(err, ErrClusterCount) {
		t.Errorf("ClustersFromIndices() with no indices error = %v, want ErrClusterCount", err)
	}
}

// TestRandomSelectionClusters tests the random singleton seeding
func TestRandomSelectionClusters(t *testing.T) {
	rows := make([][]float64, 8)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(i)}
	}
	dataset, err := NewDataset(rows)
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	dataset.SetRandSource(rand.New(rand.NewSource(3)))

	group, err := dataset.RandomSelectionClusters(3)
	if err != nil {
		t.Fatalf("RandomSelectionClusters() error = %v", err)
	}
	if group.ClusterCount() != 3 {
		t.Fatalf("ClusterCount() = %d, want 3", group.ClusterCount())
	}

	seen := make(map[*Point]bool)
	for _, cluster := range group.ClusterList() {
		if cluster.PointCount() != 1 {
			t.Errorf("cluster %d holds %d points, want 1", cluster.Index(), cluster.PointCount())
		}
		member := cluster.Point(0)
		if seen[member] {
			t.Errorf("point %d seeded two clusters", member.Index())
		}
		seen[member] = true
		if cluster.Centroid() == nil {
			t.Errorf("cluster %d has no centroid", cluster.Index())
		}
	}

	if _, err := dataset.RandomSelectionClusters(9); !errors.Is(err, ErrClusterCount) {
		t.Errorf("RandomSelectionClusters() beyond dataset size error = %v, want ErrClusterCount", err)
	}
}

// TestRandomPartitionClusters tests partition seeding: centroids set to
// the partition means, membership cleared afterwards
func TestRandomPartitionClusters(t *testing.T) {
	rows := make([][]float64, 12)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	dataset, err := NewDataset(rows)
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	dataset.SetRandSource(rand.New(rand.NewSource(11)))

	group, err := dataset.RandomPartitionClusters(3)
	if err != nil {
		t.Fatalf("RandomPartitionClusters() error = %v", err)
	}
	if group.ClusterCount() != 3 {
		t.Fatalf("ClusterCount() = %d, want 3", group.ClusterCount())
	}

	for _, cluster := range group.ClusterList() {
		if !cluster.IsEmpty() {
			t.Errorf("cluster %d still holds members after partition init", cluster.Index())
		}
	}
	if group.AssignedCount() != 0 {
		t.Errorf("AssignedCount() = %d, want 0 after membership clear", group.AssignedCount())
	}

	// At least one cluster must have been dealt points and carry a
	// centroid within the data's range.
	var withCentroid int
	for _, cluster := range group.ClusterList() {
		if centroid := cluster.Centroid(); centroid != nil {
			withCentroid++
			if centroid.Axis(0) < 0 || centroid.Axis(0) > 11 {
				t.Errorf("centroid %v outside the data range", centroid)
			}
		}
	}
	if withCentroid == 0 {
		t.Errorf("no cluster received a centroid")
	}
}

// TestMaximinClusters tests the farthest-point heuristic with its
// deterministic middle-point seed
func TestMaximinClusters(t *testing.T) {
	// Middle index of 5 points is (5-1)/2 = 2, the point at x=4.
	dataset, err := NewDataset([][]float64{{0}, {1}, {4}, {9}, {10}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}

	group, err := dataset.MaximinClusters(3)
	if err != nil {
		t.Fatalf("MaximinClusters() error = %v", err)
	}

	// First centroid x=4. The point maximizing distance to it is x=10
	// (36). With centroids {4, 10}, min distances are 16, 9, 25 for
	// x=0, 1, 9; x=0 wins.
	want := []int{2, 4, 0}
	for i, index := range want {
		if got := group.Cluster(i).Point(0); got != dataset.Point(index) {
			t.Errorf("centroid %d seeded from point %d, want point %d",
				i, got.Index(), index)
		}
	}
}

// TestMaximinClustersFrom tests the caller-chosen seed index
func TestMaximinClustersFrom(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0}, {5}, {10}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}

	group, err := dataset.MaximinClustersFrom(2, 0)
	if err != nil {
		t.Fatalf("MaximinClustersFrom() error = %v", err)
	}
	if got := group.Cluster(0).Point(0); got != dataset.Point(0) {
		t.Errorf("first centroid seeded from point %d, want point 0", got.Index())
	}
	if got := group.Cluster(1).Point(0); got != dataset.Point(2) {
		t.Errorf("second centroid seeded from point %d, want point 2", got.Index())
	}

	if _, err := dataset.MaximinClustersFrom(2, 9); err == nil {
		t.Errorf("MaximinClustersFrom() with bad seed index should fail")
	}
}

// TestClustersByMethod tests strategy dispatch
func TestClustersByMethod(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0}, {1}, {2}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}

	for _, method := range []InitMethod{
		RandomSelectionInit, RandomPartitionInit, MaximinInit,
	} {
		group, err := dataset.ClustersByMethod(method, 2)
		if err != nil {
			t.Errorf("ClustersByMethod(%s) error = %v", method, err)
			continue
		}
		if group.ClusterCount() != 2 {
			t.Errorf("ClustersByMethod(%s) built %d clusters, want 2",
				method, group.ClusterCount())
		}
	}

	if _, err := dataset.ClustersByMethod("kmeans++", 2); !errors.Is(err, ErrUnknownInitMethod) {
		t.Errorf("ClustersByMethod(kmeans++) error = %v, want ErrUnknownInitMethod", err)
	}
}
