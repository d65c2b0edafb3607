package clusteral

import (
	"errors"
	"testing"
)

// TestCalinskiHarabasz tests the index on a hand-computed layout
func TestCalinskiHarabasz(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0}, {2}, {6}, {8}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := buildGroup(t, dataset,
		[][]int{{0, 1}, {2, 3}},
		[][]float64{{1}, {7}})

	// Barycenter 4. Within-cluster SSE is 4; between-cluster term is
	// 2*9 + 2*9 = 36; the scale (n-k)/(k-1) is 2. So 36/4 * 2.
	got, err := NewCalinskiHarabasz().ValidateInternal(group)
	if err != nil {
		t.Fatalf("ValidateInternal() error = %v", err)
	}
	if got != 18 {
		t.Errorf("ValidateInternal() = %v, want 18", got)
	}
}

// TestCalinskiHarabaszNoCentroid tests failure on a centroid-less
// cluster
func TestCalinskiHarabaszNoCentroid(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0}, {2}, {6}, {8}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := buildGroup(t, dataset,
		[][]int{{0, 1}, {2, 3}},
		[][]float64{{1}, nil})

	if _, err := NewCalinskiHarabasz().ValidateInternal(group); !errors.Is(err, ErrNoCentroid) {
		t.Errorf("ValidateInternal() error = %v, want ErrNoCentroid", err)
	}
}
