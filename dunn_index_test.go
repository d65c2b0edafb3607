package clusteral

import (
	"errors"
	"testing"
)

// TestDunnIndex tests the ratio under different linkage and diameter
// choices
func TestDunnIndex(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0}, {1}, {3}, {4}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := buildGroup(t, dataset,
		[][]int{{0, 1}, {2, 3}},
		[][]float64{{0.5}, {3.5}})

	// Single linkage: nearest cross pair is (1, 3), distance 4. The
	// largest complete diameter is 1 in both clusters.
	validator, err := NewDunnIndex(SingleLinkage, CompleteDiameter)
	if err != nil {
		t.Fatalf("NewDunnIndex() error = %v", err)
	}
	got, err := validator.ValidateInternal(group)
	if err != nil {
		t.Fatalf("ValidateInternal() error = %v", err)
	}
	if got != 4 {
		t.Errorf("ValidateInternal(single/complete) = %v, want 4", got)
	}

	// Centroid linkage: centroids sit 9 apart squared. Both centroid
	// diameters are 2 * 0.25.
	validator, err = NewDunnIndex(CentroidLinkage, CentroidDiameter)
	if err != nil {
		t.Fatalf("NewDunnIndex() error = %v", err)
	}
	got, err = validator.ValidateInternal(group)
	if err != nil {
		t.Fatalf("ValidateInternal() error = %v", err)
	}
	if got != 18 {
		t.Errorf("ValidateInternal(centroid/centroid) = %v, want 18", got)
	}
}

// TestDunnIndexMissingCentroid tests error propagation from the
// centroid-based methods
func TestDunnIndexMissingCentroid(t *testing.T) {
	dataset, err := NewDataset([][]float64{{0}, {1}, {3}, {4}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	group := buildGroup(t, dataset, [][]int{{0, 1}, {2, 3}}, nil)

	validator, err := NewDunnIndex(CentroidLinkage, CompleteDiameter)
	if err != nil {
		t.Fatalf("NewDunnIndex() error = %v", err)
	}
	if _, err := validator.ValidateInternal(group); !errors.Is(err, ErrNoCentroid) {
		t.Errorf("ValidateInternal() error = %v, want ErrNoCentroid", err)
	}
}
