package clusteral

import (
	"errors"
	"testing"
)

// externalFixture returns the ground-truth group over a four-point
// labeled dataset plus two generated groups: one matching the labels
// exactly and one merging a point across the label boundary.
func externalFixture(t *testing.T) (truth, perfect, mixed *Clusters) {
	t.Helper()
	dataset, err := NewLabeledDataset(
		[][]float64{{0}, {1}, {3}, {4}},
		[]int{0, 0, 1, 1}, 2)
	if err != nil {
		t.Fatalf("NewLabeledDataset() error = %v", err)
	}

	truth, err = dataset.TrueClusters()
	if err != nil {
		t.Fatalf("TrueClusters() error = %v", err)
	}
	perfect = buildGroup(t, dataset, [][]int{{0, 1}, {2, 3}}, nil)
	mixed = buildGroup(t, dataset, [][]int{{0, 1, 2}, {3}}, nil)
	return truth, perfect, mixed
}

// TestTruthTableCounts tests pair classification for a perfect and a
// partially wrong clustering
func TestTruthTableCounts(t *testing.T) {
	truth, perfect, mixed := externalFixture(t)

	table, err := NewTruthTable(truth, perfect)
	if err != nil {
		t.Fatalf("NewTruthTable() error = %v", err)
	}
	if table.PairCount() != 6 {
		t.Fatalf("PairCount() = %d, want 6", table.PairCount())
	}
	if table.TruePositives != 2 || table.TrueNegatives != 4 ||
		table.FalsePositives != 0 || table.FalseNegatives != 0 {
		t.Errorf("perfect match counts = TP %v TN %v FP %v FN %v, want 2 4 0 0",
			table.TruePositives, table.TrueNegatives,
			table.FalsePositives, table.FalseNegatives)
	}

	// Merging point 2 into the first cluster turns its pairings with
	// points 0 and 1 into false positives and breaks the true pair
	// with point 3.
	table, err = NewTruthTable(truth, mixed)
	if err != nil {
		t.Fatalf("NewTruthTable() error = %v", err)
	}
	if table.TruePositives != 1 || table.TrueNegatives != 2 ||
		table.FalsePositives != 2 || table.FalseNegatives != 1 {
		t.Errorf("mixed match counts = TP %v TN %v FP %v FN %v, want 1 2 2 1",
			table.TruePositives, table.TrueNegatives,
			table.FalsePositives, table.FalseNegatives)
	}
}

// TestTruthTableUnassignedPoint tests the fatal case of a paired point
// with no owner in the generated group
func TestTruthTableUnassignedPoint(t *testing.T) {
	truth, _, _ := externalFixture(t)
	partial := buildGroup(t, truth.Dataset(), [][]int{{0, 1}, {2}}, nil)

	if _, err := NewTruthTable(truth, partial); !errors.Is(err, ErrNoOwner) {
		t.Errorf("NewTruthTable() with unassigned point error = %v, want ErrNoOwner", err)
	}
}
