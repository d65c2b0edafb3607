package clusteral

import "math"

// NewFowlkesMallows creates the Fowlkes-Mallows external validator:
// TP over the geometric mean of (TP+FN) and (TP+FP).
func NewFowlkesMallows() *Validator {
	return &Validator{
		kind:         FowlkesMallows,
		name:         "Fowlkes-Mallows",
		abbreviation: "FM",
		external:     fowlkesMallows,
	}
}

func fowlkesMallows(truth, generated *Clusters) (float64, error) {
	table, err := NewTruthTable(truth, generated)
	if err != nil {
		return 0, err
	}
	tp, fp, fn := table.TruePositives, table.FalsePositives, table.FalseNegatives
	return tp / math.Sqrt((tp+fn)*(tp+fp)), nil
}
