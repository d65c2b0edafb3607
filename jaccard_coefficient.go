package clusteral

// NewJaccardCoefficient creates the Jaccard Coefficient external
// validator: TP over (TP+FN+FP), ignoring the pairs both clusterings
// keep apart.
func NewJaccardCoefficient() *Validator {
	return &Validator{
		kind:         JaccardCoefficient,
		name:         "Jaccard Coefficient",
		abbreviation: "JC",
		external:     jaccardCoefficient,
	}
}

func jaccardCoefficient(truth, generated *Clusters) (float64, error) {
	table, err := NewTruthTable(truth, generated)
	if err != nil {
		return 0, err
	}
	tp, fp, fn := table.TruePositives, table.FalsePositives, table.FalseNegatives
	return tp / (tp + fn + fp), nil
}
