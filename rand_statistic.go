package clusteral

// NewRandStatistic creates the Rand Statistic external validator: the
// share of point pairs on which the generated clustering and the
// ground truth agree, (TP+TN) over all pairs. 1.0 means perfect
// agreement.
func NewRandStatistic() *Validator {
	return &Validator{
		kind:         RandStatistic,
		name:         "Rand Statistic",
		abbreviation: "RS",
		external:     randStatistic,
	}
}

func randStatistic(truth, generated *Clusters) (float64, error) {
	table, err := NewTruthTable(truth, generated)
	if err != nil {
		return 0, err
	}
	agreement := table.TruePositives + table.TrueNegatives
	return agreement / float64(table.PairCount()), nil
}
