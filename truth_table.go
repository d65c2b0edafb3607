package clusteral

// TruthTable counts pairwise agreement between a ground-truth cluster
// group and a generated one. Every unordered pair of dataset points is
// classified by whether the two points share a cluster in each group:
// both (true positive), neither (true negative), generated only (false
// positive), or truth only (false negative). The external validity
// indices are all simple ratios over these four counts.
//
// The counts are held as float64 so the formulas downstream need no
// conversions.
type TruthTable struct {
	pairs []UnorderedPair

	TruePositives  float64
	TrueNegatives  float64
	FalsePositives float64
	FalseNegatives float64
}

// NewTruthTable classifies every unordered point pair of the
// ground-truth group's dataset against both groups. The pair list is
// the dataset's cached one, so repeated tables over the same dataset
// cost O(n^2) only once. Fails if any paired point lacks an owner in
// either group.
func NewTruthTable(truth, generated *Clusters) (*TruthTable, error) {
	pairs, err := truth.UnorderedPointPairs()
	if err != nil {
		return nil, err
	}

	table := &TruthTable{pairs: pairs}
	for _, pair := range pairs {
		sameTruth, err := sameCluster(truth, pair)
		if err != nil {
			return nil, err
		}
		sameGenerated, err := sameCluster(generated, pair)
		if err != nil {
			return nil, err
		}

		switch {
		case sameGenerated && sameTruth:
			table.TruePositives++
		case !sameGenerated && !sameTruth:
			table.TrueNegatives++
		case sameGenerated:
			table.FalsePositives++
		default:
			table.FalseNegatives++
		}
	}
	return table, nil
}

// sameCluster reports whether both points of a pair are owned by the
// same cluster of the given group.
func sameCluster(clusters *Clusters, pair UnorderedPair) (bool, error) {
	first, err := clusters.ExpectOwner(pair.First())
	if err != nil {
		return false, err
	}
	second, err := clusters.ExpectOwner(pair.Second())
	if err != nil {
		return false, err
	}
	return first.Index() == second.Index(), nil
}

// PairCount returns how many unordered pairs the table classified.
func (t *TruthTable) PairCount() int { return len(t.pairs) }
