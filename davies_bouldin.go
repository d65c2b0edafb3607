package clusteral

import "math"

// NewDaviesBouldin creates the Davies-Bouldin internal validator.
//
// For each cluster the worst similarity to any other cluster is found,
// where similarity is the sum of the two dispersions over the
// difference of the two compactnesses; the index is the mean of these
// worst cases. Lower values indicate better clusterings.
func NewDaviesBouldin() *Validator {
	return &Validator{
		kind:         DaviesBouldin,
		name:         "Davies-Bouldin",
		abbreviation: "DB",
		internal:     daviesBouldin,
	}
}

func daviesBouldin(clusters *Clusters) (float64, error) {
	var total float64
	for _, outer := range clusters.ClusterList() {
		outerDispersion := outer.Dispersion()
		outerCompactness := outer.Compactness()

		worst := math.Inf(-1)
		for _, inner := range clusters.ClusterList() {
			if inner == outer {
				continue // do not measure against ourselves
			}
			dispersion := outerDispersion + inner.Dispersion()
			compactness := outerCompactness - inner.Compactness()
			if result := dispersion / compactness; result > worst {
				worst = result
			}
		}
		total += worst
	}
	return total / float64(clusters.ClusterCount()), nil
}
