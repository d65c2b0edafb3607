package clusteral

// NewCalinskiHarabasz creates the Calinski-Harabasz internal validator.
//
// The index is the ratio of between-cluster dispersion (each cluster's
// member count times the squared distance from its centroid to the
// dataset barycenter, summed) to within-cluster dispersion (the total
// SSE), scaled by (n-k)/(k-1). Higher values indicate denser, better
// separated clusters.
func NewCalinskiHarabasz() *Validator {
	return &Validator{
		kind:         CalinskiHarabasz,
		name:         "Calinski-Harabasz",
		abbreviation: "CH",
		internal:     calinskiHarabasz,
	}
}

func calinskiHarabasz(clusters *Clusters) (float64, error) {
	intra, err := clusters.SumOfSquaredErrors()
	if err != nil {
		return 0, err
	}

	var inter float64
	barycenter := clusters.BaryCenter()
	for _, cluster := range clusters.ClusterList() {
		if cluster.Centroid() == nil {
			return 0, ErrNoCentroid
		}
		distance := barycenter.SquaredError(cluster.Centroid())
		inter += float64(cluster.PointCount()) * distance
	}

	points := float64(clusters.PointCount())
	count := float64(clusters.ClusterCount())
	ratio := (points - count) / (count - 1)
	return (inter / intra) * ratio, nil
}
