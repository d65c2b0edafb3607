package clusteral

import "math"

// NewSilhouetteWidth creates the Silhouette Width internal validator.
//
// For every point, a is the mean distance to the other members of its
// own cluster and b the mean distance to the members of the nearest
// other cluster by centroid; the point's coefficient is (b-a)/max(a,b).
// Points whose coefficient is undefined, such as the sole member of a
// singleton cluster, are left out of the average rather than counted as
// zero. The index is the mean coefficient over the counted points.
func NewSilhouetteWidth() *Validator {
	return &Validator{
		kind:         SilhouetteWidth,
		name:         "Silhouette Width",
		abbreviation: "SW",
		internal:     silhouetteWidth,
	}
}

func silhouetteWidth(clusters *Clusters) (float64, error) {
	var total float64
	var counted int

	for _, cluster := range clusters.ClusterList() {
		for _, point := range cluster.Points() {
			nearest := clusters.NearestClusterByCentroid(point, false, true)
			if nearest == nil {
				return 0, ErrNoCentroids
			}

			own := cluster.MeanDistance(point)
			other := nearest.MeanDistance(point)
			widest := math.Max(other, own)
			if math.IsNaN(widest) {
				continue // undefined for this point, leave it out
			}

			total += (other - own) / widest
			counted++
		}
	}

	return total / float64(counted), nil
}
