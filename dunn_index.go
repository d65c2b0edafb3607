package clusteral

import "math"

// NewDunnIndex creates the Dunn Index internal validator. The index is
// the minimum inter-cluster distance over the maximum intra-cluster
// diameter; both the linkage method (for distances) and the diameter
// method must be supplied. Higher values indicate better separation
// relative to cluster size.
func NewDunnIndex(linkage LinkageMethod, diameter DiameterMethod) (*Validator, error) {
	if linkage == "" {
		return nil, ErrLinkageRequired
	}
	if _, err := ParseLinkageMethod(string(linkage)); err != nil {
		return nil, err
	}
	if diameter == "" {
		return nil, ErrDiameterRequired
	}
	if _, err := ParseDiameterMethod(string(diameter)); err != nil {
		return nil, err
	}

	return &Validator{
		kind:         DunnIndex,
		name:         "Dunn Index",
		abbreviation: "DI",
		internal: func(clusters *Clusters) (float64, error) {
			return dunnIndex(clusters, linkage, diameter)
		},
	}, nil
}

func dunnIndex(clusters *Clusters, linkage LinkageMethod, diameter DiameterMethod) (float64, error) {
	minDist, err := minInterClusterDistance(clusters, linkage)
	if err != nil {
		return 0, err
	}
	maxDiam, err := maxIntraClusterDiameter(clusters, diameter)
	if err != nil {
		return 0, err
	}
	return minDist / maxDiam, nil
}

func minInterClusterDistance(clusters *Clusters, linkage LinkageMethod) (float64, error) {
	lowest := math.Inf(1)
	for _, outer := range clusters.ClusterList() {
		for _, inner := range clusters.ClusterList() {
			if inner == outer {
				continue // do not measure against ourselves
			}
			dist, err := outer.Distance(inner, linkage)
			if err != nil {
				return 0, err
			}
			if dist < lowest {
				lowest = dist
			}
		}
	}
	return lowest, nil
}

func maxIntraClusterDiameter(clusters *Clusters, diameter DiameterMethod) (float64, error) {
	highest := math.Inf(-1)
	for _, cluster := range clusters.ClusterList() {
		diam, err := cluster.Diameter(diameter)
		if err != nil {
			return 0, err
		}
		if diam > highest {
			highest = diam
		}
	}
	return highest, nil
}
