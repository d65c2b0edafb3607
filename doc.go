/*
Package clusteral implements K-means clustering with cluster validity
analysis for Go.

Clusteral clusters numeric datasets with the classic iterative K-means
algorithm and then scores the result with internal validity indices
(Calinski-Harabasz, Davies-Bouldin, Dunn Index, Silhouette Width) or,
when ground-truth labels are known, external ones (Rand Statistic,
Jaccard Coefficient, Fowlkes-Mallows).

# Overview

A Dataset holds the points, their dimensionality, and optional
ground-truth cluster labels. The engine builds a Clusters group from
one of three initialization strategies (random selection, random
partition, maximin) and iterates assignment and centroid updates until
the relative SSE improvement falls below a convergence threshold. The
Clusters group enforces that no point ever belongs to two clusters at
once; every membership change goes through its ownership map.

# Quick Start

Load a dataset, run K-means a few times, and score the best run:

	package main

	import (
	    "fmt"
	    "log"

	    "github.com/whirvis/clusteral"
	)

	func main() {
	    dataset, err := clusteral.Open("iris.data", true)
	    if err != nil {
	        log.Fatal(err)
	    }
	    if err := dataset.Normalize(clusteral.NormalizationMinMax); err != nil {
	        log.Fatal(err)
	    }

	    cfg := &clusteral.KMeansConfig{
	        ClusterCount:         3,
	        MaxIterations:        100,
	        ConvergenceThreshold: 0.001,
	        RunCount:             5,
	        InitMethod:           clusteral.RandomSelectionInit,
	    }
	    runs, err := clusteral.PerformRuns(dataset, cfg)
	    if err != nil {
	        log.Fatal(err)
	    }

	    validator := clusteral.NewSilhouetteWidth()
	    best := runs.BestRun()
	    index, err := validator.Validate(best.Clusters())
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Printf("SW (%d) = %.4f\n", best.Clusters().ClusterCount(), index)
	}

Runs are independent; PerformRunsParallel executes them concurrently
when many repetitions are requested.
*/
package clusteral
