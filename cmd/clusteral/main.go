// Command clusteral clusters a dataset file with K-means and reports
// per-run SSE traces plus a chosen cluster validity index.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/whirvis/clusteral"
)

type programArgs struct {
	dataPath   string
	labeled    bool
	outputMode string
	outputPath string
	parallel   bool
	seed       int64
	verbose    bool

	normalization clusteral.NormalizationKind
	validator     *clusteral.Validator
	kmeans        clusteral.KMeansConfig
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	args, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid arguments")
	}
	if args.verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if err := run(args, log); err != nil {
		log.Fatal().Err(err).Msg("clustering failed")
	}
}

func parseArgs(argv []string) (*programArgs, error) {
	args := &programArgs{}

	var normalization, initMethod, validator, linkage, diameter string
	fs := flag.NewFlagSet("clusteral", flag.ExitOnError)
	fs.StringVar(&args.dataPath, "data", "", "path to the dataset file (required)")
	fs.BoolVar(&args.labeled, "labeled", false,
		"dataset rows carry a trailing true-cluster column")
	fs.IntVar(&args.kmeans.ClusterCount, "clusters", 0, "number of clusters K (required)")
	fs.IntVar(&args.kmeans.MaxIterations, "max-iterations", 100,
		"iteration cap per run")
	fs.Float64Var(&args.kmeans.ConvergenceThreshold, "threshold", 0.001,
		"relative SSE improvement below which a run converges")
	fs.IntVar(&args.kmeans.RunCount, "runs", 1, "number of independent runs")
	fs.StringVar(&initMethod, "init", "random-selection",
		"initialization method: random-selection, random-partition, maximin")
	fs.StringVar(&normalization, "normalize", "none",
		"normalization: none, min-max, z-score")
	fs.StringVar(&validator, "validator", "",
		"validity index to report (e.g. ch, db, dunn, sw, rand, jaccard, fm) (required)")
	fs.StringVar(&linkage, "linkage", "",
		"linkage method for the Dunn Index")
	fs.StringVar(&diameter, "diameter", "",
		"diameter method for the Dunn Index")
	fs.BoolVar(&args.kmeans.RandomOnMultiple, "random-tie", false,
		"choose randomly among equally near centroids instead of the first")
	fs.StringVar(&args.outputMode, "output", "human", "output mode: human, csv")
	fs.StringVar(&args.outputPath, "out", "", "output file (default stdout)")
	fs.BoolVar(&args.parallel, "parallel", false, "execute runs concurrently")
	fs.Int64Var(&args.seed, "seed", 0, "random seed (0 means time-based)")
	fs.BoolVar(&args.verbose, "verbose", false, "enable debug logging")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	if args.dataPath == "" {
		return nil, fmt.Errorf("-data is required")
	}
	if validator == "" {
		return nil, fmt.Errorf("-validator is required")
	}
	if args.outputMode != "human" && args.outputMode != "csv" {
		return nil, fmt.Errorf("unknown output mode %q", args.outputMode)
	}

	var err error
	if args.normalization, err = clusteral.ParseNormalizationKind(normalization); err != nil {
		return nil, fmt.Errorf("-normalize: %w", err)
	}
	if args.kmeans.InitMethod, err = clusteral.ParseInitMethod(initMethod); err != nil {
		return nil, fmt.Errorf("-init: %w", err)
	}

	kind, err := clusteral.ParseValidatorKind(validator)
	if err != nil {
		return nil, fmt.Errorf("-validator: %w", err)
	}
	cfg := clusteral.ValidatorConfig{
		Linkage:  clusteral.LinkageMethod(linkage),
		Diameter: clusteral.DiameterMethod(diameter),
	}
	if args.validator, err = clusteral.NewValidator(kind, cfg); err != nil {
		return nil, fmt.Errorf("-validator: %w", err)
	}

	return args, args.kmeans.Validate()
}

func run(args *programArgs, log zerolog.Logger) error {
	dataset, err := clusteral.Open(args.dataPath, args.labeled)
	if err != nil {
		return err
	}
	log.Debug().
		Int("points", dataset.PointCount()).
		Int("dimensions", dataset.Dimensions()).
		Bool("labeled", dataset.TrueClustersKnown()).
		Msg("dataset loaded")

	if args.validator.IsExternal() && !dataset.TrueClustersKnown() {
		return fmt.Errorf("%s needs a dataset with true cluster labels",
			args.validator.Name())
	}
	if dataset.TrueClustersKnown() &&
		dataset.TrueClusterCount() != args.kmeans.ClusterCount {
		log.Warn().
			Int("requested", args.kmeans.ClusterCount).
			Int("true", dataset.TrueClusterCount()).
			Msg("cluster count does not match the file's true cluster count")
	}

	if args.seed != 0 {
		dataset.SetRandSource(rand.New(rand.NewSource(args.seed)))
	}
	if err := dataset.Normalize(args.normalization); err != nil {
		return err
	}

	var runs *clusteral.KMeansRuns
	if args.parallel {
		runs, err = clusteral.PerformRunsParallel(context.Background(), dataset, &args.kmeans)
	} else {
		runs, err = clusteral.PerformRuns(dataset, &args.kmeans)
	}
	if err != nil {
		return err
	}
	log.Debug().Int("runs", runs.RunCount()).Msg("clustering complete")

	out := io.Writer(os.Stdout)
	if args.outputPath != "" {
		f, err := os.Create(args.outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if args.outputMode == "csv" {
		return printCSVResults(out, args, runs)
	}
	return printHumanResults(out, args, runs)
}

// printHumanResults writes one block per run: the SSE of every
// iteration followed by the validity index of the final clusters.
func printHumanResults(out io.Writer, args *programArgs, runs *clusteral.KMeansRuns) error {
	for _, run := range runs.Runs() {
		fmt.Fprintf(out, "Run %d\n-----\n", run.RunNumber())
		for i, sse := range run.SSETrace() {
			fmt.Fprintf(out, "Iteration %d: SSE = %.4f\n", i+1, sse)
		}

		index, err := args.validator.Validate(run.Clusters())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%d) = %.4f\n\n",
			args.validator.Abbreviation(),
			run.Clusters().ClusterCount(), index)
	}

	fmt.Fprintf(out, "Additional Notes\n-----\n"+
		"Normalized with:  %s\n"+
		"Initialized with: %s\n"+
		"Using validator:  %s\n-----\n",
		args.normalization, args.kmeans.InitMethod, args.validator.Name())
	return nil
}

// printCSVResults writes one record per iteration with the run number
// and SSE; the validator column is filled on each run's final record.
func printCSVResults(out io.Writer, args *programArgs, runs *clusteral.KMeansRuns) error {
	w := csv.NewWriter(out)
	abbr := args.validator.Abbreviation()
	if err := w.Write([]string{"run", "iteration", "sse", abbr}); err != nil {
		return err
	}

	for _, run := range runs.Runs() {
		index, err := args.validator.Validate(run.Clusters())
		if err != nil {
			return err
		}

		trace := run.SSETrace()
		for i, sse := range trace {
			record := []string{
				strconv.Itoa(run.RunNumber()),
				strconv.Itoa(i + 1),
				strconv.FormatFloat(sse, 'f', -1, 64),
				"",
			}
			if i == len(trace)-1 {
				record[3] = strconv.FormatFloat(index, 'f', -1, 64)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
