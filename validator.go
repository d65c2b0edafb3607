package clusteral

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValidator is returned when no validator goes by the given
// name.
var ErrUnknownValidator = errors.New("unknown cluster validator")

// ErrTooFewClusters is returned when a validity index is requested for
// a group with fewer than two clusters. No index is defined for a
// single cluster.
var ErrTooFewClusters = errors.New("must have at least two clusters")

// ErrValidatorShape is returned when an internal validator is applied
// as an external one or the other way around.
var ErrValidatorShape = errors.New("wrong validator shape")

// ErrLinkageRequired is returned when a validator needs a linkage
// method and the configuration does not provide one.
var ErrLinkageRequired = errors.New("a linkage method is required")

// ErrDiameterRequired is returned when a validator needs a diameter
// method and the configuration does not provide one.
var ErrDiameterRequired = errors.New("a diameter method is required")

// ValidatorKind identifies one of the cluster validity indices.
type ValidatorKind string

const (
	CalinskiHarabasz   ValidatorKind = "calinski-harabasz"
	DaviesBouldin      ValidatorKind = "davies-bouldin"
	DunnIndex          ValidatorKind = "dunn-index"
	SilhouetteWidth    ValidatorKind = "silhouette-width"
	RandStatistic      ValidatorKind = "rand-statistic"
	JaccardCoefficient ValidatorKind = "jaccard-coefficient"
	FowlkesMallows     ValidatorKind = "fowlkes-mallows"
)

// validatorNames maps every accepted spelling of a validator's name,
// lowercased, to its kind.
var validatorNames = map[string]ValidatorKind{
	"calinski-harabasz":   CalinskiHarabasz,
	"calinski_harabasz":   CalinskiHarabasz,
	"ch":                  CalinskiHarabasz,
	"davies-bouldin":      DaviesBouldin,
	"davies_bouldin":      DaviesBouldin,
	"db":                  DaviesBouldin,
	"dunn-index":          DunnIndex,
	"dunn_index":          DunnIndex,
	"dunn":                DunnIndex,
	"di":                  DunnIndex,
	"d":                   DunnIndex,
	"silhouette-width":    SilhouetteWidth,
	"silhouette_width":    SilhouetteWidth,
	"sw":                  SilhouetteWidth,
	"rand-statistic":      RandStatistic,
	"rand_statistic":      RandStatistic,
	"rand":                RandStatistic,
	"rs":                  RandStatistic,
	"r":                   RandStatistic,
	"jaccard-coefficient": JaccardCoefficient,
	"jaccard_coefficient": JaccardCoefficient,
	"jaccard":             JaccardCoefficient,
	"jc":                  JaccardCoefficient,
	"j":                   JaccardCoefficient,
	"fowlkes-mallows":     FowlkesMallows,
	"fowlkes_mallows":     FowlkesMallows,
	"fm":                  FowlkesMallows,
}

// ParseValidatorKind converts a configuration string into a
// ValidatorKind, accepting common abbreviations ("ch", "dunn", "rs"
// and so on) case-insensitively. Returns ErrUnknownValidator if the
// string matches no validator.
func ParseValidatorKind(s string) (ValidatorKind, error) {
	kind, ok := validatorNames[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownValidator, s)
	}
	return kind, nil
}

// ValidatorConfig carries the sub-parameters some validators need.
// Only the Dunn Index reads it at present.
type ValidatorConfig struct {
	Linkage  LinkageMethod
	Diameter DiameterMethod
}

// Validator computes one cluster validity index. A validator comes in
// one of two shapes: internal validators judge a single cluster group
// on its own geometry, external validators compare a generated group
// against the ground truth. Exactly one of the two calculation
// functions is set, and the Validate methods check the shape before
// dispatching.
//
// Validators hold no mutable state beyond their configuration and may
// be shared freely across runs.
type Validator struct {
	kind         ValidatorKind
	name         string
	abbreviation string

	internal func(clusters *Clusters) (float64, error)
	external func(truth, generated *Clusters) (float64, error)
}

// Kind returns which index this validator computes.
func (v *Validator) Kind() ValidatorKind { return v.kind }

// Name returns the full human-readable name of this validator.
func (v *Validator) Name() string { return v.name }

// Abbreviation returns the short name of this validator, used when
// labeling results.
func (v *Validator) Abbreviation() string { return v.abbreviation }

// IsInternal reports whether this validator judges a single cluster
// group on its own.
func (v *Validator) IsInternal() bool { return v.internal != nil }

// IsExternal reports whether this validator compares a generated
// cluster group against ground truth.
func (v *Validator) IsExternal() bool { return v.external != nil }

// ValidateInternal computes the index for a single cluster group. The
// group must have at least two clusters.
func (v *Validator) ValidateInternal(clusters *Clusters) (float64, error) {
	if v.internal == nil {
		return 0, fmt.Errorf("%w: %s is not an internal validator",
			ErrValidatorShape, v.name)
	}
	if clusters.ClusterCount() < 2 {
		return 0, ErrTooFewClusters
	}
	return v.internal(clusters)
}

// ValidateExternal computes the index for a generated cluster group
// against the ground-truth group. Both groups must have at least two
// clusters.
func (v *Validator) ValidateExternal(truth, generated *Clusters) (float64, error) {
	if v.external == nil {
		return 0, fmt.Errorf("%w: %s is not an external validator",
			ErrValidatorShape, v.name)
	}
	if truth.ClusterCount() < 2 || generated.ClusterCount() < 2 {
		return 0, fmt.Errorf("%w in each group", ErrTooFewClusters)
	}
	return v.external(truth, generated)
}

// Validate computes the index for a run's cluster group, resolving the
// ground truth from the dataset when the validator is external. This
// is the convenience entry point result consumers use when they do not
// care about the validator's shape.
func (v *Validator) Validate(clusters *Clusters) (float64, error) {
	if v.internal != nil {
		return v.ValidateInternal(clusters)
	}
	truth, err := clusters.Dataset().TrueClusters()
	if err != nil {
		return 0, err
	}
	return v.ValidateExternal(truth, clusters)
}

// NewValidator creates the validator of the given kind. The config
// supplies sub-parameters: the Dunn Index fails with
// ErrLinkageRequired or ErrDiameterRequired when its methods are
// missing, all other validators ignore the config entirely.
func NewValidator(kind ValidatorKind, cfg ValidatorConfig) (*Validator, error) {
	switch kind {
	case CalinskiHarabasz:
		return NewCalinskiHarabasz(), nil
	case DaviesBouldin:
		return NewDaviesBouldin(), nil
	case DunnIndex:
		return NewDunnIndex(cfg.Linkage, cfg.Diameter)
	case SilhouetteWidth:
		return NewSilhouetteWidth(), nil
	case RandStatistic:
		return NewRandStatistic(), nil
	case JaccardCoefficient:
		return NewJaccardCoefficient(), nil
	case FowlkesMallows:
		return NewFowlkesMallows(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, kind)
	}
}
