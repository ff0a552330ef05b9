// Package domain contains the core entities and types for the polygenic
// score (PGS) engine: ancestry codes, the variant record shape, per-run
// contribution and score results, and the assembled report.
//
// The model is an explicitly simplified, education-only approximation of a
// polygenic score. It makes no claim of clinical validity.
package domain

// Ancestry is a coarse genetic-background category used to select among
// alternative effect-size estimates.
type Ancestry string

const (
	EUR  Ancestry = "EUR"
	EAS  Ancestry = "EAS"
	SAS  Ancestry = "SAS"
	AFR  Ancestry = "AFR"
	AMR  Ancestry = "AMR"
	MENA Ancestry = "MENA"
	OTH  Ancestry = "OTH"
)

// Ancestries lists the supported ancestry codes in canonical order.
var Ancestries = []Ancestry{EUR, EAS, SAS, AFR, AMR, MENA, OTH}

// ancestryLabels holds the human-readable description for each code.
var ancestryLabels = map[Ancestry]string{
	EUR:  "European (includes European-American, European-descended populations)",
	EAS:  "East Asian (Chinese, Japanese, Korean, Vietnamese, etc.)",
	SAS:  "South Asian (Indian, Pakistani, Bangladeshi, Sri Lankan, etc.)",
	AFR:  "African (Sub-Saharan African, African-American)",
	AMR:  "Latino/Admixed American (Mexican, Puerto Rican, Brazilian, etc.)",
	MENA: "Middle Eastern/North African",
	OTH:  "Other/Mixed (results will be highly uncertain)",
}

// IsValid reports whether the ancestry code is one of the seven supported
// codes. Any other value must be rejected before computation starts.
func (a Ancestry) IsValid() bool {
	switch a {
	case EUR, EAS, SAS, AFR, AMR, MENA, OTH:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ancestry code.
func (a Ancestry) String() string {
	return string(a)
}

// Label returns the human-readable description of the ancestry code.
func (a Ancestry) Label() string {
	return ancestryLabels[a]
}

// EvidenceTier grades the strength of the published evidence behind a
// variant. It controls report prioritization only, never the numeric
// pipeline.
type EvidenceTier string

const (
	EvidenceStrong   EvidenceTier = "Strong"
	EvidenceModerate EvidenceTier = "Moderate"
	EvidenceWeak     EvidenceTier = "Weak"
)

// IsValid reports whether the tier is one of the recognized grades.
func (e EvidenceTier) IsValid() bool {
	switch e {
	case EvidenceStrong, EvidenceModerate, EvidenceWeak:
		return true
	default:
		return false
	}
}

// String returns the string representation of the evidence tier.
func (e EvidenceTier) String() string {
	return string(e)
}

// Category is the five-way interpretation band of a z-score.
type Category string

const (
	WellBelowAverage Category = "Well Below Average"
	BelowAverage     Category = "Below Average"
	Average          Category = "Average"
	AboveAverage     Category = "Above Average"
	WellAboveAverage Category = "Well Above Average"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// MethodQuality describes the study-method input to the scenario projector.
// Unrecognized values fall back to a neutral multiplier.
type MethodQuality string

const (
	MethodOptimal  MethodQuality = "Optimal"
	MethodGood     MethodQuality = "Good"
	MethodPoor     MethodQuality = "Poor"
	MethodTerrible MethodQuality = "Terrible"
)

// ConsistencyLevel describes the study-consistency input to the scenario
// projector. Unrecognized values fall back to a neutral multiplier.
type ConsistencyLevel string

const (
	ConsistencyHigh   ConsistencyLevel = "High"
	ConsistencyMedium ConsistencyLevel = "Medium"
	ConsistencyLow    ConsistencyLevel = "Low"
)

// GenotypeMap maps a variant id (rsID) to its two-letter genotype code as
// read from the raw file. It is produced once per analysis run and treated
// as a read-only snapshot afterwards.
type GenotypeMap map[string]string

// NoCall is the sentinel genotype stored for entries whose call could not
// be used (missing, uncallable, or malformed beyond repair).
const NoCall = "--"

// noCallSentinels is the authoritative set of genotype strings that mean
// "no call". DI/ID are heterozygous indel markers emitted by consumer chips.
var noCallSentinels = map[string]struct{}{
	"--": {},
	"NN": {},
	"0":  {},
	"":   {},
	"DI": {},
	"ID": {},
}

// IsNoCall reports whether the genotype string is a no-call sentinel.
func IsNoCall(genotype string) bool {
	_, ok := noCallSentinels[genotype]
	return ok
}
