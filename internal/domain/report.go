package domain

import "time"

// Contribution is the per-variant outcome of one scoring run. Dosage and
// WeightedContribution are nil when the genotype was missing or a no-call;
// a nil dosage always implies a nil contribution and vice versa. This keeps
// "unknown dosage" and "dosage = 0" impossible to conflate.
type Contribution struct {
	Genotype             string       `json:"genotype"`
	Dosage               *int         `json:"dosage"`
	Beta                 float64      `json:"beta"`
	WeightedContribution *float64     `json:"contrib"`
	Gene                 string       `json:"gene"`
	Evidence             EvidenceTier `json:"evidence"`
	Phenotype            string       `json:"phenotype"`
}

// Defined reports whether the variant contributed to the raw score.
func (c *Contribution) Defined() bool {
	return c.Dosage != nil && c.WeightedContribution != nil
}

// ScoreResult is the output of the score calculator: the weighted sum plus
// the coverage bookkeeping the variance-explained heuristic needs.
type ScoreResult struct {
	RawScore      float64                 `json:"raw_score"`
	Contributions map[string]Contribution `json:"contributions"`
	NValid        int                     `json:"n_valid"`
	TotalWeight   float64                 `json:"total_weight"`
}

// PopulationParameters are the analytically derived mean and standard
// deviation of the raw score under the fixed allele-frequency assumption.
type PopulationParameters struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// NormalizedResult expresses the raw score relative to the modeled
// population distribution.
type NormalizedResult struct {
	ZScore            float64 `json:"z_score"`
	Percentile        float64 `json:"percentile"`
	VarianceExplained float64 `json:"variance_explained"`
}

// Interpretation carries the category label and the guidance text for a
// z-score. Category comes from the five-way band split; MainText and
// Advice come from a separate, coarser three-way split on the same z.
type Interpretation struct {
	Category     Category `json:"category"`
	Color        string   `json:"color"`
	MainText     string   `json:"main_text"`
	Advice       []string `json:"advice"`
	VarianceText string   `json:"variance_text"`
}

// ScenarioProjection is the outcome of one what-if projection: total study
// hours to the proficiency target and the months implied by the daily rate.
type ScenarioProjection struct {
	TotalHours float64 `json:"total_hours"`
	MonthsToB2 float64 `json:"months_to_b2"`
}

// ScenarioRow is one line of the report's fixed scenario table.
type ScenarioRow struct {
	Scenario     string           `json:"scenario"`
	Genetics     string           `json:"genetics"`
	Method       MethodQuality    `json:"method"`
	DailyMinutes int              `json:"daily_minutes"`
	Consistency  ConsistencyLevel `json:"consistency"`
	TotalHours   float64          `json:"total_hours"`
	MonthsToB2   float64          `json:"months_to_b2"`
}

// TopContributor is one entry of the ranked top-contributor list.
type TopContributor struct {
	ID string `json:"rsid"`
	Contribution
}

// ReportMetadata identifies one analysis run.
type ReportMetadata struct {
	ReportID        string    `json:"report_id"`
	Generated       time.Time `json:"generated"`
	Version         string    `json:"version"`
	Ancestry        Ancestry  `json:"ancestry"`
	DatabaseVersion string    `json:"database_version"`
	Disclaimer      string    `json:"disclaimer"`
}

// PGSResults is the normalized-score block of the report.
type PGSResults struct {
	RawScore           float64  `json:"raw_score"`
	ZScore             float64  `json:"z_score"`
	Percentile         float64  `json:"percentile"`
	Category           Category `json:"category"`
	EstimatedR2Percent float64  `json:"estimated_r2_percent"`
	NValidSNPs         int      `json:"n_valid_snps"`
	NTotalSNPs         int      `json:"n_total_snps"`
}

// Report is the complete, immutable output of one analysis run. It is a
// pure function of (genotype file contents, ancestry) plus the static
// database, so it is safe to cache by that pair and to serialize as-is.
// Only the metadata timestamp and report ID vary between identical runs.
type Report struct {
	Metadata        ReportMetadata          `json:"metadata"`
	PGSResults      PGSResults              `json:"pgs_results"`
	Contributions   map[string]Contribution `json:"snp_contributions"`
	Interpretation  Interpretation          `json:"interpretation"`
	TopContributors []TopContributor        `json:"top_contributors"`
	Scenarios       []ScenarioRow           `json:"scenarios"`
	Warnings        []string                `json:"warnings"`
	References      map[string]Reference    `json:"references"`
}
