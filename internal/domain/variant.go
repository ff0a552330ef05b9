package domain

// Variant is one entry of the static SNP database: a single genetic
// position with a published effect on a language-learning-related trait.
// Entries are immutable after database construction.
type Variant struct {
	ID           string `json:"id"`
	Gene         string `json:"gene"`
	Label        string `json:"label"`
	EffectAllele string `json:"effect_allele"`

	// Beta holds ancestry-specific effect sizes. BetaDefault is the
	// fallback for ancestries without an explicit override.
	Beta        map[Ancestry]float64 `json:"beta_by_ancestry"`
	BetaDefault float64              `json:"beta_default"`

	// AncestrySpecific marks variants whose effect size differs
	// meaningfully by ancestry (rs4680 flips sign between EUR and EAS).
	AncestrySpecific bool `json:"ancestry_specific"`

	StandardError float64      `json:"se"`
	PValue        float64      `json:"p_value"`
	Evidence      EvidenceTier `json:"evidence"`

	Phenotype  string   `json:"phenotype"`
	Population string   `json:"population"`
	Refs       []string `json:"refs"`
	Notes      string   `json:"notes"`
}

// BetaFor returns the effect size for the given ancestry, falling back to
// the default when no explicit override exists. The lookup always goes
// through the ancestry-keyed path, even for variants whose betas currently
// repeat the same value for every ancestry.
func (v *Variant) BetaFor(ancestry Ancestry) float64 {
	if beta, ok := v.Beta[ancestry]; ok {
		return beta
	}
	return v.BetaDefault
}

// Reference is one bibliography entry backing the variant database.
type Reference struct {
	Citation   string `json:"citation"`
	URL        string `json:"url,omitempty"`
	PMID       string `json:"pmid,omitempty"`
	KeyFinding string `json:"key_finding"`
}
