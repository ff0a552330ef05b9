// Package snpdb holds the static, evidence-based SNP database behind the
// polygenic score: effect alleles, ancestry-specific effect sizes from
// published GWAS work, and the bibliography backing them. The database is
// built once and never mutated, so it is safe for unlimited concurrent
// readers.
package snpdb

import "github.com/genelingua/pgs-server/internal/domain"

// Version identifies the database revision embedded in every report.
const Version = "3.5_evidence_based"

// GenomeWideSignificance is the conventional genome-wide significance
// threshold applied to each variant's published p-value.
const GenomeWideSignificance = 5e-8

// Database is an immutable collection of variants plus their bibliography.
type Database struct {
	variants   []domain.Variant
	references map[string]domain.Reference
	nSig       int
}

// Default returns the built-in evidence-based database.
func Default() *Database {
	return defaultDB
}

// New builds a database from a custom variant table and bibliography.
func New(vs []domain.Variant, refs map[string]domain.Reference) *Database {
	return newDatabase(vs, refs)
}

// Variants returns the variant table in canonical database order. Callers
// must not modify the returned slice.
func (d *Database) Variants() []domain.Variant {
	return d.variants
}

// Size returns the number of variants in the database.
func (d *Database) Size() int {
	return len(d.variants)
}

// References returns the bibliography keyed by citation key.
func (d *Database) References() map[string]domain.Reference {
	return d.references
}

// GenomeWideSignificantCount returns the number of variants whose published
// p-value falls below the genome-wide significance threshold. This is a
// whole-database constant, independent of any run's genotype coverage.
func (d *Database) GenomeWideSignificantCount() int {
	return d.nSig
}

var defaultDB = newDatabase(variants, references)

func newDatabase(vs []domain.Variant, refs map[string]domain.Reference) *Database {
	nSig := 0
	for i := range vs {
		if vs[i].PValue < GenomeWideSignificance {
			nSig++
		}
	}
	return &Database{variants: vs, references: refs, nSig: nSig}
}

// variants lists the scored SNPs in canonical order. Most entries carry the
// same beta for every ancestry key; rs4680 is the one variant whose effect
// flips sign between EUR and EAS.
var variants = []domain.Variant{
	{
		ID:           "rs4680",
		Gene:         "COMT",
		Label:        "COMT Val158Met (rs4680)",
		EffectAllele: "A",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.042,
			domain.EAS: -0.042,
		},
		BetaDefault:      0.025,
		AncestrySpecific: true,
		StandardError:    0.015,
		PValue:           0.006,
		Evidence:         domain.EvidenceStrong,
		Phenotype:        "Second language learning (white matter & phonetic learning)",
		Population:       "European ancestry adults",
		Refs:             []string{"Mamiya2016", "Colzato2010", "Bonetti2021"},
		Notes:            "Met allele beneficial in EUR, Val allele beneficial in EAS - major ancestry difference!",
	},
	{
		ID:           "rs737865",
		Gene:         "COMT",
		Label:        "COMT rs737865",
		EffectAllele: "C",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.018,
			domain.EAS: 0.018,
		},
		BetaDefault:   0.018,
		StandardError: 0.008,
		PValue:        0.024,
		Evidence:      domain.EvidenceModerate,
		Phenotype:     "Figural fluency/creativity",
		Population:    "Chinese college students",
		Refs:          []string{"Zhang2014"},
		Notes:         "Associated with creative thinking, which relates to language flexibility",
	},
	{
		ID:           "rs76551189",
		Gene:         "Near IGSF9",
		Label:        "Nonword reading (rs76551189)",
		EffectAllele: "A",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.025,
			domain.EAS: 0.025,
		},
		BetaDefault:   0.025,
		StandardError: 0.005,
		PValue:        5.2e-8,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Nonword reading ability",
		Population:    "Meta-analysis (34,000 individuals)",
		Refs:          []string{"Eising2022"},
		Notes:         "Genome-wide significant for phonological processing",
	},
	{
		ID:           "rs4656859",
		Gene:         "IGSF9",
		Label:        "IGSF9 rs4656859",
		EffectAllele: "T",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.022,
			domain.EAS: 0.022,
		},
		BetaDefault:   0.022,
		StandardError: 0.005,
		PValue:        8.1e-8,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Nonword reading",
		Population:    "Meta-analysis",
		Refs:          []string{"Eising2022"},
		Notes:         "Phonological decoding - key for language learning",
	},
	{
		ID:           "rs1422268",
		Gene:         "DOK3",
		Label:        "DOK3 rs1422268",
		EffectAllele: "A",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.020,
			domain.EAS: 0.020,
		},
		BetaDefault:   0.020,
		StandardError: 0.005,
		PValue:        1.3e-7,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Nonword reading",
		Population:    "Meta-analysis",
		Refs:          []string{"Eising2022"},
		Notes:         "Reading-related cognitive processing",
	},
	{
		ID:           "rs765166",
		Gene:         "ZFAS1",
		Label:        "ZFAS1 rs765166",
		EffectAllele: "C",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.015,
			domain.EAS: 0.015,
		},
		BetaDefault:   0.015,
		StandardError: 0.006,
		PValue:        0.012,
		Evidence:      domain.EvidenceModerate,
		Phenotype:     "Phonemic awareness",
		Population:    "Meta-analysis",
		Refs:          []string{"Eising2022"},
		Notes:         "Phoneme manipulation - critical for pronunciation",
	},
	{
		ID:           "rs363039",
		Gene:         "SNAP25",
		Label:        "SNAP-25 rs363039",
		EffectAllele: "G",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.028,
			domain.EAS: 0.028,
		},
		BetaDefault:   0.028,
		StandardError: 0.011,
		PValue:        0.011,
		Evidence:      domain.EvidenceModerate,
		Phenotype:     "Performance IQ (visuospatial)",
		Population:    "Dutch children & adults",
		Refs:          []string{"Gosso2006"},
		Notes:         "Synaptic protein - learning & memory functions",
	},
	{
		ID:           "rs80263879",
		Gene:         "EPHX2",
		Label:        "EPHX2 rs80263879",
		EffectAllele: "G",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.035,
			domain.EAS: 0.035,
		},
		BetaDefault:   0.035,
		StandardError: 0.008,
		PValue:        2.1e-8,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Static spatial working memory",
		Population:    "Chinese students",
		Refs:          []string{"Zhang2022"},
		Notes:         "Genome-wide significant for working memory",
	},
	{
		ID:           "rs11264236",
		Gene:         "NPR1",
		Label:        "NPR1 rs11264236",
		EffectAllele: "A",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.012,
			domain.EAS: 0.012,
		},
		BetaDefault:   0.012,
		StandardError: 0.005,
		PValue:        0.016,
		Evidence:      domain.EvidenceModerate,
		Phenotype:     "Science academic attainment",
		Population:    "UK adolescents (ALSPAC)",
		Refs:          []string{"Donati2021"},
		Notes:         "Academic performance - language component",
	},
	{
		ID:           "rs10905791",
		Gene:         "ASB13",
		Label:        "ASB13 rs10905791",
		EffectAllele: "T",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.011,
			domain.EAS: 0.011,
		},
		BetaDefault:   0.011,
		StandardError: 0.005,
		PValue:        0.028,
		Evidence:      domain.EvidenceModerate,
		Phenotype:     "Science attainment",
		Population:    "UK adolescents",
		Refs:          []string{"Donati2021"},
		Notes:         "Cognitive performance in structured learning",
	},
	{
		ID:           "rs6453022",
		Gene:         "ARHGEF28",
		Label:        "ARHGEF28 rs6453022",
		EffectAllele: "C",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.016,
			domain.EAS: 0.016,
		},
		BetaDefault:   0.016,
		StandardError: 0.004,
		PValue:        3.2e-9,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Hearing difficulty (inverse)",
		Population:    "UK Biobank (250,389 individuals)",
		Refs:          []string{"Wells2019"},
		Notes:         "Auditory processing - crucial for language perception",
	},
	{
		ID:           "rs9493627",
		Gene:         "EYA4",
		Label:        "EYA4 rs9493627",
		EffectAllele: "G",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.014,
			domain.EAS: 0.014,
		},
		BetaDefault:   0.014,
		StandardError: 0.004,
		PValue:        1.8e-8,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Hearing function",
		Population:    "UK Biobank",
		Refs:          []string{"Wells2019"},
		Notes:         "Auditory system - language input processing",
	},
	{
		ID:           "rs7294919",
		Gene:         "ASTN2",
		Label:        "ASTN2 rs7294919",
		EffectAllele: "T",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.019,
			domain.EAS: 0.019,
		},
		BetaDefault:   0.019,
		StandardError: 0.004,
		PValue:        2.3e-8,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Hippocampal volume",
		Population:    "Meta-analysis (33,536 individuals)",
		Refs:          []string{"Hibar2017"},
		Notes:         "Memory formation - essential for vocabulary acquisition",
	},
	{
		ID:           "rs1800497",
		Gene:         "DRD2/ANKK1",
		Label:        "DRD2 TaqIA (rs1800497)",
		EffectAllele: "T",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: 0.015,
			domain.EAS: 0.015,
		},
		BetaDefault:   0.015,
		StandardError: 0.007,
		PValue:        0.032,
		Evidence:      domain.EvidenceModerate,
		Phenotype:     "Working memory span",
		Population:    "Chinese adults",
		Refs:          []string{"Gong2012"},
		Notes:         "Dopamine receptor - motivation & reward in learning",
	},
	{
		ID:           "rs10009513",
		Gene:         "MAPT-AS1",
		Label:        "MAPT-AS1 rs10009513",
		EffectAllele: "A",
		Beta: map[domain.Ancestry]float64{
			domain.EUR: -0.022,
			domain.EAS: -0.022,
		},
		BetaDefault:   -0.022,
		StandardError: 0.005,
		PValue:        1.4e-8,
		Evidence:      domain.EvidenceStrong,
		Phenotype:     "Relative brain age (protective)",
		Population:    "UK Biobank",
		Refs:          []string{"Ning2021"},
		Notes:         "Neuroprotective - maintains cognitive function over time",
	},
}

var references = map[string]domain.Reference{
	"Mamiya2016": {
		Citation:   "Mamiya PC, Richards TL, Coe BP, Eichler EE, Kuhl PK (2016). Brain white matter structure and COMT gene are linked to second-language learning in adults. PNAS 113(26):7249-7254.",
		URL:        "https://www.pnas.org/doi/full/10.1073/pnas.1606602113",
		PMID:       "27298360",
		KeyFinding: "COMT Met allele associated with better phonetic learning and white matter integrity in L2 learners",
	},
	"Eising2022": {
		Citation:   "Eising E, et al (2022). Genome-wide analyses of individual differences in quantitatively assessed reading- and language-related skills in up to 34,000 people. PNAS 119(35):e2202764119.",
		URL:        "https://www.pnas.org/doi/10.1073/pnas.2202764119",
		PMID:       "35998220",
		KeyFinding: "Large-scale GWAS identified 42 genome-wide significant loci for reading/language traits. GenLang Consortium study.",
	},
	"Wells2019": {
		Citation:   "Wells HRR, et al (2019). GWAS Identifies 44 Independent Associated Genomic Loci for Self-Reported Adult Hearing Difficulty in UK Biobank. Am J Hum Genet 105(4):788-802.",
		URL:        "https://www.cell.com/ajhg/fulltext/S0002-9297(19)30334-0",
		PMID:       "31564434",
		KeyFinding: "44 loci associated with hearing - critical for language input processing",
	},
	"Hibar2017": {
		Citation:   "Hibar DP, et al (2017). Novel genetic loci associated with hippocampal volume. Nat Commun 8:13624.",
		URL:        "https://www.nature.com/articles/ncomms13624",
		PMID:       "28098162",
		KeyFinding: "6 loci for hippocampal volume - memory structure essential for vocabulary",
	},
	"Zhang2022": {
		Citation:   "Zhang L, et al (2022). A genome-wide association study identified one variant associated with static spatial working memory in Chinese population. Brain Sci 12(9):1254.",
		URL:        "https://www.mdpi.com/2076-3425/12/9/1254",
		PMID:       "36176292",
		KeyFinding: "EPHX2 variant genome-wide significant for working memory",
	},
	"Gosso2006": {
		Citation:   "Gosso MF, et al (2006). The SNAP-25 gene is associated with cognitive ability: evidence from a family-based study in two independent Dutch cohorts. Mol Psychiatry 11:878-886.",
		URL:        "https://www.nature.com/articles/4001868",
		PMID:       "16801949",
		KeyFinding: "SNAP-25 variants associated with performance IQ",
	},
	"Zhang2014": {
		Citation:   "Zhang S, et al (2014). Association of COMT and COMT-DRD2 interaction with creative potential. Front Hum Neurosci 8:216.",
		URL:        "https://www.frontiersin.org/articles/10.3389/fnhum.2014.00216",
		PMID:       "24782743",
		KeyFinding: "COMT variants linked to creative fluency - relevant to flexible language use",
	},
	"Gong2012": {
		Citation:   "Gong P, et al (2012). An association study on the polymorphisms of dopaminergic genes with working memory in a healthy Chinese Han population. J Neural Transm 119:1293-1302.",
		URL:        "https://link.springer.com/article/10.1007/s00702-012-0817-9",
		PMID:       "22362150",
		KeyFinding: "DRD2 TaqIA associated with working memory span",
	},
	"Donati2021": {
		Citation:   "Donati G, et al (2021). Evidence for specificity of polygenic contributions to attainment in English, maths and science during adolescence. Learn Individ Differ 88:101993.",
		URL:        "https://www.sciencedirect.com/science/article/pii/S1041608021000674",
		PMID:       "33594131",
		KeyFinding: "Subject-specific genetic contributions to academic attainment",
	},
	"Ning2021": {
		Citation:   "Ning K, et al (2021). Improving brain age estimates with deep learning leads to identification of novel genetic factors associated with brain aging. Neurobiol Aging 102:89-97.",
		URL:        "https://www.sciencedirect.com/science/article/pii/S0197458021001123",
		PMID:       "34098431",
		KeyFinding: "80 SNPs associated with brain aging - cognitive maintenance",
	},
	"Colzato2010": {
		Citation:   "Colzato LS, et al (2010). The flexible mind is associated with the catechol-O-methyltransferase (COMT) Val158Met polymorphism. Neuropsychologia 48(1):220-225.",
		PMID:       "20434465",
		KeyFinding: "COMT affects cognitive flexibility",
	},
	"Bonetti2021": {
		Citation:   "Bonetti L, et al (2021). Brain predictive coding processes are associated to COMT gene Val158Met polymorphism. NeuroImage 233:117954.",
		PMID:       "33716157",
		KeyFinding: "COMT heterozygotes show stronger neural response to auditory deviants",
	},
}
