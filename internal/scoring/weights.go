package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights is the canonical deduction table. The original tooling carried two
// diverging copies of several of these numbers; this table is the single
// source of truth and is loadable from YAML so product owners can tune it
// without a code change.
type Weights struct {
	ShortTitle           int `yaml:"short_title"`
	TitleMissingComma    int `yaml:"title_missing_comma"`
	ShortDescription     int `yaml:"short_description"`
	DescriptionNoMeasure int `yaml:"description_no_measurement"`

	ShortCondition    int `yaml:"short_condition"`
	BruksslitageAlone int `yaml:"bruksslitage_alone"`
	VagueCondition    int `yaml:"vague_condition_term"`

	KeywordsMissing      int `yaml:"keywords_missing"`
	KeywordsTooFew       int `yaml:"keywords_too_few"`
	KeywordsCouldUseMore int `yaml:"keywords_could_use_more"`
	KeywordsTooMany      int `yaml:"keywords_too_many"`

	ConditionTermInDescription int `yaml:"condition_term_in_description"`
	MarketingLanguage          int `yaml:"marketing_language"`
	SubjectiveLanguage         int `yaml:"subjective_language"`
	OverPositiveCondition      int `yaml:"overpositive_condition"`

	WoodTermInTitle       int `yaml:"wood_term_in_title"`
	MaterialMissing       int `yaml:"material_missing"`
	RugMeasurementMissing int `yaml:"rug_measurement_missing_title"`
	BruksslitageInArt     int `yaml:"bruksslitage_in_art_condition"`
	PieceCountStyle       int `yaml:"piece_count_style"`

	CompoundObjectMaterial int `yaml:"compound_object_material"`
	SterlingSilverSpacing  int `yaml:"sterling_silver_spacing"`
	CaBeforeYear           int `yaml:"ca_before_year"`
	Abbreviation           int `yaml:"abbreviation"`
	CenturyTooVague        int `yaml:"century_too_vague"`
	HalfCenturyVague       int `yaml:"half_century_vague"`
}

// Thresholds are the length and count limits the rules compare against.
type Thresholds struct {
	TitleMinLen       int `yaml:"title_min_len"`
	DescriptionMinLen int `yaml:"description_min_len"`
	ConditionMinLen   int `yaml:"condition_min_len"`
	VagueCombinedLen  int `yaml:"vague_combined_len"`

	KeywordsMin      int `yaml:"keywords_min"`
	KeywordsSweetMin int `yaml:"keywords_sweet_min"`
	KeywordsSweetMax int `yaml:"keywords_sweet_max"`

	// NewKeywordRatio is the minimum fraction of keywords that should not
	// already appear in title, description or condition.
	NewKeywordRatio float64 `yaml:"new_keyword_ratio"`

	// HighValue is the estimate/reserve level above which compliance
	// recommends an identity-verification review.
	HighValue float64 `yaml:"high_value"`
}

// Config is the full scorer configuration: the deduction table, the limit
// table and every vocabulary list the rules match against. All of it is data
// so each piece is independently testable and tunable.
type Config struct {
	Weights    Weights    `yaml:"weights"`
	Thresholds Thresholds `yaml:"thresholds"`

	MarketingTerms    []string `yaml:"marketing_terms"`
	SubjectiveTerms   []string `yaml:"subjective_terms"`
	OverPositiveTerms []string `yaml:"overpositive_terms"`
	ConditionTerms    []string `yaml:"condition_terms"`

	LooseStoneTerms []string `yaml:"loose_stone_terms"`
	BullionTerms    []string `yaml:"bullion_terms"`

	WoodTerms []string `yaml:"wood_terms"`

	CompoundWords []CompoundEntry `yaml:"compound_words"`
	Abbreviations []AbbrevEntry   `yaml:"abbreviations"`
}

// CompoundEntry maps a compound object+material word to its split
// "OBJECT, material" form. Entries are checked in order; first match wins.
type CompoundEntry struct {
	Word      string `yaml:"word"`
	Suggested string `yaml:"suggested"`
}

// AbbrevEntry maps a known abbreviation to its spelled-out form.
type AbbrevEntry struct {
	Abbrev    string `yaml:"abbrev"`
	SpelledOr string `yaml:"spelled_out"`
}

// DefaultConfig returns the house rule set.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			ShortTitle:           10,
			TitleMissingComma:    5,
			ShortDescription:     15,
			DescriptionNoMeasure: 10,

			ShortCondition:    10,
			BruksslitageAlone: 25,
			VagueCondition:    10,

			KeywordsMissing:      15,
			KeywordsTooFew:       10,
			KeywordsCouldUseMore: 3,
			KeywordsTooMany:      5,

			ConditionTermInDescription: 8,
			MarketingLanguage:          5,
			SubjectiveLanguage:         5,
			OverPositiveCondition:      5,

			WoodTermInTitle:       5,
			MaterialMissing:       8,
			RugMeasurementMissing: 8,
			BruksslitageInArt:     5,
			PieceCountStyle:       5,

			CompoundObjectMaterial: 5,
			SterlingSilverSpacing:  3,
			CaBeforeYear:           3,
			Abbreviation:           2,
			CenturyTooVague:        3,
			HalfCenturyVague:       2,
		},
		Thresholds: Thresholds{
			TitleMinLen:       20,
			DescriptionMinLen: 80,
			ConditionMinLen:   15,
			VagueCombinedLen:  40,
			KeywordsMin:       2,
			KeywordsSweetMin:  5,
			KeywordsSweetMax:  12,
			NewKeywordRatio:   0.5,
			HighValue:         50000,
		},
		MarketingTerms: []string{
			"fantastisk", "magnifik", "otrolig", "enastående",
			"sällsynt vacker", "unik möjlighet", "exceptionell",
		},
		SubjectiveTerms: []string{
			"troligen", "förmodligen", "möjligen", "sannolikt",
			"ser ut att", "verkar vara",
		},
		OverPositiveTerms: []string{
			"perfekt skick", "felfritt", "som ny", "nyskick",
			"mycket fint skick",
		},
		ConditionTerms: []string{
			"slitage", "repor", "märken", "skador", "nagg",
			"sprickor", "fläckar", "missfärgning", "skick",
		},
		LooseStoneTerms: []string{
			"lösa stenar", "lös sten", "omonterad", "oinfattad",
		},
		BullionTerms: []string{
			"guldtacka", "silvertacka", "tacka", "investeringsguld",
			"skrotguld",
		},
		WoodTerms: []string{
			"mahogny", "jakaranda", "valnöt", "björk", "teak",
			"rosenträ", "körsbär", "furu", "alm", "ek",
		},
		CompoundWords: []CompoundEntry{
			{Word: "silverskål", Suggested: "SKÅL, silver"},
			{Word: "silverbägare", Suggested: "BÄGARE, silver"},
			{Word: "mahognybord", Suggested: "BORD, mahogny"},
			{Word: "mahognyskåp", Suggested: "SKÅP, mahogny"},
			{Word: "ekskåp", Suggested: "SKÅP, ek"},
			{Word: "glasvas", Suggested: "VAS, glas"},
			{Word: "mässingsljusstake", Suggested: "LJUSSTAKE, mässing"},
			{Word: "porslinsfigur", Suggested: "FIGUR, porslin"},
			{Word: "tennstop", Suggested: "STOP, tenn"},
		},
		Abbreviations: []AbbrevEntry{
			{Abbrev: "sign.", SpelledOr: "signerad"},
			{Abbrev: "osign.", SpelledOr: "osignerad"},
			{Abbrev: "dat.", SpelledOr: "daterad"},
			{Abbrev: "tillv.", SpelledOr: "tillverkad"},
			{Abbrev: "dek.", SpelledOr: "dekor"},
			{Abbrev: "förg.", SpelledOr: "förgylld"},
		},
	}
}

// LoadConfig reads a YAML rule configuration, starting from the defaults so a
// partial file only overrides what it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse weights file: %w", err)
	}
	return cfg, nil
}
