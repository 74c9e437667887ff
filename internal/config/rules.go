package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules содержит пороги скрининга, штрафы риск-скоринга и справочники.
// Значения по умолчанию возвращает DefaultRules, файл YAML переопределяет
// только указанные в нём поля.
type Rules struct {
	Screening           ScreeningRules    `yaml:"screening" json:"screening"`
	RiskScoring         RiskScoringRules  `yaml:"risk_scoring" json:"risk_scoring"`
	HighRiskCountries   []string          `yaml:"high_risk_countries" json:"high_risk_countries"`
	MediumRiskCountries []string          `yaml:"medium_risk_countries" json:"medium_risk_countries"`
	PEPIndicators       []string          `yaml:"pep_indicators" json:"pep_indicators"`
	Sources             map[string]string `yaml:"sanctions_sources" json:"sanctions_sources"`
	Validation          ValidationRules   `yaml:"validation" json:"validation"`
	Report              ReportRules       `yaml:"report" json:"report"`
}

type ScreeningRules struct {
	NameMatchThreshold   float64 `yaml:"name_match_threshold" json:"name_match_threshold"`
	ExactMatchThreshold  float64 `yaml:"exact_match_threshold" json:"exact_match_threshold"`
	DOBMatchThreshold    float64 `yaml:"dob_match_threshold" json:"dob_match_threshold"`
	IDMatchThreshold     float64 `yaml:"id_match_threshold" json:"id_match_threshold"`
	DOBMatchBonus        float64 `yaml:"dob_match_bonus" json:"dob_match_bonus"`
	FuzzyMatchEnabled    bool    `yaml:"fuzzy_match_enabled" json:"fuzzy_match_enabled"`
	PartialMatchWeight   float64 `yaml:"partial_match_weight" json:"partial_match_weight"`
	ExactMatchWeight     float64 `yaml:"exact_match_weight" json:"exact_match_weight"`
	AutoGenerateReports  bool    `yaml:"auto_generate_reports" json:"auto_generate_reports"`
	DefaultScreeningType string  `yaml:"default_screening_type" json:"default_screening_type"`
	CandidateLimit       int     `yaml:"candidate_limit" json:"candidate_limit"`
	BatchWorkers         int     `yaml:"batch_workers" json:"batch_workers"`
}

type RiskScoringRules struct {
	PEPPenalty             int `yaml:"pep_penalty" json:"pep_penalty"`
	HighRiskCountryPenalty int `yaml:"high_risk_country_penalty" json:"high_risk_country_penalty"`
	SanctionMatchPenalty   int `yaml:"sanction_match_penalty" json:"sanction_match_penalty"`
	PartialMatchPenalty    int `yaml:"partial_match_penalty" json:"partial_match_penalty"`
	AgeRiskThreshold       int `yaml:"age_risk_threshold" json:"age_risk_threshold"`
	AgeRiskPenalty         int `yaml:"age_risk_penalty" json:"age_risk_penalty"`
	UnusualIDPenalty       int `yaml:"unusual_id_penalty" json:"unusual_id_penalty"`
	ZeroIDPenalty          int `yaml:"zero_id_penalty" json:"zero_id_penalty"`
	MaxRiskScore           int `yaml:"max_risk_score" json:"max_risk_score"`
}

type ValidationRules struct {
	MinNameLength int      `yaml:"min_name_length" json:"min_name_length"`
	MaxNameLength int      `yaml:"max_name_length" json:"max_name_length"`
	MinIDLength   int      `yaml:"min_id_length" json:"min_id_length"`
	MaxIDLength   int      `yaml:"max_id_length" json:"max_id_length"`
	IDTypes       []string `yaml:"id_types" json:"id_types"`
	Genders       []string `yaml:"genders" json:"genders"`
	CustomerTypes []string `yaml:"customer_types" json:"customer_types"`
}

type ReportRules struct {
	CompanyName string `yaml:"company_name" json:"company_name"`
	Footer      string `yaml:"footer" json:"footer"`
	Disclaimer  string `yaml:"disclaimer" json:"disclaimer"`
}

// DefaultRules возвращает встроенные правила скрининга
func DefaultRules() *Rules {
	return &Rules{
		Screening: ScreeningRules{
			NameMatchThreshold:   85,
			ExactMatchThreshold:  95,
			DOBMatchThreshold:    90,
			IDMatchThreshold:     95,
			DOBMatchBonus:        20,
			FuzzyMatchEnabled:    true,
			PartialMatchWeight:   0.7,
			ExactMatchWeight:     1.0,
			AutoGenerateReports:  true,
			DefaultScreeningType: "ONBOARDING",
			CandidateLimit:       50,
			BatchWorkers:         4,
		},
		RiskScoring: RiskScoringRules{
			PEPPenalty:             30,
			HighRiskCountryPenalty: 25,
			SanctionMatchPenalty:   100,
			PartialMatchPenalty:    50,
			AgeRiskThreshold:       70,
			AgeRiskPenalty:         15,
			UnusualIDPenalty:       20,
			ZeroIDPenalty:          20,
			MaxRiskScore:           100,
		},
		HighRiskCountries: []string{
			"AF", "IR", "KP", "SY", "YE", "SD", "SO", "IQ",
			"LY", "VE", "CU", "RU", "BY", "MM", "ER", "ZW",
		},
		MediumRiskCountries: []string{
			"PK", "NG", "ET", "CD", "TZ", "KE", "UG", "GH", "CI", "CM",
		},
		PEPIndicators: []string{
			"minister", "president", "prime minister", "senator", "congress",
			"parliament", "ambassador", "governor", "mayor", "diplomat",
			"secretary", "commissioner", "general", "colonel", "major",
			"captain", "admiral", "marshal", "king", "queen", "prince",
			"princess", "emir", "sultan", "sheikh", "royal", "judge",
			"justice", "magistrate", "prosecutor", "director", "controller",
			"auditor",
		},
		Sources: map[string]string{
			"OFAC":  "Office of Foreign Assets Control (USA)",
			"UN":    "United Nations Security Council",
			"EU":    "European Union",
			"UK":    "HM Treasury (United Kingdom)",
			"AU":    "Department of Foreign Affairs and Trade (Australia)",
			"CA":    "Global Affairs Canada",
			"OTHER": "Other sanctions lists",
		},
		Validation: ValidationRules{
			MinNameLength: 2,
			MaxNameLength: 100,
			MinIDLength:   4,
			MaxIDLength:   50,
			IDTypes:       []string{"PASSPORT", "NATIONAL_ID", "DRIVERS_LICENSE", "RESIDENCE_PERMIT"},
			Genders:       []string{"M", "F", "O"},
			CustomerTypes: []string{"INDIVIDUAL", "CORPORATE", "PARTNERSHIP", "TRUST"},
		},
		Report: ReportRules{
			CompanyName: "AML Compliance Solutions",
			Footer:      "Confidential - For Internal Use Only",
			Disclaimer: "This report is generated automatically for compliance screening purposes. " +
				"Final decisions should be made by authorized personnel.",
		},
	}
}

// LoadRules читает правила из YAML поверх значений по умолчанию.
// Пустой путь возвращает DefaultRules.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate проверяет согласованность порогов
func (r *Rules) Validate() error {
	s := r.Screening
	if s.NameMatchThreshold <= 0 || s.NameMatchThreshold > 100 {
		return fmt.Errorf("name_match_threshold must be in (0, 100], got %v", s.NameMatchThreshold)
	}
	if s.ExactMatchThreshold < s.NameMatchThreshold || s.ExactMatchThreshold > 100 {
		return fmt.Errorf("exact_match_threshold must be in [%v, 100], got %v", s.NameMatchThreshold, s.ExactMatchThreshold)
	}
	if r.RiskScoring.MaxRiskScore <= 0 {
		return fmt.Errorf("max_risk_score must be positive, got %d", r.RiskScoring.MaxRiskScore)
	}
	if s.BatchWorkers < 1 {
		return fmt.Errorf("batch_workers must be at least 1, got %d", s.BatchWorkers)
	}
	return nil
}

// IsHighRiskCountry проверяет страну по настроенному списку
func (r *Rules) IsHighRiskCountry(code string) bool {
	return contains(r.HighRiskCountries, code)
}

// IsMediumRiskCountry проверяет страну по списку среднего риска
func (r *Rules) IsMediumRiskCountry(code string) bool {
	return contains(r.MediumRiskCountries, code)
}

// IsKnownSource проверяет код санкционного списка
func (r *Rules) IsKnownSource(source string) bool {
	_, ok := r.Sources[source]
	return ok
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
