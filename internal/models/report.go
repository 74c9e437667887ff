package models

import (
	"time"
)

// Report представляет отчет о скрининге клиента
type Report struct {
	ReportID            string              `json:"report_id" yaml:"report_id"`
	GenerationDate      string              `json:"generation_date" yaml:"generation_date"`
	ReportType          string              `json:"report_type" yaml:"report_type"`
	Version             string              `json:"version" yaml:"version"`
	Company             string              `json:"company" yaml:"company"`
	CustomerInformation CustomerInformation `json:"customer_information" yaml:"customer_information"`
	ScreeningSummary    ScreeningSummary    `json:"screening_summary" yaml:"screening_summary"`
	MatchesDetails      []SanctionMatch     `json:"matches_details" yaml:"matches_details"`
	RiskAssessment      ReportRiskSection   `json:"risk_assessment" yaml:"risk_assessment"`
	Recommendations     []string            `json:"recommendations" yaml:"recommendations"`
	Disclaimer          string              `json:"disclaimer" yaml:"disclaimer"`
	Footer              string              `json:"footer" yaml:"footer"`
}

type CustomerInformation struct {
	CustomerCode string `json:"customer_code" yaml:"customer_code"`
	FullName     string `json:"full_name" yaml:"full_name"`
	Nationality  string `json:"nationality" yaml:"nationality"`
	DateOfBirth  string `json:"date_of_birth" yaml:"date_of_birth"`
	IDNumber     string `json:"id_number" yaml:"id_number"`
	Occupation   string `json:"occupation" yaml:"occupation"`
}

type ScreeningSummary struct {
	ScreeningID    string    `json:"screening_id" yaml:"screening_id"`
	ScreeningDate  time.Time `json:"screening_date" yaml:"screening_date"`
	ScreeningType  string    `json:"screening_type" yaml:"screening_type"`
	TotalMatches   int       `json:"total_matches" yaml:"total_matches"`
	ExactMatches   int       `json:"exact_matches" yaml:"exact_matches"`
	PartialMatches int       `json:"partial_matches" yaml:"partial_matches"`
	RiskScore      int       `json:"risk_score" yaml:"risk_score"`
	RiskLevel      string    `json:"risk_level" yaml:"risk_level"`
	Result         string    `json:"screening_result" yaml:"screening_result"`
}

type ReportRiskSection struct {
	RiskFactors []string       `json:"risk_factors" yaml:"risk_factors"`
	RiskDetails map[string]any `json:"risk_details" yaml:"risk_details"`
}

// Statistics представляет агрегированную статистику системы
type Statistics struct {
	TotalCustomers    int            `json:"total_customers" yaml:"total_customers"`
	TotalSanctions    int            `json:"total_sanctions" yaml:"total_sanctions"`
	TotalScreenings   int            `json:"total_screenings" yaml:"total_screenings"`
	PEPCustomers      int            `json:"pep_customers" yaml:"pep_customers"`
	SanctionsBySource map[string]int `json:"sanctions_by_source" yaml:"sanctions_by_source"`
	RiskDistribution  map[string]int `json:"risk_distribution" yaml:"risk_distribution"`
	ScreeningResults  map[string]int `json:"screening_results" yaml:"screening_results"`
	RecentScreenings  int            `json:"recent_screenings" yaml:"recent_screenings"`
	GeneratedAt       time.Time      `json:"generated_at" yaml:"generated_at"`
}

// ComplianceReport представляет сводный отчет для комплаенса (меню отчетов CLI)
type ComplianceReport struct {
	Kind        string         `json:"kind" yaml:"kind"`
	Title       string         `json:"title" yaml:"title"`
	PeriodDays  int            `json:"period_days,omitempty" yaml:"period_days,omitempty"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Sections    map[string]any `json:"sections" yaml:"sections"`
}

// AuditEntry представляет запись журнала аудита
type AuditEntry struct {
	ID          int64     `json:"id,omitempty" yaml:"id,omitempty"`
	Action      string    `json:"action" yaml:"action"`
	EntityType  string    `json:"entity_type" yaml:"entity_type"`
	EntityID    string    `json:"entity_id" yaml:"entity_id"`
	Details     string    `json:"details,omitempty" yaml:"details,omitempty"`
	PerformedBy string    `json:"performed_by,omitempty" yaml:"performed_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Действия журнала аудита
const (
	AuditCreateCustomer  = "CREATE_CUSTOMER"
	AuditScreening       = "SCREENING"
	AuditReview          = "REVIEW"
	AuditImportSanctions = "IMPORT_SANCTIONS"
	AuditExport          = "EXPORT"
	AuditClear           = "CLEAR"
)
