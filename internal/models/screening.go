package models

import (
	"time"
)

// Типы скрининга
const (
	ScreeningTypeOnboarding = "ONBOARDING"
	ScreeningTypePeriodic   = "PERIODIC"
	ScreeningTypeAdHoc      = "AD_HOC"
	ScreeningTypeBatch      = "BATCH"
)

// Результаты скрининга
const (
	ResultClear            = "CLEAR"
	ResultClearWithWarning = "CLEAR_WITH_WARNING"
	ResultReviewRequired   = "REVIEW_REQUIRED"
	ResultRejected         = "REJECTED"
	ResultPending          = "PENDING"
)

// Типы совпадений
const (
	MatchExact   = "EXACT"
	MatchPartial = "PARTIAL"
	MatchFuzzy   = "FUZZY"
	MatchNone    = "NO_MATCH"
)

// Уровни риска
const (
	RiskVeryLow  = "VERY_LOW"
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// SanctionMatch представляет совпадение клиента с записью санкционного списка
type SanctionMatch struct {
	ID                int64    `json:"id,omitempty" yaml:"id,omitempty"`
	SanctionID        int64    `json:"sanction_id" yaml:"sanction_id"`
	SanctionName      string   `json:"sanction_name" yaml:"sanction_name"`
	SanctionSource    string   `json:"sanction_source" yaml:"sanction_source"`
	MatchType         string   `json:"match_type" yaml:"match_type"`
	MatchScore        float64  `json:"match_score" yaml:"match_score"`
	NameMatchScore    float64  `json:"name_match_score" yaml:"name_match_score"`
	DOBMatch          bool     `json:"dob_match" yaml:"dob_match"`
	NationalityMatch  bool     `json:"nationality_match" yaml:"nationality_match"`
	IDMatch           bool     `json:"id_match" yaml:"id_match"`
	MatchedFields     []string `json:"matched_fields,omitempty" yaml:"matched_fields,omitempty"`
	RiskLevel         string   `json:"risk_level" yaml:"risk_level"`
	RecommendedAction string   `json:"recommended_action,omitempty" yaml:"recommended_action,omitempty"`
}

// RiskAssessment представляет результат расчета риска клиента
type RiskAssessment struct {
	RiskScore    int            `json:"risk_score" yaml:"risk_score"`
	RiskLevel    string         `json:"risk_level" yaml:"risk_level"`
	RiskFactors  []string       `json:"risk_factors" yaml:"risk_factors"`
	RiskDetails  map[string]any `json:"risk_details" yaml:"risk_details"`
	CalculatedAt time.Time      `json:"calculated_at" yaml:"calculated_at"`
}

// Screening представляет результат скрининга клиента
type Screening struct {
	ID                int64           `json:"id,omitempty" yaml:"id,omitempty"`
	ScreeningID       string          `json:"screening_id" yaml:"screening_id"`
	CustomerCode      string          `json:"customer_code" yaml:"customer_code"`
	CustomerName      string          `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	ScreeningDate     time.Time       `json:"screening_date" yaml:"screening_date"`
	ScreeningType     string          `json:"screening_type" yaml:"screening_type"`
	TotalMatches      int             `json:"total_matches" yaml:"total_matches"`
	ExactMatches      int             `json:"exact_matches" yaml:"exact_matches"`
	PartialMatches    int             `json:"partial_matches" yaml:"partial_matches"`
	HighestMatchScore float64         `json:"highest_match_score" yaml:"highest_match_score"`
	RiskScore         int             `json:"risk_score" yaml:"risk_score"`
	RiskLevel         string          `json:"risk_level" yaml:"risk_level"`
	RiskFactors       []string        `json:"risk_factors,omitempty" yaml:"risk_factors,omitempty"`
	RiskDetails       map[string]any  `json:"risk_details,omitempty" yaml:"risk_details,omitempty"`
	Result            string          `json:"screening_result" yaml:"screening_result"`
	PerformedBy       string          `json:"performed_by,omitempty" yaml:"performed_by,omitempty"`
	ReviewedBy        string          `json:"reviewed_by,omitempty" yaml:"reviewed_by,omitempty"`
	ReviewDate        *time.Time      `json:"review_date,omitempty" yaml:"review_date,omitempty"`
	ReviewNotes       string          `json:"review_notes,omitempty" yaml:"review_notes,omitempty"`
	Matches           []SanctionMatch `json:"matches" yaml:"matches"`
	Warnings          []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Customer снимок данных клиента на момент скрининга, хранится только в БД
	Customer *Customer `json:"-" yaml:"-"`
}

// ScreeningFilter задает условия выборки истории скрининга
type ScreeningFilter struct {
	CustomerCode string
	Result       string
	Since        time.Time
	Limit        int
}

// ReviewRequest представляет решение офицера комплаенса по скринингу
type ReviewRequest struct {
	ReviewedBy string `json:"reviewed_by" binding:"required"`
	Result     string `json:"screening_result" binding:"required"`
	Notes      string `json:"review_notes"`
}

// ScreeningResponse представляет ответ на запрос скрининга
type ScreeningResponse struct {
	Screening  *Screening `json:"screening" yaml:"screening"`
	Report     *Report    `json:"report,omitempty" yaml:"report,omitempty"`
	ReportPath string     `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	Saved      bool       `json:"customer_saved" yaml:"customer_saved"`
}

// BatchItemResult представляет результат одного клиента в пакете
type BatchItemResult struct {
	CustomerCode string     `json:"customer_code" yaml:"customer_code"`
	Screening    *Screening `json:"screening,omitempty" yaml:"screening,omitempty"`
	Error        string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchScreeningResponse представляет итог пакетной проверки
type BatchScreeningResponse struct {
	RequestID string            `json:"request_id" yaml:"request_id"`
	Total     int               `json:"total" yaml:"total"`
	Succeeded int               `json:"succeeded" yaml:"succeeded"`
	Failed    int               `json:"failed" yaml:"failed"`
	Results   []BatchItemResult `json:"results" yaml:"results"`
}
