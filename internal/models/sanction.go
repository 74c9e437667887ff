package models

import (
	"time"
)

// Источники санкционных списков
const (
	SourceOFAC  = "OFAC"
	SourceUN    = "UN"
	SourceEU    = "EU"
	SourceUK    = "UK"
	SourceAU    = "AU"
	SourceCA    = "CA"
	SourceOther = "OTHER"
)

// Типы записей санкционного списка
const (
	ListTypeIndividual = "INDIVIDUAL"
	ListTypeEntity     = "ENTITY"
	ListTypeVessel     = "VESSEL"
	ListTypeAircraft   = "AIRCRAFT"
)

// Sanction представляет запись санкционного списка
type Sanction struct {
	ID              int64     `json:"id,omitempty" yaml:"id,omitempty"`
	ListSource      string    `json:"list_source" yaml:"list_source"`
	ListType        string    `json:"list_type" yaml:"list_type"`
	ReferenceID     string    `json:"reference_id" yaml:"reference_id"`
	FullNameAr      string    `json:"full_name_ar,omitempty" yaml:"full_name_ar,omitempty"`
	FullNameEn      string    `json:"full_name_en" yaml:"full_name_en"`
	AliasAr         string    `json:"alias_ar,omitempty" yaml:"alias_ar,omitempty"`
	AliasEn         string    `json:"alias_en,omitempty" yaml:"alias_en,omitempty"`
	NationalityCode string    `json:"nationality_code,omitempty" yaml:"nationality_code,omitempty"`
	DateOfBirth     string    `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	PlaceOfBirth    string    `json:"place_of_birth,omitempty" yaml:"place_of_birth,omitempty"`
	IDType          string    `json:"id_type,omitempty" yaml:"id_type,omitempty"`
	IDNumber        string    `json:"id_number,omitempty" yaml:"id_number,omitempty"`
	Designation     string    `json:"designation,omitempty" yaml:"designation,omitempty"`
	Reason          string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	EffectiveDate   string    `json:"effective_date,omitempty" yaml:"effective_date,omitempty"`
	ExpiryDate      string    `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty"`
	UNResolution    string    `json:"un_resolution,omitempty" yaml:"un_resolution,omitempty"`
	EURegulation    string    `json:"eu_regulation,omitempty" yaml:"eu_regulation,omitempty"`
	OFACID          string    `json:"ofac_id,omitempty" yaml:"ofac_id,omitempty"`
	RiskLevel       string    `json:"risk_level,omitempty" yaml:"risk_level,omitempty"`
	IsActive        bool      `json:"is_active" yaml:"is_active"`
	CreatedAt       time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SanctionSearchResult представляет запись, найденную поиском, с оценкой схожести
type SanctionSearchResult struct {
	Sanction
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`
}
