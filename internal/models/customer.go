package models

import (
	"time"
)

// Типы документов, удостоверяющих личность
const (
	IDTypePassport        = "PASSPORT"
	IDTypeNationalID      = "NATIONAL_ID"
	IDTypeDriversLicense  = "DRIVERS_LICENSE"
	IDTypeResidencePermit = "RESIDENCE_PERMIT"
)

// Статусы KYC клиента
const (
	KYCStatusPending    = "PENDING"
	KYCStatusInProgress = "IN_PROGRESS"
	KYCStatusCompleted  = "COMPLETED"
	KYCStatusRejected   = "REJECTED"
	KYCStatusOnHold     = "ON_HOLD"
)

// Customer представляет клиента банка, проходящего проверку KYC
type Customer struct {
	ID              int64     `json:"id,omitempty" yaml:"id,omitempty"`
	CustomerCode    string    `json:"customer_code" yaml:"customer_code"`
	FullNameAr      string    `json:"full_name_ar,omitempty" yaml:"full_name_ar,omitempty"`
	FullNameEn      string    `json:"full_name_en" yaml:"full_name_en"`
	DateOfBirth     string    `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	NationalityCode string    `json:"nationality_code" yaml:"nationality_code"`
	NationalityName string    `json:"nationality_name,omitempty" yaml:"nationality_name,omitempty"`
	IDType          string    `json:"id_type,omitempty" yaml:"id_type,omitempty"`
	IDNumber        string    `json:"id_number" yaml:"id_number"`
	IDIssueDate     string    `json:"id_issue_date,omitempty" yaml:"id_issue_date,omitempty"`
	IDExpiryDate    string    `json:"id_expiry_date,omitempty" yaml:"id_expiry_date,omitempty"`
	Gender          string    `json:"gender,omitempty" yaml:"gender,omitempty"`
	Occupation      string    `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	CustomerType    string    `json:"customer_type,omitempty" yaml:"customer_type,omitempty"`
	RiskCategory    string    `json:"risk_category,omitempty" yaml:"risk_category,omitempty"`
	PEPFlag         bool      `json:"pep_flag" yaml:"pep_flag"`
	KYCStatus       string    `json:"kyc_status,omitempty" yaml:"kyc_status,omitempty"`
	Notes           string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Addresses       []Address `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Contacts        []Contact `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Address представляет адрес клиента
type Address struct {
	Type        string `json:"type" yaml:"type"` // RESIDENTIAL, BUSINESS, MAILING, OTHER
	Line1       string `json:"line1" yaml:"line1"`
	Line2       string `json:"line2,omitempty" yaml:"line2,omitempty"`
	City        string `json:"city,omitempty" yaml:"city,omitempty"`
	State       string `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty" yaml:"country_code,omitempty"`
	IsPrimary   bool   `json:"is_primary" yaml:"is_primary"`
}

// Contact представляет контакт клиента
type Contact struct {
	Type      string `json:"type" yaml:"type"` // EMAIL, PHONE, MOBILE, FAX, WEBSITE
	Value     string `json:"value" yaml:"value"`
	IsPrimary bool   `json:"is_primary" yaml:"is_primary"`
}

// ScreeningRequest представляет запрос на проверку клиента
type ScreeningRequest struct {
	Customer      Customer `json:"customer" binding:"required"`
	ScreeningType string   `json:"screening_type,omitempty"`
	PerformedBy   string   `json:"performed_by,omitempty"`
	SaveReport    bool     `json:"save_report,omitempty"`

	// SkipCustomerSave отключает сохранение клиента после успешной проверки
	SkipCustomerSave bool `json:"skip_customer_save,omitempty"`
}

// BatchScreeningRequest представляет запрос на пакетную проверку (REST и Kafka)
type BatchScreeningRequest struct {
	RequestID     string     `json:"request_id,omitempty"`
	ScreeningType string     `json:"screening_type,omitempty"`
	PerformedBy   string     `json:"performed_by,omitempty"`
	Customers     []Customer `json:"customers" binding:"required,min=1"`
}
