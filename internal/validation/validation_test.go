package validation

import (
	"errors"
	"testing"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func validCustomer() *models.Customer {
	return &models.Customer{
		CustomerCode:    "CUST-001",
		FullNameEn:      "Karim Mostafa",
		DateOfBirth:     "1985-03-10",
		NationalityCode: "EG",
		IDType:          models.IDTypePassport,
		IDNumber:        "A7654321",
		Gender:          "M",
		Occupation:      "Engineer",
		CustomerType:    "INDIVIDUAL",
	}
}

func TestValidateCustomer_Valid(t *testing.T) {
	res := ValidateCustomer(validCustomer(), config.DefaultRules(), testNow)

	assert.True(t, res.Valid())
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.NoError(t, res.Err())
}

func TestValidateCustomer_MissingRequired(t *testing.T) {
	res := ValidateCustomer(&models.Customer{}, config.DefaultRules(), testNow)

	require.False(t, res.Valid())
	assert.Contains(t, res.Errors, "customer_code is required")
	assert.Contains(t, res.Errors, "full_name_en is required")
	assert.Contains(t, res.Errors, "nationality_code is required")
	assert.Contains(t, res.Errors, "id_number is required")

	err := res.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Messages, len(res.Errors))
}

func TestValidateCustomer_FieldErrors(t *testing.T) {
	c := validCustomer()
	c.FullNameEn = "A"
	c.NationalityCode = "egy"
	c.Gender = "X"
	c.IDType = "LIBRARY_CARD"
	c.DateOfBirth = "2030-01-01"

	res := ValidateCustomer(c, config.DefaultRules(), testNow)

	assert.False(t, res.Valid())
	assert.Len(t, res.Errors, 5)
	assert.Contains(t, res.Errors, "date_of_birth cannot be in the future")
}

func TestValidateCustomer_Warnings(t *testing.T) {
	c := validCustomer()
	c.DateOfBirth = ""
	c.Occupation = ""
	c.IDExpiryDate = "2020-01-01"
	c.IDNumber = "1234567"
	c.Contacts = []models.Contact{
		{Type: "EMAIL", Value: "not-an-email"},
		{Type: "MOBILE", Value: "12345"},
	}

	res := ValidateCustomer(c, config.DefaultRules(), testNow)

	assert.True(t, res.Valid())
	assert.Len(t, res.Warnings, 6)
	assert.Contains(t, res.Warnings, "identity document has expired")
	assert.Contains(t, res.Warnings, "Invalid passport number format")
}

func TestValidateIDNumber(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		idType string
		valid  bool
	}{
		{"egyptian 20th century", "28503101234567", models.IDTypeNationalID, true},
		{"egyptian 21st century", "30001011234567", models.IDTypeNationalID, true},
		{"egyptian wrong length", "2850310123456", models.IDTypeNationalID, false},
		{"egyptian letters", "2850310123456A", models.IDTypeNationalID, false},
		{"egyptian bad century", "18503101234567", models.IDTypeNationalID, false},
		{"egyptian bad date", "28502301234567", models.IDTypeNationalID, false},
		{"passport ok", "A12345678", models.IDTypePassport, true},
		{"passport short", "A1234", models.IDTypePassport, false},
		{"passport starts with digit", "123456789", models.IDTypePassport, false},
		{"generic ok", "DL-1234", models.IDTypeDriversLicense, true},
		{"generic short", "123", models.IDTypeDriversLicense, false},
		{"empty", "", models.IDTypePassport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateIDNumber(tt.id, tt.idType)
			assert.Equal(t, tt.valid, ok, msg)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	ok, _ := ValidatePhone("+20 100 123 4567")
	assert.True(t, ok)

	ok, _ = ValidatePhone("0100-123-4567")
	assert.True(t, ok)

	ok, msg := ValidatePhone("+44 20 7946 0958")
	assert.True(t, ok)
	assert.Equal(t, "Valid international phone number", msg)

	ok, _ = ValidatePhone("12345")
	assert.False(t, ok)

	ok, _ = ValidatePhone("")
	assert.False(t, ok)
}

func TestValidateEmail(t *testing.T) {
	ok, _ := ValidateEmail("compliance@bank.example.com")
	assert.True(t, ok)

	ok, _ = ValidateEmail("compliance@bank")
	assert.False(t, ok)

	ok, _ = ValidateEmail("")
	assert.False(t, ok)
}

func TestValidateNationalityCode(t *testing.T) {
	assert.True(t, ValidateNationalityCode("EG"))
	assert.False(t, ValidateNationalityCode("eg"))
	assert.False(t, ValidateNationalityCode("EGY"))
	assert.False(t, ValidateNationalityCode("E1"))
	assert.False(t, ValidateNationalityCode(""))
}

func TestDates(t *testing.T) {
	age, ok := CalculateAge("1950-06-16", testNow)
	require.True(t, ok)
	assert.Equal(t, 73, age)

	age, ok = CalculateAge("1950-06-15", testNow)
	require.True(t, ok)
	assert.Equal(t, 74, age)

	_, ok = CalculateAge("15/06/1950", testNow)
	assert.False(t, ok)

	assert.True(t, IsDateValid("2024-02-29"))
	assert.False(t, IsDateValid("2023-02-29"))

	assert.Equal(t, "1980-05-15", NormalizeDate("15/05/1980"))
	assert.Equal(t, "1980-05-15", NormalizeDate("1980/05/15"))
	assert.Equal(t, "garbage", NormalizeDate("garbage"))
	assert.Equal(t, "15/05/1980", FormatDate("1980-05-15"))

	days, ok := DaysBetween("2024-01-10", "2024-01-01")
	require.True(t, ok)
	assert.Equal(t, 9, days)
}

func TestNormalizeScreeningType(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"onboarding", models.ScreeningTypeOnboarding, false},
		{" Periodic ", models.ScreeningTypePeriodic, false},
		{"ad_hoc", models.ScreeningTypeAdHoc, false},
		{"BATCH", models.ScreeningTypeBatch, false},
		{"quarterly", "", true},
		{"AD-HOC", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeScreeningType(tt.in)
			if tt.wantErr {
				var verr *Error
				require.ErrorAs(t, err, &verr)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
