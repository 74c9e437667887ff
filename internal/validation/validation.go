package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"
)

// ErrValidation возвращается, когда данные клиента не прошли проверку
var ErrValidation = errors.New("customer validation failed")

var (
	passportPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneCleaner    = regexp.MustCompile(`[^\d+]`)
)

// Result содержит ошибки (блокируют скрининг) и предупреждения
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid сообщает, что ошибок нет
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err возвращает *Error при наличии ошибок
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Messages: r.Errors}
}

// Error описывает ошибки валидации клиента
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Messages, "; "))
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// ValidateCustomer проверяет данные клиента перед скринингом
func ValidateCustomer(c *models.Customer, rules *config.Rules, now time.Time) *Result {
	res := &Result{Errors: []string{}, Warnings: []string{}}
	vr := rules.Validation

	required := []struct {
		field string
		value string
	}{
		{"customer_code", c.CustomerCode},
		{"full_name_en", c.FullNameEn},
		{"nationality_code", c.NationalityCode},
		{"id_number", c.IDNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%s is required", r.field))
		}
	}

	if name := strings.TrimSpace(c.FullNameEn); name != "" {
		if n := utf8.RuneCountInString(name); n < vr.MinNameLength || n > vr.MaxNameLength {
			res.Errors = append(res.Errors, fmt.Sprintf("full_name_en must be between %d and %d characters", vr.MinNameLength, vr.MaxNameLength))
		}
	}
	if name := strings.TrimSpace(c.FullNameAr); name != "" {
		if n := utf8.RuneCountInString(name); n < vr.MinNameLength || n > vr.MaxNameLength {
			res.Errors = append(res.Errors, fmt.Sprintf("full_name_ar must be between %d and %d characters", vr.MinNameLength, vr.MaxNameLength))
		}
	}

	if id := strings.TrimSpace(c.IDNumber); id != "" {
		if n := len(id); n < vr.MinIDLength || n > vr.MaxIDLength {
			res.Errors = append(res.Errors, fmt.Sprintf("id_number must be between %d and %d characters", vr.MinIDLength, vr.MaxIDLength))
		} else if ok, msg := ValidateIDNumber(id, c.IDType); !ok {
			res.Warnings = append(res.Warnings, msg)
		}
	}

	if c.NationalityCode != "" && !ValidateNationalityCode(c.NationalityCode) {
		res.Errors = append(res.Errors, "nationality_code must be a 2-letter uppercase ISO code")
	}
	if c.IDType != "" && !oneOf(vr.IDTypes, c.IDType) {
		res.Errors = append(res.Errors, fmt.Sprintf("id_type must be one of %s", strings.Join(vr.IDTypes, ", ")))
	}
	if c.Gender != "" && !oneOf(vr.Genders, c.Gender) {
		res.Errors = append(res.Errors, fmt.Sprintf("gender must be one of %s", strings.Join(vr.Genders, ", ")))
	}
	if c.CustomerType != "" && !oneOf(vr.CustomerTypes, c.CustomerType) {
		res.Errors = append(res.Errors, fmt.Sprintf("customer_type must be one of %s", strings.Join(vr.CustomerTypes, ", ")))
	}

	if c.DateOfBirth == "" {
		res.Warnings = append(res.Warnings, "date_of_birth is missing, DOB matching is disabled")
	} else if dob, err := time.Parse(DateLayout, c.DateOfBirth); err != nil {
		res.Errors = append(res.Errors, "date_of_birth must be in YYYY-MM-DD format")
	} else if dob.After(now) {
		res.Errors = append(res.Errors, "date_of_birth cannot be in the future")
	}

	if c.IDExpiryDate != "" {
		if expiry, err := time.Parse(DateLayout, c.IDExpiryDate); err != nil {
			res.Warnings = append(res.Warnings, "id_expiry_date must be in YYYY-MM-DD format")
		} else if expiry.Before(now) {
			res.Warnings = append(res.Warnings, "identity document has expired")
		}
	}

	if strings.TrimSpace(c.Occupation) == "" {
		res.Warnings = append(res.Warnings, "occupation is missing, PEP check relies on pep_flag only")
	}

	for _, contact := range c.Contacts {
		switch contact.Type {
		case "EMAIL":
			if ok, msg := ValidateEmail(contact.Value); !ok {
				res.Warnings = append(res.Warnings, msg+": "+contact.Value)
			}
		case "PHONE", "MOBILE":
			if ok, msg := ValidatePhone(contact.Value); !ok {
				res.Warnings = append(res.Warnings, msg+": "+contact.Value)
			}
		}
	}

	return res
}

// ValidateIDNumber проверяет номер документа в зависимости от его типа.
// NATIONAL_ID проверяется по правилам египетского национального номера.
func ValidateIDNumber(idNumber, idType string) (bool, string) {
	idNumber = strings.TrimSpace(idNumber)
	if idNumber == "" {
		return false, "Invalid ID number"
	}

	switch strings.ToUpper(idType) {
	case models.IDTypeNationalID:
		if len(idNumber) != 14 || !isDigits(idNumber) {
			return false, "Egyptian National ID must be 14 digits"
		}

		century := idNumber[0]
		if century != '2' && century != '3' {
			return false, "Invalid century code in Egyptian National ID"
		}

		year, _ := strconv.Atoi(idNumber[1:3])
		month, _ := strconv.Atoi(idNumber[3:5])
		day, _ := strconv.Atoi(idNumber[5:7])
		if century == '2' {
			year += 1900
		} else {
			year += 2000
		}

		if !isRealDate(year, month, day) {
			return false, "Invalid birth date in Egyptian National ID"
		}
		return true, "Valid Egyptian National ID"

	case models.IDTypePassport:
		if len(idNumber) < 6 {
			return false, "Passport number must be at least 6 characters"
		}
		if !passportPattern.MatchString(idNumber) {
			return false, "Invalid passport number format"
		}
		return true, "Valid passport number"

	default:
		if len(idNumber) < 4 {
			return false, "ID number too short"
		}
		return true, "Valid ID number"
	}
}

// ValidatePhone проверяет египетский или международный номер телефона
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return false, "Phone number is required"
	}

	clean := phoneCleaner.ReplaceAllString(phone, "")

	switch {
	case strings.HasPrefix(clean, "+20") && len(clean) == 13:
		return true, "Valid Egyptian phone number"
	case strings.HasPrefix(clean, "01") && len(clean) == 11:
		return true, "Valid Egyptian phone number"
	case strings.HasPrefix(clean, "+") && len(clean) >= 10 && len(clean) <= 15:
		return true, "Valid international phone number"
	}
	return false, "Invalid phone number format"
}

// ValidateEmail проверяет формат адреса электронной почты
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if emailPattern.MatchString(email) {
		return true, "Valid email address"
	}
	return false, "Invalid email format"
}

// ValidateNationalityCode проверяет двухбуквенный код страны ISO
func ValidateNationalityCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// NormalizeScreeningType приводит тип скрининга к верхнему регистру и проверяет,
// что он допустим. Пустая строка остается пустой (используется тип по умолчанию).
func NormalizeScreeningType(screeningType string) (string, error) {
	screeningType = strings.ToUpper(strings.TrimSpace(screeningType))
	switch screeningType {
	case "", models.ScreeningTypeOnboarding, models.ScreeningTypePeriodic,
		models.ScreeningTypeAdHoc, models.ScreeningTypeBatch:
		return screeningType, nil
	}
	return "", &Error{Messages: []string{fmt.Sprintf(
		"screening_type must be one of %s, %s, %s, %s",
		models.ScreeningTypeOnboarding, models.ScreeningTypePeriodic,
		models.ScreeningTypeAdHoc, models.ScreeningTypeBatch,
	)}}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isRealDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Month() == time.Month(month) && t.Day() == day
}

func oneOf(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
