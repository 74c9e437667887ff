package risk

import (
	"context"
	"fmt"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/matching"
	"kyc-screening/internal/models"
	"kyc-screening/internal/validation"

	"github.com/rs/zerolog/log"
)

// CountryChecker проверяет принадлежность страны к списку высокого риска.
// Реализуется Redis клиентом (множество high_risk_countries).
type CountryChecker interface {
	IsHighRiskCountry(ctx context.Context, countryCode string) (bool, error)
}

// Calculator рассчитывает риск-скоринг клиента
type Calculator struct {
	rules     *config.Rules
	countries CountryChecker
	now       func() time.Time
}

// NewCalculator создает калькулятор риска. countries может быть nil,
// тогда используется список стран из правил.
func NewCalculator(rules *config.Rules, countries CountryChecker) *Calculator {
	return &Calculator{
		rules:     rules,
		countries: countries,
		now:       time.Now,
	}
}

// Assess выполняет расчет риска клиента с учетом найденных совпадений
func (c *Calculator) Assess(ctx context.Context, customer *models.Customer, matches []models.SanctionMatch) *models.RiskAssessment {
	scoring := c.rules.RiskScoring
	score := 0
	factors := []string{}
	details := map[string]any{}

	// 1. Публичное должностное лицо
	if customer.PEPFlag || matching.ContainsPEPIndicator(customer.Occupation, c.rules.PEPIndicators) {
		score += scoring.PEPPenalty
		factors = append(factors, "PEP - Politically Exposed Person")
		details["pep_detected"] = true
		details["pep_penalty"] = scoring.PEPPenalty
	}

	// 2. Страна высокого риска
	if customer.NationalityCode != "" {
		if c.isHighRiskCountry(ctx, customer.NationalityCode) {
			score += scoring.HighRiskCountryPenalty
			factors = append(factors, fmt.Sprintf("High-risk country: %s", customer.NationalityCode))
			details["high_risk_country"] = true
			details["country_penalty"] = scoring.HighRiskCountryPenalty
		} else if c.rules.IsMediumRiskCountry(customer.NationalityCode) {
			factors = append(factors, fmt.Sprintf("Medium-risk country: %s", customer.NationalityCode))
			details["medium_risk_country"] = true
		}
	}

	// 3. Совпадения с санкционными списками
	exact, partial := 0, 0
	for _, m := range matches {
		if m.MatchType == models.MatchExact {
			score += scoring.SanctionMatchPenalty
			factors = append(factors, fmt.Sprintf("Exact sanction match: %s", nameOrUnknown(m.SanctionName)))
			exact++
		} else {
			score += scoring.PartialMatchPenalty
			factors = append(factors, fmt.Sprintf("Partial sanction match: %s", nameOrUnknown(m.SanctionName)))
			partial++
		}
	}
	if exact > 0 {
		details["exact_matches"] = exact
	}
	if partial > 0 {
		details["partial_matches"] = partial
	}

	// 4. Возраст
	if customer.DateOfBirth != "" {
		if age, ok := validation.CalculateAge(customer.DateOfBirth, c.now()); ok && age > scoring.AgeRiskThreshold {
			score += scoring.AgeRiskPenalty
			factors = append(factors, fmt.Sprintf("High age risk: %d years", age))
			details["age_risk"] = true
		}
	}

	// 5. Подозрительный номер документа
	if id := customer.IDNumber; id != "" {
		if distinctChars(id) <= 3 {
			score += scoring.UnusualIDPenalty
			factors = append(factors, "Suspicious ID number pattern")
			details["suspicious_id"] = true
		}
		if allZeros(id) {
			score += scoring.ZeroIDPenalty
			factors = append(factors, "ID number contains only zeros")
		}
	}

	if score > scoring.MaxRiskScore {
		score = scoring.MaxRiskScore
	}

	return &models.RiskAssessment{
		RiskScore:    score,
		RiskLevel:    Level(score),
		RiskFactors:  factors,
		RiskDetails:  details,
		CalculatedAt: c.now(),
	}
}

func (c *Calculator) isHighRiskCountry(ctx context.Context, code string) bool {
	if c.countries != nil {
		isHighRisk, err := c.countries.IsHighRiskCountry(ctx, code)
		if err == nil {
			return isHighRisk
		}
		log.Warn().Err(err).Str("country", code).Msg("high-risk country lookup failed, using configured list")
	}
	return c.rules.IsHighRiskCountry(code)
}

// Level определяет уровень риска по баллам
func Level(score int) string {
	switch {
	case score >= 80:
		return models.RiskCritical
	case score >= 60:
		return models.RiskHigh
	case score >= 40:
		return models.RiskMedium
	case score >= 20:
		return models.RiskLow
	default:
		return models.RiskVeryLow
	}
}

// IsElevated сообщает, требует ли уровень риска ручной проверки
func IsElevated(level string) bool {
	return level == models.RiskHigh || level == models.RiskCritical
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

func distinctChars(s string) int {
	seen := make(map[rune]struct{})
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

func allZeros(s string) bool {
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}
