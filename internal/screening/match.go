package screening

import (
	"strings"

	"kyc-screening/internal/matching"
	"kyc-screening/internal/models"
	"kyc-screening/internal/validation"
)

// Рекомендуемые действия по типу совпадения
const (
	ActionReject               = "REJECT"
	ActionEnhancedDueDiligence = "ENHANCED_DUE_DILIGENCE"
)

// CheckMatch сравнивает клиента с записью списка. Второе значение сообщает,
// превысила ли схожесть имени порог совпадения.
func (s *Screener) CheckMatch(customer *models.Customer, sanction *models.Sanction) (models.SanctionMatch, bool) {
	cfg := s.rules.Screening

	nameScore, field := s.bestNameScore(customer, sanction)

	m := models.SanctionMatch{
		SanctionID:     sanction.ID,
		SanctionName:   sanction.FullNameEn,
		SanctionSource: sanction.ListSource,
		MatchType:      models.MatchNone,
		NameMatchScore: nameScore,
		RiskLevel:      sanction.RiskLevel,
	}
	if m.RiskLevel == "" {
		m.RiskLevel = models.RiskHigh
	}

	isMatch := nameScore >= cfg.NameMatchThreshold
	if isMatch {
		m.MatchedFields = append(m.MatchedFields, field)
		if nameScore >= cfg.ExactMatchThreshold {
			m.MatchType = models.MatchExact
			m.RecommendedAction = ActionReject
		} else {
			m.MatchType = models.MatchPartial
			m.RecommendedAction = ActionEnhancedDueDiligence
		}
	}

	score := nameScore
	if customer.DateOfBirth != "" && sanction.DateOfBirth != "" &&
		validation.NormalizeDate(customer.DateOfBirth) == validation.NormalizeDate(sanction.DateOfBirth) {
		m.DOBMatch = true
		score += cfg.DOBMatchBonus
		m.MatchedFields = append(m.MatchedFields, "date_of_birth")
	}

	if customer.NationalityCode != "" && strings.EqualFold(customer.NationalityCode, sanction.NationalityCode) {
		m.NationalityMatch = true
		m.MatchedFields = append(m.MatchedFields, "nationality_code")
	}

	if id := normalizeID(customer.IDNumber); id != "" && id == normalizeID(sanction.IDNumber) {
		m.IDMatch = true
		m.MatchedFields = append(m.MatchedFields, "id_number")
	}

	m.MatchScore = min(score, 100)
	return m, isMatch
}

// bestNameScore возвращает лучшую оценку и поле записи, давшее ее
func (s *Screener) bestNameScore(customer *models.Customer, sanction *models.Sanction) (float64, string) {
	best, field := 0.0, "full_name_en"

	customerEn := matching.NormalizeEnglish(customer.FullNameEn)
	for _, candidate := range []struct {
		field string
		value string
	}{
		{"full_name_en", sanction.FullNameEn},
		{"alias_en", sanction.AliasEn},
	} {
		if score := s.nameScore(customerEn, matching.NormalizeEnglish(candidate.value)); score > best {
			best, field = score, candidate.field
		}
	}

	if customer.FullNameAr != "" {
		customerAr := matching.NormalizeArabic(customer.FullNameAr)
		for _, candidate := range []struct {
			field string
			value string
		}{
			{"full_name_ar", sanction.FullNameAr},
			{"alias_ar", sanction.AliasAr},
		} {
			if candidate.value == "" {
				continue
			}
			if score := s.nameScore(customerAr, matching.NormalizeArabic(candidate.value)); score > best {
				best, field = score, candidate.field
			}
		}
	}

	return best, field
}

func (s *Screener) nameScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	score := matching.Ratio(a, b)
	if s.rules.Screening.FuzzyMatchEnabled {
		score = max(score, matching.TokenSortRatio(a, b))
	}
	return score
}

func normalizeID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	return strings.NewReplacer(" ", "", "-", "").Replace(id)
}
