// Package screening сопоставляет клиентов с санкционными списками и
// определяет итог проверки.
package screening

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/matching"
	"kyc-screening/internal/models"
	"kyc-screening/internal/risk"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// minTokenLength - минимальная длина части имени для поиска кандидатов
const minTokenLength = 3

// CandidateFinder ищет активные записи санкционных списков по подстрокам имени
type CandidateFinder interface {
	FindCandidates(ctx context.Context, terms []string, limit int) ([]*models.Sanction, error)
}

// Screener выполняет скрининг клиента
type Screener struct {
	finder     CandidateFinder
	rules      *config.Rules
	calculator *risk.Calculator
	now        func() time.Time
}

func NewScreener(finder CandidateFinder, rules *config.Rules, calculator *risk.Calculator) *Screener {
	if rules == nil {
		rules = config.DefaultRules()
	}
	if calculator == nil {
		calculator = risk.NewCalculator(rules, nil)
	}
	return &Screener{
		finder:     finder,
		rules:      rules,
		calculator: calculator,
		now:        time.Now,
	}
}

// Screen ищет кандидатов, проверяет совпадения, рассчитывает риск и итог
func (s *Screener) Screen(ctx context.Context, customer *models.Customer, screeningType string) (*models.Screening, error) {
	if screeningType == "" {
		screeningType = s.rules.Screening.DefaultScreeningType
	}

	candidates, err := s.finder.FindCandidates(ctx, SearchTerms(customer), s.rules.Screening.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search sanctions: %w", err)
	}

	matches := []models.SanctionMatch{}
	for _, sanction := range candidates {
		if m, ok := s.CheckMatch(customer, sanction); ok {
			matches = append(matches, m)
		}
	}

	assessment := s.calculator.Assess(ctx, customer, matches)
	now := s.now().UTC()

	sc := &models.Screening{
		ScreeningID:   NewScreeningID(now),
		CustomerCode:  customer.CustomerCode,
		CustomerName:  customer.FullNameEn,
		ScreeningDate: now,
		ScreeningType: screeningType,
		TotalMatches:  len(matches),
		RiskScore:     assessment.RiskScore,
		RiskLevel:     assessment.RiskLevel,
		RiskFactors:   assessment.RiskFactors,
		RiskDetails:   assessment.RiskDetails,
		Result:        DetermineResult(matches, assessment.RiskLevel),
		Matches:       matches,
	}
	for _, m := range matches {
		switch m.MatchType {
		case models.MatchExact:
			sc.ExactMatches++
		default:
			sc.PartialMatches++
		}
		if m.MatchScore > sc.HighestMatchScore {
			sc.HighestMatchScore = m.MatchScore
		}
	}

	log.Debug().
		Str("screening_id", sc.ScreeningID).
		Str("customer_code", sc.CustomerCode).
		Int("candidates", len(candidates)).
		Int("matches", sc.TotalMatches).
		Str("result", sc.Result).
		Msg("Customer screened")
	return sc, nil
}

// SearchTerms возвращает термины поиска кандидатов от самого специфичного:
// полное английское имя, арабское имя, затем части английского имени от 3 символов
func SearchTerms(customer *models.Customer) []string {
	seen := map[string]struct{}{}
	var terms []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		terms = append(terms, term)
	}

	add(customer.FullNameEn)
	add(customer.FullNameAr)
	for _, token := range strings.Fields(matching.NormalizeEnglish(customer.FullNameEn)) {
		if len([]rune(token)) >= minTokenLength {
			add(token)
		}
	}
	return terms
}

// DetermineResult определяет итог скрининга по совпадениям и уровню риска
func DetermineResult(matches []models.SanctionMatch, riskLevel string) string {
	if len(matches) == 0 {
		return models.ResultClear
	}

	partial := false
	for _, m := range matches {
		if m.MatchType == models.MatchExact {
			return models.ResultRejected
		}
		if m.MatchType == models.MatchPartial || m.MatchType == models.MatchFuzzy {
			partial = true
		}
	}

	if risk.IsElevated(riskLevel) {
		return models.ResultReviewRequired
	}
	if partial {
		return models.ResultClearWithWarning
	}
	return models.ResultClear
}

// NewScreeningID формирует идентификатор вида SCR20240615103000A1B2C3D4
func NewScreeningID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "SCR" + now.Format("20060102150405") + suffix
}
