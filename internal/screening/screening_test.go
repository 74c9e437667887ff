package screening

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"
	"kyc-screening/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func masri() *models.Sanction {
	return &models.Sanction{
		ID:              1,
		ListSource:      models.SourceOFAC,
		ReferenceID:     "SDN12345",
		FullNameAr:      "أحمد علي المصري",
		FullNameEn:      "Ahmed Ali Al-Masri",
		AliasEn:         "Ahmed Al-Masri",
		NationalityCode: "EG",
		DateOfBirth:     "1980-05-15",
		IDNumber:        "A12345678",
		RiskLevel:       models.RiskHigh,
		IsActive:        true,
	}
}

func hassan() *models.Sanction {
	return &models.Sanction{
		ID:              2,
		ListSource:      models.SourceOFAC,
		ReferenceID:     "SDN12346",
		FullNameEn:      "Mohamed Hassan",
		NationalityCode: "SY",
		DateOfBirth:     "1975-11-22",
		RiskLevel:       models.RiskHigh,
		IsActive:        true,
	}
}

func newTestScreener(finder CandidateFinder) *Screener {
	s := NewScreener(finder, config.DefaultRules(), nil)
	s.now = func() time.Time { return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC) }
	return s
}

func TestCheckMatch_Exact(t *testing.T) {
	s := newTestScreener(nil)
	customer := &models.Customer{
		FullNameEn:      "Ahmed Ali Al-Masri",
		DateOfBirth:     "15/05/1980",
		NationalityCode: "eg",
		IDNumber:        "a12345678",
	}

	m, ok := s.CheckMatch(customer, masri())
	require.True(t, ok)
	assert.Equal(t, models.MatchExact, m.MatchType)
	assert.Equal(t, 100.0, m.NameMatchScore)
	assert.Equal(t, 100.0, m.MatchScore)
	assert.True(t, m.DOBMatch)
	assert.True(t, m.NationalityMatch)
	assert.True(t, m.IDMatch)
	assert.Equal(t, ActionReject, m.RecommendedAction)
	assert.Equal(t, []string{"full_name_en", "date_of_birth", "nationality_code", "id_number"}, m.MatchedFields)
}

func TestCheckMatch_Partial(t *testing.T) {
	s := newTestScreener(nil)
	customer := &models.Customer{FullNameEn: "Mohammed Hasan", NationalityCode: "GB"}

	m, ok := s.CheckMatch(customer, hassan())
	require.True(t, ok)
	assert.Equal(t, models.MatchPartial, m.MatchType)
	assert.InDelta(t, 92.857, m.MatchScore, 0.01)
	assert.False(t, m.DOBMatch)
	assert.False(t, m.NationalityMatch)
	assert.Equal(t, ActionEnhancedDueDiligence, m.RecommendedAction)
}

func TestCheckMatch_Alias(t *testing.T) {
	s := newTestScreener(nil)
	m, ok := s.CheckMatch(&models.Customer{FullNameEn: "Mr. Ahmed Al Masri"}, masri())
	require.True(t, ok)
	assert.Equal(t, models.MatchExact, m.MatchType)
	assert.Equal(t, []string{"alias_en"}, m.MatchedFields)
}

func TestCheckMatch_Arabic(t *testing.T) {
	s := newTestScreener(nil)
	// латинское имя не похоже, но арабское совпадает после нормализации
	customer := &models.Customer{FullNameEn: "A. A. Masry", FullNameAr: "احمد علي المصري"}

	m, ok := s.CheckMatch(customer, masri())
	require.True(t, ok)
	assert.Equal(t, models.MatchExact, m.MatchType)
	assert.Equal(t, "full_name_ar", m.MatchedFields[0])
}

func TestCheckMatch_NoMatch(t *testing.T) {
	s := newTestScreener(nil)
	m, ok := s.CheckMatch(&models.Customer{FullNameEn: "John Smith", DateOfBirth: "1980-05-15"}, masri())
	assert.False(t, ok)
	assert.Equal(t, models.MatchNone, m.MatchType)
	// совпадение даты рождения учитывается в оценке, но не делает запись совпадением
	assert.True(t, m.DOBMatch)
}

func TestCheckMatch_FuzzyDisabled(t *testing.T) {
	rules := config.DefaultRules()
	rules.Screening.FuzzyMatchEnabled = false
	s := NewScreener(nil, rules, nil)

	customer := &models.Customer{FullNameEn: "Al-Masri Ahmed Ali"}
	_, ok := s.CheckMatch(customer, masri())
	assert.False(t, ok)

	rules.Screening.FuzzyMatchEnabled = true
	m, ok := s.CheckMatch(customer, masri())
	require.True(t, ok)
	assert.Equal(t, models.MatchExact, m.MatchType)
}

func TestDetermineResult(t *testing.T) {
	exact := models.SanctionMatch{MatchType: models.MatchExact}
	partial := models.SanctionMatch{MatchType: models.MatchPartial}

	tests := []struct {
		name      string
		matches   []models.SanctionMatch
		riskLevel string
		expected  string
	}{
		{"no matches", nil, models.RiskCritical, models.ResultClear},
		{"exact match", []models.SanctionMatch{partial, exact}, models.RiskLow, models.ResultRejected},
		{"high risk partial", []models.SanctionMatch{partial}, models.RiskHigh, models.ResultReviewRequired},
		{"critical risk partial", []models.SanctionMatch{partial}, models.RiskCritical, models.ResultReviewRequired},
		{"medium risk partial", []models.SanctionMatch{partial}, models.RiskMedium, models.ResultClearWithWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineResult(tt.matches, tt.riskLevel))
		})
	}
}

func TestSearchTerms(t *testing.T) {
	terms := SearchTerms(&models.Customer{FullNameEn: "Dr. Ahmed Al-Masri", FullNameAr: "أحمد المصري"})
	assert.Equal(t, []string{"Dr. Ahmed Al-Masri", "أحمد المصري", "ahmed", "masri"}, terms)
}

func TestNewScreeningID(t *testing.T) {
	id := NewScreeningID(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(id, "SCR20240615103000"))
	assert.Len(t, id, len("SCR20240615103000")+8)
	assert.NotEqual(t, id, NewScreeningID(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)))
}

func TestScreen(t *testing.T) {
	t.Run("rejected on exact match", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		repo.On("FindCandidates", mock.Anything, mock.Anything, 50).
			Return([]*models.Sanction{masri(), hassan()}, nil)

		s := newTestScreener(repo)
		customer := &models.Customer{
			CustomerCode:    "CUST001",
			FullNameEn:      "Ahmed Ali Al-Masri",
			DateOfBirth:     "1980-05-15",
			NationalityCode: "EG",
			IDNumber:        "29001011234567",
		}

		sc, err := s.Screen(context.Background(), customer, "")
		require.NoError(t, err)
		assert.Equal(t, models.ScreeningTypeOnboarding, sc.ScreeningType)
		assert.Equal(t, "CUST001", sc.CustomerCode)
		assert.Equal(t, "Ahmed Ali Al-Masri", sc.CustomerName)
		assert.Equal(t, 1, sc.TotalMatches)
		assert.Equal(t, 1, sc.ExactMatches)
		assert.Equal(t, 100.0, sc.HighestMatchScore)
		assert.Equal(t, models.ResultRejected, sc.Result)
		assert.Equal(t, models.RiskCritical, sc.RiskLevel)
		assert.True(t, strings.HasPrefix(sc.ScreeningID, "SCR20240615103000"))
		repo.AssertExpectations(t)
	})

	t.Run("clear with warning on partial match", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		repo.On("FindCandidates", mock.Anything, []string{"Mohammed Hasan", "mohammed", "hasan"}, 50).
			Return([]*models.Sanction{hassan()}, nil)

		sc, err := newTestScreener(repo).Screen(context.Background(), &models.Customer{
			CustomerCode:    "CUST002",
			FullNameEn:      "Mohammed Hasan",
			NationalityCode: "GB",
			IDNumber:        "P1234567",
		}, models.ScreeningTypePeriodic)
		require.NoError(t, err)
		assert.Equal(t, 1, sc.PartialMatches)
		assert.Equal(t, 50, sc.RiskScore)
		assert.Equal(t, models.RiskMedium, sc.RiskLevel)
		assert.Equal(t, models.ResultClearWithWarning, sc.Result)
		repo.AssertExpectations(t)
	})

	t.Run("review required for high risk partial match", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		repo.On("FindCandidates", mock.Anything, mock.Anything, 50).Return([]*models.Sanction{hassan()}, nil)

		sc, err := newTestScreener(repo).Screen(context.Background(), &models.Customer{
			CustomerCode:    "CUST003",
			FullNameEn:      "Mohammed Hasan",
			NationalityCode: "SY",
			IDNumber:        "P1234567",
		}, "")
		require.NoError(t, err)
		assert.Equal(t, 75, sc.RiskScore)
		assert.Equal(t, models.ResultReviewRequired, sc.Result)
	})

	t.Run("clear without candidates", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		repo.On("FindCandidates", mock.Anything, mock.Anything, 50).Return([]*models.Sanction{}, nil)

		sc, err := newTestScreener(repo).Screen(context.Background(), &models.Customer{
			CustomerCode: "CUST004",
			FullNameEn:   "John Smith",
			IDNumber:     "P7654321",
		}, "")
		require.NoError(t, err)
		assert.Equal(t, models.ResultClear, sc.Result)
		assert.Empty(t, sc.Matches)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mocks.MockRepository)
		repo.On("FindCandidates", mock.Anything, mock.Anything, 50).Return(nil, errors.New("disk I/O error"))

		_, err := newTestScreener(repo).Screen(context.Background(), &models.Customer{FullNameEn: "John Smith"}, "")
		assert.ErrorContains(t, err, "disk I/O error")
	})
}

func TestRunBatch(t *testing.T) {
	customers := []models.Customer{
		{CustomerCode: "C1"}, {CustomerCode: "C2"}, {CustomerCode: "FAIL"}, {CustomerCode: "C4"}, {CustomerCode: "C5"},
	}

	var inFlight, maxInFlight int32
	results := RunBatch(context.Background(), customers, 2, func(_ context.Context, c *models.Customer) (*models.Screening, error) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			cur := atomic.LoadInt32(&maxInFlight)
			if n <= cur || atomic.CompareAndSwapInt32(&maxInFlight, cur, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)

		if c.CustomerCode == "FAIL" {
			return nil, errors.New("validation failed")
		}
		return &models.Screening{CustomerCode: c.CustomerCode, Result: models.ResultClear}, nil
	})

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, customers[i].CustomerCode, r.CustomerCode)
	}
	assert.Equal(t, "validation failed", results[2].Error)
	assert.Nil(t, results[2].Screening)
	assert.Equal(t, "C5", results[4].Screening.CustomerCode)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))

	summary := Summarize("req-1", results)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestScreenBatch(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("FindCandidates", mock.Anything, mock.Anything, 50).Return([]*models.Sanction{masri()}, nil)

	s := newTestScreener(repo)
	results := s.ScreenBatch(context.Background(), []models.Customer{
		{CustomerCode: "A", FullNameEn: "Ahmed Ali Al-Masri", IDNumber: "P1234567"},
		{CustomerCode: "B", FullNameEn: "Jane Doe", IDNumber: "P7654321"},
	}, models.ScreeningTypeBatch, 0)

	require.Len(t, results, 2)
	assert.Equal(t, models.ResultRejected, results[0].Screening.Result)
	assert.Equal(t, models.ResultClear, results[1].Screening.Result)
	assert.Equal(t, models.ScreeningTypeBatch, results[1].Screening.ScreeningType)
}
