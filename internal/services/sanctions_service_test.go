package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"
	"kyc-screening/internal/sanctions"
	storagemocks "kyc-screening/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSanctionsService() (SanctionsService, *storagemocks.MockRepository) {
	repo := new(storagemocks.MockRepository)
	rules := config.DefaultRules()
	return NewSanctionsService(repo, sanctions.NewLoader(repo, rules, nil), rules), repo
}

func TestSanctionsService_SearchExact(t *testing.T) {
	svc, repo := newTestSanctionsService()
	repo.On("SearchSanctions", mock.Anything, "Hassan", defaultSearchLimit).Return([]*models.Sanction{
		{ID: 2, FullNameEn: "Mohamed Hassan", ListSource: "OFAC"},
	}, nil)

	results, err := svc.Search(context.Background(), " Hassan ", 0, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mohamed Hassan", results[0].FullNameEn)
	assert.Zero(t, results[0].Score)
	repo.AssertNotCalled(t, "FindCandidates", mock.Anything, mock.Anything, mock.Anything)
}

func TestSanctionsService_SearchFuzzy(t *testing.T) {
	svc, repo := newTestSanctionsService()
	trading := &models.Sanction{ID: 5, FullNameEn: "Hassan Trading Co", ListSource: "UN"}
	hassan := &models.Sanction{ID: 2, FullNameEn: "Mohamed Hassan", ListSource: "OFAC"}
	petrov := &models.Sanction{ID: 3, FullNameEn: "Ivan Petrov", ListSource: "EU"}

	repo.On("SearchSanctions", mock.Anything, "Mohamed Hasan", 10).Return([]*models.Sanction{trading}, nil)
	repo.On("FindCandidates", mock.Anything, []string{"Mohamed Hasan", "mohamed", "hasan"}, 10).
		Return([]*models.Sanction{trading, hassan, petrov}, nil)

	results, err := svc.Search(context.Background(), "Mohamed Hasan", 10, true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].ID, "closest name ranks first")
	assert.Greater(t, results[0].Score, 90.0)
	assert.Equal(t, int64(5), results[1].ID, "substring hits are kept regardless of score")
	assert.Less(t, results[1].Score, results[0].Score)
	repo.AssertExpectations(t)
}

func TestSanctionsService_SearchEmptyQuery(t *testing.T) {
	svc, repo := newTestSanctionsService()

	results, err := svc.Search(context.Background(), "   ", 10, true)
	require.NoError(t, err)
	assert.Empty(t, results)
	repo.AssertNotCalled(t, "SearchSanctions", mock.Anything, mock.Anything, mock.Anything)
}

func TestSanctionsService_SearchError(t *testing.T) {
	svc, repo := newTestSanctionsService()
	repo.On("SearchSanctions", mock.Anything, "x", 5).Return(nil, errors.New("no such table"))

	_, err := svc.Search(context.Background(), "x", 5, false)
	assert.ErrorContains(t, err, "no such table")
}

func TestSanctionsService_Import(t *testing.T) {
	svc, repo := newTestSanctionsService()
	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"list_source": "uk", "reference_id": "UK1", "full_name_en": "Karim Nasser"},
		{"list_source": "XX", "reference_id": "X1", "full_name_en": "Unknown Source"}
	]`), 0o644))

	repo.On("UpsertSanction", mock.Anything, mock.MatchedBy(func(s *models.Sanction) bool {
		return s.ListSource == "UK" && s.RiskLevel == models.RiskHigh
	})).Return(int64(10), nil)
	repo.On("CountSanctions", mock.Anything).Return(6, nil)
	repo.On("AddAudit", mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
		return e.Action == models.AuditImportSanctions
	})).Return(nil)

	result, err := svc.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	repo.AssertExpectations(t)
}

func TestSanctionsService_GetAndCount(t *testing.T) {
	svc, repo := newTestSanctionsService()
	repo.On("GetSanction", mock.Anything, int64(1)).Return(&models.Sanction{ID: 1}, nil)
	repo.On("GetSanction", mock.Anything, int64(99)).Return(nil, nil)
	repo.On("CountSanctions", mock.Anything).Return(5, nil)

	s, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)

	s, err = svc.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, s)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
