package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"
	"kyc-screening/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testCustomer(code, idNumber string) *models.Customer {
	return &models.Customer{
		CustomerCode:    code,
		FullNameEn:      "Ahmed Hassan Ali",
		FullNameAr:      "أحمد حسن علي",
		DateOfBirth:     "1980-05-12",
		NationalityCode: "EG",
		IDType:          models.IDTypeNationalID,
		IDNumber:        idNumber,
		Gender:          "M",
		Occupation:      "Engineer",
		Addresses: []models.Address{
			{Type: "RESIDENTIAL", Line1: "12 Nile St", City: "Cairo", CountryCode: "EG", IsPrimary: true},
		},
		Contacts: []models.Contact{
			{Type: "EMAIL", Value: "ahmed@example.com", IsPrimary: true},
		},
	}
}

func testSanction(source, ref, name, risk string) *models.Sanction {
	return &models.Sanction{
		ListSource:  source,
		ListType:    models.ListTypeIndividual,
		ReferenceID: ref,
		FullNameEn:  name,
		RiskLevel:   risk,
		IsActive:    true,
	}
}

func TestNewConnection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "kyc.db")
	s, err := NewConnection(&config.Config{DB: config.DBConfig{DBPath: dbPath}})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestCustomers(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.SaveCustomer(ctx, testCustomer("CUST001", "29001011234567"), "officer")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	t.Run("duplicate code", func(t *testing.T) {
		_, err := s.SaveCustomer(ctx, testCustomer("CUST001", "99999999"), "officer")
		assert.ErrorIs(t, err, storage.ErrDuplicateCustomer)
	})

	t.Run("duplicate id number", func(t *testing.T) {
		_, err := s.SaveCustomer(ctx, testCustomer("CUST002", "29001011234567"), "officer")
		assert.ErrorIs(t, err, storage.ErrDuplicateCustomer)
	})

	t.Run("get with details", func(t *testing.T) {
		c, err := s.GetCustomer(ctx, "CUST001")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Ahmed Hassan Ali", c.FullNameEn)
		assert.Equal(t, "INDIVIDUAL", c.CustomerType)
		assert.Equal(t, "LOW", c.RiskCategory)
		assert.Equal(t, models.KYCStatusPending, c.KYCStatus)
		require.Len(t, c.Addresses, 1)
		assert.Equal(t, "Cairo", c.Addresses[0].City)
		require.Len(t, c.Contacts, 1)
		assert.Equal(t, "ahmed@example.com", c.Contacts[0].Value)
	})

	t.Run("get missing", func(t *testing.T) {
		c, err := s.GetCustomer(ctx, "NOPE")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, s.UpdateCustomerStatus(ctx, "CUST001", models.KYCStatusCompleted, models.RiskMedium))
		c, err := s.GetCustomer(ctx, "CUST001")
		require.NoError(t, err)
		assert.Equal(t, models.KYCStatusCompleted, c.KYCStatus)
		assert.Equal(t, models.RiskMedium, c.RiskCategory)

		err = s.UpdateCustomerStatus(ctx, "NOPE", models.KYCStatusCompleted, models.RiskLow)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	customers, err := s.ListCustomers(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, customers, 1)

	audit, err := s.ListAudit(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, audit)
	assert.Equal(t, models.AuditCreateCustomer, audit[len(audit)-1].Action)
}

func TestSanctions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.UpsertSanction(ctx, testSanction(models.SourceOFAC, "SDN-1", "Mohamed Ali Hassan", models.RiskHigh))
	require.NoError(t, err)
	_, err = s.UpsertSanction(ctx, testSanction(models.SourceUN, "UN-1", "Ali Mahmoud", models.RiskCritical))
	require.NoError(t, err)
	_, err = s.UpsertSanction(ctx, testSanction(models.SourceEU, "EU-1", "Omar Khalil", models.RiskMedium))
	require.NoError(t, err)

	t.Run("upsert updates existing row", func(t *testing.T) {
		updated := testSanction(models.SourceOFAC, "SDN-1", "Mohamed Ali Hassan", models.RiskCritical)
		updated.AliasEn = "Abu Ali"
		sameID, err := s.UpsertSanction(ctx, updated)
		require.NoError(t, err)
		assert.Equal(t, id, sameID)

		sn, err := s.GetSanction(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, sn)
		assert.Equal(t, models.RiskCritical, sn.RiskLevel)
		assert.Equal(t, "Abu Ali", sn.AliasEn)
	})

	t.Run("search orders by risk", func(t *testing.T) {
		results, err := s.SearchSanctions(ctx, "ali", 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Ali Mahmoud", results[0].FullNameEn)
		assert.Equal(t, "Mohamed Ali Hassan", results[1].FullNameEn)
	})

	t.Run("empty search", func(t *testing.T) {
		results, err := s.SearchSanctions(ctx, "  ", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("candidates skip inactive", func(t *testing.T) {
		inactive := testSanction(models.SourceUK, "UK-1", "Omar Farouk", models.RiskHigh)
		inactive.IsActive = false
		_, err := s.UpsertSanction(ctx, inactive)
		require.NoError(t, err)

		results, err := s.FindCandidates(ctx, []string{"omar", ""}, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "EU-1", results[0].ReferenceID)
	})

	t.Run("list by source", func(t *testing.T) {
		results, err := s.ListSanctions(ctx, models.SourceUN, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "UN-1", results[0].ReferenceID)

		all, err := s.ListSanctions(ctx, "", 10)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	count, err := s.CountSanctions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	missing, err := s.GetSanction(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindCandidates_FullNameBeforeTokenHits(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.UpsertSanction(ctx, testSanction(models.SourceOFAC, "OFAC-1", "Ahmed Ali Al-Masri", models.RiskHigh))
	require.NoError(t, err)
	// "ali" входит в "Khalid", поэтому все эти записи совпадают по части имени
	for i := 0; i < 60; i++ {
		name := fmt.Sprintf("Khalid Omar %03d", i)
		_, err := s.UpsertSanction(ctx, testSanction(models.SourceUN, fmt.Sprintf("UN-%03d", i), name, models.RiskCritical))
		require.NoError(t, err)
	}

	results, err := s.FindCandidates(ctx, []string{"Ahmed Ali Al-Masri", "ahmed", "ali", "masri"}, 50)
	require.NoError(t, err)
	require.Len(t, results, 50)
	assert.Equal(t, "OFAC-1", results[0].ReferenceID)
	assert.Equal(t, models.RiskCritical, results[1].RiskLevel)
}

func testScreening(id, customerCode, result string, at time.Time) *models.Screening {
	return &models.Screening{
		ScreeningID:       id,
		CustomerCode:      customerCode,
		CustomerName:      "Ahmed Hassan Ali",
		ScreeningDate:     at,
		ScreeningType:     models.ScreeningTypeOnboarding,
		TotalMatches:      1,
		PartialMatches:    1,
		HighestMatchScore: 88.5,
		RiskScore:         65,
		RiskLevel:         models.RiskHigh,
		RiskFactors:       []string{"PEP status"},
		RiskDetails:       map[string]any{"pep": true},
		Result:            result,
		PerformedBy:       "officer",
		Matches: []models.SanctionMatch{
			{
				SanctionID:     1,
				SanctionName:   "Ahmed Hasan Aly",
				SanctionSource: models.SourceOFAC,
				MatchType:      models.MatchPartial,
				MatchScore:     88.5,
				NameMatchScore: 88.5,
				DOBMatch:       true,
				MatchedFields:  []string{"name", "date_of_birth"},
				RiskLevel:      models.RiskHigh,
			},
		},
	}
}

func TestScreenings(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.SaveScreening(ctx, testScreening("SCR1", "CUST001", models.ResultReviewRequired, now.Add(-time.Hour))))
	require.NoError(t, s.SaveScreening(ctx, testScreening("SCR2", "CUST002", models.ResultClear, now)))

	t.Run("get with matches", func(t *testing.T) {
		sc, err := s.GetScreening(ctx, "SCR1")
		require.NoError(t, err)
		require.NotNil(t, sc)
		assert.Equal(t, "CUST001", sc.CustomerCode)
		assert.Equal(t, []string{"PEP status"}, sc.RiskFactors)
		assert.Equal(t, true, sc.RiskDetails["pep"])
		require.Len(t, sc.Matches, 1)
		assert.True(t, sc.Matches[0].DOBMatch)
		assert.Equal(t, []string{"name", "date_of_birth"}, sc.Matches[0].MatchedFields)
		assert.Nil(t, sc.ReviewDate)
	})

	t.Run("list newest first", func(t *testing.T) {
		list, err := s.ListScreenings(ctx, models.ScreeningFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "SCR2", list[0].ScreeningID)
	})

	t.Run("list filtered", func(t *testing.T) {
		list, err := s.ListScreenings(ctx, models.ScreeningFilter{Result: models.ResultReviewRequired})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "SCR1", list[0].ScreeningID)

		list, err = s.ListScreenings(ctx, models.ScreeningFilter{CustomerCode: "CUST002"})
		require.NoError(t, err)
		require.Len(t, list, 1)

		list, err = s.ListScreenings(ctx, models.ScreeningFilter{Since: now.Add(-time.Minute)})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "SCR2", list[0].ScreeningID)
	})

	t.Run("review", func(t *testing.T) {
		review := &models.ReviewRequest{ReviewedBy: "compliance", Result: models.ResultClear, Notes: "false positive"}
		require.NoError(t, s.ReviewScreening(ctx, "SCR1", review, now))

		sc, err := s.GetScreening(ctx, "SCR1")
		require.NoError(t, err)
		assert.Equal(t, models.ResultClear, sc.Result)
		assert.Equal(t, "compliance", sc.ReviewedBy)
		require.NotNil(t, sc.ReviewDate)
		assert.True(t, sc.ReviewDate.Equal(now))

		err = s.ReviewScreening(ctx, "NOPE", review, now)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("statistics", func(t *testing.T) {
		_, err := s.SaveCustomer(ctx, testCustomer("CUST001", "123456"), "officer")
		require.NoError(t, err)
		_, err = s.UpsertSanction(ctx, testSanction(models.SourceOFAC, "SDN-1", "Someone", models.RiskHigh))
		require.NoError(t, err)

		stats, err := s.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalCustomers)
		assert.Equal(t, 1, stats.TotalSanctions)
		assert.Equal(t, 2, stats.TotalScreenings)
		assert.Equal(t, 2, stats.RecentScreenings)
		assert.Equal(t, 1, stats.SanctionsBySource[models.SourceOFAC])
		assert.Equal(t, 2, stats.ScreeningResults[models.ResultClear])
		assert.Equal(t, 1, stats.RiskDistribution["LOW"])
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, s.ClearScreenings(ctx))
		list, err := s.ListScreenings(ctx, models.ScreeningFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)

		audit, err := s.ListAudit(ctx, 1)
		require.NoError(t, err)
		require.Len(t, audit, 1)
		assert.Equal(t, models.AuditClear, audit[0].Action)
	})
}

func TestScreenings_CustomerSnapshot(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	withSnapshot := testScreening("SCR1", "CUST001", models.ResultRejected, now)
	withSnapshot.Customer = testCustomer("CUST001", "29001011234567")
	require.NoError(t, s.SaveScreening(ctx, withSnapshot))
	require.NoError(t, s.SaveScreening(ctx, testScreening("SCR2", "CUST002", models.ResultClear, now)))

	sc, err := s.GetScreening(ctx, "SCR1")
	require.NoError(t, err)
	require.NotNil(t, sc.Customer)
	assert.Equal(t, "29001011234567", sc.Customer.IDNumber)
	assert.Equal(t, "1980-05-12", sc.Customer.DateOfBirth)

	// Клиент с отказом не попадает в таблицу customers, снимок остается единственным источником
	customer, err := s.GetCustomer(ctx, "CUST001")
	require.NoError(t, err)
	assert.Nil(t, customer)

	sc, err = s.GetScreening(ctx, "SCR2")
	require.NoError(t, err)
	assert.Nil(t, sc.Customer)
}

func TestInitSchema_AddsSnapshotColumn(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.DB.Exec(`ALTER TABLE screening_results DROP COLUMN customer_snapshot`)
	require.NoError(t, err)
	require.NoError(t, s.initSchema())
	require.NoError(t, s.initSchema())

	sc := testScreening("SCR1", "CUST001", models.ResultRejected, time.Now().UTC())
	sc.Customer = testCustomer("CUST001", "29001011234567")
	require.NoError(t, s.SaveScreening(ctx, sc))
}

func TestSaveScreening_ConstraintError(t *testing.T) {
	s := newTestStorage(t)

	sc := testScreening("SCR1", "CUST001", models.ResultClear, time.Now().UTC())
	sc.ScreeningType = "QUARTERLY"
	err := s.SaveScreening(context.Background(), sc)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "failed to save screening"))
}

func TestRetryOperation(t *testing.T) {
	ctx := context.Background()

	t.Run("non-retryable error returns immediately", func(t *testing.T) {
		attempts := 0
		err := retryOperation(ctx, func() error {
			attempts++
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after limit", func(t *testing.T) {
		attempts := 0
		err := retryOperation(ctx, func() error {
			attempts++
			return &lockedError{}
		})
		assert.Error(t, err)
		assert.Equal(t, writeRetries, attempts)
	})
}

type lockedError struct{}

func (e *lockedError) Error() string { return "database is locked (5) (SQLITE_BUSY)" }
