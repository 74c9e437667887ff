package sanctions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/metrics"
	"kyc-screening/internal/models"
	"kyc-screening/internal/storage/sqlite"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `list_source,list_type,reference_id,full_name_en,alias_en,nationality_code,date_of_birth,risk_level,is_active,unknown_column
ofac,individual,SDN900,Karim Nasser,Abu Karim,lb,1972-03-04,critical,true,x
UN,ENTITY,UN900,Blue Shipping Co,,PA,,MEDIUM,false,y
`

func newLoader(t *testing.T) (*Loader, *sqlite.SQLiteStorage) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "sanctions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewLoader(store, config.DefaultRules(), metrics.New(prometheus.NewRegistry())), store
}

func TestSeedSource(t *testing.T) {
	sanctions, err := SeedSource().Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, sanctions, 5)

	names := make([]string, 0, len(sanctions))
	for _, s := range sanctions {
		names = append(names, s.FullNameEn)
		assert.True(t, s.IsActive)
	}
	assert.Contains(t, names, "Ahmed Ali Al-Masri")
	assert.Contains(t, names, "Terror Group A")
}

func TestDecodeCSV(t *testing.T) {
	sanctions, err := DecodeCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, sanctions, 2)

	assert.Equal(t, "OFAC", sanctions[0].ListSource)
	assert.Equal(t, "INDIVIDUAL", sanctions[0].ListType)
	assert.Equal(t, "LB", sanctions[0].NationalityCode)
	assert.Equal(t, "CRITICAL", sanctions[0].RiskLevel)
	assert.True(t, sanctions[0].IsActive)
	assert.False(t, sanctions[1].IsActive)
}

func TestDecodeCSV_InvalidBool(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("list_source,is_active\nOFAC,maybe\n"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("list.CSV", nil))
	assert.Equal(t, FormatJSON, DetectFormat("list.json", nil))
	assert.Equal(t, FormatJSON, DetectFormat("https://example.com/list", []byte("  [{}]")))
	assert.Equal(t, FormatCSV, DetectFormat("https://example.com/list", []byte("list_source,reference_id")))
}

func TestLoader_SeedOnce(t *testing.T) {
	loader, store := newLoader(t)
	ctx := context.Background()

	result, err := loader.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Imported)

	result, err = loader.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)

	count, err := store.CountSanctions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	audit, err := store.ListAudit(ctx, 10)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, models.AuditImportSanctions, audit[0].Action)
}

func TestLoader_ImportFileSkipsInvalid(t *testing.T) {
	loader, store := newLoader(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "list.csv")
	content := sampleCSV + "XX,INDIVIDUAL,BAD1,Unknown Source,,,,,true,\nEU,INDIVIDUAL,,No Reference,,,,,true,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := loader.Import(ctx, NewSourceFromLocation(path))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Fetched)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	// повторный импорт обновляет, а не дублирует
	_, err = loader.Import(ctx, NewFileSource(path))
	require.NoError(t, err)
	all, err := store.ListSanctions(ctx, "", 100)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoader_ImportMissingFile(t *testing.T) {
	loader, _ := newLoader(t)
	_, err := loader.Import(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, err)
}

func TestWebSource(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// первая попытка падает, вторая отдает CSV
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	src := NewSourceFromLocation(server.URL, WithRetry(10*time.Millisecond, 3))
	assert.True(t, strings.HasPrefix(src.Name(), "web:"))

	sanctions, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, sanctions, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoader_RunAndStop(t *testing.T) {
	loader, store := newLoader(t)

	done := make(chan error, 1)
	go func() {
		done <- loader.Run(context.Background(), SeedSource(), 10*time.Millisecond)
	}()

	require.Eventually(t, loader.IsRunning, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		count, err := store.CountSanctions(context.Background())
		return err == nil && count == 5
	}, time.Second, 5*time.Millisecond)

	assert.Error(t, loader.Run(context.Background(), SeedSource(), time.Second))

	require.Eventually(t, func() bool { return loader.Stop() == nil }, time.Second, 5*time.Millisecond)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loader did not stop")
	}
	assert.False(t, loader.IsRunning())
	assert.Error(t, loader.Stop())
}
