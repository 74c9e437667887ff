package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("HTTP_PORT", "")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "./data/kyc_screening.db", cfg.DB.DBPath)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "kyc.screenings.completed", cfg.Kafka.ScreeningTopic)
	assert.Equal(t, "kyc.screenings.requested", cfg.Kafka.RequestTopic)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, "./reports", cfg.Output.ReportsDir)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SANCTIONS_REFRESH_MINUTES", "15")

	cfg := Load()

	assert.Equal(t, "/tmp/test.db", cfg.DB.DBPath)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Sanctions.RefreshMinutes)
}

func TestGetEnvAsInt_InvalidValue(t *testing.T) {
	t.Setenv("TEST_INT_VALUE", "not-a-number")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT_VALUE", 42))
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 85.0, rules.Screening.NameMatchThreshold)
	assert.Equal(t, 95.0, rules.Screening.ExactMatchThreshold)
	assert.Equal(t, 30, rules.RiskScoring.PEPPenalty)
	assert.Equal(t, 100, rules.RiskScoring.MaxRiskScore)
	assert.True(t, rules.IsHighRiskCountry("IR"))
	assert.False(t, rules.IsHighRiskCountry("EG"))
	assert.True(t, rules.IsMediumRiskCountry("NG"))
	assert.True(t, rules.IsKnownSource("OFAC"))
	assert.False(t, rules.IsKnownSource("XX"))
	assert.NoError(t, rules.Validate())
}

func TestLoadRules_EmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRules_OverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
screening:
  name_match_threshold: 80
risk_scoring:
  pep_penalty: 40
high_risk_countries: [IR, KP]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 80.0, rules.Screening.NameMatchThreshold)
	assert.Equal(t, 95.0, rules.Screening.ExactMatchThreshold)
	assert.Equal(t, 40, rules.RiskScoring.PEPPenalty)
	assert.Equal(t, 25, rules.RiskScoring.HighRiskCountryPenalty)
	assert.Equal(t, []string{"IR", "KP"}, rules.HighRiskCountries)
	assert.NotEmpty(t, rules.PEPIndicators)
}

func TestLoadRules_InvalidThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
screening:
  name_match_threshold: 90
  exact_match_threshold: 80
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exact_match_threshold")
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
