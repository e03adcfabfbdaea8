package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
	"github.com/jhoicas/Inventario-epi/pkg/config"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 80.0, cfg.Analytics.LimitA)
	assert.Equal(t, 95.0, cfg.Analytics.LimitB)
	assert.Equal(t, []string{"epi", "epc"}, cfg.Analytics.CriticalMarkers)
	assert.Equal(t, 2, cfg.Analytics.Weights.RupturaPressao)
}

func TestLoad_DefaultsCoincidenConElMotor(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	a := cfg.Analytics
	assert.Equal(t, analytics.DefaultParetoLimits(), analytics.ParetoLimits{A: a.LimitA, B: a.LimitB})
	assert.Equal(t, analytics.DefaultPercentilAlta, a.PercentilAlta)
	assert.Equal(t, analytics.DefaultPercentilExtrema, a.PercentilExtrema)
	assert.Equal(t, analytics.DefaultCriticalMarkers(), a.CriticalMarkers)
	assert.Equal(t, analytics.DefaultRiskWeights(), analytics.RiskWeights{
		EstoqueBaixo:   a.Weights.EstoqueBaixo,
		SaidaAlta:      a.Weights.SaidaAlta,
		SaidaExtrema:   a.Weights.SaidaExtrema,
		GiroAlto:       a.Weights.GiroAlto,
		TipoCritico:    a.Weights.TipoCritico,
		RupturaPressao: a.Weights.RupturaPressao,
	})
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("ANALYTICS_LIMIT_A", "70.5")
	t.Setenv("ANALYTICS_CRITICAL_MARKERS", " epi , epc, quimico ,")
	t.Setenv("ANALYTICS_PESO_TIPO_CRITICO", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 70.5, cfg.Analytics.LimitA)
	assert.Equal(t, []string{"epi", "epc", "quimico"}, cfg.Analytics.CriticalMarkers)
	assert.Equal(t, 3, cfg.Analytics.Weights.TipoCritico)
}

func TestLoad_LimitesInvertidos(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ANALYTICS_LIMIT_A", "96")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "epi", Password: "p@ss:word", DBName: "estoque", SSLMode: "disable"}
	assert.Equal(t, "postgres://epi:p%40ss%3Aword@db:5432/estoque?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
