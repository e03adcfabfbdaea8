package cache_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/infrastructure/cache"
	"github.com/jhoicas/Inventario-epi/pkg/config"
)

func TestReportKey_EstableYPorEmpresa(t *testing.T) {
	f := dto.ReportFilter{CompanyID: "emp-1", StartDate: "2024-01-01", EndDate: "2024-01-31", Termo: " Luva ", TopN: 10}
	g := f
	g.Termo = "luva"

	assert.Equal(t, cache.ReportKey(f), cache.ReportKey(g), "el término no distingue mayúsculas")
	assert.True(t, strings.HasPrefix(cache.ReportKey(f), "analytics:report:emp-1:"))

	g.LimitA = 70
	assert.NotEqual(t, cache.ReportKey(f), cache.ReportKey(g))

	g = f
	g.CompanyID = "emp-2"
	assert.NotEqual(t, cache.ReportKey(f), cache.ReportKey(g))
}

func TestNewReportCache_SinRedisUsaNoop(t *testing.T) {
	c, err := cache.NewReportCache(context.Background(), config.CacheConfig{})
	require.NoError(t, err)
	assert.IsType(t, cache.NoopReportCache{}, c)

	ctx := context.Background()
	f := dto.ReportFilter{CompanyID: "emp-1"}
	require.NoError(t, c.Set(ctx, f, &dto.AnalyticsReportDTO{ReportID: "x"}))

	got, found, err := c.Get(ctx, f)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateCompany(ctx, "emp-1"))
}
