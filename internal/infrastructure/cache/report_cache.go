package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/application/ports"
	"github.com/jhoicas/Inventario-epi/pkg/config"
)

const (
	reportKeyPrefix = "analytics:report"
	scanBatchSize   = 100
	defaultTTL      = 5 * time.Minute
)

var (
	_ ports.ReportCache = (*RedisReportCache)(nil)
	_ ports.ReportCache = NoopReportCache{}
)

// RedisReportCache caché de reportes en Redis, serializados como JSON.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache devuelve la caché en Redis si hay dirección configurada; si no, la no-op.
func NewReportCache(ctx context.Context, cfg config.CacheConfig) (ports.ReportCache, error) {
	if !cfg.Enabled() {
		return NoopReportCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisReportCache(client, cfg.TTL), nil
}

// NewRedisReportCache envuelve un cliente ya creado. ttl <= 0 usa 5 minutos.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisReportCache{client: client, ttl: ttl}
}

// Get lee el reporte del filtro; un miss devuelve (nil, false, nil).
func (c *RedisReportCache) Get(ctx context.Context, filter dto.ReportFilter) (*dto.AnalyticsReportDTO, bool, error) {
	payload, err := c.client.Get(ctx, ReportKey(filter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report dto.AnalyticsReportDTO
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}
	return &report, true, nil
}

// Set guarda el reporte con el TTL de la caché.
func (c *RedisReportCache) Set(ctx context.Context, filter dto.ReportFilter, report *dto.AnalyticsReportDTO) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}
	if err := c.client.Set(ctx, ReportKey(filter), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateCompany borra todas las claves de la empresa con SCAN + DEL por lotes.
func (c *RedisReportCache) InvalidateCompany(ctx context.Context, companyID string) error {
	pattern := companyPrefix(companyID) + "*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close libera el cliente.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// NoopReportCache caché deshabilitada: nunca encuentra nada.
type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context, dto.ReportFilter) (*dto.AnalyticsReportDTO, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(context.Context, dto.ReportFilter, *dto.AnalyticsReportDTO) error {
	return nil
}

func (NoopReportCache) InvalidateCompany(context.Context, string) error {
	return nil
}

func companyPrefix(companyID string) string {
	if companyID == "" {
		companyID = "_"
	}
	return fmt.Sprintf("%s:%s:", reportKeyPrefix, companyID)
}

// ReportKey arma la clave "analytics:report:<empresa>:<sha1 del filtro>".
// El término se compara sin mayúsculas ni espacios extremos.
func ReportKey(filter dto.ReportFilter) string {
	parts := []string{
		"start=" + filter.StartDate,
		"end=" + filter.EndDate,
		"termo=" + strings.ToLower(strings.TrimSpace(filter.Termo)),
		"top=" + strconv.Itoa(filter.TopN),
		"a=" + strconv.FormatFloat(filter.LimitA, 'f', -1, 64),
		"b=" + strconv.FormatFloat(filter.LimitB, 'f', -1, 64),
	}
	hash := sha1.Sum([]byte(strings.Join(parts, "|")))
	return companyPrefix(filter.CompanyID) + hex.EncodeToString(hash[:])
}
