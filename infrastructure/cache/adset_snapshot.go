package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/traffic-optimizer-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyPrefix  = "optimizer:adsets"
	defaultTTL = 15 * time.Minute
)

// AdSetSnapshotCache guarda no Redis as métricas buscadas na fonte para que
// análises repetidas da mesma campanha e período não consultem o Meta de novo.
type AdSetSnapshotCache struct {
	source optimizing.AdSetSource
	client redis.UniversalClient
	ttl    time.Duration
}

func NewAdSetSnapshotCache(source optimizing.AdSetSource, client redis.UniversalClient, ttl time.Duration) *AdSetSnapshotCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &AdSetSnapshotCache{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient abre a conexão e confirma com PING
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

func SnapshotKey(campaignID string, filters *domain.InsigthFilters) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, campaignID, filters.Key())
}

// GetAdSetMetrics tenta o cache antes da fonte. Falhas do Redis só geram log:
// a análise segue com a fonte original.
func (c *AdSetSnapshotCache) GetAdSetMetrics(ctx context.Context, campaignID string, filters *domain.InsigthFilters) ([]domain.RawAdSetMetrics, error) {
	logger := log.ForContext(ctx)
	key := SnapshotKey(campaignID, filters)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var records []domain.RawAdSetMetrics
		decodeErr := json.Unmarshal(payload, &records)
		if decodeErr == nil {
			logger.WithFields(log.Fields{
				"campaign_id": campaignID,
				"key":         key,
			}).Debug("cache: ad set snapshot hit")
			return records, nil
		}

		logger.WithFields(log.Fields{
			"key":   key,
			"error": decodeErr.Error(),
		}).Warn("cache: discarding unreadable snapshot")
	case errors.Is(err, redis.Nil):
	default:
		logger.WithFields(log.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("cache: redis read failed")
	}

	records, err := c.source.GetAdSetMetrics(ctx, campaignID, filters)
	if err != nil {
		return nil, err
	}

	// lista vazia não é guardada para não esconder ad sets recém criados
	if len(records) == 0 {
		return records, nil
	}

	payload, err = json.Marshal(records)
	if err != nil {
		logger.WithFields(log.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("cache: error encoding snapshot")
		return records, nil
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.WithFields(log.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("cache: redis write failed")
	}

	return records, nil
}

// Invalidate remove os snapshots de uma campanha, em todos os períodos
func (c *AdSetSnapshotCache) Invalidate(ctx context.Context, campaignID string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, campaignID)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis: scanning %s: %w", pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis: deleting snapshots of campaign %s: %w", campaignID, err)
	}

	return nil
}
