package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/usecases/optimizing/mocks"
	"go.uber.org/mock/gomock"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return mr, client
}

func snapshotRecords() []domain.RawAdSetMetrics {
	return []domain.RawAdSetMetrics{
		{
			AdSetID:     "as_1",
			AdSetName:   "Prospecting",
			Spend:       decimal.RequireFromString("120.50"),
			Impressions: 10000,
			Clicks:      150,
			Actions:     []domain.Action{{ActionType: domain.ActionTypePurchase, Value: 3}},
			PreviousPeriod: &domain.PeriodMetrics{
				Impressions: 9000,
				Clicks:      270,
			},
		},
	}
}

func TestAdSetSnapshotCache_GetAdSetMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Segunda consulta é servida pelo cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mr, client := setupTestRedis(t)
		source := mocks.NewMockAdSetSource(ctrl)
		cache := NewAdSetSnapshotCache(source, client, time.Minute)

		source.EXPECT().
			GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).
			Return(snapshotRecords(), nil).
			Times(1)

		first, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)
		require.Len(t, first, 1)

		assert.True(t, mr.Exists("optimizer:adsets:cmp_1:default"))
		assert.Equal(t, time.Minute, mr.TTL("optimizer:adsets:cmp_1:default"))

		second, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, "as_1", second[0].AdSetID)
		assert.True(t, decimal.RequireFromString("120.5").Equal(second[0].Spend))
		assert.Equal(t, int64(3), domain.CountConversions(second[0].Actions))
		require.NotNil(t, second[0].PreviousPeriod)
		assert.Equal(t, int64(270), second[0].PreviousPeriod.Clicks)
	})

	t.Run("Snapshot expirado volta a consultar a fonte", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mr, client := setupTestRedis(t)
		source := mocks.NewMockAdSetSource(ctrl)
		cache := NewAdSetSnapshotCache(source, client, time.Minute)

		source.EXPECT().
			GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).
			Return(snapshotRecords(), nil).
			Times(2)

		_, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		_, err = cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)
	})

	t.Run("Períodos diferentes usam chaves diferentes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mr, client := setupTestRedis(t)
		source := mocks.NewMockAdSetSource(ctrl)
		cache := NewAdSetSnapshotCache(source, client, 0)

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
		filters := &domain.InsigthFilters{StartDate: &start, EndDate: &end}

		source.EXPECT().
			GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Any()).
			Return(snapshotRecords(), nil).
			Times(2)

		_, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)
		_, err = cache.GetAdSetMetrics(ctx, "cmp_1", filters)
		require.NoError(t, err)

		assert.True(t, mr.Exists("optimizer:adsets:cmp_1:default"))
		assert.True(t, mr.Exists("optimizer:adsets:cmp_1:2024-01-01_2024-01-07"))
		assert.Equal(t, defaultTTL, mr.TTL("optimizer:adsets:cmp_1:2024-01-01_2024-01-07"))
	})

	t.Run("Erro da fonte não é guardado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mr, client := setupTestRedis(t)
		source := mocks.NewMockAdSetSource(ctrl)
		cache := NewAdSetSnapshotCache(source, client, time.Minute)

		cause := errors.New("meta unavailable")
		source.EXPECT().
			GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).
			Return(nil, cause)

		records, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, records)
		assert.False(t, mr.Exists("optimizer:adsets:cmp_1:default"))
	})

	t.Run("Snapshot corrompido é descartado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mr, client := setupTestRedis(t)
		source := mocks.NewMockAdSetSource(ctrl)
		cache := NewAdSetSnapshotCache(source, client, time.Minute)

		require.NoError(t, mr.Set("optimizer:adsets:cmp_1:default", "{not json"))

		source.EXPECT().
			GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).
			Return(snapshotRecords(), nil)

		records, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("Redis fora do ar não impede a consulta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mr, client := setupTestRedis(t)
		source := mocks.NewMockAdSetSource(ctrl)
		cache := NewAdSetSnapshotCache(source, client, time.Minute)

		mr.Close()

		source.EXPECT().
			GetAdSetMetrics(gomock.Any(), "cmp_1", gomock.Nil()).
			Return(snapshotRecords(), nil)

		records, err := cache.GetAdSetMetrics(ctx, "cmp_1", nil)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}

func TestAdSetSnapshotCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	cache := NewAdSetSnapshotCache(nil, client, time.Minute)

	require.NoError(t, mr.Set("optimizer:adsets:cmp_1:default", "[]"))
	require.NoError(t, mr.Set("optimizer:adsets:cmp_1:2024-01-01_2024-01-07", "[]"))
	require.NoError(t, mr.Set("optimizer:adsets:cmp_2:default", "[]"))

	require.NoError(t, cache.Invalidate(ctx, "cmp_1"))

	assert.False(t, mr.Exists("optimizer:adsets:cmp_1:default"))
	assert.False(t, mr.Exists("optimizer:adsets:cmp_1:2024-01-01_2024-01-07"))
	assert.True(t, mr.Exists("optimizer:adsets:cmp_2:default"))

	require.NoError(t, cache.Invalidate(ctx, "cmp_unknown"))
}
