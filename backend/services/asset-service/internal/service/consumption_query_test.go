package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

func TestGetAssetConsumptionsMissingDates(t *testing.T) {
	store := newFakeAssetStore(testAsset(true))
	consumptions := &fakeConsumptionStore{}
	svc := NewConsumptionQueryService(store, consumptions, zap.NewNop())

	_, err := svc.GetAssetConsumptions(context.Background(), "t1", "A1", time.Time{}, time.Time{})

	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrValidation))
	assert.Contains(t, err.Error(), "start date and end date are required")
	assert.Zero(t, consumptions.queryCalls)
}

func TestGetAssetConsumptionsStartAfterEnd(t *testing.T) {
	asset := testAsset(true)
	asset.ID = "A2"
	store := newFakeAssetStore(asset)
	consumptions := &fakeConsumptionStore{}
	svc := NewConsumptionQueryService(store, consumptions, zap.NewNop())

	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetAssetConsumptions(context.Background(), "t1", "A2", start, end)

	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrValidation))
	assert.Contains(t, err.Error(), "2023-05-01T00:00:00Z")
	assert.Contains(t, err.Error(), "2023-04-01T00:00:00Z")
	assert.Contains(t, err.Error(), "is after")
	assert.Zero(t, consumptions.queryCalls, "the store must not be queried on invalid ranges")
}

func TestGetAssetConsumptionsAssetNotFound(t *testing.T) {
	consumptions := &fakeConsumptionStore{}
	svc := NewConsumptionQueryService(newFakeAssetStore(), consumptions, zap.NewNop())

	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetAssetConsumptions(context.Background(), "t1", "nope", start, start.Add(time.Hour))

	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrNotFound))
	assert.Zero(t, consumptions.queryCalls)
}

func TestGetAssetConsumptionsAttachesValues(t *testing.T) {
	store := newFakeAssetStore(testAsset(true))
	samples := []models.ConsumptionSample{
		{StartedAt: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), InstantWatts: 900},
		{StartedAt: time.Date(2023, 4, 1, 1, 0, 0, 0, time.UTC), InstantWatts: 1100},
	}
	consumptions := &fakeConsumptionStore{samples: samples}
	svc := NewConsumptionQueryService(store, consumptions, zap.NewNop())

	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC)
	asset, err := svc.GetAssetConsumptions(context.Background(), "t1", "A1", start, end)

	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, samples, asset.Values, "samples are attached as the store returned them")
	assert.Equal(t, start, consumptions.queryStart)
	assert.Equal(t, end, consumptions.queryEnd)
}
