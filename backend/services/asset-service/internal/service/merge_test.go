package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridvolt/backend/services/asset-service/internal/models"
)

func TestMergeConsumptionReplacesWholeLiveStateGroup(t *testing.T) {
	previousSOC := 12.0
	asset := testAsset(true)
	// Pre-existing live state from an earlier sample.
	asset.AssetLiveState = models.AssetLiveState{
		CurrentConsumptionWh: 500,
		CurrentInstantWatts:  9000,
		CurrentInstantAmps:   39,
		CurrentStateOfCharge: &previousSOC,
		LastConsumption:      &models.TimestampedValue{Value: 500, Timestamp: time.Now()},
	}
	before := *asset

	endedAt := time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC)
	sample := models.ConsumptionSample{
		StartedAt:     endedAt.Add(-time.Minute),
		EndedAt:       endedAt,
		ConsumptionWh: 70,
		InstantWatts:  4200,
		InstantAmps:   18.2,
		InstantVolts:  230.1,
	}

	MergeConsumption(asset, sample)

	// Every live-state field comes from the new sample; fields the sample
	// does not carry are cleared, not left over from the previous snapshot.
	assert.Equal(t, 70.0, asset.CurrentConsumptionWh)
	assert.Equal(t, 4200.0, asset.CurrentInstantWatts)
	assert.Equal(t, 18.2, asset.CurrentInstantAmps)
	assert.Equal(t, 230.1, asset.CurrentInstantVolts)
	assert.Nil(t, asset.CurrentStateOfCharge, "stale state of charge must not linger")
	require.NotNil(t, asset.LastConsumption)
	assert.Equal(t, endedAt, asset.LastConsumption.Timestamp)
	assert.Equal(t, 70.0, asset.LastConsumption.Value)

	// Everything outside the live-state group is bit-identical.
	merged := *asset
	merged.AssetLiveState = before.AssetLiveState
	assert.Equal(t, before, merged)
}
