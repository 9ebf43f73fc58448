package service

import "gridvolt/backend/services/asset-service/internal/models"

// MergeConsumption overlays one retrieved sample onto the asset's live state.
// The whole live-state group is replaced from the sample so readings from
// different samples can never mix; every other asset field is untouched.
func MergeConsumption(asset *models.Asset, sample models.ConsumptionSample) {
	asset.AssetLiveState = models.AssetLiveState{
		LastConsumption: &models.TimestampedValue{
			Value:     sample.ConsumptionWh,
			Timestamp: sample.EndedAt,
		},
		CurrentConsumptionWh:  sample.ConsumptionWh,
		CurrentInstantWatts:   sample.InstantWatts,
		CurrentInstantWattsL1: sample.InstantWattsL1,
		CurrentInstantWattsL2: sample.InstantWattsL2,
		CurrentInstantWattsL3: sample.InstantWattsL3,
		CurrentInstantAmps:    sample.InstantAmps,
		CurrentInstantAmpsL1:  sample.InstantAmpsL1,
		CurrentInstantAmpsL2:  sample.InstantAmpsL2,
		CurrentInstantAmpsL3:  sample.InstantAmpsL3,
		CurrentInstantVolts:   sample.InstantVolts,
		CurrentInstantVoltsL1: sample.InstantVoltsL1,
		CurrentInstantVoltsL2: sample.InstantVoltsL2,
		CurrentInstantVoltsL3: sample.InstantVoltsL3,
		CurrentStateOfCharge:  sample.StateOfCharge,
	}
}
