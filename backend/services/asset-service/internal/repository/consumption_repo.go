package repository

import (
	"context"
	"database/sql"
	"time"

	"gridvolt/backend/services/asset-service/internal/models"
)

// ConsumptionRepository persists historical consumption samples.
type ConsumptionRepository struct {
	db *sql.DB
}

// NewConsumptionRepository returns repository.
func NewConsumptionRepository(db *sql.DB) *ConsumptionRepository {
	return &ConsumptionRepository{db: db}
}

// GetAssetConsumptions returns samples within [start, end], ascending by
// started_at.
func (r *ConsumptionRepository) GetAssetConsumptions(ctx context.Context, tenantID, assetID string, start, end time.Time) ([]models.ConsumptionSample, error) {
	const query = `
		SELECT started_at, ended_at, consumption_wh,
			instant_watts, instant_watts_l1, instant_watts_l2, instant_watts_l3,
			instant_amps, instant_amps_l1, instant_amps_l2, instant_amps_l3,
			instant_volts, instant_volts_l1, instant_volts_l2, instant_volts_l3,
			limit_watts, limit_amps, state_of_charge
		FROM asset_consumptions
		WHERE tenant_id = $1 AND asset_id = $2 AND started_at >= $3 AND ended_at <= $4
		ORDER BY started_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, tenantID, assetID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.ConsumptionSample
	for rows.Next() {
		var s models.ConsumptionSample
		if err := rows.Scan(
			&s.StartedAt, &s.EndedAt, &s.ConsumptionWh,
			&s.InstantWatts, &s.InstantWattsL1, &s.InstantWattsL2, &s.InstantWattsL3,
			&s.InstantAmps, &s.InstantAmpsL1, &s.InstantAmpsL2, &s.InstantAmpsL3,
			&s.InstantVolts, &s.InstantVoltsL1, &s.InstantVoltsL2, &s.InstantVoltsL3,
			&s.LimitWatts, &s.LimitAmps, &s.StateOfCharge,
		); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// InsertConsumptions appends samples retrieved from a connector.
func (r *ConsumptionRepository) InsertConsumptions(ctx context.Context, tenantID, assetID string, samples []models.ConsumptionSample) error {
	const query = `
		INSERT INTO asset_consumptions (
			tenant_id, asset_id, started_at, ended_at, consumption_wh,
			instant_watts, instant_watts_l1, instant_watts_l2, instant_watts_l3,
			instant_amps, instant_amps_l1, instant_amps_l2, instant_amps_l3,
			instant_volts, instant_volts_l1, instant_volts_l2, instant_volts_l3,
			limit_watts, limit_amps, state_of_charge, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
	`
	for _, s := range samples {
		if _, err := r.db.ExecContext(ctx, query,
			tenantID, assetID, s.StartedAt, s.EndedAt, s.ConsumptionWh,
			s.InstantWatts, s.InstantWattsL1, s.InstantWattsL2, s.InstantWattsL3,
			s.InstantAmps, s.InstantAmpsL1, s.InstantAmpsL2, s.InstantAmpsL3,
			s.InstantVolts, s.InstantVoltsL1, s.InstantVoltsL2, s.InstantVoltsL3,
			s.LimitWatts, s.LimitAmps, s.StateOfCharge,
		); err != nil {
			return err
		}
	}
	return nil
}
