package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

// ConsumptionQueryService answers bounded historical-consumption queries.
type ConsumptionQueryService struct {
	assets       AssetStore
	consumptions ConsumptionStore
	logger       *zap.Logger
}

// NewConsumptionQueryService builds service.
func NewConsumptionQueryService(assets AssetStore, consumptions ConsumptionStore, logger *zap.Logger) *ConsumptionQueryService {
	return &ConsumptionQueryService{
		assets:       assets,
		consumptions: consumptions,
		logger:       logger,
	}
}

// GetAssetConsumptions validates the range and returns the asset with its
// samples attached. Validation order: asset existence, dates present, dates
// ordered. The store is only queried once everything passes.
func (s *ConsumptionQueryService) GetAssetConsumptions(ctx context.Context, tenantID, assetID string, start, end time.Time) (*models.Asset, error) {
	if assetID == "" {
		return nil, models.NewValidationError("asset id is required")
	}
	asset, err := s.assets.GetAsset(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, models.NewNotFoundError("asset %s does not exist", assetID)
	}
	if start.IsZero() || end.IsZero() {
		return nil, models.NewValidationError("start date and end date are required")
	}
	if start.After(end) {
		return nil, models.NewValidationError("start date %s is after end date %s",
			start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	}

	samples, err := s.consumptions.GetAssetConsumptions(ctx, tenantID, assetID, start, end)
	if err != nil {
		return nil, err
	}
	// Attached as returned: the store already orders by started_at.
	asset.Values = samples
	return asset, nil
}
