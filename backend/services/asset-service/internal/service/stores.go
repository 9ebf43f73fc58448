package service

import (
	"context"
	"time"

	"gridvolt/backend/services/asset-service/internal/connector"
	"gridvolt/backend/services/asset-service/internal/models"
)

// AssetStore is the persistence gateway for assets.
type AssetStore interface {
	GetAsset(ctx context.Context, tenantID, id string) (*models.Asset, error)
	InsertAsset(ctx context.Context, asset *models.Asset) error
	UpdateAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, tenantID, id string) (bool, error)
	GetAssets(ctx context.Context, tenantID string, filters models.AssetFilters, paging models.Paging) ([]models.Asset, int64, error)
	GetAssetsInError(ctx context.Context, tenantID string, filters models.AssetInErrorFilters, paging models.Paging) ([]models.AssetInError, int64, error)
}

// ConsumptionStore holds historical consumption samples.
type ConsumptionStore interface {
	GetAssetConsumptions(ctx context.Context, tenantID, assetID string, start, end time.Time) ([]models.ConsumptionSample, error)
	InsertConsumptions(ctx context.Context, tenantID, assetID string, samples []models.ConsumptionSample) error
}

// ConnectorResolver looks up a connector handle for a tenant's connection
// reference; the boolean reports whether one is configured.
type ConnectorResolver interface {
	Resolve(tenantID, connectionID string) (connector.Connector, bool)
}

// RetrievalLocker serializes concurrent retrievals per asset.
type RetrievalLocker interface {
	Acquire(ctx context.Context, tenantID, assetID string) (bool, error)
	Release(ctx context.Context, tenantID, assetID string) error
}
