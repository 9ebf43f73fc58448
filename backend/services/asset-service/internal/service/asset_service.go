package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
	"gridvolt/backend/services/asset-service/internal/repository"
)

// AssetService covers asset CRUD. Authorization happens upstream; this layer
// only enforces structural validity.
type AssetService struct {
	assets AssetStore
	logger *zap.Logger
}

// NewAssetService builds service.
func NewAssetService(assets AssetStore, logger *zap.Logger) *AssetService {
	return &AssetService{assets: assets, logger: logger}
}

// CreateAsset validates and stores a new asset.
func (s *AssetService) CreateAsset(ctx context.Context, tenantID string, asset *models.Asset, userID string) (*models.Asset, error) {
	if err := validateAsset(asset); err != nil {
		return nil, err
	}
	asset.ID = uuid.NewString()
	asset.TenantID = tenantID
	asset.CreatedBy = userID
	if err := s.assets.InsertAsset(ctx, asset); err != nil {
		return nil, err
	}
	s.logger.Info("created asset",
		zap.String("tenant_id", tenantID),
		zap.String("asset_id", asset.ID),
		zap.String("name", asset.Name),
	)
	return asset, nil
}

// GetAsset returns one asset.
func (s *AssetService) GetAsset(ctx context.Context, tenantID, id string) (*models.Asset, error) {
	if id == "" {
		return nil, models.NewValidationError("asset id is required")
	}
	asset, err := s.assets.GetAsset(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, models.NewNotFoundError("asset %s does not exist", id)
	}
	return asset, nil
}

// UpdateAsset rewrites an asset's editable fields, keeping its live state.
// The caller's version must match the stored one.
func (s *AssetService) UpdateAsset(ctx context.Context, tenantID string, update *models.Asset, userID string) (*models.Asset, error) {
	if update.ID == "" {
		return nil, models.NewValidationError("asset id is required")
	}
	if err := validateAsset(update); err != nil {
		return nil, err
	}
	existing, err := s.assets.GetAsset(ctx, tenantID, update.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, models.NewNotFoundError("asset %s does not exist", update.ID)
	}

	existing.Name = update.Name
	existing.SiteID = update.SiteID
	existing.SiteAreaID = update.SiteAreaID
	existing.AssetType = update.AssetType
	existing.DynamicAsset = update.DynamicAsset
	existing.ConnectionID = update.ConnectionID
	existing.MeterID = update.MeterID
	existing.CoordinatesLon = update.CoordinatesLon
	existing.CoordinatesLat = update.CoordinatesLat
	existing.StaticValueWatt = update.StaticValueWatt
	existing.FluctuationPercent = update.FluctuationPercent
	existing.ExcludeFromSmartCharging = update.ExcludeFromSmartCharging
	existing.LastChangedBy = userID
	if update.Version > 0 {
		existing.Version = update.Version
	}

	if err := s.assets.UpdateAsset(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, models.NewConflictError("asset %s was modified concurrently", update.ID)
		}
		return nil, err
	}
	return existing, nil
}

// DeleteAsset removes an asset.
func (s *AssetService) DeleteAsset(ctx context.Context, tenantID, id string) error {
	if id == "" {
		return models.NewValidationError("asset id is required")
	}
	deleted, err := s.assets.DeleteAsset(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("asset %s does not exist", id)
	}
	s.logger.Info("deleted asset", zap.String("tenant_id", tenantID), zap.String("asset_id", id))
	return nil
}

// ListAssets returns a tenant's assets.
func (s *AssetService) ListAssets(ctx context.Context, tenantID string, filters models.AssetFilters, paging models.Paging) ([]models.Asset, int64, error) {
	return s.assets.GetAssets(ctx, tenantID, filters, paging)
}

func validateAsset(asset *models.Asset) error {
	if asset.Name == "" {
		return models.NewValidationError("asset name is required")
	}
	switch asset.AssetType {
	case models.AssetTypeConsumption, models.AssetTypeProduction, models.AssetTypeConsumptionProduction:
	default:
		return models.NewValidationError("unknown asset type %q", asset.AssetType)
	}
	if asset.DynamicAsset && asset.ConnectionID == "" {
		return models.NewValidationError("dynamic asset requires a connection id")
	}
	return nil
}
