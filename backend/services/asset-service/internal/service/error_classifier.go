package service

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

// InErrorRequest carries the raw, bar-delimited filter strings from the
// transport layer.
type InErrorRequest struct {
	ErrorType  string
	Search     string
	SiteID     string
	SiteAreaID string
	Paging     models.Paging
}

// ErrorClassifierService normalizes error-listing filters and defers the
// structural detection to the asset store.
type ErrorClassifierService struct {
	assets AssetStore
	logger *zap.Logger
}

// NewErrorClassifierService builds service.
func NewErrorClassifierService(assets AssetStore, logger *zap.Logger) *ErrorClassifierService {
	return &ErrorClassifierService{assets: assets, logger: logger}
}

// ListInError returns the assets matching the requested error categories.
// An omitted ErrorType defaults to the missing-site-area category.
func (s *ErrorClassifierService) ListInError(ctx context.Context, tenantID string, req InErrorRequest) ([]models.AssetInError, int64, error) {
	categories := models.SplitBarList(req.ErrorType)
	if len(categories) == 0 {
		categories = []string{models.ErrorCategoryMissingSiteArea}
	}
	for _, category := range categories {
		if !slices.Contains(models.KnownErrorCategories, category) {
			return nil, 0, models.NewValidationError("unknown error category %q", category)
		}
	}

	filters := models.AssetInErrorFilters{
		AssetFilters: models.AssetFilters{
			Search:      req.Search,
			SiteIDs:     models.SplitBarList(req.SiteID),
			SiteAreaIDs: models.SplitBarList(req.SiteAreaID),
		},
		ErrorCategories: categories,
	}
	return s.assets.GetAssetsInError(ctx, tenantID, filters, req.Paging)
}
