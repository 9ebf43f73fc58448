package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/connector"
	"gridvolt/backend/services/asset-service/internal/models"
	"gridvolt/backend/services/asset-service/internal/repository"
)

// RetrieveOutcome names the result of a retrieve-and-merge call.
type RetrieveOutcome string

// Retrieval outcomes. OutcomeNoSample is not an error: the connector was
// reachable but had nothing to report yet.
const (
	OutcomeMerged   RetrieveOutcome = "merged"
	OutcomeNoSample RetrieveOutcome = "no_sample"
)

// TelemetryService orchestrates live consumption retrieval and connection
// health checks against external connectors.
type TelemetryService struct {
	assets       AssetStore
	consumptions ConsumptionStore
	resolver     ConnectorResolver
	lock         RetrievalLocker
	timeout      time.Duration
	logger       *zap.Logger
}

// NewTelemetryService builds service. lock may be nil when no redis is
// deployed; the optimistic version check still protects the merge.
func NewTelemetryService(
	assets AssetStore,
	consumptions ConsumptionStore,
	resolver ConnectorResolver,
	lock RetrievalLocker,
	timeout time.Duration,
	logger *zap.Logger,
) *TelemetryService {
	return &TelemetryService{
		assets:       assets,
		consumptions: consumptions,
		resolver:     resolver,
		lock:         lock,
		timeout:      timeout,
		logger:       logger,
	}
}

// CheckConnection probes the asset's connector. Probe failures are a valid
// negative result, never an error: the caller gets Healthy=false and the
// diagnostic is logged here.
func (s *TelemetryService) CheckConnection(ctx context.Context, tenantID, assetID string) (connector.CheckResult, error) {
	asset, err := s.assets.GetAsset(ctx, tenantID, assetID)
	if err != nil {
		return connector.CheckResult{}, err
	}
	if asset == nil {
		return connector.CheckResult{}, models.NewNotFoundError("asset %s does not exist", assetID)
	}

	handle, ok := s.resolver.Resolve(tenantID, asset.ConnectionID)
	if !ok {
		return connector.CheckResult{}, models.NewNotConfiguredError(
			"no connector configured for connection %q of asset %s", asset.ConnectionID, assetID)
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := handle.CheckConnection(probeCtx); err != nil {
		s.logger.Error("connector health probe failed",
			zap.String("tenant_id", tenantID),
			zap.String("asset_id", assetID),
			zap.String("connection_id", asset.ConnectionID),
			zap.Error(err),
		)
		return connector.CheckResult{Healthy: false, Detail: err.Error()}, nil
	}
	return connector.CheckResult{Healthy: true}, nil
}

// RetrieveAndMerge pulls the asset's current consumption from its connector
// and persists the merged live state. Only dynamic assets may be polled.
func (s *TelemetryService) RetrieveAndMerge(ctx context.Context, tenantID, assetID string) (RetrieveOutcome, error) {
	asset, err := s.assets.GetAsset(ctx, tenantID, assetID)
	if err != nil {
		return "", err
	}
	if asset == nil {
		return "", models.NewNotFoundError("asset %s does not exist", assetID)
	}
	if !asset.DynamicAsset {
		return "", models.NewInvalidOperationError(
			"asset %s is not dynamic, no consumption can be retrieved", assetID)
	}

	handle, ok := s.resolver.Resolve(tenantID, asset.ConnectionID)
	if !ok {
		return "", models.NewNotConfiguredError(
			"no connector configured for connection %q of asset %s", asset.ConnectionID, assetID)
	}

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx, tenantID, assetID)
		if err != nil {
			return "", err
		}
		if !acquired {
			return "", models.NewConflictError("consumption retrieval already in progress for asset %s", assetID)
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), tenantID, assetID); err != nil {
				s.logger.Warn("failed to release retrieval lock",
					zap.String("asset_id", assetID), zap.Error(err))
			}
		}()
	}

	retrieveCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	samples, err := handle.RetrieveConsumptions(retrieveCtx, asset, true)
	if err != nil {
		return "", models.NewConnectionError("failed to retrieve consumption from connector", err)
	}
	if len(samples) == 0 {
		s.logger.Info("connector returned no samples",
			zap.String("tenant_id", tenantID),
			zap.String("asset_id", assetID),
			zap.String("connection_id", asset.ConnectionID),
		)
		return OutcomeNoSample, nil
	}

	MergeConsumption(asset, samples[0])
	if err := s.assets.UpdateAsset(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return "", models.NewConflictError("asset %s was modified concurrently", assetID)
		}
		return "", err
	}

	if err := s.consumptions.InsertConsumptions(ctx, tenantID, assetID, samples); err != nil {
		// History accrual is best effort; the merged live state is already saved.
		s.logger.Warn("failed to persist consumption history",
			zap.String("asset_id", assetID), zap.Error(err))
	}

	s.logger.Info("merged consumption sample",
		zap.String("tenant_id", tenantID),
		zap.String("asset_id", assetID),
		zap.Float64("instant_watts", samples[0].InstantWatts),
	)
	return OutcomeMerged, nil
}
