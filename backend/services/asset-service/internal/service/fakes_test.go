package service

import (
	"context"
	"time"

	"gridvolt/backend/services/asset-service/internal/connector"
	"gridvolt/backend/services/asset-service/internal/models"
)

type fakeAssetStore struct {
	assets map[string]*models.Asset

	updateErr     error
	updateCalls   int
	lastUpdated   *models.Asset
	insertCalls   int
	deleteCalls   int
	deleteMissing bool

	inErrorTenant  string
	inErrorFilters models.AssetInErrorFilters
	inErrorPaging  models.Paging
	inErrorCalls   int
	inErrorResult  []models.AssetInError
}

func newFakeAssetStore(assets ...*models.Asset) *fakeAssetStore {
	store := &fakeAssetStore{assets: make(map[string]*models.Asset)}
	for _, asset := range assets {
		store.assets[asset.TenantID+"/"+asset.ID] = asset
	}
	return store
}

func (f *fakeAssetStore) GetAsset(_ context.Context, tenantID, id string) (*models.Asset, error) {
	asset, ok := f.assets[tenantID+"/"+id]
	if !ok {
		return nil, nil
	}
	clone := *asset
	return &clone, nil
}

func (f *fakeAssetStore) InsertAsset(_ context.Context, asset *models.Asset) error {
	f.insertCalls++
	f.assets[asset.TenantID+"/"+asset.ID] = asset
	return nil
}

func (f *fakeAssetStore) UpdateAsset(_ context.Context, asset *models.Asset) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	clone := *asset
	f.lastUpdated = &clone
	f.assets[asset.TenantID+"/"+asset.ID] = &clone
	return nil
}

func (f *fakeAssetStore) DeleteAsset(_ context.Context, tenantID, id string) (bool, error) {
	f.deleteCalls++
	if f.deleteMissing {
		return false, nil
	}
	_, ok := f.assets[tenantID+"/"+id]
	delete(f.assets, tenantID+"/"+id)
	return ok, nil
}

func (f *fakeAssetStore) GetAssets(_ context.Context, _ string, _ models.AssetFilters, _ models.Paging) ([]models.Asset, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssetStore) GetAssetsInError(_ context.Context, tenantID string, filters models.AssetInErrorFilters, paging models.Paging) ([]models.AssetInError, int64, error) {
	f.inErrorCalls++
	f.inErrorTenant = tenantID
	f.inErrorFilters = filters
	f.inErrorPaging = paging
	return f.inErrorResult, int64(len(f.inErrorResult)), nil
}

type fakeConsumptionStore struct {
	queryCalls  int
	queryStart  time.Time
	queryEnd    time.Time
	samples     []models.ConsumptionSample
	insertCalls int
	inserted    []models.ConsumptionSample
}

func (f *fakeConsumptionStore) GetAssetConsumptions(_ context.Context, _, _ string, start, end time.Time) ([]models.ConsumptionSample, error) {
	f.queryCalls++
	f.queryStart = start
	f.queryEnd = end
	return f.samples, nil
}

func (f *fakeConsumptionStore) InsertConsumptions(_ context.Context, _, _ string, samples []models.ConsumptionSample) error {
	f.insertCalls++
	f.inserted = append(f.inserted, samples...)
	return nil
}

type fakeConnector struct {
	checkErr      error
	checkCalls    int
	samples       []models.ConsumptionSample
	retrieveErr   error
	retrieveCalls int
}

func (f *fakeConnector) CheckConnection(_ context.Context) error {
	f.checkCalls++
	return f.checkErr
}

func (f *fakeConnector) RetrieveConsumptions(_ context.Context, _ *models.Asset, _ bool) ([]models.ConsumptionSample, error) {
	f.retrieveCalls++
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.samples, nil
}

type fakeResolver struct {
	handles map[string]connector.Connector
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{handles: make(map[string]connector.Connector)}
}

func (f *fakeResolver) add(tenantID, connectionID string, handle connector.Connector) {
	f.handles[tenantID+"/"+connectionID] = handle
}

func (f *fakeResolver) Resolve(tenantID, connectionID string) (connector.Connector, bool) {
	handle, ok := f.handles[tenantID+"/"+connectionID]
	return handle, ok
}

type fakeLock struct {
	busy         bool
	acquireCalls int
	releaseCalls int
}

func (f *fakeLock) Acquire(_ context.Context, _, _ string) (bool, error) {
	f.acquireCalls++
	return !f.busy, nil
}

func (f *fakeLock) Release(_ context.Context, _, _ string) error {
	f.releaseCalls++
	return nil
}
