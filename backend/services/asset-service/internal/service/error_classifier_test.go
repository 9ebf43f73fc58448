package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

func TestListInErrorDefaultsToMissingSiteArea(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewErrorClassifierService(store, zap.NewNop())

	_, _, err := svc.ListInError(context.Background(), "t1", InErrorRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, store.inErrorCalls)
	assert.Equal(t, []string{models.ErrorCategoryMissingSiteArea}, store.inErrorFilters.ErrorCategories)
}

func TestListInErrorSplitsBarDelimitedFilters(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewErrorClassifierService(store, zap.NewNop())

	_, _, err := svc.ListInError(context.Background(), "t1", InErrorRequest{
		SiteAreaID: "s1|s2",
		SiteID:     "site-9",
	})

	require.NoError(t, err)
	require.Equal(t, 1, store.inErrorCalls)
	assert.Equal(t, "t1", store.inErrorTenant)
	assert.Equal(t, []string{"s1", "s2"}, store.inErrorFilters.SiteAreaIDs)
	assert.Equal(t, []string{"site-9"}, store.inErrorFilters.SiteIDs)
	assert.Equal(t, []string{models.ErrorCategoryMissingSiteArea}, store.inErrorFilters.ErrorCategories)
}

func TestListInErrorExplicitCategories(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewErrorClassifierService(store, zap.NewNop())

	_, _, err := svc.ListInError(context.Background(), "t1", InErrorRequest{
		ErrorType: "missing_site_area|missing_connection",
	})

	require.NoError(t, err)
	assert.Equal(t,
		[]string{models.ErrorCategoryMissingSiteArea, models.ErrorCategoryMissingConnection},
		store.inErrorFilters.ErrorCategories)
}

func TestListInErrorUnknownCategory(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewErrorClassifierService(store, zap.NewNop())

	_, _, err := svc.ListInError(context.Background(), "t1", InErrorRequest{ErrorType: "haunted"})

	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrValidation))
	assert.Zero(t, store.inErrorCalls)
}

func TestListInErrorPassesPagingThrough(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewErrorClassifierService(store, zap.NewNop())
	paging := models.Paging{Limit: 25, Skip: 50, SortFields: "-name", OnlyRecordCount: true}

	_, _, err := svc.ListInError(context.Background(), "t1", InErrorRequest{Paging: paging})

	require.NoError(t, err)
	assert.Equal(t, paging, store.inErrorPaging)
}
