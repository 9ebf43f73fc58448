package handlers

import (
	"encoding/json"
	"net/http"

	"gridvolt/backend/services/asset-service/internal/models"
	"gridvolt/backend/services/asset-service/internal/service"
)

// NewAssetCreateHandler returns POST /asset/create handler.
func NewAssetCreateHandler(svc *service.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		var asset models.Asset
		if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := svc.CreateAsset(r.Context(), tenantID, &asset, userID(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// NewAssetGetHandler returns GET /asset handler.
func NewAssetGetHandler(svc *service.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		asset, err := svc.GetAsset(r.Context(), tenantID, r.URL.Query().Get("ID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, asset)
	}
}

// NewAssetUpdateHandler returns PUT /asset/update handler.
func NewAssetUpdateHandler(svc *service.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		var asset models.Asset
		if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		updated, err := svc.UpdateAsset(r.Context(), tenantID, &asset, userID(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// NewAssetDeleteHandler returns DELETE /asset/delete handler.
func NewAssetDeleteHandler(svc *service.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		if err := svc.DeleteAsset(r.Context(), tenantID, r.URL.Query().Get("ID")); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// NewAssetsListHandler returns GET /assets handler.
func NewAssetsListHandler(svc *service.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		q := r.URL.Query()
		filters := models.AssetFilters{
			Search:      q.Get("Search"),
			SiteIDs:     models.SplitBarList(q.Get("SiteID")),
			SiteAreaIDs: models.SplitBarList(q.Get("SiteAreaID")),
		}
		assets, count, err := svc.ListAssets(r.Context(), tenantID, filters, pagingFromQuery(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":  count,
			"result": assets,
		})
	}
}
