package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/service"
)

// NewAssetConsumptionHandler returns GET /asset/consumption handler.
func NewAssetConsumptionHandler(svc *service.ConsumptionQueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		q := r.URL.Query()
		start, err := parseDateParam(q.Get("StartDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid StartDate, expected RFC3339")
			return
		}
		end, err := parseDateParam(q.Get("EndDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid EndDate, expected RFC3339")
			return
		}
		asset, err := svc.GetAssetConsumptions(r.Context(), tenantID, q.Get("AssetID"), start, end)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, asset)
	}
}

// NewAssetConnectionHandler returns GET /asset/connection handler. The probe
// outcome is always a 200 with a boolean; only missing assets or missing
// connector configuration are errors.
func NewAssetConnectionHandler(svc *service.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		assetID := r.URL.Query().Get("ID")
		if assetID == "" {
			writeError(w, http.StatusBadRequest, "asset id is required")
			return
		}
		result, err := svc.CheckConnection(r.Context(), tenantID, assetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"connectionIsValid": result.Healthy})
	}
}

// NewAssetRetrieveHandler returns POST /asset/retrieve-consumption handler.
// The response is a generic acknowledgment; merged values are not echoed.
func NewAssetRetrieveHandler(svc *service.TelemetryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		assetID := r.URL.Query().Get("ID")
		if assetID == "" {
			writeError(w, http.StatusBadRequest, "asset id is required")
			return
		}
		outcome, err := svc.RetrieveAndMerge(r.Context(), tenantID, assetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"outcome": string(outcome),
		})
	}
}

// NewAssetsInErrorHandler returns GET /assets/in-error handler.
func NewAssetsInErrorHandler(svc *service.ErrorClassifierService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := requireTenant(w, r)
		if tenantID == "" {
			return
		}
		q := r.URL.Query()
		req := service.InErrorRequest{
			ErrorType:  q.Get("ErrorType"),
			Search:     q.Get("Search"),
			SiteID:     q.Get("SiteID"),
			SiteAreaID: q.Get("SiteAreaID"),
			Paging:     pagingFromQuery(r),
		}
		result, count, err := svc.ListInError(r.Context(), tenantID, req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":  count,
			"result": result,
		})
	}
}
