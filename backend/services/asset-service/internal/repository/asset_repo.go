package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gridvolt/backend/services/asset-service/internal/models"
)

// ErrVersionConflict is returned when an update loses the optimistic
// concurrency check against the stored version.
var ErrVersionConflict = errors.New("asset version conflict")

const defaultListLimit = 100

// AssetRepository persists assets.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository returns repository.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `
	id, name, site_id, site_area_id, asset_type, dynamic_asset, connection_id,
	meter_id, coordinates_lon, coordinates_lat, static_value_watt,
	fluctuation_percent, exclude_from_smart_charging,
	last_consumption_wh, last_consumption_at, current_consumption_wh,
	current_instant_watts, current_instant_watts_l1, current_instant_watts_l2, current_instant_watts_l3,
	current_instant_amps, current_instant_amps_l1, current_instant_amps_l2, current_instant_amps_l3,
	current_instant_volts, current_instant_volts_l1, current_instant_volts_l2, current_instant_volts_l3,
	current_state_of_charge,
	version, created_by, created_on, last_changed_by, last_changed_on`

// GetAsset loads one asset; absent assets return (nil, nil).
func (r *AssetRepository) GetAsset(ctx context.Context, tenantID, id string) (*models.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE tenant_id = $1 AND id = $2`, assetColumns)
	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, tenantID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	asset.TenantID = tenantID
	return asset, nil
}

// InsertAsset stores a new asset at version 1.
func (r *AssetRepository) InsertAsset(ctx context.Context, asset *models.Asset) error {
	const query = `
		INSERT INTO assets (
			id, tenant_id, name, site_id, site_area_id, asset_type, dynamic_asset,
			connection_id, meter_id, coordinates_lon, coordinates_lat,
			static_value_watt, fluctuation_percent, exclude_from_smart_charging,
			version, created_by, created_on
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1, $15, NOW())
		RETURNING version, created_on
	`
	return r.db.QueryRowContext(ctx, query,
		asset.ID,
		asset.TenantID,
		asset.Name,
		asset.SiteID,
		asset.SiteAreaID,
		asset.AssetType,
		asset.DynamicAsset,
		asset.ConnectionID,
		asset.MeterID,
		asset.CoordinatesLon,
		asset.CoordinatesLat,
		asset.StaticValueWatt,
		asset.FluctuationPercent,
		asset.ExcludeFromSmartCharging,
		asset.CreatedBy,
	).Scan(&asset.Version, &asset.CreatedOn)
}

// UpdateAsset writes the full asset back, guarded by the version it was read
// at. A missed guard returns ErrVersionConflict.
func (r *AssetRepository) UpdateAsset(ctx context.Context, asset *models.Asset) error {
	const query = `
		UPDATE assets SET
			name = $3, site_id = $4, site_area_id = $5, asset_type = $6,
			dynamic_asset = $7, connection_id = $8, meter_id = $9,
			coordinates_lon = $10, coordinates_lat = $11, static_value_watt = $12,
			fluctuation_percent = $13, exclude_from_smart_charging = $14,
			last_consumption_wh = $15, last_consumption_at = $16,
			current_consumption_wh = $17,
			current_instant_watts = $18, current_instant_watts_l1 = $19,
			current_instant_watts_l2 = $20, current_instant_watts_l3 = $21,
			current_instant_amps = $22, current_instant_amps_l1 = $23,
			current_instant_amps_l2 = $24, current_instant_amps_l3 = $25,
			current_instant_volts = $26, current_instant_volts_l1 = $27,
			current_instant_volts_l2 = $28, current_instant_volts_l3 = $29,
			current_state_of_charge = $30,
			version = version + 1, last_changed_by = $31, last_changed_on = NOW()
		WHERE tenant_id = $1 AND id = $2 AND version = $32
		RETURNING version, last_changed_on
	`
	var lastWh *float64
	var lastAt sql.NullTime
	if asset.LastConsumption != nil {
		lastWh = &asset.LastConsumption.Value
		lastAt = sql.NullTime{Time: asset.LastConsumption.Timestamp, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query,
		asset.TenantID,
		asset.ID,
		asset.Name,
		asset.SiteID,
		asset.SiteAreaID,
		asset.AssetType,
		asset.DynamicAsset,
		asset.ConnectionID,
		asset.MeterID,
		asset.CoordinatesLon,
		asset.CoordinatesLat,
		asset.StaticValueWatt,
		asset.FluctuationPercent,
		asset.ExcludeFromSmartCharging,
		lastWh,
		lastAt,
		asset.CurrentConsumptionWh,
		asset.CurrentInstantWatts,
		asset.CurrentInstantWattsL1,
		asset.CurrentInstantWattsL2,
		asset.CurrentInstantWattsL3,
		asset.CurrentInstantAmps,
		asset.CurrentInstantAmpsL1,
		asset.CurrentInstantAmpsL2,
		asset.CurrentInstantAmpsL3,
		asset.CurrentInstantVolts,
		asset.CurrentInstantVoltsL1,
		asset.CurrentInstantVoltsL2,
		asset.CurrentInstantVoltsL3,
		asset.CurrentStateOfCharge,
		asset.LastChangedBy,
		asset.Version,
	).Scan(&asset.Version, &asset.LastChangedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVersionConflict
	}
	return err
}

// DeleteAsset removes an asset; the boolean reports whether a row existed.
func (r *AssetRepository) DeleteAsset(ctx context.Context, tenantID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetAssets lists a tenant's assets with optional filters and paging. The
// returned count is the filtered total, independent of the page window.
func (r *AssetRepository) GetAssets(ctx context.Context, tenantID string, filters models.AssetFilters, paging models.Paging) ([]models.Asset, int64, error) {
	where, args := assetFilterClauses(tenantID, filters)

	var count int64
	countQuery := `SELECT COUNT(*) FROM assets WHERE ` + strings.Join(where, " AND ")
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}
	if paging.OnlyRecordCount {
		return nil, count, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM assets WHERE %s ORDER BY %s %s`,
		assetColumns, strings.Join(where, " AND "), orderClause(paging.SortFields, assetSortColumns), limitClause(&args, paging))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		asset.TenantID = tenantID
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return assets, count, nil
}

// GetAssetsInError runs the structural error detection. Each requested
// category contributes one branch of a UNION with its error code attached.
func (r *AssetRepository) GetAssetsInError(ctx context.Context, tenantID string, filters models.AssetInErrorFilters, paging models.Paging) ([]models.AssetInError, int64, error) {
	branches := make([]string, 0, len(filters.ErrorCategories))
	for _, category := range filters.ErrorCategories {
		switch category {
		case models.ErrorCategoryMissingSiteArea:
			branches = append(branches, fmt.Sprintf(
				`SELECT id, name, tenant_id, site_id, site_area_id, '%s' AS error_code, '%s' AS error_code_details FROM assets WHERE site_area_id IS NULL`,
				models.ErrorCategoryMissingSiteArea, models.ErrorCategoryDetails[models.ErrorCategoryMissingSiteArea]))
		case models.ErrorCategoryMissingConnection:
			branches = append(branches, fmt.Sprintf(
				`SELECT id, name, tenant_id, site_id, site_area_id, '%s' AS error_code, '%s' AS error_code_details FROM assets WHERE dynamic_asset AND connection_id = ''`,
				models.ErrorCategoryMissingConnection, models.ErrorCategoryDetails[models.ErrorCategoryMissingConnection]))
		default:
			return nil, 0, fmt.Errorf("unknown error category %q", category)
		}
	}
	if len(branches) == 0 {
		return nil, 0, nil
	}

	where, args := assetFilterClauses(tenantID, filters.AssetFilters)
	base := fmt.Sprintf(`(%s) AS assets_in_error`, strings.Join(branches, " UNION ALL "))

	var count int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, base, strings.Join(where, " AND "))
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}
	if paging.OnlyRecordCount {
		return nil, count, nil
	}

	query := fmt.Sprintf(`SELECT id, name, error_code, error_code_details FROM %s WHERE %s ORDER BY %s %s`,
		base, strings.Join(where, " AND "), orderClause(paging.SortFields, inErrorSortColumns), limitClause(&args, paging))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []models.AssetInError
	for rows.Next() {
		var entry models.AssetInError
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.ErrorCode, &entry.ErrorCodeDetails); err != nil {
			return nil, 0, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, count, nil
}

func assetFilterClauses(tenantID string, filters models.AssetFilters) ([]string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(filters.SiteIDs) > 0 {
		args = append(args, filters.SiteIDs)
		where = append(where, fmt.Sprintf("site_id = ANY($%d)", len(args)))
	}
	if len(filters.SiteAreaIDs) > 0 {
		args = append(args, filters.SiteAreaIDs)
		where = append(where, fmt.Sprintf("site_area_id = ANY($%d)", len(args)))
	}
	return where, args
}

// Sortable columns per query; error_code only exists in the error projection.
var (
	assetSortColumns   = []string{"name", "created_on", "asset_type"}
	inErrorSortColumns = []string{"name", "error_code"}
)

// orderClause whitelists sortable columns; anything else falls back to name.
func orderClause(sortFields string, allowed []string) string {
	field := strings.TrimSpace(sortFields)
	direction := "ASC"
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		direction = "DESC"
	}
	if slices.Contains(allowed, field) {
		return field + " " + direction
	}
	return "name ASC"
}

func limitClause(args *[]any, paging models.Paging) string {
	limit := paging.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	*args = append(*args, limit)
	clause := fmt.Sprintf("LIMIT $%d", len(*args))
	if paging.Skip > 0 {
		*args = append(*args, paging.Skip)
		clause += fmt.Sprintf(" OFFSET $%d", len(*args))
	}
	return clause
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*models.Asset, error) {
	var (
		asset         models.Asset
		lastWh        sql.NullFloat64
		lastAt        sql.NullTime
		createdBy     sql.NullString
		lastChangedBy sql.NullString
	)
	err := row.Scan(
		&asset.ID,
		&asset.Name,
		&asset.SiteID,
		&asset.SiteAreaID,
		&asset.AssetType,
		&asset.DynamicAsset,
		&asset.ConnectionID,
		&asset.MeterID,
		&asset.CoordinatesLon,
		&asset.CoordinatesLat,
		&asset.StaticValueWatt,
		&asset.FluctuationPercent,
		&asset.ExcludeFromSmartCharging,
		&lastWh,
		&lastAt,
		&asset.CurrentConsumptionWh,
		&asset.CurrentInstantWatts,
		&asset.CurrentInstantWattsL1,
		&asset.CurrentInstantWattsL2,
		&asset.CurrentInstantWattsL3,
		&asset.CurrentInstantAmps,
		&asset.CurrentInstantAmpsL1,
		&asset.CurrentInstantAmpsL2,
		&asset.CurrentInstantAmpsL3,
		&asset.CurrentInstantVolts,
		&asset.CurrentInstantVoltsL1,
		&asset.CurrentInstantVoltsL2,
		&asset.CurrentInstantVoltsL3,
		&asset.CurrentStateOfCharge,
		&asset.Version,
		&createdBy,
		&asset.CreatedOn,
		&lastChangedBy,
		&asset.LastChangedOn,
	)
	if err != nil {
		return nil, err
	}
	asset.CreatedBy = createdBy.String
	asset.LastChangedBy = lastChangedBy.String
	if lastWh.Valid && lastAt.Valid {
		asset.LastConsumption = &models.TimestampedValue{Value: lastWh.Float64, Timestamp: lastAt.Time}
	}
	return &asset, nil
}
