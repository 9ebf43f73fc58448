package models

import "time"

// Asset types.
const (
	AssetTypeConsumption           = "CO"
	AssetTypeProduction            = "PR"
	AssetTypeConsumptionProduction = "CO-PR"
)

// TimestampedValue pairs a reading with the moment it was observed.
type TimestampedValue struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// AssetLiveState is the telemetry snapshot of an asset. It is only ever
// written as a whole from a single consumption sample; partial updates of
// individual fields are not allowed.
type AssetLiveState struct {
	LastConsumption       *TimestampedValue `json:"last_consumption,omitempty"`
	CurrentConsumptionWh  float64           `json:"current_consumption_wh"`
	CurrentInstantWatts   float64           `json:"current_instant_watts"`
	CurrentInstantWattsL1 float64           `json:"current_instant_watts_l1"`
	CurrentInstantWattsL2 float64           `json:"current_instant_watts_l2"`
	CurrentInstantWattsL3 float64           `json:"current_instant_watts_l3"`
	CurrentInstantAmps    float64           `json:"current_instant_amps"`
	CurrentInstantAmpsL1  float64           `json:"current_instant_amps_l1"`
	CurrentInstantAmpsL2  float64           `json:"current_instant_amps_l2"`
	CurrentInstantAmpsL3  float64           `json:"current_instant_amps_l3"`
	CurrentInstantVolts   float64           `json:"current_instant_volts"`
	CurrentInstantVoltsL1 float64           `json:"current_instant_volts_l1"`
	CurrentInstantVoltsL2 float64           `json:"current_instant_volts_l2"`
	CurrentInstantVoltsL3 float64           `json:"current_instant_volts_l3"`
	CurrentStateOfCharge  *float64          `json:"current_state_of_charge,omitempty"`
}

// Asset is a physical energy device (meter, battery, solar array) owned by a
// tenant. Live-state fields are mutated only by the telemetry merge; the rest
// is managed through CRUD.
type Asset struct {
	ID                       string   `json:"id"`
	TenantID                 string   `json:"-"`
	Name                     string   `json:"name"`
	SiteID                   *string  `json:"site_id,omitempty"`
	SiteAreaID               *string  `json:"site_area_id,omitempty"`
	AssetType                string   `json:"asset_type"`
	DynamicAsset             bool     `json:"dynamic_asset"`
	ConnectionID             string   `json:"connection_id,omitempty"`
	MeterID                  string   `json:"meter_id,omitempty"`
	CoordinatesLon           *float64 `json:"coordinates_lon,omitempty"`
	CoordinatesLat           *float64 `json:"coordinates_lat,omitempty"`
	StaticValueWatt          float64  `json:"static_value_watt"`
	FluctuationPercent       float64  `json:"fluctuation_percent"`
	ExcludeFromSmartCharging bool     `json:"exclude_from_smart_charging"`

	AssetLiveState

	// Values carries historical samples on consumption queries only; it is
	// never persisted with the asset.
	Values []ConsumptionSample `json:"values,omitempty"`

	Version       int64      `json:"version"`
	CreatedBy     string     `json:"created_by,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
	LastChangedBy string     `json:"last_changed_by,omitempty"`
	LastChangedOn *time.Time `json:"last_changed_on,omitempty"`
}

// ConsumptionSample is one timestamped reading produced by a connector or
// returned by the consumption store. Immutable once produced.
type ConsumptionSample struct {
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	ConsumptionWh  float64   `json:"consumption_wh"`
	InstantWatts   float64   `json:"instant_watts"`
	InstantWattsL1 float64   `json:"instant_watts_l1"`
	InstantWattsL2 float64   `json:"instant_watts_l2"`
	InstantWattsL3 float64   `json:"instant_watts_l3"`
	InstantAmps    float64   `json:"instant_amps"`
	InstantAmpsL1  float64   `json:"instant_amps_l1"`
	InstantAmpsL2  float64   `json:"instant_amps_l2"`
	InstantAmpsL3  float64   `json:"instant_amps_l3"`
	InstantVolts   float64   `json:"instant_volts"`
	InstantVoltsL1 float64   `json:"instant_volts_l1"`
	InstantVoltsL2 float64   `json:"instant_volts_l2"`
	InstantVoltsL3 float64   `json:"instant_volts_l3"`
	LimitWatts     float64   `json:"limit_watts"`
	LimitAmps      float64   `json:"limit_amps"`
	StateOfCharge  *float64  `json:"state_of_charge,omitempty"`
}

// AssetInError is the projection returned by the error listing.
type AssetInError struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ErrorCodeDetails string `json:"error_code_details"`
	ErrorCode        string `json:"error_code"`
}
