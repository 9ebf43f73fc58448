package connector

import (
	"context"
	"encoding/json"
	"time"

	"gridvolt/backend/services/asset-service/internal/models"
)

// Supported connection types.
const (
	TypeREST      = "rest"
	TypeMQTT      = "mqtt"
	TypeWebSocket = "websocket"
)

// CheckResult is the outcome of a connection health probe. A failed probe is
// a valid result, not an error.
type CheckResult struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// Connector is one pluggable telemetry integration. CheckConnection probes
// reachability; RetrieveConsumptions pulls the latest samples for an asset,
// typically zero or one per call. Both honor ctx deadlines.
type Connector interface {
	CheckConnection(ctx context.Context) error
	RetrieveConsumptions(ctx context.Context, asset *models.Asset, persistSamples bool) ([]models.ConsumptionSample, error)
}

// ConnectionConfig declares one external telemetry connection for a tenant.
type ConnectionConfig struct {
	TenantID string `yaml:"tenant"`
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
}

// meterReading is the JSON payload published by push-style meters (MQTT
// retained messages, WebSocket frames) and returned by the REST vendor API.
type meterReading struct {
	Timestamp     time.Time `json:"timestamp"`
	IntervalSecs  int       `json:"interval_secs"`
	EnergyWh      float64   `json:"energy_wh"`
	PowerW        float64   `json:"power_w"`
	PowerL1W      float64   `json:"power_l1_w"`
	PowerL2W      float64   `json:"power_l2_w"`
	PowerL3W      float64   `json:"power_l3_w"`
	CurrentA      float64   `json:"current_a"`
	CurrentL1A    float64   `json:"current_l1_a"`
	CurrentL2A    float64   `json:"current_l2_a"`
	CurrentL3A    float64   `json:"current_l3_a"`
	VoltageV      float64   `json:"voltage_v"`
	VoltageL1V    float64   `json:"voltage_l1_v"`
	VoltageL2V    float64   `json:"voltage_l2_v"`
	VoltageL3V    float64   `json:"voltage_l3_v"`
	LimitW        float64   `json:"limit_w"`
	LimitA        float64   `json:"limit_a"`
	StateOfCharge *float64  `json:"state_of_charge,omitempty"`
}

func (r meterReading) toSample() models.ConsumptionSample {
	interval := r.IntervalSecs
	if interval <= 0 {
		interval = 60
	}
	ended := r.Timestamp
	if ended.IsZero() {
		ended = time.Now().UTC()
	}
	return models.ConsumptionSample{
		StartedAt:      ended.Add(-time.Duration(interval) * time.Second),
		EndedAt:        ended,
		ConsumptionWh:  r.EnergyWh,
		InstantWatts:   r.PowerW,
		InstantWattsL1: r.PowerL1W,
		InstantWattsL2: r.PowerL2W,
		InstantWattsL3: r.PowerL3W,
		InstantAmps:    r.CurrentA,
		InstantAmpsL1:  r.CurrentL1A,
		InstantAmpsL2:  r.CurrentL2A,
		InstantAmpsL3:  r.CurrentL3A,
		InstantVolts:   r.VoltageV,
		InstantVoltsL1: r.VoltageL1V,
		InstantVoltsL2: r.VoltageL2V,
		InstantVoltsL3: r.VoltageL3V,
		LimitWatts:     r.LimitW,
		LimitAmps:      r.LimitA,
		StateOfCharge:  r.StateOfCharge,
	}
}

func decodeReading(data []byte) (models.ConsumptionSample, error) {
	var reading meterReading
	if err := json.Unmarshal(data, &reading); err != nil {
		return models.ConsumptionSample{}, err
	}
	return reading.toSample(), nil
}
