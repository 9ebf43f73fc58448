package connector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

func newVendorAPI(t *testing.T, loginCalls *atomic.Int64) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["user"] != "u" || creds["password"] != "p" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		loginCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "opaque-vendor-token"})
	})
	mux.HandleFunc("/measurements", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer opaque-vendor-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("meter") != "m-7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"readings": []map[string]any{{
				"timestamp":     time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC).Format(time.RFC3339),
				"interval_secs": 60,
				"energy_wh":     70,
				"power_w":       4200,
				"current_a":     18.2,
				"voltage_v":     230.1,
			}},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func restConnectorFor(server *httptest.Server) *RESTMeterConnector {
	return NewRESTMeterConnector(ConnectionConfig{
		TenantID: "t1",
		ID:       "meter-7",
		Type:     TypeREST,
		URL:      server.URL,
		User:     "u",
		Password: "p",
	}, 2*time.Second, zap.NewNop())
}

func TestRESTMeterRetrieveConsumptions(t *testing.T) {
	var loginCalls atomic.Int64
	server := newVendorAPI(t, &loginCalls)
	conn := restConnectorFor(server)
	asset := &models.Asset{ID: "A1", MeterID: "m-7"}

	samples, err := conn.RetrieveConsumptions(context.Background(), asset, true)

	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 4200.0, samples[0].InstantWatts)
	assert.Equal(t, 18.2, samples[0].InstantAmps)
	assert.Equal(t, 230.1, samples[0].InstantVolts)
	assert.Equal(t, 70.0, samples[0].ConsumptionWh)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC), samples[0].EndedAt.UTC())
	assert.Equal(t, time.Minute, samples[0].EndedAt.Sub(samples[0].StartedAt))

	// The opaque token gets the fallback ttl, so a second call reuses it.
	_, err = conn.RetrieveConsumptions(context.Background(), asset, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loginCalls.Load())
}

func TestRESTMeterCheckConnection(t *testing.T) {
	var loginCalls atomic.Int64
	server := newVendorAPI(t, &loginCalls)
	conn := restConnectorFor(server)

	require.NoError(t, conn.CheckConnection(context.Background()))
}

func TestRESTMeterCheckConnectionBadCredentials(t *testing.T) {
	var loginCalls atomic.Int64
	server := newVendorAPI(t, &loginCalls)
	conn := NewRESTMeterConnector(ConnectionConfig{
		URL:      server.URL,
		User:     "u",
		Password: "wrong",
	}, 2*time.Second, zap.NewNop())

	err := conn.CheckConnection(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestRESTMeterUnreachableVendor(t *testing.T) {
	conn := NewRESTMeterConnector(ConnectionConfig{
		URL:      "http://127.0.0.1:1",
		User:     "u",
		Password: "p",
	}, 500*time.Millisecond, zap.NewNop())

	_, err := conn.RetrieveConsumptions(context.Background(), &models.Asset{MeterID: "m-7"}, true)
	require.Error(t, err)
}
