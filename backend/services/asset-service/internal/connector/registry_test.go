package connector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistryResolve(t *testing.T) {
	configs := []ConnectionConfig{
		{TenantID: "t1", ID: "meter-7", Type: TypeREST, URL: "http://vendor.local"},
		{TenantID: "t2", ID: "plant", Type: TypeMQTT, Broker: "tcp://broker.local:1883", Topic: "meters/plant"},
	}
	registry, err := NewRegistry(configs, time.Second, zap.NewNop())
	require.NoError(t, err)

	handle, ok := registry.Resolve("t1", "meter-7")
	assert.True(t, ok)
	assert.IsType(t, &RESTMeterConnector{}, handle)

	handle, ok = registry.Resolve("t2", "plant")
	assert.True(t, ok)
	assert.IsType(t, &MQTTMeterConnector{}, handle)

	// Absence is a normal result, scoped per tenant.
	_, ok = registry.Resolve("t2", "meter-7")
	assert.False(t, ok)
	_, ok = registry.Resolve("t1", "unknown")
	assert.False(t, ok)
	_, ok = registry.Resolve("t1", "")
	assert.False(t, ok)
}

func TestRegistryRejectsUnknownType(t *testing.T) {
	_, err := NewRegistry([]ConnectionConfig{
		{TenantID: "t1", ID: "x", Type: "carrier-pigeon"},
	}, time.Second, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown connection type")
}

func TestRegistryRejectsIncompleteConfig(t *testing.T) {
	_, err := NewRegistry([]ConnectionConfig{{Type: TypeREST}}, time.Second, zap.NewNop())
	require.Error(t, err)
}
