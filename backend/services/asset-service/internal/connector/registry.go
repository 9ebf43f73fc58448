package connector

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry resolves connector handles by tenant and connection identifier.
// A miss is a normal result: assets may reference connections that are not
// configured on this deployment.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
}

// NewRegistry builds every configured connection up front. An unknown
// connection type is an operator mistake and fails startup.
func NewRegistry(configs []ConnectionConfig, timeout time.Duration, logger *zap.Logger) (*Registry, error) {
	registry := &Registry{connectors: make(map[string]Connector, len(configs))}
	for _, cfg := range configs {
		if cfg.TenantID == "" || cfg.ID == "" {
			return nil, fmt.Errorf("connector: connection needs tenant and id, got tenant=%q id=%q", cfg.TenantID, cfg.ID)
		}
		handle, err := build(cfg, timeout, logger)
		if err != nil {
			return nil, err
		}
		registry.connectors[key(cfg.TenantID, cfg.ID)] = handle
		logger.Info("registered connector",
			zap.String("tenant_id", cfg.TenantID),
			zap.String("connection_id", cfg.ID),
			zap.String("type", cfg.Type),
		)
	}
	return registry, nil
}

// Resolve returns the connector for a tenant's connection reference. The
// boolean is false when nothing is configured; callers decide whether that
// is an error.
func (r *Registry) Resolve(tenantID, connectionID string) (Connector, bool) {
	if connectionID == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.connectors[key(tenantID, connectionID)]
	return handle, ok
}

// Register adds or replaces a connector handle. Used by tests and by future
// dynamic (re)configuration.
func (r *Registry) Register(tenantID, connectionID string, handle Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[key(tenantID, connectionID)] = handle
}

func build(cfg ConnectionConfig, timeout time.Duration, logger *zap.Logger) (Connector, error) {
	switch cfg.Type {
	case TypeREST:
		return NewRESTMeterConnector(cfg, timeout, logger), nil
	case TypeMQTT:
		return NewMQTTMeterConnector(cfg, timeout, logger), nil
	case TypeWebSocket:
		return NewWebSocketMeterConnector(cfg, timeout, logger), nil
	default:
		return nil, fmt.Errorf("connector: unknown connection type %q for %s/%s", cfg.Type, cfg.TenantID, cfg.ID)
	}
}

func key(tenantID, connectionID string) string {
	return tenantID + "/" + connectionID
}
