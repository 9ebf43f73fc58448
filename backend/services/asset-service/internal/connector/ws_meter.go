package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

// WebSocketMeterConnector pulls samples from a meter that streams readings
// over a WebSocket endpoint. Retrieval dials, reads the first frame and
// disconnects; the stream's first frame is always the current reading.
type WebSocketMeterConnector struct {
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewWebSocketMeterConnector builds the connector from its connection config.
func NewWebSocketMeterConnector(cfg ConnectionConfig, timeout time.Duration, logger *zap.Logger) *WebSocketMeterConnector {
	return &WebSocketMeterConnector{
		url:     cfg.URL,
		timeout: timeout,
		logger:  logger,
	}
}

// CheckConnection dials the stream endpoint and closes it again.
func (c *WebSocketMeterConnector) CheckConnection(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.timeout))
	return conn.Close()
}

// RetrieveConsumptions reads one frame from the stream.
func (c *WebSocketMeterConnector) RetrieveConsumptions(ctx context.Context, asset *models.Asset, persistSamples bool) ([]models.ConsumptionSample, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	_, frame, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("websocket connector: read frame: %w", err)
	}
	sample, err := decodeReading(frame)
	if err != nil {
		return nil, fmt.Errorf("websocket connector: decode frame: %w", err)
	}
	return []models.ConsumptionSample{sample}, nil
}

func (c *WebSocketMeterConnector) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket connector: dial %s: status %d: %w", c.url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket connector: dial %s: %w", c.url, err)
	}
	return conn, nil
}
