package connector

import (
	"context"
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

// MQTTMeterConnector pulls samples from a meter that publishes its latest
// reading as a retained JSON message. Retrieval is a short-lived subscribe:
// the broker replays the retained message immediately, so the first message
// within the timeout is the current sample and no message means the meter
// has never reported.
type MQTTMeterConnector struct {
	broker   string
	topic    string
	clientID string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewMQTTMeterConnector builds the connector from its connection config.
func NewMQTTMeterConnector(cfg ConnectionConfig, timeout time.Duration, logger *zap.Logger) *MQTTMeterConnector {
	return &MQTTMeterConnector{
		broker:   cfg.Broker,
		topic:    cfg.Topic,
		clientID: fmt.Sprintf("gridvolt-asset-%s-%s", cfg.TenantID, cfg.ID),
		timeout:  timeout,
		logger:   logger,
	}
}

// CheckConnection probes broker connectivity.
func (c *MQTTMeterConnector) CheckConnection(ctx context.Context) error {
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	client.Disconnect(250)
	return nil
}

// RetrieveConsumptions subscribes and waits for the retained reading.
func (c *MQTTMeterConnector) RetrieveConsumptions(ctx context.Context, asset *models.Asset, persistSamples bool) ([]models.ConsumptionSample, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(250)

	payloadCh := make(chan []byte, 1)
	token := client.Subscribe(c.topic, 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		select {
		case payloadCh <- msg.Payload():
		default:
		}
	})
	if !token.WaitTimeout(c.timeout) {
		return nil, fmt.Errorf("mqtt connector: subscribe %s: timeout", c.topic)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt connector: subscribe %s: %w", c.topic, token.Error())
	}

	select {
	case payload := <-payloadCh:
		sample, err := decodeReading(payload)
		if err != nil {
			return nil, fmt.Errorf("mqtt connector: decode reading: %w", err)
		}
		return []models.ConsumptionSample{sample}, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		// Deadline with no retained message: the meter has not reported yet.
		c.logger.Debug("no retained reading on topic", zap.String("topic", c.topic))
		return nil, nil
	case <-time.After(c.timeout):
		c.logger.Debug("no retained reading on topic", zap.String("topic", c.topic))
		return nil, nil
	}
}

func (c *MQTTMeterConnector) connect(ctx context.Context) (pahomqtt.Client, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(c.broker).
		SetClientID(c.clientID).
		SetConnectTimeout(c.timeout).
		SetAutoReconnect(false).
		SetCleanSession(true)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()

	deadline := c.timeout
	if d, ok := ctx.Deadline(); ok {
		if remaining := time.Until(d); remaining < deadline {
			deadline = remaining
		}
	}
	if !token.WaitTimeout(deadline) {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connector: connect %s: timeout", c.broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt connector: connect %s: %w", c.broker, token.Error())
	}
	return client, nil
}
