package connector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"gridvolt/backend/services/asset-service/internal/models"
)

const restTokenFallbackTTL = 15 * time.Minute

// RESTMeterConnector pulls samples from a vendor REST API. The vendor issues
// a bearer token from its login endpoint; the token is cached until shortly
// before its JWT expiry.
type RESTMeterConnector struct {
	client *resty.Client
	user   string
	pass   string
	logger *zap.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

type restLoginResponse struct {
	Token string `json:"token"`
}

type restMeasurementsResponse struct {
	Readings []meterReading `json:"readings"`
}

// NewRESTMeterConnector builds the connector from its connection config.
func NewRESTMeterConnector(cfg ConnectionConfig, timeout time.Duration, logger *zap.Logger) *RESTMeterConnector {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &RESTMeterConnector{
		client: client,
		user:   cfg.User,
		pass:   cfg.Password,
		logger: logger,
	}
}

// CheckConnection verifies the vendor API accepts our credentials.
func (c *RESTMeterConnector) CheckConnection(ctx context.Context) error {
	_, err := c.bearerToken(ctx, true)
	return err
}

// RetrieveConsumptions fetches the latest reading for the asset's meter.
func (c *RESTMeterConnector) RetrieveConsumptions(ctx context.Context, asset *models.Asset, persistSamples bool) ([]models.ConsumptionSample, error) {
	token, err := c.bearerToken(ctx, false)
	if err != nil {
		return nil, err
	}

	var payload restMeasurementsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("meter", asset.MeterID).
		SetQueryParam("latest", fmt.Sprintf("%t", !persistSamples)).
		SetResult(&payload).
		Get("/measurements")
	if err != nil {
		return nil, fmt.Errorf("rest connector: fetch measurements: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("rest connector: fetch measurements: status %d", resp.StatusCode())
	}

	samples := make([]models.ConsumptionSample, 0, len(payload.Readings))
	for _, reading := range payload.Readings {
		samples = append(samples, reading.toSample())
	}
	return samples, nil
}

func (c *RESTMeterConnector) bearerToken(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	var payload restLoginResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"user": c.user, "password": c.pass}).
		SetResult(&payload).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("rest connector: login: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("rest connector: login: status %d", resp.StatusCode())
	}
	if payload.Token == "" {
		return "", fmt.Errorf("rest connector: login: empty token")
	}

	c.token = payload.Token
	c.tokenExpiry = tokenExpiry(payload.Token, c.logger)
	return c.token, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the token
// is the vendor's and we only need its lifetime. Unparseable tokens get a
// fixed TTL.
func tokenExpiry(token string, logger *zap.Logger) time.Time {
	fallback := time.Now().Add(restTokenFallbackTTL)
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		logger.Debug("vendor token is not a JWT, using fallback ttl", zap.Error(err))
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	// Renew a minute early so requests never race the expiry.
	return exp.Time.Add(-time.Minute)
}
