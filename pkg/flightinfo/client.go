package flightinfo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/tripline/travel-services/wagateway/pkg/httpclient"
)

const (
	ErrCodeServerError  = "SERVER_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeNetworkError = "NETWORK_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
)

var (
	ErrServerError  = errors.New(ErrCodeServerError)
	ErrTimeout      = errors.New(ErrCodeTimeout)
	ErrNetworkError = errors.New(ErrCodeNetworkError)
	ErrBadRequest   = errors.New(ErrCodeBadRequest)
)

type Config struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Client interface {
	FlightStatus(ctx context.Context, flightIATA string, flightDate string) ([]FlightRecord, error)
}

type client struct {
	cfg        Config
	httpClient httpclient.HTTPClient
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	return &client{cfg: cfg, httpClient: httpClient}
}

func (c *client) FlightStatus(ctx context.Context, flightIATA string, flightDate string) ([]FlightRecord, error) {
	query := url.Values{}
	query.Set("access_key", c.cfg.APIKey)
	query.Set("flight_iata", flightIATA)
	if flightDate != "" {
		query.Set("flight_date", flightDate)
	}

	resp, err := c.httpClient.Get(ctx, c.cfg.URL+"?"+query.Encode(), nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}

		return nil, ErrNetworkError
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, ErrBadRequest
		}

		return nil, ErrServerError
	}

	var payload flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, ErrServerError
	}

	return payload.Data, nil
}

type flightsResponse struct {
	Data []FlightRecord `json:"data"`
}
